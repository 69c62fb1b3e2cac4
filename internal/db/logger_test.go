package db

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/gorm"

	"blogapi/internal/model"
)

func TestLogger_SkipsRecordNotFoundAndHidesValues(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	gormDB, err := Open("sqlite", fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()), zap.New(core))
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(gormDB) })
	require.NoError(t, Migrate(gormDB))
	logs.TakeAll()

	var user model.User
	err = gormDB.Where("email = ?", "secret@x.com").First(&user).Error
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.Zero(t, logs.Len())

	err = gormDB.Exec("INSERT INTO missing_table (email) VALUES (?)", "secret@x.com").Error
	require.Error(t, err)
	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "gorm", entry.LoggerName)
	assert.Contains(t, entry.Message, "missing_table")
	assert.NotContains(t, entry.Message, "secret@x.com")
}
