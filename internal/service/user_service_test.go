package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	apperrors "blogapi/internal/errors"
	"blogapi/internal/model"
)

func TestUserService_GetProfile(t *testing.T) {
	repo := new(MockUserRepository)
	user := &model.User{Username: "a", PasswordHash: "digest"}
	repo.On("FindByID", mock.Anything, user.ID).Return(user, nil).Once()
	svc := NewUserService(repo, nil)

	got, err := svc.GetProfile(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "a", got.Username)

	repo.On("FindByID", mock.Anything, user.ID).Return(nil, gorm.ErrRecordNotFound).Once()
	_, err = svc.GetProfile(context.Background(), user.ID)
	assert.Equal(t, apperrors.ErrUserNotFound, err)
	repo.AssertExpectations(t)
}
