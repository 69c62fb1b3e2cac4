package auth

import (
	"encoding/base64"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTService_IssueAndVerify(t *testing.T) {
	svc := NewJWTService("test-secret")
	id := Identity{UserID: uuid.New(), Email: "a@x.com", Username: "a"}

	token, issued, err := svc.Issue(id)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.NotEmpty(t, issued.ID)
	assert.WithinDuration(t, time.Now().Add(TokenExpiry), issued.ExpiresAt.Time, 5*time.Second)

	claims, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, id.UserID, claims.UserID)
	assert.Equal(t, id.Email, claims.Email)
	assert.Equal(t, id.Username, claims.Username)
	assert.Equal(t, issued.ID, claims.ID)
}

func TestJWTService_VerifyRejects(t *testing.T) {
	svc := NewJWTService("test-secret")
	userID := uuid.New()

	expired := func() string {
		claims := &Claims{
			UserID: userID,
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
				IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
			},
		}
		s, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
		return s
	}

	foreign := func() string {
		s, _, _ := NewJWTService("other-secret").Issue(Identity{UserID: userID})
		return s
	}

	unsigned := func() string {
		claims := &Claims{
			UserID: userID,
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		}
		s, _ := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
		return s
	}

	tampered := func() string {
		s, _, _ := svc.Issue(Identity{UserID: userID})
		parts := strings.Split(s, ".")
		forged, _ := json.Marshal(map[string]interface{}{
			"userId": uuid.NewString(),
			"exp":    time.Now().Add(time.Hour).Unix(),
		})
		parts[1] = base64.RawURLEncoding.EncodeToString(forged)
		return strings.Join(parts, ".")
	}

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"garbage", "not-a-jwt"},
		{"expired", expired()},
		{"wrong secret", foreign()},
		{"alg none", unsigned()},
		{"tampered signature", tampered()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := svc.Verify(tt.token)
			assert.ErrorIs(t, err, ErrInvalidToken)
			assert.Nil(t, claims)
		})
	}
}

func TestJWTService_EmptySecret(t *testing.T) {
	svc := NewJWTService("")
	_, _, err := svc.Issue(Identity{UserID: uuid.New()})
	assert.Error(t, err)

	_, err = svc.Verify("anything")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTService_Remaining(t *testing.T) {
	svc := NewJWTService("test-secret")
	_, claims, err := svc.Issue(Identity{UserID: uuid.New()})
	require.NoError(t, err)

	remaining := svc.Remaining(claims)
	assert.True(t, remaining > 59*time.Minute && remaining <= TokenExpiry)
}
