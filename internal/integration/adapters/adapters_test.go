package adapters_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	domainerror "github.com/slogsolutions/Audit-Management-Platform/internal/domain/error"
	"github.com/slogsolutions/Audit-Management-Platform/internal/integration/adapters"
)

func TestTokenService_RoundTrip(t *testing.T) {
	svc := adapters.NewTokenService("test-secret", time.Hour)
	userID := uuid.New()

	token, err := svc.GenerateAccessToken(context.Background(), userID, "asha@example.com", "ADMIN")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), token.ExpiresAt, 5*time.Second)

	claims, err := svc.ValidateAccessToken(context.Background(), token.Token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "asha@example.com", claims.Email)
	assert.Equal(t, "ADMIN", claims.Role)
}

func TestTokenService_Rejects(t *testing.T) {
	ctx := context.Background()
	issued, err := adapters.NewTokenService("secret-a", time.Hour).GenerateAccessToken(ctx, uuid.New(), "a@example.com", "MEMBER")
	require.NoError(t, err)

	t.Run("other secret", func(t *testing.T) {
		_, err := adapters.NewTokenService("secret-b", time.Hour).ValidateAccessToken(ctx, issued.Token)
		assert.ErrorIs(t, err, domainerror.ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := adapters.NewTokenService("secret-a", time.Hour).ValidateAccessToken(ctx, "not.a.jwt")
		assert.ErrorIs(t, err, domainerror.ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		expired, err := adapters.NewTokenService("secret-a", -time.Minute).GenerateAccessToken(ctx, uuid.New(), "a@example.com", "MEMBER")
		require.NoError(t, err)
		_, err = adapters.NewTokenService("secret-a", time.Hour).ValidateAccessToken(ctx, expired.Token)
		assert.ErrorIs(t, err, domainerror.ErrExpiredToken)
	})
}

func TestPasswordService(t *testing.T) {
	svc := adapters.NewPasswordService(bcrypt.MinCost)

	hash, err := svc.HashPassword("ledger2026")
	require.NoError(t, err)
	assert.NotEqual(t, "ledger2026", hash)

	require.NoError(t, svc.VerifyPassword(hash, "ledger2026"))
	assert.ErrorIs(t, svc.VerifyPassword(hash, "ledger2027"), domainerror.ErrInvalidCredentials)

	tests := []struct {
		password string
		wantErr  bool
	}{
		{"short1", true},
		{"onlyletters", true},
		{"1234567890", true},
		{"ledger2026", false},
	}
	for _, tt := range tests {
		t.Run(tt.password, func(t *testing.T) {
			err := svc.ValidatePasswordStrength(tt.password)
			if tt.wantErr {
				assert.ErrorIs(t, err, domainerror.ErrWeakPassword)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
