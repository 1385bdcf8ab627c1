package auth

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nora-sch/s-r-portfolio/config"
)

func testService(t *testing.T) *AuthService {
	t.Helper()
	cfg := config.AuthConfig{
		JWTSecret:            "test-secret",
		AccessTokenDuration:  15 * time.Minute,
		RefreshTokenDuration: 168 * time.Hour,
	}
	// Token generation and validation never touch the pool.
	return NewAuthService(nil, cfg, zerolog.Nop())
}

func TestTokenRoundTrip(t *testing.T) {
	t.Parallel()
	s := testService(t)

	tokenString, expiresAt, err := s.generateSpecificToken("user-1", tokenTypeAccess, 15*time.Minute)
	require.NoError(t, err)
	assert.True(t, expiresAt.After(time.Now()))

	claims, err := s.validateToken(tokenString, tokenTypeAccess)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, tokenTypeAccess, claims.TokenType)
	require.NotNil(t, claims.IssuedAt)
}

func TestValidateToken_RejectsWrongType(t *testing.T) {
	t.Parallel()
	s := testService(t)

	refresh, _, err := s.generateSpecificToken("user-1", tokenTypeRefresh, time.Hour)
	require.NoError(t, err)

	_, err = s.validateToken(refresh, tokenTypeAccess)
	assert.Error(t, err, "a refresh token must not pass as an access token")
}

func TestValidateToken_RejectsExpired(t *testing.T) {
	t.Parallel()
	s := testService(t)

	expired, _, err := s.generateSpecificToken("user-1", tokenTypeAccess, -time.Minute)
	require.NoError(t, err)

	_, err = s.validateToken(expired, tokenTypeAccess)
	assert.Error(t, err)
}

func TestValidateToken_RejectsWrongSecret(t *testing.T) {
	t.Parallel()
	s := testService(t)

	tokenString, _, err := s.generateSpecificToken("user-1", tokenTypeAccess, time.Hour)
	require.NoError(t, err)

	other := NewAuthService(nil, config.AuthConfig{JWTSecret: "different-secret"}, zerolog.Nop())
	_, err = other.validateToken(tokenString, tokenTypeAccess)
	assert.Error(t, err)
}

func TestValidateToken_RejectsGarbage(t *testing.T) {
	t.Parallel()
	s := testService(t)

	_, err := s.validateToken("not.a.token", tokenTypeAccess)
	assert.Error(t, err)
}

func TestCredentialStale(t *testing.T) {
	t.Parallel()

	changeDate := int64(1_000_000)

	tests := []struct {
		name       string
		changeDate *int64
		issuedAt   time.Time
		want       bool
	}{
		{"never changed", nil, time.Unix(500, 0), false},
		{"issued before change", &changeDate, time.Unix(changeDate-1, 0), true},
		{"issued same second as change", &changeDate, time.Unix(changeDate, 0), false},
		{"issued after change", &changeDate, time.Unix(changeDate+1, 0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, credentialStale(tt.changeDate, tt.issuedAt))
		})
	}
}
