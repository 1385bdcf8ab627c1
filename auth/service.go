package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/nora-sch/s-r-portfolio/apperror"
	"github.com/nora-sch/s-r-portfolio/config"
	"github.com/nora-sch/s-r-portfolio/lifecycle"
	"github.com/nora-sch/s-r-portfolio/roles"
)

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

// AuthService provides login, token issuance and token validation. It talks
// to the users table directly for credential checks; profile management lives
// in the users package.
type AuthService struct {
	dbPool     *pgxpool.Pool
	authConfig config.AuthConfig
	log        zerolog.Logger
}

// NewAuthService creates a new AuthService.
func NewAuthService(dbPool *pgxpool.Pool, authConfig config.AuthConfig, log zerolog.Logger) *AuthService {
	return &AuthService{
		dbPool:     dbPool,
		authConfig: authConfig,
		log:        log,
	}
}

// CustomClaims is the JWT payload: the user identity, the token type, and the
// registered claims. IssuedAt matters: the middleware compares it against the
// user's password-change timestamp to reject stale tokens.
type CustomClaims struct {
	UserID    string `json:"user_id"`
	TokenType string `json:"token_type"` // "access" or "refresh"
	jwt.RegisteredClaims
}

// identity is the slice of the users row that authentication needs.
type identity struct {
	ID                 string
	Username           string
	HashedPassword     string
	Roles              []string
	PasswordChangeDate *int64
}

// Login authenticates a user by username or email and returns tokens.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*TokenResponse, error) {
	user, err := s.getIdentityByLogin(ctx, req.Login)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Do not reveal whether the username or the password was wrong.
			return nil, apperror.NewAuthError("invalid credentials", nil)
		}
		s.log.Error().Err(err).Msg("failed to look up user during login")
		return nil, apperror.NewDatabaseError("failed to get user", err)
	}

	if !lifecycle.VerifyPassword(user.HashedPassword, req.Password) {
		return nil, apperror.NewAuthError("invalid credentials", nil)
	}

	return s.IssueTokens(user.ID)
}

// RefreshToken generates a new access token from a valid refresh token.
func (s *AuthService) RefreshToken(ctx context.Context, refreshTokenString string) (*TokenResponse, error) {
	claims, err := s.validateToken(refreshTokenString, tokenTypeRefresh)
	if err != nil {
		return nil, apperror.NewAuthError("invalid refresh token", err)
	}

	// A refresh token issued before a password change must not mint new
	// access tokens either.
	ident, err := s.GetIdentity(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if credentialStale(ident.PasswordChangeDate, claims.IssuedAt.Time) {
		return nil, apperror.NewExpiredCredentialError("token was issued before the last password change", nil)
	}

	newAccessToken, newAccessExpiresAt, err := s.generateSpecificToken(claims.UserID, tokenTypeAccess, s.authConfig.AccessTokenDuration)
	if err != nil {
		return nil, fmt.Errorf("failed to generate new access token: %w", err)
	}

	return &TokenResponse{
		AccessToken:  newAccessToken,
		RefreshToken: refreshTokenString,
		TokenType:    "Bearer",
		ExpiresIn:    newAccessExpiresAt.Unix(),
	}, nil
}

// IssueTokens creates a fresh access/refresh token pair for the given user.
// Also used by the password-reset flow, where the response must carry a token
// newer than the just-stamped password-change date.
func (s *AuthService) IssueTokens(userID string) (*TokenResponse, error) {
	accessToken, accessExpiresAt, err := s.generateSpecificToken(userID, tokenTypeAccess, s.authConfig.AccessTokenDuration)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, _, err := s.generateSpecificToken(userID, tokenTypeRefresh, s.authConfig.RefreshTokenDuration)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return &TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    accessExpiresAt.Unix(),
	}, nil
}

// generateSpecificToken creates a JWT with the given type and duration.
func (s *AuthService) generateSpecificToken(userID string, tokenType string, duration time.Duration) (string, time.Time, error) {
	now := time.Now()
	expirationTime := now.Add(duration)
	claims := &CustomClaims{
		UserID:    userID,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    "s-r-portfolio",
			Subject:   userID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.authConfig.JWTSecret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, expirationTime, nil
}

// validateToken parses a JWT string and checks its signature, expiry and type.
func (s *AuthService) validateToken(tokenString string, expectedTokenType string) (*CustomClaims, error) {
	claims := &CustomClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.authConfig.JWTSecret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("token is invalid")
	}
	if claims.TokenType != expectedTokenType {
		return nil, fmt.Errorf("invalid token type: expected %s, got %s", expectedTokenType, claims.TokenType)
	}
	if claims.IssuedAt == nil {
		return nil, errors.New("token is missing the iat claim")
	}
	return claims, nil
}

// credentialStale reports whether a token issued at issuedAt predates the
// user's most recent password change. A nil change date means the password
// was never changed, so no token can be stale.
func credentialStale(passwordChangeDate *int64, issuedAt time.Time) bool {
	return passwordChangeDate != nil && issuedAt.Unix() < *passwordChangeDate
}

// GetIdentity loads the authentication view of a user by id: roles and the
// password-change timestamp, without profile fields.
func (s *AuthService) GetIdentity(ctx context.Context, userID string) (*Identity, error) {
	var ident identity
	query := `SELECT id, username, password, roles, password_change_date FROM users WHERE id = $1`
	err := s.dbPool.QueryRow(ctx, query, userID).Scan(
		&ident.ID, &ident.Username, &ident.HashedPassword, &ident.Roles, &ident.PasswordChangeDate,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewAuthError("user no longer exists", nil)
		}
		s.log.Error().Err(err).Str("user_id", userID).Msg("failed to load identity")
		return nil, apperror.NewDatabaseError("failed to get user", err)
	}
	return &Identity{
		UserID:             ident.ID,
		Username:           ident.Username,
		Roles:              roles.FromStrings(ident.Roles),
		PasswordChangeDate: ident.PasswordChangeDate,
	}, nil
}

// Identity is the authenticated view of a user exposed to middleware and
// handlers: who they are and what they hold, never their credentials.
type Identity struct {
	UserID             string
	Username           string
	Roles              []roles.Role
	PasswordChangeDate *int64
}

func (s *AuthService) getIdentityByLogin(ctx context.Context, login string) (*identity, error) {
	var ident identity
	var query string
	arg := login
	if strings.Contains(login, "@") {
		query = `SELECT id, username, password, roles, password_change_date FROM users WHERE email = $1`
		arg = strings.ToLower(login)
	} else {
		query = `SELECT id, username, password, roles, password_change_date FROM users WHERE username = $1`
	}
	err := s.dbPool.QueryRow(ctx, query, arg).Scan(
		&ident.ID, &ident.Username, &ident.HashedPassword, &ident.Roles, &ident.PasswordChangeDate,
	)
	if err != nil {
		return nil, err
	}
	return &ident, nil
}
