package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/nora-sch/s-r-portfolio/apperror"
	"github.com/nora-sch/s-r-portfolio/auth"
	"github.com/nora-sch/s-r-portfolio/authz"
	"github.com/nora-sch/s-r-portfolio/lifecycle"
	"github.com/nora-sch/s-r-portfolio/roles"
)

// pgUniqueViolation is the PostgreSQL error code for unique constraint
// violations. Duplicates are surfaced from the store rather than pre-checked,
// to avoid check-then-insert races.
const pgUniqueViolation = "23505"

// TokenIssuer mints a fresh token pair for a user. Implemented by
// auth.AuthService; the password-reset flow needs it so the response carries
// a token newer than the just-stamped password-change date.
type TokenIssuer interface {
	IssueTokens(userID string) (*auth.TokenResponse, error)
}

// UserService provides registration, profile and password-reset operations.
type UserService struct {
	db     *pgxpool.Pool
	tokens TokenIssuer
	log    zerolog.Logger
}

// NewUserService creates a new UserService.
func NewUserService(db *pgxpool.Pool, tokens TokenIssuer, log zerolog.Logger) *UserService {
	return &UserService{db: db, tokens: tokens, log: log}
}

// Register creates a new user. The password is hashed before persistence and
// the default commentator role is assigned. Duplicate username or email
// surfaces as a Conflict from the unique constraints.
func (s *UserService) Register(ctx context.Context, req RegisterRequest) (*User, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	hashed, err := lifecycle.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &User{
		ID:             uuid.New().String(),
		Username:       req.Username,
		Email:          strings.ToLower(req.Email),
		HashedPassword: hashed,
		Firstname:      req.Firstname,
		Lastname:       req.Lastname,
		Roles:          roles.Default,
	}

	query := `INSERT INTO users (id, username, email, password, firstname, lastname, roles)
              VALUES ($1, $2, $3, $4, $5, $6, $7)
              RETURNING created_at`
	err = s.db.QueryRow(ctx, query,
		user.ID, user.Username, user.Email, user.HashedPassword,
		user.Firstname, user.Lastname, roles.ToStrings(user.Roles),
	).Scan(&user.CreatedAt)
	if err != nil {
		if conflictErr := asConflict(err); conflictErr != nil {
			return nil, conflictErr
		}
		s.log.Error().Err(err).Msg("failed to create user")
		return nil, apperror.NewDatabaseError("failed to create user", err)
	}
	return user, nil
}

// GetUser retrieves a user by id.
func (s *UserService) GetUser(ctx context.Context, userID string) (*User, error) {
	query := `SELECT id, username, email, password, firstname, lastname, roles, password_change_date, created_at
              FROM users WHERE id = $1`
	var user User
	var roleStrings []string
	err := s.db.QueryRow(ctx, query, userID).Scan(
		&user.ID, &user.Username, &user.Email, &user.HashedPassword,
		&user.Firstname, &user.Lastname, &roleStrings,
		&user.PasswordChangeDate, &user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFoundError(fmt.Sprintf("user %s not found", userID), nil)
		}
		s.log.Error().Err(err).Str("user_id", userID).Msg("failed to get user")
		return nil, apperror.NewDatabaseError("failed to get user", err)
	}
	user.Roles = roles.FromStrings(roleStrings)
	return &user, nil
}

// UpdateProfile updates the mutable profile fields (name, email) of the
// requester's own profile. Authorization is enforced here, not just in the
// handler, so no caller can bypass it.
func (s *UserService) UpdateProfile(ctx context.Context, requester authz.Requester, userID string, req *UpdateProfileRequest) (*User, error) {
	if err := authz.CanAccessProfile(requester, userID); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var setClauses []string
	var args []interface{}
	argID := 1

	if req.Email != nil {
		setClauses = append(setClauses, fmt.Sprintf("email = $%d", argID))
		args = append(args, strings.ToLower(*req.Email))
		argID++
	}
	if req.Firstname != nil {
		setClauses = append(setClauses, fmt.Sprintf("firstname = $%d", argID))
		args = append(args, *req.Firstname)
		argID++
	}
	if req.Lastname != nil {
		setClauses = append(setClauses, fmt.Sprintf("lastname = $%d", argID))
		args = append(args, *req.Lastname)
		argID++
	}
	args = append(args, userID)

	query := fmt.Sprintf(`UPDATE users SET %s WHERE id = $%d
              RETURNING id, username, email, password, firstname, lastname, roles, password_change_date, created_at`,
		strings.Join(setClauses, ", "), argID)

	var user User
	var roleStrings []string
	err := s.db.QueryRow(ctx, query, args...).Scan(
		&user.ID, &user.Username, &user.Email, &user.HashedPassword,
		&user.Firstname, &user.Lastname, &roleStrings,
		&user.PasswordChangeDate, &user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFoundError(fmt.Sprintf("user %s not found", userID), nil)
		}
		if conflictErr := asConflict(err); conflictErr != nil {
			return nil, conflictErr
		}
		s.log.Error().Err(err).Str("user_id", userID).Msg("failed to update profile")
		return nil, apperror.NewDatabaseError("failed to update user profile", err)
	}
	user.Roles = roles.FromStrings(roleStrings)
	return &user, nil
}

// ResetPassword is the dedicated password-reset flow: verify the old password
// against the stored hash, hash and store the new one, stamp the
// password-change date, and issue a fresh token reflecting the new credential
// state. Every token issued before this moment becomes invalid.
func (s *UserService) ResetPassword(ctx context.Context, requester authz.Requester, userID string, req *ResetPasswordRequest) (*auth.TokenResponse, error) {
	if err := authz.CanAccessProfile(requester, userID); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := verifyOldPassword(user.HashedPassword, req.OldPassword); err != nil {
		return nil, err
	}

	hashed, err := lifecycle.HashPassword(req.NewPassword)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	changeDate := time.Now().Unix()
	tag, err := s.db.Exec(ctx,
		`UPDATE users SET password = $1, password_change_date = $2 WHERE id = $3`,
		hashed, changeDate, userID,
	)
	if err != nil {
		s.log.Error().Err(err).Str("user_id", userID).Msg("failed to reset password")
		return nil, apperror.NewDatabaseError("failed to reset password", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, apperror.NewNotFoundError(fmt.Sprintf("user %s not found", userID), nil)
	}

	return s.tokens.IssueTokens(userID)
}

// verifyOldPassword checks the reset request's old password against the
// stored hash. A mismatch is a validation failure, not an auth failure: the
// requester is already authenticated. The stored password stays unchanged.
func verifyOldPassword(hashedPassword, oldPassword string) error {
	if !lifecycle.VerifyPassword(hashedPassword, oldPassword) {
		return apperror.NewValidationError("old password is incorrect", nil)
	}
	return nil
}

// asConflict maps a unique-constraint violation to a Conflict error, naming
// the offending field from the constraint. Returns nil for other errors.
func asConflict(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != pgUniqueViolation {
		return nil
	}
	switch {
	case strings.Contains(pgErr.ConstraintName, "username"):
		return apperror.NewConflictError("username already exists", nil)
	case strings.Contains(pgErr.ConstraintName, "email"):
		return apperror.NewConflictError("email already exists", nil)
	default:
		return apperror.NewConflictError("resource already exists", nil)
	}
}
