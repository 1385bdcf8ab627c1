package users

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/nora-sch/s-r-portfolio/apperror"
)

// validate is the shared validator instance. Struct tags carry the field
// constraints; rules the tags cannot express (password character classes,
// confirmation equality) are checked manually in the Validate methods so the
// whole validation strategy stays in one place.
var validate = validator.New()

// passwordSpecials are the special characters the password policy accepts.
const passwordSpecials = "@#$%^&+=_"

// RegisterRequest represents the registration payload. The retyped password
// is a request-only confirmation field; it is never persisted.
type RegisterRequest struct {
	Username        string `json:"username" validate:"required,min=6,max=255"`
	Password        string `json:"password" validate:"required"`
	RetypedPassword string `json:"retyped_password" validate:"required"`
	Email           string `json:"email" validate:"required,email,min=6,max=255"`
	Firstname       string `json:"firstname" validate:"required,min=2,max=255"`
	Lastname        string `json:"lastname" validate:"required,min=2,max=255"`
}

// Validate checks field constraints, the password policy, and that the two
// password fields match.
func (r *RegisterRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return apperror.NewValidationError(validationMessage(err), err)
	}
	if err := checkPasswordStrength(r.Password); err != nil {
		return err
	}
	if r.Password != r.RetypedPassword {
		return apperror.NewValidationError("passwords do not match", nil)
	}
	return nil
}

// UpdateProfileRequest represents a profile update. Pointer fields allow
// partial updates: nil means "leave unchanged".
type UpdateProfileRequest struct {
	Email     *string `json:"email,omitempty" validate:"omitempty,email,min=6,max=255"`
	Firstname *string `json:"firstname,omitempty" validate:"omitempty,min=2,max=255"`
	Lastname  *string `json:"lastname,omitempty" validate:"omitempty,min=2,max=255"`
}

// Validate checks the provided fields and rejects an empty update.
func (r *UpdateProfileRequest) Validate() error {
	if r.Email == nil && r.Firstname == nil && r.Lastname == nil {
		return apperror.NewValidationError("no fields provided for update", nil)
	}
	if err := validate.Struct(r); err != nil {
		return apperror.NewValidationError(validationMessage(err), err)
	}
	return nil
}

// ResetPasswordRequest represents the password-reset payload. All three
// fields are request-only and discarded after the operation.
type ResetPasswordRequest struct {
	OldPassword        string `json:"old_password" validate:"required"`
	NewPassword        string `json:"new_password" validate:"required"`
	NewRetypedPassword string `json:"new_retyped_password" validate:"required"`
}

// Validate checks the new password against the policy and its confirmation.
// The old password is verified against the stored hash by the service.
func (r *ResetPasswordRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return apperror.NewValidationError(validationMessage(err), err)
	}
	if err := checkPasswordStrength(r.NewPassword); err != nil {
		return err
	}
	if r.NewPassword != r.NewRetypedPassword {
		return apperror.NewValidationError("passwords do not match", nil)
	}
	return nil
}

// ProfileResponse is the serialized view of a user. Email and roles are
// omitted unless the requester may see privileged fields.
type ProfileResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Firstname string    `json:"firstname"`
	Lastname  string    `json:"lastname"`
	Email     string    `json:"email,omitempty"`
	Roles     []string  `json:"roles,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// checkPasswordStrength enforces the password policy: at least seven
// characters with one digit, one lowercase letter, one uppercase letter and
// one special character. Checked class by class because RE2 has no
// lookaheads.
func checkPasswordStrength(password string) error {
	var hasDigit, hasLower, hasUpper, hasSpecial bool
	for _, c := range password {
		switch {
		case c >= '0' && c <= '9':
			hasDigit = true
		case c >= 'a' && c <= 'z':
			hasLower = true
		case c >= 'A' && c <= 'Z':
			hasUpper = true
		case strings.ContainsRune(passwordSpecials, c):
			hasSpecial = true
		}
	}
	if len(password) < 7 || !hasDigit || !hasLower || !hasUpper || !hasSpecial {
		return apperror.NewValidationError(
			"password must be at least seven characters long and contain at least one digit, one uppercase letter, one lowercase letter and one of "+passwordSpecials, nil)
	}
	return nil
}

// validationMessage flattens a validator error into a readable message.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fields := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, strings.ToLower(fe.Field())+" failed on '"+fe.Tag()+"'")
		}
		return "invalid fields: " + strings.Join(fields, ", ")
	}
	return "invalid request"
}
