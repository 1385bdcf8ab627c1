// Package users covers registration, profile management and the
// password-reset flow. This file defines the User model and its
// requester-dependent serialization.
package users

import (
	"time"

	"github.com/nora-sch/s-r-portfolio/authz"
	"github.com/nora-sch/s-r-portfolio/roles"
)

// User represents a user row. The hashed password never leaves the package;
// plaintext passwords only exist transiently inside request DTOs.
type User struct {
	ID                 string       `json:"id"`
	Username           string       `json:"username"`
	Email              string       `json:"email"`
	HashedPassword     string       `json:"-"`
	Firstname          string       `json:"firstname"`
	Lastname           string       `json:"lastname"`
	Roles              []roles.Role `json:"roles"`
	PasswordChangeDate *int64       `json:"-"` // Unix seconds of the last password change
	CreatedAt          time.Time    `json:"created_at"`
}

// ToProfile serializes the user for a response. Privileged fields (email,
// roles) are only included when the requester is the user themselves or holds
// admin or above; everyone else sees the public subset.
func (u *User) ToProfile(requester authz.Requester) *ProfileResponse {
	resp := &ProfileResponse{
		ID:        u.ID,
		Username:  u.Username,
		Firstname: u.Firstname,
		Lastname:  u.Lastname,
		CreatedAt: u.CreatedAt,
	}
	if authz.CanViewPrivilegedFields(requester, u.ID) {
		resp.Email = u.Email
		resp.Roles = roles.ToStrings(u.Roles)
	}
	return resp
}
