// Package authz is the single authorization policy module consulted by every
// write operation. The per-resource rules that the original scattered across
// entity annotations are consolidated here so the full policy is visible in
// one table-like set of functions.
package authz

import (
	"github.com/nora-sch/s-r-portfolio/apperror"
	"github.com/nora-sch/s-r-portfolio/roles"
)

// Requester is the authenticated identity performing an operation.
type Requester struct {
	UserID string
	Roles  []roles.Role
}

// CanCreatePost permits blog post creation for writer and above.
func CanCreatePost(req Requester) error {
	if !roles.AtLeast(req.Roles, roles.Writer) {
		return apperror.NewForbiddenError("creating blog posts requires the writer role", nil)
	}
	return nil
}

// CanModifyPost permits update/delete of a post for its author, or admin and above.
func CanModifyPost(req Requester, authorID string) error {
	if req.UserID == authorID || roles.AtLeast(req.Roles, roles.Admin) {
		return nil
	}
	return apperror.NewForbiddenError("only the author or an admin may modify this post", nil)
}

// CanCreateComment permits comment creation for commentator and above.
func CanCreateComment(req Requester) error {
	if !roles.AtLeast(req.Roles, roles.Commentator) {
		return apperror.NewForbiddenError("commenting requires the commentator role", nil)
	}
	return nil
}

// CanModifyComment permits update of a comment for its author, or editor and above.
func CanModifyComment(req Requester, authorID string) error {
	if req.UserID == authorID || roles.AtLeast(req.Roles, roles.Editor) {
		return nil
	}
	return apperror.NewForbiddenError("only the author or an editor may modify this comment", nil)
}

// CanAccessProfile permits profile update and password reset only for the
// same identity. Reads go through CanViewPrivilegedFields instead.
func CanAccessProfile(req Requester, profileID string) error {
	if req.UserID != profileID {
		return apperror.NewForbiddenError("you may only manage your own profile", nil)
	}
	return nil
}

// CanViewPrivilegedFields reports whether the requester may see a profile's
// privileged fields (email, roles): the owner, or admin and above.
func CanViewPrivilegedFields(req Requester, profileID string) bool {
	return req.UserID == profileID || roles.AtLeast(req.Roles, roles.Admin)
}
