package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nora-sch/s-r-portfolio/apperror"
	"github.com/nora-sch/s-r-portfolio/roles"
)

func requester(id string, rs ...roles.Role) Requester {
	return Requester{UserID: id, Roles: rs}
}

func TestCanCreatePost(t *testing.T) {
	t.Parallel()

	assert.Error(t, CanCreatePost(requester("u1", roles.Commentator)))
	assert.NoError(t, CanCreatePost(requester("u1", roles.Writer)))
	assert.NoError(t, CanCreatePost(requester("u1", roles.Editor)))
	assert.NoError(t, CanCreatePost(requester("u1", roles.Superadmin)))

	err := CanCreatePost(requester("u1", roles.Commentator))
	assert.True(t, apperror.IsForbidden(err), "denial must be a Forbidden error")
}

func TestCanCreateComment(t *testing.T) {
	t.Parallel()

	// A commentator may comment but not post.
	commentator := requester("u1", roles.Commentator)
	assert.NoError(t, CanCreateComment(commentator))
	assert.Error(t, CanCreatePost(commentator))

	// A writer may do both.
	writer := requester("u2", roles.Writer)
	assert.NoError(t, CanCreateComment(writer))
	assert.NoError(t, CanCreatePost(writer))

	// No recognized role at all: denied.
	assert.Error(t, CanCreateComment(requester("u3")))
}

func TestCanModifyPost(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		req      Requester
		authorID string
		allowed  bool
	}{
		{"author may modify own post", requester("u1", roles.Writer), "u1", true},
		{"other writer may not", requester("u2", roles.Writer), "u1", false},
		{"editor may not", requester("u2", roles.Editor), "u1", false},
		{"admin may modify any post", requester("u2", roles.Admin), "u1", true},
		{"superadmin may modify any post", requester("u2", roles.Superadmin), "u1", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CanModifyPost(tt.req, tt.authorID)
			if tt.allowed {
				assert.NoError(t, err)
			} else {
				assert.True(t, apperror.IsForbidden(err))
			}
		})
	}
}

func TestCanModifyComment(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		req      Requester
		authorID string
		allowed  bool
	}{
		{"author may modify own comment", requester("u1", roles.Commentator), "u1", true},
		{"other commentator may not", requester("u2", roles.Commentator), "u1", false},
		{"writer may not", requester("u2", roles.Writer), "u1", false},
		{"editor may modify any comment", requester("u2", roles.Editor), "u1", true},
		{"admin may modify any comment", requester("u2", roles.Admin), "u1", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CanModifyComment(tt.req, tt.authorID)
			if tt.allowed {
				assert.NoError(t, err)
			} else {
				assert.True(t, apperror.IsForbidden(err))
			}
		})
	}
}

func TestCanAccessProfile(t *testing.T) {
	t.Parallel()

	assert.NoError(t, CanAccessProfile(requester("u1", roles.Commentator), "u1"))
	// Even an admin may not manage someone else's profile.
	assert.True(t, apperror.IsForbidden(CanAccessProfile(requester("u2", roles.Superadmin), "u1")))
}

func TestCanViewPrivilegedFields(t *testing.T) {
	t.Parallel()

	assert.True(t, CanViewPrivilegedFields(requester("u1", roles.Commentator), "u1"), "owner")
	assert.False(t, CanViewPrivilegedFields(requester("u2", roles.Writer), "u1"), "stranger")
	assert.False(t, CanViewPrivilegedFields(requester("u2", roles.Editor), "u1"), "editor is not enough")
	assert.True(t, CanViewPrivilegedFields(requester("u2", roles.Admin), "u1"), "admin")
	assert.True(t, CanViewPrivilegedFields(requester("u2", roles.Superadmin), "u1"), "superadmin")
}
