package users

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/nora-sch/s-r-portfolio/authz"
	"github.com/nora-sch/s-r-portfolio/roles"
)

func sampleUser() *User {
	return &User{
		ID:        "user-1",
		Username:  "johndoe",
		Email:     "john@example.com",
		Firstname: "John",
		Lastname:  "Doe",
		Roles:     []roles.Role{roles.Commentator},
		CreatedAt: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestToProfile_OwnerSeesPrivilegedFields(t *testing.T) {
	t.Parallel()

	u := sampleUser()
	resp := u.ToProfile(authz.Requester{UserID: "user-1", Roles: u.Roles})

	assert.Equal(t, "john@example.com", resp.Email)
	assert.Equal(t, []string{"ROLE_COMMENTATOR"}, resp.Roles)
	assert.Equal(t, "johndoe", resp.Username)
}

func TestToProfile_StrangerSeesPublicSubset(t *testing.T) {
	t.Parallel()

	u := sampleUser()
	resp := u.ToProfile(authz.Requester{UserID: "user-2", Roles: []roles.Role{roles.Writer}})

	assert.Empty(t, resp.Email)
	assert.Empty(t, resp.Roles)
	assert.Equal(t, "johndoe", resp.Username)
	assert.Equal(t, "John", resp.Firstname)
	assert.Equal(t, "Doe", resp.Lastname)
}

func TestToProfile_AdminSeesPrivilegedFields(t *testing.T) {
	t.Parallel()

	u := sampleUser()
	resp := u.ToProfile(authz.Requester{UserID: "user-2", Roles: []roles.Role{roles.Admin}})

	assert.Equal(t, "john@example.com", resp.Email)
	assert.Equal(t, []string{"ROLE_COMMENTATOR"}, resp.Roles)
}
