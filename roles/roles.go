// Package roles defines the ordered privilege hierarchy used by the
// authorization policy. A higher role implicitly satisfies any check that
// requires a lower one.
package roles

// Role is a named privilege level.
type Role string

const (
	Commentator Role = "ROLE_COMMENTATOR"
	Writer      Role = "ROLE_WRITER"
	Editor      Role = "ROLE_EDITOR"
	Admin       Role = "ROLE_ADMIN"
	Superadmin  Role = "ROLE_SUPERADMIN"
)

// Default is the role set assigned to newly registered users.
var Default = []Role{Commentator}

// rank orders the hierarchy: commentator < writer < editor < admin < superadmin.
var rank = map[Role]int{
	Commentator: 1,
	Writer:      2,
	Editor:      3,
	Admin:       4,
	Superadmin:  5,
}

// Valid reports whether r is a known role.
func Valid(r Role) bool {
	_, ok := rank[r]
	return ok
}

// AtLeast reports whether any role in held reaches the required level.
// Unknown roles never satisfy a check.
func AtLeast(held []Role, required Role) bool {
	want, ok := rank[required]
	if !ok {
		return false
	}
	for _, r := range held {
		if rank[r] >= want {
			return true
		}
	}
	return false
}

// FromStrings converts a string slice (e.g. a text[] database column) to roles.
func FromStrings(ss []string) []Role {
	out := make([]Role, 0, len(ss))
	for _, s := range ss {
		out = append(out, Role(s))
	}
	return out
}

// ToStrings converts a role slice to plain strings for persistence.
func ToStrings(rs []Role) []string {
	out := make([]string, 0, len(rs))
	for _, r := range rs {
		out = append(out, string(r))
	}
	return out
}
