package roles

import "testing"

func TestAtLeast_Hierarchy(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		held     []Role
		required Role
		want     bool
	}{
		{"commentator satisfies commentator", []Role{Commentator}, Commentator, true},
		{"commentator does not satisfy writer", []Role{Commentator}, Writer, false},
		{"writer satisfies commentator", []Role{Writer}, Commentator, true},
		{"writer satisfies writer", []Role{Writer}, Writer, true},
		{"writer does not satisfy editor", []Role{Writer}, Editor, false},
		{"editor satisfies writer", []Role{Editor}, Writer, true},
		{"admin satisfies editor", []Role{Admin}, Editor, true},
		{"superadmin satisfies admin", []Role{Superadmin}, Admin, true},
		{"superadmin satisfies commentator", []Role{Superadmin}, Commentator, true},
		{"admin does not satisfy superadmin", []Role{Admin}, Superadmin, false},
		{"any role in the set counts", []Role{Commentator, Editor}, Writer, true},
		{"empty set satisfies nothing", nil, Commentator, false},
		{"unknown role satisfies nothing", []Role{Role("ROLE_BOGUS")}, Commentator, false},
		{"unknown requirement never satisfied", []Role{Superadmin}, Role("ROLE_BOGUS"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AtLeast(tt.held, tt.required); got != tt.want {
				t.Fatalf("AtLeast(%v, %v) = %v, want %v", tt.held, tt.required, got, tt.want)
			}
		})
	}
}

func TestValid(t *testing.T) {
	t.Parallel()

	for _, r := range []Role{Commentator, Writer, Editor, Admin, Superadmin} {
		if !Valid(r) {
			t.Fatalf("expected %v to be valid", r)
		}
	}
	if Valid(Role("ROLE_BOGUS")) {
		t.Fatal("expected unknown role to be invalid")
	}
}

func TestRoundTripStrings(t *testing.T) {
	t.Parallel()

	in := []string{"ROLE_WRITER", "ROLE_ADMIN"}
	got := ToStrings(FromStrings(in))
	if len(got) != len(in) {
		t.Fatalf("length mismatch: got %d want %d", len(got), len(in))
	}
	for i := range in {
		if got[i] != in[i] {
			t.Fatalf("index %d: got %q want %q", i, got[i], in[i])
		}
	}
}

func TestDefault(t *testing.T) {
	t.Parallel()

	if len(Default) == 0 {
		t.Fatal("default role set must not be empty")
	}
	if Default[0] != Commentator {
		t.Fatalf("default role is %v, want %v", Default[0], Commentator)
	}
}
