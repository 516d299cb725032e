package domain

import (
	"testing"

	"github.com/google/uuid"
)

func TestNewUser(t *testing.T) {
	t.Parallel() // Enable parallel execution
	user, err := NewUser("alice", "plaintext-password", RoleStudent, RoleReviewer)

	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if user.ID == uuid.Nil {
		t.Error("Expected non-nil UUID, got nil UUID")
	}

	if user.Reputation != 0 {
		t.Errorf("Expected reputation 0, got %d", user.Reputation)
	}

	if !user.HasRole(RoleStudent) || !user.HasRole(RoleReviewer) {
		t.Error("Expected user to hold both granted roles")
	}

	if user.HasRole(RoleAdmin) {
		t.Error("Expected user to not hold admin role")
	}

	// Test empty username
	_, err = NewUser("  ", "password")
	if err != ErrEmptyUsername {
		t.Errorf("Expected error %v, got %v", ErrEmptyUsername, err)
	}

	// Test empty password
	_, err = NewUser("alice", "")
	if err != ErrEmptyPassword {
		t.Errorf("Expected error %v, got %v", ErrEmptyPassword, err)
	}
}

func TestRoleBitsRoundTrip(t *testing.T) {
	t.Parallel() // Enable parallel execution
	cases := []struct {
		name  string
		roles []Role
		bits  int
	}{
		{"no roles", nil, 0},
		{"student", []Role{RoleStudent}, 1},
		{"admin", []Role{RoleAdmin}, 2},
		{"student and reviewer", []Role{RoleStudent, RoleReviewer}, 5},
		{"all roles", []Role{RoleStudent, RoleAdmin, RoleReviewer, RoleInstructor, RoleStaff}, 31},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			bits := RoleBits(tc.roles)
			if bits != tc.bits {
				t.Errorf("Expected bits %d, got %d", tc.bits, bits)
			}

			roles := RolesFromBits(bits)
			if len(roles) != len(tc.roles) {
				t.Fatalf("Expected %d roles after round trip, got %d", len(tc.roles), len(roles))
			}
			for _, want := range tc.roles {
				found := false
				for _, got := range roles {
					if got == want {
						found = true
						break
					}
				}
				if !found {
					t.Errorf("Expected role %s to survive round trip", want)
				}
			}
		})
	}
}

func TestUserGrantRoleIdempotent(t *testing.T) {
	t.Parallel() // Enable parallel execution
	user, err := NewUser("alice", "password", RoleStudent)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	user.GrantRole(RoleStudent)
	user.GrantRole(RoleStudent)
	if len(user.Roles) != 1 {
		t.Errorf("Expected 1 role after duplicate grants, got %d", len(user.Roles))
	}

	user.GrantRole(RoleStaff)
	if !user.HasRole(RoleStaff) {
		t.Error("Expected staff role after grant")
	}
}

func TestTrustedReviewers(t *testing.T) {
	t.Parallel() // Enable parallel execution
	user, err := NewUser("alice", "password", RoleStudent)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	reviewer := uuid.New()

	if !user.AddTrustedReviewer(reviewer) {
		t.Error("Expected first add to succeed")
	}
	if user.AddTrustedReviewer(reviewer) {
		t.Error("Expected duplicate add to be rejected")
	}
	if len(user.TrustedReviewers) != 1 {
		t.Errorf("Expected 1 trusted reviewer, got %d", len(user.TrustedReviewers))
	}

	if !user.RemoveTrustedReviewer(reviewer) {
		t.Error("Expected removal of listed reviewer to succeed")
	}
	if user.RemoveTrustedReviewer(reviewer) {
		t.Error("Expected removal of unlisted reviewer to report false")
	}
}
