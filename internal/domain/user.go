package domain

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

// Common validation errors
var (
	ErrEmptyUserID   = errors.New("user ID cannot be empty")
	ErrEmptyUsername = errors.New("username cannot be empty")
	ErrEmptyPassword = errors.New("password cannot be empty")
)

// Role is a named role tag. A user may hold several roles independently;
// presence is tested with User.HasRole rather than bit masking. The legacy
// role_bits integer column is produced and consumed only at the persistence
// boundary via RoleBits and RolesFromBits.
type Role string

// The role tags recognized by the board.
const (
	RoleStudent    Role = "student"
	RoleAdmin      Role = "admin"
	RoleReviewer   Role = "reviewer"
	RoleInstructor Role = "instructor"
	RoleStaff      Role = "staff"
)

// roleBit assignments match the original role_bits column layout.
var roleBits = map[Role]int{
	RoleStudent:    1 << 0,
	RoleAdmin:      1 << 1,
	RoleReviewer:   1 << 2,
	RoleInstructor: 1 << 3,
	RoleStaff:      1 << 4,
}

// orderedRoles fixes the iteration order for bit conversion and display.
var orderedRoles = []Role{RoleStudent, RoleAdmin, RoleReviewer, RoleInstructor, RoleStaff}

// RoleBits converts a set of role tags to the packed integer representation
// used by the users table. Unknown tags contribute nothing.
func RoleBits(roles []Role) int {
	bits := 0
	for _, r := range roles {
		bits |= roleBits[r]
	}
	return bits
}

// RolesFromBits expands a packed role integer back into named role tags.
func RolesFromBits(bits int) []Role {
	var roles []Role
	for _, r := range orderedRoles {
		if bits&roleBits[r] != 0 {
			roles = append(roles, r)
		}
	}
	return roles
}

// User represents a registered member of the board. Reputation here is the
// authoritative value; the copies on the user's answers are display snapshots.
type User struct {
	ID               uuid.UUID   `json:"id"`
	Username         string      `json:"username"`
	Password         string      `json:"-"` // Plaintext password, used temporarily during registration
	HashedPassword   string      `json:"-"` // Never expose password hash in JSON
	Roles            []Role      `json:"roles"`
	Reputation       int         `json:"reputation"`
	TrustedReviewers []uuid.UUID `json:"trusted_reviewers,omitempty"`
}

// NewUser creates a new User with the given username, password, and role tags.
// It generates a new UUID for the user ID and starts reputation at zero.
// Returns an error if validation fails.
//
// NOTE: This function only sets up the user structure with the plaintext
// password. The caller is responsible for hashing the password before storing
// the user.
func NewUser(username, password string, roles ...Role) (*User, error) {
	user := &User{
		ID:       uuid.New(),
		Username: username,
		Password: password, // Plaintext password - must be hashed before storage
		Roles:    roles,
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks if the User has valid data.
// Returns an error if any field fails validation.
func (u *User) Validate() error {
	if u.ID == uuid.Nil {
		return ErrEmptyUserID
	}

	if strings.TrimSpace(u.Username) == "" {
		return ErrEmptyUsername
	}

	// Existing users loaded from the store carry only the hash.
	if u.Password == "" && u.HashedPassword == "" {
		return ErrEmptyPassword
	}

	return nil
}

// HasRole reports whether the user holds the given role tag.
func (u *User) HasRole(role Role) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// GrantRole adds a role tag. Granting a role the user already holds is a no-op.
func (u *User) GrantRole(role Role) {
	if !u.HasRole(role) {
		u.Roles = append(u.Roles, role)
	}
}

// AddTrustedReviewer records a reviewer the user trusts. Returns false when
// the reviewer is already on the list.
func (u *User) AddTrustedReviewer(reviewerID uuid.UUID) bool {
	if containsUUID(u.TrustedReviewers, reviewerID) {
		return false
	}
	u.TrustedReviewers = append(u.TrustedReviewers, reviewerID)
	return true
}

// RemoveTrustedReviewer drops a reviewer from the trusted list. Returns true
// if the list contained the reviewer.
func (u *User) RemoveTrustedReviewer(reviewerID uuid.UUID) bool {
	if !containsUUID(u.TrustedReviewers, reviewerID) {
		return false
	}
	u.TrustedReviewers = removeUUID(u.TrustedReviewers, reviewerID)
	return true
}
