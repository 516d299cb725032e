package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/kestrelm/quorum-api/internal/domain"
)

// UserStore defines the interface for user data persistence. Unlike the
// content collections, users are persisted row-by-row: the users table is the
// authoritative home of reputation, so it is never bulk-replaced.
type UserStore interface {
	// Create saves a new user to the store.
	// Returns ErrUsernameExists if the username is already taken.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by their unique ID.
	// Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetByUsername retrieves a user by their username.
	// Returns ErrUserNotFound if the user does not exist.
	GetByUsername(ctx context.Context, username string) (*domain.User, error)

	// GetReputation returns the authoritative reputation for the user.
	// Returns ErrUserNotFound if the user does not exist.
	GetReputation(ctx context.Context, id uuid.UUID) (int, error)

	// AdjustReputation applies a signed delta to the user's reputation and
	// returns the resulting value. Returns ErrUserNotFound if the user does
	// not exist.
	AdjustReputation(ctx context.Context, id uuid.UUID, delta int) (int, error)

	// GetTrustedReviewers returns the user's trusted reviewer list.
	// Returns ErrUserNotFound if the user does not exist.
	GetTrustedReviewers(ctx context.Context, id uuid.UUID) ([]uuid.UUID, error)

	// SetTrustedReviewers replaces the user's trusted reviewer list.
	// Returns ErrUserNotFound if the user does not exist.
	SetTrustedReviewers(ctx context.Context, id uuid.UUID, reviewers []uuid.UUID) error

	// CreateInvitationCode records a fresh, unredeemed invitation code.
	CreateInvitationCode(ctx context.Context, code string) error

	// RedeemInvitationCode marks an invitation code as used.
	// Returns ErrInvitationCodeInvalid when the code is unknown or already
	// redeemed.
	RedeemInvitationCode(ctx context.Context, code string) error
}
