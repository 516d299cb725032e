package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/kestrelm/quorum-api/internal/domain"
)

// MessageStore defines the interface for private message persistence.
// Messages are persisted one at a time as they are sent, not snapshot-replaced.
type MessageStore interface {
	// Create persists a new message.
	Create(ctx context.Context, message *domain.Message) error

	// GetByID retrieves a message by its unique ID.
	// Returns ErrMessageNotFound if the message does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Message, error)

	// ListFrom returns all messages sent by the given user.
	ListFrom(ctx context.Context, fromID uuid.UUID) ([]*domain.Message, error)

	// ListTo returns all messages received by the given user.
	ListTo(ctx context.Context, toID uuid.UUID) ([]*domain.Message, error)

	// ListInvolving returns all messages where the given user is sender or
	// recipient.
	ListInvolving(ctx context.Context, userID uuid.UUID) ([]*domain.Message, error)

	// ListByReview returns all messages attached to the given review.
	ListByReview(ctx context.Context, reviewID uuid.UUID) ([]*domain.Message, error)

	// ListBetween returns the conversation between two users in chronological
	// order, regardless of direction.
	ListBetween(ctx context.Context, a, b uuid.UUID) ([]*domain.Message, error)

	// ListAll returns every persisted message.
	ListAll(ctx context.Context) ([]*domain.Message, error)

	// Contacts returns the de-duplicated set of other-party user IDs across
	// all messages touching the given user.
	Contacts(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)

	// UpdateBody replaces the body of an existing message.
	// Returns ErrMessageNotFound if the message does not exist.
	UpdateBody(ctx context.Context, id uuid.UUID, body string) error

	// Delete removes a message.
	// Returns ErrMessageNotFound if the message does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}
