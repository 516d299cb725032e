package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/kestrelm/quorum-api/internal/domain"
)

// ReviewStore defines the persistence gateway for moderation reviews.
// Reviews support both the full-replace snapshot contract and targeted
// lookups for the moderation workflow.
type ReviewStore interface {
	// Create persists a single new review.
	Create(ctx context.Context, review *domain.Review) error

	// Update saves changes to an existing review (content and status).
	// Returns ErrReviewNotFound if the review does not exist.
	Update(ctx context.Context, review *domain.Review) error

	// GetByID retrieves a review by its unique ID.
	// Returns ErrReviewNotFound if the review does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Review, error)

	// ListByQuestion returns all reviews targeting the given question.
	ListByQuestion(ctx context.Context, questionID uuid.UUID) ([]*domain.Review, error)

	// ListByAnswer returns all reviews targeting the given answer.
	ListByAnswer(ctx context.Context, answerID uuid.UUID) ([]*domain.Review, error)

	// ReplaceAll atomically replaces the review table contents with the
	// given reviews.
	ReplaceAll(ctx context.Context, reviews []*domain.Review) error

	// LoadAll returns every persisted review in table iteration order.
	// Returns an empty slice, not nil, when the table is empty.
	LoadAll(ctx context.Context) ([]*domain.Review, error)
}
