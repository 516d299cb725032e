package store

import (
	"context"

	"github.com/kestrelm/quorum-api/internal/domain"
)

// QuestionStore defines the persistence gateway for the question collection.
//
// Saves are full snapshot replacements: ReplaceAll deletes every row and
// reinserts the given set as one transaction. There is no incremental diff;
// the in-memory collection is the unit of persistence.
type QuestionStore interface {
	// ReplaceAll atomically replaces the questions table contents with the
	// given questions. An empty slice empties the table.
	ReplaceAll(ctx context.Context, questions []*domain.Question) error

	// LoadAll returns every persisted question in table iteration order.
	// Returns an empty slice, not nil, when the table is empty.
	LoadAll(ctx context.Context) ([]*domain.Question, error)
}
