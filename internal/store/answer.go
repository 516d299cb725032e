package store

import (
	"context"

	"github.com/kestrelm/quorum-api/internal/domain"
)

// AnswerStore defines the persistence gateway for the answer collection.
// Same full-replace contract as QuestionStore.
//
// Vote lists are serialized as comma-joined UUID strings; an empty list is
// stored as NULL, never as an empty string.
type AnswerStore interface {
	// ReplaceAll atomically replaces the answers table contents with the
	// given answers.
	ReplaceAll(ctx context.Context, answers []*domain.Answer) error

	// LoadAll returns every persisted answer in table iteration order.
	// Returns an empty slice, not nil, when the table is empty.
	LoadAll(ctx context.Context) ([]*domain.Answer, error)
}
