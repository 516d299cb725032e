package board

import (
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/kestrelm/quorum-api/internal/domain"
)

// Questions is the insertion-ordered collection of Question aggregates.
// Lookup is by identity; iteration and search results follow insertion order
// so repeated runs over the same data are deterministic.
type Questions struct {
	mu    sync.Mutex
	order []uuid.UUID
	byID  map[uuid.UUID]*domain.Question
}

// NewQuestions creates an empty question collection.
func NewQuestions() *Questions {
	return &Questions{
		byID: make(map[uuid.UUID]*domain.Question),
	}
}

// Add appends a question to the collection. Adding a question whose ID is
// already present replaces the stored entity without changing its position.
func (qs *Questions) Add(q *domain.Question) {
	qs.mu.Lock()
	defer qs.mu.Unlock()

	if _, ok := qs.byID[q.ID]; !ok {
		qs.order = append(qs.order, q.ID)
	}
	qs.byID[q.ID] = q
}

// GetByID returns the question with the given ID, or (nil, false) when the
// collection holds no such question.
func (qs *Questions) GetByID(id uuid.UUID) (*domain.Question, bool) {
	qs.mu.Lock()
	defer qs.mu.Unlock()

	q, ok := qs.byID[id]
	return q, ok
}

// RemoveByID removes the question with the given ID and reports whether it
// was present. Removing a question never cascades to its answers; callers
// that want the answers gone must remove them explicitly.
func (qs *Questions) RemoveByID(id uuid.UUID) bool {
	qs.mu.Lock()
	defer qs.mu.Unlock()

	if _, ok := qs.byID[id]; !ok {
		return false
	}
	delete(qs.byID, id)
	for i, candidate := range qs.order {
		if candidate == id {
			qs.order = append(qs.order[:i], qs.order[i+1:]...)
			break
		}
	}
	return true
}

// UpdateBody replaces the body text of the question with the given ID.
// Reports whether the question was present.
func (qs *Questions) UpdateBody(id uuid.UUID, body string) bool {
	qs.mu.Lock()
	defer qs.mu.Unlock()

	q, ok := qs.byID[id]
	if !ok {
		return false
	}
	q.Body = body
	return true
}

// Search returns the IDs of questions whose title or body contains the query,
// case-insensitively, in insertion order. A blank query matches nothing, not
// everything.
func (qs *Questions) Search(query string) []uuid.UUID {
	matches := []uuid.UUID{}
	if strings.TrimSpace(query) == "" {
		return matches
	}
	query = strings.ToLower(query)

	qs.mu.Lock()
	defer qs.mu.Unlock()

	for _, id := range qs.order {
		q := qs.byID[id]
		if strings.Contains(strings.ToLower(q.Title), query) ||
			strings.Contains(strings.ToLower(q.Body), query) {
			matches = append(matches, id)
		}
	}
	return matches
}

// Len returns the number of questions in the collection.
func (qs *Questions) Len() int {
	qs.mu.Lock()
	defer qs.mu.Unlock()

	return len(qs.order)
}

// All returns the questions in insertion order. The slice is fresh but the
// entities are the collection's own.
func (qs *Questions) All() []*domain.Question {
	qs.mu.Lock()
	defer qs.mu.Unlock()

	all := make([]*domain.Question, 0, len(qs.order))
	for _, id := range qs.order {
		all = append(all, qs.byID[id])
	}
	return all
}

// Replace swaps the entire contents of the collection for the given
// questions, preserving their order. Used when loading persisted state.
func (qs *Questions) Replace(questions []*domain.Question) {
	qs.mu.Lock()
	defer qs.mu.Unlock()

	qs.order = make([]uuid.UUID, 0, len(questions))
	qs.byID = make(map[uuid.UUID]*domain.Question, len(questions))
	for _, q := range questions {
		if _, ok := qs.byID[q.ID]; !ok {
			qs.order = append(qs.order, q.ID)
		}
		qs.byID[q.ID] = q
	}
}
