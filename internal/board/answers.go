package board

import (
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/kestrelm/quorum-api/internal/domain"
)

// Answers is the insertion-ordered collection of Answer aggregates.
type Answers struct {
	mu    sync.Mutex
	order []uuid.UUID
	byID  map[uuid.UUID]*domain.Answer
}

// NewAnswers creates an empty answer collection.
func NewAnswers() *Answers {
	return &Answers{
		byID: make(map[uuid.UUID]*domain.Answer),
	}
}

// Add appends an answer to the collection. Adding an answer whose ID is
// already present replaces the stored entity without changing its position.
func (as *Answers) Add(a *domain.Answer) {
	as.mu.Lock()
	defer as.mu.Unlock()

	if _, ok := as.byID[a.ID]; !ok {
		as.order = append(as.order, a.ID)
	}
	as.byID[a.ID] = a
}

// GetByID returns the answer with the given ID, or (nil, false) when the
// collection holds no such answer.
func (as *Answers) GetByID(id uuid.UUID) (*domain.Answer, bool) {
	as.mu.Lock()
	defer as.mu.Unlock()

	a, ok := as.byID[id]
	return a, ok
}

// RemoveByID removes the answer with the given ID and reports whether it was
// present.
func (as *Answers) RemoveByID(id uuid.UUID) bool {
	as.mu.Lock()
	defer as.mu.Unlock()

	if _, ok := as.byID[id]; !ok {
		return false
	}
	delete(as.byID, id)
	for i, candidate := range as.order {
		if candidate == id {
			as.order = append(as.order[:i], as.order[i+1:]...)
			break
		}
	}
	return true
}

// UpdateBody replaces the body text of the answer with the given ID.
// Reports whether the answer was present.
func (as *Answers) UpdateBody(id uuid.UUID, body string) bool {
	as.mu.Lock()
	defer as.mu.Unlock()

	a, ok := as.byID[id]
	if !ok {
		return false
	}
	a.Body = body
	return true
}

// ByQuestion returns all answers attached to the given question, in insertion
// order.
func (as *Answers) ByQuestion(questionID uuid.UUID) []*domain.Answer {
	as.mu.Lock()
	defer as.mu.Unlock()

	matches := []*domain.Answer{}
	for _, id := range as.order {
		if a := as.byID[id]; a.QuestionID == questionID {
			matches = append(matches, a)
		}
	}
	return matches
}

// ByAuthor returns all answers written by the given author, in insertion
// order.
func (as *Answers) ByAuthor(authorID uuid.UUID) []*domain.Answer {
	as.mu.Lock()
	defer as.mu.Unlock()

	matches := []*domain.Answer{}
	for _, id := range as.order {
		if a := as.byID[id]; a.AuthorID == authorID {
			matches = append(matches, a)
		}
	}
	return matches
}

// SetAuthorReputation writes the author's new reputation onto every answer
// the author holds in the collection, and returns how many answers were
// touched. The vote ledger calls this after each reputation change so the
// denormalized snapshots never drift from the authoritative value.
func (as *Answers) SetAuthorReputation(authorID uuid.UUID, reputation int) int {
	as.mu.Lock()
	defer as.mu.Unlock()

	updated := 0
	for _, a := range as.byID {
		if a.AuthorID == authorID {
			a.Reputation = reputation
			updated++
		}
	}
	return updated
}

// Search returns the IDs of answers whose body contains the query,
// case-insensitively, in insertion order. A blank query matches nothing.
func (as *Answers) Search(query string) []uuid.UUID {
	matches := []uuid.UUID{}
	if strings.TrimSpace(query) == "" {
		return matches
	}
	query = strings.ToLower(query)

	as.mu.Lock()
	defer as.mu.Unlock()

	for _, id := range as.order {
		if strings.Contains(strings.ToLower(as.byID[id].Body), query) {
			matches = append(matches, id)
		}
	}
	return matches
}

// Len returns the number of answers in the collection.
func (as *Answers) Len() int {
	as.mu.Lock()
	defer as.mu.Unlock()

	return len(as.order)
}

// All returns the answers in insertion order.
func (as *Answers) All() []*domain.Answer {
	as.mu.Lock()
	defer as.mu.Unlock()

	all := make([]*domain.Answer, 0, len(as.order))
	for _, id := range as.order {
		all = append(all, as.byID[id])
	}
	return all
}

// Replace swaps the entire contents of the collection for the given answers,
// preserving their order. Used when loading persisted state.
func (as *Answers) Replace(answers []*domain.Answer) {
	as.mu.Lock()
	defer as.mu.Unlock()

	as.order = make([]uuid.UUID, 0, len(answers))
	as.byID = make(map[uuid.UUID]*domain.Answer, len(answers))
	for _, a := range answers {
		if _, ok := as.byID[a.ID]; !ok {
			as.order = append(as.order, a.ID)
		}
		as.byID[a.ID] = a
	}
}
