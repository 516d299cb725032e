package service_test

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/kestrelm/quorum-api/internal/domain"
	"github.com/kestrelm/quorum-api/internal/store"
)

// In-memory store fakes. They honor the store contracts (sentinel errors,
// snapshot-replace semantics) so service tests exercise real orchestration
// without a database.

type fakeQuestionStore struct {
	mu           sync.Mutex
	items        []*domain.Question
	loadErr      error
	replaceErr   error
	replaceCalls int
}

func (f *fakeQuestionStore) ReplaceAll(_ context.Context, questions []*domain.Question) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.replaceCalls++
	if f.replaceErr != nil {
		return f.replaceErr
	}
	f.items = append([]*domain.Question{}, questions...)
	return nil
}

func (f *fakeQuestionStore) LoadAll(_ context.Context) ([]*domain.Question, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.loadErr != nil {
		return nil, f.loadErr
	}
	return append([]*domain.Question{}, f.items...), nil
}

type fakeAnswerStore struct {
	mu           sync.Mutex
	items        []*domain.Answer
	loadErr      error
	replaceErr   error
	replaceCalls int
}

func (f *fakeAnswerStore) ReplaceAll(_ context.Context, answers []*domain.Answer) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.replaceCalls++
	if f.replaceErr != nil {
		return f.replaceErr
	}
	f.items = append([]*domain.Answer{}, answers...)
	return nil
}

func (f *fakeAnswerStore) LoadAll(_ context.Context) ([]*domain.Answer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.loadErr != nil {
		return nil, f.loadErr
	}
	return append([]*domain.Answer{}, f.items...), nil
}

type fakeUserStore struct {
	mu          sync.Mutex
	users       map[uuid.UUID]*domain.User
	reputations map[uuid.UUID]int
	codes       map[string]bool
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{
		users:       make(map[uuid.UUID]*domain.User),
		reputations: make(map[uuid.UUID]int),
		codes:       make(map[string]bool),
	}
}

// seedUser registers a bare user row with zero reputation.
func (f *fakeUserStore) seedUser(id uuid.UUID) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.users[id] = &domain.User{ID: id, Username: "user-" + id.String()[:8], HashedPassword: "x"}
	f.reputations[id] = 0
}

func (f *fakeUserStore) Create(_ context.Context, user *domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, existing := range f.users {
		if strings.EqualFold(existing.Username, user.Username) {
			return store.ErrUsernameExists
		}
	}
	f.users[user.ID] = user
	f.reputations[user.ID] = user.Reputation
	return nil
}

func (f *fakeUserStore) GetByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	user, ok := f.users[id]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	return user, nil
}

func (f *fakeUserStore) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, user := range f.users {
		if user.Username == username {
			return user, nil
		}
	}
	return nil, store.ErrUserNotFound
}

func (f *fakeUserStore) GetReputation(_ context.Context, id uuid.UUID) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	reputation, ok := f.reputations[id]
	if !ok {
		return 0, store.ErrUserNotFound
	}
	return reputation, nil
}

func (f *fakeUserStore) AdjustReputation(_ context.Context, id uuid.UUID, delta int) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	reputation, ok := f.reputations[id]
	if !ok {
		return 0, store.ErrUserNotFound
	}
	reputation += delta
	f.reputations[id] = reputation
	return reputation, nil
}

func (f *fakeUserStore) GetTrustedReviewers(_ context.Context, id uuid.UUID) ([]uuid.UUID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	user, ok := f.users[id]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	return append([]uuid.UUID{}, user.TrustedReviewers...), nil
}

func (f *fakeUserStore) SetTrustedReviewers(_ context.Context, id uuid.UUID, reviewers []uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	user, ok := f.users[id]
	if !ok {
		return store.ErrUserNotFound
	}
	user.TrustedReviewers = append([]uuid.UUID{}, reviewers...)
	return nil
}

func (f *fakeUserStore) CreateInvitationCode(_ context.Context, code string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.codes[code] = true
	return nil
}

func (f *fakeUserStore) RedeemInvitationCode(_ context.Context, code string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.codes[code] {
		return store.ErrInvitationCodeInvalid
	}
	f.codes[code] = false
	return nil
}

type fakeReviewStore struct {
	mu          sync.Mutex
	items       map[uuid.UUID]*domain.Review
	order       []uuid.UUID
	updateCalls int
}

func newFakeReviewStore() *fakeReviewStore {
	return &fakeReviewStore{items: make(map[uuid.UUID]*domain.Review)}
}

func (f *fakeReviewStore) Create(_ context.Context, review *domain.Review) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.items[review.ID] = review
	f.order = append(f.order, review.ID)
	return nil
}

func (f *fakeReviewStore) Update(_ context.Context, review *domain.Review) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.updateCalls++
	if _, ok := f.items[review.ID]; !ok {
		return store.ErrReviewNotFound
	}
	f.items[review.ID] = review
	return nil
}

func (f *fakeReviewStore) GetByID(_ context.Context, id uuid.UUID) (*domain.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	review, ok := f.items[id]
	if !ok {
		return nil, store.ErrReviewNotFound
	}
	return review, nil
}

func (f *fakeReviewStore) ListByQuestion(_ context.Context, questionID uuid.UUID) ([]*domain.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	matches := []*domain.Review{}
	for _, id := range f.order {
		if r := f.items[id]; r.QuestionID == questionID {
			matches = append(matches, r)
		}
	}
	return matches, nil
}

func (f *fakeReviewStore) ListByAnswer(_ context.Context, answerID uuid.UUID) ([]*domain.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	matches := []*domain.Review{}
	for _, id := range f.order {
		if r := f.items[id]; r.AnswerID == answerID {
			matches = append(matches, r)
		}
	}
	return matches, nil
}

func (f *fakeReviewStore) ReplaceAll(_ context.Context, reviews []*domain.Review) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.items = make(map[uuid.UUID]*domain.Review, len(reviews))
	f.order = f.order[:0]
	for _, r := range reviews {
		f.items[r.ID] = r
		f.order = append(f.order, r.ID)
	}
	return nil
}

func (f *fakeReviewStore) LoadAll(_ context.Context) ([]*domain.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	all := []*domain.Review{}
	for _, id := range f.order {
		all = append(all, f.items[id])
	}
	return all, nil
}

type fakeMessageStore struct {
	mu    sync.Mutex
	items []*domain.Message
}

func (f *fakeMessageStore) Create(_ context.Context, message *domain.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.items = append(f.items, message)
	return nil
}

func (f *fakeMessageStore) GetByID(_ context.Context, id uuid.UUID) (*domain.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, m := range f.items {
		if m.ID == id {
			return m, nil
		}
	}
	return nil, store.ErrMessageNotFound
}

func (f *fakeMessageStore) ListFrom(_ context.Context, fromID uuid.UUID) ([]*domain.Message, error) {
	return f.filter(func(m *domain.Message) bool { return m.FromID == fromID })
}

func (f *fakeMessageStore) ListTo(_ context.Context, toID uuid.UUID) ([]*domain.Message, error) {
	return f.filter(func(m *domain.Message) bool { return m.ToID == toID })
}

func (f *fakeMessageStore) ListInvolving(_ context.Context, userID uuid.UUID) ([]*domain.Message, error) {
	return f.filter(func(m *domain.Message) bool { return m.FromID == userID || m.ToID == userID })
}

func (f *fakeMessageStore) ListByReview(_ context.Context, reviewID uuid.UUID) ([]*domain.Message, error) {
	return f.filter(func(m *domain.Message) bool { return m.ReviewID == reviewID })
}

func (f *fakeMessageStore) ListBetween(_ context.Context, a, b uuid.UUID) ([]*domain.Message, error) {
	return f.filter(func(m *domain.Message) bool {
		return (m.FromID == a && m.ToID == b) || (m.FromID == b && m.ToID == a)
	})
}

func (f *fakeMessageStore) ListAll(_ context.Context) ([]*domain.Message, error) {
	return f.filter(func(*domain.Message) bool { return true })
}

func (f *fakeMessageStore) Contacts(_ context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	seen := make(map[uuid.UUID]bool)
	contacts := []uuid.UUID{}
	for _, m := range f.items {
		other, ok := m.OtherParty(userID)
		if !ok || seen[other] {
			continue
		}
		seen[other] = true
		contacts = append(contacts, other)
	}
	return contacts, nil
}

func (f *fakeMessageStore) UpdateBody(_ context.Context, id uuid.UUID, body string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, m := range f.items {
		if m.ID == id {
			m.Body = body
			return nil
		}
	}
	return store.ErrMessageNotFound
}

func (f *fakeMessageStore) Delete(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i, m := range f.items {
		if m.ID == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return store.ErrMessageNotFound
}

func (f *fakeMessageStore) filter(keep func(*domain.Message) bool) ([]*domain.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	matches := []*domain.Message{}
	for _, m := range f.items {
		if keep(m) {
			matches = append(matches, m)
		}
	}
	return matches, nil
}
