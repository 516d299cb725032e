package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/kestrelm/quorum-api/internal/board"
	"github.com/kestrelm/quorum-api/internal/domain"
	"github.com/kestrelm/quorum-api/internal/store"
)

// ContentService provides question and answer operations backed by the
// in-memory board collections. Every mutation persists the affected
// collection through its store as a full snapshot replacement.
type ContentService interface {
	// AddQuestion creates a question and persists the question collection.
	AddQuestion(ctx context.Context, authorName, title, body string, authorID uuid.UUID) (*domain.Question, error)

	// AddAnswer creates an answer to an existing question and persists the
	// answer collection. Returns store.ErrQuestionNotFound when the question
	// is not in the collection.
	AddAnswer(ctx context.Context, authorName, body string, questionID, authorID uuid.UUID) (*domain.Answer, error)

	// RemoveQuestion removes a question from the collection. The question's
	// answers are left in place; removal never cascades.
	RemoveQuestion(ctx context.Context, id uuid.UUID) error

	// RemoveAnswer removes an answer from the collection.
	RemoveAnswer(ctx context.Context, id uuid.UUID) error

	// UpdateQuestionBody replaces a question's body text.
	UpdateQuestionBody(ctx context.Context, id uuid.UUID, body string) error

	// UpdateAnswerBody replaces an answer's body text.
	UpdateAnswerBody(ctx context.Context, id uuid.UUID, body string) error

	// ChooseAnswer records the accepted answer on a question. The answer must
	// exist and belong to the question.
	ChooseAnswer(ctx context.Context, questionID, answerID uuid.UUID) error

	// SearchQuestions returns the IDs of questions whose title or body
	// contains the query, case-insensitively. A blank query matches nothing.
	SearchQuestions(query string) []uuid.UUID

	// SearchAnswers returns the IDs of answers whose body contains the query,
	// case-insensitively. A blank query matches nothing.
	SearchAnswers(query string) []uuid.UUID

	// AnswersForQuestion returns the answers attached to a question, in
	// insertion order.
	AnswersForQuestion(questionID uuid.UUID) []*domain.Answer

	// Load replaces both collections with the persisted snapshots and
	// refreshes the reputation snapshot on every loaded answer. A storage
	// failure degrades to an empty collection rather than failing startup.
	Load(ctx context.Context)

	// SaveQuestions persists the question collection as a full snapshot.
	SaveQuestions(ctx context.Context) error

	// SaveAnswers persists the answer collection as a full snapshot.
	SaveAnswers(ctx context.Context) error
}

// contentServiceImpl implements the ContentService interface
type contentServiceImpl struct {
	questions     *board.Questions
	answers       *board.Answers
	questionStore store.QuestionStore
	answerStore   store.AnswerStore
	userStore     store.UserStore
	logger        *slog.Logger
}

// NewContentService creates a new ContentService over the given collections
// and stores. It returns an error if any required dependency is nil.
func NewContentService(
	questions *board.Questions,
	answers *board.Answers,
	questionStore store.QuestionStore,
	answerStore store.AnswerStore,
	userStore store.UserStore,
	logger *slog.Logger,
) (ContentService, error) {
	if questions == nil {
		return nil, &ServiceError{Operation: "create_service", Message: "questions cannot be nil"}
	}
	if answers == nil {
		return nil, &ServiceError{Operation: "create_service", Message: "answers cannot be nil"}
	}
	if questionStore == nil {
		return nil, &ServiceError{Operation: "create_service", Message: "questionStore cannot be nil"}
	}
	if answerStore == nil {
		return nil, &ServiceError{Operation: "create_service", Message: "answerStore cannot be nil"}
	}
	if userStore == nil {
		return nil, &ServiceError{Operation: "create_service", Message: "userStore cannot be nil"}
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &contentServiceImpl{
		questions:     questions,
		answers:       answers,
		questionStore: questionStore,
		answerStore:   answerStore,
		userStore:     userStore,
		logger:        logger.With("component", "content_service"),
	}, nil
}

// AddQuestion creates a question and persists the question collection.
func (s *contentServiceImpl) AddQuestion(
	ctx context.Context,
	authorName, title, body string,
	authorID uuid.UUID,
) (*domain.Question, error) {
	question, err := domain.NewQuestion(authorName, title, body, authorID)
	if err != nil {
		s.logger.Error("failed to create question object",
			"error", err,
			"author_id", authorID)
		return nil, NewServiceError("add_question", "failed to create question object", err)
	}

	s.questions.Add(question)
	if err := s.SaveQuestions(ctx); err != nil {
		return nil, err
	}

	s.logger.Info("question added",
		"question_id", question.ID,
		"author_id", authorID)
	return question, nil
}

// AddAnswer creates an answer to an existing question and persists the answer
// collection. The answer's reputation snapshot is seeded from the author's
// authoritative value; new answers start flagged under review.
func (s *contentServiceImpl) AddAnswer(
	ctx context.Context,
	authorName, body string,
	questionID, authorID uuid.UUID,
) (*domain.Answer, error) {
	if _, ok := s.questions.GetByID(questionID); !ok {
		return nil, store.ErrQuestionNotFound
	}

	answer, err := domain.NewAnswer(authorName, body, questionID, authorID)
	if err != nil {
		s.logger.Error("failed to create answer object",
			"error", err,
			"question_id", questionID,
			"author_id", authorID)
		return nil, NewServiceError("add_answer", "failed to create answer object", err)
	}

	reputation, err := s.userStore.GetReputation(ctx, authorID)
	if err != nil {
		// Unknown or unreachable author; the snapshot starts at zero and is
		// corrected by the next vote or load.
		s.logger.Warn("could not seed reputation snapshot",
			"error", err,
			"author_id", authorID)
	} else {
		answer.Reputation = reputation
	}

	s.answers.Add(answer)
	if err := s.SaveAnswers(ctx); err != nil {
		return nil, err
	}

	s.logger.Info("answer added",
		"answer_id", answer.ID,
		"question_id", questionID,
		"author_id", authorID)
	return answer, nil
}

// RemoveQuestion removes a question and persists the question collection.
// Answers to the removed question stay in the answer collection.
func (s *contentServiceImpl) RemoveQuestion(ctx context.Context, id uuid.UUID) error {
	if !s.questions.RemoveByID(id) {
		return store.ErrQuestionNotFound
	}
	return s.SaveQuestions(ctx)
}

// RemoveAnswer removes an answer and persists the answer collection.
func (s *contentServiceImpl) RemoveAnswer(ctx context.Context, id uuid.UUID) error {
	if !s.answers.RemoveByID(id) {
		return store.ErrAnswerNotFound
	}
	return s.SaveAnswers(ctx)
}

// UpdateQuestionBody replaces a question's body and persists the collection.
func (s *contentServiceImpl) UpdateQuestionBody(ctx context.Context, id uuid.UUID, body string) error {
	if !s.questions.UpdateBody(id, body) {
		return store.ErrQuestionNotFound
	}
	return s.SaveQuestions(ctx)
}

// UpdateAnswerBody replaces an answer's body and persists the collection.
func (s *contentServiceImpl) UpdateAnswerBody(ctx context.Context, id uuid.UUID, body string) error {
	if !s.answers.UpdateBody(id, body) {
		return store.ErrAnswerNotFound
	}
	return s.SaveAnswers(ctx)
}

// ChooseAnswer records the accepted answer on a question and persists the
// question collection.
func (s *contentServiceImpl) ChooseAnswer(ctx context.Context, questionID, answerID uuid.UUID) error {
	question, ok := s.questions.GetByID(questionID)
	if !ok {
		return store.ErrQuestionNotFound
	}

	answer, ok := s.answers.GetByID(answerID)
	if !ok || answer.QuestionID != questionID {
		return store.ErrAnswerNotFound
	}

	question.ChooseAnswer(answerID)
	return s.SaveQuestions(ctx)
}

// SearchQuestions searches the question collection.
func (s *contentServiceImpl) SearchQuestions(query string) []uuid.UUID {
	return s.questions.Search(query)
}

// SearchAnswers searches the answer collection.
func (s *contentServiceImpl) SearchAnswers(query string) []uuid.UUID {
	return s.answers.Search(query)
}

// AnswersForQuestion returns the answers attached to a question.
func (s *contentServiceImpl) AnswersForQuestion(questionID uuid.UUID) []*domain.Answer {
	return s.answers.ByQuestion(questionID)
}

// Load replaces both collections with the persisted snapshots. Either load
// failing is logged and degrades that collection to empty, so the board is
// always usable after Load returns. Reputation snapshots on the loaded
// answers are refreshed from the users table, which stays authoritative.
func (s *contentServiceImpl) Load(ctx context.Context) {
	questions, err := s.questionStore.LoadAll(ctx)
	if err != nil {
		s.logger.Warn("failed to load questions, starting empty",
			"error", err)
		questions = []*domain.Question{}
	}
	s.questions.Replace(questions)

	answers, err := s.answerStore.LoadAll(ctx)
	if err != nil {
		s.logger.Warn("failed to load answers, starting empty",
			"error", err)
		answers = []*domain.Answer{}
	}
	s.answers.Replace(answers)

	s.refreshReputationSnapshots(ctx, answers)

	s.logger.Info("board loaded",
		"questions", s.questions.Len(),
		"answers", s.answers.Len())
}

// refreshReputationSnapshots writes each author's authoritative reputation
// onto their loaded answers. Answers are not the system of record for
// reputation, so a failed lookup only leaves that author's snapshot at zero.
func (s *contentServiceImpl) refreshReputationSnapshots(ctx context.Context, answers []*domain.Answer) {
	seen := make(map[uuid.UUID]bool)
	for _, a := range answers {
		if seen[a.AuthorID] {
			continue
		}
		seen[a.AuthorID] = true

		reputation, err := s.userStore.GetReputation(ctx, a.AuthorID)
		if err != nil {
			s.logger.Warn("could not refresh reputation snapshot",
				"error", err,
				"author_id", a.AuthorID)
			continue
		}
		s.answers.SetAuthorReputation(a.AuthorID, reputation)
	}
}

// SaveQuestions persists the question collection as a full snapshot.
func (s *contentServiceImpl) SaveQuestions(ctx context.Context) error {
	if err := s.questionStore.ReplaceAll(ctx, s.questions.All()); err != nil {
		s.logger.Error("failed to save questions",
			"error", err)
		return NewServiceError("save_questions", "failed to persist question snapshot", err)
	}
	return nil
}

// SaveAnswers persists the answer collection as a full snapshot.
func (s *contentServiceImpl) SaveAnswers(ctx context.Context) error {
	if err := s.answerStore.ReplaceAll(ctx, s.answers.All()); err != nil {
		s.logger.Error("failed to save answers",
			"error", err)
		return NewServiceError("save_answers", "failed to persist answer snapshot", err)
	}
	return nil
}
