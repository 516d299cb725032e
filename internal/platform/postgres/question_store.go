package postgres

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/google/uuid"
	"github.com/kestrelm/quorum-api/internal/domain"
	"github.com/kestrelm/quorum-api/internal/platform/logger"
	"github.com/kestrelm/quorum-api/internal/store"
)

// PostgresQuestionStore implements the store.QuestionStore interface
// using a PostgreSQL database as the storage backend.
type PostgresQuestionStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewPostgresQuestionStore creates a new PostgreSQL implementation of the
// QuestionStore interface. It accepts a database connection that should be
// initialized and managed by the caller. If logger is nil, a default logger
// will be used.
func NewPostgresQuestionStore(db *sql.DB, logger *slog.Logger) *PostgresQuestionStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresQuestionStore{
		db:     db,
		logger: logger.With(slog.String("component", "question_store")),
	}
}

// Ensure PostgresQuestionStore implements store.QuestionStore interface
var _ store.QuestionStore = (*PostgresQuestionStore)(nil)

// ReplaceAll implements store.QuestionStore.ReplaceAll.
// It deletes every row in the questions table and reinserts the given
// snapshot inside one transaction, so a failure partway leaves the previous
// contents intact.
func (s *PostgresQuestionStore) ReplaceAll(ctx context.Context, questions []*domain.Question) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM questions`); err != nil {
			return MapError(err)
		}

		query := `
			INSERT INTO questions (uuid, author_uuid, name, title, text_body, date, chosen_answer, under_review)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`
		for _, q := range questions {
			chosen := uuid.NullUUID{UUID: q.ChosenAnswerID, Valid: q.ChosenAnswerID != uuid.Nil}
			if _, err := tx.ExecContext(
				ctx,
				query,
				q.ID,
				q.AuthorID,
				q.AuthorName,
				q.Title,
				q.Body,
				q.CreatedAt,
				chosen,
				q.UnderReview,
			); err != nil {
				return MapError(err)
			}
		}
		return nil
	})

	if err != nil {
		log.Error("failed to replace questions",
			slog.String("error", err.Error()),
			slog.Int("count", len(questions)))
		return err
	}

	log.Debug("questions replaced", slog.Int("count", len(questions)))
	return nil
}

// LoadAll implements store.QuestionStore.LoadAll.
// It returns every persisted question in table iteration order.
func (s *PostgresQuestionStore) LoadAll(ctx context.Context) ([]*domain.Question, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT uuid, author_uuid, name, title, text_body, date, chosen_answer, under_review
		FROM questions
		ORDER BY id
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		log.Error("failed to query questions", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	questions := []*domain.Question{}
	for rows.Next() {
		var (
			id, authorID      uuid.UUID
			name, title, body string
			createdAt         sql.NullTime
			chosen            uuid.NullUUID
			underReview       bool
		)

		if err := rows.Scan(&id, &authorID, &name, &title, &body, &createdAt, &chosen, &underReview); err != nil {
			log.Error("failed to scan question row", slog.String("error", err.Error()))
			return nil, MapError(err)
		}

		questions = append(questions, domain.RehydrateQuestion(
			id,
			authorID,
			name,
			title,
			body,
			createdAt.Time,
			chosen.UUID,
			underReview,
		))
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning question rows", slog.String("error", err.Error()))
		return nil, MapError(err)
	}

	log.Debug("questions loaded", slog.Int("count", len(questions)))
	return questions, nil
}
