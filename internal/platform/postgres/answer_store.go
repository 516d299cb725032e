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

// PostgresAnswerStore implements the store.AnswerStore interface
// using a PostgreSQL database as the storage backend.
//
// The answers table does not carry the reputation snapshot; that value is
// denormalized from the users table after load, so a stale snapshot can
// never be resurrected from disk.
type PostgresAnswerStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewPostgresAnswerStore creates a new PostgreSQL implementation of the
// AnswerStore interface. If logger is nil, a default logger will be used.
func NewPostgresAnswerStore(db *sql.DB, logger *slog.Logger) *PostgresAnswerStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresAnswerStore{
		db:     db,
		logger: logger.With(slog.String("component", "answer_store")),
	}
}

// Ensure PostgresAnswerStore implements store.AnswerStore interface
var _ store.AnswerStore = (*PostgresAnswerStore)(nil)

// ReplaceAll implements store.AnswerStore.ReplaceAll.
// Delete-then-reinsert of the whole answers table inside one transaction.
func (s *PostgresAnswerStore) ReplaceAll(ctx context.Context, answers []*domain.Answer) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM answers`); err != nil {
			return MapError(err)
		}

		query := `
			INSERT INTO answers (uuid, question_uuid, author_uuid, name, under_review, text_body, date, upvoted_by, downvoted_by)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		`
		for _, a := range answers {
			if _, err := tx.ExecContext(
				ctx,
				query,
				a.ID,
				a.QuestionID,
				a.AuthorID,
				a.AuthorName,
				a.UnderReview,
				a.Body,
				a.CreatedAt,
				joinUUIDList(a.UpvotedBy),
				joinUUIDList(a.DownvotedBy),
			); err != nil {
				return MapError(err)
			}
		}
		return nil
	})

	if err != nil {
		log.Error("failed to replace answers",
			slog.String("error", err.Error()),
			slog.Int("count", len(answers)))
		return err
	}

	log.Debug("answers replaced", slog.Int("count", len(answers)))
	return nil
}

// LoadAll implements store.AnswerStore.LoadAll.
// It returns every persisted answer in table iteration order. Vote lists are
// parsed back from their comma-joined column form.
func (s *PostgresAnswerStore) LoadAll(ctx context.Context) ([]*domain.Answer, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT uuid, question_uuid, author_uuid, name, under_review, text_body, date, upvoted_by, downvoted_by
		FROM answers
		ORDER BY id
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		log.Error("failed to query answers", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	answers := []*domain.Answer{}
	for rows.Next() {
		var (
			id, questionID, authorID uuid.UUID
			name, body               string
			underReview              bool
			createdAt                sql.NullTime
			upvotedBy, downvotedBy   sql.NullString
		)

		if err := rows.Scan(&id, &questionID, &authorID, &name, &underReview, &body, &createdAt, &upvotedBy, &downvotedBy); err != nil {
			log.Error("failed to scan answer row", slog.String("error", err.Error()))
			return nil, MapError(err)
		}

		up, err := splitUUIDList(upvotedBy)
		if err != nil {
			log.Error("failed to parse upvoted_by",
				slog.String("error", err.Error()),
				slog.String("answer_id", id.String()))
			return nil, err
		}
		down, err := splitUUIDList(downvotedBy)
		if err != nil {
			log.Error("failed to parse downvoted_by",
				slog.String("error", err.Error()),
				slog.String("answer_id", id.String()))
			return nil, err
		}

		answers = append(answers, domain.RehydrateAnswer(
			id,
			questionID,
			authorID,
			name,
			body,
			createdAt.Time,
			underReview,
			up,
			down,
		))
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning answer rows", slog.String("error", err.Error()))
		return nil, MapError(err)
	}

	log.Debug("answers loaded", slog.Int("count", len(answers)))
	return answers, nil
}
