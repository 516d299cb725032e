package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/kestrelm/quorum-api/internal/domain"
	"github.com/kestrelm/quorum-api/internal/platform/logger"
	"github.com/kestrelm/quorum-api/internal/store"
)

// PostgresReviewStore implements the store.ReviewStore interface
// using a PostgreSQL database as the storage backend.
type PostgresReviewStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewPostgresReviewStore creates a new PostgreSQL implementation of the
// ReviewStore interface. If logger is nil, a default logger will be used.
func NewPostgresReviewStore(db *sql.DB, logger *slog.Logger) *PostgresReviewStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresReviewStore{
		db:     db,
		logger: logger.With(slog.String("component", "review_store")),
	}
}

// Ensure PostgresReviewStore implements store.ReviewStore interface
var _ store.ReviewStore = (*PostgresReviewStore)(nil)

const reviewColumns = `id, reviewer_id, question_id, answer_id, content, status, date`

// Create implements store.ReviewStore.Create.
func (s *PostgresReviewStore) Create(ctx context.Context, review *domain.Review) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := review.Validate(); err != nil {
		log.Warn("review validation failed during create",
			slog.String("error", err.Error()),
			slog.String("review_id", review.ID.String()))
		return err
	}

	query := `
		INSERT INTO review (id, reviewer_id, question_id, answer_id, content, status, date)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		review.ID,
		review.ReviewerID,
		uuid.NullUUID{UUID: review.QuestionID, Valid: review.QuestionID != uuid.Nil},
		uuid.NullUUID{UUID: review.AnswerID, Valid: review.AnswerID != uuid.Nil},
		review.Content,
		string(review.Status),
		review.CreatedAt,
	)
	if err != nil {
		log.Error("failed to create review",
			slog.String("error", err.Error()),
			slog.String("review_id", review.ID.String()))
		return MapError(err)
	}

	log.Info("review created",
		slog.String("review_id", review.ID.String()),
		slog.String("status", string(review.Status)))
	return nil
}

// Update implements store.ReviewStore.Update.
// Only content and status are mutable after creation.
func (s *PostgresReviewStore) Update(ctx context.Context, review *domain.Review) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `
		UPDATE review
		SET content = $1, status = $2
		WHERE id = $3
	`, review.Content, string(review.Status), review.ID)
	if err != nil {
		log.Error("failed to update review",
			slog.String("error", err.Error()),
			slog.String("review_id", review.ID.String()))
		return MapError(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return MapError(err)
	}
	if rowsAffected == 0 {
		return store.ErrReviewNotFound
	}

	log.Debug("review updated",
		slog.String("review_id", review.ID.String()),
		slog.String("status", string(review.Status)))
	return nil
}

// scanReviewRows reads review rows into domain entities.
func scanReviewRows(rows *sql.Rows) ([]*domain.Review, error) {
	reviews := []*domain.Review{}
	for rows.Next() {
		var (
			id, reviewerID       uuid.UUID
			questionID, answerID uuid.NullUUID
			content, status      string
			createdAt            sql.NullTime
		)
		if err := rows.Scan(&id, &reviewerID, &questionID, &answerID, &content, &status, &createdAt); err != nil {
			return nil, MapError(err)
		}
		reviews = append(reviews, domain.RehydrateReview(
			id,
			reviewerID,
			questionID.UUID,
			answerID.UUID,
			content,
			domain.ReviewStatus(status),
			createdAt.Time,
		))
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}
	return reviews, nil
}

// GetByID implements store.ReviewStore.GetByID.
func (s *PostgresReviewStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Review, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var (
		reviewerID           uuid.UUID
		questionID, answerID uuid.NullUUID
		content, status      string
		createdAt            sql.NullTime
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT reviewer_id, question_id, answer_id, content, status, date
		FROM review
		WHERE id = $1
	`, id).Scan(&reviewerID, &questionID, &answerID, &content, &status, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrReviewNotFound
		}
		log.Error("failed to get review by ID",
			slog.String("error", err.Error()),
			slog.String("review_id", id.String()))
		return nil, MapError(err)
	}

	return domain.RehydrateReview(
		id,
		reviewerID,
		questionID.UUID,
		answerID.UUID,
		content,
		domain.ReviewStatus(status),
		createdAt.Time,
	), nil
}

// ListByQuestion implements store.ReviewStore.ListByQuestion.
func (s *PostgresReviewStore) ListByQuestion(ctx context.Context, questionID uuid.UUID) ([]*domain.Review, error) {
	return s.list(ctx, `SELECT `+reviewColumns+` FROM review WHERE question_id = $1 ORDER BY date`, questionID)
}

// ListByAnswer implements store.ReviewStore.ListByAnswer.
func (s *PostgresReviewStore) ListByAnswer(ctx context.Context, answerID uuid.UUID) ([]*domain.Review, error) {
	return s.list(ctx, `SELECT `+reviewColumns+` FROM review WHERE answer_id = $1 ORDER BY date`, answerID)
}

// LoadAll implements store.ReviewStore.LoadAll.
func (s *PostgresReviewStore) LoadAll(ctx context.Context) ([]*domain.Review, error) {
	return s.list(ctx, `SELECT `+reviewColumns+` FROM review ORDER BY date`)
}

func (s *PostgresReviewStore) list(ctx context.Context, query string, args ...any) ([]*domain.Review, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query reviews", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	return scanReviewRows(rows)
}

// ReplaceAll implements store.ReviewStore.ReplaceAll.
// Delete-then-reinsert of the whole review table inside one transaction.
func (s *PostgresReviewStore) ReplaceAll(ctx context.Context, reviews []*domain.Review) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM review`); err != nil {
			return MapError(err)
		}

		query := `
			INSERT INTO review (id, reviewer_id, question_id, answer_id, content, status, date)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`
		for _, r := range reviews {
			if _, err := tx.ExecContext(
				ctx,
				query,
				r.ID,
				r.ReviewerID,
				uuid.NullUUID{UUID: r.QuestionID, Valid: r.QuestionID != uuid.Nil},
				uuid.NullUUID{UUID: r.AnswerID, Valid: r.AnswerID != uuid.Nil},
				r.Content,
				string(r.Status),
				r.CreatedAt,
			); err != nil {
				return MapError(err)
			}
		}
		return nil
	})

	if err != nil {
		log.Error("failed to replace reviews",
			slog.String("error", err.Error()),
			slog.Int("count", len(reviews)))
		return err
	}

	log.Debug("reviews replaced", slog.Int("count", len(reviews)))
	return nil
}
