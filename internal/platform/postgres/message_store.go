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

// PostgresMessageStore implements the store.MessageStore interface
// using a PostgreSQL database as the storage backend.
type PostgresMessageStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewPostgresMessageStore creates a new PostgreSQL implementation of the
// MessageStore interface. If logger is nil, a default logger will be used.
func NewPostgresMessageStore(db *sql.DB, logger *slog.Logger) *PostgresMessageStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresMessageStore{
		db:     db,
		logger: logger.With(slog.String("component", "message_store")),
	}
}

// Ensure PostgresMessageStore implements store.MessageStore interface
var _ store.MessageStore = (*PostgresMessageStore)(nil)

const messageColumns = `uuid, from_uuid, to_uuid, review_uuid, text_body, date`

// Create implements store.MessageStore.Create.
func (s *PostgresMessageStore) Create(ctx context.Context, message *domain.Message) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := message.Validate(); err != nil {
		log.Warn("message validation failed during create",
			slog.String("error", err.Error()),
			slog.String("message_id", message.ID.String()))
		return err
	}

	query := `
		INSERT INTO private_message (uuid, from_uuid, to_uuid, review_uuid, text_body, date)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		message.ID,
		message.FromID,
		message.ToID,
		uuid.NullUUID{UUID: message.ReviewID, Valid: message.ReviewID != uuid.Nil},
		message.Body,
		message.SentAt,
	)
	if err != nil {
		log.Error("failed to create message",
			slog.String("error", err.Error()),
			slog.String("message_id", message.ID.String()))
		return MapError(err)
	}

	log.Debug("message created",
		slog.String("message_id", message.ID.String()),
		slog.String("from", message.FromID.String()),
		slog.String("to", message.ToID.String()))
	return nil
}

// GetByID implements store.MessageStore.GetByID.
func (s *PostgresMessageStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Message, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var (
		fromID, toID uuid.UUID
		reviewID     uuid.NullUUID
		body         string
		sentAt       sql.NullTime
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT from_uuid, to_uuid, review_uuid, text_body, date
		FROM private_message
		WHERE uuid = $1
	`, id).Scan(&fromID, &toID, &reviewID, &body, &sentAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrMessageNotFound
		}
		log.Error("failed to get message by ID",
			slog.String("error", err.Error()),
			slog.String("message_id", id.String()))
		return nil, MapError(err)
	}

	return domain.RehydrateMessage(id, fromID, toID, reviewID.UUID, body, sentAt.Time), nil
}

// ListFrom implements store.MessageStore.ListFrom.
func (s *PostgresMessageStore) ListFrom(ctx context.Context, fromID uuid.UUID) ([]*domain.Message, error) {
	return s.list(ctx, `SELECT `+messageColumns+` FROM private_message WHERE from_uuid = $1 ORDER BY date`, fromID)
}

// ListTo implements store.MessageStore.ListTo.
func (s *PostgresMessageStore) ListTo(ctx context.Context, toID uuid.UUID) ([]*domain.Message, error) {
	return s.list(ctx, `SELECT `+messageColumns+` FROM private_message WHERE to_uuid = $1 ORDER BY date`, toID)
}

// ListInvolving implements store.MessageStore.ListInvolving.
func (s *PostgresMessageStore) ListInvolving(ctx context.Context, userID uuid.UUID) ([]*domain.Message, error) {
	return s.list(ctx, `
		SELECT `+messageColumns+`
		FROM private_message
		WHERE from_uuid = $1 OR to_uuid = $1
		ORDER BY date
	`, userID)
}

// ListByReview implements store.MessageStore.ListByReview.
func (s *PostgresMessageStore) ListByReview(ctx context.Context, reviewID uuid.UUID) ([]*domain.Message, error) {
	return s.list(ctx, `SELECT `+messageColumns+` FROM private_message WHERE review_uuid = $1 ORDER BY date`, reviewID)
}

// ListBetween implements store.MessageStore.ListBetween.
// The conversation is returned in chronological order regardless of which
// party sent each message.
func (s *PostgresMessageStore) ListBetween(ctx context.Context, a, b uuid.UUID) ([]*domain.Message, error) {
	return s.list(ctx, `
		SELECT `+messageColumns+`
		FROM private_message
		WHERE (from_uuid = $1 AND to_uuid = $2) OR (from_uuid = $2 AND to_uuid = $1)
		ORDER BY date
	`, a, b)
}

// ListAll implements store.MessageStore.ListAll.
func (s *PostgresMessageStore) ListAll(ctx context.Context) ([]*domain.Message, error) {
	return s.list(ctx, `SELECT `+messageColumns+` FROM private_message ORDER BY date`)
}

// Contacts implements store.MessageStore.Contacts.
func (s *PostgresMessageStore) Contacts(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, `
		SELECT DISTINCT
			CASE WHEN from_uuid = $1 THEN to_uuid ELSE from_uuid END AS contact
		FROM private_message
		WHERE from_uuid = $1 OR to_uuid = $1
	`, userID)
	if err != nil {
		log.Error("failed to query contacts",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, MapError(err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	contacts := []uuid.UUID{}
	for rows.Next() {
		var contact uuid.UUID
		if err := rows.Scan(&contact); err != nil {
			return nil, MapError(err)
		}
		contacts = append(contacts, contact)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}
	return contacts, nil
}

// UpdateBody implements store.MessageStore.UpdateBody.
func (s *PostgresMessageStore) UpdateBody(ctx context.Context, id uuid.UUID, body string) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `
		UPDATE private_message
		SET text_body = $1
		WHERE uuid = $2
	`, body, id)
	if err != nil {
		log.Error("failed to update message body",
			slog.String("error", err.Error()),
			slog.String("message_id", id.String()))
		return MapError(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return MapError(err)
	}
	if rowsAffected == 0 {
		return store.ErrMessageNotFound
	}
	return nil
}

// Delete implements store.MessageStore.Delete.
func (s *PostgresMessageStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx,
		`DELETE FROM private_message WHERE uuid = $1`, id)
	if err != nil {
		log.Error("failed to delete message",
			slog.String("error", err.Error()),
			slog.String("message_id", id.String()))
		return MapError(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return MapError(err)
	}
	if rowsAffected == 0 {
		return store.ErrMessageNotFound
	}
	return nil
}

func (s *PostgresMessageStore) list(ctx context.Context, query string, args ...any) ([]*domain.Message, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query messages", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	messages := []*domain.Message{}
	for rows.Next() {
		var (
			id, fromID, toID uuid.UUID
			reviewID         uuid.NullUUID
			body             string
			sentAt           sql.NullTime
		)
		if err := rows.Scan(&id, &fromID, &toID, &reviewID, &body, &sentAt); err != nil {
			return nil, MapError(err)
		}
		messages = append(messages, domain.RehydrateMessage(id, fromID, toID, reviewID.UUID, body, sentAt.Time))
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}
	return messages, nil
}
