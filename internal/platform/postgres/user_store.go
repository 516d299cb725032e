package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/kestrelm/quorum-api/internal/domain"
	"github.com/kestrelm/quorum-api/internal/platform/logger"
	"github.com/kestrelm/quorum-api/internal/store"
)

// PostgresUserStore implements the store.UserStore interface
// using a PostgreSQL database as the storage backend.
type PostgresUserStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewPostgresUserStore creates a new PostgreSQL implementation of the
// UserStore interface. If logger is nil, a default logger will be used.
func NewPostgresUserStore(db *sql.DB, logger *slog.Logger) *PostgresUserStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresUserStore{
		db:     db,
		logger: logger.With(slog.String("component", "user_store")),
	}
}

// Ensure PostgresUserStore implements store.UserStore interface
var _ store.UserStore = (*PostgresUserStore)(nil)

// Create implements store.UserStore.Create.
// Role tags are packed to the legacy role_bits column on the way in.
// Returns store.ErrUsernameExists when the username is already taken.
func (s *PostgresUserStore) Create(ctx context.Context, user *domain.User) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := user.Validate(); err != nil {
		log.Warn("user validation failed during create",
			slog.String("error", err.Error()),
			slog.String("user_id", user.ID.String()))
		return err
	}

	query := `
		INSERT INTO users (username, password, role_bits, reputation, uuid, trusted_reviewers)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		user.Username,
		user.HashedPassword,
		domain.RoleBits(user.Roles),
		user.Reputation,
		user.ID,
		joinUUIDList(user.TrustedReviewers),
	)

	if err != nil {
		if IsUniqueViolation(err) {
			log.Warn("username already taken",
				slog.String("username", user.Username))
			return store.ErrUsernameExists
		}
		log.Error("failed to create user",
			slog.String("error", err.Error()),
			slog.String("user_id", user.ID.String()))
		return MapError(err)
	}

	log.Info("user created",
		slog.String("user_id", user.ID.String()),
		slog.String("username", user.Username))
	return nil
}

const userColumns = `uuid, username, password, role_bits, reputation, trusted_reviewers`

// scanUser reads one users row into a domain.User.
func scanUser(row *sql.Row) (*domain.User, error) {
	var (
		user     domain.User
		roleBits int
		trusted  sql.NullString
	)

	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.HashedPassword,
		&roleBits,
		&user.Reputation,
		&trusted,
	)
	if err != nil {
		return nil, err
	}

	user.Roles = domain.RolesFromBits(roleBits)
	user.TrustedReviewers, err = splitUUIDList(trusted)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByID implements store.UserStore.GetByID.
func (s *PostgresUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := fmt.Sprintf(`SELECT %s FROM users WHERE uuid = $1`, userColumns)
	user, err := scanUser(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrUserNotFound
		}
		log.Error("failed to get user by ID",
			slog.String("error", err.Error()),
			slog.String("user_id", id.String()))
		return nil, MapError(err)
	}
	return user, nil
}

// GetByUsername implements store.UserStore.GetByUsername.
func (s *PostgresUserStore) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := fmt.Sprintf(`SELECT %s FROM users WHERE username = $1`, userColumns)
	user, err := scanUser(s.db.QueryRowContext(ctx, query, username))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrUserNotFound
		}
		log.Error("failed to get user by username",
			slog.String("error", err.Error()),
			slog.String("username", username))
		return nil, MapError(err)
	}
	return user, nil
}

// GetReputation implements store.UserStore.GetReputation.
func (s *PostgresUserStore) GetReputation(ctx context.Context, id uuid.UUID) (int, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var reputation int
	err := s.db.QueryRowContext(ctx,
		`SELECT reputation FROM users WHERE uuid = $1`, id).Scan(&reputation)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, store.ErrUserNotFound
		}
		log.Error("failed to get reputation",
			slog.String("error", err.Error()),
			slog.String("user_id", id.String()))
		return 0, MapError(err)
	}
	return reputation, nil
}

// AdjustReputation implements store.UserStore.AdjustReputation.
// The delta is applied in a single UPDATE so concurrent adjustments cannot
// lose increments, and the resulting value is returned.
func (s *PostgresUserStore) AdjustReputation(ctx context.Context, id uuid.UUID, delta int) (int, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var reputation int
	err := s.db.QueryRowContext(ctx, `
		UPDATE users
		SET reputation = reputation + $1
		WHERE uuid = $2
		RETURNING reputation
	`, delta, id).Scan(&reputation)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, store.ErrUserNotFound
		}
		log.Error("failed to adjust reputation",
			slog.String("error", err.Error()),
			slog.String("user_id", id.String()),
			slog.Int("delta", delta))
		return 0, MapError(err)
	}

	log.Debug("reputation adjusted",
		slog.String("user_id", id.String()),
		slog.Int("delta", delta),
		slog.Int("reputation", reputation))
	return reputation, nil
}

// GetTrustedReviewers implements store.UserStore.GetTrustedReviewers.
func (s *PostgresUserStore) GetTrustedReviewers(ctx context.Context, id uuid.UUID) ([]uuid.UUID, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var trusted sql.NullString
	err := s.db.QueryRowContext(ctx,
		`SELECT trusted_reviewers FROM users WHERE uuid = $1`, id).Scan(&trusted)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrUserNotFound
		}
		log.Error("failed to get trusted reviewers",
			slog.String("error", err.Error()),
			slog.String("user_id", id.String()))
		return nil, MapError(err)
	}

	return splitUUIDList(trusted)
}

// SetTrustedReviewers implements store.UserStore.SetTrustedReviewers.
func (s *PostgresUserStore) SetTrustedReviewers(ctx context.Context, id uuid.UUID, reviewers []uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `
		UPDATE users
		SET trusted_reviewers = $1
		WHERE uuid = $2
	`, joinUUIDList(reviewers), id)
	if err != nil {
		log.Error("failed to set trusted reviewers",
			slog.String("error", err.Error()),
			slog.String("user_id", id.String()))
		return MapError(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return store.ErrUserNotFound
	}
	return nil
}

// CreateInvitationCode implements store.UserStore.CreateInvitationCode.
func (s *PostgresUserStore) CreateInvitationCode(ctx context.Context, code string) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO invitation_codes (code, is_used) VALUES ($1, FALSE)`, code)
	if err != nil {
		log.Error("failed to create invitation code",
			slog.String("error", err.Error()))
		return MapError(err)
	}
	return nil
}

// RedeemInvitationCode implements store.UserStore.RedeemInvitationCode.
// Marking is atomic: a code can only ever be redeemed once.
func (s *PostgresUserStore) RedeemInvitationCode(ctx context.Context, code string) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `
		UPDATE invitation_codes
		SET is_used = TRUE
		WHERE code = $1 AND is_used = FALSE
	`, code)
	if err != nil {
		log.Error("failed to redeem invitation code",
			slog.String("error", err.Error()))
		return MapError(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return store.ErrInvitationCodeInvalid
	}
	return nil
}
