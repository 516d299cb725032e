package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"math/big"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/kestrelm/quorum-api/internal/domain"
	"github.com/kestrelm/quorum-api/internal/service/auth"
	"github.com/kestrelm/quorum-api/internal/store"
)

// invitationCodeAlphabet deliberately omits ambiguous characters (0/O, 1/I/l)
// so codes survive being read aloud or written down.
const invitationCodeAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

// registerRequest carries the validated registration input.
type registerRequest struct {
	Username string `validate:"required,min=3,max=30"`
	Password string `validate:"required,min=8,max=72"`
}

// AccountService provides registration, authentication, invitation codes, and
// trusted-reviewer management.
type AccountService interface {
	// Register creates a new user with a bcrypt-hashed credential.
	// Returns store.ErrUsernameExists when the username is taken.
	Register(ctx context.Context, username, password string, roles ...domain.Role) (*domain.User, error)

	// Authenticate verifies a username/password pair and returns the user.
	// Unknown usernames and wrong passwords both return ErrInvalidCredentials.
	Authenticate(ctx context.Context, username, password string) (*domain.User, error)

	// GenerateInvitationCode mints and records a fresh invitation code.
	GenerateInvitationCode(ctx context.Context) (string, error)

	// RedeemInvitationCode consumes an invitation code.
	// Returns store.ErrInvitationCodeInvalid when the code is unknown or
	// already redeemed.
	RedeemInvitationCode(ctx context.Context, code string) error

	// AddTrustedReviewer records a reviewer the user trusts. Adding a
	// reviewer already on the list is a no-op.
	AddTrustedReviewer(ctx context.Context, userID, reviewerID uuid.UUID) error

	// RemoveTrustedReviewer drops a reviewer from the user's trusted list.
	// Removing a reviewer not on the list is a no-op.
	RemoveTrustedReviewer(ctx context.Context, userID, reviewerID uuid.UUID) error
}

// accountServiceImpl implements the AccountService interface
type accountServiceImpl struct {
	userStore  store.UserStore
	hasher     auth.PasswordHasher
	verifier   auth.PasswordVerifier
	validate   *validator.Validate
	codeLength int
	logger     *slog.Logger
}

// NewAccountService creates a new AccountService.
// It returns an error if any required dependency is nil.
func NewAccountService(
	userStore store.UserStore,
	hasher auth.PasswordHasher,
	verifier auth.PasswordVerifier,
	codeLength int,
	logger *slog.Logger,
) (AccountService, error) {
	if userStore == nil {
		return nil, &ServiceError{Operation: "create_service", Message: "userStore cannot be nil"}
	}
	if hasher == nil {
		return nil, &ServiceError{Operation: "create_service", Message: "hasher cannot be nil"}
	}
	if verifier == nil {
		return nil, &ServiceError{Operation: "create_service", Message: "verifier cannot be nil"}
	}
	if codeLength <= 0 {
		return nil, &ServiceError{Operation: "create_service", Message: "codeLength must be positive"}
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &accountServiceImpl{
		userStore:  userStore,
		hasher:     hasher,
		verifier:   verifier,
		validate:   validator.New(),
		codeLength: codeLength,
		logger:     logger.With("component", "account_service"),
	}, nil
}

// Register creates a new user with a bcrypt-hashed credential.
func (s *accountServiceImpl) Register(
	ctx context.Context,
	username, password string,
	roles ...domain.Role,
) (*domain.User, error) {
	req := registerRequest{Username: username, Password: password}
	if err := s.validate.Struct(req); err != nil {
		s.logger.Debug("registration input rejected",
			"error", err,
			"username", username)
		return nil, NewServiceError("register", "invalid registration input", err)
	}

	user, err := domain.NewUser(username, password, roles...)
	if err != nil {
		return nil, NewServiceError("register", "failed to create user object", err)
	}

	hashed, err := s.hasher.Hash(password)
	if err != nil {
		s.logger.Error("failed to hash password",
			"error", err,
			"username", username)
		return nil, NewServiceError("register", "failed to hash password", err)
	}
	user.HashedPassword = hashed
	user.Password = ""

	if err := s.userStore.Create(ctx, user); err != nil {
		if errors.Is(err, store.ErrUsernameExists) {
			s.logger.Debug("attempted to register existing username",
				"username", username)
		} else {
			s.logger.Error("failed to save user",
				"error", err,
				"username", username)
		}
		return nil, NewServiceError("register", "failed to save user", err)
	}

	s.logger.Info("user registered",
		"user_id", user.ID,
		"username", username)
	return user, nil
}

// Authenticate verifies a username/password pair. Lookup misses and hash
// mismatches collapse to the same ErrInvalidCredentials so callers cannot
// probe which usernames exist.
func (s *accountServiceImpl) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := s.userStore.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			s.logger.Debug("authentication failed for unknown username",
				"username", username)
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("failed to retrieve user for authentication",
			"error", err,
			"username", username)
		return nil, NewServiceError("authenticate", "failed to retrieve user", err)
	}

	if err := s.verifier.Compare(user.HashedPassword, password); err != nil {
		s.logger.Debug("authentication failed for wrong password",
			"user_id", user.ID)
		return nil, ErrInvalidCredentials
	}

	s.logger.Info("user authenticated",
		"user_id", user.ID)
	return user, nil
}

// GenerateInvitationCode mints and records a fresh invitation code.
func (s *accountServiceImpl) GenerateInvitationCode(ctx context.Context) (string, error) {
	code, err := randomCode(s.codeLength)
	if err != nil {
		s.logger.Error("failed to generate invitation code",
			"error", err)
		return "", NewServiceError("generate_invitation_code", "failed to generate code", err)
	}

	if err := s.userStore.CreateInvitationCode(ctx, code); err != nil {
		s.logger.Error("failed to save invitation code",
			"error", err)
		return "", NewServiceError("generate_invitation_code", "failed to save code", err)
	}

	s.logger.Info("invitation code generated")
	return code, nil
}

// RedeemInvitationCode consumes an invitation code.
func (s *accountServiceImpl) RedeemInvitationCode(ctx context.Context, code string) error {
	if err := s.userStore.RedeemInvitationCode(ctx, code); err != nil {
		if errors.Is(err, store.ErrInvitationCodeInvalid) {
			s.logger.Debug("invalid invitation code presented")
		} else {
			s.logger.Error("failed to redeem invitation code",
				"error", err)
		}
		return NewServiceError("redeem_invitation_code", "failed to redeem code", err)
	}
	return nil
}

// AddTrustedReviewer records a reviewer the user trusts.
func (s *accountServiceImpl) AddTrustedReviewer(ctx context.Context, userID, reviewerID uuid.UUID) error {
	user, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		return NewServiceError("add_trusted_reviewer", "failed to retrieve user", err)
	}

	if !user.AddTrustedReviewer(reviewerID) {
		return nil
	}

	if err := s.userStore.SetTrustedReviewers(ctx, userID, user.TrustedReviewers); err != nil {
		s.logger.Error("failed to save trusted reviewers",
			"error", err,
			"user_id", userID)
		return NewServiceError("add_trusted_reviewer", "failed to save trusted reviewers", err)
	}

	s.logger.Info("trusted reviewer added",
		"user_id", userID,
		"reviewer_id", reviewerID)
	return nil
}

// RemoveTrustedReviewer drops a reviewer from the user's trusted list.
func (s *accountServiceImpl) RemoveTrustedReviewer(ctx context.Context, userID, reviewerID uuid.UUID) error {
	user, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		return NewServiceError("remove_trusted_reviewer", "failed to retrieve user", err)
	}

	if !user.RemoveTrustedReviewer(reviewerID) {
		return nil
	}

	if err := s.userStore.SetTrustedReviewers(ctx, userID, user.TrustedReviewers); err != nil {
		s.logger.Error("failed to save trusted reviewers",
			"error", err,
			"user_id", userID)
		return NewServiceError("remove_trusted_reviewer", "failed to save trusted reviewers", err)
	}

	s.logger.Info("trusted reviewer removed",
		"user_id", userID,
		"reviewer_id", reviewerID)
	return nil
}

// randomCode draws length characters uniformly from the code alphabet using
// crypto/rand.
func randomCode(length int) (string, error) {
	max := big.NewInt(int64(len(invitationCodeAlphabet)))
	code := make([]byte, length)
	for i := range code {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("failed to draw random character: %w", err)
		}
		code[i] = invitationCodeAlphabet[n.Int64()]
	}
	return string(code), nil
}
