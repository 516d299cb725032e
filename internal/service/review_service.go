package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/kestrelm/quorum-api/internal/domain"
	"github.com/kestrelm/quorum-api/internal/store"
)

// ReviewService runs the moderation workflow. A review targets exactly one
// question or answer, starts PENDING, and eventually lands in APPROVED or
// REJECTED; both are terminal. The target post's under-review flag is a
// separate concern that callers reconcile themselves.
type ReviewService interface {
	// CreateReview opens a PENDING review for exactly one target. Pass
	// uuid.Nil for the target kind that does not apply.
	CreateReview(ctx context.Context, reviewerID, questionID, answerID uuid.UUID, content string) (*domain.Review, error)

	// GetReview retrieves a review by ID.
	// Returns store.ErrReviewNotFound if the review does not exist.
	GetReview(ctx context.Context, reviewID uuid.UUID) (*domain.Review, error)

	// Approve resolves a pending review as APPROVED and returns the resulting
	// status. Approving a terminal review changes nothing and returns the
	// standing status, never an error.
	Approve(ctx context.Context, reviewID uuid.UUID) (domain.ReviewStatus, error)

	// Reject resolves a pending review as REJECTED, with the same terminal
	// no-op behavior as Approve.
	Reject(ctx context.Context, reviewID uuid.UUID) (domain.ReviewStatus, error)

	// UpdateContent replaces the reviewer's written evaluation.
	UpdateContent(ctx context.Context, reviewID uuid.UUID, content string) error

	// ListByQuestion returns all reviews targeting the given question.
	ListByQuestion(ctx context.Context, questionID uuid.UUID) ([]*domain.Review, error)

	// ListByAnswer returns all reviews targeting the given answer.
	ListByAnswer(ctx context.Context, answerID uuid.UUID) ([]*domain.Review, error)
}

// reviewServiceImpl implements the ReviewService interface
type reviewServiceImpl struct {
	reviewStore store.ReviewStore
	logger      *slog.Logger
}

// NewReviewService creates a new ReviewService.
// It returns an error if the review store is nil.
func NewReviewService(reviewStore store.ReviewStore, logger *slog.Logger) (ReviewService, error) {
	if reviewStore == nil {
		return nil, &ServiceError{Operation: "create_service", Message: "reviewStore cannot be nil"}
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &reviewServiceImpl{
		reviewStore: reviewStore,
		logger:      logger.With("component", "review_service"),
	}, nil
}

// CreateReview opens a PENDING review for exactly one target.
func (s *reviewServiceImpl) CreateReview(
	ctx context.Context,
	reviewerID, questionID, answerID uuid.UUID,
	content string,
) (*domain.Review, error) {
	review, err := domain.NewReview(reviewerID, questionID, answerID, content)
	if err != nil {
		s.logger.Error("failed to create review object",
			"error", err,
			"reviewer_id", reviewerID)
		return nil, NewServiceError("create_review", "failed to create review object", err)
	}

	if err := s.reviewStore.Create(ctx, review); err != nil {
		s.logger.Error("failed to save review",
			"error", err,
			"review_id", review.ID)
		return nil, NewServiceError("create_review", "failed to save review", err)
	}

	s.logger.Info("review created",
		"review_id", review.ID,
		"reviewer_id", reviewerID)
	return review, nil
}

// GetReview retrieves a review by ID.
func (s *reviewServiceImpl) GetReview(ctx context.Context, reviewID uuid.UUID) (*domain.Review, error) {
	review, err := s.reviewStore.GetByID(ctx, reviewID)
	if err != nil {
		if !errors.Is(err, store.ErrReviewNotFound) {
			s.logger.Error("failed to retrieve review",
				"error", err,
				"review_id", reviewID)
		}
		return nil, NewServiceError("get_review", "failed to retrieve review", err)
	}
	return review, nil
}

// Approve resolves a pending review as APPROVED.
func (s *reviewServiceImpl) Approve(ctx context.Context, reviewID uuid.UUID) (domain.ReviewStatus, error) {
	return s.resolve(ctx, reviewID, true)
}

// Reject resolves a pending review as REJECTED.
func (s *reviewServiceImpl) Reject(ctx context.Context, reviewID uuid.UUID) (domain.ReviewStatus, error) {
	return s.resolve(ctx, reviewID, false)
}

func (s *reviewServiceImpl) resolve(ctx context.Context, reviewID uuid.UUID, approve bool) (domain.ReviewStatus, error) {
	review, err := s.reviewStore.GetByID(ctx, reviewID)
	if err != nil {
		if !errors.Is(err, store.ErrReviewNotFound) {
			s.logger.Error("failed to retrieve review for resolution",
				"error", err,
				"review_id", reviewID)
		}
		return "", NewServiceError("resolve_review", "failed to retrieve review", err)
	}

	// Terminal reviews stay put; report the standing status without touching
	// the store.
	if review.Terminal() {
		s.logger.Debug("review already resolved",
			"review_id", reviewID,
			"status", review.Status)
		return review.Status, nil
	}

	var status domain.ReviewStatus
	if approve {
		status = review.Approve()
	} else {
		status = review.Reject()
	}

	if err := s.reviewStore.Update(ctx, review); err != nil {
		s.logger.Error("failed to save resolved review",
			"error", err,
			"review_id", reviewID,
			"status", status)
		return "", NewServiceError("resolve_review", "failed to save resolved review", err)
	}

	s.logger.Info("review resolved",
		"review_id", reviewID,
		"status", status)
	return status, nil
}

// UpdateContent replaces the reviewer's written evaluation.
func (s *reviewServiceImpl) UpdateContent(ctx context.Context, reviewID uuid.UUID, content string) error {
	review, err := s.reviewStore.GetByID(ctx, reviewID)
	if err != nil {
		return NewServiceError("update_review_content", "failed to retrieve review", err)
	}

	review.Content = content
	if err := s.reviewStore.Update(ctx, review); err != nil {
		s.logger.Error("failed to save review content",
			"error", err,
			"review_id", reviewID)
		return NewServiceError("update_review_content", "failed to save review", err)
	}
	return nil
}

// ListByQuestion returns all reviews targeting the given question.
func (s *reviewServiceImpl) ListByQuestion(ctx context.Context, questionID uuid.UUID) ([]*domain.Review, error) {
	reviews, err := s.reviewStore.ListByQuestion(ctx, questionID)
	if err != nil {
		s.logger.Error("failed to list reviews by question",
			"error", err,
			"question_id", questionID)
		return nil, NewServiceError("list_reviews", "failed to list reviews by question", err)
	}
	return reviews, nil
}

// ListByAnswer returns all reviews targeting the given answer.
func (s *reviewServiceImpl) ListByAnswer(ctx context.Context, answerID uuid.UUID) ([]*domain.Review, error) {
	reviews, err := s.reviewStore.ListByAnswer(ctx, answerID)
	if err != nil {
		s.logger.Error("failed to list reviews by answer",
			"error", err,
			"answer_id", answerID)
		return nil, NewServiceError("list_reviews", "failed to list reviews by answer", err)
	}
	return reviews, nil
}
