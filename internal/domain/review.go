package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Review-specific validation errors
var (
	// ErrReviewReviewerIDEmpty is returned when a review's reviewer ID is empty or nil.
	ErrReviewReviewerIDEmpty = errors.New("review reviewer ID cannot be empty")

	// ErrReviewTargetMissing is returned when a review names neither a question nor an answer.
	ErrReviewTargetMissing = errors.New("review must reference a question or an answer")

	// ErrReviewTargetAmbiguous is returned when a review names both a question and an answer.
	ErrReviewTargetAmbiguous = errors.New("review cannot reference both a question and an answer")
)

// ReviewStatus is the lifecycle state of a Review. PENDING may move to
// APPROVED or REJECTED; both of those are terminal.
type ReviewStatus string

const (
	ReviewPending  ReviewStatus = "PENDING"
	ReviewApproved ReviewStatus = "APPROVED"
	ReviewRejected ReviewStatus = "REJECTED"
)

// Review is a moderator's evaluation record for a single question or answer.
// Its status lifecycle is tracked separately from the target post's
// under-review flag; the core never derives one from the other, so workflows
// that want them in sync must reconcile them explicitly.
type Review struct {
	ID         uuid.UUID    `json:"id"`
	ReviewerID uuid.UUID    `json:"reviewer_id"`
	QuestionID uuid.UUID    `json:"question_id,omitempty"`
	AnswerID   uuid.UUID    `json:"answer_id,omitempty"`
	Content    string       `json:"content"`
	Status     ReviewStatus `json:"status"`
	CreatedAt  time.Time    `json:"created_at"`
	Messages   []*Message   `json:"messages,omitempty"`
}

// NewReview creates a Review targeting exactly one of a question or an answer,
// identified by a non-nil ID. Content may be empty until set later. The
// review starts in ReviewPending.
func NewReview(reviewerID, questionID, answerID uuid.UUID, content string) (*Review, error) {
	r := &Review{
		ID:         uuid.New(),
		ReviewerID: reviewerID,
		QuestionID: questionID,
		AnswerID:   answerID,
		Content:    content,
		Status:     ReviewPending,
		CreatedAt:  time.Now().UTC(),
	}

	if err := r.Validate(); err != nil {
		return nil, err
	}

	return r, nil
}

// RehydrateReview reconstructs a Review from persisted fields. Used by the
// persistence layer only.
func RehydrateReview(
	id, reviewerID, questionID, answerID uuid.UUID,
	content string,
	status ReviewStatus,
	createdAt time.Time,
) *Review {
	return &Review{
		ID:         id,
		ReviewerID: reviewerID,
		QuestionID: questionID,
		AnswerID:   answerID,
		Content:    content,
		Status:     status,
		CreatedAt:  createdAt,
	}
}

// Validate checks if the Review has valid data.
// Returns an error if any field fails validation.
func (r *Review) Validate() error {
	if r.ReviewerID == uuid.Nil {
		return ErrReviewReviewerIDEmpty
	}

	if r.QuestionID == uuid.Nil && r.AnswerID == uuid.Nil {
		return ErrReviewTargetMissing
	}

	if r.QuestionID != uuid.Nil && r.AnswerID != uuid.Nil {
		return ErrReviewTargetAmbiguous
	}

	return nil
}

// Terminal reports whether the review has reached a final status.
func (r *Review) Terminal() bool {
	return r.Status == ReviewApproved || r.Status == ReviewRejected
}

// Approve moves a pending review to APPROVED and returns the resulting status.
// Calling Approve on a terminal review is a no-op that returns the unchanged
// status.
func (r *Review) Approve() ReviewStatus {
	if r.Status == ReviewPending {
		r.Status = ReviewApproved
	}
	return r.Status
}

// Reject moves a pending review to REJECTED and returns the resulting status.
// Calling Reject on a terminal review is a no-op that returns the unchanged
// status.
func (r *Review) Reject() ReviewStatus {
	if r.Status == ReviewPending {
		r.Status = ReviewRejected
	}
	return r.Status
}

// AttachMessage appends a message to the review's conversation thread.
func (r *Review) AttachMessage(m *Message) {
	r.Messages = append(r.Messages, m)
}
