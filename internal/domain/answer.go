package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Answer-specific validation errors
var (
	// ErrAnswerIDEmpty is returned when an answer ID is empty or nil.
	ErrAnswerIDEmpty = errors.New("answer ID cannot be empty")

	// ErrAnswerAuthorIDEmpty is returned when an answer's author ID is empty or nil.
	ErrAnswerAuthorIDEmpty = errors.New("answer author ID cannot be empty")

	// ErrAnswerQuestionIDEmpty is returned when an answer's question ID is empty or nil.
	ErrAnswerQuestionIDEmpty = errors.New("answer question ID cannot be empty")
)

// Answer is a reply to a Question. Reputation mirrors the author's global
// reputation on the users table; it is a denormalized display snapshot that
// the vote ledger refreshes on every vote, never the authoritative value.
//
// UpvotedBy and DownvotedBy keep per-voter vote state. A voter appears in at
// most one of the two lists at any time.
type Answer struct {
	Post
	QuestionID  uuid.UUID   `json:"question_id"`
	Reputation  int         `json:"reputation"`
	UpvotedBy   []uuid.UUID `json:"upvoted_by,omitempty"`
	DownvotedBy []uuid.UUID `json:"downvoted_by,omitempty"`
}

// NewAnswer creates an Answer with a fresh ID and creation timestamp.
// New answers start flagged under review until a moderator clears them.
// Returns an error if validation fails.
func NewAnswer(authorName, body string, questionID, authorID uuid.UUID) (*Answer, error) {
	a := &Answer{
		Post:       newPost(authorName, body, authorID),
		QuestionID: questionID,
	}
	a.UnderReview = true

	if err := a.Validate(); err != nil {
		return nil, err
	}

	return a, nil
}

// RehydrateAnswer reconstructs an Answer from persisted fields without
// generating a new identity or timestamp. Used by the persistence layer only.
func RehydrateAnswer(
	id, questionID, authorID uuid.UUID,
	authorName, body string,
	createdAt time.Time,
	underReview bool,
	upvotedBy, downvotedBy []uuid.UUID,
) *Answer {
	return &Answer{
		Post: Post{
			ID:          id,
			AuthorID:    authorID,
			AuthorName:  authorName,
			Body:        body,
			CreatedAt:   createdAt,
			UnderReview: underReview,
		},
		QuestionID:  questionID,
		UpvotedBy:   upvotedBy,
		DownvotedBy: downvotedBy,
	}
}

// Validate checks if the Answer has valid data.
// Returns an error if any field fails validation.
func (a *Answer) Validate() error {
	if a.ID == uuid.Nil {
		return ErrAnswerIDEmpty
	}

	if a.AuthorID == uuid.Nil {
		return ErrAnswerAuthorIDEmpty
	}

	if a.QuestionID == uuid.Nil {
		return ErrAnswerQuestionIDEmpty
	}

	return nil
}

// HasUpvoted reports whether the given voter currently upvotes this answer.
func (a *Answer) HasUpvoted(voterID uuid.UUID) bool {
	return containsUUID(a.UpvotedBy, voterID)
}

// HasDownvoted reports whether the given voter currently downvotes this answer.
func (a *Answer) HasDownvoted(voterID uuid.UUID) bool {
	return containsUUID(a.DownvotedBy, voterID)
}

// RecordUpvote adds the voter to the upvote list, removing any standing
// downvote first. Returns false without mutating when the voter has already
// upvoted; a vote in the same direction is an idempotent no-op.
func (a *Answer) RecordUpvote(voterID uuid.UUID) bool {
	if a.HasUpvoted(voterID) {
		return false
	}
	a.DownvotedBy = removeUUID(a.DownvotedBy, voterID)
	a.UpvotedBy = append(a.UpvotedBy, voterID)
	return true
}

// RecordDownvote is the mirror of RecordUpvote.
func (a *Answer) RecordDownvote(voterID uuid.UUID) bool {
	if a.HasDownvoted(voterID) {
		return false
	}
	a.UpvotedBy = removeUUID(a.UpvotedBy, voterID)
	a.DownvotedBy = append(a.DownvotedBy, voterID)
	return true
}

func containsUUID(ids []uuid.UUID, id uuid.UUID) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}

func removeUUID(ids []uuid.UUID, id uuid.UUID) []uuid.UUID {
	for i, candidate := range ids {
		if candidate == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}
