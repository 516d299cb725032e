package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Question-specific validation errors
var (
	// ErrQuestionIDEmpty is returned when a question ID is empty or nil.
	ErrQuestionIDEmpty = errors.New("question ID cannot be empty")

	// ErrQuestionAuthorIDEmpty is returned when a question's author ID is empty or nil.
	ErrQuestionAuthorIDEmpty = errors.New("question author ID cannot be empty")

	// ErrQuestionTitleEmpty is returned when a question's title is empty or whitespace.
	ErrQuestionTitleEmpty = errors.New("question title cannot be empty")
)

// Question is a top-level post that answers attach to. ChosenAnswerID, when
// not uuid.Nil, names the answer the author accepted; the content collections
// do not cross-check it against the answer set, so keeping the reference
// consistent is the caller's job.
type Question struct {
	Post
	Title          string    `json:"title"`
	ChosenAnswerID uuid.UUID `json:"chosen_answer_id,omitempty"`
}

// NewQuestion creates a Question with a fresh ID and creation timestamp.
// Returns an error if validation fails.
func NewQuestion(authorName, title, body string, authorID uuid.UUID) (*Question, error) {
	q := &Question{
		Post:  newPost(authorName, body, authorID),
		Title: title,
	}

	if err := q.Validate(); err != nil {
		return nil, err
	}

	return q, nil
}

// RehydrateQuestion reconstructs a Question from persisted fields without
// generating a new identity or timestamp. Used by the persistence layer only.
func RehydrateQuestion(
	id, authorID uuid.UUID,
	authorName, title, body string,
	createdAt time.Time,
	chosenAnswerID uuid.UUID,
	underReview bool,
) *Question {
	return &Question{
		Post: Post{
			ID:          id,
			AuthorID:    authorID,
			AuthorName:  authorName,
			Body:        body,
			CreatedAt:   createdAt,
			UnderReview: underReview,
		},
		Title:          title,
		ChosenAnswerID: chosenAnswerID,
	}
}

// Validate checks if the Question has valid data.
// Returns an error if any field fails validation.
func (q *Question) Validate() error {
	if q.ID == uuid.Nil {
		return ErrQuestionIDEmpty
	}

	if q.AuthorID == uuid.Nil {
		return ErrQuestionAuthorIDEmpty
	}

	if strings.TrimSpace(q.Title) == "" {
		return ErrQuestionTitleEmpty
	}

	return nil
}

// ChooseAnswer records the accepted answer for this question. Passing uuid.Nil
// clears the selection.
func (q *Question) ChooseAnswer(answerID uuid.UUID) {
	q.ChosenAnswerID = answerID
}

// HasChosenAnswer reports whether an accepted answer has been recorded.
func (q *Question) HasChosenAnswer() bool {
	return q.ChosenAnswerID != uuid.Nil
}
