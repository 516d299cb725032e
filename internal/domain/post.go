package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// AnonymousAuthor is the display name used when a post is created with a
// blank author name.
const AnonymousAuthor = "Anonymous"

// Post holds the fields shared by every piece of board content. Question and
// Answer embed it. ID and CreatedAt are set once at construction and must not
// be changed afterwards; Rehydrate-style constructors exist for loading
// persisted rows.
type Post struct {
	ID          uuid.UUID `json:"id"`
	AuthorID    uuid.UUID `json:"author_id"`
	AuthorName  string    `json:"author_name"`
	Body        string    `json:"body"`
	CreatedAt   time.Time `json:"created_at"`
	UnderReview bool      `json:"under_review"`
}

// newPost builds the shared post base. A blank author name falls back to
// AnonymousAuthor.
func newPost(authorName, body string, authorID uuid.UUID) Post {
	if strings.TrimSpace(authorName) == "" {
		authorName = AnonymousAuthor
	}
	return Post{
		ID:         uuid.New(),
		AuthorID:   authorID,
		AuthorName: authorName,
		Body:       body,
		CreatedAt:  time.Now().UTC(),
	}
}

// MarkUnderReview flags the post as currently under moderation.
func (p *Post) MarkUnderReview() {
	p.UnderReview = true
}

// ClearUnderReview removes the moderation flag.
func (p *Post) ClearUnderReview() {
	p.UnderReview = false
}
