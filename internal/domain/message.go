package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Message-specific validation errors
var (
	// ErrMessageBodyEmpty is returned when a message body is empty or whitespace.
	ErrMessageBodyEmpty = errors.New("message body cannot be empty")

	// ErrMessageSenderEmpty is returned when a message's sender ID is empty or nil.
	ErrMessageSenderEmpty = errors.New("message sender ID cannot be empty")

	// ErrMessageRecipientEmpty is returned when a message's recipient ID is empty or nil.
	ErrMessageRecipientEmpty = errors.New("message recipient ID cannot be empty")
)

// Message is a private message between two users, optionally scoped to a
// review conversation (ReviewID of uuid.Nil means no review association).
// Once sent, only the body may change; messages disappear only through an
// explicit delete.
type Message struct {
	ID       uuid.UUID `json:"id"`
	FromID   uuid.UUID `json:"from_id"`
	ToID     uuid.UUID `json:"to_id"`
	ReviewID uuid.UUID `json:"review_id,omitempty"`
	Body     string    `json:"body"`
	SentAt   time.Time `json:"sent_at"`
}

// NewMessage creates a Message with a fresh ID and send timestamp.
// Returns an error if validation fails.
func NewMessage(fromID, toID, reviewID uuid.UUID, body string) (*Message, error) {
	m := &Message{
		ID:       uuid.New(),
		FromID:   fromID,
		ToID:     toID,
		ReviewID: reviewID,
		Body:     body,
		SentAt:   time.Now().UTC(),
	}

	if err := m.Validate(); err != nil {
		return nil, err
	}

	return m, nil
}

// RehydrateMessage reconstructs a Message from persisted fields. Used by the
// persistence layer only.
func RehydrateMessage(
	id, fromID, toID, reviewID uuid.UUID,
	body string,
	sentAt time.Time,
) *Message {
	return &Message{
		ID:       id,
		FromID:   fromID,
		ToID:     toID,
		ReviewID: reviewID,
		Body:     body,
		SentAt:   sentAt,
	}
}

// Validate checks if the Message has valid data.
// Returns an error if any field fails validation.
func (m *Message) Validate() error {
	if m.FromID == uuid.Nil {
		return ErrMessageSenderEmpty
	}

	if m.ToID == uuid.Nil {
		return ErrMessageRecipientEmpty
	}

	if strings.TrimSpace(m.Body) == "" {
		return ErrMessageBodyEmpty
	}

	return nil
}

// OtherParty returns the participant that is not the given user, for building
// contact lists. The second return is false when the user is not a participant.
func (m *Message) OtherParty(userID uuid.UUID) (uuid.UUID, bool) {
	switch userID {
	case m.FromID:
		return m.ToID, true
	case m.ToID:
		return m.FromID, true
	default:
		return uuid.Nil, false
	}
}
