package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/kestrelm/quorum-api/internal/domain"
	"github.com/kestrelm/quorum-api/internal/store"
)

// MessageService provides private messaging between users. Messages are
// persisted one at a time as they are sent; unlike board content there is no
// in-memory collection to keep in sync.
type MessageService interface {
	// Send delivers a message from one user to another. Pass uuid.Nil as
	// reviewID for messages outside any review conversation. A blank body is
	// rejected with domain.ErrMessageBodyEmpty.
	Send(ctx context.Context, fromID, toID, reviewID uuid.UUID, body string) (*domain.Message, error)

	// ListFrom returns all messages sent by the given user.
	ListFrom(ctx context.Context, fromID uuid.UUID) ([]*domain.Message, error)

	// ListTo returns all messages received by the given user.
	ListTo(ctx context.Context, toID uuid.UUID) ([]*domain.Message, error)

	// ListInvolving returns all messages where the user is sender or recipient.
	ListInvolving(ctx context.Context, userID uuid.UUID) ([]*domain.Message, error)

	// ListByReview returns the conversation attached to a review.
	ListByReview(ctx context.Context, reviewID uuid.UUID) ([]*domain.Message, error)

	// ListBetween returns the two users' conversation in chronological order,
	// regardless of who sent each message.
	ListBetween(ctx context.Context, a, b uuid.UUID) ([]*domain.Message, error)

	// Search returns messages whose body contains the query,
	// case-insensitively. A blank query matches nothing.
	Search(ctx context.Context, query string) ([]*domain.Message, error)

	// Contacts returns the de-duplicated set of users the given user has
	// exchanged messages with.
	Contacts(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)

	// UpdateBody replaces a sent message's body. A blank replacement is
	// rejected with domain.ErrMessageBodyEmpty.
	UpdateBody(ctx context.Context, id uuid.UUID, body string) error

	// Delete removes a message permanently.
	Delete(ctx context.Context, id uuid.UUID) error
}

// messageServiceImpl implements the MessageService interface
type messageServiceImpl struct {
	messageStore store.MessageStore
	logger       *slog.Logger
}

// NewMessageService creates a new MessageService.
// It returns an error if the message store is nil.
func NewMessageService(messageStore store.MessageStore, logger *slog.Logger) (MessageService, error) {
	if messageStore == nil {
		return nil, &ServiceError{Operation: "create_service", Message: "messageStore cannot be nil"}
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &messageServiceImpl{
		messageStore: messageStore,
		logger:       logger.With("component", "message_service"),
	}, nil
}

// Send delivers a message from one user to another.
func (s *messageServiceImpl) Send(
	ctx context.Context,
	fromID, toID, reviewID uuid.UUID,
	body string,
) (*domain.Message, error) {
	message, err := domain.NewMessage(fromID, toID, reviewID, body)
	if err != nil {
		s.logger.Error("failed to create message object",
			"error", err,
			"from", fromID,
			"to", toID)
		return nil, NewServiceError("send_message", "failed to create message object", err)
	}

	if err := s.messageStore.Create(ctx, message); err != nil {
		s.logger.Error("failed to save message",
			"error", err,
			"message_id", message.ID)
		return nil, NewServiceError("send_message", "failed to save message", err)
	}

	s.logger.Info("message sent",
		"message_id", message.ID,
		"from", fromID,
		"to", toID)
	return message, nil
}

// ListFrom returns all messages sent by the given user.
func (s *messageServiceImpl) ListFrom(ctx context.Context, fromID uuid.UUID) ([]*domain.Message, error) {
	messages, err := s.messageStore.ListFrom(ctx, fromID)
	if err != nil {
		return nil, NewServiceError("list_messages", "failed to list sent messages", err)
	}
	return messages, nil
}

// ListTo returns all messages received by the given user.
func (s *messageServiceImpl) ListTo(ctx context.Context, toID uuid.UUID) ([]*domain.Message, error) {
	messages, err := s.messageStore.ListTo(ctx, toID)
	if err != nil {
		return nil, NewServiceError("list_messages", "failed to list received messages", err)
	}
	return messages, nil
}

// ListInvolving returns all messages where the user is sender or recipient.
func (s *messageServiceImpl) ListInvolving(ctx context.Context, userID uuid.UUID) ([]*domain.Message, error) {
	messages, err := s.messageStore.ListInvolving(ctx, userID)
	if err != nil {
		return nil, NewServiceError("list_messages", "failed to list messages for user", err)
	}
	return messages, nil
}

// ListByReview returns the conversation attached to a review.
func (s *messageServiceImpl) ListByReview(ctx context.Context, reviewID uuid.UUID) ([]*domain.Message, error) {
	messages, err := s.messageStore.ListByReview(ctx, reviewID)
	if err != nil {
		return nil, NewServiceError("list_messages", "failed to list review messages", err)
	}
	return messages, nil
}

// ListBetween returns the two users' conversation in chronological order.
func (s *messageServiceImpl) ListBetween(ctx context.Context, a, b uuid.UUID) ([]*domain.Message, error) {
	messages, err := s.messageStore.ListBetween(ctx, a, b)
	if err != nil {
		return nil, NewServiceError("list_messages", "failed to list conversation", err)
	}
	return messages, nil
}

// Search returns messages whose body contains the query, case-insensitively.
// The blank-query convention matches the board collections: no query, no
// matches.
func (s *messageServiceImpl) Search(ctx context.Context, query string) ([]*domain.Message, error) {
	matches := []*domain.Message{}
	if strings.TrimSpace(query) == "" {
		return matches, nil
	}

	messages, err := s.messageStore.ListAll(ctx)
	if err != nil {
		s.logger.Error("failed to load messages for search",
			"error", err)
		return nil, NewServiceError("search_messages", "failed to load messages", err)
	}

	query = strings.ToLower(query)
	for _, m := range messages {
		if strings.Contains(strings.ToLower(m.Body), query) {
			matches = append(matches, m)
		}
	}
	return matches, nil
}

// Contacts returns the users the given user has exchanged messages with.
func (s *messageServiceImpl) Contacts(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	contacts, err := s.messageStore.Contacts(ctx, userID)
	if err != nil {
		return nil, NewServiceError("list_contacts", "failed to list contacts", err)
	}
	return contacts, nil
}

// UpdateBody replaces a sent message's body.
func (s *messageServiceImpl) UpdateBody(ctx context.Context, id uuid.UUID, body string) error {
	if strings.TrimSpace(body) == "" {
		return domain.ErrMessageBodyEmpty
	}

	if err := s.messageStore.UpdateBody(ctx, id, body); err != nil {
		if !errors.Is(err, store.ErrMessageNotFound) {
			s.logger.Error("failed to update message body",
				"error", err,
				"message_id", id)
		}
		return NewServiceError("update_message", "failed to update message body", err)
	}
	return nil
}

// Delete removes a message permanently.
func (s *messageServiceImpl) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.messageStore.Delete(ctx, id); err != nil {
		if !errors.Is(err, store.ErrMessageNotFound) {
			s.logger.Error("failed to delete message",
				"error", err,
				"message_id", id)
		}
		return NewServiceError("delete_message", "failed to delete message", err)
	}
	return nil
}
