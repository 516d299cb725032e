package service

import (
	"errors"
	"fmt"

	"github.com/kestrelm/quorum-api/internal/store"
)

// Common sentinel errors for the service layer
var (
	// ErrInvalidCredentials indicates an unknown username or a wrong password.
	// The two cases are deliberately indistinguishable to the caller.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// passthroughSentinels are errors callers match with errors.Is; they cross the
// service boundary unwrapped so that matching stays cheap.
var passthroughSentinels = []error{
	ErrInvalidCredentials,
	store.ErrQuestionNotFound,
	store.ErrAnswerNotFound,
	store.ErrUserNotFound,
	store.ErrReviewNotFound,
	store.ErrMessageNotFound,
	store.ErrUsernameExists,
	store.ErrInvitationCodeInvalid,
}

// ServiceError wraps errors from the service layer with operation context.
type ServiceError struct {
	// Operation is the operation that failed (e.g., "cast_upvote", "register")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError creates a new ServiceError.
// Known sentinel errors are returned directly without wrapping.
func NewServiceError(operation, message string, err error) error {
	if err == nil {
		return nil
	}

	for _, sentinel := range passthroughSentinels {
		if errors.Is(err, sentinel) {
			return sentinel
		}
	}

	return &ServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
