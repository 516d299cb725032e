package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/kestrelm/quorum-api/internal/board"
	"github.com/kestrelm/quorum-api/internal/store"
)

// VoteService is the vote ledger: it records per-voter vote state on answers
// and keeps the author's reputation consistent between the users table
// (authoritative) and the denormalized snapshots on the author's answers.
//
// Both operations return the author's resulting reputation. A repeated vote
// in the same direction is a defined no-op that returns the current value;
// switching direction retracts the old vote and applies the new one, so the
// net reputation change is two points.
type VoteService interface {
	// CastUpvote records voterID's upvote on the answer.
	// Returns store.ErrAnswerNotFound, with no mutation, when the answer is
	// not in the collection.
	CastUpvote(ctx context.Context, answerID, voterID uuid.UUID) (int, error)

	// CastDownvote records voterID's downvote on the answer.
	// Returns store.ErrAnswerNotFound, with no mutation, when the answer is
	// not in the collection.
	CastDownvote(ctx context.Context, answerID, voterID uuid.UUID) (int, error)
}

// voteServiceImpl implements the VoteService interface
type voteServiceImpl struct {
	answers     *board.Answers
	answerStore store.AnswerStore
	userStore   store.UserStore
	logger      *slog.Logger
}

// NewVoteService creates a new VoteService.
// It returns an error if any required dependency is nil.
func NewVoteService(
	answers *board.Answers,
	answerStore store.AnswerStore,
	userStore store.UserStore,
	logger *slog.Logger,
) (VoteService, error) {
	if answers == nil {
		return nil, &ServiceError{Operation: "create_service", Message: "answers cannot be nil"}
	}
	if answerStore == nil {
		return nil, &ServiceError{Operation: "create_service", Message: "answerStore cannot be nil"}
	}
	if userStore == nil {
		return nil, &ServiceError{Operation: "create_service", Message: "userStore cannot be nil"}
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &voteServiceImpl{
		answers:     answers,
		answerStore: answerStore,
		userStore:   userStore,
		logger:      logger.With("component", "vote_service"),
	}, nil
}

// CastUpvote implements VoteService.CastUpvote.
func (s *voteServiceImpl) CastUpvote(ctx context.Context, answerID, voterID uuid.UUID) (int, error) {
	return s.cast(ctx, answerID, voterID, true)
}

// CastDownvote implements VoteService.CastDownvote.
func (s *voteServiceImpl) CastDownvote(ctx context.Context, answerID, voterID uuid.UUID) (int, error) {
	return s.cast(ctx, answerID, voterID, false)
}

func (s *voteServiceImpl) cast(ctx context.Context, answerID, voterID uuid.UUID, up bool) (int, error) {
	answer, ok := s.answers.GetByID(answerID)
	if !ok {
		return 0, store.ErrAnswerNotFound
	}

	// Same-direction repeat: nothing changes, report the standing value.
	if (up && answer.HasUpvoted(voterID)) || (!up && answer.HasDownvoted(voterID)) {
		s.logger.Debug("vote already recorded",
			"answer_id", answerID,
			"voter_id", voterID)
		return answer.Reputation, nil
	}

	// A direction switch retracts the standing vote before applying the new
	// one, so it moves reputation by two points instead of one.
	delta := 1
	if up && answer.HasDownvoted(voterID) || !up && answer.HasUpvoted(voterID) {
		delta = 2
	}
	if !up {
		delta = -delta
	}

	reputation, err := s.userStore.AdjustReputation(ctx, answer.AuthorID, delta)
	if err != nil {
		s.logger.Error("failed to adjust author reputation",
			"error", err,
			"answer_id", answerID,
			"author_id", answer.AuthorID,
			"delta", delta)
		return 0, NewServiceError("cast_vote", "failed to adjust author reputation", err)
	}

	if up {
		answer.RecordUpvote(voterID)
	} else {
		answer.RecordDownvote(voterID)
	}

	// Refresh the denormalized snapshot on every answer by this author so no
	// stale copy survives the vote.
	s.answers.SetAuthorReputation(answer.AuthorID, reputation)

	if err := s.answerStore.ReplaceAll(ctx, s.answers.All()); err != nil {
		s.logger.Error("failed to persist answers after vote",
			"error", err,
			"answer_id", answerID)
		return reputation, NewServiceError("cast_vote", "failed to persist answer snapshot", err)
	}

	s.logger.Info("vote recorded",
		"answer_id", answerID,
		"voter_id", voterID,
		"upvote", up,
		"reputation", reputation)
	return reputation, nil
}
