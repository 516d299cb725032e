//go:build integration

package postgres_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kestrelm/quorum-api/internal/domain"
	"github.com/kestrelm/quorum-api/internal/platform/postgres"
	"github.com/kestrelm/quorum-api/internal/store"
	"github.com/kestrelm/quorum-api/internal/testdb"
)

func TestPostgresReviewStore_CreateAndResolve(t *testing.T) {
	db := testdb.GetTestDB(t)
	testdb.ResetTables(t, db, "review")

	ctx, cancel := context.WithTimeout(context.Background(), testdb.TestTimeout)
	defer cancel()

	reviewStore := postgres.NewPostgresReviewStore(db, nil)

	review, err := domain.NewReview(uuid.New(), uuid.New(), uuid.Nil, "looks thin")
	require.NoError(t, err)
	require.NoError(t, reviewStore.Create(ctx, review))

	loaded, err := reviewStore.GetByID(ctx, review.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ReviewPending, loaded.Status)
	assert.Equal(t, "looks thin", loaded.Content)
	assert.Equal(t, review.QuestionID, loaded.QuestionID)
	assert.Equal(t, uuid.Nil, loaded.AnswerID)

	loaded.Approve()
	loaded.Content = "resolved after edit"
	require.NoError(t, reviewStore.Update(ctx, loaded))

	resolved, err := reviewStore.GetByID(ctx, review.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ReviewApproved, resolved.Status)
	assert.Equal(t, "resolved after edit", resolved.Content)

	_, err = reviewStore.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, store.ErrReviewNotFound)
}

func TestPostgresReviewStore_ListByTarget(t *testing.T) {
	db := testdb.GetTestDB(t)
	testdb.ResetTables(t, db, "review")

	ctx, cancel := context.WithTimeout(context.Background(), testdb.TestTimeout)
	defer cancel()

	reviewStore := postgres.NewPostgresReviewStore(db, nil)
	questionID := uuid.New()
	answerID := uuid.New()

	forQuestion, err := domain.NewReview(uuid.New(), questionID, uuid.Nil, "")
	require.NoError(t, err)
	forAnswer, err := domain.NewReview(uuid.New(), uuid.Nil, answerID, "")
	require.NoError(t, err)
	require.NoError(t, reviewStore.Create(ctx, forQuestion))
	require.NoError(t, reviewStore.Create(ctx, forAnswer))

	byQuestion, err := reviewStore.ListByQuestion(ctx, questionID)
	require.NoError(t, err)
	require.Len(t, byQuestion, 1)
	assert.Equal(t, forQuestion.ID, byQuestion[0].ID)

	byAnswer, err := reviewStore.ListByAnswer(ctx, answerID)
	require.NoError(t, err)
	require.Len(t, byAnswer, 1)
	assert.Equal(t, forAnswer.ID, byAnswer[0].ID)
}

func TestPostgresReviewStore_RoundTrip(t *testing.T) {
	db := testdb.GetTestDB(t)
	testdb.ResetTables(t, db, "review")

	ctx, cancel := context.WithTimeout(context.Background(), testdb.TestTimeout)
	defer cancel()

	reviewStore := postgres.NewPostgresReviewStore(db, nil)

	first, err := domain.NewReview(uuid.New(), uuid.New(), uuid.Nil, "a")
	require.NoError(t, err)
	second, err := domain.NewReview(uuid.New(), uuid.Nil, uuid.New(), "b")
	require.NoError(t, err)
	second.Reject()

	require.NoError(t, reviewStore.ReplaceAll(ctx, []*domain.Review{first, second}))

	loaded, err := reviewStore.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.Equal(t, domain.ReviewPending, loaded[0].Status)
	assert.Equal(t, domain.ReviewRejected, loaded[1].Status)
}
