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
	"github.com/kestrelm/quorum-api/internal/testdb"
)

func TestPostgresAnswerStore_RoundTrip(t *testing.T) {
	db := testdb.GetTestDB(t)
	testdb.ResetTables(t, db, "answers")

	ctx, cancel := context.WithTimeout(context.Background(), testdb.TestTimeout)
	defer cancel()

	answerStore := postgres.NewPostgresAnswerStore(db, nil)
	questionID := uuid.New()

	voted, err := domain.NewAnswer("Bob", "an answer", questionID, uuid.New())
	require.NoError(t, err)
	voted.RecordUpvote(uuid.New())
	voted.RecordUpvote(uuid.New())
	voted.RecordDownvote(uuid.New())

	unvoted, err := domain.NewAnswer("Carol", "another answer", questionID, uuid.New())
	require.NoError(t, err)
	unvoted.ClearUnderReview()

	require.NoError(t, answerStore.ReplaceAll(ctx, []*domain.Answer{voted, unvoted}))

	loaded, err := answerStore.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 2)

	assert.Equal(t, voted.ID, loaded[0].ID)
	assert.Equal(t, questionID, loaded[0].QuestionID)
	assert.Equal(t, voted.UpvotedBy, loaded[0].UpvotedBy, "vote lists keep their order")
	assert.Equal(t, voted.DownvotedBy, loaded[0].DownvotedBy)
	assert.True(t, loaded[0].UnderReview)

	assert.Equal(t, unvoted.ID, loaded[1].ID)
	assert.Empty(t, loaded[1].UpvotedBy)
	assert.Empty(t, loaded[1].DownvotedBy)
	assert.False(t, loaded[1].UnderReview)

	// The table carries no reputation column; snapshots start at zero until
	// refreshed from the users table.
	assert.Equal(t, 0, loaded[0].Reputation)
}
