//go:build integration

package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kestrelm/quorum-api/internal/domain"
	"github.com/kestrelm/quorum-api/internal/platform/postgres"
	"github.com/kestrelm/quorum-api/internal/testdb"
)

// Snapshot-replace tests share whole tables, so they run serially against a
// reset table instead of inside rolled-back transactions.

func TestPostgresQuestionStore_RoundTrip(t *testing.T) {
	db := testdb.GetTestDB(t)
	testdb.ResetTables(t, db, "questions")

	ctx, cancel := context.WithTimeout(context.Background(), testdb.TestTimeout)
	defer cancel()

	questionStore := postgres.NewPostgresQuestionStore(db, nil)

	first, err := domain.NewQuestion("Alice", "How do transactions nest?", "details", uuid.New())
	require.NoError(t, err)
	second, err := domain.NewQuestion("", "Untitled author", "more details", uuid.New())
	require.NoError(t, err)
	second.ChooseAnswer(uuid.New())
	second.MarkUnderReview()

	require.NoError(t, questionStore.ReplaceAll(ctx, []*domain.Question{first, second}))

	loaded, err := questionStore.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 2)

	assert.Equal(t, first.ID, loaded[0].ID)
	assert.Equal(t, "Alice", loaded[0].AuthorName)
	assert.Equal(t, uuid.Nil, loaded[0].ChosenAnswerID)
	assert.False(t, loaded[0].UnderReview)
	assert.WithinDuration(t, first.CreatedAt, loaded[0].CreatedAt, time.Second)

	assert.Equal(t, second.ID, loaded[1].ID)
	assert.Equal(t, domain.AnonymousAuthor, loaded[1].AuthorName)
	assert.Equal(t, second.ChosenAnswerID, loaded[1].ChosenAnswerID)
	assert.True(t, loaded[1].UnderReview)
}

func TestPostgresQuestionStore_ReplaceAllOverwrites(t *testing.T) {
	db := testdb.GetTestDB(t)
	testdb.ResetTables(t, db, "questions")

	ctx, cancel := context.WithTimeout(context.Background(), testdb.TestTimeout)
	defer cancel()

	questionStore := postgres.NewPostgresQuestionStore(db, nil)

	stale, err := domain.NewQuestion("Alice", "stale", "body", uuid.New())
	require.NoError(t, err)
	require.NoError(t, questionStore.ReplaceAll(ctx, []*domain.Question{stale}))

	fresh, err := domain.NewQuestion("Bob", "fresh", "body", uuid.New())
	require.NoError(t, err)
	require.NoError(t, questionStore.ReplaceAll(ctx, []*domain.Question{fresh}))

	loaded, err := questionStore.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, fresh.ID, loaded[0].ID)

	// An empty snapshot empties the table.
	require.NoError(t, questionStore.ReplaceAll(ctx, nil))
	loaded, err = questionStore.LoadAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, loaded)
}
