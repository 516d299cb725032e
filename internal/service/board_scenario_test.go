package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kestrelm/quorum-api/internal/service"
)

// TestBoardLifecycle walks a full post-vote-search flow across the content
// and vote services sharing one set of collections.
func TestBoardLifecycle(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	f := newContentFixture(t)
	votes, err := service.NewVoteService(f.answers, f.answerStore, f.userStore, nil)
	require.NoError(t, err)

	aliceID := uuid.New()
	bobID := uuid.New()
	carolID := uuid.New()
	f.userStore.seedUser(aliceID)
	f.userStore.seedUser(bobID)
	f.userStore.seedUser(carolID)

	question, err := f.content.AddQuestion(ctx, "Alice", "T1", "body1", aliceID)
	require.NoError(t, err)

	a1, err := f.content.AddAnswer(ctx, "Bob", "first answer", question.ID, bobID)
	require.NoError(t, err)
	a2, err := f.content.AddAnswer(ctx, "Carol", "second answer", question.ID, carolID)
	require.NoError(t, err)

	voterX := uuid.New()

	reputation, err := votes.CastUpvote(ctx, a1.ID, voterX)
	require.NoError(t, err)
	assert.Equal(t, 1, reputation)
	assert.Equal(t, 1, a1.Reputation)

	// Voting the same direction again stacks nothing.
	reputation, err = votes.CastUpvote(ctx, a1.ID, voterX)
	require.NoError(t, err)
	assert.Equal(t, 1, reputation)
	assert.Equal(t, 1, a1.Reputation)

	// Switching direction swaps the vote rather than stacking it.
	reputation, err = votes.CastDownvote(ctx, a1.ID, voterX)
	require.NoError(t, err)
	assert.Equal(t, -1, reputation)
	assert.Equal(t, -1, a1.Reputation)
	assert.False(t, a1.HasUpvoted(voterX))
	assert.True(t, a1.HasDownvoted(voterX))

	// Carol's answer is untouched by Bob's votes.
	assert.Equal(t, 0, a2.Reputation)

	assert.Equal(t, []uuid.UUID{question.ID}, f.content.SearchQuestions("body1"))
}
