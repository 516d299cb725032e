//go:build integration

package postgres_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kestrelm/quorum-api/internal/domain"
	"github.com/kestrelm/quorum-api/internal/platform/postgres"
	"github.com/kestrelm/quorum-api/internal/store"
	"github.com/kestrelm/quorum-api/internal/testdb"
)

func insertTestUser(ctx context.Context, t *testing.T, userStore *postgres.PostgresUserStore, roles ...domain.Role) *domain.User {
	t.Helper()

	user, err := domain.NewUser(fmt.Sprintf("user-%s", uuid.New().String()[:8]), "pw", roles...)
	require.NoError(t, err)
	user.HashedPassword = "not-a-real-hash"
	user.Password = ""
	require.NoError(t, userStore.Create(ctx, user))
	return user
}

func TestPostgresUserStore_CreateAndGet(t *testing.T) {
	db := testdb.GetTestDB(t)

	ctx, cancel := context.WithTimeout(context.Background(), testdb.TestTimeout)
	defer cancel()

	userStore := postgres.NewPostgresUserStore(db, nil)
	user := insertTestUser(ctx, t, userStore, domain.RoleStudent, domain.RoleReviewer)

	byID, err := userStore.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Username, byID.Username)
	assert.True(t, byID.HasRole(domain.RoleStudent))
	assert.True(t, byID.HasRole(domain.RoleReviewer))
	assert.False(t, byID.HasRole(domain.RoleAdmin))
	assert.Equal(t, 0, byID.Reputation)

	byName, err := userStore.GetByUsername(ctx, user.Username)
	require.NoError(t, err)
	assert.Equal(t, user.ID, byName.ID)

	_, err = userStore.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, store.ErrUserNotFound)
}

func TestPostgresUserStore_DuplicateUsername(t *testing.T) {
	db := testdb.GetTestDB(t)

	ctx, cancel := context.WithTimeout(context.Background(), testdb.TestTimeout)
	defer cancel()

	userStore := postgres.NewPostgresUserStore(db, nil)
	user := insertTestUser(ctx, t, userStore)

	duplicate, err := domain.NewUser(user.Username, "pw")
	require.NoError(t, err)
	duplicate.HashedPassword = "not-a-real-hash"

	err = userStore.Create(ctx, duplicate)
	assert.ErrorIs(t, err, store.ErrUsernameExists)
}

func TestPostgresUserStore_AdjustReputation(t *testing.T) {
	db := testdb.GetTestDB(t)

	ctx, cancel := context.WithTimeout(context.Background(), testdb.TestTimeout)
	defer cancel()

	userStore := postgres.NewPostgresUserStore(db, nil)
	user := insertTestUser(ctx, t, userStore)

	reputation, err := userStore.AdjustReputation(ctx, user.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, reputation)

	reputation, err = userStore.AdjustReputation(ctx, user.ID, -2)
	require.NoError(t, err)
	assert.Equal(t, -1, reputation, "reputation may go negative")

	stored, err := userStore.GetReputation(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, -1, stored)

	_, err = userStore.AdjustReputation(ctx, uuid.New(), 1)
	assert.ErrorIs(t, err, store.ErrUserNotFound)
}

func TestPostgresUserStore_TrustedReviewers(t *testing.T) {
	db := testdb.GetTestDB(t)

	ctx, cancel := context.WithTimeout(context.Background(), testdb.TestTimeout)
	defer cancel()

	userStore := postgres.NewPostgresUserStore(db, nil)
	user := insertTestUser(ctx, t, userStore)

	reviewers, err := userStore.GetTrustedReviewers(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, reviewers)

	want := []uuid.UUID{uuid.New(), uuid.New()}
	require.NoError(t, userStore.SetTrustedReviewers(ctx, user.ID, want))

	reviewers, err = userStore.GetTrustedReviewers(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, want, reviewers)

	// Clearing the list stores NULL, which reads back as empty.
	require.NoError(t, userStore.SetTrustedReviewers(ctx, user.ID, nil))
	reviewers, err = userStore.GetTrustedReviewers(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, reviewers)
}

func TestPostgresUserStore_InvitationCodes(t *testing.T) {
	db := testdb.GetTestDB(t)

	ctx, cancel := context.WithTimeout(context.Background(), testdb.TestTimeout)
	defer cancel()

	userStore := postgres.NewPostgresUserStore(db, nil)
	code := fmt.Sprintf("CODE%s", uuid.New().String()[:8])

	require.NoError(t, userStore.CreateInvitationCode(ctx, code))
	require.NoError(t, userStore.RedeemInvitationCode(ctx, code))

	err := userStore.RedeemInvitationCode(ctx, code)
	assert.ErrorIs(t, err, store.ErrInvitationCodeInvalid, "codes are single-use")

	err = userStore.RedeemInvitationCode(ctx, "NEVERMINTED")
	assert.ErrorIs(t, err, store.ErrInvitationCodeInvalid)
}
