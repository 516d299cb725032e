package postgres

import (
	"database/sql"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJoinUUIDListEmptyIsNull(t *testing.T) {
	t.Parallel()

	// Empty and nil lists both serialize to NULL, never "".
	assert.False(t, joinUUIDList(nil).Valid)
	assert.False(t, joinUUIDList([]uuid.UUID{}).Valid)
}

func TestUUIDListRoundTrip(t *testing.T) {
	t.Parallel()

	ids := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}

	raw := joinUUIDList(ids)
	require.True(t, raw.Valid)

	parsed, err := splitUUIDList(raw)
	require.NoError(t, err)
	assert.Equal(t, ids, parsed)
}

func TestSplitUUIDListNull(t *testing.T) {
	t.Parallel()

	parsed, err := splitUUIDList(sql.NullString{})
	require.NoError(t, err)
	assert.Empty(t, parsed)
}

func TestSplitUUIDListMalformed(t *testing.T) {
	t.Parallel()

	_, err := splitUUIDList(sql.NullString{String: "not-a-uuid", Valid: true})
	require.Error(t, err)

	_, err = splitUUIDList(sql.NullString{String: uuid.New().String() + ",junk", Valid: true})
	require.Error(t, err)
}

func TestSplitUUIDListTrimsWhitespace(t *testing.T) {
	t.Parallel()

	a := uuid.New()
	b := uuid.New()
	raw := sql.NullString{String: a.String() + ", " + b.String(), Valid: true}

	parsed, err := splitUUIDList(raw)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{a, b}, parsed)
}
