package postgres

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// List-valued identity columns (upvoted_by, downvoted_by, trusted_reviewers)
// are stored as comma-joined UUID strings. An empty list is stored as NULL,
// never as an empty string.

// joinUUIDList serializes a list of IDs to its column representation.
func joinUUIDList(ids []uuid.UUID) sql.NullString {
	if len(ids) == 0 {
		return sql.NullString{}
	}

	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = id.String()
	}
	return sql.NullString{String: strings.Join(parts, ","), Valid: true}
}

// splitUUIDList parses the column representation back into a list of IDs.
// NULL parses to an empty list.
func splitUUIDList(raw sql.NullString) ([]uuid.UUID, error) {
	if !raw.Valid || raw.String == "" {
		return nil, nil
	}

	parts := strings.Split(raw.String, ",")
	ids := make([]uuid.UUID, 0, len(parts))
	for _, part := range parts {
		id, err := uuid.Parse(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("malformed UUID list element %q: %w", part, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
