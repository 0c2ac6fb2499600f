package pagination

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"
)

const timeFormat = time.RFC3339Nano

// DefaultLimit is the page size used when a caller does not ask for one.
const DefaultLimit = 20

// Cursor is the keyset position of the last row of a page:
// rows are ordered by SortDate DESC, CreatedAt DESC, ID DESC.
type Cursor struct {
	SortDate  time.Time
	CreatedAt time.Time
	ID        string
}

// Encode creates an opaque base64 token for the cursor.
func (c Cursor) Encode() string {
	tokenStr := fmt.Sprintf("%s|%s|%s", c.SortDate.Format(timeFormat), c.CreatedAt.Format(timeFormat), c.ID)
	return base64.URLEncoding.EncodeToString([]byte(tokenStr))
}

// DecodeCursor parses a token produced by Cursor.Encode.
func DecodeCursor(token string) (Cursor, error) {
	decodedBytes, err := base64.URLEncoding.DecodeString(token)
	if err != nil {
		return Cursor{}, fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}
	parts := strings.SplitN(string(decodedBytes), "|", 3)
	if len(parts) != 3 || parts[2] == "" {
		return Cursor{}, fmt.Errorf("invalid pagination token format (split)")
	}

	sortDate, err := time.Parse(timeFormat, parts[0])
	if err != nil {
		return Cursor{}, fmt.Errorf("invalid pagination token format (sort date parse): %w", err)
	}
	createdAt, err := time.Parse(timeFormat, parts[1])
	if err != nil {
		return Cursor{}, fmt.Errorf("invalid pagination token format (created_at parse): %w", err)
	}
	return Cursor{SortDate: sortDate, CreatedAt: createdAt, ID: parts[2]}, nil
}

// NormalizeLimit clamps a requested page size to [1, max], defaulting to DefaultLimit.
func NormalizeLimit(limit, max int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit > max {
		return max
	}
	return limit
}

// Page trims a result fetched with limit+1 rows and returns the token for the next page.
func Page[T any](rows []T, limit int, cursorOf func(T) Cursor) ([]T, *string) {
	if len(rows) <= limit {
		return rows, nil
	}
	page := rows[:limit]
	token := cursorOf(page[limit-1]).Encode()
	return page, &token
}
