package pagination

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCursorRoundTrip(t *testing.T) {
	cursor := Cursor{
		SortDate:  time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC),
		CreatedAt: time.Date(2024, 4, 1, 14, 30, 45, 123456789, time.UTC),
		ID:        "set-42",
	}

	decoded, err := DecodeCursor(cursor.Encode())
	require.NoError(t, err)
	assert.True(t, cursor.SortDate.Equal(decoded.SortDate))
	assert.True(t, cursor.CreatedAt.Equal(decoded.CreatedAt))
	assert.Equal(t, "set-42", decoded.ID)
}

func TestDecodeCursorErrors(t *testing.T) {
	_, err := DecodeCursor("this is not base64!")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "base64 decode")

	_, err = DecodeCursor(base64.URLEncoding.EncodeToString([]byte("2024-03-31T00:00:00Z")))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "split")

	_, err = DecodeCursor(base64.URLEncoding.EncodeToString([]byte("notadate|2024-03-31T00:00:00Z|id")))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sort date parse")

	_, err = DecodeCursor(base64.URLEncoding.EncodeToString([]byte("2024-03-31T00:00:00Z|later|id")))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "created_at parse")
}

func TestNormalizeLimit(t *testing.T) {
	assert.Equal(t, DefaultLimit, NormalizeLimit(0, 100))
	assert.Equal(t, 100, NormalizeLimit(500, 100))
	assert.Equal(t, 7, NormalizeLimit(7, 100))
}

func TestPage(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rows := []int{5, 4, 3}
	cursorOf := func(v int) Cursor {
		return Cursor{SortDate: base, CreatedAt: base.Add(time.Duration(v) * time.Second), ID: string(rune('a' + v))}
	}

	page, next := Page(rows, 2, cursorOf)
	assert.Equal(t, []int{5, 4}, page)
	require.NotNil(t, next)
	decoded, err := DecodeCursor(*next)
	require.NoError(t, err)
	assert.Equal(t, "e", decoded.ID)

	page, next = Page(rows, 3, cursorOf)
	assert.Len(t, page, 3)
	assert.Nil(t, next)
}
