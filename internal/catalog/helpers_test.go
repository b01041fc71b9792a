package catalog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func pinClock(t *testing.T, now time.Time) {
	t.Helper()
	restore := SetClock(func() time.Time { return now })
	t.Cleanup(restore)
}

func newTestBook(t *testing.T, id int, title, author string) *Publication {
	t.Helper()
	p, err := NewBook(Details{
		ID:            id,
		Title:         title,
		Author:        author,
		Publisher:     "Penguin",
		Year:          1990 + id,
		Genre:         "Fiction",
		NumberOfPages: 100 + id,
	}, "978-0000000000", 1)
	require.NoError(t, err)
	return p
}
