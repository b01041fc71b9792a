package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ids(pubs []*Publication) []int {
	out := make([]int, 0, len(pubs))
	for _, p := range pubs {
		out = append(out, p.ID())
	}
	return out
}

func TestCollectionRegister(t *testing.T) {
	c := NewCollection()
	require.NoError(t, c.Register(newTestBook(t, 1, "Dune", "Frank Herbert")))

	t.Run("nil is a type error", func(t *testing.T) {
		assert.ErrorIs(t, c.Register(nil), ErrType)
	})

	t.Run("same id is rejected regardless of title", func(t *testing.T) {
		err := c.Register(newTestBook(t, 1, "Other", "Someone"))
		assert.ErrorIs(t, err, ErrDuplicate)
	})

	t.Run("same title and author is rejected under a new id", func(t *testing.T) {
		err := c.Register(newTestBook(t, 2, "Dune", "Frank Herbert"))
		assert.ErrorIs(t, err, ErrDuplicate)
	})

	t.Run("title match is case sensitive", func(t *testing.T) {
		assert.NoError(t, c.Register(newTestBook(t, 3, "DUNE", "Frank Herbert")))
	})

	assert.Equal(t, 2, c.Len())
	assert.Equal(t, 4, c.NextID())
}

func TestCollectionRemoveAndGet(t *testing.T) {
	c := NewCollection()
	require.NoError(t, c.Register(newTestBook(t, 5, "A", "B")))

	p, ok := c.Get(5)
	require.True(t, ok)
	assert.Equal(t, "A", p.Title())

	assert.True(t, c.Remove(5))
	assert.False(t, c.Remove(5))
	_, ok = c.Get(5)
	assert.False(t, ok)
	assert.Equal(t, 1, c.NextID())
}

func TestCollectionListAllOrderedByID(t *testing.T) {
	c := NewCollection()
	for _, id := range []int{7, 2, 9, 4} {
		require.NoError(t, c.Register(newTestBook(t, id, "Title", string(rune('A'+id)))))
	}
	assert.Equal(t, []int{2, 4, 7, 9}, ids(c.ListAll()))
}

func TestCollectionSearch(t *testing.T) {
	c := NewCollection()
	require.NoError(t, c.Register(newTestBook(t, 1, "The Hobbit", "J.R.R. Tolkien")))
	require.NoError(t, c.Register(newTestBook(t, 2, "Straße der Ölsardinen", "John Steinbeck")))
	require.NoError(t, c.Register(newTestBook(t, 3, "East of Eden", "John Steinbeck")))

	assert.Equal(t, []int{2, 3}, ids(c.SearchByAuthor("steinBECK")))
	assert.Equal(t, []int{1}, ids(c.SearchByTitle("hobbit")))
	assert.Equal(t, []int{2}, ids(c.SearchByTitle("ölSARDINEN")))

	none := c.SearchByTitle("nothing here")
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestCollectionSearchByStatus(t *testing.T) {
	pinClock(t, date(2024, 4, 1))
	c := NewCollection()
	for i := 1; i <= 3; i++ {
		require.NoError(t, c.Register(newTestBook(t, i, "Title", string(rune('A'+i)))))
	}
	p, _ := c.Get(2)
	require.NoError(t, p.StartReading())

	assert.Equal(t, []int{1, 3}, ids(c.SearchByStatus(StatusUnread)))
	assert.Equal(t, []int{2}, ids(c.SearchByStatus(StatusReading)))
	assert.Empty(t, c.SearchByStatus(StatusRead))
}

func TestFilterByReadingPeriod(t *testing.T) {
	c := NewCollection()
	finish := func(id int, end string) {
		p := newTestBook(t, id, "Title", string(rune('A'+id)))
		require.NoError(t, p.StartReadingOn(date(2023, 1, 1)))
		if end != "" {
			d, err := ParseDate(end)
			require.NoError(t, err)
			require.NoError(t, p.FinishReadingOn(d))
		}
		require.NoError(t, c.Register(p))
	}
	finish(1, "2024-01-01")
	finish(2, "2024-06-15")
	finish(3, "2024-12-31")
	finish(4, "2025-01-01")
	finish(5, "")
	require.NoError(t, c.Register(newTestBook(t, 6, "Unread", "Z")))

	got := c.FilterByReadingPeriod(date(2024, 1, 1), date(2024, 12, 31))
	assert.Equal(t, []int{1, 2, 3}, ids(got))

	assert.Empty(t, c.FilterByReadingPeriod(date(2022, 1, 1), date(2022, 12, 31)))
}

func TestStartPublicationReading(t *testing.T) {
	pinClock(t, date(2024, 2, 2))
	cfg, err := NewConfiguration(12, 2, "Fiction")
	require.NoError(t, err)

	c := NewCollection()
	for i := 1; i <= 3; i++ {
		require.NoError(t, c.Register(newTestBook(t, i, "Title", string(rune('A'+i)))))
	}

	t.Run("unknown id", func(t *testing.T) {
		err := c.StartPublicationReading(99, cfg)
		assert.ErrorIs(t, err, ErrNotFound)
		assert.Equal(t, "publication with ID 99 not found", err.Error())
	})

	require.NoError(t, c.StartPublicationReading(1, cfg))
	require.NoError(t, c.StartPublicationReading(2, cfg))

	t.Run("limit reached leaves the item untouched", func(t *testing.T) {
		err := c.StartPublicationReading(3, cfg)
		assert.ErrorIs(t, err, ErrLimitExceeded)
		assert.Equal(t, "maximum number of simultaneous readings reached", err.Error())
		p, _ := c.Get(3)
		assert.Equal(t, StatusUnread, p.Status())
	})

	t.Run("finishing frees a slot", func(t *testing.T) {
		require.NoError(t, c.FinishPublicationReading(1))
		require.NoError(t, c.StartPublicationReading(3, cfg))
		assert.Equal(t, 2, c.CountByStatus(StatusReading))
	})

	t.Run("already reading is a state error", func(t *testing.T) {
		require.NoError(t, c.FinishPublicationReading(2))
		err := c.StartPublicationReading(3, cfg)
		assert.ErrorIs(t, err, ErrState)
	})
}

func TestCollectionMediators(t *testing.T) {
	pinClock(t, date(2024, 2, 2))
	c := NewCollection()
	require.NoError(t, c.Register(newTestBook(t, 1, "Title", "Author")))

	assert.ErrorIs(t, c.FinishPublicationReading(2), ErrNotFound)
	assert.ErrorIs(t, c.RatePublication(2, 5), ErrNotFound)
	assert.ErrorIs(t, c.RatePublication(1, 5), ErrState)

	require.NoError(t, c.StartPublicationReading(1, DefaultConfiguration()))
	require.NoError(t, c.FinishPublicationReading(1))
	require.NoError(t, c.RatePublication(1, 8))

	p, _ := c.Get(1)
	v, ok := p.Rating()
	require.True(t, ok)
	assert.Equal(t, 8.0, v)
}
