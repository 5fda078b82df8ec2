package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vrajpatel/book-keeper/internal/entities"
)

func TestSummarize(t *testing.T) {
	t.Run("empty collection", func(t *testing.T) {
		s := Summarize(nil)
		assert.Equal(t, Summary{}, s)
	})

	t.Run("read and unread sum to total", func(t *testing.T) {
		books := []entities.Book{
			{Title: "A", ReadStatus: true},
			{Title: "B", ReadStatus: false},
			{Title: "C", ReadStatus: true},
			{Title: "D", ReadStatus: false},
			{Title: "E", ReadStatus: false},
		}

		s := Summarize(books)
		assert.Equal(t, 5, s.Total)
		assert.Equal(t, 2, s.Read)
		assert.Equal(t, 3, s.Unread)
		assert.Equal(t, s.Total, s.Read+s.Unread)
	})
}

func TestGroupByShelf(t *testing.T) {
	books := []entities.Book{
		{Title: "A", ShelfLocation: "SciFi"},
		{Title: "B", ShelfLocation: "SciFi"},
		{Title: "C", ShelfLocation: "Default"},
		{Title: "D", ShelfLocation: "Retired"},
	}

	counts := GroupByShelf(books)
	assert.Equal(t, map[string]int{
		"SciFi":   2,
		"Default": 1,
		"Retired": 1,
	}, counts)

	// A shelf name no longer registered still groups under its stored string.
	assert.Equal(t, 1, counts["Retired"])
}
