package collection

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vrajpatel/book-keeper/internal/entities"
)

// snapshot mirrors the repository's title-key ordering.
func snapshot() []entities.Book {
	return []entities.Book{
		{ID: 3, Title: "Anathem", TitleKey: "anathem", Author: "Neal Stephenson", ReadStatus: true, ShelfLocation: "SciFi"},
		{ID: 1, Title: "Dune", TitleKey: "dune", Author: "Frank Herbert", ReadStatus: true, ShelfLocation: "SciFi"},
		{ID: 4, Title: "Hatchet", TitleKey: "hatchet", Author: "Gary Paulsen", ReadStatus: false, ShelfLocation: "Default"},
		{ID: 2, Title: "The River", TitleKey: "the river", Author: "Gary Paulsen", ReadStatus: false, ShelfLocation: "Default"},
	}
}

func titles(books []entities.Book) []string {
	out := make([]string, len(books))
	for i, b := range books {
		out[i] = b.Title
	}
	return out
}

func TestSortModeFrom(t *testing.T) {
	assert.Equal(t, SortByTitle, SortModeFrom(0))
	assert.Equal(t, SortByAuthor, SortModeFrom(1))
	assert.Equal(t, SortByShelf, SortModeFrom(2))
	assert.Equal(t, SortByTitle, SortModeFrom(42), "unknown values fall back to title order")
	assert.Equal(t, SortByTitle, SortModeFrom(-1))
}

func TestApply(t *testing.T) {
	t.Run("title mode keeps the snapshot order", func(t *testing.T) {
		visible := Apply(snapshot(), SortByTitle, "", true, true)
		assert.Equal(t, []string{"Anathem", "Dune", "Hatchet", "The River"}, titles(visible))
	})

	t.Run("author sort is stable within equal authors", func(t *testing.T) {
		visible := Apply(snapshot(), SortByAuthor, "", true, true)
		// Paulsen's books keep their title order relative to each other.
		assert.Equal(t, []string{"Dune", "Hatchet", "The River", "Anathem"}, titles(visible))
	})

	t.Run("shelf sort is stable within a shelf", func(t *testing.T) {
		visible := Apply(snapshot(), SortByShelf, "", true, true)
		assert.Equal(t, []string{"Hatchet", "The River", "Anathem", "Dune"}, titles(visible))
	})

	t.Run("query matches titles case-insensitively", func(t *testing.T) {
		visible := Apply(snapshot(), SortByTitle, "RIVER", true, true)
		assert.Equal(t, []string{"The River"}, titles(visible))
	})

	t.Run("query matches authors too", func(t *testing.T) {
		visible := Apply(snapshot(), SortByTitle, "paulsen", true, true)
		assert.Equal(t, []string{"Hatchet", "The River"}, titles(visible))
	})

	t.Run("surrounding whitespace in the query is ignored", func(t *testing.T) {
		visible := Apply(snapshot(), SortByTitle, "  dune  ", true, true)
		assert.Equal(t, []string{"Dune"}, titles(visible))
	})

	t.Run("read-only filter", func(t *testing.T) {
		visible := Apply(snapshot(), SortByTitle, "", true, false)
		assert.Equal(t, []string{"Anathem", "Dune"}, titles(visible))
	})

	t.Run("unread-only filter", func(t *testing.T) {
		visible := Apply(snapshot(), SortByTitle, "", false, true)
		assert.Equal(t, []string{"Hatchet", "The River"}, titles(visible))
	})

	t.Run("both filters off yields an empty set", func(t *testing.T) {
		visible := Apply(snapshot(), SortByTitle, "", false, false)
		assert.Empty(t, visible)
	})

	t.Run("query and filter compose", func(t *testing.T) {
		visible := Apply(snapshot(), SortByTitle, "paulsen", true, false)
		assert.Empty(t, visible, "Paulsen's books are all unread")
	})

	t.Run("input slice is not mutated", func(t *testing.T) {
		books := snapshot()
		Apply(books, SortByShelf, "", true, true)
		assert.Equal(t, titles(snapshot()), titles(books))
	})
}
