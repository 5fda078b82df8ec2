// Package collection turns the full book snapshot into the visible subset.
// Apply is a pure function of its inputs: every sort, search, or filter change
// recomputes the visible set from the full snapshot, with no incremental state.
package collection

import (
	"sort"
	"strings"

	"github.com/vrajpatel/book-keeper/internal/entities"
)

// SortMode selects the ordering applied to the snapshot. The zero value is
// the repository's own title-key order, which is also what the stored
// sort-order preference defaults to.
type SortMode int

const (
	SortByTitle SortMode = iota
	SortByAuthor
	SortByShelf
)

// SortModeFrom maps a stored preference integer to a SortMode. Unknown values
// fall back to the title ordering rather than failing.
func SortModeFrom(value int) SortMode {
	switch value {
	case int(SortByAuthor):
		return SortByAuthor
	case int(SortByShelf):
		return SortByShelf
	default:
		return SortByTitle
	}
}

func (m SortMode) String() string {
	switch m {
	case SortByAuthor:
		return "author"
	case SortByShelf:
		return "shelf"
	default:
		return "title"
	}
}

// Apply computes the visible subset of books: sort by mode, then keep entries
// matching the search query and the read filters. The input slice is never
// mutated. Sorting is stable, so entries with equal keys keep their prior
// relative order. Both read filters false yields an empty set on purpose.
func Apply(books []entities.Book, mode SortMode, query string, includeRead, includeUnread bool) []entities.Book {
	sorted := make([]entities.Book, len(books))
	copy(sorted, books)

	switch mode {
	case SortByAuthor:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Author < sorted[j].Author
		})
	case SortByShelf:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].ShelfLocation < sorted[j].ShelfLocation
		})
	case SortByTitle:
		// Already the repository order.
	}

	folded := strings.ToLower(strings.TrimSpace(query))

	visible := make([]entities.Book, 0, len(sorted))
	for _, book := range sorted {
		if !matches(book, folded) {
			continue
		}
		if includeRead && book.ReadStatus {
			visible = append(visible, book)
		}
		if includeUnread && !book.ReadStatus {
			visible = append(visible, book)
		}
	}
	return visible
}

// matches reports whether the folded query is a substring of the book's title
// or author. An empty query matches everything.
func matches(book entities.Book, folded string) bool {
	if folded == "" {
		return true
	}
	return strings.Contains(strings.ToLower(book.Title), folded) ||
		strings.Contains(strings.ToLower(book.Author), folded)
}
