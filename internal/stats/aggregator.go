// Package stats derives aggregate counts from a book collection snapshot.
// All aggregation is a single pass over the slice; nothing is cached or
// maintained incrementally.
package stats

import "github.com/vrajpatel/book-keeper/internal/entities"

// Summary holds the top-level collection counts. Read + Unread always equals
// Total.
type Summary struct {
	Total  int `json:"total"`
	Read   int `json:"read"`
	Unread int `json:"unread"`
}

// Summarize counts the collection in one pass.
func Summarize(books []entities.Book) Summary {
	var s Summary
	for _, book := range books {
		s.Total++
		if book.ReadStatus {
			s.Read++
		} else {
			s.Unread++
		}
	}
	return s
}

// GroupByShelf counts books per stored shelf name. The grouping uses the
// literal string on each record: a book whose shelf has since been deleted is
// still counted under its stale name.
func GroupByShelf(books []entities.Book) map[string]int {
	counts := make(map[string]int, len(books))
	for _, book := range books {
		counts[book.ShelfLocation]++
	}
	return counts
}
