// Package books provides database operations for the book catalog.
//
// The repository owns the duplicate policy: a (title key, author) pair is
// unique across the catalog and duplicate inserts are rejected, never merged.
//
// # Usage
//
//	repo := books.NewRepository(db)
//	book, err := repo.Add("Dune", "Frank Herbert", "Default", false)
package books

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/vrajpatel/book-keeper/internal/entities"
	"github.com/vrajpatel/book-keeper/internal/stats"
)

// ErrDuplicateBook is returned by Add when a book with the same folded title
// and author already exists.
var ErrDuplicateBook = errors.New("book with this title and author already exists")

// ErrBookNotFound is returned by Update when the book id no longer exists.
var ErrBookNotFound = errors.New("book not found")

// Repository handles all book catalog database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new books repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Exists reports whether any book matches both the folded title key and the
// author exactly.
func (r *Repository) Exists(titleKey, author string) (bool, error) {
	var count int64
	err := r.db.Model(&entities.Book{}).
		Where("title_key = ? AND author = ?", titleKey, author).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check for existing book: %w", err)
	}
	return count > 0, nil
}

// Add inserts a new book and returns it with its assigned id. Duplicates are
// rejected with ErrDuplicateBook before anything is written. An empty shelf
// falls back to the default shelf. Title emptiness is the caller's
// responsibility; the repository stores whatever title it is handed.
func (r *Repository) Add(title, author, shelfLocation string, readStatus bool) (*entities.Book, error) {
	titleKey := entities.TitleKey(title)

	exists, err := r.Exists(titleKey, author)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateBook
	}

	if shelfLocation == "" {
		shelfLocation = entities.DefaultShelf
	}

	book := &entities.Book{
		Title:         title,
		TitleKey:      titleKey,
		Author:        author,
		ReadStatus:    readStatus,
		ShelfLocation: shelfLocation,
	}
	if err := r.db.Create(book).Error; err != nil {
		return nil, fmt.Errorf("failed to insert book: %w", err)
	}
	return book, nil
}

// Update replaces all mutable fields of the record identified by book.ID and
// recomputes the title key from the new title. Uniqueness is intentionally not
// re-checked here: an edit may legally produce a duplicate pair. That quirk is
// preserved pending a product decision, not an oversight.
func (r *Repository) Update(book *entities.Book) error {
	var existing entities.Book
	err := r.db.First(&existing, book.ID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrBookNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to load book %d: %w", book.ID, err)
	}

	book.TitleKey = entities.TitleKey(book.Title)
	err = r.db.Model(&entities.Book{}).
		Where("id = ?", book.ID).
		Select("title", "title_key", "author", "read_status", "shelf_location").
		Updates(book).Error
	if err != nil {
		return fmt.Errorf("failed to update book %d: %w", book.ID, err)
	}
	return nil
}

// Delete removes the book with the given id and reports whether a row was
// actually removed. Deleting an unknown id is not an error.
func (r *Repository) Delete(id uint) (bool, error) {
	result := r.db.Delete(&entities.Book{}, id)
	if result.Error != nil {
		return false, fmt.Errorf("failed to delete book %d: %w", id, result.Error)
	}
	return result.RowsAffected > 0, nil
}

// GetByID retrieves a single book.
func (r *Repository) GetByID(id uint) (*entities.Book, error) {
	var book entities.Book
	err := r.db.First(&book, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrBookNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load book %d: %w", id, err)
	}
	return &book, nil
}

// ListAll returns every book ordered by title key ascending. This is the
// canonical baseline order the view layer starts from.
func (r *Repository) ListAll() ([]entities.Book, error) {
	var books []entities.Book
	err := r.db.Order("title_key ASC, id ASC").Find(&books).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}
	return books, nil
}

// Stats returns total/read/unread counts in a single pass over the table.
func (r *Repository) Stats() (stats.Summary, error) {
	var summary stats.Summary
	rows, err := r.db.Model(&entities.Book{}).Select("read_status").Rows()
	if err != nil {
		return summary, fmt.Errorf("failed to read book stats: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var read bool
		if err := rows.Scan(&read); err != nil {
			return summary, fmt.Errorf("failed to scan book row: %w", err)
		}
		summary.Total++
		if read {
			summary.Read++
		} else {
			summary.Unread++
		}
	}
	if err := rows.Err(); err != nil {
		return summary, fmt.Errorf("failed to read book stats: %w", err)
	}
	return summary, nil
}
