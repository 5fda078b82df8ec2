package tasks

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"

	"github.com/vrajpatel/book-keeper/internal/database/books"
	"github.com/vrajpatel/book-keeper/internal/remote"
)

// PushBookTask mirrors a single local book to the remote catalog.
type PushBookTask struct {
	BookID uint `json:"book_id"`
	UserID int  `json:"user_id"`
}

// Config returns the queue configuration for book push tasks.
func (t PushBookTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "push_book",
		MaxAttempts: 3,
		Backoff:     30 * time.Second,
		Timeout:     2 * time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// PushBookProcessor creates a processor function for PushBookTask. The book is
// re-read at push time so the most recent local edit wins.
func PushBookProcessor(repo *books.Repository, client *remote.Client) backlite.QueueProcessor[PushBookTask] {
	return func(ctx context.Context, task PushBookTask) error {
		if client == nil {
			return fmt.Errorf("remote client not configured")
		}

		book, err := repo.GetByID(task.BookID)
		if errors.Is(err, books.ErrBookNotFound) {
			// Deleted locally before the push ran; nothing to mirror.
			log.Printf("[TASK] Book %d deleted before push, skipping", task.BookID)
			return nil
		}
		if err != nil {
			return fmt.Errorf("load book %d: %w", task.BookID, err)
		}

		if err := client.PushBook(ctx, task.UserID, *book); err != nil {
			return fmt.Errorf("push book %d: %w", task.BookID, err)
		}

		log.Printf("[TASK] Pushed book %d (%s) for user %d", task.BookID, book.Title, task.UserID)
		return nil
	}
}

// NewPushBookQueue creates a backlite queue for book push tasks.
func NewPushBookQueue(repo *books.Repository, client *remote.Client) backlite.Queue {
	return backlite.NewQueue(PushBookProcessor(repo, client))
}
