package tasks

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"

	"github.com/vrajpatel/book-keeper/internal/remote"
)

// PushShelfTask mirrors a single shelf name to the remote catalog.
type PushShelfTask struct {
	Name   string `json:"name"`
	UserID int    `json:"user_id"`
}

// Config returns the queue configuration for shelf push tasks.
func (t PushShelfTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "push_shelf",
		MaxAttempts: 3,
		Backoff:     30 * time.Second,
		Timeout:     1 * time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// PushShelfProcessor creates a processor function for PushShelfTask.
func PushShelfProcessor(client *remote.Client) backlite.QueueProcessor[PushShelfTask] {
	return func(ctx context.Context, task PushShelfTask) error {
		if client == nil {
			return fmt.Errorf("remote client not configured")
		}

		if err := client.PushShelf(ctx, task.UserID, task.Name); err != nil {
			return fmt.Errorf("push shelf %q: %w", task.Name, err)
		}

		log.Printf("[TASK] Pushed shelf %q for user %d", task.Name, task.UserID)
		return nil
	}
}

// NewPushShelfQueue creates a backlite queue for shelf push tasks.
func NewPushShelfQueue(client *remote.Client) backlite.Queue {
	return backlite.NewQueue(PushShelfProcessor(client))
}
