package directory

import (
	"context"
	"time"

	"github.com/randalmurphal/boardctx/internal/board"
	"github.com/randalmurphal/boardctx/internal/client"
	boarderrors "github.com/randalmurphal/boardctx/internal/errors"
	"github.com/randalmurphal/boardctx/internal/fetch"
)

// TaskDirectory loads the project's tasks for board rendering. Tasks
// carry only their board placement and foreign keys; groups and labels
// are resolved through their own directories.
type TaskDirectory struct {
	svc       client.Service
	projectID string
	cache     *fetch.Cache[[]board.Task]
}

// NewTaskDirectory creates a task directory scoped to projectID.
func NewTaskDirectory(svc client.Service, projectID string, ttl time.Duration) *TaskDirectory {
	return &TaskDirectory{
		svc:       svc,
		projectID: projectID,
		cache:     fetch.New[[]board.Task](ttl),
	}
}

func (d *TaskDirectory) key() string {
	return fetch.Key(d.projectID)
}

// Tasks returns the project's tasks in board order.
func (d *TaskDirectory) Tasks(ctx context.Context) ([]board.Task, error) {
	return d.cache.Get(ctx, d.key(), func(ctx context.Context) ([]board.Task, error) {
		tasks, err := d.svc.ListTasks(ctx, d.projectID)
		if err != nil {
			return nil, boarderrors.ErrFetchFailed("tasks", err)
		}
		return tasks, nil
	})
}

// ByColumn buckets tasks by column slug, preserving board order within
// each column.
func ByColumn(tasks []board.Task) map[string][]board.Task {
	buckets := make(map[string][]board.Task)
	for _, t := range tasks {
		buckets[t.ColumnSlug] = append(buckets[t.ColumnSlug], t)
	}
	return buckets
}

// Loading reports whether the first fetch is still in flight.
func (d *TaskDirectory) Loading() bool {
	return d.cache.Loading(d.key())
}

// Invalidate drops the cached collection; the next read refetches.
func (d *TaskDirectory) Invalidate() {
	d.cache.Invalidate(d.key())
}
