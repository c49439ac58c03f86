// Package client talks to the board service: the external collaborator
// that owns labels, task groups, columns, and context artifacts.
// It fetches collections over REST and mirrors change notifications
// over a websocket.
package client

import (
	"context"

	"github.com/randalmurphal/boardctx/internal/board"
)

// Service is the board service surface the directory layer consumes.
// All calls are project-scoped and may fail; retry and server-side
// caching are the service's concern, not this client's.
type Service interface {
	ListColumns(ctx context.Context, projectID string) ([]board.Column, error)
	ListLabels(ctx context.Context, projectID string) ([]board.Label, error)
	// ListLabelAssignments returns the task id to assigned-labels index
	// for the whole project. Order within a task's slice is the server's
	// assignment order and is preserved end to end.
	ListLabelAssignments(ctx context.Context, projectID string) (map[string][]board.Label, error)
	ListTaskGroups(ctx context.Context, projectID string) ([]board.TaskGroup, error)
	ListTasks(ctx context.Context, projectID string) ([]board.Task, error)
	// ListArtifacts lists context artifacts, optionally filtered by
	// artifact type. Empty artifactType means all types.
	ListArtifacts(ctx context.Context, projectID, artifactType string) ([]board.ContextArtifact, error)
	// PreviewContext returns the aggregated context for a task, or for
	// the whole project when taskID is empty. The aggregation semantics
	// of the project-scope preview are owned by the service.
	PreviewContext(ctx context.Context, projectID, taskID string) (board.ContextPreview, error)
}
