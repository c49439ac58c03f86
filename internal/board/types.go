// Package board defines the entities of the task board taxonomy:
// labels, task groups, kanban columns, and context artifacts.
//
// All values are immutable snapshots of server state. Mutation happens
// server-side and is reflected by refetch, never by editing a snapshot
// in place.
package board

import "time"

// Label is a colored tag attached to tasks.
type Label struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
	// Color is a 6-digit hex color, with or without a leading '#'.
	// Empty when the label has no assigned color.
	Color string `json:"color,omitempty" yaml:"color,omitempty"`
}

// TaskGroup is a named grouping of tasks within a project.
type TaskGroup struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Color       string `json:"color,omitempty" yaml:"color,omitempty"`
}

// Column is a kanban board column. Slug is the stable identifier a
// task's status maps to; columns may be renamed without changing slug.
type Column struct {
	Slug     string `json:"slug" yaml:"slug"`
	Name     string `json:"name" yaml:"name"`
	Position int    `json:"position" yaml:"position"`
	WIPLimit int    `json:"wip_limit,omitempty" yaml:"wip_limit,omitempty"`
}

// Task is the minimal task shape this layer needs: enough to place a
// task on the board and resolve its group and labels.
type Task struct {
	ID          string `json:"id" yaml:"id"`
	Title       string `json:"title" yaml:"title"`
	ColumnSlug  string `json:"column_slug" yaml:"column_slug"`
	TaskGroupID string `json:"task_group_id,omitempty" yaml:"task_group_id,omitempty"`
}

// ContextArtifact is a unit of contextual knowledge scoped to a project
// and optionally to an artifact type.
type ContextArtifact struct {
	ID        string    `json:"id" yaml:"id"`
	Type      string    `json:"type" yaml:"type"`
	Title     string    `json:"title" yaml:"title"`
	Path      string    `json:"path,omitempty" yaml:"path,omitempty"`
	Content   string    `json:"content,omitempty" yaml:"content,omitempty"`
	UpdatedAt time.Time `json:"updated_at" yaml:"updated_at"`
}

// ContextPreview is the aggregated context payload for a task (or for a
// whole project when TaskID is empty). The aggregation semantics are
// owned by the board service; this layer only caches and displays it.
type ContextPreview struct {
	ProjectID     string            `json:"project_id" yaml:"project_id"`
	TaskID        string            `json:"task_id,omitempty" yaml:"task_id,omitempty"`
	Summary       string            `json:"summary" yaml:"summary"`
	Artifacts     []ContextArtifact `json:"artifacts,omitempty" yaml:"artifacts,omitempty"`
	TokenEstimate int               `json:"token_estimate,omitempty" yaml:"token_estimate,omitempty"`
}
