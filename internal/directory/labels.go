package directory

import (
	"context"
	"time"

	"github.com/randalmurphal/boardctx/internal/board"
	"github.com/randalmurphal/boardctx/internal/client"
	boarderrors "github.com/randalmurphal/boardctx/internal/errors"
	"github.com/randalmurphal/boardctx/internal/fetch"
)

// LabelDirectory loads a project's label catalog and the per-task
// assignment index. The two collections are fetched and cached
// independently; they may settle in any order.
type LabelDirectory struct {
	svc         client.Service
	projectID   string
	catalog     *fetch.Cache[[]board.Label]
	assignments *fetch.Cache[map[string][]board.Label]
	errs        lastErr
}

// NewLabelDirectory creates a label directory scoped to projectID.
func NewLabelDirectory(svc client.Service, projectID string, ttl time.Duration) *LabelDirectory {
	return &LabelDirectory{
		svc:         svc,
		projectID:   projectID,
		catalog:     fetch.New[[]board.Label](ttl),
		assignments: fetch.New[map[string][]board.Label](ttl),
	}
}

func (d *LabelDirectory) key() string {
	return fetch.Key(d.projectID)
}

// Labels returns the project's label catalog.
func (d *LabelDirectory) Labels(ctx context.Context) ([]board.Label, error) {
	return d.catalog.Get(ctx, d.key(), func(ctx context.Context) ([]board.Label, error) {
		labels, err := d.svc.ListLabels(ctx, d.projectID)
		if err != nil {
			return nil, boarderrors.ErrFetchFailed("labels", err)
		}
		return labels, nil
	})
}

// LabelsForTask returns the labels assigned to a task, in assignment
// order. A task with no assignments resolves to an empty slice, never
// not-found.
func (d *LabelDirectory) LabelsForTask(ctx context.Context, taskID string) ([]board.Label, error) {
	index, err := d.assignments.Get(ctx, d.key(), func(ctx context.Context) (map[string][]board.Label, error) {
		assignments, err := d.svc.ListLabelAssignments(ctx, d.projectID)
		if err != nil {
			return nil, boarderrors.ErrFetchFailed("label assignments", err)
		}
		return assignments, nil
	})
	if err != nil {
		return nil, err
	}
	return index[taskID], nil
}

// Loading reports whether either underlying fetch is still in flight
// with nothing cached to serve.
func (d *LabelDirectory) Loading() bool {
	return d.catalog.Loading(d.key()) || d.assignments.Loading(d.key())
}

// Invalidate drops both cached collections; the next reads refetch.
func (d *LabelDirectory) Invalidate() {
	d.catalog.Invalidate(d.key())
	d.assignments.Invalidate(d.key())
}

// LabelsView is the read surface handed to rendering consumers.
type LabelsView interface {
	Labels(ctx context.Context) []board.Label
	LabelsForTask(ctx context.Context, taskID string) []board.Label
	Loading() bool
	Err() error
}

// View returns the error-absorbing read surface for this directory.
func (d *LabelDirectory) View() LabelsView {
	return labelsView{d}
}

type labelsView struct {
	d *LabelDirectory
}

func (v labelsView) Labels(ctx context.Context) []board.Label {
	labels, err := v.d.Labels(ctx)
	v.d.errs.note(err)
	if err != nil {
		return nil
	}
	return labels
}

func (v labelsView) LabelsForTask(ctx context.Context, taskID string) []board.Label {
	labels, err := v.d.LabelsForTask(ctx, taskID)
	v.d.errs.note(err)
	if err != nil {
		return nil
	}
	return labels
}

func (v labelsView) Loading() bool { return v.d.Loading() }
func (v labelsView) Err() error    { return v.d.errs.get() }

// emptyLabels is the safe-consumer default.
type emptyLabels struct{}

func (emptyLabels) Labels(context.Context) []board.Label                { return nil }
func (emptyLabels) LabelsForTask(context.Context, string) []board.Label { return nil }
func (emptyLabels) Loading() bool                                       { return false }
func (emptyLabels) Err() error                                          { return nil }
