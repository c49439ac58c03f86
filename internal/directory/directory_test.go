package directory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/boardctx/internal/board"
	"github.com/randalmurphal/boardctx/internal/client"
	boarderrors "github.com/randalmurphal/boardctx/internal/errors"
)

// fakeService is an in-memory board service that counts calls.
type fakeService struct {
	mu          sync.Mutex
	calls       map[string]int
	columns     []board.Column
	labels      []board.Label
	assignments map[string][]board.Label
	groups      []board.TaskGroup
	tasks       []board.Task
	artifacts   []board.ContextArtifact
	preview     board.ContextPreview
	err         error
}

func newFakeService() *fakeService {
	return &fakeService{calls: make(map[string]int)}
}

func (f *fakeService) count(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[op]
}

func (f *fakeService) record(op string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[op]++
	return f.err
}

func (f *fakeService) ListColumns(ctx context.Context, projectID string) ([]board.Column, error) {
	if err := f.record("columns"); err != nil {
		return nil, err
	}
	return f.columns, nil
}

func (f *fakeService) ListLabels(ctx context.Context, projectID string) ([]board.Label, error) {
	if err := f.record("labels"); err != nil {
		return nil, err
	}
	return f.labels, nil
}

func (f *fakeService) ListLabelAssignments(ctx context.Context, projectID string) (map[string][]board.Label, error) {
	if err := f.record("assignments"); err != nil {
		return nil, err
	}
	return f.assignments, nil
}

func (f *fakeService) ListTaskGroups(ctx context.Context, projectID string) ([]board.TaskGroup, error) {
	if err := f.record("groups"); err != nil {
		return nil, err
	}
	return f.groups, nil
}

func (f *fakeService) ListTasks(ctx context.Context, projectID string) ([]board.Task, error) {
	if err := f.record("tasks"); err != nil {
		return nil, err
	}
	return f.tasks, nil
}

func (f *fakeService) ListArtifacts(ctx context.Context, projectID, artifactType string) ([]board.ContextArtifact, error) {
	if err := f.record("artifacts"); err != nil {
		return nil, err
	}
	if artifactType == "" {
		return f.artifacts, nil
	}
	var filtered []board.ContextArtifact
	for _, a := range f.artifacts {
		if a.Type == artifactType {
			filtered = append(filtered, a)
		}
	}
	return filtered, nil
}

func (f *fakeService) PreviewContext(ctx context.Context, projectID, taskID string) (board.ContextPreview, error) {
	if err := f.record("preview"); err != nil {
		return board.ContextPreview{}, err
	}
	p := f.preview
	p.ProjectID = projectID
	p.TaskID = taskID
	return p, nil
}

var _ client.Service = (*fakeService)(nil)

func TestGroupForTaskEmptyIDSkipsFetch(t *testing.T) {
	svc := newFakeService()
	svc.groups = []board.TaskGroup{{ID: "g1", Name: "Backend"}}
	d := NewGroupDirectory(svc, "p1", time.Minute)

	_, ok, err := d.GroupForTask(context.Background(), "")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 0, svc.count("groups"), "empty group id must not consult the index or fetch")
}

func TestGroupForTaskResolvesExactGroup(t *testing.T) {
	svc := newFakeService()
	svc.groups = []board.TaskGroup{
		{ID: "g1", Name: "Backend"},
		{ID: "g2", Name: "Frontend"},
	}
	d := NewGroupDirectory(svc, "p1", time.Minute)

	g, ok, err := d.GroupForTask(context.Background(), "g2")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, svc.groups[1], g)

	_, ok, err = d.GroupByID(context.Background(), "missing")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestGroupsCachedWithinTTL(t *testing.T) {
	svc := newFakeService()
	svc.groups = []board.TaskGroup{{ID: "g1"}}
	d := NewGroupDirectory(svc, "p1", time.Minute)

	for i := 0; i < 4; i++ {
		_, err := d.Groups(context.Background())
		require.NoError(t, err)
	}
	assert.Equal(t, 1, svc.count("groups"))

	d.Invalidate()
	_, err := d.Groups(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, svc.count("groups"))
}

func TestDisabledProjectNeverFetches(t *testing.T) {
	svc := newFakeService()
	dirs := New(svc, "")

	columns, err := dirs.Columns.Columns(context.Background())
	require.NoError(t, err)
	assert.Empty(t, columns)

	labels, err := dirs.Labels.Labels(context.Background())
	require.NoError(t, err)
	assert.Empty(t, labels)

	_, err = dirs.Artifacts.Artifacts(context.Background(), "")
	require.NoError(t, err)

	assert.False(t, dirs.Columns.Loading())
	assert.False(t, dirs.Labels.Loading())

	for _, op := range []string{"columns", "labels", "assignments", "groups", "artifacts", "preview"} {
		assert.Equal(t, 0, svc.count(op), "op %s fetched with no project id", op)
	}
}

func TestLabelsForTask(t *testing.T) {
	svc := newFakeService()
	svc.assignments = map[string][]board.Label{
		"T-1": {{ID: "b", Name: "ui"}, {ID: "a", Name: "bug"}},
	}
	d := NewLabelDirectory(svc, "p1", time.Minute)

	labels, err := d.LabelsForTask(context.Background(), "T-1")
	require.NoError(t, err)
	require.Len(t, labels, 2)
	assert.Equal(t, "ui", labels[0].Name, "assignment order must be preserved")

	// Unassigned task: empty, never not-found, never an error.
	labels, err = d.LabelsForTask(context.Background(), "T-404")
	require.NoError(t, err)
	assert.Empty(t, labels)
}

func TestFetchErrorSurfacesAsStateInView(t *testing.T) {
	svc := newFakeService()
	svc.err = errors.New("service down")
	d := NewGroupDirectory(svc, "p1", time.Minute)
	v := d.View()

	groups := v.Groups(context.Background())
	assert.Empty(t, groups)
	require.Error(t, v.Err())
	assert.True(t, errors.Is(v.Err(), &boarderrors.BoardError{Code: boarderrors.CodeFetchFailed}))

	_, ok := v.GroupByID(context.Background(), "g1")
	assert.False(t, ok)
}

func TestApplyEventInvalidatesMatchingKind(t *testing.T) {
	svc := newFakeService()
	svc.labels = []board.Label{{ID: "a", Name: "bug"}}
	dirs := New(svc, "p1")

	_, err := dirs.Labels.Labels(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, svc.count("labels"))

	// Event for another project: ignored.
	dirs.ApplyEvent(client.ChangeEvent{Kind: client.ChangeLabels, ProjectID: "p2"})
	_, err = dirs.Labels.Labels(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, svc.count("labels"))

	// Event for this project: cache dropped, next read refetches.
	dirs.ApplyEvent(client.ChangeEvent{Kind: client.ChangeLabels, ProjectID: "p1"})
	_, err = dirs.Labels.Labels(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, svc.count("labels"))
}

func TestByColumn(t *testing.T) {
	tasks := []board.Task{
		{ID: "T-1", ColumnSlug: "todo"},
		{ID: "T-2", ColumnSlug: "doing"},
		{ID: "T-3", ColumnSlug: "todo"},
	}
	buckets := ByColumn(tasks)
	require.Len(t, buckets["todo"], 2)
	assert.Equal(t, "T-1", buckets["todo"][0].ID)
	assert.Equal(t, "T-3", buckets["todo"][1].ID)
	require.Len(t, buckets["doing"], 1)
}
