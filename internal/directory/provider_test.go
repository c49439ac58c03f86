package directory

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/boardctx/internal/board"
	boarderrors "github.com/randalmurphal/boardctx/internal/errors"
)

func TestStrictConsumersFailWithoutProvider(t *testing.T) {
	ctx := context.Background()

	_, err := GroupsFromContext(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, &boarderrors.BoardError{Code: boarderrors.CodeScopeMissing}))

	_, err = LabelsFromContext(ctx)
	require.Error(t, err)

	_, err = ColumnsFromContext(ctx)
	require.Error(t, err)

	_, err = ArtifactsFromContext(ctx)
	require.Error(t, err)

	assert.Panics(t, func() { MustGroups(ctx) })
	assert.Panics(t, func() { MustLabels(ctx) })
}

func TestSafeConsumersDefaultWithoutProvider(t *testing.T) {
	ctx := context.Background()

	groups := GroupsFromContextSafe(ctx)
	assert.Empty(t, groups.Groups(ctx))
	assert.False(t, groups.Loading())
	_, ok := groups.GroupForTask(ctx, "g1")
	assert.False(t, ok)
	_, ok = groups.GroupByID(ctx, "g1")
	assert.False(t, ok)
	assert.NoError(t, groups.Err())

	labels := LabelsFromContextSafe(ctx)
	assert.Empty(t, labels.Labels(ctx))
	assert.Empty(t, labels.LabelsForTask(ctx, "T-1"))
	assert.False(t, labels.Loading())

	columns := ColumnsFromContextSafe(ctx)
	assert.Empty(t, columns.Columns(ctx))
	_, ok = columns.ColumnBySlug(ctx, "todo")
	assert.False(t, ok)

	artifacts := ArtifactsFromContextSafe(ctx)
	assert.Empty(t, artifacts.Artifacts(ctx, ""))
	_, ok = artifacts.Preview(ctx, "T-1")
	assert.False(t, ok)
}

func TestConsumersReadAttachedDirectories(t *testing.T) {
	svc := newFakeService()
	svc.groups = []board.TaskGroup{{ID: "g1", Name: "Backend"}}
	svc.labels = []board.Label{{ID: "a", Name: "bug", Color: "#ff0000"}}
	svc.assignments = map[string][]board.Label{"T-1": svc.labels}

	dirs := New(svc, "p1")
	ctx := dirs.Attach(context.Background())

	groups, err := GroupsFromContext(ctx)
	require.NoError(t, err)
	g, ok := groups.GroupForTask(ctx, "g1")
	require.True(t, ok)
	assert.Equal(t, "Backend", g.Name)

	labels := LabelsFromContextSafe(ctx)
	got := labels.LabelsForTask(ctx, "T-1")
	require.Len(t, got, 1)
	assert.Equal(t, "bug", got[0].Name)
}

func TestSafeAndStrictShareOneProvider(t *testing.T) {
	svc := newFakeService()
	svc.groups = []board.TaskGroup{{ID: "g1"}}
	dirs := New(svc, "p1")
	ctx := dirs.Attach(context.Background())

	strict, err := GroupsFromContext(ctx)
	require.NoError(t, err)
	safe := GroupsFromContextSafe(ctx)

	// Same underlying directory: one fetch serves both accessors.
	strict.Groups(ctx)
	safe.Groups(ctx)
	assert.Equal(t, 1, svc.count("groups"))
}
