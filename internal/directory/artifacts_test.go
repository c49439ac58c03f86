package directory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/boardctx/internal/board"
)

func TestArtifactsCachedPerType(t *testing.T) {
	svc := newFakeService()
	svc.artifacts = []board.ContextArtifact{
		{ID: "a1", Type: "decision", Title: "Use sqlite"},
		{ID: "a2", Type: "note", Title: "Standup"},
	}
	d := NewArtifactDirectory(svc, "p1", time.Minute, nil, nil)

	all, err := d.Artifacts(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	decisions, err := d.Artifacts(context.Background(), "decision")
	require.NoError(t, err)
	require.Len(t, decisions, 1)
	assert.Equal(t, "a1", decisions[0].ID)

	// Two distinct cache entries, two fetches; repeats hit the cache.
	_, _ = d.Artifacts(context.Background(), "")
	_, _ = d.Artifacts(context.Background(), "decision")
	assert.Equal(t, 2, svc.count("artifacts"))
}

func TestArtifactPathFilter(t *testing.T) {
	svc := newFakeService()
	svc.artifacts = []board.ContextArtifact{
		{ID: "a1", Path: "docs/adr/001.md"},
		{ID: "a2", Path: "docs/notes/scratch.md"},
		{ID: "a3", Path: "src/main.go"},
		{ID: "a4"}, // no path: always kept
	}
	d := NewArtifactDirectory(svc, "p1", time.Minute,
		[]string{"docs/**"}, []string{"docs/notes/**"})

	artifacts, err := d.Artifacts(context.Background(), "")
	require.NoError(t, err)
	ids := make([]string, 0, len(artifacts))
	for _, a := range artifacts {
		ids = append(ids, a.ID)
	}
	assert.Equal(t, []string{"a1", "a4"}, ids)
}

func TestPreviewsCachedPerTask(t *testing.T) {
	svc := newFakeService()
	svc.preview = board.ContextPreview{Summary: "ctx"}
	d := NewArtifactDirectory(svc, "p1", time.Minute, nil, nil)

	p1, err := d.Preview(context.Background(), "T-1")
	require.NoError(t, err)
	assert.Equal(t, "T-1", p1.TaskID)

	// Project-scope preview is its own cache entry.
	p0, err := d.Preview(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "", p0.TaskID)

	_, _ = d.Preview(context.Background(), "T-1")
	_, _ = d.Preview(context.Background(), "")
	assert.Equal(t, 2, svc.count("preview"))

	d.Invalidate()
	_, err = d.Preview(context.Background(), "T-1")
	require.NoError(t, err)
	assert.Equal(t, 3, svc.count("preview"))
}
