package directory

import (
	"context"
	"time"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/randalmurphal/boardctx/internal/board"
	"github.com/randalmurphal/boardctx/internal/client"
	boarderrors "github.com/randalmurphal/boardctx/internal/errors"
	"github.com/randalmurphal/boardctx/internal/fetch"
)

// ArtifactDirectory loads a project's context artifacts and task
// context previews. It is independent of the taxonomy directories: it
// never cross-references labels, groups, or columns.
type ArtifactDirectory struct {
	svc       client.Service
	projectID string
	include   []string
	exclude   []string
	artifacts *fetch.Cache[[]board.ContextArtifact]
	previews  *fetch.Cache[board.ContextPreview]
	errs      lastErr
}

// NewArtifactDirectory creates an artifact directory scoped to
// projectID. include/exclude are doublestar path globs applied to
// fetched artifacts; artifacts without a path are always kept.
func NewArtifactDirectory(svc client.Service, projectID string, ttl time.Duration, include, exclude []string) *ArtifactDirectory {
	return &ArtifactDirectory{
		svc:       svc,
		projectID: projectID,
		include:   include,
		exclude:   exclude,
		artifacts: fetch.New[[]board.ContextArtifact](ttl),
		previews:  fetch.New[board.ContextPreview](ttl),
	}
}

// Artifacts returns the project's context artifacts, optionally
// filtered by artifact type. Each type is its own cache entry.
func (d *ArtifactDirectory) Artifacts(ctx context.Context, artifactType string) ([]board.ContextArtifact, error) {
	key := fetch.Key(d.projectID, artifactType)
	return d.artifacts.Get(ctx, key, func(ctx context.Context) ([]board.ContextArtifact, error) {
		artifacts, err := d.svc.ListArtifacts(ctx, d.projectID, artifactType)
		if err != nil {
			return nil, boarderrors.ErrFetchFailed("context artifacts", err)
		}
		return d.filter(artifacts), nil
	})
}

// Preview returns the aggregated context preview for a task, or for the
// project when taskID is empty. Task and project previews are
// independent cache entries; the empty-task semantics belong to the
// board service.
func (d *ArtifactDirectory) Preview(ctx context.Context, taskID string) (board.ContextPreview, error) {
	key := fetch.Key(d.projectID, taskID)
	return d.previews.Get(ctx, key, func(ctx context.Context) (board.ContextPreview, error) {
		preview, err := d.svc.PreviewContext(ctx, d.projectID, taskID)
		if err != nil {
			return board.ContextPreview{}, boarderrors.ErrFetchFailed("context preview", err)
		}
		return preview, nil
	})
}

// Loading reports whether the unfiltered artifact fetch is in flight.
func (d *ArtifactDirectory) Loading() bool {
	return d.artifacts.Loading(fetch.Key(d.projectID, ""))
}

// Invalidate drops all cached artifact lists and previews.
func (d *ArtifactDirectory) Invalidate() {
	d.artifacts.InvalidateAll()
	d.previews.InvalidateAll()
}

// InvalidateAll is an alias kept for symmetry with multi-key caches.
func (d *ArtifactDirectory) InvalidateAll() {
	d.Invalidate()
}

// filter applies the include/exclude path globs.
func (d *ArtifactDirectory) filter(artifacts []board.ContextArtifact) []board.ContextArtifact {
	if len(d.include) == 0 && len(d.exclude) == 0 {
		return artifacts
	}
	kept := make([]board.ContextArtifact, 0, len(artifacts))
	for _, a := range artifacts {
		if a.Path == "" || d.match(a.Path) {
			kept = append(kept, a)
		}
	}
	return kept
}

func (d *ArtifactDirectory) match(path string) bool {
	if len(d.include) > 0 {
		included := false
		for _, pattern := range d.include {
			if ok, err := doublestar.Match(pattern, path); err == nil && ok {
				included = true
				break
			}
		}
		if !included {
			return false
		}
	}
	for _, pattern := range d.exclude {
		if ok, err := doublestar.Match(pattern, path); err == nil && ok {
			return false
		}
	}
	return true
}

// ArtifactsView is the read surface handed to rendering consumers.
type ArtifactsView interface {
	Artifacts(ctx context.Context, artifactType string) []board.ContextArtifact
	Preview(ctx context.Context, taskID string) (board.ContextPreview, bool)
	Loading() bool
	Err() error
}

// View returns the error-absorbing read surface for this directory.
func (d *ArtifactDirectory) View() ArtifactsView {
	return artifactsView{d}
}

type artifactsView struct {
	d *ArtifactDirectory
}

func (v artifactsView) Artifacts(ctx context.Context, artifactType string) []board.ContextArtifact {
	artifacts, err := v.d.Artifacts(ctx, artifactType)
	v.d.errs.note(err)
	if err != nil {
		return nil
	}
	return artifacts
}

func (v artifactsView) Preview(ctx context.Context, taskID string) (board.ContextPreview, bool) {
	if v.d.projectID == "" {
		return board.ContextPreview{}, false
	}
	preview, err := v.d.Preview(ctx, taskID)
	v.d.errs.note(err)
	if err != nil {
		return board.ContextPreview{}, false
	}
	return preview, true
}

func (v artifactsView) Loading() bool { return v.d.Loading() }
func (v artifactsView) Err() error    { return v.d.errs.get() }

// emptyArtifacts is the safe-consumer default.
type emptyArtifacts struct{}

func (emptyArtifacts) Artifacts(context.Context, string) []board.ContextArtifact { return nil }
func (emptyArtifacts) Preview(context.Context, string) (board.ContextPreview, bool) {
	return board.ContextPreview{}, false
}
func (emptyArtifacts) Loading() bool { return false }
func (emptyArtifacts) Err() error    { return nil }
