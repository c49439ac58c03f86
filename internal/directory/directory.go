// Package directory owns the project-scoped cached directories of the
// board taxonomy: columns, task groups, task labels, and context
// artifacts.
//
// Each directory fetches its collection through the board service,
// caches it for a staleness window, and derives lookup indices that are
// rebuilt wholesale whenever the collection is refetched. Consumers get
// read-only views; only the owning directory replaces data, and only by
// whole-collection swap. The four directories are independent: there is
// no ordering guarantee across them.
package directory

import (
	"log/slog"
	"sync"
	"time"

	"github.com/randalmurphal/boardctx/internal/client"
	"github.com/randalmurphal/boardctx/internal/fetch"
)

// Option configures a Directories set.
type Option func(*options)

type options struct {
	ttl     time.Duration
	include []string
	exclude []string
	logger  *slog.Logger
}

// WithTTL overrides the staleness window (default 30s).
func WithTTL(ttl time.Duration) Option {
	return func(o *options) { o.ttl = ttl }
}

// WithArtifactFilter restricts context artifacts by path glob. Include
// patterns admit (empty means all); exclude patterns then reject.
func WithArtifactFilter(include, exclude []string) Option {
	return func(o *options) {
		o.include = include
		o.exclude = exclude
	}
}

// WithLogger sets the logger for background invalidation handling.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// Directories bundles the per-project directory set. Zero or more of
// them can be attached to a context for downstream consumers.
type Directories struct {
	Columns   *ColumnDirectory
	Groups    *GroupDirectory
	Labels    *LabelDirectory
	Artifacts *ArtifactDirectory
	Tasks     *TaskDirectory

	projectID string
	logger    *slog.Logger
}

// New creates the directory set for a project. An empty projectID is
// allowed: every fetch stays disabled and every lookup resolves empty
// until a real project id is used to build a new set.
func New(svc client.Service, projectID string, opts ...Option) *Directories {
	o := options{ttl: fetch.DefaultTTL, logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}

	return &Directories{
		Columns:   NewColumnDirectory(svc, projectID, o.ttl),
		Groups:    NewGroupDirectory(svc, projectID, o.ttl),
		Labels:    NewLabelDirectory(svc, projectID, o.ttl),
		Artifacts: NewArtifactDirectory(svc, projectID, o.ttl, o.include, o.exclude),
		Tasks:     NewTaskDirectory(svc, projectID, o.ttl),
		projectID: projectID,
		logger:    o.logger,
	}
}

// ProjectID returns the project scope this set was built for.
func (d *Directories) ProjectID() string {
	return d.projectID
}

// ApplyEvent invalidates the cache matching a change event. Events for
// other projects are ignored; an unknown kind invalidates nothing.
func (d *Directories) ApplyEvent(ev client.ChangeEvent) {
	if ev.ProjectID != d.projectID || d.projectID == "" {
		return
	}
	switch ev.Kind {
	case client.ChangeColumns:
		d.Columns.Invalidate()
	case client.ChangeGroups:
		d.Groups.Invalidate()
	case client.ChangeLabels:
		d.Labels.Invalidate()
	case client.ChangeArtifacts:
		d.Artifacts.Invalidate()
	case client.ChangeTasks:
		d.Tasks.Invalidate()
	default:
		d.logger.Debug("ignoring unknown change kind", "kind", ev.Kind)
	}
}

// Watch applies change events from ch until it closes. Run it on its
// own goroutine.
func (d *Directories) Watch(ch <-chan client.ChangeEvent) {
	for ev := range ch {
		d.ApplyEvent(ev)
	}
}

// InvalidateAll drops every cached collection.
func (d *Directories) InvalidateAll() {
	d.Columns.Invalidate()
	d.Groups.Invalidate()
	d.Labels.Invalidate()
	d.Artifacts.InvalidateAll()
	d.Tasks.Invalidate()
}

// lastErr records the most recent fetch failure for view consumers,
// which surface errors as state rather than propagating them.
type lastErr struct {
	mu  sync.Mutex
	err error
}

func (l *lastErr) note(err error) {
	l.mu.Lock()
	l.err = err
	l.mu.Unlock()
}

func (l *lastErr) get() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.err
}
