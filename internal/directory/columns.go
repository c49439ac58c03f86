package directory

import (
	"context"
	"time"

	"github.com/randalmurphal/boardctx/internal/board"
	"github.com/randalmurphal/boardctx/internal/client"
	boarderrors "github.com/randalmurphal/boardctx/internal/errors"
	"github.com/randalmurphal/boardctx/internal/fetch"
)

// columnSet pairs a fetched column collection with the slug index
// derived from it. Both are built in one load, so a lookup can never
// observe an index from a different collection.
type columnSet struct {
	columns []board.Column
	bySlug  map[string]board.Column
}

// ColumnDirectory loads and indexes a project's kanban columns.
type ColumnDirectory struct {
	svc       client.Service
	projectID string
	cache     *fetch.Cache[columnSet]
	errs      lastErr
}

// NewColumnDirectory creates a column directory scoped to projectID.
func NewColumnDirectory(svc client.Service, projectID string, ttl time.Duration) *ColumnDirectory {
	return &ColumnDirectory{
		svc:       svc,
		projectID: projectID,
		cache:     fetch.New[columnSet](ttl),
	}
}

func (d *ColumnDirectory) key() string {
	return fetch.Key(d.projectID)
}

func (d *ColumnDirectory) load(ctx context.Context) (columnSet, error) {
	return d.cache.Get(ctx, d.key(), func(ctx context.Context) (columnSet, error) {
		columns, err := d.svc.ListColumns(ctx, d.projectID)
		if err != nil {
			return columnSet{}, boarderrors.ErrFetchFailed("columns", err)
		}
		return columnSet{columns: columns, bySlug: IndexBySlug(columns)}, nil
	})
}

// Columns returns the project's columns. With no project id the fetch
// is disabled and the result is empty.
func (d *ColumnDirectory) Columns(ctx context.Context) ([]board.Column, error) {
	set, err := d.load(ctx)
	return set.columns, err
}

// ColumnBySlug resolves a column by slug via the derived index.
func (d *ColumnDirectory) ColumnBySlug(ctx context.Context, slug string) (board.Column, bool, error) {
	set, err := d.load(ctx)
	if err != nil {
		return board.Column{}, false, err
	}
	col, ok := set.bySlug[slug]
	return col, ok, nil
}

// Loading reports whether the first fetch is still in flight.
func (d *ColumnDirectory) Loading() bool {
	return d.cache.Loading(d.key())
}

// Invalidate drops the cached collection; the next read refetches.
func (d *ColumnDirectory) Invalidate() {
	d.cache.Invalidate(d.key())
}

// FindBySlug returns the first column whose slug matches. A nil or
// empty collection resolves to not-found, never an error.
func FindBySlug(columns []board.Column, slug string) (board.Column, bool) {
	for _, c := range columns {
		if c.Slug == slug {
			return c, true
		}
	}
	return board.Column{}, false
}

// IndexBySlug builds the slug → column mapping. Slugs are unique per
// project by server invariant; if that is ever violated the index is
// last-write-wins while FindBySlug keeps collection order, and neither
// fails.
func IndexBySlug(columns []board.Column) map[string]board.Column {
	index := make(map[string]board.Column, len(columns))
	for _, c := range columns {
		index[c.Slug] = c
	}
	return index
}

// ColumnsView is the read surface handed to rendering consumers. Fetch
// failures surface through Err and empty results, never as a panic or
// propagated error.
type ColumnsView interface {
	Columns(ctx context.Context) []board.Column
	ColumnBySlug(ctx context.Context, slug string) (board.Column, bool)
	Loading() bool
	Err() error
}

// View returns the error-absorbing read surface for this directory.
func (d *ColumnDirectory) View() ColumnsView {
	return columnsView{d}
}

type columnsView struct {
	d *ColumnDirectory
}

func (v columnsView) Columns(ctx context.Context) []board.Column {
	columns, err := v.d.Columns(ctx)
	v.d.errs.note(err)
	if err != nil {
		return nil
	}
	return columns
}

func (v columnsView) ColumnBySlug(ctx context.Context, slug string) (board.Column, bool) {
	col, ok, err := v.d.ColumnBySlug(ctx, slug)
	v.d.errs.note(err)
	if err != nil {
		return board.Column{}, false
	}
	return col, ok
}

func (v columnsView) Loading() bool { return v.d.Loading() }
func (v columnsView) Err() error    { return v.d.errs.get() }

// emptyColumns is the safe-consumer default: empty data, not loading,
// every lookup not-found.
type emptyColumns struct{}

func (emptyColumns) Columns(context.Context) []board.Column { return nil }
func (emptyColumns) ColumnBySlug(context.Context, string) (board.Column, bool) {
	return board.Column{}, false
}
func (emptyColumns) Loading() bool { return false }
func (emptyColumns) Err() error    { return nil }
