package directory

import (
	"context"
	"time"

	"github.com/randalmurphal/boardctx/internal/board"
	"github.com/randalmurphal/boardctx/internal/client"
	boarderrors "github.com/randalmurphal/boardctx/internal/errors"
	"github.com/randalmurphal/boardctx/internal/fetch"
)

// groupSet pairs the fetched group collection with its id index,
// derived in the same load.
type groupSet struct {
	groups []board.TaskGroup
	byID   map[string]board.TaskGroup
}

// GroupDirectory loads and indexes a project's task groups.
type GroupDirectory struct {
	svc       client.Service
	projectID string
	cache     *fetch.Cache[groupSet]
	errs      lastErr
}

// NewGroupDirectory creates a group directory scoped to projectID.
func NewGroupDirectory(svc client.Service, projectID string, ttl time.Duration) *GroupDirectory {
	return &GroupDirectory{
		svc:       svc,
		projectID: projectID,
		cache:     fetch.New[groupSet](ttl),
	}
}

func (d *GroupDirectory) key() string {
	return fetch.Key(d.projectID)
}

func (d *GroupDirectory) load(ctx context.Context) (groupSet, error) {
	return d.cache.Get(ctx, d.key(), func(ctx context.Context) (groupSet, error) {
		groups, err := d.svc.ListTaskGroups(ctx, d.projectID)
		if err != nil {
			return groupSet{}, boarderrors.ErrFetchFailed("task groups", err)
		}
		byID := make(map[string]board.TaskGroup, len(groups))
		for _, g := range groups {
			byID[g.ID] = g
		}
		return groupSet{groups: groups, byID: byID}, nil
	})
}

// Groups returns the project's task groups.
func (d *GroupDirectory) Groups(ctx context.Context) ([]board.TaskGroup, error) {
	set, err := d.load(ctx)
	return set.groups, err
}

// GroupForTask resolves a task's group by its task_group_id foreign
// key. An empty id resolves to not-found immediately, without touching
// the index or triggering a fetch.
func (d *GroupDirectory) GroupForTask(ctx context.Context, taskGroupID string) (board.TaskGroup, bool, error) {
	if taskGroupID == "" {
		return board.TaskGroup{}, false, nil
	}
	return d.GroupByID(ctx, taskGroupID)
}

// GroupByID resolves a group by id via the derived index.
func (d *GroupDirectory) GroupByID(ctx context.Context, groupID string) (board.TaskGroup, bool, error) {
	set, err := d.load(ctx)
	if err != nil {
		return board.TaskGroup{}, false, err
	}
	g, ok := set.byID[groupID]
	return g, ok, nil
}

// Loading reports whether the first fetch is still in flight.
func (d *GroupDirectory) Loading() bool {
	return d.cache.Loading(d.key())
}

// Invalidate drops the cached collection; the next read refetches.
func (d *GroupDirectory) Invalidate() {
	d.cache.Invalidate(d.key())
}

// GroupsView is the read surface handed to rendering consumers.
type GroupsView interface {
	Groups(ctx context.Context) []board.TaskGroup
	GroupForTask(ctx context.Context, taskGroupID string) (board.TaskGroup, bool)
	GroupByID(ctx context.Context, groupID string) (board.TaskGroup, bool)
	Loading() bool
	Err() error
}

// View returns the error-absorbing read surface for this directory.
func (d *GroupDirectory) View() GroupsView {
	return groupsView{d}
}

type groupsView struct {
	d *GroupDirectory
}

func (v groupsView) Groups(ctx context.Context) []board.TaskGroup {
	groups, err := v.d.Groups(ctx)
	v.d.errs.note(err)
	if err != nil {
		return nil
	}
	return groups
}

func (v groupsView) GroupForTask(ctx context.Context, taskGroupID string) (board.TaskGroup, bool) {
	g, ok, err := v.d.GroupForTask(ctx, taskGroupID)
	v.d.errs.note(err)
	if err != nil {
		return board.TaskGroup{}, false
	}
	return g, ok
}

func (v groupsView) GroupByID(ctx context.Context, groupID string) (board.TaskGroup, bool) {
	g, ok, err := v.d.GroupByID(ctx, groupID)
	v.d.errs.note(err)
	if err != nil {
		return board.TaskGroup{}, false
	}
	return g, ok
}

func (v groupsView) Loading() bool { return v.d.Loading() }
func (v groupsView) Err() error    { return v.d.errs.get() }

// emptyGroups is the safe-consumer default.
type emptyGroups struct{}

func (emptyGroups) Groups(context.Context) []board.TaskGroup { return nil }
func (emptyGroups) GroupForTask(context.Context, string) (board.TaskGroup, bool) {
	return board.TaskGroup{}, false
}
func (emptyGroups) GroupByID(context.Context, string) (board.TaskGroup, bool) {
	return board.TaskGroup{}, false
}
func (emptyGroups) Loading() bool { return false }
func (emptyGroups) Err() error    { return nil }
