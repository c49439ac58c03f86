package directory

import (
	"context"

	boarderrors "github.com/randalmurphal/boardctx/internal/errors"
)

// Providers are attached to a context.Context once per project scope;
// descendant code reads them back through either a strict or a safe
// accessor over the same context key.
//
// Strict accessors (*FromContext) return a SCOPE_MISSING error when no
// provider is attached: calling one without a provider is a programmer
// error and must fail loudly, not silently default. Safe accessors
// (*FromContextSafe) degrade to a fixed empty view: no data, loading
// false, every lookup not-found, and they never fail.

type ctxKey int

const (
	columnsCtxKey ctxKey = iota
	groupsCtxKey
	labelsCtxKey
	artifactsCtxKey
)

// Attach attaches every directory in the set to ctx.
func (d *Directories) Attach(ctx context.Context) context.Context {
	ctx = WithColumns(ctx, d.Columns)
	ctx = WithGroups(ctx, d.Groups)
	ctx = WithLabels(ctx, d.Labels)
	ctx = WithArtifacts(ctx, d.Artifacts)
	return ctx
}

// WithColumns attaches a column directory provider to ctx.
func WithColumns(ctx context.Context, d *ColumnDirectory) context.Context {
	return context.WithValue(ctx, columnsCtxKey, d)
}

// ColumnsFromContext is the strict column consumer.
func ColumnsFromContext(ctx context.Context) (ColumnsView, error) {
	d, ok := ctx.Value(columnsCtxKey).(*ColumnDirectory)
	if !ok {
		return nil, boarderrors.ErrScopeMissing("column")
	}
	return d.View(), nil
}

// ColumnsFromContextSafe is the safe column consumer.
func ColumnsFromContextSafe(ctx context.Context) ColumnsView {
	d, ok := ctx.Value(columnsCtxKey).(*ColumnDirectory)
	if !ok {
		return emptyColumns{}
	}
	return d.View()
}

// WithGroups attaches a group directory provider to ctx.
func WithGroups(ctx context.Context, d *GroupDirectory) context.Context {
	return context.WithValue(ctx, groupsCtxKey, d)
}

// GroupsFromContext is the strict group consumer.
func GroupsFromContext(ctx context.Context) (GroupsView, error) {
	d, ok := ctx.Value(groupsCtxKey).(*GroupDirectory)
	if !ok {
		return nil, boarderrors.ErrScopeMissing("task group")
	}
	return d.View(), nil
}

// GroupsFromContextSafe is the safe group consumer.
func GroupsFromContextSafe(ctx context.Context) GroupsView {
	d, ok := ctx.Value(groupsCtxKey).(*GroupDirectory)
	if !ok {
		return emptyGroups{}
	}
	return d.View()
}

// WithLabels attaches a label directory provider to ctx.
func WithLabels(ctx context.Context, d *LabelDirectory) context.Context {
	return context.WithValue(ctx, labelsCtxKey, d)
}

// LabelsFromContext is the strict label consumer.
func LabelsFromContext(ctx context.Context) (LabelsView, error) {
	d, ok := ctx.Value(labelsCtxKey).(*LabelDirectory)
	if !ok {
		return nil, boarderrors.ErrScopeMissing("task label")
	}
	return d.View(), nil
}

// LabelsFromContextSafe is the safe label consumer.
func LabelsFromContextSafe(ctx context.Context) LabelsView {
	d, ok := ctx.Value(labelsCtxKey).(*LabelDirectory)
	if !ok {
		return emptyLabels{}
	}
	return d.View()
}

// WithArtifacts attaches an artifact directory provider to ctx.
func WithArtifacts(ctx context.Context, d *ArtifactDirectory) context.Context {
	return context.WithValue(ctx, artifactsCtxKey, d)
}

// ArtifactsFromContext is the strict artifact consumer.
func ArtifactsFromContext(ctx context.Context) (ArtifactsView, error) {
	d, ok := ctx.Value(artifactsCtxKey).(*ArtifactDirectory)
	if !ok {
		return nil, boarderrors.ErrScopeMissing("context artifact")
	}
	return d.View(), nil
}

// ArtifactsFromContextSafe is the safe artifact consumer.
func ArtifactsFromContextSafe(ctx context.Context) ArtifactsView {
	d, ok := ctx.Value(artifactsCtxKey).(*ArtifactDirectory)
	if !ok {
		return emptyArtifacts{}
	}
	return d.View()
}

// MustGroups is GroupsFromContext for wiring code that treats a missing
// provider as fatal.
func MustGroups(ctx context.Context) GroupsView {
	v, err := GroupsFromContext(ctx)
	if err != nil {
		panic(err)
	}
	return v
}

// MustLabels is LabelsFromContext for wiring code that treats a missing
// provider as fatal.
func MustLabels(ctx context.Context) LabelsView {
	v, err := LabelsFromContext(ctx)
	if err != nil {
		panic(err)
	}
	return v
}
