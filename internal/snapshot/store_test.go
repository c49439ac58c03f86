package snapshot

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/randalmurphal/boardctx/internal/board"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "snapshots.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSaveAndLoad(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	labels := []board.Label{
		{ID: "a", Name: "bug", Color: "#ff0000"},
		{ID: "b", Name: "ui"},
	}
	if err := s.Save(ctx, "p1", KindLabels, labels); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	var got []board.Label
	fetchedAt, ok, err := s.Load(ctx, "p1", KindLabels, &got)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !ok {
		t.Fatal("expected snapshot to exist")
	}
	if fetchedAt.IsZero() {
		t.Error("expected a fetched_at timestamp")
	}
	if len(got) != 2 || got[0].Name != "bug" || got[1].Color != "" {
		t.Errorf("Load = %+v, want original labels", got)
	}
}

func TestLoadMissing(t *testing.T) {
	s := openTestStore(t)
	var got []board.Column
	_, ok, err := s.Load(context.Background(), "p1", KindColumns, &got)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if ok {
		t.Error("expected ok=false for missing snapshot")
	}
}

func TestSaveReplacesWholeRow(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.Save(ctx, "p1", KindColumns, []board.Column{{Slug: "todo"}}); err != nil {
		t.Fatal(err)
	}
	if err := s.Save(ctx, "p1", KindColumns, []board.Column{{Slug: "done"}}); err != nil {
		t.Fatal(err)
	}

	var got []board.Column
	_, ok, err := s.Load(ctx, "p1", KindColumns, &got)
	if err != nil || !ok {
		t.Fatalf("Load = (%v, %v)", ok, err)
	}
	if len(got) != 1 || got[0].Slug != "done" {
		t.Errorf("expected replacement, got %+v", got)
	}
}

func TestPrune(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	_ = s.Save(ctx, "p1", KindLabels, []board.Label{{ID: "a"}})
	_ = s.Save(ctx, "p2", KindLabels, []board.Label{{ID: "b"}})

	if err := s.Prune(ctx, "p1"); err != nil {
		t.Fatalf("Prune failed: %v", err)
	}

	var got []board.Label
	_, ok, _ := s.Load(ctx, "p1", KindLabels, &got)
	if ok {
		t.Error("pruned snapshot still present")
	}
	_, ok, _ = s.Load(ctx, "p2", KindLabels, &got)
	if !ok {
		t.Error("other project's snapshot was pruned")
	}
}
