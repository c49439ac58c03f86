package cli

import (
	"context"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/viper"

	"github.com/randalmurphal/boardctx/internal/client"
	"github.com/randalmurphal/boardctx/internal/config"
	"github.com/randalmurphal/boardctx/internal/directory"
	boarderrors "github.com/randalmurphal/boardctx/internal/errors"
	"github.com/randalmurphal/boardctx/internal/snapshot"
)

// app wires config, the service client, the directory set, and the
// local snapshot store for one command invocation.
type app struct {
	cfg  *config.Config
	svc  client.Service
	dirs *directory.Directories
	snap *snapshot.Store
	ctx  context.Context
}

// newApp builds the command wiring. The snapshot store is best-effort:
// commands degrade to network-only when it cannot be opened.
func newApp() (*app, error) {
	cfg, err := config.LoadFrom(cfgFile)
	if err != nil {
		return nil, err
	}
	if v := viper.GetString("project.id"); v != "" {
		cfg.Project.ID = v
	}
	if cfg.Service.URL == "" {
		return nil, boarderrors.ErrConfigInvalid("service.url",
			"the board service URL is required; set it in config or BOARDCTX_URL")
	}

	svc, err := client.New(client.Config{
		BaseURL:  cfg.Service.URL,
		APIToken: cfg.Service.Token,
		Timeout:  cfg.Timeout(),
	})
	if err != nil {
		return nil, err
	}

	dirs := directory.New(svc, cfg.Project.ID,
		directory.WithTTL(cfg.TTL()),
		directory.WithArtifactFilter(cfg.Artifacts.Include, cfg.Artifacts.Exclude),
	)

	snap, err := snapshot.Open(cfg.SnapshotPath())
	if err != nil {
		slog.Warn("snapshot store unavailable", "path", cfg.SnapshotPath(), "error", err)
		snap = nil
	}

	a := &app{
		cfg:  cfg,
		svc:  svc,
		dirs: dirs,
		snap: snap,
		ctx:  context.Background(),
	}
	a.ctx = dirs.Attach(a.ctx)
	return a, nil
}

func (a *app) close() {
	if a.snap != nil {
		_ = a.snap.Close()
	}
}

// requireProject fails when no project id is configured.
func (a *app) requireProject() error {
	if a.cfg.Project.ID == "" {
		return boarderrors.ErrProjectUnset()
	}
	return nil
}

// save persists a fetched collection to the snapshot store, best-effort.
func (a *app) save(kind snapshot.Kind, payload any) {
	if a.snap == nil || a.cfg.Project.ID == "" {
		return
	}
	if err := a.snap.Save(a.ctx, a.cfg.Project.ID, kind, payload); err != nil {
		slog.Debug("snapshot save failed", "kind", kind, "error", err)
	}
}

// restore loads the last snapshot for kind into out. Returns false when
// the store is unavailable or holds nothing for this project.
func (a *app) restore(kind snapshot.Kind, out any) bool {
	if a.snap == nil || a.cfg.Project.ID == "" {
		return false
	}
	fetchedAt, ok, err := a.snap.Load(a.ctx, a.cfg.Project.ID, kind, out)
	if err != nil {
		slog.Warn("snapshot load failed", "kind", kind, "error", err)
		return false
	}
	if ok && !quiet {
		slog.Info("board service unreachable, showing cached snapshot", "kind", kind, "fetched_at", fetchedAt)
	}
	return ok
}

// colorOutput reports whether badges should be rendered in color.
func colorOutput(mode string) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default:
		return isatty.IsTerminal(os.Stdout.Fd())
	}
}
