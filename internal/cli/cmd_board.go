package cli

import (
	"fmt"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/randalmurphal/boardctx/internal/client"
	"github.com/randalmurphal/boardctx/internal/tui"
)

// newBoardCmd creates the board command
func newBoardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "board",
		Short: "Open the interactive board view",
		Long: `Open the project board in the terminal: columns side by side, tasks
decorated with label badges and group names. Change events pushed by the
board service refresh the view's caches live.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.close()
			if err := a.requireProject(); err != nil {
				return err
			}

			// Live invalidation is best-effort; the board still works
			// on the staleness window alone.
			listener, err := client.NewListener(a.cfg.Service.URL, a.cfg.Service.Token, a.cfg.Project.ID, slog.Default())
			if err != nil {
				slog.Debug("change listener unavailable", "error", err)
			} else {
				defer func() { _ = listener.Close() }()
				go a.dirs.Watch(listener.Events())
			}

			model := tui.New(a.ctx, a.dirs)
			if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
				return fmt.Errorf("run board view: %w", err)
			}
			return nil
		},
	}
}
