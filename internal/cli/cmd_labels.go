package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/boardctx/internal/badge"
	"github.com/randalmurphal/boardctx/internal/board"
	"github.com/randalmurphal/boardctx/internal/snapshot"
)

// newLabelsCmd creates the labels command
func newLabelsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "labels [task-id]",
		Short: "List project labels or a task's labels",
		Long: `List the project's label catalog, or the labels assigned to one task.

Example:
  boardctx labels
  boardctx labels TASK-1`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.close()
			if err := a.requireProject(); err != nil {
				return err
			}

			if len(args) == 1 {
				return runTaskLabels(a, args[0])
			}
			return runLabelCatalog(a)
		},
	}
}

func runLabelCatalog(a *app) error {
	labels, err := a.dirs.Labels.Labels(a.ctx)
	if err != nil {
		var cached []board.Label
		if !a.restore(snapshot.KindLabels, &cached) {
			return err
		}
		labels = cached
	} else {
		a.save(snapshot.KindLabels, labels)
	}

	if jsonOut {
		return json.NewEncoder(os.Stdout).Encode(labels)
	}
	if len(labels) == 0 {
		fmt.Println("No labels in this project.")
		return nil
	}

	color := colorOutput(a.cfg.Output.Color)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tCOLOR")
	fmt.Fprintln(w, "──\t────\t─────")
	for _, l := range labels {
		name := l.Name
		if color {
			name = badge.Render(l, badge.SizeDefault).Text
		}
		c := l.Color
		if c == "" {
			c = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", l.ID, name, c)
	}
	return w.Flush()
}

func runTaskLabels(a *app, taskID string) error {
	labels, err := a.dirs.Labels.LabelsForTask(a.ctx, taskID)
	if err != nil {
		return err
	}

	if jsonOut {
		return json.NewEncoder(os.Stdout).Encode(labels)
	}
	if len(labels) == 0 {
		fmt.Printf("No labels on %s.\n", taskID)
		return nil
	}

	if colorOutput(a.cfg.Output.Color) {
		fmt.Println(badge.RenderList(labels, badge.DefaultMaxDisplay, badge.SizeDefault))
		if len(labels) > badge.DefaultMaxDisplay {
			for _, l := range labels[badge.DefaultMaxDisplay:] {
				fmt.Println("  " + l.Name)
			}
		}
		return nil
	}
	for _, l := range labels {
		fmt.Println(l.Name)
	}
	return nil
}
