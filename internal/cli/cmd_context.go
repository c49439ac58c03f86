package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// newContextCmd creates the context command
func newContextCmd() *cobra.Command {
	var artifactType string
	var list bool

	cmd := &cobra.Command{
		Use:   "context [task-id]",
		Short: "Preview aggregated context or list context artifacts",
		Long: `Preview the aggregated context for a task (or the whole project when no
task id is given), or list the project's context artifacts.

Example:
  boardctx context TASK-1
  boardctx context
  boardctx context --list --type decision`,
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

			if list {
				return runArtifactList(a, artifactType)
			}

			taskID := ""
			if len(args) == 1 {
				taskID = args[0]
			}
			return runContextPreview(a, taskID)
		},
	}

	cmd.Flags().BoolVar(&list, "list", false, "list artifacts instead of previewing context")
	cmd.Flags().StringVar(&artifactType, "type", "", "filter artifacts by type (with --list)")
	return cmd
}

func runArtifactList(a *app, artifactType string) error {
	artifacts, err := a.dirs.Artifacts.Artifacts(a.ctx, artifactType)
	if err != nil {
		return err
	}

	if jsonOut {
		return json.NewEncoder(os.Stdout).Encode(artifacts)
	}
	if len(artifacts) == 0 {
		fmt.Println("No context artifacts found.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTYPE\tTITLE\tUPDATED")
	fmt.Fprintln(w, "──\t────\t─────\t───────")
	for _, art := range artifacts {
		updated := "-"
		if !art.UpdatedAt.IsZero() {
			updated = art.UpdatedAt.Format("2006-01-02")
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", art.ID, art.Type, art.Title, updated)
	}
	return w.Flush()
}

func runContextPreview(a *app, taskID string) error {
	preview, err := a.dirs.Artifacts.Preview(a.ctx, taskID)
	if err != nil {
		return err
	}

	if jsonOut {
		return json.NewEncoder(os.Stdout).Encode(preview)
	}

	scope := "project"
	if taskID != "" {
		scope = taskID
	}
	fmt.Printf("Context for %s\n\n", scope)
	if preview.Summary != "" {
		fmt.Println(preview.Summary)
		fmt.Println()
	}
	if len(preview.Artifacts) > 0 {
		fmt.Println("Sources:")
		for _, art := range preview.Artifacts {
			fmt.Printf("  - [%s] %s\n", art.Type, art.Title)
		}
	}
	if preview.TokenEstimate > 0 {
		fmt.Printf("\n~%d tokens\n", preview.TokenEstimate)
	}
	return nil
}
