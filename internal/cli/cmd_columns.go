package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/boardctx/internal/board"
	"github.com/randalmurphal/boardctx/internal/directory"
	"github.com/randalmurphal/boardctx/internal/snapshot"
)

// newColumnsCmd creates the columns command
func newColumnsCmd() *cobra.Command {
	var slug string

	cmd := &cobra.Command{
		Use:   "columns",
		Short: "List the project's board columns",
		Long: `List the project's kanban columns in board order.

Example:
  boardctx columns
  boardctx columns --slug in-progress`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.close()
			if err := a.requireProject(); err != nil {
				return err
			}

			columns, err := a.dirs.Columns.Columns(a.ctx)
			if err != nil {
				var cached []board.Column
				if !a.restore(snapshot.KindColumns, &cached) {
					return err
				}
				columns = cached
			} else {
				a.save(snapshot.KindColumns, columns)
			}

			if slug != "" {
				col, ok := directory.FindBySlug(columns, slug)
				if !ok {
					return fmt.Errorf("no column with slug %q", slug)
				}
				if jsonOut {
					return json.NewEncoder(os.Stdout).Encode(col)
				}
				fmt.Printf("%s\t%s\n", col.Slug, col.Name)
				return nil
			}

			if jsonOut {
				return json.NewEncoder(os.Stdout).Encode(columns)
			}
			if len(columns) == 0 {
				fmt.Println("No columns in this project.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "SLUG\tNAME\tPOSITION\tWIP")
			fmt.Fprintln(w, "────\t────\t────────\t───")
			for _, c := range columns {
				wip := "-"
				if c.WIPLimit > 0 {
					wip = fmt.Sprintf("%d", c.WIPLimit)
				}
				fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", c.Slug, c.Name, c.Position, wip)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&slug, "slug", "", "look up a single column by slug")
	return cmd
}
