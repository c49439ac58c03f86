package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/boardctx/internal/board"
	"github.com/randalmurphal/boardctx/internal/snapshot"
)

// newGroupsCmd creates the groups command
func newGroupsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "groups",
		Short: "List the project's task groups",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.close()
			if err := a.requireProject(); err != nil {
				return err
			}

			groups, err := a.dirs.Groups.Groups(a.ctx)
			if err != nil {
				var cached []board.TaskGroup
				if !a.restore(snapshot.KindGroups, &cached) {
					return err
				}
				groups = cached
			} else {
				a.save(snapshot.KindGroups, groups)
			}

			if jsonOut {
				return json.NewEncoder(os.Stdout).Encode(groups)
			}
			if len(groups) == 0 {
				fmt.Println("No task groups in this project.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tDESCRIPTION")
			fmt.Fprintln(w, "──\t────\t───────────")
			for _, g := range groups {
				desc := g.Description
				if desc == "" {
					desc = "-"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\n", g.ID, g.Name, desc)
			}
			return w.Flush()
		},
	}
}
