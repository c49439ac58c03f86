// Package cli implements the boardctx command-line interface.
package cli

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	project string
	verbose bool
	quiet   bool
	jsonOut bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "boardctx",
	Short: "Task board labels, groups, columns, and context from the terminal",
	Long: `boardctx reads a project's board taxonomy from the board service and
keeps it cached locally: labels, task groups, kanban columns, and
context artifacts.

Quick start:
  boardctx columns            List the project's board columns
  boardctx labels             List the project's label catalog
  boardctx labels TASK-1      Show a task's labels as badges
  boardctx context TASK-1     Preview a task's aggregated context
  boardctx board              Open the interactive board view`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initLogging)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .boardctx/config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&project, "project", "p", "", "project id (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress non-essential output")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "output as JSON")

	_ = viper.BindPFlag("project.id", rootCmd.PersistentFlags().Lookup("project"))

	// Add subcommands
	rootCmd.AddCommand(newLabelsCmd())
	rootCmd.AddCommand(newColumnsCmd())
	rootCmd.AddCommand(newGroupsCmd())
	rootCmd.AddCommand(newContextCmd())
	rootCmd.AddCommand(newBoardCmd())
}

// initLogging configures slog according to the verbosity flags.
func initLogging() {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	if quiet {
		level = slog.LevelError
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}
