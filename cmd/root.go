// Package cmd wires the prepdesk CLI.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/prepdesk/prepdesk/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "prepdesk",
	Short: "Interview practice backend",
	Long:  "Prepdesk — a mock-interview service that asks questions, collects answers, and synthesizes feedback.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides PREPDESK_DB env var)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then PREPDESK_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}
