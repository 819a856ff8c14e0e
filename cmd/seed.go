package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/prepdesk/prepdesk/internal/store"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the bundled question bank into the database",
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve database path: %w", err)
		}

		s, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer s.Close()

		n, err := s.Seed(cmd.Context())
		if err != nil {
			return fmt.Errorf("seed question bank: %w", err)
		}
		if n == 0 {
			fmt.Println("Question bank already populated, nothing to do.")
			return nil
		}
		fmt.Printf("Seeded %d questions into %s\n", n, dbPath)
		return nil
	},
}
