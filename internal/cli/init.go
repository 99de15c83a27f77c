package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/depot/internal/db"
)

// InitCmd returns the init command
func InitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize the depot database",
		Long:  `Initialize the depot database at ~/.depot/depot.db with the required schema.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			seed, _ := cmd.Flags().GetBool("seed")

			dbPath, err := db.GetDBPath()
			if err != nil {
				return fmt.Errorf("failed to get database path: %w", err)
			}

			fmt.Printf("Initializing depot database at %s\n", dbPath)

			if err := db.InitSchema(); err != nil {
				return fmt.Errorf("failed to initialize schema: %w", err)
			}
			fmt.Println("✓ Database initialized successfully")

			if seed {
				database, err := db.GetDB()
				if err != nil {
					return fmt.Errorf("failed to open database: %w", err)
				}
				seeded, err := db.IsSeeded(database)
				if err != nil {
					return fmt.Errorf("failed to check fixtures: %w", err)
				}
				if seeded {
					fmt.Println("Sample work orders already present, skipping seed")
				} else {
					if err := db.SeedFixtures(database); err != nil {
						return fmt.Errorf("failed to seed fixtures: %w", err)
					}
					fmt.Println("✓ Sample work orders loaded")
				}
			}

			fmt.Println()
			fmt.Println("Next steps:")
			fmt.Println("  depot wo list")
			fmt.Println("  depot batch create --brigade \"...\" --wo WO-0001,WO-0002 --approval APR-001")

			return nil
		},
	}

	cmd.Flags().Bool("seed", false, "Load sample work orders for evaluation")
	return cmd
}
