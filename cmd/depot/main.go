package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/depot/internal/cli"
	"github.com/example/depot/internal/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "depot",
		Short:   "depot - spare part batching and allocation for maintenance work orders",
		Version: version.String(),
		Long: `depot manages procurement batches built from work-order part demand.
It aggregates demand per part, tracks receipts against vendors, and
distributes received quantities across work orders by priority and age.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cli.ResolveOperator()
		},
	}

	// Add subcommands
	rootCmd.AddCommand(cli.InitCmd())
	rootCmd.AddCommand(cli.WorkOrderCmd())
	rootCmd.AddCommand(cli.BatchCmd())
	rootCmd.AddCommand(cli.ProcCmd())
	rootCmd.AddCommand(cli.AllocCmd())
	rootCmd.AddCommand(cli.ExceptionCmd())
	rootCmd.AddCommand(cli.ReportCmd())
	rootCmd.AddCommand(cli.AuditCmd())
	rootCmd.AddCommand(cli.SettingsCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
