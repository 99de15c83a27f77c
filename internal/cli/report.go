package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/depot/internal/core/allocation"
	"github.com/example/depot/internal/core/lifecycle"
	"github.com/example/depot/internal/ports/primary"
	"github.com/example/depot/internal/wire"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Packing lists, collection manifests, and the dashboard",
}

var reportPackingCmd = &cobra.Command{
	Use:   "packing-list [batch-id] [wo-id]",
	Short: "Parts allocated to one work order within a batch",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := NewContext()

		items, err := wire.ReportService().PackingList(ctx, args[0], args[1])
		if err != nil {
			return fmt.Errorf("failed to build packing list: %w", err)
		}

		fmt.Printf("Packing list for %s (batch %s)\n\n", args[1], args[0])
		return printPackingItems(items)
	},
}

var reportManifestCmd = &cobra.Command{
	Use:   "manifest [batch-id]",
	Short: "Collection manifest covering a whole batch",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := NewContext()

		items, err := wire.ReportService().CollectionManifest(ctx, args[0])
		if err != nil {
			return fmt.Errorf("failed to build manifest: %w", err)
		}

		fmt.Printf("Collection manifest for batch %s\n\n", args[0])
		return printPackingItems(items)
	},
}

var reportDashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Headline counts across the system",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := NewContext()

		summary, err := wire.ReportService().DashboardSummary(ctx)
		if err != nil {
			return fmt.Errorf("failed to build dashboard: %w", err)
		}

		bold := color.New(color.Bold)
		bold.Println("Depot dashboard")
		fmt.Println()
		fmt.Printf("Open work orders: %d\n", summary.OpenWorkOrders)
		for _, p := range []string{primary.PriorityCritical, primary.PriorityHigh, primary.PriorityNormal} {
			if n := summary.OpenWOsByPriority[p]; n > 0 {
				fmt.Printf("  %s: %d\n", priorityLabel(p), n)
			}
		}
		fmt.Println()
		fmt.Printf("Part lines: %d waiting, %d partial, %d ready\n",
			summary.LinesByStatus[allocation.LineStatusWaiting],
			summary.LinesByStatus[allocation.LineStatusPartial],
			summary.LinesByStatus[allocation.LineStatusReady])
		fmt.Println()
		fmt.Printf("Batches: %d\n", summary.TotalBatches)
		for _, s := range []string{
			lifecycle.StatusDraft,
			lifecycle.StatusSubmitted,
			lifecycle.StatusUnderProcurement,
			lifecycle.StatusPartiallyReceived,
			lifecycle.StatusFullyReceived,
			lifecycle.StatusClosed,
		} {
			if n := summary.BatchesByStatus[s]; n > 0 {
				fmt.Printf("  %s: %d\n", s, n)
			}
		}
		return nil
	},
}

func printPackingItems(items []*primary.PackingItem) error {
	if len(items) == 0 {
		fmt.Println("Nothing to pack.")
		return nil
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "WORK ORDER\tPART\tDESCRIPTION\tQTY\tSTATUS")
	fmt.Fprintln(w, "----------\t----\t-----------\t---\t------")
	for _, item := range items {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n",
			item.WorkOrderID, item.PartNo, item.Description, item.AllocatedQty, item.Status)
	}
	return w.Flush()
}

func init() {
	reportCmd.AddCommand(reportPackingCmd)
	reportCmd.AddCommand(reportManifestCmd)
	reportCmd.AddCommand(reportDashboardCmd)
}

// ReportCmd returns the report command tree
func ReportCmd() *cobra.Command {
	return reportCmd
}
