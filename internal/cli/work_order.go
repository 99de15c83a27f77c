package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/depot/internal/ports/primary"
	"github.com/example/depot/internal/wire"
)

var woCmd = &cobra.Command{
	Use:   "wo",
	Short: "Browse work orders (demand catalogue)",
	Long:  "List and inspect work orders and their part lines",
}

var woListCmd = &cobra.Command{
	Use:   "list",
	Short: "List work orders",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := NewContext()
		brigade, _ := cmd.Flags().GetString("brigade")
		status, _ := cmd.Flags().GetString("status")
		priority, _ := cmd.Flags().GetString("priority")
		open, _ := cmd.Flags().GetBool("open")

		// --open is shorthand for --status "Waiting Parts"
		if open {
			status = primary.WorkOrderWaitingParts
		}

		workOrders, err := wire.WorkOrderService().ListWorkOrders(ctx, primary.WorkOrderFilters{
			Brigade:  brigade,
			Status:   status,
			Priority: priority,
		})
		if err != nil {
			return fmt.Errorf("failed to list work orders: %w", err)
		}

		if len(workOrders) == 0 {
			fmt.Println("No work orders found.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tBRIGADE\tWORKSHOP\tPRIORITY\tSTATUS\tCREATED")
		fmt.Fprintln(w, "--\t-------\t--------\t--------\t------\t-------")
		for _, wo := range workOrders {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
				wo.ID, wo.Brigade, wo.Workshop, priorityLabel(wo.Priority), wo.Status, wo.CreatedDate)
		}
		return w.Flush()
	},
}

var woShowCmd = &cobra.Command{
	Use:   "show [wo-id]",
	Short: "Show a work order with its part lines",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := NewContext()

		wo, err := wire.WorkOrderService().GetWorkOrder(ctx, args[0])
		if err != nil {
			return fmt.Errorf("failed to get work order: %w", err)
		}

		fmt.Printf("Work Order: %s\n", wo.ID)
		fmt.Printf("  Brigade:  %s\n", wo.Brigade)
		if wo.Workshop != "" {
			fmt.Printf("  Workshop: %s\n", wo.Workshop)
		}
		fmt.Printf("  Priority: %s\n", priorityLabel(wo.Priority))
		fmt.Printf("  Status:   %s\n", wo.Status)
		fmt.Printf("  Created:  %s\n", wo.CreatedDate)

		if len(wo.PartLines) == 0 {
			fmt.Println("\nNo part lines.")
			return nil
		}

		fmt.Println()
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "LINE\tPART\tDESCRIPTION\tREQUIRED\tRECEIVED\tOUTSTANDING\tSTATUS")
		fmt.Fprintln(w, "----\t----\t-----------\t--------\t--------\t-----------\t------")
		for _, pl := range wo.PartLines {
			fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%d\t%s\n",
				pl.ID, pl.PartNo, pl.Description, pl.RequiredQty, pl.ReceivedQty, pl.OutstandingQty, pl.Status)
		}
		return w.Flush()
	},
}

// priorityLabel colors the priority for terminal output.
func priorityLabel(priority string) string {
	switch priority {
	case primary.PriorityCritical:
		return color.New(color.FgRed).Sprint(priority)
	case primary.PriorityHigh:
		return color.New(color.FgYellow).Sprint(priority)
	default:
		return priority
	}
}

func init() {
	woListCmd.Flags().String("brigade", "", "Filter by brigade")
	woListCmd.Flags().String("status", "", "Filter by status")
	woListCmd.Flags().String("priority", "", "Filter by priority (Critical, High, Normal)")
	woListCmd.Flags().Bool("open", false, "Show only work orders waiting for parts")

	woCmd.AddCommand(woListCmd)
	woCmd.AddCommand(woShowCmd)
}

// WorkOrderCmd returns the wo command tree
func WorkOrderCmd() *cobra.Command {
	return woCmd
}
