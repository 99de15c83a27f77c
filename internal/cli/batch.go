package cli

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/example/depot/internal/ports/primary"
	"github.com/example/depot/internal/wire"
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Manage procurement batches",
	Long:  "Create, list, inspect, and transition procurement batches",
}

var batchCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a batch from selected work orders",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := NewContext()
		brigade, _ := cmd.Flags().GetString("brigade")
		woList, _ := cmd.Flags().GetString("wo")
		approval, _ := cmd.Flags().GetString("approval")
		submit, _ := cmd.Flags().GetBool("submit")

		if brigade == "" || woList == "" || approval == "" {
			return fmt.Errorf("missing required flags\nHint: depot batch create --brigade \"...\" --wo WO-0001,WO-0002 --approval APR-001")
		}

		var workOrderIDs []string
		for _, id := range strings.Split(woList, ",") {
			if id = strings.TrimSpace(id); id != "" {
				workOrderIDs = append(workOrderIDs, id)
			}
		}

		resp, err := wire.BatchService().CreateBatch(ctx, primary.CreateBatchRequest{
			Brigade:           brigade,
			WorkOrderIDs:      workOrderIDs,
			ApprovalRef:       approval,
			CreatedBy:         Operator(),
			SubmitImmediately: submit,
		})
		if err != nil {
			return fmt.Errorf("failed to create batch: %w", err)
		}

		fmt.Printf("✓ Created batch %s for %s\n", resp.BatchID, resp.Batch.Brigade)
		fmt.Printf("  Status:   %s\n", resp.Batch.Status)
		fmt.Printf("  Approval: %s\n", resp.Batch.ApprovalRef)
		fmt.Printf("  Lines:    %d\n", len(resp.Batch.Lines))
		fmt.Println()
		fmt.Println("Next steps:")
		fmt.Printf("   depot batch show %s\n", resp.BatchID)
		if !submit {
			fmt.Printf("   depot batch transition %s --to \"Subm to Procurement\"\n", resp.BatchID)
		}
		return nil
	},
}

var batchListCmd = &cobra.Command{
	Use:   "list",
	Short: "List batches",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := NewContext()
		brigade, _ := cmd.Flags().GetString("brigade")
		status, _ := cmd.Flags().GetString("status")

		batches, err := wire.BatchService().ListBatches(ctx, primary.BatchFilters{
			Brigade: brigade,
			Status:  status,
		})
		if err != nil {
			return fmt.Errorf("failed to list batches: %w", err)
		}

		if len(batches) == 0 {
			fmt.Println("No batches found.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tBRIGADE\tSTATUS\tAPPROVAL\tCREATED BY\tCREATED")
		fmt.Fprintln(w, "--\t-------\t------\t--------\t----------\t-------")
		for _, b := range batches {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
				b.ID, b.Brigade, b.Status, b.ApprovalRef, b.CreatedBy, b.CreatedDate)
		}
		return w.Flush()
	},
}

var batchShowCmd = &cobra.Command{
	Use:   "show [batch-id]",
	Short: "Show a batch with its lines",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := NewContext()

		batch, err := wire.BatchService().GetBatch(ctx, args[0])
		if err != nil {
			return fmt.Errorf("failed to get batch: %w", err)
		}

		fmt.Printf("Batch: %s\n", batch.ID)
		fmt.Printf("  Brigade:  %s\n", batch.Brigade)
		fmt.Printf("  Status:   %s\n", batch.Status)
		fmt.Printf("  Approval: %s\n", batch.ApprovalRef)
		fmt.Printf("  Created:  %s by %s\n", batch.CreatedDate, batch.CreatedBy)
		if batch.ResponsibilityOwner != "" {
			fmt.Printf("  Owner:    %s (since %s)\n", batch.ResponsibilityOwner, batch.OwnerSince)
		}

		if len(batch.Lines) == 0 {
			fmt.Println("\nNo batch lines.")
			return nil
		}

		fmt.Println()
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "LINE\tPART\tREQUIRED\tORDERED\tRECEIVED\tVENDOR\tPO\tETA")
		fmt.Fprintln(w, "----\t----\t--------\t-------\t--------\t------\t--\t---")
		for _, l := range batch.Lines {
			fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\t%s\t%s\t%s\n",
				l.ID, l.PartNo, l.TotalRequiredQty, l.OrderedQty, l.ReceivedQty, l.Vendor, l.PONumbers, l.ExpectedDelivery)
		}
		return w.Flush()
	},
}

var batchTransitionCmd = &cobra.Command{
	Use:   "transition [batch-id]",
	Short: "Advance a batch to the next lifecycle status",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := NewContext()
		target, _ := cmd.Flags().GetString("to")
		if target == "" {
			return fmt.Errorf("missing --to flag\nHint: depot batch transition %s --to \"Under Procurement\"", args[0])
		}

		if err := wire.BatchService().TransitionBatch(ctx, primary.TransitionBatchRequest{
			BatchID:      args[0],
			TargetStatus: target,
			ChangedBy:    Operator(),
		}); err != nil {
			return fmt.Errorf("failed to transition batch: %w", err)
		}

		fmt.Printf("✓ Batch %s is now %s\n", args[0], target)
		return nil
	},
}

func init() {
	batchCreateCmd.Flags().String("brigade", "", "Brigade the batch belongs to")
	batchCreateCmd.Flags().String("wo", "", "Comma-separated work order IDs")
	batchCreateCmd.Flags().String("approval", "", "Approval reference")
	batchCreateCmd.Flags().Bool("submit", false, "Submit to procurement immediately")

	batchListCmd.Flags().String("brigade", "", "Filter by brigade")
	batchListCmd.Flags().String("status", "", "Filter by status")

	batchTransitionCmd.Flags().String("to", "", "Target status")

	batchCmd.AddCommand(batchCreateCmd)
	batchCmd.AddCommand(batchListCmd)
	batchCmd.AddCommand(batchShowCmd)
	batchCmd.AddCommand(batchTransitionCmd)
}

// BatchCmd returns the batch command tree
func BatchCmd() *cobra.Command {
	return batchCmd
}
