package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/depot/internal/ports/primary"
	"github.com/example/depot/internal/wire"
)

var procCmd = &cobra.Command{
	Use:   "proc",
	Short: "Record procurement progress on batch lines",
}

var procUpdateCmd = &cobra.Command{
	Use:   "update [batch-line-id]",
	Short: "Update vendor, order, and receipt figures on a batch line",
	Long: `Update procurement tracking fields on a batch line. A changed received
quantity redistributes the delta across allocations and recomputes the
derived batch status.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := NewContext()

		// Unset flags keep the line's current values; updates are absolute.
		line, err := wire.ProcurementService().GetBatchLine(ctx, args[0])
		if err != nil {
			return fmt.Errorf("failed to get batch line: %w", err)
		}
		vendor := line.Vendor
		po := line.PONumbers
		ordered := line.OrderedQty
		received := line.ReceivedQty
		eta := line.ExpectedDelivery
		if cmd.Flags().Changed("vendor") {
			vendor, _ = cmd.Flags().GetString("vendor")
		}
		if cmd.Flags().Changed("po") {
			po, _ = cmd.Flags().GetString("po")
		}
		if cmd.Flags().Changed("ordered") {
			ordered, _ = cmd.Flags().GetInt("ordered")
		}
		if cmd.Flags().Changed("received") {
			received, _ = cmd.Flags().GetInt("received")
		}
		if cmd.Flags().Changed("eta") {
			eta, _ = cmd.Flags().GetString("eta")
		}

		if err := wire.ProcurementService().UpdateProcurementLine(ctx, primary.UpdateProcurementLineRequest{
			BatchLineID:      args[0],
			Vendor:           vendor,
			PONumbers:        po,
			OrderedQty:       ordered,
			NewReceivedQty:   received,
			ExpectedDelivery: eta,
			ChangedBy:        Operator(),
		}); err != nil {
			return fmt.Errorf("failed to update batch line: %w", err)
		}

		fmt.Printf("✓ Updated %s\n", args[0])
		fmt.Println()
		fmt.Println("Next steps:")
		fmt.Printf("   depot alloc list %s\n", args[0])
		return nil
	},
}

func init() {
	procUpdateCmd.Flags().String("vendor", "", "Vendor name")
	procUpdateCmd.Flags().String("po", "", "Purchase order numbers")
	procUpdateCmd.Flags().Int("ordered", 0, "Ordered quantity")
	procUpdateCmd.Flags().Int("received", 0, "Cumulative received quantity")
	procUpdateCmd.Flags().String("eta", "", "Expected delivery date (YYYY-MM-DD)")

	procCmd.AddCommand(procUpdateCmd)
}

// ProcCmd returns the proc command tree
func ProcCmd() *cobra.Command {
	return procCmd
}
