package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/example/depot/internal/ports/primary"
	"github.com/example/depot/internal/wire"
)

var allocCmd = &cobra.Command{
	Use:   "alloc",
	Short: "Inspect and adjust allocations",
	Long:  "List allocations of a batch line, apply manual overrides, or reset to automatic distribution",
}

var allocListCmd = &cobra.Command{
	Use:   "list [batch-line-id]",
	Short: "List allocations of a batch line in distribution order",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := NewContext()

		allocations, err := wire.AllocationService().ListAllocations(ctx, args[0])
		if err != nil {
			return fmt.Errorf("failed to list allocations: %w", err)
		}

		if len(allocations) == 0 {
			fmt.Println("No allocations found.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tWORK ORDER\tPRIORITY\tREQUIRED\tALLOCATED\tOUTSTANDING\tSTATUS")
		fmt.Fprintln(w, "--\t----------\t--------\t--------\t---------\t-----------\t------")
		for _, a := range allocations {
			fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%d\t%s\n",
				a.ID, a.WorkOrderID, priorityLabel(a.Priority), a.RequiredQty, a.AllocatedQty, a.OutstandingQty, a.Status)
		}
		return w.Flush()
	},
}

var allocOverrideCmd = &cobra.Command{
	Use:   "override [batch-line-id]",
	Short: "Apply a manual allocation edit",
	Long: `Set the allocated quantity of one allocation by hand. The edit is
validated against the work order's requirement and the line's received
capacity before anything is written.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := NewContext()
		allocationID, _ := cmd.Flags().GetString("alloc")
		qty, _ := cmd.Flags().GetInt("qty")
		status, _ := cmd.Flags().GetString("status")
		notes, _ := cmd.Flags().GetString("notes")

		if allocationID == "" || !cmd.Flags().Changed("qty") {
			return fmt.Errorf("missing required flags\nHint: depot alloc override %s --alloc ALLOC-0001 --qty 5", args[0])
		}

		if err := wire.AllocationService().ApplyOverride(ctx, primary.ApplyOverrideRequest{
			BatchLineID: args[0],
			Edits: []primary.AllocationEdit{
				{AllocationID: allocationID, AllocatedQty: qty, Status: status, Notes: notes},
			},
			ChangedBy: Operator(),
		}); err != nil {
			return fmt.Errorf("failed to apply override: %w", err)
		}

		fmt.Printf("✓ Set %s to %d\n", allocationID, qty)
		return nil
	},
}

var allocResetCmd = &cobra.Command{
	Use:   "reset [batch-line-id]",
	Short: "Reset a batch line to automatic distribution",
	Long: `Zero the line's allocations, clear manual-override protection, and
replay the full received quantity through the allocation engine.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := NewContext()

		if err := wire.AllocationService().ResetToAuto(ctx, primary.ResetToAutoRequest{
			BatchLineID: args[0],
			ChangedBy:   Operator(),
		}); err != nil {
			return fmt.Errorf("failed to reset allocations: %w", err)
		}

		fmt.Printf("✓ Reset %s to automatic distribution\n", args[0])
		fmt.Println()
		fmt.Println("Next steps:")
		fmt.Printf("   depot alloc list %s\n", args[0])
		return nil
	},
}

func init() {
	allocOverrideCmd.Flags().String("alloc", "", "Allocation ID to edit")
	allocOverrideCmd.Flags().Int("qty", 0, "New allocated quantity")
	allocOverrideCmd.Flags().String("status", "", "New status (empty keeps the current one)")
	allocOverrideCmd.Flags().String("notes", "", "Notes on the edit")

	allocCmd.AddCommand(allocListCmd)
	allocCmd.AddCommand(allocOverrideCmd)
	allocCmd.AddCommand(allocResetCmd)
}

// AllocCmd returns the alloc command tree
func AllocCmd() *cobra.Command {
	return allocCmd
}
