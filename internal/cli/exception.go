package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/example/depot/internal/ports/primary"
	"github.com/example/depot/internal/wire"
)

var exceptionCmd = &cobra.Command{
	Use:   "exception",
	Short: "Track procurement exceptions",
	Long:  "Log, list, and close exceptions raised against batches",
}

var exceptionLogCmd = &cobra.Command{
	Use:   "log [batch-id]",
	Short: "Log a new exception against a batch",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := NewContext()
		excType, _ := cmd.Flags().GetString("type")
		partNo, _ := cmd.Flags().GetString("part")
		description, _ := cmd.Flags().GetString("description")

		if excType == "" {
			return fmt.Errorf("missing --type flag\nHint: one of Obsolete, Cancelled, Rebatch, VendorRejected, MilitaryDelay")
		}

		resp, err := wire.ExceptionService().LogException(ctx, primary.LogExceptionRequest{
			BatchID:     args[0],
			PartNo:      partNo,
			Type:        excType,
			Description: description,
			CreatedBy:   Operator(),
		})
		if err != nil {
			return fmt.Errorf("failed to log exception: %w", err)
		}

		fmt.Printf("✓ Logged exception %s (%s) on %s\n", resp.ExceptionID, excType, args[0])
		return nil
	},
}

var exceptionCloseCmd = &cobra.Command{
	Use:   "close [exception-id]",
	Short: "Close an open exception",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := NewContext()

		if err := wire.ExceptionService().CloseException(ctx, args[0], Operator()); err != nil {
			return fmt.Errorf("failed to close exception: %w", err)
		}

		fmt.Printf("✓ Closed exception %s\n", args[0])
		return nil
	},
}

var exceptionListCmd = &cobra.Command{
	Use:   "list",
	Short: "List exceptions",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := NewContext()
		batchID, _ := cmd.Flags().GetString("batch")
		status, _ := cmd.Flags().GetString("status")
		excType, _ := cmd.Flags().GetString("type")
		open, _ := cmd.Flags().GetBool("open")

		if open {
			status = primary.ExceptionStatusOpen
		}

		exceptions, err := wire.ExceptionService().ListExceptions(ctx, primary.ExceptionFilters{
			BatchID: batchID,
			Status:  status,
			Type:    excType,
		})
		if err != nil {
			return fmt.Errorf("failed to list exceptions: %w", err)
		}

		if len(exceptions) == 0 {
			fmt.Println("No exceptions found.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tBATCH\tPART\tTYPE\tSTATUS\tCREATED BY\tDESCRIPTION")
		fmt.Fprintln(w, "--\t-----\t----\t----\t------\t----------\t-----------")
		for _, e := range exceptions {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
				e.ID, e.BatchID, e.PartNo, e.Type, e.Status, e.CreatedBy, e.Description)
		}
		return w.Flush()
	},
}

func init() {
	exceptionLogCmd.Flags().String("type", "", "Exception type")
	exceptionLogCmd.Flags().String("part", "", "Part number the exception concerns")
	exceptionLogCmd.Flags().String("description", "", "Free-text description")

	exceptionListCmd.Flags().String("batch", "", "Filter by batch")
	exceptionListCmd.Flags().String("status", "", "Filter by status (Open, Closed)")
	exceptionListCmd.Flags().String("type", "", "Filter by type")
	exceptionListCmd.Flags().Bool("open", false, "Show only open exceptions")

	exceptionCmd.AddCommand(exceptionLogCmd)
	exceptionCmd.AddCommand(exceptionCloseCmd)
	exceptionCmd.AddCommand(exceptionListCmd)
}

// ExceptionCmd returns the exception command tree
func ExceptionCmd() *cobra.Command {
	return exceptionCmd
}
