package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/example/depot/internal/ports/primary"
	"github.com/example/depot/internal/wire"
)

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Browse the audit log",
}

var auditListCmd = &cobra.Command{
	Use:   "list",
	Short: "List audit entries, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := NewContext()
		entityType, _ := cmd.Flags().GetString("entity-type")
		entityID, _ := cmd.Flags().GetString("entity")
		action, _ := cmd.Flags().GetString("action")
		limit, _ := cmd.Flags().GetInt("limit")

		entries, err := wire.AuditService().ListAuditEntries(ctx, primary.AuditFilters{
			EntityType: entityType,
			EntityID:   entityID,
			Action:     action,
		})
		if err != nil {
			return fmt.Errorf("failed to list audit entries: %w", err)
		}

		if len(entries) == 0 {
			fmt.Println("No audit entries found.")
			return nil
		}
		if limit > 0 && len(entries) > limit {
			entries = entries[:limit]
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tTIMESTAMP\tENTITY\tACTION\tOLD\tNEW\tBY")
		fmt.Fprintln(w, "--\t---------\t------\t------\t---\t---\t--")
		for _, e := range entries {
			fmt.Fprintf(w, "%s\t%s\t%s %s\t%s\t%s\t%s\t%s\n",
				e.ID, e.Timestamp, e.EntityType, e.EntityID, e.Action, e.OldValue, e.NewValue, e.ChangedBy)
		}
		return w.Flush()
	},
}

func init() {
	auditListCmd.Flags().String("entity-type", "", "Filter by entity type (Batch, BatchLine, Allocation, Exception, Settings)")
	auditListCmd.Flags().String("entity", "", "Filter by entity ID")
	auditListCmd.Flags().String("action", "", "Filter by action")
	auditListCmd.Flags().Int("limit", 50, "Maximum number of entries to show (0 for all)")

	auditCmd.AddCommand(auditListCmd)
}

// AuditCmd returns the audit command tree
func AuditCmd() *cobra.Command {
	return auditCmd
}
