package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/depot/internal/config"
	"github.com/example/depot/internal/wire"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show and change process-wide settings",
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := NewContext()

		settings, err := wire.SettingsService().GetSettings(ctx)
		if err != nil {
			return fmt.Errorf("failed to get settings: %w", err)
		}

		fmt.Printf("Allocation mode: %s\n", settings.AllocationMode)
		fmt.Printf("Current user:    %s\n", settings.CurrentUser)
		if op := Operator(); op != "" {
			fmt.Printf("Operator:        %s (this machine)\n", op)
		}
		return nil
	},
}

var settingsSetModeCmd = &cobra.Command{
	Use:   "set-mode [mode]",
	Short: "Change the allocation mode",
	Long: `Change the allocation mode. The engine reads the mode fresh on every
run, so the change applies from the next receipt onward. Valid modes:
"Priority First then FIFO", "FIFO", "Manual Only".`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := NewContext()

		if err := wire.SettingsService().SetAllocationMode(ctx, args[0], Operator()); err != nil {
			return fmt.Errorf("failed to set allocation mode: %w", err)
		}

		fmt.Printf("✓ Allocation mode is now %q\n", args[0])
		return nil
	},
}

var settingsSetUserCmd = &cobra.Command{
	Use:   "set-user [user]",
	Short: "Change the default acting user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := NewContext()

		if err := wire.SettingsService().SetCurrentUser(ctx, args[0], Operator()); err != nil {
			return fmt.Errorf("failed to set current user: %w", err)
		}

		fmt.Printf("✓ Current user is now %s\n", args[0])
		return nil
	},
}

var settingsSetOperatorCmd = &cobra.Command{
	Use:   "set-operator [name]",
	Short: "Record who operates this machine",
	Long: `Record the operator in ~/.depot/config.json. The operator is embedded
in every command's context and takes precedence over the current_user
setting. DEPOT_USER overrides both for a single invocation.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load("")
		if err != nil {
			cfg = &config.Config{Version: "1.0"}
		}
		cfg.Operator = args[0]
		if err := config.Save("", cfg); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}

		fmt.Printf("✓ Operator is now %s\n", args[0])
		return nil
	},
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetModeCmd)
	settingsCmd.AddCommand(settingsSetUserCmd)
	settingsCmd.AddCommand(settingsSetOperatorCmd)
}

// SettingsCmd returns the settings command tree
func SettingsCmd() *cobra.Command {
	return settingsCmd
}
