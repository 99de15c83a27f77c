package primary

import "context"

// SettingsService defines the primary port for process-wide settings.
type SettingsService interface {
	// GetSettings retrieves the current settings.
	GetSettings(ctx context.Context) (*Settings, error)

	// SetAllocationMode changes the allocation mode. The engine reads the
	// mode fresh on every run, so the change applies to the next allocation.
	SetAllocationMode(ctx context.Context, mode, changedBy string) error

	// SetCurrentUser changes the default acting user.
	SetCurrentUser(ctx context.Context, user, changedBy string) error
}

// Settings represents the process-wide settings at the port boundary.
type Settings struct {
	AllocationMode string
	CurrentUser    string
}
