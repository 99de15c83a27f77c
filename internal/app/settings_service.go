package app

import (
	"context"
	"fmt"

	"github.com/example/depot/internal/core/allocation"
	"github.com/example/depot/internal/ports/primary"
	"github.com/example/depot/internal/ports/secondary"
)

// SettingsServiceImpl implements the SettingsService interface.
type SettingsServiceImpl struct {
	settings secondary.SettingsRepository
	audits   secondary.AuditRepository
}

// NewSettingsService creates a new SettingsService with injected dependencies.
func NewSettingsService(settings secondary.SettingsRepository, audits secondary.AuditRepository) *SettingsServiceImpl {
	return &SettingsServiceImpl{settings: settings, audits: audits}
}

// GetSettings retrieves the current process-wide settings.
func (s *SettingsServiceImpl) GetSettings(ctx context.Context) (*primary.Settings, error) {
	mode, err := s.settings.Get(ctx, secondary.SettingAllocationMode)
	if err != nil {
		return nil, fmt.Errorf("failed to read allocation mode: %w", err)
	}
	user, err := s.settings.Get(ctx, secondary.SettingCurrentUser)
	if err != nil {
		return nil, fmt.Errorf("failed to read current user: %w", err)
	}
	return &primary.Settings{AllocationMode: mode, CurrentUser: user}, nil
}

// SetAllocationMode changes the allocation mode. The engine reads the mode on
// every run, so the new mode governs the next allocation.
func (s *SettingsServiceImpl) SetAllocationMode(ctx context.Context, mode, changedBy string) error {
	if !allocation.ValidMode(allocation.Mode(mode)) {
		return fmt.Errorf("unknown allocation mode %q (valid: %q, %q, %q)",
			mode, allocation.ModePriorityFIFO, allocation.ModeFIFO, allocation.ModeManualOnly)
	}
	actor, err := resolveActor(ctx, changedBy, s.settings)
	if err != nil {
		return err
	}
	old, err := s.settings.Get(ctx, secondary.SettingAllocationMode)
	if err != nil {
		return fmt.Errorf("failed to read allocation mode: %w", err)
	}
	if err := s.settings.Set(ctx, secondary.SettingAllocationMode, mode); err != nil {
		return fmt.Errorf("failed to set allocation mode: %w", err)
	}
	return appendAudit(ctx, s.audits, EntitySettings, secondary.SettingAllocationMode, ActionSettingsChange, old, mode, actor)
}

// SetCurrentUser changes the default acting user.
func (s *SettingsServiceImpl) SetCurrentUser(ctx context.Context, user, changedBy string) error {
	if user == "" {
		return fmt.Errorf("user cannot be empty")
	}
	actor, err := resolveActor(ctx, changedBy, s.settings)
	if err != nil {
		return err
	}
	old, err := s.settings.Get(ctx, secondary.SettingCurrentUser)
	if err != nil {
		return fmt.Errorf("failed to read current user: %w", err)
	}
	if err := s.settings.Set(ctx, secondary.SettingCurrentUser, user); err != nil {
		return fmt.Errorf("failed to set current user: %w", err)
	}
	return appendAudit(ctx, s.audits, EntitySettings, secondary.SettingCurrentUser, ActionSettingsChange, old, user, actor)
}

// Ensure SettingsServiceImpl implements the interface
var _ primary.SettingsService = (*SettingsServiceImpl)(nil)
