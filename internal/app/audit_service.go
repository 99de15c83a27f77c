package app

import (
	"context"
	"fmt"
	"time"

	"github.com/example/depot/internal/ports/primary"
	"github.com/example/depot/internal/ports/secondary"
)

// AuditServiceImpl implements the AuditService interface.
type AuditServiceImpl struct {
	audits secondary.AuditRepository
}

// NewAuditService creates a new AuditService with injected dependencies.
func NewAuditService(audits secondary.AuditRepository) *AuditServiceImpl {
	return &AuditServiceImpl{audits: audits}
}

// ListAuditEntries lists audit entries with optional filters, newest first.
func (s *AuditServiceImpl) ListAuditEntries(ctx context.Context, filters primary.AuditFilters) ([]*primary.AuditEntry, error) {
	records, err := s.audits.List(ctx, secondary.AuditFilters{
		EntityType: filters.EntityType,
		EntityID:   filters.EntityID,
		Action:     filters.Action,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list audit entries: %w", err)
	}
	entries := make([]*primary.AuditEntry, 0, len(records))
	for _, r := range records {
		entries = append(entries, &primary.AuditEntry{
			ID:         r.ID,
			EntityType: r.EntityType,
			EntityID:   r.EntityID,
			Action:     r.Action,
			OldValue:   r.OldValue,
			NewValue:   r.NewValue,
			ChangedBy:  r.ChangedBy,
			Timestamp:  r.Timestamp.Format(time.RFC3339),
		})
	}
	return entries, nil
}

var _ primary.AuditService = (*AuditServiceImpl)(nil)
