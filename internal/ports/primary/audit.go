package primary

import "context"

// AuditService defines the read-only port over the audit log.
type AuditService interface {
	// ListAuditEntries lists audit entries with optional filters, newest
	// first.
	ListAuditEntries(ctx context.Context, filters AuditFilters) ([]*AuditEntry, error)
}

// AuditEntry represents one audit-log row at the port boundary.
type AuditEntry struct {
	ID         string
	EntityType string
	EntityID   string
	Action     string
	OldValue   string
	NewValue   string
	ChangedBy  string
	Timestamp  string
}

// AuditFilters contains filter options for listing audit entries.
type AuditFilters struct {
	EntityType string
	EntityID   string
	Action     string
}
