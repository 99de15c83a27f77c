package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/depot/internal/ports/secondary"
)

// AuditRepository implements secondary.AuditRepository with SQLite.
// The audit trail is append-only; there is no update or delete.
type AuditRepository struct {
	db *sql.DB
}

// NewAuditRepository creates a new SQLite audit repository.
func NewAuditRepository(db *sql.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

// Append persists a new audit entry.
func (r *AuditRepository) Append(ctx context.Context, rec *secondary.AuditRecord) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO audit_log (id, entity_type, entity_id, action, old_value, new_value, changed_by, timestamp) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		rec.ID, rec.EntityType, rec.EntityID, rec.Action, nullable(rec.OldValue), nullable(rec.NewValue), rec.ChangedBy, rec.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("failed to append audit entry: %w", err)
	}
	return nil
}

// List retrieves audit entries matching the given filters, newest first.
func (r *AuditRepository) List(ctx context.Context, filters secondary.AuditFilters) ([]*secondary.AuditRecord, error) {
	query := "SELECT id, entity_type, entity_id, action, old_value, new_value, changed_by, timestamp FROM audit_log WHERE 1=1"
	args := []any{}

	if filters.EntityType != "" {
		query += " AND entity_type = ?"
		args = append(args, filters.EntityType)
	}
	if filters.EntityID != "" {
		query += " AND entity_id = ?"
		args = append(args, filters.EntityID)
	}
	if filters.Action != "" {
		query += " AND action = ?"
		args = append(args, filters.Action)
	}
	query += " ORDER BY timestamp DESC, id DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit entries: %w", err)
	}
	defer rows.Close()

	var entries []*secondary.AuditRecord
	for rows.Next() {
		var oldValue, newValue sql.NullString
		record := &secondary.AuditRecord{}
		if err := rows.Scan(&record.ID, &record.EntityType, &record.EntityID, &record.Action,
			&oldValue, &newValue, &record.ChangedBy, &record.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan audit entry: %w", err)
		}
		record.OldValue = oldValue.String
		record.NewValue = newValue.String
		entries = append(entries, record)
	}
	return entries, rows.Err()
}

// ListIDs returns every audit entry ID.
func (r *AuditRepository) ListIDs(ctx context.Context) ([]string, error) {
	return listIDs(ctx, r.db, "audit_log")
}

// Ensure AuditRepository implements the interface
var _ secondary.AuditRepository = (*AuditRepository)(nil)
