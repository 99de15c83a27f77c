package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/depot/internal/ports/secondary"
)

// BatchRepository implements secondary.BatchRepository with SQLite.
type BatchRepository struct {
	db *sql.DB
}

// NewBatchRepository creates a new SQLite batch repository.
func NewBatchRepository(db *sql.DB) *BatchRepository {
	return &BatchRepository{db: db}
}

const batchColumns = "id, brigade, created_by, created_date, approval_ref, status, responsibility_owner, owner_since"

func scanBatch(scan func(dest ...any) error) (*secondary.BatchRecord, error) {
	var (
		owner      sql.NullString
		ownerSince sql.NullTime
	)
	record := &secondary.BatchRecord{}
	err := scan(&record.ID, &record.Brigade, &record.CreatedBy, &record.CreatedDate,
		&record.ApprovalRef, &record.Status, &owner, &ownerSince)
	if err != nil {
		return nil, err
	}
	record.ResponsibilityOwner = owner.String
	if ownerSince.Valid {
		record.OwnerSince = ownerSince.Time
	}
	return record, nil
}

// GetByID retrieves a batch by its ID.
func (r *BatchRepository) GetByID(ctx context.Context, id string) (*secondary.BatchRecord, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+batchColumns+" FROM batches WHERE id = ?", id)
	record, err := scanBatch(row.Scan)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("batch %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get batch: %w", err)
	}
	return record, nil
}

// List retrieves batches matching the given filters, newest first.
func (r *BatchRepository) List(ctx context.Context, filters secondary.BatchFilters) ([]*secondary.BatchRecord, error) {
	query := "SELECT " + batchColumns + " FROM batches WHERE 1=1"
	args := []any{}

	if filters.Brigade != "" {
		query += " AND brigade = ?"
		args = append(args, filters.Brigade)
	}
	if filters.Status != "" {
		query += " AND status = ?"
		args = append(args, filters.Status)
	}
	query += " ORDER BY created_date DESC, id DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list batches: %w", err)
	}
	defer rows.Close()

	var batches []*secondary.BatchRecord
	for rows.Next() {
		record, err := scanBatch(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan batch: %w", err)
		}
		batches = append(batches, record)
	}
	return batches, rows.Err()
}

// ListIDs returns every batch ID.
func (r *BatchRepository) ListIDs(ctx context.Context) ([]string, error) {
	return listIDs(ctx, r.db, "batches")
}

// UpdateStatus sets a batch status.
func (r *BatchRepository) UpdateStatus(ctx context.Context, id, status string) error {
	result, err := r.db.ExecContext(ctx, "UPDATE batches SET status = ? WHERE id = ?", status, id)
	if err != nil {
		return fmt.Errorf("failed to update batch status: %w", err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("batch %s not found", id)
	}
	return nil
}

// CreateGraph atomically persists a batch, its lines, its zero-valued
// allocations, and the creation audit entry. A failure anywhere rolls the
// whole graph back.
func (r *BatchRepository) CreateGraph(ctx context.Context, batch *secondary.BatchRecord, lines []*secondary.BatchLineRecord, allocs []*secondary.AllocationRecord, audit *secondary.AuditRecord) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var owner sql.NullString
	if batch.ResponsibilityOwner != "" {
		owner = sql.NullString{String: batch.ResponsibilityOwner, Valid: true}
	}
	var ownerSince sql.NullTime
	if !batch.OwnerSince.IsZero() {
		ownerSince = sql.NullTime{Time: batch.OwnerSince, Valid: true}
	}
	if _, err := tx.ExecContext(ctx,
		"INSERT INTO batches ("+batchColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		batch.ID, batch.Brigade, batch.CreatedBy, batch.CreatedDate, batch.ApprovalRef, batch.Status, owner, ownerSince,
	); err != nil {
		return fmt.Errorf("failed to create batch: %w", err)
	}

	for _, line := range lines {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO batch_lines (id, batch_id, part_no, description, total_required_qty, ordered_qty, received_qty) VALUES (?, ?, ?, ?, ?, 0, 0)",
			line.ID, line.BatchID, line.PartNo, nullable(line.Description), line.TotalRequiredQty,
		); err != nil {
			return fmt.Errorf("failed to create batch line %s: %w", line.ID, err)
		}
	}

	for _, a := range allocs {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO allocations (id, batch_line_id, work_order_id, line_id, allocated_qty, status, last_updated) VALUES (?, ?, ?, ?, ?, ?, ?)",
			a.ID, a.BatchLineID, a.WorkOrderID, a.LineID, a.AllocatedQty, a.Status, a.LastUpdated,
		); err != nil {
			return fmt.Errorf("failed to create allocation %s: %w", a.ID, err)
		}
	}

	if _, err := tx.ExecContext(ctx,
		"INSERT INTO audit_log (id, entity_type, entity_id, action, old_value, new_value, changed_by, timestamp) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		audit.ID, audit.EntityType, audit.EntityID, audit.Action, nullable(audit.OldValue), nullable(audit.NewValue), audit.ChangedBy, audit.Timestamp,
	); err != nil {
		return fmt.Errorf("failed to create audit entry: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit batch graph: %w", err)
	}
	return nil
}

// Ensure BatchRepository implements the interface
var _ secondary.BatchRepository = (*BatchRepository)(nil)
