package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/depot/internal/core/allocation"
	"github.com/example/depot/internal/core/lifecycle"
	"github.com/example/depot/internal/ports/secondary"
)

// AllocationRepository implements secondary.AllocationRepository with SQLite.
type AllocationRepository struct {
	db *sql.DB
}

// NewAllocationRepository creates a new SQLite allocation repository.
func NewAllocationRepository(db *sql.DB) *AllocationRepository {
	return &AllocationRepository{db: db}
}

const allocationColumns = "id, batch_line_id, work_order_id, line_id, allocated_qty, status, last_updated, notes, responsibility_owner, owner_since"

func scanAllocation(scan func(dest ...any) error) (*secondary.AllocationRecord, error) {
	var (
		notes, owner sql.NullString
		ownerSince   sql.NullTime
	)
	record := &secondary.AllocationRecord{}
	err := scan(&record.ID, &record.BatchLineID, &record.WorkOrderID, &record.LineID,
		&record.AllocatedQty, &record.Status, &record.LastUpdated, &notes, &owner, &ownerSince)
	if err != nil {
		return nil, err
	}
	record.Notes = notes.String
	record.ResponsibilityOwner = owner.String
	if ownerSince.Valid {
		record.OwnerSince = ownerSince.Time
	}
	return record, nil
}

// GetByID retrieves an allocation by its ID.
func (r *AllocationRepository) GetByID(ctx context.Context, id string) (*secondary.AllocationRecord, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+allocationColumns+" FROM allocations WHERE id = ?", id)
	record, err := scanAllocation(row.Scan)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("allocation %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get allocation: %w", err)
	}
	return record, nil
}

// ListByBatchLine retrieves the allocations of one batch line.
func (r *AllocationRepository) ListByBatchLine(ctx context.Context, batchLineID string) ([]*secondary.AllocationRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+allocationColumns+" FROM allocations WHERE batch_line_id = ? ORDER BY id ASC", batchLineID)
	if err != nil {
		return nil, fmt.Errorf("failed to list allocations: %w", err)
	}
	defer rows.Close()

	var allocations []*secondary.AllocationRecord
	for rows.Next() {
		record, err := scanAllocation(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan allocation: %w", err)
		}
		allocations = append(allocations, record)
	}
	return allocations, rows.Err()
}

// ListRows retrieves the engine's working set for one batch line: each
// allocation joined to its work order and part line.
func (r *AllocationRepository) ListRows(ctx context.Context, batchLineID string) ([]*secondary.AllocationRowRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT a.id, a.batch_line_id, a.work_order_id, a.line_id, a.allocated_qty, a.status, a.notes,
		       wo.priority, wo.created_date, l.required_qty
		FROM allocations a
		JOIN work_orders wo ON a.work_order_id = wo.id
		JOIN work_order_lines l ON a.line_id = l.id
		WHERE a.batch_line_id = ?
		ORDER BY a.id ASC`, batchLineID)
	if err != nil {
		return nil, fmt.Errorf("failed to list allocation rows: %w", err)
	}
	defer rows.Close()

	var result []*secondary.AllocationRowRecord
	for rows.Next() {
		var notes sql.NullString
		record := &secondary.AllocationRowRecord{}
		if err := rows.Scan(&record.AllocationID, &record.BatchLineID, &record.WorkOrderID, &record.LineID,
			&record.AllocatedQty, &record.Status, &notes, &record.Priority, &record.WOCreatedDate, &record.RequiredQty); err != nil {
			return nil, fmt.Errorf("failed to scan allocation row: %w", err)
		}
		record.Notes = notes.String
		result = append(result, record)
	}
	return result, rows.Err()
}

// ListIDs returns every allocation ID.
func (r *AllocationRepository) ListIDs(ctx context.Context) ([]string, error) {
	return listIDs(ctx, r.db, "allocations")
}

// SumForBatchLine returns the sum of allocated quantities on a batch line.
func (r *AllocationRepository) SumForBatchLine(ctx context.Context, batchLineID string) (int, error) {
	var sum int
	err := r.db.QueryRowContext(ctx,
		"SELECT COALESCE(SUM(allocated_qty), 0) FROM allocations WHERE batch_line_id = ?",
		batchLineID,
	).Scan(&sum)
	if err != nil {
		return 0, fmt.Errorf("failed to sum allocations: %w", err)
	}
	return sum, nil
}

// SumForLine returns the sum of allocated quantities across every allocation
// referencing a work-order part line.
func (r *AllocationRepository) SumForLine(ctx context.Context, lineID string) (int, error) {
	var sum int
	err := r.db.QueryRowContext(ctx,
		"SELECT COALESCE(SUM(allocated_qty), 0) FROM allocations WHERE line_id = ?",
		lineID,
	).Scan(&sum)
	if err != nil {
		return 0, fmt.Errorf("failed to sum allocations: %w", err)
	}
	return sum, nil
}

// UpdateQty sets an allocation's quantity and refreshes last_updated.
func (r *AllocationRepository) UpdateQty(ctx context.Context, id string, qty int) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE allocations SET allocated_qty = ?, last_updated = CURRENT_TIMESTAMP WHERE id = ?",
		qty, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update allocation: %w", err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("allocation %s not found", id)
	}
	return nil
}

// ApplyOverride writes a manual edit: quantity, status, and notes.
func (r *AllocationRepository) ApplyOverride(ctx context.Context, id string, qty int, status, notes string) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE allocations SET allocated_qty = ?, status = ?, notes = ?, last_updated = CURRENT_TIMESTAMP WHERE id = ?",
		qty, status, nullable(notes), id,
	)
	if err != nil {
		return fmt.Errorf("failed to apply override: %w", err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("allocation %s not found", id)
	}
	return nil
}

// ResetForBatchLine zeroes every allocation on a batch line and resets their
// statuses, clearing manual-override protection.
func (r *AllocationRepository) ResetForBatchLine(ctx context.Context, batchLineID string) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE allocations SET allocated_qty = 0, status = ?, last_updated = CURRENT_TIMESTAMP WHERE batch_line_id = ?",
		allocation.StatusAllocated, batchLineID,
	)
	if err != nil {
		return fmt.Errorf("failed to reset allocations: %w", err)
	}
	return nil
}

// LockedLineIDs returns the part-line IDs currently allocated in a batch
// whose status locks membership.
func (r *AllocationRepository) LockedLineIDs(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT DISTINCT a.line_id
		FROM allocations a
		JOIN batch_lines bl ON a.batch_line_id = bl.id
		JOIN batches b ON bl.batch_id = b.id
		WHERE b.status IN (?, ?, ?, ?)`,
		lifecycle.StatusDraft, lifecycle.StatusSubmitted, lifecycle.StatusUnderProcurement, lifecycle.StatusPartiallyReceived)
	if err != nil {
		return nil, fmt.Errorf("failed to list locked lines: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan locked line: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Ensure AllocationRepository implements the interface
var _ secondary.AllocationRepository = (*AllocationRepository)(nil)
