// Package sqlite contains SQLite implementations of repository interfaces.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/example/depot/internal/ports/secondary"
)

// WorkOrderRepository implements secondary.WorkOrderRepository with SQLite.
type WorkOrderRepository struct {
	db *sql.DB
}

// NewWorkOrderRepository creates a new SQLite work-order repository.
func NewWorkOrderRepository(db *sql.DB) *WorkOrderRepository {
	return &WorkOrderRepository{db: db}
}

const workOrderColumns = "id, brigade, workshop, created_date, priority, status"

// GetByID retrieves a work order by its ID.
func (r *WorkOrderRepository) GetByID(ctx context.Context, id string) (*secondary.WorkOrderRecord, error) {
	record := &secondary.WorkOrderRecord{}
	err := r.db.QueryRowContext(ctx,
		"SELECT "+workOrderColumns+" FROM work_orders WHERE id = ?", id,
	).Scan(&record.ID, &record.Brigade, &record.Workshop, &record.CreatedDate, &record.Priority, &record.Status)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("work order %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get work order: %w", err)
	}
	return record, nil
}

// List retrieves work orders matching the given filters, oldest first.
func (r *WorkOrderRepository) List(ctx context.Context, filters secondary.WorkOrderFilters) ([]*secondary.WorkOrderRecord, error) {
	query := "SELECT " + workOrderColumns + " FROM work_orders WHERE 1=1"
	args := []any{}

	if filters.Brigade != "" {
		query += " AND brigade = ?"
		args = append(args, filters.Brigade)
	}
	if filters.Workshop != "" {
		query += " AND workshop = ?"
		args = append(args, filters.Workshop)
	}
	if filters.Status != "" {
		query += " AND status = ?"
		args = append(args, filters.Status)
	}
	if filters.Priority != "" {
		query += " AND priority = ?"
		args = append(args, filters.Priority)
	}
	query += " ORDER BY created_date ASC, id ASC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list work orders: %w", err)
	}
	defer rows.Close()

	var workOrders []*secondary.WorkOrderRecord
	for rows.Next() {
		record := &secondary.WorkOrderRecord{}
		if err := rows.Scan(&record.ID, &record.Brigade, &record.Workshop, &record.CreatedDate, &record.Priority, &record.Status); err != nil {
			return nil, fmt.Errorf("failed to scan work order: %w", err)
		}
		workOrders = append(workOrders, record)
	}
	return workOrders, rows.Err()
}

// GetPartLine retrieves a single part line by ID.
func (r *WorkOrderRepository) GetPartLine(ctx context.Context, lineID string) (*secondary.PartLineRecord, error) {
	var desc sql.NullString
	record := &secondary.PartLineRecord{}
	err := r.db.QueryRowContext(ctx,
		"SELECT id, work_order_id, part_no, description, required_qty, received_qty FROM work_order_lines WHERE id = ?",
		lineID,
	).Scan(&record.ID, &record.WorkOrderID, &record.PartNo, &desc, &record.RequiredQty, &record.ReceivedQty)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("part line %s not found", lineID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get part line: %w", err)
	}
	record.Description = desc.String
	return record, nil
}

// ListPartLines retrieves the part lines of the given work orders.
// A nil or empty slice lists every part line.
func (r *WorkOrderRepository) ListPartLines(ctx context.Context, workOrderIDs []string) ([]*secondary.PartLineRecord, error) {
	query := "SELECT id, work_order_id, part_no, description, required_qty, received_qty FROM work_order_lines"
	args := []any{}

	if len(workOrderIDs) > 0 {
		placeholders := strings.Repeat("?, ", len(workOrderIDs))
		query += " WHERE work_order_id IN (" + placeholders[:len(placeholders)-2] + ")"
		for _, id := range workOrderIDs {
			args = append(args, id)
		}
	}
	query += " ORDER BY id ASC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list part lines: %w", err)
	}
	defer rows.Close()

	var lines []*secondary.PartLineRecord
	for rows.Next() {
		var desc sql.NullString
		record := &secondary.PartLineRecord{}
		if err := rows.Scan(&record.ID, &record.WorkOrderID, &record.PartNo, &desc, &record.RequiredQty, &record.ReceivedQty); err != nil {
			return nil, fmt.Errorf("failed to scan part line: %w", err)
		}
		record.Description = desc.String
		lines = append(lines, record)
	}
	return lines, rows.Err()
}

// SetPartLineReceived writes a recomputed received quantity for a line.
func (r *WorkOrderRepository) SetPartLineReceived(ctx context.Context, lineID string, receivedQty int) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE work_order_lines SET received_qty = ? WHERE id = ?",
		receivedQty, lineID,
	)
	if err != nil {
		return fmt.Errorf("failed to update part line: %w", err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("part line %s not found", lineID)
	}
	return nil
}

// Ensure WorkOrderRepository implements the interface
var _ secondary.WorkOrderRepository = (*WorkOrderRepository)(nil)
