package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/depot/internal/ports/secondary"
)

// BatchLineRepository implements secondary.BatchLineRepository with SQLite.
type BatchLineRepository struct {
	db *sql.DB
}

// NewBatchLineRepository creates a new SQLite batch-line repository.
func NewBatchLineRepository(db *sql.DB) *BatchLineRepository {
	return &BatchLineRepository{db: db}
}

const batchLineColumns = "id, batch_id, part_no, description, total_required_qty, vendor, po_numbers, ordered_qty, received_qty, expected_delivery"

func scanBatchLine(scan func(dest ...any) error) (*secondary.BatchLineRecord, error) {
	var desc, vendor, poNumbers, expected sql.NullString
	record := &secondary.BatchLineRecord{}
	err := scan(&record.ID, &record.BatchID, &record.PartNo, &desc, &record.TotalRequiredQty,
		&vendor, &poNumbers, &record.OrderedQty, &record.ReceivedQty, &expected)
	if err != nil {
		return nil, err
	}
	record.Description = desc.String
	record.Vendor = vendor.String
	record.PONumbers = poNumbers.String
	record.ExpectedDelivery = expected.String
	return record, nil
}

// GetByID retrieves a batch line by its ID.
func (r *BatchLineRepository) GetByID(ctx context.Context, id string) (*secondary.BatchLineRecord, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+batchLineColumns+" FROM batch_lines WHERE id = ?", id)
	record, err := scanBatchLine(row.Scan)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("batch line %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get batch line: %w", err)
	}
	return record, nil
}

// ListByBatch retrieves the lines of one batch, ordered by part number.
func (r *BatchLineRepository) ListByBatch(ctx context.Context, batchID string) ([]*secondary.BatchLineRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+batchLineColumns+" FROM batch_lines WHERE batch_id = ? ORDER BY part_no ASC", batchID)
	if err != nil {
		return nil, fmt.Errorf("failed to list batch lines: %w", err)
	}
	defer rows.Close()

	var lines []*secondary.BatchLineRecord
	for rows.Next() {
		record, err := scanBatchLine(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan batch line: %w", err)
		}
		lines = append(lines, record)
	}
	return lines, rows.Err()
}

// ListIDs returns every batch line ID.
func (r *BatchLineRepository) ListIDs(ctx context.Context) ([]string, error) {
	return listIDs(ctx, r.db, "batch_lines")
}

// UpdateProcurement writes the procurement-tracking fields of a line.
func (r *BatchLineRepository) UpdateProcurement(ctx context.Context, rec *secondary.BatchLineRecord) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE batch_lines SET vendor = ?, po_numbers = ?, ordered_qty = ?, received_qty = ?, expected_delivery = ? WHERE id = ?",
		nullable(rec.Vendor), nullable(rec.PONumbers), rec.OrderedQty, rec.ReceivedQty, nullable(rec.ExpectedDelivery), rec.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update batch line: %w", err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("batch line %s not found", rec.ID)
	}
	return nil
}

// Ensure BatchLineRepository implements the interface
var _ secondary.BatchLineRepository = (*BatchLineRepository)(nil)
