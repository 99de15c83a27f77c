package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/depot/internal/ports/secondary"
)

// ExceptionRepository implements secondary.ExceptionRepository with SQLite.
type ExceptionRepository struct {
	db *sql.DB
}

// NewExceptionRepository creates a new SQLite exception repository.
func NewExceptionRepository(db *sql.DB) *ExceptionRepository {
	return &ExceptionRepository{db: db}
}

const exceptionColumns = "id, batch_id, part_no, type, description, status, created_date, created_by"

func scanException(scan func(dest ...any) error) (*secondary.ExceptionRecord, error) {
	var partNo, desc sql.NullString
	record := &secondary.ExceptionRecord{}
	err := scan(&record.ID, &record.BatchID, &partNo, &record.Type, &desc,
		&record.Status, &record.CreatedDate, &record.CreatedBy)
	if err != nil {
		return nil, err
	}
	record.PartNo = partNo.String
	record.Description = desc.String
	return record, nil
}

// Create persists a new exception.
func (r *ExceptionRepository) Create(ctx context.Context, rec *secondary.ExceptionRecord) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO exceptions ("+exceptionColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		rec.ID, rec.BatchID, nullable(rec.PartNo), rec.Type, nullable(rec.Description), rec.Status, rec.CreatedDate, rec.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to create exception: %w", err)
	}
	return nil
}

// GetByID retrieves an exception by its ID.
func (r *ExceptionRepository) GetByID(ctx context.Context, id string) (*secondary.ExceptionRecord, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+exceptionColumns+" FROM exceptions WHERE id = ?", id)
	record, err := scanException(row.Scan)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("exception %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get exception: %w", err)
	}
	return record, nil
}

// List retrieves exceptions matching the given filters, newest first.
func (r *ExceptionRepository) List(ctx context.Context, filters secondary.ExceptionFilters) ([]*secondary.ExceptionRecord, error) {
	query := "SELECT " + exceptionColumns + " FROM exceptions WHERE 1=1"
	args := []any{}

	if filters.BatchID != "" {
		query += " AND batch_id = ?"
		args = append(args, filters.BatchID)
	}
	if filters.Status != "" {
		query += " AND status = ?"
		args = append(args, filters.Status)
	}
	if filters.Type != "" {
		query += " AND type = ?"
		args = append(args, filters.Type)
	}
	query += " ORDER BY created_date DESC, id DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list exceptions: %w", err)
	}
	defer rows.Close()

	var exceptions []*secondary.ExceptionRecord
	for rows.Next() {
		record, err := scanException(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan exception: %w", err)
		}
		exceptions = append(exceptions, record)
	}
	return exceptions, rows.Err()
}

// UpdateStatus sets an exception status.
func (r *ExceptionRepository) UpdateStatus(ctx context.Context, id, status string) error {
	result, err := r.db.ExecContext(ctx, "UPDATE exceptions SET status = ? WHERE id = ?", status, id)
	if err != nil {
		return fmt.Errorf("failed to update exception status: %w", err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("exception %s not found", id)
	}
	return nil
}

// ListIDs returns every exception ID.
func (r *ExceptionRepository) ListIDs(ctx context.Context) ([]string, error) {
	return listIDs(ctx, r.db, "exceptions")
}

// Ensure ExceptionRepository implements the interface
var _ secondary.ExceptionRepository = (*ExceptionRepository)(nil)
