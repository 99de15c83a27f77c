package sqlite_test

import (
	"database/sql"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/example/depot/internal/db"
	"github.com/example/depot/internal/ports/secondary"
)

// setupTestDB opens an in-memory database with the authoritative schema, so
// repository code that drifts from the schema fails loudly here.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	database, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	if _, err := database.Exec("PRAGMA foreign_keys = ON"); err != nil {
		t.Fatalf("failed to enable foreign keys: %v", err)
	}
	if _, err := database.Exec(db.GetSchemaSQL()); err != nil {
		t.Fatalf("failed to install schema: %v", err)
	}

	t.Cleanup(func() {
		database.Close()
	})
	return database
}

func seedWorkOrder(t *testing.T, database *sql.DB, id, brigade, priority string, created time.Time) {
	t.Helper()
	_, err := database.Exec(
		"INSERT INTO work_orders (id, brigade, workshop, created_date, priority, status) VALUES (?, ?, 'Workshop Alpha', ?, ?, 'Waiting Parts')",
		id, brigade, created, priority,
	)
	if err != nil {
		t.Fatalf("failed to seed work order: %v", err)
	}
}

func seedPartLine(t *testing.T, database *sql.DB, id, workOrderID, partNo string, required, received int) {
	t.Helper()
	_, err := database.Exec(
		"INSERT INTO work_order_lines (id, work_order_id, part_no, description, required_qty, received_qty) VALUES (?, ?, ?, 'test part', ?, ?)",
		id, workOrderID, partNo, required, received,
	)
	if err != nil {
		t.Fatalf("failed to seed part line: %v", err)
	}
}

func seedBatch(t *testing.T, database *sql.DB, id, brigade, status string) {
	t.Helper()
	_, err := database.Exec(
		"INSERT INTO batches (id, brigade, created_by, created_date, approval_ref, status) VALUES (?, ?, 'tester', ?, 'APR-1', ?)",
		id, brigade, time.Now(), status,
	)
	if err != nil {
		t.Fatalf("failed to seed batch: %v", err)
	}
}

func seedBatchLine(t *testing.T, database *sql.DB, id, batchID, partNo string, totalRequired, received int) {
	t.Helper()
	_, err := database.Exec(
		"INSERT INTO batch_lines (id, batch_id, part_no, description, total_required_qty, received_qty) VALUES (?, ?, ?, 'test part', ?, ?)",
		id, batchID, partNo, totalRequired, received,
	)
	if err != nil {
		t.Fatalf("failed to seed batch line: %v", err)
	}
}

func seedAllocation(t *testing.T, database *sql.DB, id, batchLineID, workOrderID, lineID string, qty int, status string) {
	t.Helper()
	_, err := database.Exec(
		"INSERT INTO allocations (id, batch_line_id, work_order_id, line_id, allocated_qty, status, last_updated) VALUES (?, ?, ?, ?, ?, ?, ?)",
		id, batchLineID, workOrderID, lineID, qty, status, time.Now(),
	)
	if err != nil {
		t.Fatalf("failed to seed allocation: %v", err)
	}
}

func seedAudit(t *testing.T, database *sql.DB, rec *secondary.AuditRecord) {
	t.Helper()
	_, err := database.Exec(
		"INSERT INTO audit_log (id, entity_type, entity_id, action, old_value, new_value, changed_by, timestamp) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		rec.ID, rec.EntityType, rec.EntityID, rec.Action, rec.OldValue, rec.NewValue, rec.ChangedBy, rec.Timestamp,
	)
	if err != nil {
		t.Fatalf("failed to seed audit entry: %v", err)
	}
}
