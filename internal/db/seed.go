package db

import (
	"database/sql"
	"fmt"
	"time"
)

// SeedFixtures populates the database with development fixtures: two brigades
// of work orders sharing part numbers, so batch creation has demand worth
// aggregating. Batches, allocations, and exceptions start empty.
func SeedFixtures(database *sql.DB) error {
	const (
		b1 = "KAMB - King Abdulaziz Mechanized Brigade"
		b2 = "IMSMB - Imam Muhammad bin Saud Mechanized Brigade"
	)
	today := time.Now()
	daysAgo := func(d int) string {
		return today.AddDate(0, 0, -d).Format("2006-01-02")
	}

	workOrders := []struct {
		id, brigade, workshop string
		ageDays               int
		priority, status      string
	}{
		{"WO-0001", b1, "Workshop Alpha", 30, "Critical", "Waiting Parts"},
		{"WO-0002", b1, "Workshop Alpha", 25, "High", "Waiting Parts"},
		{"WO-0003", b1, "Workshop Bravo", 22, "Normal", "Waiting Parts"},
		{"WO-0004", b1, "Workshop Bravo", 18, "High", "Under Maintenance"},
		{"WO-0005", b1, "Workshop Bravo", 15, "Critical", "Waiting Parts"},
		{"WO-0006", b1, "Workshop Charlie", 10, "Normal", "Waiting Parts"},
		{"WO-0007", b2, "Workshop Alpha", 28, "Critical", "Waiting Parts"},
		{"WO-0008", b2, "Workshop Alpha", 20, "High", "Waiting Parts"},
		{"WO-0009", b2, "Workshop Bravo", 14, "Normal", "Waiting Parts"},
		{"WO-0010", b2, "Workshop Charlie", 7, "High", "Closed"},
	}
	for _, wo := range workOrders {
		if _, err := database.Exec(
			"INSERT INTO work_orders (id, brigade, workshop, created_date, priority, status) VALUES (?, ?, ?, ?, ?, ?)",
			wo.id, wo.brigade, wo.workshop, daysAgo(wo.ageDays), wo.priority, wo.status,
		); err != nil {
			return fmt.Errorf("seed work orders: %w", err)
		}
	}

	partLines := []struct {
		id, workOrderID, partNo, desc string
		required, received            int
	}{
		{"LN-0001", "WO-0001", "PART-001", "Engine Oil Filter", 20, 0},
		{"LN-0002", "WO-0001", "PART-002", "Brake Pad Set", 8, 0},
		{"LN-0003", "WO-0002", "PART-001", "Engine Oil Filter", 15, 0},
		{"LN-0004", "WO-0002", "PART-003", `Hydraulic Hose 1/2"`, 5, 0},
		{"LN-0005", "WO-0003", "PART-001", "Engine Oil Filter", 12, 0},
		{"LN-0006", "WO-0003", "PART-004", "Air Filter Element", 10, 0},
		{"LN-0007", "WO-0004", "PART-002", "Brake Pad Set", 4, 0},
		{"LN-0008", "WO-0005", "PART-001", "Engine Oil Filter", 18, 0},
		{"LN-0009", "WO-0005", "PART-005", "Coolant Tank Cap", 3, 0},
		{"LN-0010", "WO-0006", "PART-003", `Hydraulic Hose 1/2"`, 8, 0},
		{"LN-0011", "WO-0006", "PART-004", "Air Filter Element", 6, 0},
		{"LN-0012", "WO-0007", "PART-001", "Engine Oil Filter", 20, 0},
		{"LN-0013", "WO-0007", "PART-006", "Drive Belt", 4, 0},
		{"LN-0014", "WO-0008", "PART-002", "Brake Pad Set", 8, 0},
		{"LN-0015", "WO-0008", "PART-006", "Drive Belt", 2, 0},
		{"LN-0016", "WO-0009", "PART-001", "Engine Oil Filter", 15, 0},
		{"LN-0017", "WO-0009", "PART-005", "Coolant Tank Cap", 5, 0},
		{"LN-0018", "WO-0010", "PART-004", "Air Filter Element", 8, 8},
	}
	for _, pl := range partLines {
		if _, err := database.Exec(
			"INSERT INTO work_order_lines (id, work_order_id, part_no, description, required_qty, received_qty) VALUES (?, ?, ?, ?, ?, ?)",
			pl.id, pl.workOrderID, pl.partNo, pl.desc, pl.required, pl.received,
		); err != nil {
			return fmt.Errorf("seed part lines: %w", err)
		}
	}

	return nil
}

// IsSeeded reports whether fixtures already exist.
func IsSeeded(database *sql.DB) (bool, error) {
	var count int
	if err := database.QueryRow("SELECT COUNT(*) FROM work_orders").Scan(&count); err != nil {
		return false, fmt.Errorf("failed to count work orders: %w", err)
	}
	return count > 0, nil
}
