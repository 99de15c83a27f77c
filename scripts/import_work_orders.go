// +build ignore

// One-off importer for work orders exported from the legacy maintenance
// sheet. Reads a CSV with the columns
//
//	wo_id,brigade,workshop,priority,created_date,line_id,part_no,description,required_qty
//
// where consecutive rows sharing wo_id contribute part lines to the same
// work order. Run with: go run scripts/import_work_orders.go -csv export.csv
package main

import (
	"database/sql"
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	_ "github.com/mattn/go-sqlite3"
)

type row struct {
	WOID        string
	Brigade     string
	Workshop    string
	Priority    string
	CreatedDate string
	LineID      string
	PartNo      string
	Description string
	RequiredQty int
}

func main() {
	csvPath := flag.String("csv", "", "Path to the exported CSV")
	dryRun := flag.Bool("dry-run", false, "Preview import without executing")
	flag.Parse()

	if *csvPath == "" {
		fmt.Fprintln(os.Stderr, "Usage: go run scripts/import_work_orders.go -csv export.csv")
		os.Exit(1)
	}

	rows, err := readRows(*csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading CSV: %v\n", err)
		os.Exit(1)
	}
	if len(rows) == 0 {
		fmt.Println("No rows found to import")
		return
	}

	fmt.Printf("Found %d row(s) to import:\n\n", len(rows))
	for _, r := range rows {
		fmt.Printf("  %s %s: %s x%d (%s)\n", r.WOID, r.LineID, r.PartNo, r.RequiredQty, r.Priority)
	}

	if *dryRun {
		fmt.Println("\n=== DRY RUN - No changes made ===")
		return
	}

	dbPath := os.Getenv("DEPOT_DB")
	if dbPath == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error getting home dir: %v\n", err)
			os.Exit(1)
		}
		dbPath = filepath.Join(homeDir, ".depot", "depot.db")
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	fmt.Println("\n=== Executing import ===")
	imported := 0
	for _, r := range rows {
		if err := importRow(db, r); err != nil {
			fmt.Fprintf(os.Stderr, "Error importing %s: %v\n", r.LineID, err)
			continue
		}
		imported++
	}
	fmt.Printf("\n=== Import complete: %d/%d rows imported ===\n", imported, len(rows))
}

func readRows(path string) ([]row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	var rows []row
	first := true
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if first {
			first = false
			if record[0] == "wo_id" {
				continue // header
			}
		}
		if len(record) != 9 {
			return nil, fmt.Errorf("expected 9 columns, got %d", len(record))
		}
		qty, err := strconv.Atoi(record[8])
		if err != nil {
			return nil, fmt.Errorf("bad required_qty %q: %w", record[8], err)
		}
		rows = append(rows, row{
			WOID:        record[0],
			Brigade:     record[1],
			Workshop:    record[2],
			Priority:    record[3],
			CreatedDate: record[4],
			LineID:      record[5],
			PartNo:      record[6],
			Description: record[7],
			RequiredQty: qty,
		})
	}
	return rows, nil
}

func importRow(db *sql.DB, r row) error {
	_, err := db.Exec(`
		INSERT OR IGNORE INTO work_orders (id, brigade, workshop, created_date, priority, status)
		VALUES (?, ?, ?, ?, ?, 'Waiting Parts')`,
		r.WOID, r.Brigade, r.Workshop, r.CreatedDate, r.Priority)
	if err != nil {
		return fmt.Errorf("insert work order: %w", err)
	}
	_, err = db.Exec(`
		INSERT INTO work_order_lines (id, work_order_id, part_no, description, required_qty, received_qty)
		VALUES (?, ?, ?, ?, ?, 0)`,
		r.LineID, r.WOID, r.PartNo, r.Description, r.RequiredQty)
	if err != nil {
		return fmt.Errorf("insert part line: %w", err)
	}
	return nil
}
