package db

// SchemaSQL is the complete schema for fresh depot installs.
//
// This is the single source of truth for the database layout. Repository
// tests build their databases from GetSchemaSQL(), so a repository that
// references a column missing here fails immediately with "no such column"
// instead of drifting silently. Keep it in sync with the migrations list
// when the schema changes.
const SchemaSQL = `
-- Work orders (reference data, populated by the maintenance system)
CREATE TABLE IF NOT EXISTS work_orders (
	id TEXT PRIMARY KEY,
	brigade TEXT NOT NULL,
	workshop TEXT NOT NULL,
	created_date DATETIME NOT NULL,
	priority TEXT NOT NULL CHECK(priority IN ('Critical', 'High', 'Normal')),
	status TEXT NOT NULL
);

-- Work-order part lines (one row per part demand)
CREATE TABLE IF NOT EXISTS work_order_lines (
	id TEXT PRIMARY KEY,
	work_order_id TEXT NOT NULL,
	part_no TEXT NOT NULL,
	description TEXT,
	required_qty INTEGER NOT NULL CHECK(required_qty >= 0),
	received_qty INTEGER NOT NULL DEFAULT 0,
	FOREIGN KEY (work_order_id) REFERENCES work_orders(id)
);

-- Procurement batches (one brigade per batch)
CREATE TABLE IF NOT EXISTS batches (
	id TEXT PRIMARY KEY,
	brigade TEXT NOT NULL,
	created_by TEXT NOT NULL,
	created_date DATETIME NOT NULL,
	approval_ref TEXT NOT NULL,
	status TEXT NOT NULL CHECK(status IN ('Draft', 'Subm to Procurement', 'Under Procurement', 'Partially Received', 'Fully Received', 'Closed')) DEFAULT 'Draft',
	responsibility_owner TEXT,
	owner_since DATETIME
);

-- Batch lines (one row per part number, demand aggregated across work orders)
CREATE TABLE IF NOT EXISTS batch_lines (
	id TEXT PRIMARY KEY,
	batch_id TEXT NOT NULL,
	part_no TEXT NOT NULL,
	description TEXT,
	total_required_qty INTEGER NOT NULL CHECK(total_required_qty >= 0),
	vendor TEXT,
	po_numbers TEXT,
	ordered_qty INTEGER NOT NULL DEFAULT 0,
	received_qty INTEGER NOT NULL DEFAULT 0,
	expected_delivery TEXT,
	FOREIGN KEY (batch_id) REFERENCES batches(id)
);

-- Allocations (received quantity earmarked per work-order part line)
CREATE TABLE IF NOT EXISTS allocations (
	id TEXT PRIMARY KEY,
	batch_line_id TEXT NOT NULL,
	work_order_id TEXT NOT NULL,
	line_id TEXT NOT NULL,
	allocated_qty INTEGER NOT NULL DEFAULT 0 CHECK(allocated_qty >= 0),
	status TEXT NOT NULL CHECK(status IN ('Allocated', 'ManualOverride', 'Packed', 'Collected', 'DeliveredConfirmed')) DEFAULT 'Allocated',
	last_updated DATETIME DEFAULT CURRENT_TIMESTAMP,
	notes TEXT,
	responsibility_owner TEXT,
	owner_since DATETIME,
	FOREIGN KEY (batch_line_id) REFERENCES batch_lines(id),
	FOREIGN KEY (work_order_id) REFERENCES work_orders(id),
	FOREIGN KEY (line_id) REFERENCES work_order_lines(id)
);

-- Audit log (append-only)
CREATE TABLE IF NOT EXISTS audit_log (
	id TEXT PRIMARY KEY,
	entity_type TEXT NOT NULL,
	entity_id TEXT NOT NULL,
	action TEXT NOT NULL,
	old_value TEXT,
	new_value TEXT,
	changed_by TEXT NOT NULL,
	timestamp DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Procurement exceptions
CREATE TABLE IF NOT EXISTS exceptions (
	id TEXT PRIMARY KEY,
	batch_id TEXT NOT NULL,
	part_no TEXT,
	type TEXT NOT NULL CHECK(type IN ('Obsolete', 'Cancelled', 'Rebatch', 'VendorRejected', 'MilitaryDelay')),
	description TEXT,
	status TEXT NOT NULL CHECK(status IN ('Open', 'Closed')) DEFAULT 'Open',
	created_date DATETIME NOT NULL,
	created_by TEXT NOT NULL,
	FOREIGN KEY (batch_id) REFERENCES batches(id)
);

-- Process-wide settings
CREATE TABLE IF NOT EXISTS app_settings (
	key TEXT PRIMARY KEY,
	value TEXT NOT NULL
);

INSERT OR IGNORE INTO app_settings (key, value) VALUES ('allocation_mode', 'Priority First then FIFO');
INSERT OR IGNORE INTO app_settings (key, value) VALUES ('current_user', 'system');

CREATE INDEX IF NOT EXISTS idx_work_order_lines_wo ON work_order_lines(work_order_id);
CREATE INDEX IF NOT EXISTS idx_batch_lines_batch ON batch_lines(batch_id);
CREATE INDEX IF NOT EXISTS idx_allocations_batch_line ON allocations(batch_line_id);
CREATE INDEX IF NOT EXISTS idx_allocations_line ON allocations(line_id);
CREATE INDEX IF NOT EXISTS idx_audit_entity ON audit_log(entity_type, entity_id);
CREATE INDEX IF NOT EXISTS idx_exceptions_batch ON exceptions(batch_id);
`

// InitSchema installs the schema on a fresh database and brings older
// databases up to date.
func InitSchema() error {
	database, err := GetDB()
	if err != nil {
		return err
	}
	if _, err := database.Exec(SchemaSQL); err != nil {
		return err
	}
	return RunMigrations(database)
}

// GetSchemaSQL returns the authoritative schema SQL.
// Tests use this to create their schema, ensuring tests always
// run against the same schema as production.
func GetSchemaSQL() string {
	return SchemaSQL
}
