// Package secondary defines the record-store boundary: repository interfaces
// and the records they exchange. The core is written entirely against these
// interfaces; the physical representation is an adapter concern.
package secondary

import (
	"context"
	"time"
)

// ============================================================================
// Work orders (read-mostly reference data, populated externally)
// ============================================================================

// WorkOrderRecord represents a maintenance work order at the persistence
// boundary. Work orders are created outside the core and never mutated by it.
type WorkOrderRecord struct {
	ID          string
	Brigade     string
	Workshop    string
	CreatedDate time.Time
	Priority    string // Critical, High, Normal
	Status      string
}

// WorkOrderFilters contains filter options for listing work orders.
type WorkOrderFilters struct {
	Brigade  string
	Workshop string
	Status   string
	Priority string
}

// PartLineRecord represents one part demand of a work order. ReceivedQty is
// derived from allocations once any exist; the core writes it only through
// SetPartLineReceived.
type PartLineRecord struct {
	ID          string
	WorkOrderID string
	PartNo      string
	Description string
	RequiredQty int
	ReceivedQty int
}

// WorkOrderRepository provides access to the work-order catalogue and its
// part lines.
type WorkOrderRepository interface {
	// GetByID retrieves a work order by ID.
	GetByID(ctx context.Context, id string) (*WorkOrderRecord, error)

	// List retrieves work orders matching the given filters.
	List(ctx context.Context, filters WorkOrderFilters) ([]*WorkOrderRecord, error)

	// GetPartLine retrieves a single part line by ID.
	GetPartLine(ctx context.Context, lineID string) (*PartLineRecord, error)

	// ListPartLines retrieves the part lines of the given work orders.
	// A nil or empty slice lists every part line.
	ListPartLines(ctx context.Context, workOrderIDs []string) ([]*PartLineRecord, error)

	// SetPartLineReceived writes a recomputed received quantity for a line.
	SetPartLineReceived(ctx context.Context, lineID string, receivedQty int) error
}

// ============================================================================
// Batches and batch lines
// ============================================================================

// BatchRecord represents a brigade-scoped procurement batch.
type BatchRecord struct {
	ID                  string
	Brigade             string
	CreatedBy           string
	CreatedDate         time.Time
	ApprovalRef         string
	Status              string
	ResponsibilityOwner string
	OwnerSince          time.Time
}

// BatchFilters contains filter options for listing batches.
type BatchFilters struct {
	Brigade string
	Status  string
}

// BatchLineRecord represents one part number within a batch.
// TotalRequiredQty is fixed at creation; ExpectedDelivery is an optional
// ISO date string.
type BatchLineRecord struct {
	ID               string
	BatchID          string
	PartNo           string
	Description      string
	TotalRequiredQty int
	Vendor           string
	PONumbers        string
	OrderedQty       int
	ReceivedQty      int
	ExpectedDelivery string
}

// BatchRepository provides access to batches. CreateGraph persists a batch
// with its lines, allocation stubs, and creation audit entry as one atomic
// unit: a failure leaves nothing behind.
type BatchRepository interface {
	// GetByID retrieves a batch by ID.
	GetByID(ctx context.Context, id string) (*BatchRecord, error)

	// List retrieves batches matching the given filters.
	List(ctx context.Context, filters BatchFilters) ([]*BatchRecord, error)

	// ListIDs returns every batch ID, for identifier minting.
	ListIDs(ctx context.Context) ([]string, error)

	// UpdateStatus sets a batch status.
	UpdateStatus(ctx context.Context, id, status string) error

	// CreateGraph atomically persists a batch, its lines, its zero-valued
	// allocations, and the creation audit entry.
	CreateGraph(ctx context.Context, batch *BatchRecord, lines []*BatchLineRecord, allocs []*AllocationRecord, audit *AuditRecord) error
}

// BatchLineRepository provides access to batch lines.
type BatchLineRepository interface {
	// GetByID retrieves a batch line by ID.
	GetByID(ctx context.Context, id string) (*BatchLineRecord, error)

	// ListByBatch retrieves the lines of one batch.
	ListByBatch(ctx context.Context, batchID string) ([]*BatchLineRecord, error)

	// ListIDs returns every batch line ID, for identifier minting.
	ListIDs(ctx context.Context) ([]string, error)

	// UpdateProcurement writes the procurement-tracking fields of a line:
	// vendor, PO numbers, ordered and received quantities, expected delivery.
	UpdateProcurement(ctx context.Context, rec *BatchLineRecord) error
}

// ============================================================================
// Allocations
// ============================================================================

// AllocationRecord represents the portion of a batch line's received quantity
// earmarked for one work-order part line.
type AllocationRecord struct {
	ID                  string
	BatchLineID         string
	WorkOrderID         string
	LineID              string
	AllocatedQty        int
	Status              string
	LastUpdated         time.Time
	Notes               string
	ResponsibilityOwner string
	OwnerSince          time.Time
}

// AllocationRowRecord is an allocation joined to its work order (priority,
// creation date) and part line (required quantity), the engine's working set.
type AllocationRowRecord struct {
	AllocationID  string
	BatchLineID   string
	WorkOrderID   string
	LineID        string
	AllocatedQty  int
	Status        string
	Notes         string
	Priority      string
	WOCreatedDate time.Time
	RequiredQty   int
}

// AllocationRepository provides access to allocations. Allocations are
// created in bulk at batch creation and never deleted.
type AllocationRepository interface {
	// GetByID retrieves an allocation by ID.
	GetByID(ctx context.Context, id string) (*AllocationRecord, error)

	// ListByBatchLine retrieves the allocations of one batch line.
	ListByBatchLine(ctx context.Context, batchLineID string) ([]*AllocationRecord, error)

	// ListRows retrieves the engine's joined working set for one batch line.
	ListRows(ctx context.Context, batchLineID string) ([]*AllocationRowRecord, error)

	// ListIDs returns every allocation ID, for identifier minting.
	ListIDs(ctx context.Context) ([]string, error)

	// SumForBatchLine returns the sum of allocated quantities on a batch line.
	SumForBatchLine(ctx context.Context, batchLineID string) (int, error)

	// SumForLine returns the sum of allocated quantities across every
	// allocation referencing a work-order part line, over all batch lines.
	SumForLine(ctx context.Context, lineID string) (int, error)

	// UpdateQty sets an allocation's quantity and refreshes last_updated.
	UpdateQty(ctx context.Context, id string, qty int) error

	// ApplyOverride writes a manual edit: quantity, status, and notes.
	ApplyOverride(ctx context.Context, id string, qty int, status, notes string) error

	// ResetForBatchLine zeroes every allocation on a batch line and resets
	// their statuses to Allocated, clearing manual-override protection.
	ResetForBatchLine(ctx context.Context, batchLineID string) error

	// LockedLineIDs returns the part-line IDs currently allocated in a batch
	// whose status locks membership (Draft through Partially Received).
	LockedLineIDs(ctx context.Context) ([]string, error)
}

// ============================================================================
// Audit trail
// ============================================================================

// AuditRecord is one immutable change record. Old and new values are
// truncated by the service layer before they reach the store.
type AuditRecord struct {
	ID         string
	EntityType string
	EntityID   string
	Action     string
	OldValue   string
	NewValue   string
	ChangedBy  string
	Timestamp  time.Time
}

// AuditFilters contains filter options for listing audit entries.
type AuditFilters struct {
	EntityType string
	EntityID   string
	Action     string
}

// AuditRepository provides append-only access to the audit trail.
type AuditRepository interface {
	// Append persists a new audit entry.
	Append(ctx context.Context, rec *AuditRecord) error

	// List retrieves audit entries matching the given filters, newest first.
	List(ctx context.Context, filters AuditFilters) ([]*AuditRecord, error)

	// ListIDs returns every audit entry ID, for identifier minting.
	ListIDs(ctx context.Context) ([]string, error)
}

// ============================================================================
// Exceptions
// ============================================================================

// ExceptionRecord represents a procurement exception raised against a batch.
type ExceptionRecord struct {
	ID          string
	BatchID     string
	PartNo      string
	Type        string
	Description string
	Status      string // Open, Closed
	CreatedDate time.Time
	CreatedBy   string
}

// ExceptionFilters contains filter options for listing exceptions.
type ExceptionFilters struct {
	BatchID string
	Status  string
	Type    string
}

// ExceptionRepository provides access to procurement exceptions.
type ExceptionRepository interface {
	// Create persists a new exception.
	Create(ctx context.Context, rec *ExceptionRecord) error

	// GetByID retrieves an exception by ID.
	GetByID(ctx context.Context, id string) (*ExceptionRecord, error)

	// List retrieves exceptions matching the given filters.
	List(ctx context.Context, filters ExceptionFilters) ([]*ExceptionRecord, error)

	// UpdateStatus sets an exception status.
	UpdateStatus(ctx context.Context, id, status string) error

	// ListIDs returns every exception ID, for identifier minting.
	ListIDs(ctx context.Context) ([]string, error)
}

// ============================================================================
// Settings
// ============================================================================

// Settings keys stored in the record store's settings collection.
const (
	SettingAllocationMode = "allocation_mode"
	SettingCurrentUser    = "current_user"
)

// SettingsRepository provides keyed process-wide settings. Values are
// initialized to defaults when the schema is installed; the allocation mode
// is read fresh on every engine run.
type SettingsRepository interface {
	// Get retrieves a setting value by key.
	Get(ctx context.Context, key string) (string, error)

	// Set writes a setting value.
	Set(ctx context.Context, key, value string) error
}
