package primary

import "context"

// AllocationService defines the primary port for allocation operations.
type AllocationService interface {
	// ListAllocations lists the allocations of a batch line joined to their
	// work-order context, in distribution order.
	ListAllocations(ctx context.Context, batchLineID string) ([]*Allocation, error)

	// ApplyOverride applies manual allocation edits to a batch line after
	// validating capacity bounds, then recomputes derived line quantities.
	ApplyOverride(ctx context.Context, req ApplyOverrideRequest) error

	// ResetToAuto zeroes a batch line's allocations, clears manual-override
	// protection, and replays the full received quantity through the engine.
	ResetToAuto(ctx context.Context, req ResetToAutoRequest) error
}

// AllocationEdit is one manual allocation edit.
type AllocationEdit struct {
	AllocationID string
	AllocatedQty int
	Status       string // optional; empty keeps the current status
	Notes        string
}

// ApplyOverrideRequest contains parameters for a manual allocation override.
type ApplyOverrideRequest struct {
	BatchLineID string
	Edits       []AllocationEdit
	ChangedBy   string
}

// ResetToAutoRequest contains parameters for resetting a batch line's
// allocations to automatic distribution.
type ResetToAutoRequest struct {
	BatchLineID string
	ChangedBy   string
}

// Allocation represents an allocation at the port boundary, joined to its
// work order and part line for display.
type Allocation struct {
	ID             string
	BatchLineID    string
	WorkOrderID    string
	LineID         string
	AllocatedQty   int
	Status         string
	Notes          string
	Priority       string
	WOCreatedDate  string
	RequiredQty    int
	OutstandingQty int
}
