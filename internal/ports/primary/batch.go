// Package primary defines the service interfaces exposed to the CLI and any
// future API collaborator, together with their request/response types.
package primary

import "context"

// BatchService defines the primary port for batch operations.
type BatchService interface {
	// CreateBatch validates and atomically creates a batch, its aggregated
	// batch lines, and zero-valued allocation stubs.
	CreateBatch(ctx context.Context, req CreateBatchRequest) (*CreateBatchResponse, error)

	// GetBatch retrieves a batch with its lines.
	GetBatch(ctx context.Context, batchID string) (*Batch, error)

	// ListBatches lists batches with optional filters.
	ListBatches(ctx context.Context, filters BatchFilters) ([]*Batch, error)

	// TransitionBatch advances a batch to the next status in the lifecycle.
	TransitionBatch(ctx context.Context, req TransitionBatchRequest) error
}

// CreateBatchRequest contains parameters for creating a batch.
type CreateBatchRequest struct {
	Brigade           string
	WorkOrderIDs      []string
	ApprovalRef       string
	CreatedBy         string
	SubmitImmediately bool
}

// CreateBatchResponse contains the result of creating a batch.
type CreateBatchResponse struct {
	BatchID string
	Batch   *Batch
}

// TransitionBatchRequest contains parameters for a manual status transition.
type TransitionBatchRequest struct {
	BatchID      string
	TargetStatus string
	ChangedBy    string
}

// Batch represents a batch entity at the port boundary.
type Batch struct {
	ID                  string
	Brigade             string
	CreatedBy           string
	CreatedDate         string
	ApprovalRef         string
	Status              string
	ResponsibilityOwner string
	OwnerSince          string
	Lines               []*BatchLine
}

// BatchLine represents a batch line at the port boundary.
type BatchLine struct {
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

// BatchFilters contains filter options for listing batches.
type BatchFilters struct {
	Brigade string
	Status  string
}
