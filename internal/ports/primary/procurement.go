package primary

import "context"

// ProcurementService defines the primary port for procurement updates.
type ProcurementService interface {
	// GetBatchLine retrieves a single batch line.
	GetBatchLine(ctx context.Context, batchLineID string) (*BatchLine, error)

	// UpdateProcurementLine writes procurement tracking fields on a batch
	// line. A changed received quantity runs the allocation engine and the
	// derived batch-status recomputation.
	UpdateProcurementLine(ctx context.Context, req UpdateProcurementLineRequest) error
}

// UpdateProcurementLineRequest contains parameters for a procurement update.
type UpdateProcurementLineRequest struct {
	BatchLineID      string
	Vendor           string
	PONumbers        string
	OrderedQty       int
	NewReceivedQty   int
	ExpectedDelivery string // ISO date, optional
	ChangedBy        string
}
