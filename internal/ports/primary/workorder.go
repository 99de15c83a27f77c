package primary

import "context"

// WorkOrderService defines the read-only primary port over the work-order
// catalogue. Work orders are reference data populated externally.
type WorkOrderService interface {
	// GetWorkOrder retrieves a work order with its part lines.
	GetWorkOrder(ctx context.Context, workOrderID string) (*WorkOrder, error)

	// ListWorkOrders lists work orders with optional filters.
	ListWorkOrders(ctx context.Context, filters WorkOrderFilters) ([]*WorkOrder, error)
}

// WorkOrder represents a work order at the port boundary.
type WorkOrder struct {
	ID          string
	Brigade     string
	Workshop    string
	CreatedDate string
	Priority    string
	Status      string
	PartLines   []*PartLine
}

// PartLine represents a work-order part line with its derived fields.
type PartLine struct {
	ID             string
	WorkOrderID    string
	PartNo         string
	Description    string
	RequiredQty    int
	ReceivedQty    int
	OutstandingQty int
	Status         string // Waiting, Partial, Ready
}

// WorkOrderFilters contains filter options for listing work orders.
type WorkOrderFilters struct {
	Brigade  string
	Workshop string
	Status   string
	Priority string
}

// Work-order priority constants.
const (
	PriorityCritical = "Critical"
	PriorityHigh     = "High"
	PriorityNormal   = "Normal"
)

// Work-order status constants.
const (
	WorkOrderWaitingParts     = "Waiting Parts"
	WorkOrderUnderMaintenance = "Under Maintenance"
	WorkOrderClosed           = "Closed"
)
