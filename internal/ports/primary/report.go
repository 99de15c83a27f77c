package primary

import "context"

// ReportService defines the read-only reporting port: packing lists,
// collection manifests, and the dashboard summary.
type ReportService interface {
	// PackingList returns the parts allocated to one work order within a
	// batch, for handover packing.
	PackingList(ctx context.Context, batchID, workOrderID string) ([]*PackingItem, error)

	// CollectionManifest returns every allocation of a batch, ordered by
	// work order then part number.
	CollectionManifest(ctx context.Context, batchID string) ([]*PackingItem, error)

	// DashboardSummary returns the headline counts.
	DashboardSummary(ctx context.Context) (*DashboardSummary, error)
}

// PackingItem is one row of a packing list or collection manifest.
type PackingItem struct {
	WorkOrderID  string
	PartNo       string
	Description  string
	AllocatedQty int
	Status       string
}

// DashboardSummary aggregates the headline counts of the system.
type DashboardSummary struct {
	OpenWorkOrders    int
	TotalBatches      int
	BatchesByStatus   map[string]int
	LinesByStatus     map[string]int // part-line status: Waiting, Partial, Ready
	OpenWOsByPriority map[string]int
}
