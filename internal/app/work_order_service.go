package app

import (
	"context"
	"fmt"

	"github.com/example/depot/internal/core/allocation"
	"github.com/example/depot/internal/ports/primary"
	"github.com/example/depot/internal/ports/secondary"
)

// WorkOrderServiceImpl implements the read-only WorkOrderService interface.
// Work orders are reference data; the core never mutates them.
type WorkOrderServiceImpl struct {
	workOrders secondary.WorkOrderRepository
}

// NewWorkOrderService creates a new WorkOrderService with injected dependencies.
func NewWorkOrderService(workOrders secondary.WorkOrderRepository) *WorkOrderServiceImpl {
	return &WorkOrderServiceImpl{workOrders: workOrders}
}

// GetWorkOrder retrieves a work order with its part lines and their derived
// outstanding quantity and status.
func (s *WorkOrderServiceImpl) GetWorkOrder(ctx context.Context, workOrderID string) (*primary.WorkOrder, error) {
	record, err := s.workOrders.GetByID(ctx, workOrderID)
	if err != nil {
		return nil, err
	}
	lines, err := s.workOrders.ListPartLines(ctx, []string{workOrderID})
	if err != nil {
		return nil, fmt.Errorf("failed to list part lines: %w", err)
	}
	wo := recordToWorkOrder(record)
	for _, l := range lines {
		wo.PartLines = append(wo.PartLines, recordToPartLine(l))
	}
	return wo, nil
}

// ListWorkOrders lists work orders with optional filters.
func (s *WorkOrderServiceImpl) ListWorkOrders(ctx context.Context, filters primary.WorkOrderFilters) ([]*primary.WorkOrder, error) {
	records, err := s.workOrders.List(ctx, secondary.WorkOrderFilters{
		Brigade:  filters.Brigade,
		Workshop: filters.Workshop,
		Status:   filters.Status,
		Priority: filters.Priority,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list work orders: %w", err)
	}
	result := make([]*primary.WorkOrder, len(records))
	for i, r := range records {
		result[i] = recordToWorkOrder(r)
	}
	return result, nil
}

func recordToWorkOrder(r *secondary.WorkOrderRecord) *primary.WorkOrder {
	return &primary.WorkOrder{
		ID:          r.ID,
		Brigade:     r.Brigade,
		Workshop:    r.Workshop,
		CreatedDate: r.CreatedDate.Format("2006-01-02"),
		Priority:    r.Priority,
		Status:      r.Status,
	}
}

func recordToPartLine(r *secondary.PartLineRecord) *primary.PartLine {
	return &primary.PartLine{
		ID:             r.ID,
		WorkOrderID:    r.WorkOrderID,
		PartNo:         r.PartNo,
		Description:    r.Description,
		RequiredQty:    r.RequiredQty,
		ReceivedQty:    r.ReceivedQty,
		OutstandingQty: allocation.Outstanding(r.RequiredQty, r.ReceivedQty),
		Status:         allocation.LineStatus(r.RequiredQty, r.ReceivedQty),
	}
}

// Ensure WorkOrderServiceImpl implements the interface
var _ primary.WorkOrderService = (*WorkOrderServiceImpl)(nil)
