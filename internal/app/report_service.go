package app

import (
	"context"
	"fmt"
	"sort"

	"github.com/example/depot/internal/core/allocation"
	"github.com/example/depot/internal/ports/primary"
	"github.com/example/depot/internal/ports/secondary"
)

// ReportServiceImpl implements the read-only ReportService interface.
type ReportServiceImpl struct {
	workOrders  secondary.WorkOrderRepository
	batches     secondary.BatchRepository
	batchLines  secondary.BatchLineRepository
	allocations secondary.AllocationRepository
}

// NewReportService creates a new ReportService with injected dependencies.
func NewReportService(
	workOrders secondary.WorkOrderRepository,
	batches secondary.BatchRepository,
	batchLines secondary.BatchLineRepository,
	allocations secondary.AllocationRepository,
) *ReportServiceImpl {
	return &ReportServiceImpl{
		workOrders:  workOrders,
		batches:     batches,
		batchLines:  batchLines,
		allocations: allocations,
	}
}

// PackingList returns the parts allocated to one work order within a batch.
func (s *ReportServiceImpl) PackingList(ctx context.Context, batchID, workOrderID string) ([]*primary.PackingItem, error) {
	if _, err := s.workOrders.GetByID(ctx, workOrderID); err != nil {
		return nil, err
	}
	items, err := s.batchItems(ctx, batchID)
	if err != nil {
		return nil, err
	}
	var filtered []*primary.PackingItem
	for _, item := range items {
		if item.WorkOrderID == workOrderID {
			filtered = append(filtered, item)
		}
	}
	return filtered, nil
}

// CollectionManifest returns every allocation of a batch, ordered by work
// order then part number.
func (s *ReportServiceImpl) CollectionManifest(ctx context.Context, batchID string) ([]*primary.PackingItem, error) {
	return s.batchItems(ctx, batchID)
}

func (s *ReportServiceImpl) batchItems(ctx context.Context, batchID string) ([]*primary.PackingItem, error) {
	if _, err := s.batches.GetByID(ctx, batchID); err != nil {
		return nil, err
	}
	lines, err := s.batchLines.ListByBatch(ctx, batchID)
	if err != nil {
		return nil, fmt.Errorf("failed to list batch lines: %w", err)
	}

	var items []*primary.PackingItem
	for _, line := range lines {
		allocs, err := s.allocations.ListByBatchLine(ctx, line.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to list allocations: %w", err)
		}
		for _, a := range allocs {
			items = append(items, &primary.PackingItem{
				WorkOrderID:  a.WorkOrderID,
				PartNo:       line.PartNo,
				Description:  line.Description,
				AllocatedQty: a.AllocatedQty,
				Status:       a.Status,
			})
		}
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].WorkOrderID != items[j].WorkOrderID {
			return items[i].WorkOrderID < items[j].WorkOrderID
		}
		return items[i].PartNo < items[j].PartNo
	})
	return items, nil
}

// DashboardSummary returns the headline counts over work orders, part lines,
// and batches.
func (s *ReportServiceImpl) DashboardSummary(ctx context.Context) (*primary.DashboardSummary, error) {
	workOrders, err := s.workOrders.List(ctx, secondary.WorkOrderFilters{})
	if err != nil {
		return nil, fmt.Errorf("failed to list work orders: %w", err)
	}
	partLines, err := s.workOrders.ListPartLines(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list part lines: %w", err)
	}
	batches, err := s.batches.List(ctx, secondary.BatchFilters{})
	if err != nil {
		return nil, fmt.Errorf("failed to list batches: %w", err)
	}

	summary := &primary.DashboardSummary{
		TotalBatches:      len(batches),
		BatchesByStatus:   make(map[string]int),
		LinesByStatus:     make(map[string]int),
		OpenWOsByPriority: make(map[string]int),
	}
	for _, wo := range workOrders {
		if wo.Status == primary.WorkOrderWaitingParts {
			summary.OpenWorkOrders++
			summary.OpenWOsByPriority[wo.Priority]++
		}
	}
	for _, pl := range partLines {
		summary.LinesByStatus[allocation.LineStatus(pl.RequiredQty, pl.ReceivedQty)]++
	}
	for _, b := range batches {
		summary.BatchesByStatus[b.Status]++
	}
	return summary, nil
}

// Ensure ReportServiceImpl implements the interface
var _ primary.ReportService = (*ReportServiceImpl)(nil)
