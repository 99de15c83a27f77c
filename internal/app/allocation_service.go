package app

import (
	"context"
	"fmt"

	"github.com/example/depot/internal/core/allocation"
	"github.com/example/depot/internal/core/batch"
	"github.com/example/depot/internal/ports/primary"
	"github.com/example/depot/internal/ports/secondary"
)

// AllocationServiceImpl implements the AllocationService interface.
type AllocationServiceImpl struct {
	workOrders  secondary.WorkOrderRepository
	batches     secondary.BatchRepository
	batchLines  secondary.BatchLineRepository
	allocations secondary.AllocationRepository
	audits      secondary.AuditRepository
	settings    secondary.SettingsRepository
}

// NewAllocationService creates a new AllocationService with injected dependencies.
func NewAllocationService(
	workOrders secondary.WorkOrderRepository,
	batches secondary.BatchRepository,
	batchLines secondary.BatchLineRepository,
	allocations secondary.AllocationRepository,
	audits secondary.AuditRepository,
	settings secondary.SettingsRepository,
) *AllocationServiceImpl {
	return &AllocationServiceImpl{
		workOrders:  workOrders,
		batches:     batches,
		batchLines:  batchLines,
		allocations: allocations,
		audits:      audits,
		settings:    settings,
	}
}

// ListAllocations lists the allocations of a batch line in distribution
// order under the current allocation mode.
func (s *AllocationServiceImpl) ListAllocations(ctx context.Context, batchLineID string) ([]*primary.Allocation, error) {
	if _, err := s.batchLines.GetByID(ctx, batchLineID); err != nil {
		return nil, err
	}
	records, err := s.allocations.ListRows(ctx, batchLineID)
	if err != nil {
		return nil, fmt.Errorf("failed to list allocations: %w", err)
	}
	mode, err := allocationMode(ctx, s.settings)
	if err != nil {
		return nil, err
	}

	rows := make([]allocation.Row, len(records))
	byID := make(map[string]*secondary.AllocationRowRecord, len(records))
	for i, r := range records {
		byID[r.AllocationID] = r
		rows[i] = allocation.Row{
			AllocationID: r.AllocationID,
			WorkOrderID:  r.WorkOrderID,
			LineID:       r.LineID,
			AllocatedQty: r.AllocatedQty,
			RequiredQty:  r.RequiredQty,
			Status:       r.Status,
			Priority:     r.Priority,
			CreatedDate:  r.WOCreatedDate,
		}
	}

	ordered := allocation.Order(rows, mode)
	result := make([]*primary.Allocation, len(ordered))
	for i, row := range ordered {
		rec := byID[row.AllocationID]
		result[i] = &primary.Allocation{
			ID:             rec.AllocationID,
			BatchLineID:    rec.BatchLineID,
			WorkOrderID:    rec.WorkOrderID,
			LineID:         rec.LineID,
			AllocatedQty:   rec.AllocatedQty,
			Status:         rec.Status,
			Notes:          rec.Notes,
			Priority:       rec.Priority,
			WOCreatedDate:  rec.WOCreatedDate.Format("2006-01-02"),
			RequiredQty:    rec.RequiredQty,
			OutstandingQty: allocation.Outstanding(rec.RequiredQty, rec.AllocatedQty),
		}
	}
	return result, nil
}

// ApplyOverride applies manual allocation edits after validating capacity
// bounds, recomputes the derived received quantities of the touched part
// lines, and records one audit entry per edited allocation.
func (s *AllocationServiceImpl) ApplyOverride(ctx context.Context, req primary.ApplyOverrideRequest) error {
	actor, err := resolveActor(ctx, req.ChangedBy, s.settings)
	if err != nil {
		return err
	}
	if len(req.Edits) == 0 {
		return fmt.Errorf("no allocation edits given")
	}

	line, err := s.batchLines.GetByID(ctx, req.BatchLineID)
	if err != nil {
		return err
	}
	parent, err := s.batches.GetByID(ctx, line.BatchID)
	if err != nil {
		return err
	}
	if err := batch.CanEditBatchLine(batch.EditLineContext{
		BatchID:     parent.ID,
		BatchStatus: parent.Status,
	}).Error(); err != nil {
		return err
	}

	records, err := s.allocations.ListRows(ctx, req.BatchLineID)
	if err != nil {
		return fmt.Errorf("failed to list allocations: %w", err)
	}
	byID := make(map[string]*secondary.AllocationRowRecord, len(records))
	for _, r := range records {
		byID[r.AllocationID] = r
	}

	edits := make([]batch.OverrideEdit, len(req.Edits))
	edited := make(map[string]int, len(req.Edits))
	for i, e := range req.Edits {
		row, ok := byID[e.AllocationID]
		if !ok {
			return fmt.Errorf("allocation %s not found on batch line %s", e.AllocationID, req.BatchLineID)
		}
		if e.Status != "" && !allocation.ValidStatus(e.Status) {
			return fmt.Errorf("unknown allocation status %q", e.Status)
		}
		edits[i] = batch.OverrideEdit{
			AllocationID: e.AllocationID,
			WorkOrderID:  row.WorkOrderID,
			NewQty:       e.AllocatedQty,
			RequiredQty:  row.RequiredQty,
		}
		edited[e.AllocationID] = e.AllocatedQty
	}

	newTotal := 0
	for _, r := range records {
		if qty, ok := edited[r.AllocationID]; ok {
			newTotal += qty
		} else {
			newTotal += r.AllocatedQty
		}
	}

	if err := batch.CanApplyOverride(batch.OverrideContext{
		BatchLineID:     req.BatchLineID,
		LineReceivedQty: line.ReceivedQty,
		Edits:           edits,
		NewTotal:        newTotal,
	}).Error(); err != nil {
		return err
	}

	// Validation is complete; everything below only writes.
	for _, e := range req.Edits {
		row := byID[e.AllocationID]
		status := e.Status
		if status == "" {
			status = row.Status
		}
		if err := s.allocations.ApplyOverride(ctx, e.AllocationID, e.AllocatedQty, status, e.Notes); err != nil {
			return fmt.Errorf("failed to apply override to %s: %w", e.AllocationID, err)
		}
		if err := recomputeLineReceived(ctx, s.allocations, s.workOrders, row.LineID); err != nil {
			return err
		}
		oldValue := fmt.Sprintf("qty=%d status=%s", row.AllocatedQty, row.Status)
		newValue := fmt.Sprintf("qty=%d status=%s", e.AllocatedQty, status)
		if err := appendAudit(ctx, s.audits, EntityAllocation, e.AllocationID, ActionAllocOverride, oldValue, newValue, actor); err != nil {
			return err
		}
	}
	return nil
}

// ResetToAuto zeroes every allocation on a batch line, clears manual-override
// protection, recomputes the affected part lines, and replays the line's full
// received quantity through the engine as if it arrived fresh.
func (s *AllocationServiceImpl) ResetToAuto(ctx context.Context, req primary.ResetToAutoRequest) error {
	actor, err := resolveActor(ctx, req.ChangedBy, s.settings)
	if err != nil {
		return err
	}

	line, err := s.batchLines.GetByID(ctx, req.BatchLineID)
	if err != nil {
		return err
	}
	parent, err := s.batches.GetByID(ctx, line.BatchID)
	if err != nil {
		return err
	}
	if err := batch.CanEditBatchLine(batch.EditLineContext{
		BatchID:     parent.ID,
		BatchStatus: parent.Status,
	}).Error(); err != nil {
		return err
	}

	records, err := s.allocations.ListRows(ctx, req.BatchLineID)
	if err != nil {
		return fmt.Errorf("failed to list allocations: %w", err)
	}

	if err := s.allocations.ResetForBatchLine(ctx, req.BatchLineID); err != nil {
		return fmt.Errorf("failed to reset allocations: %w", err)
	}
	seen := make(map[string]bool, len(records))
	for _, r := range records {
		if seen[r.LineID] {
			continue
		}
		seen[r.LineID] = true
		if err := recomputeLineReceived(ctx, s.allocations, s.workOrders, r.LineID); err != nil {
			return err
		}
	}

	mode, err := allocationMode(ctx, s.settings)
	if err != nil {
		return err
	}
	if err := runEngine(ctx, s.allocations, s.workOrders, req.BatchLineID, line.ReceivedQty, mode); err != nil {
		return err
	}

	newValue := fmt.Sprintf("replayed received=%d mode=%s", line.ReceivedQty, mode)
	return appendAudit(ctx, s.audits, EntityBatchLine, line.ID, ActionAllocReset, "allocations zeroed", newValue, actor)
}

// Ensure AllocationServiceImpl implements the interface
var _ primary.AllocationService = (*AllocationServiceImpl)(nil)
