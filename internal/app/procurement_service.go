package app

import (
	"context"
	"fmt"

	"github.com/example/depot/internal/core/batch"
	"github.com/example/depot/internal/core/lifecycle"
	"github.com/example/depot/internal/ports/primary"
	"github.com/example/depot/internal/ports/secondary"
)

// ProcurementServiceImpl implements the ProcurementService interface.
type ProcurementServiceImpl struct {
	workOrders  secondary.WorkOrderRepository
	batches     secondary.BatchRepository
	batchLines  secondary.BatchLineRepository
	allocations secondary.AllocationRepository
	audits      secondary.AuditRepository
	settings    secondary.SettingsRepository
}

// NewProcurementService creates a new ProcurementService with injected dependencies.
func NewProcurementService(
	workOrders secondary.WorkOrderRepository,
	batches secondary.BatchRepository,
	batchLines secondary.BatchLineRepository,
	allocations secondary.AllocationRepository,
	audits secondary.AuditRepository,
	settings secondary.SettingsRepository,
) *ProcurementServiceImpl {
	return &ProcurementServiceImpl{
		workOrders:  workOrders,
		batches:     batches,
		batchLines:  batchLines,
		allocations: allocations,
		audits:      audits,
		settings:    settings,
	}
}

// GetBatchLine retrieves a single batch line.
func (s *ProcurementServiceImpl) GetBatchLine(ctx context.Context, batchLineID string) (*primary.BatchLine, error) {
	line, err := s.batchLines.GetByID(ctx, batchLineID)
	if err != nil {
		return nil, err
	}
	return recordToBatchLine(line), nil
}

// UpdateProcurementLine validates and writes a procurement update. A changed
// received quantity feeds its delta through the allocation engine and then
// recomputes the derived batch status.
func (s *ProcurementServiceImpl) UpdateProcurementLine(ctx context.Context, req primary.UpdateProcurementLineRequest) error {
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

	allocated, err := s.allocations.SumForBatchLine(ctx, req.BatchLineID)
	if err != nil {
		return fmt.Errorf("failed to sum allocations: %w", err)
	}
	if err := batch.CanSetReceived(batch.ReceiveContext{
		BatchLineID:    req.BatchLineID,
		NewReceivedQty: req.NewReceivedQty,
		AllocatedTotal: allocated,
	}).Error(); err != nil {
		return err
	}

	// Validation is complete; everything below only writes.
	oldValue := procurementSnapshot(line)
	updated := *line
	updated.Vendor = req.Vendor
	updated.PONumbers = req.PONumbers
	updated.OrderedQty = req.OrderedQty
	updated.ReceivedQty = req.NewReceivedQty
	updated.ExpectedDelivery = req.ExpectedDelivery
	if err := s.batchLines.UpdateProcurement(ctx, &updated); err != nil {
		return fmt.Errorf("failed to update batch line: %w", err)
	}

	if req.NewReceivedQty != line.ReceivedQty {
		mode, err := allocationMode(ctx, s.settings)
		if err != nil {
			return err
		}
		delta := req.NewReceivedQty - line.ReceivedQty
		if err := runEngine(ctx, s.allocations, s.workOrders, req.BatchLineID, delta, mode); err != nil {
			return err
		}
	}

	if err := s.recomputeBatchStatus(ctx, parent, actor); err != nil {
		return err
	}

	return appendAudit(ctx, s.audits, EntityBatchLine, line.ID, ActionProcUpdate, oldValue, procurementSnapshot(&updated), actor)
}

// recomputeBatchStatus applies the derived status recomputation after a
// procurement update. Draft and submitted batches are never auto-advanced;
// closed batches are never touched. A change writes its own audit entry,
// distinct from a manual transition's.
func (s *ProcurementServiceImpl) recomputeBatchStatus(ctx context.Context, parent *secondary.BatchRecord, actor string) error {
	if !lifecycle.AutoAdjustable(parent.Status) {
		return nil
	}
	lines, err := s.batchLines.ListByBatch(ctx, parent.ID)
	if err != nil {
		return fmt.Errorf("failed to list batch lines: %w", err)
	}
	totalRequired, totalReceived := 0, 0
	for _, l := range lines {
		totalRequired += l.TotalRequiredQty
		totalReceived += l.ReceivedQty
	}
	derived := lifecycle.DeriveStatus(totalRequired, totalReceived)
	if derived == parent.Status {
		return nil
	}
	if err := s.batches.UpdateStatus(ctx, parent.ID, derived); err != nil {
		return fmt.Errorf("failed to update batch status: %w", err)
	}
	return appendAudit(ctx, s.audits, EntityBatch, parent.ID, ActionStatusAuto, parent.Status, derived, actor)
}

func procurementSnapshot(l *secondary.BatchLineRecord) string {
	return fmt.Sprintf("vendor=%s po=%s ordered=%d received=%d eta=%s",
		l.Vendor, l.PONumbers, l.OrderedQty, l.ReceivedQty, l.ExpectedDelivery)
}

// Ensure ProcurementServiceImpl implements the interface
var _ primary.ProcurementService = (*ProcurementServiceImpl)(nil)
