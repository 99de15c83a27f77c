package app

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/example/depot/internal/core/allocation"
	"github.com/example/depot/internal/core/batch"
	"github.com/example/depot/internal/core/identifier"
	"github.com/example/depot/internal/core/lifecycle"
	"github.com/example/depot/internal/ports/primary"
	"github.com/example/depot/internal/ports/secondary"
)

// ID prefixes for entities minted by the batch creation service.
const (
	batchIDPrefix     = "BATCH"
	batchLineIDPrefix = "BL"
	allocIDPrefix     = "ALLOC"
)

// BatchServiceImpl implements the BatchService interface.
type BatchServiceImpl struct {
	workOrders  secondary.WorkOrderRepository
	batches     secondary.BatchRepository
	batchLines  secondary.BatchLineRepository
	allocations secondary.AllocationRepository
	audits      secondary.AuditRepository
	settings    secondary.SettingsRepository
}

// NewBatchService creates a new BatchService with injected dependencies.
func NewBatchService(
	workOrders secondary.WorkOrderRepository,
	batches secondary.BatchRepository,
	batchLines secondary.BatchLineRepository,
	allocations secondary.AllocationRepository,
	audits secondary.AuditRepository,
	settings secondary.SettingsRepository,
) *BatchServiceImpl {
	return &BatchServiceImpl{
		workOrders:  workOrders,
		batches:     batches,
		batchLines:  batchLines,
		allocations: allocations,
		audits:      audits,
		settings:    settings,
	}
}

// CreateBatch validates the selection, aggregates eligible part lines by part
// number, and atomically persists the batch, its lines, one zero-valued
// allocation per underlying part line, and the creation audit entry.
func (s *BatchServiceImpl) CreateBatch(ctx context.Context, req primary.CreateBatchRequest) (*primary.CreateBatchResponse, error) {
	actor, err := resolveActor(ctx, req.CreatedBy, s.settings)
	if err != nil {
		return nil, err
	}

	var summaries []batch.WorkOrderSummary
	for _, woID := range req.WorkOrderIDs {
		wo, err := s.workOrders.GetByID(ctx, woID)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, batch.WorkOrderSummary{ID: wo.ID, Brigade: wo.Brigade})
	}

	partLines, err := s.workOrders.ListPartLines(ctx, req.WorkOrderIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list part lines: %w", err)
	}

	// Lines already satisfied carry no demand into the batch.
	var eligible []*secondary.PartLineRecord
	var eligibleIDs []string
	for _, pl := range partLines {
		if allocation.Outstanding(pl.RequiredQty, pl.ReceivedQty) > 0 {
			eligible = append(eligible, pl)
			eligibleIDs = append(eligibleIDs, pl.ID)
		}
	}

	lockedIDs, err := s.allocations.LockedLineIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list locked part lines: %w", err)
	}

	guard := batch.CanCreateBatch(batch.CreateBatchContext{
		Brigade:         req.Brigade,
		WorkOrders:      summaries,
		EligibleLineIDs: eligibleIDs,
		LockedLineIDs:   lockedIDs,
		ApprovalRef:     req.ApprovalRef,
		CreatedBy:       actor,
	})
	if err := guard.Error(); err != nil {
		return nil, err
	}

	locked := make(map[string]bool, len(lockedIDs))
	for _, id := range lockedIDs {
		locked[id] = true
	}
	var selected []*secondary.PartLineRecord
	for _, pl := range eligible {
		if !locked[pl.ID] {
			selected = append(selected, pl)
		}
	}

	batchIDs, err := s.batches.ListIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list batch ids: %w", err)
	}
	batchID := identifier.NextID(batchIDPrefix, batchIDs)

	status := lifecycle.StatusDraft
	if req.SubmitImmediately {
		status = lifecycle.StatusSubmitted
	}
	now := time.Now()
	record := &secondary.BatchRecord{
		ID:                  batchID,
		Brigade:             req.Brigade,
		CreatedBy:           actor,
		CreatedDate:         now,
		ApprovalRef:         strings.TrimSpace(req.ApprovalRef),
		Status:              status,
		ResponsibilityOwner: actor,
		OwnerSince:          now,
	}

	lines, allocs, err := s.buildLineGraph(ctx, batchID, selected, now)
	if err != nil {
		return nil, err
	}

	summary := fmt.Sprintf("brigade=%s work_orders=%s lines=%d status=%s",
		req.Brigade, strings.Join(req.WorkOrderIDs, ","), len(lines), status)
	audit, err := newAuditRecord(ctx, s.audits, EntityBatch, batchID, ActionBatchCreate, "", summary, actor)
	if err != nil {
		return nil, err
	}

	if err := s.batches.CreateGraph(ctx, record, lines, allocs, audit); err != nil {
		return nil, fmt.Errorf("failed to create batch: %w", err)
	}

	created, err := s.GetBatch(ctx, batchID)
	if err != nil {
		return nil, err
	}
	return &primary.CreateBatchResponse{BatchID: batchID, Batch: created}, nil
}

// buildLineGraph groups the selected part lines by part number into batch
// lines, summing outstanding demand into the fixed total, and mints one
// zero-valued allocation per underlying part line. Already-minted IDs are fed
// back to the generator so several lines can be numbered before any persist.
func (s *BatchServiceImpl) buildLineGraph(ctx context.Context, batchID string, selected []*secondary.PartLineRecord, now time.Time) ([]*secondary.BatchLineRecord, []*secondary.AllocationRecord, error) {
	byPart := make(map[string][]*secondary.PartLineRecord)
	var partNos []string
	for _, pl := range selected {
		if _, ok := byPart[pl.PartNo]; !ok {
			partNos = append(partNos, pl.PartNo)
		}
		byPart[pl.PartNo] = append(byPart[pl.PartNo], pl)
	}
	sort.Strings(partNos)

	lineIDs, err := s.batchLines.ListIDs(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list batch line ids: %w", err)
	}
	allocIDs, err := s.allocations.ListIDs(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list allocation ids: %w", err)
	}

	var lines []*secondary.BatchLineRecord
	var allocs []*secondary.AllocationRecord
	for _, partNo := range partNos {
		group := byPart[partNo]
		total := 0
		for _, pl := range group {
			total += allocation.Outstanding(pl.RequiredQty, pl.ReceivedQty)
		}

		blID := identifier.NextID(batchLineIDPrefix, lineIDs)
		lineIDs = append(lineIDs, blID)
		lines = append(lines, &secondary.BatchLineRecord{
			ID:               blID,
			BatchID:          batchID,
			PartNo:           partNo,
			Description:      group[0].Description,
			TotalRequiredQty: total,
		})

		for _, pl := range group {
			allocID := identifier.NextID(allocIDPrefix, allocIDs)
			allocIDs = append(allocIDs, allocID)
			allocs = append(allocs, &secondary.AllocationRecord{
				ID:           allocID,
				BatchLineID:  blID,
				WorkOrderID:  pl.WorkOrderID,
				LineID:       pl.ID,
				AllocatedQty: 0,
				Status:       allocation.StatusAllocated,
				LastUpdated:  now,
			})
		}
	}
	return lines, allocs, nil
}

// GetBatch retrieves a batch with its lines.
func (s *BatchServiceImpl) GetBatch(ctx context.Context, batchID string) (*primary.Batch, error) {
	record, err := s.batches.GetByID(ctx, batchID)
	if err != nil {
		return nil, err
	}
	lines, err := s.batchLines.ListByBatch(ctx, batchID)
	if err != nil {
		return nil, fmt.Errorf("failed to list batch lines: %w", err)
	}
	b := recordToBatch(record)
	for _, l := range lines {
		b.Lines = append(b.Lines, recordToBatchLine(l))
	}
	return b, nil
}

// ListBatches lists batches with optional filters.
func (s *BatchServiceImpl) ListBatches(ctx context.Context, filters primary.BatchFilters) ([]*primary.Batch, error) {
	records, err := s.batches.List(ctx, secondary.BatchFilters{
		Brigade: filters.Brigade,
		Status:  filters.Status,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list batches: %w", err)
	}
	batches := make([]*primary.Batch, len(records))
	for i, r := range records {
		batches[i] = recordToBatch(r)
	}
	return batches, nil
}

// TransitionBatch advances a batch to the target status if it is the unique
// legal successor, recording a STATUS_CHANGE audit entry.
func (s *BatchServiceImpl) TransitionBatch(ctx context.Context, req primary.TransitionBatchRequest) error {
	actor, err := resolveActor(ctx, req.ChangedBy, s.settings)
	if err != nil {
		return err
	}

	record, err := s.batches.GetByID(ctx, req.BatchID)
	if err != nil {
		return err
	}

	lines, err := s.batchLines.ListByBatch(ctx, req.BatchID)
	if err != nil {
		return fmt.Errorf("failed to list batch lines: %w", err)
	}
	outstanding := 0
	for _, l := range lines {
		outstanding += allocation.Outstanding(l.TotalRequiredQty, l.ReceivedQty)
	}

	guard := lifecycle.CanTransition(lifecycle.TransitionContext{
		BatchID:        req.BatchID,
		Current:        record.Status,
		Target:         req.TargetStatus,
		OutstandingQty: outstanding,
	})
	if err := guard.Error(); err != nil {
		return err
	}

	if err := s.batches.UpdateStatus(ctx, req.BatchID, req.TargetStatus); err != nil {
		return fmt.Errorf("failed to update batch status: %w", err)
	}
	return appendAudit(ctx, s.audits, EntityBatch, req.BatchID, ActionStatusChange, record.Status, req.TargetStatus, actor)
}

func recordToBatch(r *secondary.BatchRecord) *primary.Batch {
	b := &primary.Batch{
		ID:                  r.ID,
		Brigade:             r.Brigade,
		CreatedBy:           r.CreatedBy,
		CreatedDate:         r.CreatedDate.Format("2006-01-02"),
		ApprovalRef:         r.ApprovalRef,
		Status:              r.Status,
		ResponsibilityOwner: r.ResponsibilityOwner,
	}
	if !r.OwnerSince.IsZero() {
		b.OwnerSince = r.OwnerSince.Format(time.RFC3339)
	}
	return b
}

func recordToBatchLine(r *secondary.BatchLineRecord) *primary.BatchLine {
	return &primary.BatchLine{
		ID:               r.ID,
		BatchID:          r.BatchID,
		PartNo:           r.PartNo,
		Description:      r.Description,
		TotalRequiredQty: r.TotalRequiredQty,
		Vendor:           r.Vendor,
		PONumbers:        r.PONumbers,
		OrderedQty:       r.OrderedQty,
		ReceivedQty:      r.ReceivedQty,
		ExpectedDelivery: r.ExpectedDelivery,
	}
}

// Ensure BatchServiceImpl implements the interface
var _ primary.BatchService = (*BatchServiceImpl)(nil)
