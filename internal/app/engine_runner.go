package app

import (
	"context"
	"fmt"

	"github.com/example/depot/internal/core/allocation"
	"github.com/example/depot/internal/ports/secondary"
)

// runEngine gathers the allocation rows of a batch line, plans the
// redistribution of delta under the given mode, writes the changed
// quantities back, and recomputes the received quantity of every touched
// work-order part line from its full allocation set.
func runEngine(ctx context.Context, allocs secondary.AllocationRepository, workOrders secondary.WorkOrderRepository, batchLineID string, delta int, mode allocation.Mode) error {
	records, err := allocs.ListRows(ctx, batchLineID)
	if err != nil {
		return fmt.Errorf("failed to list allocation rows: %w", err)
	}

	rows := make([]allocation.Row, len(records))
	for i, r := range records {
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

	changes := allocation.Apply(rows, delta, mode)
	for _, c := range changes {
		if err := allocs.UpdateQty(ctx, c.AllocationID, c.NewQty); err != nil {
			return fmt.Errorf("failed to write allocation %s: %w", c.AllocationID, err)
		}
	}

	for _, lineID := range allocation.TouchedLines(changes) {
		if err := recomputeLineReceived(ctx, allocs, workOrders, lineID); err != nil {
			return err
		}
	}
	return nil
}

// recomputeLineReceived rewrites a part line's received quantity as the sum
// of allocated quantities across every allocation referencing it. Other
// batch lines may feed the same demand.
func recomputeLineReceived(ctx context.Context, allocs secondary.AllocationRepository, workOrders secondary.WorkOrderRepository, lineID string) error {
	sum, err := allocs.SumForLine(ctx, lineID)
	if err != nil {
		return fmt.Errorf("failed to sum allocations for line %s: %w", lineID, err)
	}
	if err := workOrders.SetPartLineReceived(ctx, lineID, sum); err != nil {
		return fmt.Errorf("failed to update received quantity for line %s: %w", lineID, err)
	}
	return nil
}

// allocationMode reads the current allocation mode from settings. The value
// is read on every engine invocation so a mode change applies immediately.
func allocationMode(ctx context.Context, settings secondary.SettingsRepository) (allocation.Mode, error) {
	value, err := settings.Get(ctx, secondary.SettingAllocationMode)
	if err != nil {
		return "", fmt.Errorf("failed to read allocation mode: %w", err)
	}
	mode := allocation.Mode(value)
	if !allocation.ValidMode(mode) {
		return "", fmt.Errorf("unknown allocation mode %q", value)
	}
	return mode, nil
}
