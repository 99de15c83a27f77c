// Package batch contains the pure business rules guarding batch mutations.
// Guards evaluate preconditions without side effects; services run them
// before touching the record store so a rejected operation writes nothing.
package batch

import (
	"fmt"
	"strings"

	"github.com/example/depot/internal/core/lifecycle"
)

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed bool
	Reason  string
}

// Error converts the guard result to an error if not allowed.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	return fmt.Errorf("%s", r.Reason)
}

// WorkOrderSummary contains minimal work-order info for creation guards.
type WorkOrderSummary struct {
	ID      string
	Brigade string
}

// CreateBatchContext provides context for batch creation guards.
type CreateBatchContext struct {
	Brigade         string
	WorkOrders      []WorkOrderSummary
	EligibleLineIDs []string // candidate part lines after filtering Ready lines
	LockedLineIDs   []string // part lines already allocated in an active batch
	ApprovalRef     string
	CreatedBy       string
}

// CanCreateBatch evaluates whether a batch can be created.
// Rules:
// - Approval reference and creator are required
// - At least one work order must be selected
// - Every selected work order must belong to the declared brigade
// - At least one eligible part line must survive the active-batch lock filter
func CanCreateBatch(ctx CreateBatchContext) GuardResult {
	if strings.TrimSpace(ctx.ApprovalRef) == "" {
		return GuardResult{Allowed: false, Reason: "approval reference is required"}
	}
	if strings.TrimSpace(ctx.CreatedBy) == "" {
		return GuardResult{Allowed: false, Reason: "created-by is required"}
	}
	if len(ctx.WorkOrders) == 0 {
		return GuardResult{Allowed: false, Reason: "select at least one work order"}
	}

	for _, wo := range ctx.WorkOrders {
		if wo.Brigade != ctx.Brigade {
			return GuardResult{
				Allowed: false,
				Reason:  fmt.Sprintf("work order %s belongs to brigade %q, not %q (one brigade per batch)", wo.ID, wo.Brigade, ctx.Brigade),
			}
		}
	}

	locked := make(map[string]bool, len(ctx.LockedLineIDs))
	for _, id := range ctx.LockedLineIDs {
		locked[id] = true
	}
	free := 0
	for _, id := range ctx.EligibleLineIDs {
		if !locked[id] {
			free++
		}
	}
	if free == 0 {
		return GuardResult{
			Allowed: false,
			Reason:  "no eligible part lines: every outstanding line is already in an active batch",
		}
	}

	return GuardResult{Allowed: true}
}

// EditLineContext provides context for batch-line mutation guards.
type EditLineContext struct {
	BatchID     string
	BatchStatus string
}

// CanEditBatchLine evaluates whether a batch line may be mutated.
// Rules:
// - Parent batch must not be closed
func CanEditBatchLine(ctx EditLineContext) GuardResult {
	if ctx.BatchStatus == lifecycle.StatusClosed {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("batch %s is closed; its lines can no longer be edited", ctx.BatchID),
		}
	}
	return GuardResult{Allowed: true}
}

// ReceiveContext provides context for the received-quantity guard.
type ReceiveContext struct {
	BatchLineID    string
	NewReceivedQty int
	AllocatedTotal int // current sum of allocated_qty across the line's allocations
}

// CanSetReceived evaluates whether a procurement update may set a new
// received quantity.
// Rules:
// - Quantity must not be negative
// - Quantity must cover the sum already allocated, so a negative delta can
//   always be absorbed by non-overridden allocations
func CanSetReceived(ctx ReceiveContext) GuardResult {
	if ctx.NewReceivedQty < 0 {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("received quantity for %s cannot be negative", ctx.BatchLineID),
		}
	}
	if ctx.NewReceivedQty < ctx.AllocatedTotal {
		return GuardResult{
			Allowed: false,
			Reason: fmt.Sprintf("received quantity %d for %s is below the %d unit(s) already allocated; reduce allocations first",
				ctx.NewReceivedQty, ctx.BatchLineID, ctx.AllocatedTotal),
		}
	}
	return GuardResult{Allowed: true}
}

// OverrideEdit is one manual allocation edit under evaluation.
type OverrideEdit struct {
	AllocationID string
	WorkOrderID  string
	NewQty       int
	RequiredQty  int // required quantity of the target part line
}

// OverrideContext provides context for manual allocation override guards.
type OverrideContext struct {
	BatchLineID     string
	LineReceivedQty int
	Edits           []OverrideEdit
	NewTotal        int // sum over all of the line's allocations after the edits
}

// CanApplyOverride evaluates whether a set of manual allocation edits is
// within capacity.
// Rules:
// - No edit may be negative
// - No edit may exceed its work-order part line's required quantity
// - The new total across the batch line's allocations must not exceed the
//   line's received quantity
func CanApplyOverride(ctx OverrideContext) GuardResult {
	for _, e := range ctx.Edits {
		if e.NewQty < 0 {
			return GuardResult{
				Allowed: false,
				Reason:  fmt.Sprintf("allocation %s cannot be set to a negative quantity", e.AllocationID),
			}
		}
		if e.NewQty > e.RequiredQty {
			return GuardResult{
				Allowed: false,
				Reason: fmt.Sprintf("allocation %s: %d exceeds the %d unit(s) required by %s",
					e.AllocationID, e.NewQty, e.RequiredQty, e.WorkOrderID),
			}
		}
	}
	if ctx.NewTotal > ctx.LineReceivedQty {
		return GuardResult{
			Allowed: false,
			Reason: fmt.Sprintf("total allocated %d exceeds the %d unit(s) received on %s",
				ctx.NewTotal, ctx.LineReceivedQty, ctx.BatchLineID),
		}
	}
	return GuardResult{Allowed: true}
}
