package batch

import (
	"strings"
	"testing"

	"github.com/example/depot/internal/core/lifecycle"
)

func TestCanCreateBatch(t *testing.T) {
	valid := CreateBatchContext{
		Brigade: "1st Brigade",
		WorkOrders: []WorkOrderSummary{
			{ID: "WO-0001", Brigade: "1st Brigade"},
			{ID: "WO-0002", Brigade: "1st Brigade"},
		},
		EligibleLineIDs: []string{"LN-0001", "LN-0002"},
		ApprovalRef:     "APPREF-2026-001",
		CreatedBy:       "sgt.harris",
	}

	tests := []struct {
		name        string
		mutate      func(ctx CreateBatchContext) CreateBatchContext
		wantAllowed bool
		wantReason  string
	}{
		{
			name:        "valid selection",
			mutate:      func(ctx CreateBatchContext) CreateBatchContext { return ctx },
			wantAllowed: true,
		},
		{
			name: "brigade mismatch rejected",
			mutate: func(ctx CreateBatchContext) CreateBatchContext {
				ctx.WorkOrders = append(ctx.WorkOrders, WorkOrderSummary{ID: "WO-0007", Brigade: "2nd Brigade"})
				return ctx
			},
			wantAllowed: false,
			wantReason:  "one brigade per batch",
		},
		{
			name: "empty selection rejected",
			mutate: func(ctx CreateBatchContext) CreateBatchContext {
				ctx.WorkOrders = nil
				return ctx
			},
			wantAllowed: false,
			wantReason:  "at least one work order",
		},
		{
			name: "all lines locked in active batches rejected",
			mutate: func(ctx CreateBatchContext) CreateBatchContext {
				ctx.LockedLineIDs = []string{"LN-0001", "LN-0002"}
				return ctx
			},
			wantAllowed: false,
			wantReason:  "already in an active batch",
		},
		{
			name: "partially locked selection allowed",
			mutate: func(ctx CreateBatchContext) CreateBatchContext {
				ctx.LockedLineIDs = []string{"LN-0001"}
				return ctx
			},
			wantAllowed: true,
		},
		{
			name: "missing approval ref rejected",
			mutate: func(ctx CreateBatchContext) CreateBatchContext {
				ctx.ApprovalRef = "  "
				return ctx
			},
			wantAllowed: false,
			wantReason:  "approval reference",
		},
		{
			name: "missing creator rejected",
			mutate: func(ctx CreateBatchContext) CreateBatchContext {
				ctx.CreatedBy = ""
				return ctx
			},
			wantAllowed: false,
			wantReason:  "created-by",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CanCreateBatch(tt.mutate(valid))
			if result.Allowed != tt.wantAllowed {
				t.Errorf("Allowed = %v, want %v (reason: %s)", result.Allowed, tt.wantAllowed, result.Reason)
			}
			if tt.wantReason != "" && !strings.Contains(result.Reason, tt.wantReason) {
				t.Errorf("Reason = %q, want it to mention %q", result.Reason, tt.wantReason)
			}
		})
	}
}

func TestCanEditBatchLine(t *testing.T) {
	if r := CanEditBatchLine(EditLineContext{BatchID: "BATCH-0001", BatchStatus: lifecycle.StatusClosed}); r.Allowed {
		t.Error("closed batch lines must not be editable")
	}
	for _, status := range []string{lifecycle.StatusDraft, lifecycle.StatusUnderProcurement, lifecycle.StatusFullyReceived} {
		if r := CanEditBatchLine(EditLineContext{BatchID: "BATCH-0001", BatchStatus: status}); !r.Allowed {
			t.Errorf("status %q should allow line edits: %s", status, r.Reason)
		}
	}
}

func TestCanSetReceived(t *testing.T) {
	tests := []struct {
		name        string
		ctx         ReceiveContext
		wantAllowed bool
	}{
		{
			name:        "received covers allocations",
			ctx:         ReceiveContext{BatchLineID: "BL-0001", NewReceivedQty: 25, AllocatedTotal: 25},
			wantAllowed: true,
		},
		{
			name:        "received above allocations",
			ctx:         ReceiveContext{BatchLineID: "BL-0001", NewReceivedQty: 30, AllocatedTotal: 25},
			wantAllowed: true,
		},
		{
			name:        "received below allocations rejected",
			ctx:         ReceiveContext{BatchLineID: "BL-0001", NewReceivedQty: 20, AllocatedTotal: 25},
			wantAllowed: false,
		},
		{
			name:        "negative rejected",
			ctx:         ReceiveContext{BatchLineID: "BL-0001", NewReceivedQty: -1},
			wantAllowed: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CanSetReceived(tt.ctx)
			if result.Allowed != tt.wantAllowed {
				t.Errorf("Allowed = %v, want %v (reason: %s)", result.Allowed, tt.wantAllowed, result.Reason)
			}
		})
	}
}

func TestCanApplyOverride(t *testing.T) {
	tests := []struct {
		name        string
		ctx         OverrideContext
		wantAllowed bool
		wantReason  string
	}{
		{
			name: "within capacity",
			ctx: OverrideContext{
				BatchLineID:     "BL-0001",
				LineReceivedQty: 25,
				Edits:           []OverrideEdit{{AllocationID: "ALLOC-0001", WorkOrderID: "WO-0001", NewQty: 17, RequiredQty: 20}},
				NewTotal:        22,
			},
			wantAllowed: true,
		},
		{
			name: "exceeds line received quantity",
			ctx: OverrideContext{
				BatchLineID:     "BL-0001",
				LineReceivedQty: 25,
				Edits:           []OverrideEdit{{AllocationID: "ALLOC-0001", WorkOrderID: "WO-0001", NewQty: 20, RequiredQty: 20}},
				NewTotal:        26,
			},
			wantAllowed: false,
			wantReason:  "exceeds the 25 unit(s) received",
		},
		{
			name: "exceeds work-order requirement",
			ctx: OverrideContext{
				BatchLineID:     "BL-0001",
				LineReceivedQty: 40,
				Edits:           []OverrideEdit{{AllocationID: "ALLOC-0001", WorkOrderID: "WO-0001", NewQty: 23, RequiredQty: 20}},
				NewTotal:        23,
			},
			wantAllowed: false,
			wantReason:  "required by WO-0001",
		},
		{
			name: "negative edit",
			ctx: OverrideContext{
				BatchLineID:     "BL-0001",
				LineReceivedQty: 25,
				Edits:           []OverrideEdit{{AllocationID: "ALLOC-0001", WorkOrderID: "WO-0001", NewQty: -2, RequiredQty: 20}},
				NewTotal:        0,
			},
			wantAllowed: false,
			wantReason:  "negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CanApplyOverride(tt.ctx)
			if result.Allowed != tt.wantAllowed {
				t.Errorf("Allowed = %v, want %v (reason: %s)", result.Allowed, tt.wantAllowed, result.Reason)
			}
			if tt.wantReason != "" && !strings.Contains(result.Reason, tt.wantReason) {
				t.Errorf("Reason = %q, want it to mention %q", result.Reason, tt.wantReason)
			}
		})
	}
}
