package app

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/example/depot/internal/core/allocation"
	"github.com/example/depot/internal/core/lifecycle"
	"github.com/example/depot/internal/ports/primary"
	"github.com/example/depot/internal/ports/secondary"
)

// seedReceiptScenario sets up one batch line feeding two work orders, the
// critical one older than the normal one.
func seedReceiptScenario(f *fixture, batchStatus string) {
	f.seedBatch("BATCH-0001", batchStatus)
	f.seedBatchLine("BL-0001", "BATCH-0001", "P-100", 25, 0)
	f.seedWorkOrder("WO-0001", "Brigade-7", primary.PriorityCritical, time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC))
	f.seedWorkOrder("WO-0002", "Brigade-7", primary.PriorityNormal, time.Date(2025, 1, 12, 0, 0, 0, 0, time.UTC))
	f.seedPartLine("L-0001", "WO-0001", "P-100", 15, 0)
	f.seedPartLine("L-0002", "WO-0002", "P-100", 10, 0)
	f.seedAllocationRow(secondary.AllocationRowRecord{
		AllocationID: "ALLOC-0001", BatchLineID: "BL-0001", WorkOrderID: "WO-0001", LineID: "L-0001",
		AllocatedQty: 0, Status: allocation.StatusAllocated,
		Priority: primary.PriorityCritical, WOCreatedDate: time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC), RequiredQty: 15,
	})
	f.seedAllocationRow(secondary.AllocationRowRecord{
		AllocationID: "ALLOC-0002", BatchLineID: "BL-0001", WorkOrderID: "WO-0002", LineID: "L-0002",
		AllocatedQty: 0, Status: allocation.StatusAllocated,
		Priority: primary.PriorityNormal, WOCreatedDate: time.Date(2025, 1, 12, 0, 0, 0, 0, time.UTC), RequiredQty: 10,
	})
}

func updateRequest(received int) primary.UpdateProcurementLineRequest {
	return primary.UpdateProcurementLineRequest{
		BatchLineID:    "BL-0001",
		Vendor:         "Hydraulik Kft",
		PONumbers:      "PO-55",
		OrderedQty:     25,
		NewReceivedQty: received,
		ChangedBy:      "proc.clerk",
	}
}

func TestUpdateProcurementLinePositiveDeltaRunsEngine(t *testing.T) {
	f := newFixture()
	seedReceiptScenario(f, lifecycle.StatusUnderProcurement)

	if err := f.procurementService().UpdateProcurementLine(context.Background(), updateRequest(15)); err != nil {
		t.Fatalf("UpdateProcurementLine failed: %v", err)
	}

	// Priority-first fill: the critical work order absorbs everything.
	if got := f.allocs.rowByID("ALLOC-0001").AllocatedQty; got != 15 {
		t.Errorf("ALLOC-0001 = %d, want 15", got)
	}
	if got := f.allocs.rowByID("ALLOC-0002").AllocatedQty; got != 0 {
		t.Errorf("ALLOC-0002 = %d, want 0", got)
	}

	// The touched part line's received quantity is recomputed from its
	// allocations.
	pl, _ := f.workOrders.GetPartLine(context.Background(), "L-0001")
	if pl.ReceivedQty != 15 {
		t.Errorf("L-0001 received = %d, want 15", pl.ReceivedQty)
	}

	// 15 of 25 received derives Partially Received.
	if got := f.batches.batches[0].Status; got != lifecycle.StatusPartiallyReceived {
		t.Errorf("batch status = %s, want %s", got, lifecycle.StatusPartiallyReceived)
	}
	if !f.audits.hasAction(ActionStatusAuto) {
		t.Errorf("expected STATUS_AUTO audit entry, got %v", f.audits.actions())
	}
	if !f.audits.hasAction(ActionProcUpdate) {
		t.Errorf("expected PROC_UPDATE audit entry, got %v", f.audits.actions())
	}
}

func TestUpdateProcurementLineFullReceiptDerivesFullyReceived(t *testing.T) {
	f := newFixture()
	seedReceiptScenario(f, lifecycle.StatusUnderProcurement)

	if err := f.procurementService().UpdateProcurementLine(context.Background(), updateRequest(25)); err != nil {
		t.Fatalf("UpdateProcurementLine failed: %v", err)
	}
	if got := f.allocs.rowByID("ALLOC-0001").AllocatedQty; got != 15 {
		t.Errorf("ALLOC-0001 = %d, want 15", got)
	}
	if got := f.allocs.rowByID("ALLOC-0002").AllocatedQty; got != 10 {
		t.Errorf("ALLOC-0002 = %d, want 10", got)
	}
	if got := f.batches.batches[0].Status; got != lifecycle.StatusFullyReceived {
		t.Errorf("batch status = %s, want %s", got, lifecycle.StatusFullyReceived)
	}
}

func TestUpdateProcurementLineVendorOnlySkipsEngine(t *testing.T) {
	f := newFixture()
	seedReceiptScenario(f, lifecycle.StatusUnderProcurement)

	req := updateRequest(0)
	req.ExpectedDelivery = "2025-03-01"
	if err := f.procurementService().UpdateProcurementLine(context.Background(), req); err != nil {
		t.Fatalf("UpdateProcurementLine failed: %v", err)
	}

	line, _ := f.batchLines.GetByID(context.Background(), "BL-0001")
	if line.Vendor != "Hydraulik Kft" || line.ExpectedDelivery != "2025-03-01" {
		t.Errorf("procurement fields not written: %+v", line)
	}
	for _, r := range f.allocs.rows {
		if r.AllocatedQty != 0 {
			t.Errorf("allocation %s changed without a received delta", r.AllocationID)
		}
	}
	if !f.audits.hasAction(ActionProcUpdate) {
		t.Errorf("expected PROC_UPDATE audit entry, got %v", f.audits.actions())
	}
}

func TestUpdateProcurementLineDraftBatchNotAutoAdvanced(t *testing.T) {
	f := newFixture()
	seedReceiptScenario(f, lifecycle.StatusDraft)

	if err := f.procurementService().UpdateProcurementLine(context.Background(), updateRequest(15)); err != nil {
		t.Fatalf("UpdateProcurementLine failed: %v", err)
	}
	if got := f.batches.batches[0].Status; got != lifecycle.StatusDraft {
		t.Errorf("draft batch auto-advanced to %s", got)
	}
	if f.audits.hasAction(ActionStatusAuto) {
		t.Errorf("STATUS_AUTO recorded for a draft batch: %v", f.audits.actions())
	}
}

func TestUpdateProcurementLineValidationWritesNothing(t *testing.T) {
	tests := []struct {
		name        string
		batchStatus string
		prepare     func(f *fixture)
		received    int
		wantErr     string
	}{
		{
			name:        "closed batch",
			batchStatus: lifecycle.StatusClosed,
			received:    15,
			wantErr:     "closed",
		},
		{
			name:        "negative received quantity",
			batchStatus: lifecycle.StatusUnderProcurement,
			received:    -1,
			wantErr:     "negative",
		},
		{
			name:        "received below allocated total",
			batchStatus: lifecycle.StatusUnderProcurement,
			prepare: func(f *fixture) {
				f.allocs.rowByID("ALLOC-0001").AllocatedQty = 10
			},
			received: 8,
			wantErr:  "already allocated",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			seedReceiptScenario(f, tt.batchStatus)
			if tt.prepare != nil {
				tt.prepare(f)
			}

			err := f.procurementService().UpdateProcurementLine(context.Background(), updateRequest(tt.received))
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
			if f.batchLines.updateCalled {
				t.Error("UpdateProcurement called despite validation failure")
			}
			if len(f.audits.entries) != 0 {
				t.Errorf("audit entries written despite validation failure: %v", f.audits.actions())
			}
		})
	}
}
