package app

import (
	"context"
	"testing"
	"time"

	"github.com/example/depot/internal/ports/primary"
)

func TestGetWorkOrderDerivesLineStatus(t *testing.T) {
	f := newFixture()
	f.seedWorkOrder("WO-0001", "Brigade-7", "Critical", time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC))
	f.seedPartLine("LN-0001", "WO-0001", "PART-001", 10, 0)
	f.seedPartLine("LN-0002", "WO-0001", "PART-002", 8, 3)
	f.seedPartLine("LN-0003", "WO-0001", "PART-003", 5, 5)
	svc := NewWorkOrderService(f.workOrders)

	wo, err := svc.GetWorkOrder(context.Background(), "WO-0001")
	if err != nil {
		t.Fatalf("GetWorkOrder failed: %v", err)
	}
	if wo.CreatedDate != "2025-01-10" {
		t.Errorf("created date = %s", wo.CreatedDate)
	}
	if len(wo.PartLines) != 3 {
		t.Fatalf("expected 3 part lines, got %d", len(wo.PartLines))
	}

	wantStatus := []string{"Waiting", "Partial", "Ready"}
	wantOutstanding := []int{10, 5, 0}
	for i, pl := range wo.PartLines {
		if pl.Status != wantStatus[i] {
			t.Errorf("line %s status = %s, want %s", pl.ID, pl.Status, wantStatus[i])
		}
		if pl.OutstandingQty != wantOutstanding[i] {
			t.Errorf("line %s outstanding = %d, want %d", pl.ID, pl.OutstandingQty, wantOutstanding[i])
		}
	}

	if _, err := svc.GetWorkOrder(context.Background(), "WO-9999"); err == nil {
		t.Fatal("expected error for missing work order")
	}
}

func TestListWorkOrdersFilters(t *testing.T) {
	f := newFixture()
	f.seedWorkOrder("WO-0001", "Brigade-7", "Critical", time.Now())
	f.seedWorkOrder("WO-0002", "Brigade-7", "Normal", time.Now())
	f.seedWorkOrder("WO-0003", "Brigade-9", "Critical", time.Now())
	svc := NewWorkOrderService(f.workOrders)

	byBrigade, err := svc.ListWorkOrders(context.Background(), primary.WorkOrderFilters{Brigade: "Brigade-7"})
	if err != nil {
		t.Fatalf("ListWorkOrders failed: %v", err)
	}
	if len(byBrigade) != 2 {
		t.Errorf("expected 2 work orders for Brigade-7, got %d", len(byBrigade))
	}

	critical, err := svc.ListWorkOrders(context.Background(), primary.WorkOrderFilters{Priority: "Critical"})
	if err != nil {
		t.Fatalf("ListWorkOrders failed: %v", err)
	}
	if len(critical) != 2 {
		t.Errorf("expected 2 critical work orders, got %d", len(critical))
	}
}
