package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/example/depot/internal/core/allocation"
	"github.com/example/depot/internal/ports/secondary"
)

// Hand-rolled repository mocks backed by slices so iteration order is
// deterministic. Error fields inject failures for the paths that need them.

type mockWorkOrderRepo struct {
	workOrders []*secondary.WorkOrderRecord
	partLines  []*secondary.PartLineRecord

	setReceivedErr error
}

func (m *mockWorkOrderRepo) GetByID(ctx context.Context, id string) (*secondary.WorkOrderRecord, error) {
	for _, wo := range m.workOrders {
		if wo.ID == id {
			return wo, nil
		}
	}
	return nil, fmt.Errorf("work order %s not found", id)
}

func (m *mockWorkOrderRepo) List(ctx context.Context, filters secondary.WorkOrderFilters) ([]*secondary.WorkOrderRecord, error) {
	var result []*secondary.WorkOrderRecord
	for _, wo := range m.workOrders {
		if filters.Brigade != "" && wo.Brigade != filters.Brigade {
			continue
		}
		if filters.Workshop != "" && wo.Workshop != filters.Workshop {
			continue
		}
		if filters.Status != "" && wo.Status != filters.Status {
			continue
		}
		if filters.Priority != "" && wo.Priority != filters.Priority {
			continue
		}
		result = append(result, wo)
	}
	return result, nil
}

func (m *mockWorkOrderRepo) GetPartLine(ctx context.Context, lineID string) (*secondary.PartLineRecord, error) {
	for _, pl := range m.partLines {
		if pl.ID == lineID {
			return pl, nil
		}
	}
	return nil, fmt.Errorf("part line %s not found", lineID)
}

func (m *mockWorkOrderRepo) ListPartLines(ctx context.Context, workOrderIDs []string) ([]*secondary.PartLineRecord, error) {
	if len(workOrderIDs) == 0 {
		return m.partLines, nil
	}
	want := make(map[string]bool, len(workOrderIDs))
	for _, id := range workOrderIDs {
		want[id] = true
	}
	var result []*secondary.PartLineRecord
	for _, pl := range m.partLines {
		if want[pl.WorkOrderID] {
			result = append(result, pl)
		}
	}
	return result, nil
}

func (m *mockWorkOrderRepo) SetPartLineReceived(ctx context.Context, lineID string, receivedQty int) error {
	if m.setReceivedErr != nil {
		return m.setReceivedErr
	}
	for _, pl := range m.partLines {
		if pl.ID == lineID {
			pl.ReceivedQty = receivedQty
			return nil
		}
	}
	return fmt.Errorf("part line %s not found", lineID)
}

type mockBatchRepo struct {
	batches []*secondary.BatchRecord

	// sibling stores that CreateGraph distributes into
	lines  *mockBatchLineRepo
	allocs *mockAllocationRepo
	audits *mockAuditRepo

	createGraphCalled bool
	createGraphErr    error
	statusUpdates     []string // "BATCH-0001:Closed"
}

func (m *mockBatchRepo) GetByID(ctx context.Context, id string) (*secondary.BatchRecord, error) {
	for _, b := range m.batches {
		if b.ID == id {
			return b, nil
		}
	}
	return nil, fmt.Errorf("batch %s not found", id)
}

func (m *mockBatchRepo) List(ctx context.Context, filters secondary.BatchFilters) ([]*secondary.BatchRecord, error) {
	var result []*secondary.BatchRecord
	for _, b := range m.batches {
		if filters.Brigade != "" && b.Brigade != filters.Brigade {
			continue
		}
		if filters.Status != "" && b.Status != filters.Status {
			continue
		}
		result = append(result, b)
	}
	return result, nil
}

func (m *mockBatchRepo) ListIDs(ctx context.Context) ([]string, error) {
	ids := make([]string, len(m.batches))
	for i, b := range m.batches {
		ids[i] = b.ID
	}
	return ids, nil
}

func (m *mockBatchRepo) UpdateStatus(ctx context.Context, id, status string) error {
	for _, b := range m.batches {
		if b.ID == id {
			b.Status = status
			m.statusUpdates = append(m.statusUpdates, id+":"+status)
			return nil
		}
	}
	return fmt.Errorf("batch %s not found", id)
}

func (m *mockBatchRepo) CreateGraph(ctx context.Context, batch *secondary.BatchRecord, lines []*secondary.BatchLineRecord, allocs []*secondary.AllocationRecord, audit *secondary.AuditRecord) error {
	m.createGraphCalled = true
	if m.createGraphErr != nil {
		return m.createGraphErr
	}
	m.batches = append(m.batches, batch)
	if m.lines != nil {
		m.lines.lines = append(m.lines.lines, lines...)
	}
	if m.allocs != nil {
		for _, a := range allocs {
			m.allocs.addFromRecord(a)
		}
	}
	if m.audits != nil {
		m.audits.entries = append(m.audits.entries, audit)
	}
	return nil
}

type mockBatchLineRepo struct {
	lines []*secondary.BatchLineRecord

	updateCalled bool
	updateErr    error
}

func (m *mockBatchLineRepo) GetByID(ctx context.Context, id string) (*secondary.BatchLineRecord, error) {
	for _, l := range m.lines {
		if l.ID == id {
			return l, nil
		}
	}
	return nil, fmt.Errorf("batch line %s not found", id)
}

func (m *mockBatchLineRepo) ListByBatch(ctx context.Context, batchID string) ([]*secondary.BatchLineRecord, error) {
	var result []*secondary.BatchLineRecord
	for _, l := range m.lines {
		if l.BatchID == batchID {
			result = append(result, l)
		}
	}
	return result, nil
}

func (m *mockBatchLineRepo) ListIDs(ctx context.Context) ([]string, error) {
	ids := make([]string, len(m.lines))
	for i, l := range m.lines {
		ids[i] = l.ID
	}
	return ids, nil
}

func (m *mockBatchLineRepo) UpdateProcurement(ctx context.Context, rec *secondary.BatchLineRecord) error {
	m.updateCalled = true
	if m.updateErr != nil {
		return m.updateErr
	}
	for i, l := range m.lines {
		if l.ID == rec.ID {
			clone := *rec
			m.lines[i] = &clone
			return nil
		}
	}
	return fmt.Errorf("batch line %s not found", rec.ID)
}

// mockAllocationRepo keeps each allocation as a joined row so the engine's
// working set and the plain record views come from one place.
type mockAllocationRepo struct {
	rows []*secondary.AllocationRowRecord

	lockedLineIDs []string
	updateQtyErr  error
	resetCalled   bool
}

func (m *mockAllocationRepo) addFromRecord(a *secondary.AllocationRecord) {
	m.rows = append(m.rows, &secondary.AllocationRowRecord{
		AllocationID: a.ID,
		BatchLineID:  a.BatchLineID,
		WorkOrderID:  a.WorkOrderID,
		LineID:       a.LineID,
		AllocatedQty: a.AllocatedQty,
		Status:       a.Status,
		Notes:        a.Notes,
	})
}

func (m *mockAllocationRepo) rowByID(id string) *secondary.AllocationRowRecord {
	for _, r := range m.rows {
		if r.AllocationID == id {
			return r
		}
	}
	return nil
}

func (m *mockAllocationRepo) GetByID(ctx context.Context, id string) (*secondary.AllocationRecord, error) {
	r := m.rowByID(id)
	if r == nil {
		return nil, fmt.Errorf("allocation %s not found", id)
	}
	return rowToRecord(r), nil
}

func (m *mockAllocationRepo) ListByBatchLine(ctx context.Context, batchLineID string) ([]*secondary.AllocationRecord, error) {
	var result []*secondary.AllocationRecord
	for _, r := range m.rows {
		if r.BatchLineID == batchLineID {
			result = append(result, rowToRecord(r))
		}
	}
	return result, nil
}

func (m *mockAllocationRepo) ListRows(ctx context.Context, batchLineID string) ([]*secondary.AllocationRowRecord, error) {
	var result []*secondary.AllocationRowRecord
	for _, r := range m.rows {
		if r.BatchLineID == batchLineID {
			clone := *r
			result = append(result, &clone)
		}
	}
	return result, nil
}

func (m *mockAllocationRepo) ListIDs(ctx context.Context) ([]string, error) {
	ids := make([]string, len(m.rows))
	for i, r := range m.rows {
		ids[i] = r.AllocationID
	}
	return ids, nil
}

func (m *mockAllocationRepo) SumForBatchLine(ctx context.Context, batchLineID string) (int, error) {
	sum := 0
	for _, r := range m.rows {
		if r.BatchLineID == batchLineID {
			sum += r.AllocatedQty
		}
	}
	return sum, nil
}

func (m *mockAllocationRepo) SumForLine(ctx context.Context, lineID string) (int, error) {
	sum := 0
	for _, r := range m.rows {
		if r.LineID == lineID {
			sum += r.AllocatedQty
		}
	}
	return sum, nil
}

func (m *mockAllocationRepo) UpdateQty(ctx context.Context, id string, qty int) error {
	if m.updateQtyErr != nil {
		return m.updateQtyErr
	}
	r := m.rowByID(id)
	if r == nil {
		return fmt.Errorf("allocation %s not found", id)
	}
	r.AllocatedQty = qty
	return nil
}

func (m *mockAllocationRepo) ApplyOverride(ctx context.Context, id string, qty int, status, notes string) error {
	r := m.rowByID(id)
	if r == nil {
		return fmt.Errorf("allocation %s not found", id)
	}
	r.AllocatedQty = qty
	r.Status = status
	r.Notes = notes
	return nil
}

func (m *mockAllocationRepo) ResetForBatchLine(ctx context.Context, batchLineID string) error {
	m.resetCalled = true
	for _, r := range m.rows {
		if r.BatchLineID == batchLineID {
			r.AllocatedQty = 0
			r.Status = allocation.StatusAllocated
		}
	}
	return nil
}

func (m *mockAllocationRepo) LockedLineIDs(ctx context.Context) ([]string, error) {
	return m.lockedLineIDs, nil
}

func rowToRecord(r *secondary.AllocationRowRecord) *secondary.AllocationRecord {
	return &secondary.AllocationRecord{
		ID:           r.AllocationID,
		BatchLineID:  r.BatchLineID,
		WorkOrderID:  r.WorkOrderID,
		LineID:       r.LineID,
		AllocatedQty: r.AllocatedQty,
		Status:       r.Status,
		Notes:        r.Notes,
	}
}

type mockAuditRepo struct {
	entries   []*secondary.AuditRecord
	appendErr error
}

func (m *mockAuditRepo) Append(ctx context.Context, rec *secondary.AuditRecord) error {
	if m.appendErr != nil {
		return m.appendErr
	}
	m.entries = append(m.entries, rec)
	return nil
}

func (m *mockAuditRepo) List(ctx context.Context, filters secondary.AuditFilters) ([]*secondary.AuditRecord, error) {
	var result []*secondary.AuditRecord
	for _, e := range m.entries {
		if filters.EntityType != "" && e.EntityType != filters.EntityType {
			continue
		}
		if filters.EntityID != "" && e.EntityID != filters.EntityID {
			continue
		}
		if filters.Action != "" && e.Action != filters.Action {
			continue
		}
		result = append(result, e)
	}
	return result, nil
}

func (m *mockAuditRepo) ListIDs(ctx context.Context) ([]string, error) {
	ids := make([]string, len(m.entries))
	for i, e := range m.entries {
		ids[i] = e.ID
	}
	return ids, nil
}

// actions returns the recorded audit actions in append order.
func (m *mockAuditRepo) actions() []string {
	actions := make([]string, len(m.entries))
	for i, e := range m.entries {
		actions[i] = e.Action
	}
	return actions
}

func (m *mockAuditRepo) hasAction(action string) bool {
	for _, e := range m.entries {
		if e.Action == action {
			return true
		}
	}
	return false
}

type mockExceptionRepo struct {
	exceptions []*secondary.ExceptionRecord
	createErr  error
}

func (m *mockExceptionRepo) Create(ctx context.Context, rec *secondary.ExceptionRecord) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.exceptions = append(m.exceptions, rec)
	return nil
}

func (m *mockExceptionRepo) GetByID(ctx context.Context, id string) (*secondary.ExceptionRecord, error) {
	for _, e := range m.exceptions {
		if e.ID == id {
			return e, nil
		}
	}
	return nil, fmt.Errorf("exception %s not found", id)
}

func (m *mockExceptionRepo) List(ctx context.Context, filters secondary.ExceptionFilters) ([]*secondary.ExceptionRecord, error) {
	var result []*secondary.ExceptionRecord
	for _, e := range m.exceptions {
		if filters.BatchID != "" && e.BatchID != filters.BatchID {
			continue
		}
		if filters.Status != "" && e.Status != filters.Status {
			continue
		}
		if filters.Type != "" && e.Type != filters.Type {
			continue
		}
		result = append(result, e)
	}
	return result, nil
}

func (m *mockExceptionRepo) UpdateStatus(ctx context.Context, id, status string) error {
	for _, e := range m.exceptions {
		if e.ID == id {
			e.Status = status
			return nil
		}
	}
	return fmt.Errorf("exception %s not found", id)
}

func (m *mockExceptionRepo) ListIDs(ctx context.Context) ([]string, error) {
	ids := make([]string, len(m.exceptions))
	for i, e := range m.exceptions {
		ids[i] = e.ID
	}
	return ids, nil
}

type mockSettingsRepo struct {
	values map[string]string
	getErr error
}

func newMockSettingsRepo() *mockSettingsRepo {
	return &mockSettingsRepo{values: map[string]string{
		secondary.SettingAllocationMode: string(allocation.ModePriorityFIFO),
		secondary.SettingCurrentUser:    "duty-officer",
	}}
}

func (m *mockSettingsRepo) Get(ctx context.Context, key string) (string, error) {
	if m.getErr != nil {
		return "", m.getErr
	}
	value, ok := m.values[key]
	if !ok {
		return "", fmt.Errorf("setting %s not found", key)
	}
	return value, nil
}

func (m *mockSettingsRepo) Set(ctx context.Context, key, value string) error {
	m.values[key] = value
	return nil
}

// Interface checks for the mocks.
var (
	_ secondary.WorkOrderRepository  = (*mockWorkOrderRepo)(nil)
	_ secondary.BatchRepository      = (*mockBatchRepo)(nil)
	_ secondary.BatchLineRepository  = (*mockBatchLineRepo)(nil)
	_ secondary.AllocationRepository = (*mockAllocationRepo)(nil)
	_ secondary.AuditRepository      = (*mockAuditRepo)(nil)
	_ secondary.ExceptionRepository  = (*mockExceptionRepo)(nil)
	_ secondary.SettingsRepository   = (*mockSettingsRepo)(nil)
)

// fixture bundles one instance of every mock repository with the services
// wired over them, the usual starting point of a service test.
type fixture struct {
	workOrders *mockWorkOrderRepo
	batches    *mockBatchRepo
	batchLines *mockBatchLineRepo
	allocs     *mockAllocationRepo
	audits     *mockAuditRepo
	exceptions *mockExceptionRepo
	settings   *mockSettingsRepo
}

func newFixture() *fixture {
	f := &fixture{
		workOrders: &mockWorkOrderRepo{},
		batchLines: &mockBatchLineRepo{},
		allocs:     &mockAllocationRepo{},
		audits:     &mockAuditRepo{},
		exceptions: &mockExceptionRepo{},
		settings:   newMockSettingsRepo(),
	}
	f.batches = &mockBatchRepo{lines: f.batchLines, allocs: f.allocs, audits: f.audits}
	return f
}

func (f *fixture) batchService() *BatchServiceImpl {
	return NewBatchService(f.workOrders, f.batches, f.batchLines, f.allocs, f.audits, f.settings)
}

func (f *fixture) procurementService() *ProcurementServiceImpl {
	return NewProcurementService(f.workOrders, f.batches, f.batchLines, f.allocs, f.audits, f.settings)
}

func (f *fixture) allocationService() *AllocationServiceImpl {
	return NewAllocationService(f.workOrders, f.batches, f.batchLines, f.allocs, f.audits, f.settings)
}

func (f *fixture) exceptionService() *ExceptionServiceImpl {
	return NewExceptionService(f.batches, f.exceptions, f.audits, f.settings)
}

func (f *fixture) reportService() *ReportServiceImpl {
	return NewReportService(f.workOrders, f.batches, f.batchLines, f.allocs)
}

// Seed helpers.

func (f *fixture) seedWorkOrder(id, brigade, priority string, created time.Time) {
	f.workOrders.workOrders = append(f.workOrders.workOrders, &secondary.WorkOrderRecord{
		ID:          id,
		Brigade:     brigade,
		Workshop:    "Central Workshop",
		CreatedDate: created,
		Priority:    priority,
		Status:      "Waiting Parts",
	})
}

func (f *fixture) seedPartLine(id, workOrderID, partNo string, required, received int) {
	f.workOrders.partLines = append(f.workOrders.partLines, &secondary.PartLineRecord{
		ID:          id,
		WorkOrderID: workOrderID,
		PartNo:      partNo,
		Description: "part " + strings.ToLower(partNo),
		RequiredQty: required,
		ReceivedQty: received,
	})
}

func (f *fixture) seedBatch(id, status string) {
	f.batches.batches = append(f.batches.batches, &secondary.BatchRecord{
		ID:          id,
		Brigade:     "Brigade-7",
		CreatedBy:   "duty-officer",
		CreatedDate: time.Now(),
		ApprovalRef: "APR-1",
		Status:      status,
	})
}

func (f *fixture) seedBatchLine(id, batchID, partNo string, totalRequired, received int) {
	f.batchLines.lines = append(f.batchLines.lines, &secondary.BatchLineRecord{
		ID:               id,
		BatchID:          batchID,
		PartNo:           partNo,
		Description:      "part " + strings.ToLower(partNo),
		TotalRequiredQty: totalRequired,
		ReceivedQty:      received,
	})
}

func (f *fixture) seedAllocationRow(row secondary.AllocationRowRecord) {
	clone := row
	f.allocs.rows = append(f.allocs.rows, &clone)
}
