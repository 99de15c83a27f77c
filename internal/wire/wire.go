// Package wire provides dependency injection for the depot application.
// It creates singleton services with lazy initialization.
package wire

import (
	"log"
	"sync"

	"github.com/example/depot/internal/adapters/sqlite"
	"github.com/example/depot/internal/app"
	"github.com/example/depot/internal/db"
	"github.com/example/depot/internal/ports/primary"
)

var (
	workOrderService   primary.WorkOrderService
	batchService       primary.BatchService
	procurementService primary.ProcurementService
	allocationService  primary.AllocationService
	exceptionService   primary.ExceptionService
	settingsService    primary.SettingsService
	reportService      primary.ReportService
	auditService       primary.AuditService
	once               sync.Once
)

// WorkOrderService returns the singleton WorkOrderService instance.
func WorkOrderService() primary.WorkOrderService {
	once.Do(initServices)
	return workOrderService
}

// BatchService returns the singleton BatchService instance.
func BatchService() primary.BatchService {
	once.Do(initServices)
	return batchService
}

// ProcurementService returns the singleton ProcurementService instance.
func ProcurementService() primary.ProcurementService {
	once.Do(initServices)
	return procurementService
}

// AllocationService returns the singleton AllocationService instance.
func AllocationService() primary.AllocationService {
	once.Do(initServices)
	return allocationService
}

// ExceptionService returns the singleton ExceptionService instance.
func ExceptionService() primary.ExceptionService {
	once.Do(initServices)
	return exceptionService
}

// SettingsService returns the singleton SettingsService instance.
func SettingsService() primary.SettingsService {
	once.Do(initServices)
	return settingsService
}

// ReportService returns the singleton ReportService instance.
func ReportService() primary.ReportService {
	once.Do(initServices)
	return reportService
}

// AuditService returns the singleton AuditService instance.
func AuditService() primary.AuditService {
	once.Do(initServices)
	return auditService
}

// initServices initializes all services and their dependencies.
// This is called once via sync.Once.
func initServices() {
	database, err := db.GetDB()
	if err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	// Repository adapters (secondary ports) with injected DB
	workOrders := sqlite.NewWorkOrderRepository(database)
	batches := sqlite.NewBatchRepository(database)
	batchLines := sqlite.NewBatchLineRepository(database)
	allocations := sqlite.NewAllocationRepository(database)
	audits := sqlite.NewAuditRepository(database)
	exceptions := sqlite.NewExceptionRepository(database)
	settings := sqlite.NewSettingsRepository(database)

	// Services (primary ports implementation)
	workOrderService = app.NewWorkOrderService(workOrders)
	batchService = app.NewBatchService(workOrders, batches, batchLines, allocations, audits, settings)
	procurementService = app.NewProcurementService(workOrders, batches, batchLines, allocations, audits, settings)
	allocationService = app.NewAllocationService(workOrders, batches, batchLines, allocations, audits, settings)
	exceptionService = app.NewExceptionService(batches, exceptions, audits, settings)
	settingsService = app.NewSettingsService(settings, audits)
	reportService = app.NewReportService(workOrders, batches, batchLines, allocations)
	auditService = app.NewAuditService(audits)
}
