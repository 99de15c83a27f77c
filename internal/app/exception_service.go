package app

import (
	"context"
	"fmt"
	"time"

	"github.com/example/depot/internal/core/identifier"
	"github.com/example/depot/internal/ports/primary"
	"github.com/example/depot/internal/ports/secondary"
)

const exceptionIDPrefix = "EXC"

func validExceptionType(t string) bool {
	switch t {
	case primary.ExceptionObsolete, primary.ExceptionCancelled, primary.ExceptionRebatch,
		primary.ExceptionVendorRejected, primary.ExceptionMilitaryDelay:
		return true
	}
	return false
}

// ExceptionServiceImpl implements the ExceptionService interface.
type ExceptionServiceImpl struct {
	batches    secondary.BatchRepository
	exceptions secondary.ExceptionRepository
	audits     secondary.AuditRepository
	settings   secondary.SettingsRepository
}

// NewExceptionService creates a new ExceptionService with injected dependencies.
func NewExceptionService(
	batches secondary.BatchRepository,
	exceptions secondary.ExceptionRepository,
	audits secondary.AuditRepository,
	settings secondary.SettingsRepository,
) *ExceptionServiceImpl {
	return &ExceptionServiceImpl{
		batches:    batches,
		exceptions: exceptions,
		audits:     audits,
		settings:   settings,
	}
}

// LogException records a new open exception against a batch.
func (s *ExceptionServiceImpl) LogException(ctx context.Context, req primary.LogExceptionRequest) (*primary.LogExceptionResponse, error) {
	actor, err := resolveActor(ctx, req.CreatedBy, s.settings)
	if err != nil {
		return nil, err
	}
	if !validExceptionType(req.Type) {
		return nil, fmt.Errorf("unknown exception type %q", req.Type)
	}
	if _, err := s.batches.GetByID(ctx, req.BatchID); err != nil {
		return nil, err
	}

	ids, err := s.exceptions.ListIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list exception ids: %w", err)
	}
	record := &secondary.ExceptionRecord{
		ID:          identifier.NextID(exceptionIDPrefix, ids),
		BatchID:     req.BatchID,
		PartNo:      req.PartNo,
		Type:        req.Type,
		Description: req.Description,
		Status:      primary.ExceptionStatusOpen,
		CreatedDate: time.Now(),
		CreatedBy:   actor,
	}
	if err := s.exceptions.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create exception: %w", err)
	}

	newValue := fmt.Sprintf("batch=%s part=%s type=%s", req.BatchID, req.PartNo, req.Type)
	if err := appendAudit(ctx, s.audits, EntityException, record.ID, ActionExceptionOpen, "", newValue, actor); err != nil {
		return nil, err
	}
	return &primary.LogExceptionResponse{ExceptionID: record.ID}, nil
}

// CloseException closes an open exception.
func (s *ExceptionServiceImpl) CloseException(ctx context.Context, exceptionID, changedBy string) error {
	actor, err := resolveActor(ctx, changedBy, s.settings)
	if err != nil {
		return err
	}
	record, err := s.exceptions.GetByID(ctx, exceptionID)
	if err != nil {
		return err
	}
	if record.Status == primary.ExceptionStatusClosed {
		return fmt.Errorf("exception %s is already closed", exceptionID)
	}
	if err := s.exceptions.UpdateStatus(ctx, exceptionID, primary.ExceptionStatusClosed); err != nil {
		return fmt.Errorf("failed to close exception: %w", err)
	}
	return appendAudit(ctx, s.audits, EntityException, exceptionID, ActionExceptionClose,
		primary.ExceptionStatusOpen, primary.ExceptionStatusClosed, actor)
}

// ListExceptions lists exceptions with optional filters.
func (s *ExceptionServiceImpl) ListExceptions(ctx context.Context, filters primary.ExceptionFilters) ([]*primary.Exception, error) {
	records, err := s.exceptions.List(ctx, secondary.ExceptionFilters{
		BatchID: filters.BatchID,
		Status:  filters.Status,
		Type:    filters.Type,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list exceptions: %w", err)
	}
	result := make([]*primary.Exception, len(records))
	for i, r := range records {
		result[i] = &primary.Exception{
			ID:          r.ID,
			BatchID:     r.BatchID,
			PartNo:      r.PartNo,
			Type:        r.Type,
			Description: r.Description,
			Status:      r.Status,
			CreatedDate: r.CreatedDate.Format("2006-01-02"),
			CreatedBy:   r.CreatedBy,
		}
	}
	return result, nil
}

// Ensure ExceptionServiceImpl implements the interface
var _ primary.ExceptionService = (*ExceptionServiceImpl)(nil)
