package primary

import "context"

// ExceptionService defines the primary port for procurement exceptions.
type ExceptionService interface {
	// LogException records a new exception against a batch.
	LogException(ctx context.Context, req LogExceptionRequest) (*LogExceptionResponse, error)

	// CloseException closes an open exception.
	CloseException(ctx context.Context, exceptionID, changedBy string) error

	// ListExceptions lists exceptions with optional filters.
	ListExceptions(ctx context.Context, filters ExceptionFilters) ([]*Exception, error)
}

// LogExceptionRequest contains parameters for logging an exception.
type LogExceptionRequest struct {
	BatchID     string
	PartNo      string
	Type        string
	Description string
	CreatedBy   string
}

// LogExceptionResponse contains the result of logging an exception.
type LogExceptionResponse struct {
	ExceptionID string
}

// Exception represents an exception at the port boundary.
type Exception struct {
	ID          string
	BatchID     string
	PartNo      string
	Type        string
	Description string
	Status      string
	CreatedDate string
	CreatedBy   string
}

// ExceptionFilters contains filter options for listing exceptions.
type ExceptionFilters struct {
	BatchID string
	Status  string
	Type    string
}

// Exception type constants.
const (
	ExceptionObsolete       = "Obsolete"
	ExceptionCancelled      = "Cancelled"
	ExceptionRebatch        = "Rebatch"
	ExceptionVendorRejected = "VendorRejected"
	ExceptionMilitaryDelay  = "MilitaryDelay"
)

// Exception status constants.
const (
	ExceptionStatusOpen   = "Open"
	ExceptionStatusClosed = "Closed"
)
