// Package lifecycle contains the pure business logic for batch status
// progression. The transition table is strictly linear: each status has at
// most one legal successor, and closing is terminal.
package lifecycle

import "fmt"

// Batch status constants, in progression order.
const (
	StatusDraft             = "Draft"
	StatusSubmitted         = "Subm to Procurement"
	StatusUnderProcurement  = "Under Procurement"
	StatusPartiallyReceived = "Partially Received"
	StatusFullyReceived     = "Fully Received"
	StatusClosed            = "Closed"
)

// successor maps each status to its unique legal successor.
// Closed has no entry: it is terminal.
var successor = map[string]string{
	StatusDraft:             StatusSubmitted,
	StatusSubmitted:         StatusUnderProcurement,
	StatusUnderProcurement:  StatusPartiallyReceived,
	StatusPartiallyReceived: StatusFullyReceived,
	StatusFullyReceived:     StatusClosed,
}

// GuardResult represents the outcome of a transition guard evaluation.
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

// TransitionContext provides context for a manual batch status transition.
type TransitionContext struct {
	BatchID        string
	Current        string
	Target         string
	OutstandingQty int // sum of (total required - received) across batch lines
}

// CanTransition evaluates whether a batch may move to the target status.
// Rules:
// - Target must be the unique successor of the current status
// - Fully Received requires zero outstanding quantity across all batch lines
func CanTransition(ctx TransitionContext) GuardResult {
	next, ok := successor[ctx.Current]
	if !ok {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("batch %s is %s and cannot transition further", ctx.BatchID, ctx.Current),
		}
	}
	if ctx.Target != next {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("cannot transition batch %s from %s to %s (next legal status: %s)", ctx.BatchID, ctx.Current, ctx.Target, next),
		}
	}
	if ctx.Target == StatusFullyReceived && ctx.OutstandingQty != 0 {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("cannot mark batch %s Fully Received: %d unit(s) still outstanding", ctx.BatchID, ctx.OutstandingQty),
		}
	}
	return GuardResult{Allowed: true}
}

// DeriveStatus recomputes a batch status from its line totals after a
// procurement update. It never returns Draft, Submitted, or Closed.
func DeriveStatus(totalRequired, totalReceived int) string {
	if totalReceived == 0 {
		return StatusUnderProcurement
	}
	if totalReceived >= totalRequired {
		return StatusFullyReceived
	}
	return StatusPartiallyReceived
}

// AutoAdjustable reports whether the derived recomputation may overwrite the
// current status. Draft and submitted batches are never auto-advanced, and
// closed batches are never touched.
func AutoAdjustable(current string) bool {
	switch current {
	case StatusUnderProcurement, StatusPartiallyReceived, StatusFullyReceived:
		return true
	}
	return false
}

// IsActive reports whether a batch in this status locks its part lines
// against inclusion in another batch.
func IsActive(status string) bool {
	switch status {
	case StatusDraft, StatusSubmitted, StatusUnderProcurement, StatusPartiallyReceived:
		return true
	}
	return false
}

// Valid reports whether s is a known batch status.
func Valid(s string) bool {
	if s == StatusClosed {
		return true
	}
	_, ok := successor[s]
	return ok
}
