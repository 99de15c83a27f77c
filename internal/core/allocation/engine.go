// Package allocation contains the pure allocation engine. Given the set of
// allocation rows linked to a batch line and a received-quantity delta, it
// plans how the delta is distributed across the competing work-order demands.
// The engine performs no I/O; callers gather rows, apply the returned changes,
// and recompute derived part-line quantities.
package allocation

import (
	"sort"
	"time"
)

// Mode selects the distribution policy. Read fresh from settings on every
// engine run so a mode change takes effect on the next allocation.
type Mode string

const (
	ModePriorityFIFO Mode = "Priority First then FIFO"
	ModeFIFO         Mode = "FIFO"
	ModeManualOnly   Mode = "Manual Only"
)

// ValidMode reports whether m is a known allocation mode.
func ValidMode(m Mode) bool {
	switch m {
	case ModePriorityFIFO, ModeFIFO, ModeManualOnly:
		return true
	}
	return false
}

// Allocation status constants.
const (
	StatusAllocated          = "Allocated"
	StatusManualOverride     = "ManualOverride"
	StatusPacked             = "Packed"
	StatusCollected          = "Collected"
	StatusDeliveredConfirmed = "DeliveredConfirmed"
)

// ValidStatus reports whether s is a known allocation status.
func ValidStatus(s string) bool {
	switch s {
	case StatusAllocated, StatusManualOverride, StatusPacked, StatusCollected, StatusDeliveredConfirmed:
		return true
	}
	return false
}

// Part-line status constants, derived from required vs received quantity.
const (
	LineStatusWaiting = "Waiting"
	LineStatusPartial = "Partial"
	LineStatusReady   = "Ready"
)

// LineStatus derives a work-order part line status.
func LineStatus(requiredQty, receivedQty int) string {
	if receivedQty >= requiredQty {
		return LineStatusReady
	}
	if receivedQty > 0 {
		return LineStatusPartial
	}
	return LineStatusWaiting
}

// Outstanding returns the unmet demand of a part line, floored at zero.
func Outstanding(requiredQty, receivedQty int) int {
	if out := requiredQty - receivedQty; out > 0 {
		return out
	}
	return 0
}

// Row is one allocation joined to its work order (priority, creation date)
// and its work-order part line (required quantity).
type Row struct {
	AllocationID string
	WorkOrderID  string
	LineID       string
	AllocatedQty int
	RequiredQty  int
	Status       string
	Priority     string
	CreatedDate  time.Time
}

// priorityRank orders work-order priorities; unknown priorities sort last.
func priorityRank(priority string) int {
	switch priority {
	case "Critical":
		return 0
	case "High":
		return 1
	case "Normal":
		return 2
	}
	return 9
}

// Order returns the rows in distribution order for the given mode. The sort
// is total and reproducible: priority rank (unless FIFO), then work-order
// creation date, then allocation ID as the final tie-break.
func Order(rows []Row, mode Mode) []Row {
	ordered := make([]Row, len(rows))
	copy(ordered, rows)
	sort.Slice(ordered, func(i, j int) bool {
		a, b := ordered[i], ordered[j]
		if mode != ModeFIFO {
			if ra, rb := priorityRank(a.Priority), priorityRank(b.Priority); ra != rb {
				return ra < rb
			}
		}
		if !a.CreatedDate.Equal(b.CreatedDate) {
			return a.CreatedDate.Before(b.CreatedDate)
		}
		return a.AllocationID < b.AllocationID
	})
	return ordered
}

// Change records one planned allocated-quantity mutation.
type Change struct {
	AllocationID string
	LineID       string
	OldQty       int
	NewQty       int
}

// Apply plans the redistribution of a received-quantity delta across the
// batch line's allocations. A zero delta, or Manual Only mode, plans nothing.
//
// A positive delta walks the ordered rows front to back, giving each row
// min(outstanding, remaining) until the delta is exhausted. A negative delta
// walks the same order back to front, taking back min(allocated, remaining)
// from each row; rows marked ManualOverride are never reduced, so the
// withdrawal may be left partially unsatisfied when overrides protect more
// than the reduction can recover elsewhere. Callers guarantee via validation
// that the new received quantity still covers the sum of allocations.
func Apply(rows []Row, delta int, mode Mode) []Change {
	if delta == 0 || mode == ModeManualOnly || len(rows) == 0 {
		return nil
	}

	ordered := Order(rows, mode)
	var changes []Change

	if delta > 0 {
		remaining := delta
		for _, row := range ordered {
			if remaining == 0 {
				break
			}
			give := Outstanding(row.RequiredQty, row.AllocatedQty)
			if give > remaining {
				give = remaining
			}
			if give == 0 {
				continue
			}
			changes = append(changes, Change{
				AllocationID: row.AllocationID,
				LineID:       row.LineID,
				OldQty:       row.AllocatedQty,
				NewQty:       row.AllocatedQty + give,
			})
			remaining -= give
		}
		return changes
	}

	remaining := -delta
	for i := len(ordered) - 1; i >= 0 && remaining > 0; i-- {
		row := ordered[i]
		if row.Status == StatusManualOverride {
			continue
		}
		take := row.AllocatedQty
		if take > remaining {
			take = remaining
		}
		if take == 0 {
			continue
		}
		changes = append(changes, Change{
			AllocationID: row.AllocationID,
			LineID:       row.LineID,
			OldQty:       row.AllocatedQty,
			NewQty:       row.AllocatedQty - take,
		})
		remaining -= take
	}
	return changes
}

// TouchedLines returns the distinct part-line IDs among the planned changes,
// in first-seen order. These lines need their received quantity recomputed
// from the full allocation set.
func TouchedLines(changes []Change) []string {
	seen := make(map[string]bool, len(changes))
	var lines []string
	for _, c := range changes {
		if !seen[c.LineID] {
			seen[c.LineID] = true
			lines = append(lines, c.LineID)
		}
	}
	return lines
}
