// Package identifier generates dense sequential entity identifiers.
// IDs have the form "<prefix>-NNNN" with a zero-padded numeric suffix.
package identifier

import (
	"fmt"
	"strconv"
	"strings"
)

// NextID returns the next identifier for the given prefix. It scans every
// existing ID matching "<prefix>-<digits>", takes the maximum numeric suffix
// (0 if none match), and returns the successor zero-padded to four digits.
//
// Callers minting several IDs before persisting any of them must include the
// already-minted IDs in existing, or the generator will hand out duplicates.
func NextID(prefix string, existing []string) string {
	max := 0
	for _, id := range existing {
		rest, ok := strings.CutPrefix(id, prefix+"-")
		if !ok {
			continue
		}
		n, err := strconv.Atoi(rest)
		if err != nil {
			continue
		}
		if n > max {
			max = n
		}
	}
	return fmt.Sprintf("%s-%04d", prefix, max+1)
}
