// Package csvimport converts the raw CSV exports of the supported
// institutions into canonical transactions. The files come from trusted
// sources: any malformed date or amount is a format change and fails the
// whole import instead of skipping rows.
package csvimport

import (
	"fmt"
	"strings"
)

// headerIndex maps column names of a CSV header row to field positions.
type headerIndex map[string]int

// newHeaderIndex builds the column lookup and verifies every required
// column is present, so a renamed export layout fails up front.
func newHeaderIndex(header []string, required ...string) (headerIndex, error) {
	idx := make(headerIndex, len(header))
	for i, name := range header {
		idx[strings.TrimSpace(strings.TrimPrefix(name, "\uFEFF"))] = i
	}
	for _, name := range required {
		if _, ok := idx[name]; !ok {
			return nil, fmt.Errorf("newHeaderIndex: missing column %q", name)
		}
	}
	return idx, nil
}

// get returns the trimmed value of the named column, or "" when the row is
// shorter than the header (trailing summary rows).
func (h headerIndex) get(row []string, name string) string {
	i, ok := h[name]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
