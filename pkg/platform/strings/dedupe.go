// Package strings has small string-slice helpers shared across packages.
package strings

import "strings"

// DedupeAndTrim trims each element and drops empties and repeats, keeping
// first-occurrence order. Config lists parsed from comma-separated env
// values, such as broker addresses, go through this.
func DedupeAndTrim(values []string) []string {
	if len(values) == 0 {
		return values
	}

	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
