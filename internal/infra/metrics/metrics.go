package metrics

import "strings"

// norm keeps label cardinality sane: lowercase, no empties.
func norm(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return "unknown"
	}
	return s
}
