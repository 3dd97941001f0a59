package reconcile

import "strings"

// Clean trims whitespace and strips a surrounding markdown code fence.
func Clean(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// TruncateAfterLastBracket drops everything after the final ']'. Text
// without a ']' is returned unchanged.
func TruncateAfterLastBracket(s string) string {
	if i := strings.LastIndexByte(s, ']'); i >= 0 {
		return s[:i+1]
	}
	return s
}
