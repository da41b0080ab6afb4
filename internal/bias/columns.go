package bias

import "strings"

// SelectColumn picks the first candidate (in priority order) whose normalized
// form exactly matches a header. Headers are trimmed and lowercased before
// comparison; no fuzzy matching. The original header name is returned so the
// caller can index rows with it.
func SelectColumn(headers []string, candidates []string) (string, bool) {
	normalized := make(map[string]string, len(headers))
	for _, h := range headers {
		key := strings.ToLower(strings.TrimSpace(h))
		if _, ok := normalized[key]; !ok {
			normalized[key] = h
		}
	}

	for _, candidate := range candidates {
		if original, ok := normalized[strings.ToLower(strings.TrimSpace(candidate))]; ok {
			return original, true
		}
	}
	return "", false
}
