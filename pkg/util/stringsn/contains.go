package stringsn

import "strings"

// ContainsFold reports whether any entry of haystack contains needle,
// ignoring case.
func ContainsFold(haystack []string, needle string) bool {
	needle = strings.ToLower(needle)
	for _, s := range haystack {
		if strings.Contains(strings.ToLower(s), needle) {
			return true
		}
	}
	return false
}
