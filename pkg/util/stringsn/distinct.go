package stringsn

import "sort"

func Distinct(strs ...string) []string {
	m := map[string]bool{}
	var out []string
	for _, s := range strs {
		if !m[s] {
			out = append(out, s)
			m[s] = true
		}
	}
	return out
}

// SortedDistinctNonEmpty returns the distinct non-empty strings in ascending order.
func SortedDistinctNonEmpty(strs ...string) []string {
	out := []string{}
	for _, s := range Distinct(strs...) {
		if s != "" {
			out = append(out, s)
		}
	}
	sort.Strings(out)
	return out
}
