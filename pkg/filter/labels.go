package filter

import "strings"

// Labels are the named string values a filter is matched against.
type Labels map[string]string

// GetLabels implements Labelled.
func (l Labels) GetLabels() Labels {
	return l
}

// LabelsFromMap copies m, trimming surrounding whitespace from each value so
// that " High" and "High" compare equal.
func LabelsFromMap(m map[string]string) Labels {
	out := make(Labels, len(m))
	for k, v := range m {
		out[k] = strings.TrimSpace(v)
	}
	return out
}
