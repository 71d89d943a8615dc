package filter

import (
	"fmt"
	"reflect"
)

type Filter interface {
	fmt.Stringer
	IsMatch(l Labels) bool
}

type Labelled interface {
	GetLabels() Labels
}

// Include returns a new slice of the same type as from containing the items
// which match every filter. The input is not modified.
func Include(from interface{}, filters ...Filter) interface{} {
	return applyFilters(newFilterable(from), filters, true).val.Interface()
}

func applyFilters(f filterable, filters []Filter, include bool) filterable {
	after := f.cloneEmpty()
	length := f.len()
	for i := 0; i < length; i++ {
		value := f.val.Index(i)
		labelled, ok := value.Interface().(Labelled)
		if !ok {
			panic(fmt.Sprintf("values must implement the filter.Labelled interface, got %s", value.Type()))
		}
		if MatchAll(labelled.GetLabels(), filters...) == include {
			after.val = reflect.Append(after.val, value)
		}
	}
	return after
}

// MatchAll returns true if labels satisfy all filters. No filters matches everything.
func MatchAll(labels Labels, filters ...Filter) bool {
	for _, filter := range filters {
		if !filter.IsMatch(labels) {
			return false
		}
	}
	return true
}
