package filter

import (
	"fmt"
	"reflect"
)

type filterable struct {
	val reflect.Value
}

func newFilterable(slice interface{}) filterable {
	fromValue := reflect.ValueOf(slice)
	if fromValue.Kind() == reflect.Slice {
		return filterable{val: fromValue}
	}
	panic(fmt.Sprintf("invalid type %T, must be a slice", slice))
}

func (f filterable) len() int {
	return f.val.Len()
}

func (f filterable) cloneEmpty() filterable {
	return filterable{val: reflect.MakeSlice(f.val.Type(), 0, f.val.Len())}
}
