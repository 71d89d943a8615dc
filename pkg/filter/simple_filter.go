package filter

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/pkg/errors"
)

type Operator func(v string) bool

const (
	OperatorEqual    = "=="
	OperatorNotEqual = "!="
	OperatorRegex    = "?="
	OperatorContains = "~="
)

type OperatorFactory func(key, value string) (Operator, error)

var Operators = map[string]OperatorFactory{
	OperatorEqual: func(key, value string) (Operator, error) {
		return func(v string) bool {
			return value == v
		}, nil
	},
	OperatorNotEqual: func(key, value string) (Operator, error) {
		return func(v string) bool {
			return value != v
		}, nil
	},
	OperatorRegex: func(key, value string) (operator Operator, e error) {
		re, err := regexp.Compile(value)
		if err != nil {
			return nil, errors.Errorf("bad regex in %s?=%s: %s", key, value, err)
		}
		return func(value string) bool {
			return re.MatchString(value)
		}, nil
	},
	// case-insensitive substring
	OperatorContains: func(key, value string) (Operator, error) {
		needle := strings.ToLower(value)
		return func(v string) bool {
			return strings.Contains(strings.ToLower(v), needle)
		}, nil
	},
}

type SimpleFilter struct {
	Raw      string
	Key      string
	Value    string
	Operator Operator
}

func (s SimpleFilter) String() string {
	return s.Raw
}

func (s SimpleFilter) IsMatch(l Labels) bool {
	if label, ok := l[s.Key]; ok {
		return s.Operator(label)
	}
	return false
}

// Parse returns a filter based on key, value, and operator
// Argument patterns:
// `"key"` - Will match if the key is found and has a non-empty value
// `"keyOPvalue"` - Where OP is one of ==, !=, ?= or ~=, will check the value of key against the provided value using the operator
// `"key", "op", "value"` - Will check the value at key against the value using the operator
func Parse(parts ...string) (Filter, error) {
	switch len(parts) {
	case 0:
		return nil, errors.New("at least one part required")
	case 1:
		matches := simpleFilterParseRE.FindStringSubmatch(parts[0])
		if len(matches) == 4 {
			return newFilterFromOperator(matches[1], matches[2], matches[3])
		}
		return SimpleFilter{
			Raw: parts[0],
			Key: parts[0],
			Operator: func(value string) bool {
				return value != ""
			},
		}, nil

	case 3:
		return newFilterFromOperator(parts[0], parts[1], parts[2])
	default:
		return nil, errors.Errorf("invalid parts %#v", parts)
	}
}

// ParseAll parses each expression with Parse.
func ParseAll(exprs ...string) ([]Filter, error) {
	var out []Filter
	for _, expr := range exprs {
		f, err := Parse(expr)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}

func newFilterFromOperator(k, op, v string) (Filter, error) {

	if factory, ok := Operators[op]; ok {
		fn, err := factory(k, v)
		if err != nil {
			return nil, err
		}
		return SimpleFilter{
			Raw:      fmt.Sprintf("%s%s%s", k, op, v),
			Key:      k,
			Value:    v,
			Operator: fn,
		}, nil
	}

	return nil, errors.Errorf("no operator factory registered for operator %q", op)

}

var simpleFilterParseRE = regexp.MustCompile(`^(\w+)([=!?~]=)(.*)$`)
