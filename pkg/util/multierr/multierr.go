package multierr

import (
	"github.com/pkg/errors"
	"strings"
	"sync"
)

func New(err ...error) Collector {
	return &multiError{
		mu:     sync.Mutex{},
		errors: err,
	}
}

// Collector gathers errors from any number of goroutines.
type Collector interface {
	Collect(err ...error)
	Errors() []error
	ToError() error
}

type multiError struct {
	mu     sync.Mutex
	errors []error
}

func (m *multiError) Collect(err ...error) {
	m.mu.Lock()
	for _, e := range err {
		if e != nil {
			m.errors = append(m.errors, e)
		}
	}
	m.mu.Unlock()
}

// Errors returns a copy of the collected errors in collection order.
func (m *multiError) Errors() []error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]error(nil), m.errors...)
}

func (m *multiError) ToError() error {
	errs := m.Errors()
	if len(errs) == 0 {
		return nil
	}

	var errStrings []string
	for _, err := range errs {
		errStrings = append(errStrings, err.Error())
	}
	return errors.New(strings.Join(errStrings, "\n"))
}
