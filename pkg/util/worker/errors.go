package worker

import "github.com/pkg/errors"

var errPanicked = errors.New("work item panicked")
