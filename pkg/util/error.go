package util

import (
	"fmt"
	"github.com/fatih/color"
	"github.com/pkg/errors"
	"runtime/debug"
	"strings"
)

// TryCatch runs fn and converts a panic into an error labelled with label.
func TryCatch(label string, fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			var ok bool
			err, ok = r.(error)
			if ok {
				err = errors.Errorf("%s: panicked with error: %s\n%s", label, err, debug.Stack())
			} else {
				err = errors.Errorf("%s: panicked: %v\n%s", label, r, debug.Stack())
			}
		}
	}()

	return fn()
}

// CheckHandle wraps err in an error whose message is already formatted for
// the terminal. The CLI prints such errors as-is.
func CheckHandle(err error, msgAndArgs ...interface{}) error {
	if err == nil {
		return nil
	}
	var msg string
	switch len(msgAndArgs) {
	case 0:
		msg = "Fatal error."
	case 1:
		msg = fmt.Sprint(msgAndArgs[0])
	default:
		msg = fmt.Sprintf(fmt.Sprint(msgAndArgs[0]), msgAndArgs[1:]...)
	}

	w := new(strings.Builder)

	fmt.Fprintln(w, color.RedString(msg))
	fmt.Fprintln(w, color.YellowString(err.Error()))

	return HandledError{msg: w.String(), cause: err}
}

type HandledError struct {
	msg   string
	cause error
}

func (h HandledError) Error() string {
	return h.msg
}

func (h HandledError) Cause() error {
	return h.cause
}
