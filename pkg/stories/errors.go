package stories

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrorKind classifies an ingestion failure.
type ErrorKind string

const (
	// NotFound means a referenced path or directory does not exist.
	NotFound ErrorKind = "NotFound"
	// DecodeFailure means base64 or JSON decoding failed for one item.
	DecodeFailure ErrorKind = "DecodeFailure"
	// ParseFailure means extracting fields from an issue body failed.
	ParseFailure ErrorKind = "ParseFailure"
	// ConnectivityFailure means the remote source could not be reached at all.
	ConnectivityFailure ErrorKind = "ConnectivityFailure"
	// Unexpected is anything else raised while processing a single item.
	Unexpected ErrorKind = "Unexpected"
)

// Error is an error tagged with an ErrorKind and the item it concerns.
type Error struct {
	Kind ErrorKind
	Item string
	Err  error
}

func (e *Error) Error() string {
	if e.Item == "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s: %s", e.Kind, e.Item, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// NewError tags err with kind. A nil err produces a generic message.
func NewError(kind ErrorKind, item string, err error) *Error {
	if err == nil {
		err = errors.New(string(kind))
	}
	return &Error{Kind: kind, Item: item, Err: err}
}

// Errorf creates an *Error from a format string.
func Errorf(kind ErrorKind, item string, format string, args ...interface{}) *Error {
	return NewError(kind, item, errors.Errorf(format, args...))
}

type causer interface {
	Cause() error
}

type unwrapper interface {
	Unwrap() error
}

// KindOf walks the wrap chain of err and returns the kind of the first
// *Error it finds. Errors without a kind are Unexpected; nil has no kind.
func KindOf(err error) ErrorKind {
	if err == nil {
		return ""
	}
	if e, ok := AsError(err); ok {
		return e.Kind
	}
	return Unexpected
}

// AsError returns the first *Error in the wrap chain of err.
func AsError(err error) (*Error, bool) {
	for err != nil {
		if e, ok := err.(*Error); ok {
			return e, true
		}
		switch c := err.(type) {
		case causer:
			err = c.Cause()
		case unwrapper:
			err = c.Unwrap()
		default:
			return nil, false
		}
	}
	return nil, false
}

func IsNotFound(err error) bool {
	return err != nil && KindOf(err) == NotFound
}

// Failure records one item that was skipped during ingestion.
type Failure struct {
	Kind ErrorKind `json:"kind" yaml:"kind"`
	Item string    `json:"item" yaml:"item"`
	Err  string    `json:"error" yaml:"error"`
}

// FailureFromError converts err into a Failure for item.
// An empty item is taken from the *Error in the chain, if any.
func FailureFromError(item string, err error) Failure {
	if e, ok := AsError(err); ok && item == "" {
		item = e.Item
	}
	return Failure{
		Kind: KindOf(err),
		Item: item,
		Err:  err.Error(),
	}
}
