package objfs

import (
	"errors"
)

var (
	// ErrNotFound reports that a named child was not present among the
	// enumerated children, or that the path had no components at all.
	ErrNotFound = errors.New("not found")
	// ErrAbsolutePath reports that the path contains a root or volume
	// prefix component; resolution only supports relative traversal from a
	// caller-supplied origin.
	ErrAbsolutePath = errors.New("absolute path")
	// ErrPropertyLookup reports that a remote property fetch failed or the
	// property was absent, including the "object has no parent" case.
	ErrPropertyLookup = errors.New("property lookup failed")
	// ErrEnumeration reports that a remote child enumeration failed to
	// start or to advance.
	ErrEnumeration = errors.New("enumeration failed")
)

type wrapError struct {
	underlying error
	msg        string
	cause      error
}

var _ error = (*wrapError)(nil)

func newPropertyLookupError(msg string, cause error) error {
	return &wrapError{
		underlying: ErrPropertyLookup,
		msg:        msg,
		cause:      cause,
	}
}

func newEnumerationError(msg string, cause error) error {
	return &wrapError{
		underlying: ErrEnumeration,
		msg:        msg,
		cause:      cause,
	}
}

func (err *wrapError) Error() string {
	if err == nil {
		return "(*wrapError)(nil)"
	}
	message := err.underlying.Error() + ": " + err.msg
	if err.cause != nil {
		message += ": " + err.cause.Error()
	}
	return message
}

func (err *wrapError) Unwrap() []error {
	if err.cause == nil {
		return []error{err.underlying}
	}
	return []error{err.underlying, err.cause}
}
