package objfs

// This file is part of the package tests (package objfs) and provides
// helpers that allow tests in the external package to access internal
// package constructs. Helpers are exported so `objfs_test` can call them
// via the module import path.

// NewPropertyLookupError constructs a property-lookup-wrapped error using the
// package-internal constructor.
func NewPropertyLookupError(msg string, cause error) error {
	return newPropertyLookupError(msg, cause)
}

// NewEnumerationError constructs an enumeration-wrapped error using the
// package-internal constructor.
func NewEnumerationError(msg string, cause error) error {
	return newEnumerationError(msg, cause)
}
