package models

import (
	"errors"
	"fmt"
)

// FaultCategory classifies why a verification step failed.
type FaultCategory string

const (
	// FaultFormat marks malformed input: SHA, date, issue number or document format.
	FaultFormat FaultCategory = "format"

	// FaultNotFound marks a remote resource that does not exist.
	FaultNotFound FaultCategory = "not_found"

	// FaultMismatch marks a value that disagrees with ground truth or policy.
	FaultMismatch FaultCategory = "mismatch"

	// FaultPolicy marks an unrecognized configuration value.
	FaultPolicy FaultCategory = "policy"

	// FaultTransport marks network errors, timeouts and unexpected HTTP statuses.
	FaultTransport FaultCategory = "transport"

	// FaultCapability marks online mode requested without a usable HTTP client.
	FaultCapability FaultCategory = "capability"
)

// Fault is the single error type produced by the verification pipeline.
// Faults never cross a check boundary; they are collected in a CheckResult
// and reduced to a pass/fail boolean.
type Fault struct {
	Category FaultCategory
	Message  string
	Err      error
}

// Error implements the error interface.
func (f *Fault) Error() string {
	if f.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", f.Category, f.Message, f.Err)
	}
	return fmt.Sprintf("[%s] %s", f.Category, f.Message)
}

// Unwrap supports errors.Is / errors.As on the underlying cause.
func (f *Fault) Unwrap() error {
	return f.Err
}

// NewFault creates a fault with a formatted message.
func NewFault(category FaultCategory, format string, args ...interface{}) *Fault {
	return &Fault{Category: category, Message: fmt.Sprintf(format, args...)}
}

// WrapFault creates a fault that wraps an underlying error.
func WrapFault(category FaultCategory, err error, format string, args ...interface{}) *Fault {
	return &Fault{Category: category, Message: fmt.Sprintf(format, args...), Err: err}
}

// AsFault extracts a *Fault from err. Errors that are not faults are
// reported as transport faults, since they can only originate from I/O.
func AsFault(err error) *Fault {
	if err == nil {
		return nil
	}
	var f *Fault
	if errors.As(err, &f) {
		return f
	}
	return &Fault{Category: FaultTransport, Message: "unexpected error", Err: err}
}

// IsCategory reports whether err is a fault of the given category.
func IsCategory(err error, category FaultCategory) bool {
	var f *Fault
	if errors.As(err, &f) {
		return f.Category == category
	}
	return false
}
