// Package errors provides standardized error handling patterns for ringbuf packages.
// It includes error classification, standard error variables, and helper functions
// for consistent error wrapping and classification across the module.
package errors

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrorClass represents the classification of errors for handling purposes
type ErrorClass int

const (
	// ErrorTransient represents temporary errors that may be retried
	ErrorTransient ErrorClass = iota
	// ErrorInvalid represents errors due to invalid input or configuration
	ErrorInvalid
	// ErrorFatal represents unrecoverable errors that should stop processing
	ErrorFatal
	// ErrorRange represents a request for more elements than a container can hold
	ErrorRange
	// ErrorLogic represents a call that is illegal in the receiver's current state
	ErrorLogic
)

// String returns the string representation of ErrorClass
func (ec ErrorClass) String() string {
	switch ec {
	case ErrorTransient:
		return "transient"
	case ErrorInvalid:
		return "invalid"
	case ErrorFatal:
		return "fatal"
	case ErrorRange:
		return "range"
	case ErrorLogic:
		return "logic"
	default:
		return "unknown"
	}
}

// Standard error variables for common conditions
var (
	// Component lifecycle errors
	ErrAlreadyStarted = errors.New("component already started")
	ErrNotStarted     = errors.New("component not started")
	ErrAlreadyStopped = errors.New("component already stopped")
	ErrShuttingDown   = errors.New("component is shutting down")

	// Connection and networking errors
	ErrNoConnection       = errors.New("no connection available")
	ErrNotConnected       = errors.New("not connected")
	ErrConnectionLost     = errors.New("connection lost")
	ErrConnectionTimeout  = errors.New("connection timeout")
	ErrSubscriptionFailed = errors.New("subscription failed")

	// Data processing errors
	ErrInvalidData   = errors.New("invalid data format")
	ErrDataCorrupted = errors.New("data corrupted")
	ErrParsingFailed = errors.New("parsing failed")

	// Configuration errors
	ErrInvalidConfig  = errors.New("invalid configuration")
	ErrMissingConfig  = errors.New("missing required configuration")
	ErrConfigNotFound = errors.New("configuration not found")

	// Resource errors
	ErrResourceExhausted = errors.New("resource exhausted")

	// Container errors
	ErrCapacityExceeded = errors.New("capacity exceeded")
	ErrZeroCapacity     = errors.New("capacity must be at least one")
	ErrAlreadyReserved  = errors.New("capacity already reserved")
	ErrCapacityMismatch = errors.New("capacity mismatch")
)

// ClassifiedError wraps an error with its classification
type ClassifiedError struct {
	Class     ErrorClass
	Err       error
	Message   string
	Component string
	Operation string
}

// Error implements the error interface
func (ce *ClassifiedError) Error() string {
	if ce.Message != "" {
		return ce.Message
	}
	return ce.Err.Error()
}

// Unwrap returns the underlying error
func (ce *ClassifiedError) Unwrap() error {
	return ce.Err
}

// classOf reports the class of the outermost ClassifiedError in err's chain.
func classOf(err error) (ErrorClass, bool) {
	var ce *ClassifiedError
	if errors.As(err, &ce) {
		return ce.Class, true
	}
	return 0, false
}

// fallback describes how an error with no ClassifiedError in its chain is
// recognised as a given class: by a known sentinel or by a lowercase
// substring of its message.
type fallback struct {
	class    ErrorClass
	targets  []error
	patterns []string
}

// fallbacks is consulted in order by Classify.
var fallbacks = []fallback{
	{class: ErrorRange, targets: []error{ErrCapacityExceeded}},
	{class: ErrorLogic, targets: []error{ErrAlreadyReserved, ErrCapacityMismatch}},
	{
		class: ErrorTransient,
		targets: []error{
			ErrConnectionTimeout, ErrConnectionLost, ErrNotConnected,
			context.DeadlineExceeded, context.Canceled,
		},
		patterns: []string{"timeout", "connection", "network", "temporary", "unavailable"},
	},
	{
		class:    ErrorFatal,
		targets:  []error{ErrInvalidConfig, ErrMissingConfig, ErrDataCorrupted, ErrResourceExhausted},
		patterns: []string{"fatal", "panic", "corrupted", "out of memory"},
	},
	{class: ErrorInvalid, targets: []error{ErrInvalidData, ErrParsingFailed, ErrZeroCapacity}},
}

func (f fallback) matches(err error) bool {
	for _, target := range f.targets {
		if errors.Is(err, target) {
			return true
		}
	}
	if len(f.patterns) == 0 {
		return false
	}
	msg := strings.ToLower(err.Error())
	for _, p := range f.patterns {
		if strings.Contains(msg, p) {
			return true
		}
	}
	return false
}

// is reports whether err belongs to class. A ClassifiedError in the chain
// decides; otherwise the fallback for class does.
func is(err error, class ErrorClass) bool {
	if err == nil {
		return false
	}
	if c, ok := classOf(err); ok {
		return c == class
	}
	for _, f := range fallbacks {
		if f.class == class {
			return f.matches(err)
		}
	}
	return false
}

// IsTransient checks if an error is transient and should be retried
func IsTransient(err error) bool { return is(err, ErrorTransient) }

// IsFatal checks if an error is fatal and should stop processing
func IsFatal(err error) bool { return is(err, ErrorFatal) }

// IsInvalid checks if an error is due to invalid input
func IsInvalid(err error) bool { return is(err, ErrorInvalid) }

// IsRange checks if an error reports a capacity violation
func IsRange(err error) bool { return is(err, ErrorRange) }

// IsLogic checks if an error reports a call made in the wrong state
func IsLogic(err error) bool { return is(err, ErrorLogic) }

// Classify returns the class of err. Unrecognised errors are transient so
// that callers may retry them.
func Classify(err error) ErrorClass {
	if err == nil {
		return ErrorTransient
	}
	if class, ok := classOf(err); ok {
		return class
	}
	for _, f := range fallbacks {
		if f.matches(err) {
			return f.class
		}
	}
	return ErrorTransient
}

// newClassified creates a new classified error
// This is an internal helper - use the Wrap* functions instead.
func newClassified(class ErrorClass, err error, component, operation, message string) *ClassifiedError {
	return &ClassifiedError{
		Class:     class,
		Err:       err,
		Message:   message,
		Component: component,
		Operation: operation,
	}
}

// Wrap creates a standardized error with context following the pattern:
// "component.method: action failed: %w"
func Wrap(err error, component, method, action string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s.%s: %s failed: %w", component, method, action, err)
}

func wrapAs(class ErrorClass, err error, component, method, action string) error {
	if err == nil {
		return nil
	}
	wrappedErr := Wrap(err, component, method, action)
	return newClassified(class, wrappedErr, component, method, wrappedErr.Error())
}

// WrapTransient wraps an error as transient with context
func WrapTransient(err error, component, method, action string) error {
	return wrapAs(ErrorTransient, err, component, method, action)
}

// WrapFatal wraps an error as fatal with context
func WrapFatal(err error, component, method, action string) error {
	return wrapAs(ErrorFatal, err, component, method, action)
}

// WrapInvalid wraps an error as invalid with context
func WrapInvalid(err error, component, method, action string) error {
	return wrapAs(ErrorInvalid, err, component, method, action)
}

// WrapRange wraps an error as a capacity violation with context
func WrapRange(err error, component, method, action string) error {
	return wrapAs(ErrorRange, err, component, method, action)
}

// WrapLogic wraps an error as a wrong-state call with context
func WrapLogic(err error, component, method, action string) error {
	return wrapAs(ErrorLogic, err, component, method, action)
}
