// Package errors provides standardized error handling patterns for ringbuf packages.
//
// # Overview
//
// Errors are sorted into five classes so callers can decide what to do without
// matching on strings:
//
//   - Transient: timeouts, lost connections, cancelled contexts (retry is reasonable)
//   - Invalid: malformed input, zero capacities, bad configuration values
//   - Fatal: unrecoverable states (stop processing)
//   - Range: more elements requested than a container can hold
//   - Logic: a call that is illegal in the receiver's current state,
//     such as reserving a dynamic ring twice
//
// # Error Wrapping Pattern
//
// All error wrapping follows the standardized format:
//
//	"component.method: action failed: %w"
//
// The class-setting wrappers keep the sentinel reachable through errors.Is:
//
//	err := errors.WrapRange(errors.ErrCapacityExceeded, "Static", "NewStaticFrom", "fill")
//	errors.Is(err, errors.ErrCapacityExceeded) // true
//	errors.IsRange(err)                        // true
//
// # Container Errors
//
// The ring containers report three recoverable conditions:
//
//   - ErrCapacityExceeded (Range): constructing or assigning more elements than fit
//   - ErrAlreadyReserved (Logic): a second Reserve on a dynamic ring
//   - ErrCapacityMismatch (Logic): assigning between dynamic rings of different capacity
//
// Precondition violations such as popping an empty ring are not errors; they panic.
//
// # Integration with errors.As/Is
//
//	var ce *errors.ClassifiedError
//	if errors.As(err, &ce) {
//	    log.Printf("Component: %s, Class: %s", ce.Component, ce.Class)
//	}
package errors
