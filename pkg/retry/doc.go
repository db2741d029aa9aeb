// Package retry provides exponential backoff for operations that fail with
// transient errors.
//
// Whether an error is worth another attempt is decided by errors.Classify
// from github.com/c360/ringbuf/errors: transient errors, including
// unclassified ones, are retried; invalid, fatal, range and logic errors
// end the loop immediately and are returned unchanged.
//
// # Presets
//
//   - DefaultConfig(): 3 attempts, 100ms-5s delay
//   - Quick(): 10 attempts, 50ms-1s delay, for start-up connections
//
// # Usage
//
//	client, err := retry.DoWithResult(ctx, retry.Quick(), func() (*natsclient.Client, error) {
//	    return c, c.Connect(ctx)
//	})
//
// Cancelling ctx stops the loop during an attempt or during the backoff
// delay. The returned error is transient and wraps both ctx.Err() and the
// last error from the operation.
package retry
