// Package ringbuf is a generic circular buffer library and the tools built
// on it.
//
// # Layout
//
// The container itself lives in pkg/ring:
//
//   - ring.Static[T]: capacity fixed at construction, storage allocated once
//   - ring.Dynamic[T]: capacity fixed once by Reserve, storage released by
//     Release
//
// Both push and pop at either end. Pushing into a full ring evicts the
// element at the opposite end, and an optional drop callback observes each
// evicted element. Iterators move in both directions and know how many
// forward steps remain, so a walk over a full ring terminates without a
// sentinel slot.
//
// Around the core:
//
//   - pkg/buffer: a mutex-guarded Buffer[T] over ring.Static with overflow
//     policies (DropOldest, DropNewest, Block), statistics and Prometheus
//     metrics
//   - errors: classified errors (transient, invalid, fatal, range, logic)
//     shared by every package
//   - config: layered YAML/JSON configuration with environment overrides
//   - metric: Prometheus registry and HTTP server
//   - health: component health aggregation served on /health
//   - natsclient: NATS connection with a circuit breaker
//   - pkg/retry: exponential backoff for transient failures
//   - pkg/tlsutil: TLS settings for the NATS client and metrics server
//   - testutil: in-memory NATS double and test data
//
// # ringtail
//
// cmd/ringtail keeps the last N records of a stream (stdin, a file or a
// NATS subject) and prints them when the stream ends or the process is
// signalled:
//
//	tail -f app.log | ringtail -n 100
//	ringtail -subject 'logs.>' -n 500 -follow -interval 5s -output json
//	ringtail -config ringtail.yaml -ring errors -reverse
//
// # Quick start
//
//	r, err := ring.NewStatic[string](3)
//	if err != nil {
//	    return err
//	}
//	for _, s := range []string{"a", "b", "c", "d"} {
//	    r.PushBack(s) // "a" is evicted on the fourth push
//	}
//	for v := range r.Values() {
//	    fmt.Println(v) // b, c, d
//	}
package ringbuf
