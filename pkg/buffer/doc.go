// Package buffer provides a thread-safe bounded buffer with configurable
// overflow policies, built-in statistics and optional Prometheus metrics.
//
// # Overview
//
// A buffer is a mutex-guarded ring.Static used as a FIFO between producers
// and consumers. Writers add at the newest end, readers take from the
// oldest end, and Snapshot or SnapshotReverse copy the contents without
// consuming them.
//
// # Quick Start
//
//	buf, err := buffer.NewCircularBuffer[string](1000)
//	if err != nil {
//		return err
//	}
//	defer buf.Close()
//
//	_ = buf.Write("line")
//	value, ok := buf.Read()
//
// With an overflow policy and metrics:
//
//	buf, err := buffer.NewCircularBuffer[[]byte](5000,
//		buffer.WithOverflowPolicy[[]byte](buffer.DropNewest),
//		buffer.WithMetrics[[]byte](registry, "nats_input"),
//	)
//
// # Overflow Policies
//
//   - DropOldest: evict the oldest item (default). This is the ring's own
//     overwrite behavior, so a DropOldest buffer always holds the most
//     recent Capacity writes.
//   - DropNewest: discard the incoming item.
//   - Block: make the writer wait for a reader.
//
// Under Block, use WriteWithContext or WriteWithTimeout to bound the wait:
//
//	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
//	defer cancel()
//	if err := buf.WriteWithContext(ctx, item); err != nil {
//		// errors.IsTransient(err) is true for a timeout
//	}
//
// Close wakes blocked writers, which then fail with ErrAlreadyStopped.
//
// # Observability
//
// Statistics are always collected and available from Stats. They include
// raw counters (writes, reads, peeks, overflows, drops), the current size
// and its high-water mark, and derived rates.
//
// WithMetrics additionally exports the counters under the ringbuf_buffer_*
// names with a "component" label, registered through metric.MetricsRegistry.
// Registration conflicts make NewCircularBuffer fail.
//
// # Drop callbacks
//
// WithDropCallback receives every item the buffer discards. It runs after
// the buffer's lock is released, so it may safely call back into the buffer.
package buffer
