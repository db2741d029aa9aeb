package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/c360/ringbuf/errors"
	"github.com/c360/ringbuf/health"
	"github.com/c360/ringbuf/metric"
)

// tailer moves records from a source into a store and prints the store.
type tailer struct {
	ring    string
	source  string
	store   store
	metrics *metric.Metrics
	logger  *slog.Logger
	health  *health.Monitor

	out     io.Writer
	format  string
	reverse bool
	now     func() time.Time

	seq     atomic.Uint64
	evicted atomic.Int64
	failed  atomic.Int64
	outMu   sync.Mutex

	// warnLimit throttles per-record failure logs; failed counts them all.
	warnLimit *rate.Limiter
}

func (t *tailer) ingest(ctx context.Context, data []byte) {
	e := Entry{
		ID:     uuid.New(),
		Seq:    t.seq.Add(1),
		Time:   t.now(),
		Source: t.source,
		Data:   string(data),
	}

	start := time.Now()
	err := t.store.Put(ctx, e)
	t.metrics.RecordWriteDuration(t.ring, time.Since(start))
	if err != nil {
		t.failed.Add(1)
		t.metrics.RecordIngestError(t.source, errors.Classify(err).String())
		if ctx.Err() == nil && t.allowWarn() {
			t.logger.Warn("record not stored", "seq", e.Seq, "error", err, "failed", t.failed.Load())
		}
		return
	}

	t.metrics.RecordIngested(t.source)
	t.metrics.RecordRingState(t.ring, t.store.Len(), t.store.Cap())
}

func (t *tailer) allowWarn() bool {
	return t.warnLimit == nil || t.warnLimit.Allow()
}

// onDrop is the store's drop callback.
func (t *tailer) onDrop(e Entry) {
	t.evicted.Add(1)
	t.metrics.RecordEvicted(t.ring)
	t.logger.Debug("record evicted", "seq", e.Seq)
}

// flush prints the held records, removing them when drain is set.
func (t *tailer) flush(drain bool) error {
	var entries []Entry
	if drain {
		entries = t.store.Drain(t.reverse)
		t.metrics.RecordRingState(t.ring, t.store.Len(), t.store.Cap())
	} else {
		entries = t.store.Window(t.reverse)
	}
	return t.print(entries)
}

func (t *tailer) print(entries []Entry) error {
	t.outMu.Lock()
	defer t.outMu.Unlock()

	if t.format == "json" {
		enc := json.NewEncoder(t.out)
		for _, e := range entries {
			if err := enc.Encode(e); err != nil {
				return errors.WrapFatal(err, "tailer", "print", "encode entry")
			}
		}
		return nil
	}

	for _, e := range entries {
		_, err := fmt.Fprintf(t.out, "%s %s #%d %s\n",
			e.Time.UTC().Format(time.RFC3339Nano), e.Source, e.Seq, e.Data)
		if err != nil {
			return errors.WrapFatal(err, "tailer", "print", "write entry")
		}
	}
	return nil
}

// follow drains and prints the store every interval until ctx is done.
func (t *tailer) follow(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := t.flush(true); err != nil {
				t.logger.Error("print failed", "error", err)
			}
		}
	}
}

// run feeds src into the store until src is exhausted or ctx is done, then
// prints what the store holds. With follow set the store is drained and
// printed every interval along the way.
func (t *tailer) run(ctx context.Context, src source, follow bool, interval time.Duration) error {
	t.source = src.Name()
	t.logger.Info("tailing", "source", t.source, "ring", t.ring, "capacity", t.store.Cap())
	if t.health != nil {
		t.health.UpdateHealthy("source", "reading "+t.source)
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- src.Run(runCtx, t.ingest)
	}()

	var followDone chan struct{}
	if follow {
		followDone = make(chan struct{})
		go func() {
			defer close(followDone)
			t.follow(runCtx, interval)
		}()
	}

	var srcErr error
	select {
	case srcErr = <-done:
		if t.health != nil {
			t.health.Update("source", health.FromError("source", srcErr))
		}
	case <-ctx.Done():
		t.logger.Info("stopping", "reason", ctx.Err())
	}
	cancel()
	if followDone != nil {
		<-followDone
	}

	if err := t.flush(follow); err != nil {
		return err
	}

	t.logger.Info("tail finished",
		"records", t.seq.Load(),
		"evicted", t.evicted.Load(),
		"failed", t.failed.Load())
	return srcErr
}
