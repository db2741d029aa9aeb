// Package metric provides the Prometheus registry and HTTP endpoint shared by
// ringbuf components.
//
// # Architecture
//
//  1. Core Metrics: process-level series registered automatically (Metrics):
//     records ingested per source, ingest errors, write latency, ring
//     eviction, occupancy and capacity, and NATS connection health.
//  2. Component registry: buffers and other components register their own
//     collectors through the MetricsRegistrar interface. Registrations are
//     keyed by service and metric name, and duplicates are rejected.
//  3. HTTP server: Server exposes the registry in Prometheus text or
//     OpenMetrics format together with a /health probe, which callers
//     may replace with Handle. SetTLSConfig switches it to HTTPS.
//
// # Basic Usage
//
//	registry := metric.NewMetricsRegistry()
//	server := metric.NewServer(9090, "/metrics", registry)
//
//	server.Handle("/health", healthHandler)
//
//	g, ctx := errgroup.WithContext(ctx)
//	g.Go(func() error { return server.Run(ctx) })
//
//	core := registry.CoreMetrics()
//	core.RecordIngested("stdin")
//	core.RecordRingState("tail", 42, 100)
//
// Buffers opt in with buffer.WithMetrics(registry, "component").
//
// The registry is private to the process; nothing is registered with the
// Prometheus default registry.
package metric
