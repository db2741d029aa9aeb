// Package health reports the health of ringbuf components.
//
// A Status is healthy, degraded or unhealthy and may carry sub-statuses.
// A Monitor holds named components, each either a stored Status (Update)
// or a Probe evaluated on every read (Register). AggregateHealth folds
// them into one Status: unhealthy wins over degraded, degraded over
// healthy.
//
//	monitor := health.NewMonitor()
//	monitor.Register("ring", func() health.Status {
//	    return health.FromRing("ring", buf.Size(), buf.Capacity(), false)
//	})
//	monitor.Update("source", health.FromError("source", err))
//
//	mux.Handle("/health", health.Handler(monitor, "ringtail"))
//
// Messages built from errors by FromError have URLs, paths, addresses
// and credentials replaced with placeholders before they are served.
//
// All Monitor methods are safe for concurrent use.
package health
