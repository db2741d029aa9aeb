// Package natsclient wraps the NATS Go client with circuit breaker
// protection, lifecycle tracking and structured logging. ringtail uses it to
// tail a subject into a ring.
//
// # Connection lifecycle
//
// A client moves through Disconnected, Connecting, Connected and
// Reconnecting. After a threshold of failed Connect calls (default 5) the
// circuit opens and Connect fails fast with ErrCircuitOpen until a backoff
// elapses. The backoff doubles each time the circuit reopens, up to
// WithMaxBackoff.
//
// # Basic Usage
//
//	client, err := natsclient.NewClient("nats://localhost:4222",
//		natsclient.WithLogger(logger),
//		natsclient.WithMetrics(registry.CoreMetrics()),
//	)
//	if err != nil {
//		return err
//	}
//
//	if err := client.Connect(ctx); err != nil {
//		return err
//	}
//	defer client.Close(ctx)
//
//	err = client.Subscribe(ctx, "logs.>", func(msgCtx context.Context, data []byte) {
//		// msgCtx carries a 30s timeout
//	})
//
// Errors are classified with the errors package: connection problems are
// transient, a closed client is invalid.
package natsclient
