// Package testutil provides test doubles and fixtures for ringbuf tests.
//
// MockNATSClient stands in for natsclient.Client so NATS-fed code can be
// tested without a server. Publish delivers synchronously to every
// subscription whose subject pattern matches, honoring the "*" and ">"
// wildcards, and records the message for later inspection:
//
//	client := testutil.NewMockNATSClient()
//	_ = client.Subscribe(ctx, "logs.>", handler)
//	_ = client.Publish(ctx, "logs.app", []byte("hello"))
//	testutil.WaitForMessageCount(t, client, "logs.app", 1, time.Second)
//
// LogLines and LogText build numbered line fixtures for tail tests.
package testutil
