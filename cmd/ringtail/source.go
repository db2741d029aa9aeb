package main

import (
	"bufio"
	"context"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/c360/ringbuf/config"
	"github.com/c360/ringbuf/errors"
	"github.com/c360/ringbuf/metric"
	"github.com/c360/ringbuf/natsclient"
	"github.com/c360/ringbuf/pkg/retry"
	"github.com/c360/ringbuf/pkg/tlsutil"
)

// maxLineSize bounds a single record read from a file or stdin.
const maxLineSize = 1 << 20

// source produces records until it is exhausted or ctx is done.
type source interface {
	Name() string
	Run(ctx context.Context, emit func(context.Context, []byte)) error
}

type lineSource struct {
	name    string
	scanner *bufio.Scanner
}

func newLineSource(name string, r io.Reader) *lineSource {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	return &lineSource{name: name, scanner: scanner}
}

func (s *lineSource) Name() string { return s.name }

func (s *lineSource) Run(ctx context.Context, emit func(context.Context, []byte)) error {
	for s.scanner.Scan() {
		if ctx.Err() != nil {
			return nil
		}
		emit(ctx, s.scanner.Bytes())
	}
	return errors.WrapInvalid(s.scanner.Err(), "lineSource", "Run", "read "+s.name)
}

// natsConn is the part of natsclient.Client a NATS source needs.
type natsConn interface {
	Subscribe(ctx context.Context, subject string, handler func(context.Context, []byte)) error
	Close(ctx context.Context) error
}

type dialFunc func(ctx context.Context, cfg config.NATSConfig, logger *slog.Logger, core *metric.Metrics) (natsConn, error)

// dialNATS connects a natsclient.Client configured from cfg, retrying the
// first connection up to cfg.ConnectAttempts times.
func dialNATS(ctx context.Context, cfg config.NATSConfig, logger *slog.Logger, core *metric.Metrics) (natsConn, error) {
	name := cfg.Name
	if name == "" {
		name = appName
	}

	opts := []natsclient.ClientOption{
		natsclient.WithLogger(logger),
		natsclient.WithMetrics(core),
		natsclient.WithName(name),
		natsclient.WithMaxReconnects(cfg.MaxReconnects),
	}
	if cfg.ReconnectWait > 0 {
		opts = append(opts, natsclient.WithReconnectWait(cfg.ReconnectWait.Std()))
	}
	if cfg.Timeout > 0 {
		opts = append(opts, natsclient.WithTimeout(cfg.Timeout.Std()))
	}
	if cfg.Username != "" {
		opts = append(opts, natsclient.WithCredentials(cfg.Username, cfg.Password))
	}
	if cfg.Token != "" {
		opts = append(opts, natsclient.WithToken(cfg.Token))
	}

	tlsConfig, err := tlsutil.LoadClientTLSConfig(cfg.TLS)
	if err != nil {
		return nil, err
	}
	if tlsConfig != nil {
		opts = append(opts, natsclient.WithTLSConfig(tlsConfig))
	}

	client, err := natsclient.NewClient(strings.Join(cfg.URLs, ","), opts...)
	if err != nil {
		return nil, err
	}

	policy := retry.Quick()
	policy.MaxAttempts = max(cfg.ConnectAttempts, 1)
	err = retry.Do(ctx, policy, func() error {
		err := client.Connect(ctx)
		if err != nil {
			logger.Warn("NATS connect failed", "url", client.URL(), "error", err)
		}
		return err
	})
	if err != nil {
		closeCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = client.Close(closeCtx)
		return nil, err
	}
	return client, nil
}

type natsSource struct {
	conn    natsConn
	subject string
}

func (s *natsSource) Name() string { return "nats:" + s.subject }

// Run subscribes and then waits for ctx; messages arrive on the client's
// delivery goroutine.
func (s *natsSource) Run(ctx context.Context, emit func(context.Context, []byte)) error {
	if err := s.conn.Subscribe(ctx, s.subject, emit); err != nil {
		return err
	}
	<-ctx.Done()
	return nil
}
