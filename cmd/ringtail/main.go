// Package main implements ringtail, which keeps the most recent N records of
// a stream (stdin, a file or a NATS subject) in a ring buffer and prints them
// when the stream ends, on SIGINT/SIGTERM, or periodically with -follow.
package main

import (
	"context"
	stderrors "errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/c360/ringbuf/config"
	"github.com/c360/ringbuf/errors"
	"github.com/c360/ringbuf/health"
	"github.com/c360/ringbuf/metric"
	"github.com/c360/ringbuf/pkg/buffer"
	"github.com/c360/ringbuf/pkg/tlsutil"
)

// Build information constants
const (
	Version   = "0.1.0"
	BuildTime = "dev"
	appName   = "ringtail"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	a := &app{
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
		dial:   dialNATS,
		now:    time.Now,
	}
	err := a.run(ctx, os.Args[1:])
	stop()

	if err != nil && !stderrors.Is(err, flag.ErrHelp) {
		_, _ = fmt.Fprintf(os.Stderr, "%s: %v\n", appName, err)
		os.Exit(1)
	}
}

// app carries the process's I/O and dependencies so run can be tested.
type app struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	dial   dialFunc
	now    func() time.Time
	health *health.Monitor // created by run when nil
}

func (a *app) run(ctx context.Context, args []string) error {
	cli, err := parseFlags(args, a.stderr)
	if err != nil {
		return err
	}
	if err := validateFlags(cli); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}

	if cli.ShowVersion {
		_, _ = fmt.Fprintf(a.stdout, "%s version %s\n", appName, Version)
		return nil
	}

	cfg, err := loadConfig(cli)
	if err != nil {
		return err
	}
	rc, _ := cfg.Ring(cli.Ring)
	if rc.Policy() == buffer.Block && !cli.Follow {
		return errors.WrapInvalid(
			fmt.Errorf("%w: block policy needs -follow to drain the ring", errors.ErrInvalidConfig),
			"ringtail", "run", "check policy")
	}

	logger := setupLogger(a.stderr, cfg.Logging.Level, cfg.Logging.Format)
	logger.Debug("configuration loaded", "config", cfg.String())

	if a.health == nil {
		a.health = health.NewMonitor()
	}

	registry := metric.NewMetricsRegistry()
	core := registry.CoreMetrics()
	var server *metric.Server
	if cfg.Metrics.Enabled {
		server = metric.NewServer(cfg.Metrics.Port, cfg.Metrics.Path, registry)
		server.Handle("/health", health.Handler(a.health, appName))
		tlsConfig, err := tlsutil.LoadServerTLSConfig(cfg.Metrics.TLS)
		if err != nil {
			return err
		}
		server.SetTLSConfig(tlsConfig)
	}

	t := &tailer{
		ring:    cli.Ring,
		metrics: core,
		logger:  logger,
		out:     a.stdout,
		format:  cli.Output,
		reverse: cli.Reverse,
		now:     a.now,
		health:  a.health,

		warnLimit: rate.NewLimiter(rate.Every(time.Second), 5),
	}
	st, err := newStore(cli.Ring, rc, registry, t.onDrop)
	if err != nil {
		return err
	}
	defer st.Close()
	t.store = st
	core.RecordRingState(cli.Ring, 0, st.Cap())
	blocking := rc.Policy() == buffer.Block
	a.health.Register("ring:"+cli.Ring, func() health.Status {
		return health.FromRing(cli.Ring, st.Len(), st.Cap(), blocking)
	})

	src, closeSource, err := a.openSource(ctx, cli, cfg, logger, core)
	if err != nil {
		return err
	}
	defer closeSource()

	// The metrics server lives as long as the tail; a bind failure ends both.
	g, gctx := errgroup.WithContext(ctx)
	serverCtx, stopServer := context.WithCancel(gctx)
	defer stopServer()
	if server != nil {
		logger.Info("serving metrics", "address", server.Address())
		g.Go(func() error { return server.Run(serverCtx) })
	}
	g.Go(func() error {
		defer stopServer()
		return t.run(gctx, src, cli.Follow, cli.Interval)
	})
	return g.Wait()
}

// loadConfig layers the optional file, the environment and the flags.
func loadConfig(cli *CLIConfig) (*config.Config, error) {
	loader := config.NewLoader()
	loader.EnableValidation(false)
	if cli.ConfigPath != "" {
		loader.AddLayer(cli.ConfigPath)
	}
	cfg, err := loader.Load()
	if err != nil {
		return nil, err
	}

	if cli.LogLevel != "" {
		cfg.Logging.Level = cli.LogLevel
	}
	if cli.LogFormat != "" {
		cfg.Logging.Format = cli.LogFormat
	}
	if cli.NATSURL != "" {
		cfg.NATS.URLs = []string{cli.NATSURL}
	}
	if cli.Subject != "" {
		cfg.NATS.Subject = cli.Subject
	}
	if cli.MetricsPort > 0 {
		cfg.Metrics.Enabled = true
		cfg.Metrics.Port = cli.MetricsPort
	}

	rc, ok := cfg.Ring(cli.Ring)
	if !ok {
		return nil, errors.WrapInvalid(
			fmt.Errorf("%w: ring %q", errors.ErrConfigNotFound, cli.Ring),
			"ringtail", "loadConfig", "select ring")
	}
	if cli.Capacity > 0 {
		rc.Capacity = cli.Capacity
	}
	if cli.Variant != "" {
		rc.Variant = cli.Variant
	}
	if cli.Policy != "" {
		rc.OverflowPolicy = cli.Policy
	}
	if cfg.Rings == nil {
		cfg.Rings = make(map[string]config.RingConfig)
	}
	cfg.Rings[cli.Ring] = rc

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// openSource picks a file, a NATS subject or stdin, in that order.
func (a *app) openSource(
	ctx context.Context,
	cli *CLIConfig,
	cfg *config.Config,
	logger *slog.Logger,
	core *metric.Metrics,
) (source, func(), error) {
	switch {
	case cli.File != "" && cli.File != "-":
		f, err := os.Open(cli.File)
		if err != nil {
			return nil, nil, errors.WrapInvalid(err, "ringtail", "openSource", "open "+cli.File)
		}
		closeFile := func() {
			if err := f.Close(); err != nil {
				logger.Warn("close failed", "file", cli.File, "error", err)
			}
		}
		return newLineSource(filepath.Base(cli.File), f), closeFile, nil

	case cfg.NATS.Subject != "":
		conn, err := a.dial(ctx, cfg.NATS, logger, core)
		if err != nil {
			return nil, nil, err
		}
		if hc, ok := conn.(interface{ IsHealthy() bool }); ok {
			a.health.Register("nats", func() health.Status {
				if hc.IsHealthy() {
					return health.NewHealthy("nats", "connected")
				}
				return health.NewUnhealthy("nats", "not connected")
			})
		}
		closeConn := func() {
			closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := conn.Close(closeCtx); err != nil {
				logger.Warn("NATS close failed", "error", err)
			}
		}
		return &natsSource{conn: conn, subject: cfg.NATS.Subject}, closeConn, nil

	default:
		return newLineSource("stdin", a.stdin), func() {}, nil
	}
}
