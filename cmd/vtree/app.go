package main

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/vango-dev/vtree/internal/config"
	"github.com/vango-dev/vtree/internal/demo"
	"github.com/vango-dev/vtree/pkg/engine"
	"github.com/vango-dev/vtree/pkg/host"
	"github.com/vango-dev/vtree/pkg/snapshot"
)

// globalOptions holds the persistent flags.
type globalOptions struct {
	configPath string
	logLevel   string
	logFormat  string
}

// loadConfig loads the config named by --config and applies the log flag
// overrides.
func (o *globalOptions) loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	switch {
	case o.configPath == "":
		cfg, err = config.Load(".")
	case isDir(o.configPath):
		cfg, err = config.Load(o.configPath)
	default:
		cfg, err = config.LoadFile(o.configPath)
	}
	if err != nil {
		return nil, err
	}

	if o.logLevel != "" {
		cfg.Log.Level = o.logLevel
	}
	if o.logFormat != "" {
		cfg.Log.Format = o.logFormat
	}
	return cfg, nil
}

func isDir(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.IsDir()
}

// newLogger builds the process logger from the log config.
func newLogger(w io.Writer, cfg config.LogConfig) *slog.Logger {
	level, err := cfg.SlogLevel()
	if err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if cfg.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// app is everything a command needs to drive the demo.
type app struct {
	cfg      *config.Config
	logger   *slog.Logger
	registry *prometheus.Registry
	mem      *host.Memory
	engine   *engine.Engine
	root     *engine.Root
	demo     *demo.Demo
}

// newApp validates cfg and wires an engine, a memory host and the demo
// together. Logs go to logOut.
func newApp(cfg *config.Config, logOut io.Writer) (*app, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	interval, _ := cfg.Demo.IntervalDuration()
	mode, _ := cfg.Engine.ChildrenMode()

	logger := newLogger(logOut, cfg.Log)
	slog.SetDefault(logger)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := engine.NewMetrics(
		engine.WithNamespace(cfg.Metrics.Namespace),
		engine.WithRegistry(registry),
	)

	mem := host.NewMemory()
	eng := engine.New(mem,
		engine.WithLogger(logger),
		engine.WithMetrics(metrics),
		engine.WithStrictTags(cfg.Engine.StrictTags),
		engine.WithChildrenMode(mode),
	)

	return &app{
		cfg:      cfg,
		logger:   logger,
		registry: registry,
		mem:      mem,
		engine:   eng,
		root:     engine.NewRoot(eng, mem.Root()),
		demo: demo.New(demo.Options{
			Interval:   interval,
			MaxCounter: cfg.Demo.MaxCounter,
			Logger:     logger,
		}),
	}, nil
}

// openStore opens the configured snapshot store, or returns nil for the
// none driver.
func openStore(ctx context.Context, cfg config.SnapshotConfig) (snapshot.Store, error) {
	switch cfg.Driver {
	case config.DriverBolt:
		return snapshot.OpenBolt(cfg.Path)
	case config.DriverS3:
		return snapshot.NewS3StoreFromConfig(ctx, snapshot.S3Config{
			Bucket:   cfg.Bucket,
			Prefix:   cfg.Prefix,
			Region:   cfg.Region,
			Endpoint: cfg.Endpoint,
		})
	default:
		return nil, nil
	}
}

// startRecorder records commits into the configured store. The returned
// stop function flushes the recorder and closes the store.
func (a *app) startRecorder(ctx context.Context) (stop func() error, err error) {
	store, err := openStore(ctx, a.cfg.Snapshot)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return func() error { return nil }, nil
	}

	rec := snapshot.NewRecorder(a.engine, a.mem, store, snapshot.WithLogger(a.logger))
	return func() error {
		recErr := rec.Close()
		written, dropped, _ := rec.Stats()
		a.logger.Info("snapshots recorded", "driver", a.cfg.Snapshot.Driver, "written", written, "dropped", dropped)
		if err := store.Close(); err != nil && recErr == nil {
			recErr = err
		}
		return recErr
	}, nil
}
