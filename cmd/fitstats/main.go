package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nomis52/fitstats/batch"
	"github.com/nomis52/fitstats/buildinfo"
	"github.com/nomis52/fitstats/config"
	"github.com/nomis52/fitstats/logging"
	"github.com/nomis52/fitstats/metrics"
	"github.com/nomis52/fitstats/report"
	"github.com/nomis52/fitstats/schedule"
)

const shutdownTimeout = 10 * time.Second

type Args struct {
	ConfigPath  string
	ShowVersion bool
	Validate    bool
	FailFast    bool
}

func main() {
	args, err := parseArgs(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		os.Exit(2)
	}
	if err := run(args, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args Args, stdout io.Writer) error {
	if args.ShowVersion {
		fmt.Fprintln(stdout, buildinfo.Get())
		return nil
	}

	cfg, err := loadConfig(args)
	if err != nil {
		return err
	}

	if args.Validate {
		source := args.ConfigPath
		if source == "" {
			source = "default configuration"
		}
		fmt.Fprintf(stdout, "Configuration validation successful: %s\n", source)
		return nil
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Close()

	props := buildinfo.Get()
	logger.Info("fitstats started",
		"version", props.Version,
		"git_commit", props.GitCommit,
		"config_path", args.ConfigPath,
		"packages", len(cfg.Packages),
	)

	registry, scrape, err := newRegistry(cfg, logger.Logger)
	if err != nil {
		return err
	}
	workoutMetrics, err := metrics.NewWorkoutMetrics(registry)
	if err != nil {
		return fmt.Errorf("failed to register metrics: %w", err)
	}

	reporter, closer, err := report.New(cfg.Output.Destination, logger.Logger)
	if err != nil {
		return err
	}
	defer closer.Close()

	processor := batch.NewProcessor(reporter,
		batch.WithLogger(logger.Logger),
		batch.WithMetrics(workoutMetrics),
		batch.WithFailFast(cfg.Behavior.FailFast),
	)
	runBatch := func(ctx context.Context) error {
		return processor.Process(ctx, cfg.Packages).Err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Schedule == "" {
		if err := runBatch(ctx); err != nil {
			return fmt.Errorf("batch failed: %w", err)
		}
		return nil
	}
	return runScheduled(ctx, cfg, runBatch, scrape, logger.Logger)
}

// loadConfig reads the config file if one was given and applies flag overrides.
func loadConfig(args Args) (config.Config, error) {
	cfg := config.Default()
	if args.ConfigPath != "" {
		var err error
		cfg, err = config.LoadConfig(args.ConfigPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to load config: %w", err)
		}
	}
	if args.FailFast {
		cfg.Behavior.FailFast = true
	}
	return cfg, nil
}

// newRegistry picks push mode when a remote write URL is configured and scrape mode otherwise.
// The scrape registry is returned separately so it can be served.
func newRegistry(cfg config.Config, logger *slog.Logger) (metrics.Registry, *metrics.ScrapeRegistry, error) {
	if cfg.Monitoring.VictoriaMetricsURL != "" {
		hostname, err := os.Hostname()
		if err != nil {
			return nil, nil, fmt.Errorf("failed to get hostname: %w", err)
		}
		return metrics.NewPushRegistry(metrics.PushConfig{
			URL:      cfg.Monitoring.VictoriaMetricsURL,
			Prefix:   cfg.Monitoring.MetricsPrefix,
			Job:      cfg.Monitoring.JobName,
			Instance: hostname,
			Timeout:  cfg.Monitoring.PushTimeout,
			Logger:   logger,
		}), nil, nil
	}

	scrape, err := metrics.NewScrapeRegistry()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create metrics registry: %w", err)
	}
	return scrape, scrape, nil
}

// runScheduled processes the batch once, then on every cron tick until ctx is cancelled.
func runScheduled(ctx context.Context, cfg config.Config, runBatch schedule.RunFunc, scrape *metrics.ScrapeRegistry, logger *slog.Logger) error {
	trigger, err := schedule.NewCronTrigger(cfg.Schedule, runBatch, logger)
	if err != nil {
		return fmt.Errorf("failed to create schedule: %w", err)
	}

	if cfg.Monitoring.ListenAddress != "" && scrape != nil {
		mux := http.NewServeMux()
		mux.Handle("GET /metrics", scrape.Handler())
		server := &http.Server{
			Addr:              cfg.Monitoring.ListenAddress,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			logger.Info("serving metrics", "address", cfg.Monitoring.ListenAddress)
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("metrics server failed", "error", err)
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := server.Shutdown(shutdownCtx); err != nil {
				logger.Warn("metrics server shutdown failed", "error", err)
			}
		}()
	}

	if err := runBatch(ctx); err != nil {
		logger.Warn("initial run completed with error", "error", err)
	}

	logger.Info("waiting for scheduled runs", "schedule", cfg.Schedule, "next_run", trigger.NextRun())
	trigger.Start(ctx)
	<-ctx.Done()
	return nil
}

func parseArgs(argv []string, output io.Writer) (Args, error) {
	fs := flag.NewFlagSet("fitstats", flag.ContinueOnError)
	fs.SetOutput(output)

	configPath := fs.String("config", "", "Path to config file")
	configPathShort := fs.String("c", "", "Path to config file (shorthand)")
	showVersion := fs.Bool("version", false, "Show version information")
	versionShort := fs.Bool("v", false, "Show version information (shorthand)")
	validate := fs.Bool("validate", false, "Validate configuration and exit")
	failFast := fs.Bool("fail-fast", false, "Stop at the first package that cannot be summarised")

	fs.Usage = func() {
		fmt.Fprintf(output, "Usage: fitstats [options]\n")
		fmt.Fprintf(output, "\nWorkout statistics calculator\n\n")
		fmt.Fprintf(output, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(output, "\nExamples:\n")
		fmt.Fprintf(output, "  fitstats\n")
		fmt.Fprintf(output, "  fitstats --config /etc/fitstats/config.yaml\n")
		fmt.Fprintf(output, "  fitstats --config config.yaml --validate\n")
	}

	if err := fs.Parse(argv); err != nil {
		return Args{}, err
	}

	path := *configPath
	if path == "" && *configPathShort != "" {
		path = *configPathShort
	}

	return Args{
		ConfigPath:  path,
		ShowVersion: *showVersion || *versionShort,
		Validate:    *validate,
		FailFast:    *failFast,
	}, nil
}
