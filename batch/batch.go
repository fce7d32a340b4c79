// Package batch runs ordered batches of raw sensor packages through the
// workout factory and hands each rendered summary to a reporter.
package batch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/nomis52/fitstats/metrics"
	"github.com/nomis52/fitstats/report"
	"github.com/nomis52/fitstats/workout"
)

// Package is one raw input record: an activity code and its positional sensor values.
type Package struct {
	Code   string    `yaml:"code"`
	Values []float64 `yaml:"values"`
}

// DefaultPackages returns the sample batch used when no input is configured.
func DefaultPackages() []Package {
	return []Package{
		{Code: workout.CodeSwimming, Values: []float64{720, 1, 80, 25, 40}},
		{Code: workout.CodeRunning, Values: []float64{15000, 1, 75}},
		{Code: workout.CodeWalking, Values: []float64{9000, 1, 75, 180}},
	}
}

// Result describes the outcome of one Process call.
type Result struct {
	// Processed counts packages whose summary was reported.
	Processed int
	// Failed counts packages rejected by the factory or the reporter.
	Failed int
	// Messages holds the reported summaries in input order.
	Messages []workout.InfoMessage
	// Err joins every per-package error, or is nil if the batch succeeded.
	Err error
}

// Processor turns packages into summary lines.
type Processor struct {
	reporter report.Reporter
	logger   *slog.Logger
	metrics  *metrics.WorkoutMetrics
	failFast bool
}

// Option configures a Processor.
type Option func(*Processor)

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Processor) {
		p.logger = logger
	}
}

// WithMetrics records every summary and rejection in m.
func WithMetrics(m *metrics.WorkoutMetrics) Option {
	return func(p *Processor) {
		p.metrics = m
	}
}

// WithFailFast stops a batch at its first failing package.
func WithFailFast(failFast bool) Option {
	return func(p *Processor) {
		p.failFast = failFast
	}
}

// NewProcessor creates a Processor that reports to reporter.
func NewProcessor(reporter report.Reporter, opts ...Option) *Processor {
	p := &Processor{
		reporter: reporter,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Process handles packages in order. A failing package is logged and skipped
// unless fail-fast is enabled. Cancelling ctx stops the batch before the next package.
func (p *Processor) Process(ctx context.Context, packages []Package) Result {
	var (
		res  Result
		errs []error
	)

	p.logger.Debug("processing batch", "packages", len(packages))

	for i, pkg := range packages {
		if err := ctx.Err(); err != nil {
			errs = append(errs, fmt.Errorf("batch interrupted before package %d: %w", i, err))
			break
		}

		info, err := p.processOne(ctx, pkg)
		if err != nil {
			err = fmt.Errorf("package %d (%s): %w", i, pkg.Code, err)
			p.logger.Warn("package rejected", "index", i, "code", pkg.Code, "error", err)
			if p.metrics != nil {
				p.metrics.RecordRejected(pkg.Code)
			}
			res.Failed++
			errs = append(errs, err)
			if p.failFast {
				break
			}
			continue
		}

		p.logger.Debug("package summarised", "index", i, "workout", info)
		if p.metrics != nil {
			p.metrics.RecordSummary(info)
		}
		res.Processed++
		res.Messages = append(res.Messages, info)
	}

	res.Err = errors.Join(errs...)
	p.logger.Info("batch complete", "processed", res.Processed, "failed", res.Failed)
	return res
}

func (p *Processor) processOne(ctx context.Context, pkg Package) (workout.InfoMessage, error) {
	w, err := workout.Create(pkg.Code, pkg.Values)
	if err != nil {
		return workout.InfoMessage{}, err
	}

	info := w.Summary()
	if err := p.reporter.Report(ctx, info.Message()); err != nil {
		return workout.InfoMessage{}, fmt.Errorf("reporting summary: %w", err)
	}
	return info, nil
}
