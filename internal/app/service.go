// Package service ties profile loading, analysis, rendering and metrics
// together for the command line.
package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"time"

	"github.com/okian/holdemdna/internal/adapters/profilefile"
	"github.com/okian/holdemdna/internal/adapters/render"
	"github.com/okian/holdemdna/internal/domain/advice"
	"github.com/okian/holdemdna/internal/domain/analysis"
	"github.com/okian/holdemdna/internal/domain/model"
	"github.com/okian/holdemdna/internal/domain/types"
	"github.com/okian/holdemdna/pkg/logger"
	"github.com/okian/holdemdna/pkg/metrics"
)

// Load error kinds reported to metrics.
const (
	LoadErrorNotFound = "not_found"
	LoadErrorInvalid  = "invalid"
	LoadErrorRead     = "read"
)

// Recorder is the subset of the metrics manager the service uses.
type Recorder interface {
	RecordAnalysis(d time.Duration, sessions int)
	ObserveScores(strategy, psychology, mental, composite float64)
	RecordOutcome(outcome string)
	RecordLoadError(kind string)
	WriteTextfile(path string) error
}

// LoaderFunc reads a profile from path.
type LoaderFunc func(ctx context.Context, path string) (model.PlayerProfile, error)

// Result is one analysed profile.
type Result struct {
	Name     string
	Report   model.SessionReport
	Outcomes advice.OutcomeSet
	Payload  types.ReportPayload
}

// Service analyses profile files.
type Service struct {
	format      string
	jsonIndent  int
	metricsFile string
	rankWorkers int

	load    LoaderFunc
	metrics Recorder
	logger  logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithFormat sets the output format used by Render.
func WithFormat(format string) Option {
	return func(s *Service) {
		if format != "" {
			s.format = format
		}
	}
}

// WithJSONIndent sets the indent width for JSON output.
func WithJSONIndent(n int) Option {
	return func(s *Service) {
		if n >= 0 {
			s.jsonIndent = n
		}
	}
}

// WithMetricsFile enables exporting metrics to path after every analysis.
func WithMetricsFile(path string) Option {
	return func(s *Service) {
		s.metricsFile = path
	}
}

// WithRankWorkers sets the number of concurrent analyses in Rank. Zero
// uses the CPU count.
func WithRankWorkers(n int) Option {
	return func(s *Service) {
		if n >= 0 {
			s.rankWorkers = n
		}
	}
}

// WithMetrics replaces the metrics recorder.
func WithMetrics(r Recorder) Option {
	return func(s *Service) {
		if r != nil {
			s.metrics = r
		}
	}
}

// WithLoader replaces the profile loader.
func WithLoader(fn LoaderFunc) Option {
	return func(s *Service) {
		if fn != nil {
			s.load = fn
		}
	}
}

// New constructs a Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		format:     render.FormatText,
		jsonIndent: 2,
		load:       profilefile.Load,
		metrics:    metrics.Default(),
		logger:     logger.Nop(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// AnalyzeFile loads the profile at path and scores it.
func (s *Service) AnalyzeFile(ctx context.Context, path string) (Result, error) {
	start := time.Now()

	profile, err := s.load(ctx, path)
	if err != nil {
		kind := LoadErrorKind(err)
		s.metrics.RecordLoadError(kind)
		s.logger.Warn(ctx, "profile load failed",
			logger.String("path", path),
			logger.String("kind", kind),
			logger.Error(err),
		)
		s.export(ctx)
		return Result{}, fmt.Errorf("%w: %w", ErrAnalyze, err)
	}

	report, outcomes := analysis.Assess(profile)
	res := Result{
		Name:     profile.Name,
		Report:   report,
		Outcomes: outcomes,
		Payload:  types.NewReportPayload(report),
	}

	s.metrics.RecordAnalysis(time.Since(start), len(profile.Sessions))
	s.metrics.ObserveScores(report.StrategyScore, report.PsychologyScore, report.MentalScore, res.Payload.Composite)
	for _, o := range outcomes.Outcomes() {
		s.metrics.RecordOutcome(o.String())
	}

	s.logger.Info(ctx, "profile analysed",
		logger.String("player", profile.Name),
		logger.Int("sessions", len(profile.Sessions)),
		logger.Float64("composite", res.Payload.Composite),
		logger.Duration("elapsed", time.Since(start)),
	)
	s.export(ctx)

	return res, nil
}

// Render writes res to w in the configured format.
func (s *Service) Render(w io.Writer, res Result) error {
	p, err := render.New(s.format, render.WithIndent(s.jsonIndent))
	if err != nil {
		return err
	}
	return p.Present(w, res.Name, res.Payload)
}

// export rewrites the metrics file. Failures are logged and do not fail
// the analysis.
func (s *Service) export(ctx context.Context) {
	if s.metricsFile == "" {
		return
	}
	if err := s.metrics.WriteTextfile(s.metricsFile); err != nil {
		s.logger.Warn(ctx, "metrics export failed",
			logger.String("path", s.metricsFile),
			logger.Error(err),
		)
	}
}

// LoadErrorKind classifies a loader error for metrics.
func LoadErrorKind(err error) string {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return LoadErrorNotFound
	case errors.Is(err, profilefile.ErrInvalidProfile):
		return LoadErrorInvalid
	default:
		return LoadErrorRead
	}
}
