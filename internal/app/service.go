// Package service runs Cooper test assessments: it validates a measurement
// and drives estimator, classifier, reference lookup and percentile engine
// in that order.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/okian/cooper/internal/domain/estimate"
	"github.com/okian/cooper/internal/domain/model"
	"github.com/okian/cooper/internal/domain/percentile"
	"github.com/okian/cooper/internal/domain/reference"
	"github.com/okian/cooper/pkg/logger"
	"github.com/okian/cooper/pkg/metrics"
)

// Assessment is the full outcome of one measurement.
type Assessment struct {
	ID          string               `json:"id" yaml:"id"`
	Measurement model.Measurement    `json:"measurement" yaml:"measurement"`
	Bracket     reference.AgeBracket `json:"bracket" yaml:"bracket"`
	Reference   reference.Stat       `json:"reference" yaml:"reference"`
	Result      model.Result         `json:"result" yaml:"result"`
}

// Service implements assessments. It holds no mutable state after New.
type Service struct {
	logger  logger.Logger
	samples int
	idGen   func() string
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

// WithCurveSamples sets how many density points Distribution returns.
func WithCurveSamples(n int) Option {
	return func(s *Service) {
		if n >= 2 {
			s.samples = n
		}
	}
}

// WithIDGenerator replaces the uuid based assessment id source.
func WithIDGenerator(gen func() string) Option {
	return func(s *Service) {
		if gen != nil {
			s.idGen = gen
		}
	}
}

// New constructs a Service. Without WithLogger the global logger is used.
func New(opts ...Option) *Service {
	s := &Service{
		samples: percentile.DefaultSamples,
		idGen:   func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}
	s.logger = s.logger.Named("assess")
	return s
}

// Assess validates m and computes its VO2 max and percentile.
func (s *Service) Assess(ctx context.Context, m model.Measurement) (Assessment, error) {
	const op = "service.assess"
	a := Assessment{ID: s.idGen(), Measurement: m}
	log := s.logger.With(logger.String("assessment_id", a.ID))

	if err := m.Validate(); err != nil {
		return a, s.fail(ctx, log, op, err)
	}

	vo2, err := estimate.Estimate(m.Gender, m.DistanceKm)
	if err != nil {
		return a, s.fail(ctx, log, op, err)
	}
	a.Bracket = reference.ClassifyAge(m.Age)
	a.Reference, err = reference.Lookup(m.Gender, a.Bracket)
	if err != nil {
		return a, s.fail(ctx, log, op, err)
	}
	pct, err := percentile.Percentile(vo2, a.Reference.Mean, a.Reference.StdDev)
	if err != nil {
		return a, s.fail(ctx, log, op, err)
	}
	a.Result = model.Result{VO2Max: vo2, Percentile: pct}

	metrics.RecordAssessment(m.Gender.String(), a.Bracket.String(), vo2, pct)
	log.Debug(ctx, "assessment computed",
		logger.String("gender", m.Gender.String()),
		logger.Int("age", m.Age),
		logger.Float64("distance_km", m.DistanceKm),
		logger.String("bracket", a.Bracket.String()),
		logger.Float64("vo2max", vo2),
		logger.Float64("percentile", pct),
	)
	return a, nil
}

// Distribution samples the reference density curve of a's cohort.
func (s *Service) Distribution(_ context.Context, a Assessment) ([]percentile.Point, error) {
	pts, err := percentile.Curve(a.Reference.Mean, a.Reference.StdDev, s.samples)
	if err != nil {
		return nil, fmt.Errorf("service.distribution: %w", err)
	}
	return pts, nil
}

func (s *Service) fail(ctx context.Context, log logger.Logger, op string, err error) error {
	kind := ErrorKind(err)
	metrics.RecordAssessmentError(kind)
	if kind == KindInvalidInput {
		log.Debug(ctx, "assessment rejected", logger.String("kind", kind), logger.Error(err))
	} else {
		log.Error(ctx, "assessment failed", logger.String("kind", kind), logger.Error(err))
	}
	return fmt.Errorf("%s: %w", op, err)
}

// Error kinds reported in metrics and logs.
const (
	KindInvalidInput = "invalid_input"
	KindLookup       = "lookup"
	KindConfig       = "config"
	KindInternal     = "internal"
)

// ErrorKind classifies an assessment error.
func ErrorKind(err error) string {
	switch {
	case errors.Is(err, model.ErrInvalidMeasurement), errors.Is(err, model.ErrInvalidGender):
		return KindInvalidInput
	case errors.Is(err, reference.ErrNotFound):
		return KindLookup
	case errors.Is(err, percentile.ErrInvalidStdDev):
		return KindConfig
	default:
		return KindInternal
	}
}
