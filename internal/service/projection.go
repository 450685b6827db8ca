package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/cloud-ru/finboard-go/internal/calculations"
	"github.com/cloud-ru/finboard-go/internal/config"
	"github.com/cloud-ru/finboard-go/internal/logging"
	"github.com/cloud-ru/finboard-go/internal/metrics"
	"github.com/cloud-ru/finboard-go/internal/validators"
)

var (
	// ErrInvalidInput wraps validation failures of a projection input
	ErrInvalidInput = errors.New("invalid projection input")
	// ErrBalanceCap is returned when the projected balance exceeds the configured cap
	ErrBalanceCap = errors.New("projected balance exceeds the cap")
)

// Request sources used as metric labels
const (
	SourceWeb = "web"
	SourceAPI = "api"
	SourceCLI = "cli"
)

// ChartPoint is one x position of the stacked principal/interest chart
type ChartPoint struct {
	X       int     `json:"x"`
	Year    int     `json:"year"`
	SeriesA float64 `json:"series_a"`
	SeriesB float64 `json:"series_b"`
	Balance float64 `json:"balance"`
}

// ProjectionService validates inputs and runs the projection engine
type ProjectionService struct {
	cfg    *config.Config
	tracer trace.Tracer
	log    *logrus.Entry
	now    func() time.Time
}

// NewProjectionService builds a service using the wall clock for calendar years
func NewProjectionService(cfg *config.Config, tracer trace.Tracer, log logrus.FieldLogger) *ProjectionService {
	return &ProjectionService{
		cfg:    cfg,
		tracer: tracer,
		log:    logging.Component(log, "projection"),
		now:    time.Now,
	}
}

// WithClock replaces the clock used to pick the starting calendar year
func (s *ProjectionService) WithClock(now func() time.Time) *ProjectionService {
	s.now = now
	return s
}

// Project recomputes the full breakdown for in. Every call starts from
// scratch; nothing is cached between calls.
func (s *ProjectionService) Project(ctx context.Context, source string, in calculations.ProjectionInput) (*calculations.ProjectionResult, error) {
	_, span := s.tracer.Start(ctx, "projection.compute")
	defer span.End()

	span.SetAttributes(
		attribute.String("source", source),
		attribute.Float64("initial_deposit", in.InitialDeposit),
		attribute.Float64("annual_rate_percent", in.AnnualRatePercent),
		attribute.Int("years", in.Years),
		attribute.Float64("monthly_contribution", in.MonthlyContribution),
	)

	if err := validators.CheckProjectionInput(s.cfg, in); err != nil {
		span.SetAttributes(attribute.String("error", "validation_error"))
		span.SetStatus(codes.Error, err.Error())
		metrics.Projections.WithLabelValues(source, "validation_error").Inc()
		s.log.WithError(err).WithField("source", source).Debug("Projection input rejected")
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	start := time.Now()
	breakdown := calculations.Project(in)
	metrics.ProjectionDuration.Observe(time.Since(start).Seconds())

	summary := calculations.Summarize(breakdown, s.now().Year())
	if err := validators.CheckBalance(s.cfg, summary.EndBalance); err != nil {
		span.SetAttributes(attribute.String("error", "balance_cap"))
		span.SetStatus(codes.Error, err.Error())
		metrics.Projections.WithLabelValues(source, "error").Inc()
		s.log.WithError(err).WithField("source", source).Warn("Projection exceeded balance cap")
		return nil, fmt.Errorf("%w: %v", ErrBalanceCap, err)
	}

	span.SetAttributes(
		attribute.Bool("success", true),
		attribute.Float64("end_balance", summary.EndBalance),
		attribute.Float64("total_interest", summary.TotalInterest),
	)
	metrics.Projections.WithLabelValues(source, "success").Inc()

	return &calculations.ProjectionResult{
		Input:     in,
		Summary:   summary,
		Breakdown: breakdown,
	}, nil
}

// ChartSeries shapes a result for the chart renderer: principal as series A
// and accumulated interest as series B, one point per year. Balance is the
// year-end balance, which sits below A+B when the balance dips under principal.
func ChartSeries(result *calculations.ProjectionResult) []ChartPoint {
	if result == nil {
		return nil
	}
	points := make([]ChartPoint, 0, len(result.Breakdown))
	for _, p := range result.Breakdown {
		points = append(points, ChartPoint{
			X:       p.YearOffset,
			Year:    calculations.CalendarYear(p, result.Summary.StartYear),
			SeriesA: p.Principal,
			SeriesB: p.InterestAmount,
			Balance: p.Balance,
		})
	}
	return points
}
