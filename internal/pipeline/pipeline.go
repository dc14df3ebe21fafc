package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/sydneypulse/schi-pipeline/internal/domain"
	"github.com/sydneypulse/schi-pipeline/internal/observability"
)

// Source loads the cleaned input datasets for one run.
type Source interface {
	LoadCommute(ctx context.Context) ([]domain.CommuteObservation, error)
	LoadWeather(ctx context.Context) ([]domain.WeatherObservation, error)
	LoadAreaAttributes(ctx context.Context) ([]domain.AreaAttribute, error)
	LoadAreaGeometries(ctx context.Context) ([]domain.AreaGeometry, error)
}

// Sink persists the feature tables, the geometry reference, and the index.
type Sink interface {
	WriteCommuteFeatures(ctx context.Context, rows []domain.CommuteFeatureRow) error
	WriteWeatherFeatures(ctx context.Context, rows []domain.WeatherFeatureRow) error
	WriteGeometryTable(ctx context.Context, rows []domain.GeometryRecord) error
	WriteIndex(ctx context.Context, rows []domain.IndexRow) error
}

// Report summarizes a single run for callers and logs.
type Report struct {
	RunID           string
	StartedAt       time.Time
	Duration        time.Duration
	CommuteRows     int
	WeatherRows     int
	CommuteFeatures int
	WeatherFeatures int
	GeometryRows    int
	Join            domain.JoinStats
	IndexRows       int
	QuickSCHI       float64
}

// Pipeline orchestrates one load-aggregate-blend-write cycle.
type Pipeline struct {
	source          Source
	sink            Sink
	weights         domain.Weights
	severeThreshold float64
	logger          *slog.Logger
	metrics         *observability.Metrics
	ready           atomic.Bool
}

// New creates a Pipeline. The weight vector is normalized once here so every
// run blends with the same proportions.
func New(source Source, sink Sink, weights domain.Weights, severeThreshold float64, logger *slog.Logger, metrics *observability.Metrics) *Pipeline {
	return &Pipeline{
		source:          source,
		sink:            sink,
		weights:         weights.Normalize(),
		severeThreshold: severeThreshold,
		logger:          logger,
		metrics:         metrics,
	}
}

// CheckReadiness returns nil once at least one run has written the index,
// or an error describing why the service is not yet ready.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	if !p.ready.Load() {
		return errors.New("no index artifact built yet")
	}
	return nil
}

// Run executes one full pipeline cycle and reports what it did. The inputs
// are re-read from the source every time, so a run picks up whatever the
// upstream cleaning steps have dropped off since the last one.
func (p *Pipeline) Run(ctx context.Context) (Report, error) {
	runID := uuid.NewString()
	logger := p.logger.With("run_id", runID)
	start := clock.Now()

	p.metrics.PipelineRunning.Set(1)
	defer p.metrics.PipelineRunning.Set(0)

	logger.Info("pipeline run started")

	report, err := p.run(ctx, logger)
	report.RunID = runID
	report.StartedAt = start
	report.Duration = clock.Since(start)
	p.metrics.RunDuration.Observe(report.Duration.Seconds())

	if err != nil {
		p.metrics.RunsTotal.WithLabelValues("error").Inc()
		logger.Error("pipeline run failed", "error", err, "duration", report.Duration)
		return report, err
	}

	p.metrics.RunsTotal.WithLabelValues("success").Inc()
	p.ready.Store(true)
	logger.Info("pipeline run finished",
		"duration", report.Duration,
		"index_rows", report.IndexRows,
		"dropped_commute_only", report.Join.CommuteOnly,
		"dropped_weather_only", report.Join.WeatherOnly,
		"missing_geometry", report.Join.MissingGeometry,
	)
	return report, nil
}

// run performs the stages in order. Any stage error aborts the run and leaves
// previously written artifacts from the last successful run in place.
func (p *Pipeline) run(ctx context.Context, logger *slog.Logger) (Report, error) {
	var report Report

	commute, weather, attrs, geoms, err := p.loadInputs(ctx)
	if err != nil {
		return report, err
	}
	report.CommuteRows = len(commute)
	report.WeatherRows = len(weather)
	logger.Info("inputs loaded",
		"commute_rows", len(commute),
		"weather_rows", len(weather),
		"areas", len(attrs),
		"geometries", len(geoms),
	)

	commuteFeatures := domain.AggregateCommute(commute, p.severeThreshold)
	weatherFeatures := domain.AggregateWeather(weather)
	geometry := domain.BuildGeometryTable(attrs, geoms)
	p.metrics.FeatureRows.WithLabelValues("commute").Add(float64(len(commuteFeatures)))
	p.metrics.FeatureRows.WithLabelValues("weather").Add(float64(len(weatherFeatures)))
	report.CommuteFeatures = len(commuteFeatures)
	report.WeatherFeatures = len(weatherFeatures)
	report.GeometryRows = len(geometry)

	if err := p.sink.WriteCommuteFeatures(ctx, commuteFeatures); err != nil {
		return report, fmt.Errorf("write commute features: %w", err)
	}
	if err := p.sink.WriteWeatherFeatures(ctx, weatherFeatures); err != nil {
		return report, fmt.Errorf("write weather features: %w", err)
	}
	if err := p.sink.WriteGeometryTable(ctx, geometry); err != nil {
		return report, fmt.Errorf("write geometry table: %w", err)
	}

	rows, stats, err := domain.BuildIndex(commuteFeatures, weatherFeatures, domain.GeometryLookup(geometry), p.weights)
	if err != nil {
		return report, fmt.Errorf("build index: %w", err)
	}
	report.Join = stats
	p.metrics.JoinDroppedRows.WithLabelValues("commute").Add(float64(stats.CommuteOnly))
	p.metrics.JoinDroppedRows.WithLabelValues("weather").Add(float64(stats.WeatherOnly))
	p.metrics.GeometryMisses.Add(float64(stats.MissingGeometry))

	if err := p.sink.WriteIndex(ctx, rows); err != nil {
		return report, fmt.Errorf("write index: %w", err)
	}
	report.IndexRows = len(rows)
	p.metrics.IndexRows.Set(float64(len(rows)))

	report.QuickSCHI = p.pulse(logger, commute)
	return report, nil
}

// loadInputs reads the four cleaned datasets and counts their rows.
func (p *Pipeline) loadInputs(ctx context.Context) ([]domain.CommuteObservation, []domain.WeatherObservation, []domain.AreaAttribute, []domain.AreaGeometry, error) {
	commute, err := p.source.LoadCommute(ctx)
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("load commute: %w", err)
	}
	p.metrics.RowsRead.WithLabelValues("commute").Add(float64(len(commute)))

	weather, err := p.source.LoadWeather(ctx)
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("load weather: %w", err)
	}
	p.metrics.RowsRead.WithLabelValues("weather").Add(float64(len(weather)))

	attrs, err := p.source.LoadAreaAttributes(ctx)
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("load area attributes: %w", err)
	}

	geoms, err := p.source.LoadAreaGeometries(ctx)
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("load area geometries: %w", err)
	}

	return commute, weather, attrs, geoms, nil
}

// pulse computes the city-wide quick score from the raw commute rows. It is
// a coarse health signal for dashboards, not part of the index artifact, so
// an empty input just skips it.
func (p *Pipeline) pulse(logger *slog.Logger, commute []domain.CommuteObservation) float64 {
	matrix, err := domain.BuildFeatureMatrix(commute)
	if err != nil {
		if !errors.Is(err, domain.ErrNoCommuteRows) {
			logger.Warn("quick pulse skipped", "error", err)
		}
		return 0
	}

	quick := domain.QuickSCHI(matrix, domain.DefaultQuickDelayWeight, domain.DefaultQuickMoodWeight)
	p.metrics.QuickSCHI.Set(quick)
	logger.Info("quick pulse",
		"quick_schi", quick,
		"observations", matrix.Observations,
		"avg_delay_min", matrix.AvgDelayMinutes,
		"avg_mood", matrix.AvgMood,
	)
	return quick
}
