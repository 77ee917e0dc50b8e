package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/couchcryptid/road-safety-reports/internal/domain"
	"github.com/couchcryptid/road-safety-reports/internal/observability"
	"github.com/couchcryptid/road-safety-reports/internal/report"
)

// RecordSource loads the whole accident dataset.
type RecordSource interface {
	Load() ([]domain.IncidentRecord, domain.LoadStats, error)
}

// ArtifactWriter persists one report payload.
type ArtifactWriter interface {
	Write(kind report.Kind, payload any) (domain.Artifact, error)
}

// Notifier announces written artifacts to downstream consumers.
type Notifier interface {
	Publish(ctx context.Context, ev domain.ReportPublished) error
}

// Summary describes one completed run.
type Summary struct {
	RunID         string
	Records       int
	GeneratedDate time.Time
	Written       []domain.Artifact
	Failed        []string // file names that could not be written
}

// Pipeline runs load, aggregate and write once per invocation. It is not
// safe to run two Pipelines against the same output directory at once.
type Pipeline struct {
	source   RecordSource
	writer   ArtifactWriter
	notifier Notifier
	geocoder domain.ReverseGeocoder
	logger   *slog.Logger
	metrics  *observability.Metrics
}

// New creates a Pipeline. notifier and geocoder may be nil.
func New(source RecordSource, writer ArtifactWriter, notifier Notifier, geocoder domain.ReverseGeocoder, logger *slog.Logger, metrics *observability.Metrics) *Pipeline {
	return &Pipeline{
		source:   source,
		writer:   writer,
		notifier: notifier,
		geocoder: geocoder,
		logger:   logger,
		metrics:  metrics,
	}
}

type artifact struct {
	kind    report.Kind
	payload any
}

// Run loads the dataset, builds every report and writes each artifact. A
// load failure is returned immediately. Write failures do not stop the run;
// they are joined into the returned error after every artifact is attempted.
// ctx bounds only the optional geocoding and notification calls.
func (p *Pipeline) Run(ctx context.Context) (Summary, error) {
	start := time.Now()
	sum := Summary{RunID: uuid.NewString()}
	logger := p.logger.With("run_id", sum.RunID)

	records, stats, err := p.source.Load()
	if err != nil {
		return sum, fmt.Errorf("load dataset: %w", err)
	}
	sum.Records = len(records)
	p.metrics.RecordsLoaded.Add(float64(len(records)))
	for field, n := range stats.Malformed {
		p.metrics.MalformedFields.WithLabelValues(field).Add(float64(n))
	}
	logger.Info("aggregating", "records", len(records), "rows", stats.Rows)

	b := report.NewBuilder(records)
	sum.GeneratedDate = b.GeneratedDate()

	hotspots := b.Hotspots()
	if p.geocoder != nil {
		named := report.AnnotateHotspots(ctx, &hotspots, p.geocoder, logger)
		logger.Info("hotspots geocoded", "named", named, "total", len(hotspots.TopHotspots))
	}

	artifacts := []artifact{
		{report.MonthlySafety, b.MonthlySafety()},
		{report.HotspotAnalysis, hotspots},
		{report.EmergencyResponse, b.EmergencyResponse()},
		{report.MonthlyTrends, b.MonthlyTrends()},
		{report.RiskFactorsAnalysis, b.RiskFactors()},
		{report.SeverityDistribution, b.SeverityDistribution()},
		{report.HotspotLayer, b.HotspotLayer()},
		{report.AccidentsSummary, b.Summary()},
	}

	var errs []error
	for _, a := range artifacts {
		written, err := p.writer.Write(a.kind, a.payload)
		if err != nil {
			logger.Error("artifact not written", "report", a.kind.File, "error", err)
			p.metrics.ReportWriteFailures.WithLabelValues(a.kind.File).Inc()
			sum.Failed = append(sum.Failed, a.kind.File)
			errs = append(errs, err)
			continue
		}
		p.metrics.ReportsWritten.WithLabelValues(a.kind.File).Inc()
		sum.Written = append(sum.Written, written)
		p.notify(ctx, logger, sum, written)
	}

	p.metrics.RunDuration.Observe(time.Since(start).Seconds())
	if len(errs) > 0 {
		return sum, errors.Join(errs...)
	}
	p.metrics.LastSuccessTimestamp.SetToCurrentTime()
	logger.Info("reports generated", "artifacts", len(sum.Written), "duration", time.Since(start))
	return sum, nil
}

// notify publishes a ReportPublished event. Failures are logged only.
func (p *Pipeline) notify(ctx context.Context, logger *slog.Logger, sum Summary, a domain.Artifact) {
	if p.notifier == nil {
		return
	}
	ev := domain.ReportPublished{
		RunID:         sum.RunID,
		Report:        a.Report,
		File:          a.File,
		GeneratedDate: sum.GeneratedDate,
		Bytes:         a.Bytes,
		SHA256:        a.SHA256,
	}
	if err := p.notifier.Publish(ctx, ev); err != nil {
		logger.Warn("report notification failed", "report", a.File, "error", err)
		p.metrics.NotificationsPublished.WithLabelValues("error").Inc()
		return
	}
	p.metrics.NotificationsPublished.WithLabelValues("success").Inc()
}
