package infrastructure

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.28.0"
)

const (
	ServiceName = "biaslens"
	MeterName   = "biaslens"
)

// OTelProviders holds the OpenTelemetry meter provider and the Prometheus
// scrape handler exposing its metrics.
type OTelProviders struct {
	MeterProvider  *sdkmetric.MeterProvider
	Meter          metric.Meter
	PrometheusHTTP http.Handler
	Logger         *slog.Logger
}

// InitializeOTel sets up the OpenTelemetry meter provider with a Prometheus
// exporter.
func InitializeOTel(version string, logger *slog.Logger) (*OTelProviders, error) {
	res, err := resource.New(context.Background(),
		resource.WithAttributes(
			semconv.ServiceName(ServiceName),
			semconv.ServiceVersion(version),
			attribute.String("service.instance.id", instanceID()),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	exporter, err := prometheus.New()
	if err != nil {
		return nil, fmt.Errorf("failed to create prometheus exporter: %w", err)
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(exporter),
	)
	otel.SetMeterProvider(mp)

	logger.Info("Metrics initialized", slog.String("exporter", "prometheus"))

	return &OTelProviders{
		MeterProvider:  mp,
		Meter:          mp.Meter(MeterName, metric.WithInstrumentationVersion(version)),
		PrometheusHTTP: promhttp.Handler(),
		Logger:         logger,
	}, nil
}

// Metrics holds the application-specific instruments.
type Metrics struct {
	HTTPRequestsTotal   metric.Int64Counter
	HTTPRequestDuration metric.Float64Histogram
	HTTPActiveRequests  metric.Int64UpDownCounter

	AnalysesTotal    metric.Int64Counter
	AnalysisDuration metric.Float64Histogram
	AnalysisErrors   metric.Int64Counter

	InsightRequestsTotal metric.Int64Counter
	InsightFailures      metric.Int64Counter
}

// CreateMetrics registers the application instruments on the meter.
func CreateMetrics(meter metric.Meter) (*Metrics, error) {
	httpRequestsTotal, err := meter.Int64Counter(
		"http_requests_total",
		metric.WithDescription("Total number of HTTP requests"),
	)
	if err != nil {
		return nil, err
	}

	httpRequestDuration, err := meter.Float64Histogram(
		"http_request_duration_seconds",
		metric.WithDescription("HTTP request duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	httpActiveRequests, err := meter.Int64UpDownCounter(
		"http_active_requests",
		metric.WithDescription("Number of active HTTP requests"),
	)
	if err != nil {
		return nil, err
	}

	analysesTotal, err := meter.Int64Counter(
		"analyses_total",
		metric.WithDescription("Total number of dataset analyses"),
	)
	if err != nil {
		return nil, err
	}

	analysisDuration, err := meter.Float64Histogram(
		"analysis_duration_seconds",
		metric.WithDescription("Dataset analysis duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	analysisErrors, err := meter.Int64Counter(
		"analysis_errors_total",
		metric.WithDescription("Total number of failed dataset analyses"),
	)
	if err != nil {
		return nil, err
	}

	insightRequestsTotal, err := meter.Int64Counter(
		"insight_requests_total",
		metric.WithDescription("Total number of insight generation requests"),
	)
	if err != nil {
		return nil, err
	}

	insightFailures, err := meter.Int64Counter(
		"insight_failures_total",
		metric.WithDescription("Total number of failed insight generation requests"),
	)
	if err != nil {
		return nil, err
	}

	return &Metrics{
		HTTPRequestsTotal:    httpRequestsTotal,
		HTTPRequestDuration:  httpRequestDuration,
		HTTPActiveRequests:   httpActiveRequests,
		AnalysesTotal:        analysesTotal,
		AnalysisDuration:     analysisDuration,
		AnalysisErrors:       analysisErrors,
		InsightRequestsTotal: insightRequestsTotal,
		InsightFailures:      insightFailures,
	}, nil
}

// RecordAnalysis records the outcome of one dataset analysis.
func (m *Metrics) RecordAnalysis(ctx context.Context, duration time.Duration, err error) {
	if m == nil {
		return
	}

	status := "success"
	if err != nil {
		status = "failure"
		m.AnalysisErrors.Add(ctx, 1,
			metric.WithAttributes(attribute.String("error.type", fmt.Sprintf("%T", err))))
	}
	attrs := metric.WithAttributes(attribute.String("status", status))
	m.AnalysesTotal.Add(ctx, 1, attrs)
	m.AnalysisDuration.Record(ctx, duration.Seconds(), attrs)
}

// RecordInsight records the outcome of one insight generation request.
func (m *Metrics) RecordInsight(ctx context.Context, err error) {
	if m == nil {
		return
	}
	m.InsightRequestsTotal.Add(ctx, 1)
	if err != nil {
		m.InsightFailures.Add(ctx, 1)
	}
}

// Shutdown gracefully shuts down the meter provider.
func (p *OTelProviders) Shutdown(ctx context.Context) error {
	if p.MeterProvider == nil {
		return nil
	}
	if err := p.MeterProvider.Shutdown(ctx); err != nil {
		return fmt.Errorf("meter provider shutdown: %w", err)
	}
	p.Logger.InfoContext(ctx, "metrics shutdown complete")
	return nil
}

func instanceID() string {
	hostname, _ := os.Hostname()
	return fmt.Sprintf("%s-%d", hostname, time.Now().Unix())
}
