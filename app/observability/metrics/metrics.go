package metrics

import (
	"log"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// AppMetrics holds the application's metric instruments.
// Make fields public so they can be accessed from other packages.
type AppMetrics struct {
	GenerationsTotal          metric.Int64Counter
	GenerationDurationSeconds metric.Float64Histogram
	UpstreamFetchSeconds      metric.Float64Histogram
	UpstreamErrorsTotal       metric.Int64Counter
	CacheHitsTotal            metric.Int64Counter
}

var (
	// Global instance of AppMetrics (initialized once)
	appMetrics *AppMetrics
	once       sync.Once
)

// InitAppMetrics initializes the global metrics instruments ONLY ONCE.
// It gets the Meter from the globally configured MeterProvider.
func InitAppMetrics() {
	once.Do(func() {
		meter := otel.GetMeterProvider().Meter("tripweaver")
		var err error
		m := &AppMetrics{}

		m.GenerationsTotal, err = meter.Int64Counter(
			"itinerary_generations_total",
			metric.WithDescription("Total number of itinerary generations completed"),
			metric.WithUnit("{generation}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create itinerary_generations_total: %v", err)
		}

		m.GenerationDurationSeconds, err = meter.Float64Histogram(
			"itinerary_generation_duration_seconds",
			metric.WithDescription("Duration of full itinerary generations in seconds"),
			metric.WithUnit("s"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create itinerary_generation_duration_seconds: %v", err)
		}

		m.UpstreamFetchSeconds, err = meter.Float64Histogram(
			"upstream_fetch_duration_seconds",
			metric.WithDescription("Duration of upstream data service calls in seconds"),
			metric.WithUnit("s"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create upstream_fetch_duration_seconds: %v", err)
		}

		m.UpstreamErrorsTotal, err = meter.Int64Counter(
			"upstream_errors_total",
			metric.WithDescription("Total number of upstream calls that exhausted all mirrors/retries"),
			metric.WithUnit("{error}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create upstream_errors_total: %v", err)
		}

		m.CacheHitsTotal, err = meter.Int64Counter(
			"memoization_cache_hits_total",
			metric.WithDescription("Total number of memoization cache hits across all lookup layers"),
			metric.WithUnit("{hit}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create memoization_cache_hits_total: %v", err)
		}

		appMetrics = m
	})
}

// Get returns the globally initialized AppMetrics instance, initializing
// against the current (possibly noop) MeterProvider on first use.
func Get() *AppMetrics {
	if appMetrics == nil {
		InitAppMetrics()
	}
	return appMetrics
}
