package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	promexporter "go.opentelemetry.io/otel/exporters/prometheus"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// MetricsConfig holds metrics configuration.
type MetricsConfig struct {
	ServiceName string
}

// Domain counters exposed on /metrics.
var (
	// ApplicationsScored counts financing applications scored, labelled by
	// the engine's recommendation.
	ApplicationsScored = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "moro_applications_scored_total",
		Help: "Financing applications scored, by recommendation.",
	}, []string{"recommendation"})

	// PaymentCallbacks counts webhook deliveries from the payment gateway,
	// labelled by outcome (processed, duplicate, error).
	PaymentCallbacks = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "moro_payment_callbacks_total",
		Help: "Payment gateway webhook deliveries, by outcome.",
	}, []string{"outcome"})
)

// InitMetrics initializes the Prometheus metrics exporter.
// Returns the MeterProvider and an HTTP handler for the /metrics endpoint.
func InitMetrics(_ MetricsConfig) (*sdkmetric.MeterProvider, http.Handler, error) {
	exporter, err := promexporter.New()
	if err != nil {
		return nil, nil, err
	}

	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(exporter),
	)

	return provider, promhttp.Handler(), nil
}
