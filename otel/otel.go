package otel

import (
	"context"
	"errors"

	config "github.com/ledger-calendar-bot/assistant/config"
	"github.com/prometheus/client_golang/prometheus"
	otel "go.opentelemetry.io/otel"
	attribute "go.opentelemetry.io/otel/attribute"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	resource "go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
)

type MeterProvider = sdkmetric.MeterProvider

//go:generate mockgen -source=otel.go -destination=../tests/mocks/otel.go -package=mocks
type OpenTelemetry interface {
	Init(config config.Config, registerer prometheus.Registerer) error
	RecordMessage(ctx context.Context, intent string, outcome string)
	RecordCollaboratorLatency(ctx context.Context, collaborator string, operation string, latencyMs float64)
	Shutdown(ctx context.Context) error
}

// OpenTelemetryImpl records assistant metrics. A zero value is valid and records nothing.
type OpenTelemetryImpl struct {
	meterProvider *MeterProvider
	// Message counter
	messageCounter metric.Int64Counter
	// Upstream call latency
	latencyHistogram metric.Float64Histogram
}

func (o *OpenTelemetryImpl) Init(config config.Config, registerer prometheus.Registerer) error {
	exporter, err := otelprom.New(otelprom.WithRegisterer(registerer))
	if err != nil {
		return err
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(exporter),
		sdkmetric.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceNameKey.String(config.ApplicationName),
		)),
	)

	otel.SetMeterProvider(mp)
	o.meterProvider = mp

	meter := mp.Meter("ledger-calendar-assistant")

	var errs []error
	o.messageCounter, err = meter.Int64Counter(
		"assistant.messages",
		metric.WithDescription("Number of chat messages handled, by intent and outcome"),
	)
	errs = append(errs, err)

	// Times are recorded in miliseconds
	o.latencyHistogram, err = meter.Float64Histogram(
		"assistant.collaborator.latency",
		metric.WithDescription("Time spent waiting on the ledger and calendar collaborators"),
		metric.WithUnit("ms"),
	)
	errs = append(errs, err)

	return errors.Join(errs...)
}

func (o *OpenTelemetryImpl) RecordMessage(ctx context.Context, intent string, outcome string) {
	if o.messageCounter == nil {
		return // Not initialized
	}

	o.messageCounter.Add(ctx, 1, metric.WithAttributes(
		attribute.String("intent", intent),
		attribute.String("outcome", outcome),
	))
}

func (o *OpenTelemetryImpl) RecordCollaboratorLatency(ctx context.Context, collaborator string, operation string, latencyMs float64) {
	if o.latencyHistogram == nil {
		return
	}

	o.latencyHistogram.Record(ctx, latencyMs, metric.WithAttributes(
		attribute.String("collaborator", collaborator),
		attribute.String("operation", operation),
	))
}

// Shutdown flushes and stops the meter provider
func (o *OpenTelemetryImpl) Shutdown(ctx context.Context) error {
	if o.meterProvider == nil {
		return nil
	}
	return o.meterProvider.Shutdown(ctx)
}
