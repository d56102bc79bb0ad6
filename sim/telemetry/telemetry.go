// Package telemetry exports simulation metrics through OpenTelemetry.
package telemetry

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
)

const (
	defaultServiceName = "parking-sim"
	serviceVersion     = "1.0.0"
	exportInterval     = 5 * time.Second
)

// Config selects where metrics go. Reader takes precedence over
// OTLPEndpoint; tests pass a ManualReader.
type Config struct {
	ServiceName  string
	OTLPEndpoint string // e.g. http://localhost:4318
	Reader       sdkmetric.Reader
}

// Provider owns the meter provider for one simulation process.
type Provider struct {
	meterProvider *sdkmetric.MeterProvider
	meter         metric.Meter
}

// NewProvider builds a meter provider exporting to cfg.Reader or, failing
// that, to OTLP/HTTP at cfg.OTLPEndpoint.
func NewProvider(ctx context.Context, cfg Config) (*Provider, error) {
	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = defaultServiceName
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
			semconv.ServiceVersion(serviceVersion),
		),
	)
	if err != nil {
		return nil, err
	}

	reader := cfg.Reader
	if reader == nil {
		if cfg.OTLPEndpoint == "" {
			return nil, errors.New("telemetry needs a reader or an OTLP endpoint")
		}
		exporter, err := otlpmetrichttp.New(ctx,
			otlpmetrichttp.WithEndpointURL(cfg.OTLPEndpoint+"/v1/metrics"),
			otlpmetrichttp.WithInsecure(),
		)
		if err != nil {
			return nil, err
		}
		reader = sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(exportInterval))
	}

	meterProvider := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(reader),
	)
	return &Provider{
		meterProvider: meterProvider,
		meter:         meterProvider.Meter(serviceName),
	}, nil
}

func (p *Provider) Meter() metric.Meter {
	return p.meter
}

// Shutdown flushes pending metrics and stops the provider.
func (p *Provider) Shutdown(ctx context.Context) error {
	return p.meterProvider.Shutdown(ctx)
}
