package observability

import (
	"context"
	"fmt"
	"sync"
	"time"

	"hellbingo/config"
	"hellbingo/events"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.34.0"
)

// MetricsProvider manages OpenTelemetry metrics for the game
type MetricsProvider struct {
	config        *config.Config
	reader        sdkmetric.Reader
	meterProvider *sdkmetric.MeterProvider
	meter         metric.Meter
	initialized   bool
	mu            sync.RWMutex

	// Metric instruments
	campaignsStartedCounter      metric.Int64Counter
	campaignsEndedCounter        metric.Int64Counter
	nightsResolvedCounter        metric.Int64Counter
	nightDrawsHist               metric.Int64Histogram
	numbersDrawnCounter          metric.Int64Counter
	rowBonusesCounter            metric.Int64Counter
	powerUpsPurchasedCounter     metric.Int64Counter
	powerUpsUsedCounter          metric.Int64Counter
	natsMessagesPublishedCounter metric.Int64Counter
}

// NewMetricsProvider creates a new metrics provider
func NewMetricsProvider(cfg *config.Config) *MetricsProvider {
	return &MetricsProvider{
		config: cfg,
	}
}

// NewMetricsProviderWithReader creates a provider that reports to reader
// instead of the configured exporter
func NewMetricsProviderWithReader(cfg *config.Config, reader sdkmetric.Reader) *MetricsProvider {
	return &MetricsProvider{
		config: cfg,
		reader: reader,
	}
}

// Initialize sets up the OpenTelemetry metrics provider
func (mp *MetricsProvider) Initialize(ctx context.Context) error {
	mp.mu.Lock()
	defer mp.mu.Unlock()

	if mp.initialized {
		log.Debug("Metrics provider already initialized")
		return nil
	}

	if !mp.config.OTelEnabled {
		log.Info("OpenTelemetry metrics disabled")
		mp.initialized = true
		return nil
	}

	res, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(mp.config.OTelServiceName),
			attribute.String("environment", mp.config.Environment),
		),
	)
	if err != nil {
		return fmt.Errorf("failed to create resource: %w", err)
	}

	reader := mp.reader
	if reader == nil {
		exporter, err := mp.newExporter(ctx)
		if err != nil {
			return err
		}
		if exporter == nil {
			mp.initialized = true
			return nil
		}
		reader = sdkmetric.NewPeriodicReader(
			exporter,
			sdkmetric.WithInterval(time.Duration(mp.config.OTelExportIntervalMillis)*time.Millisecond),
		)
	}

	mp.meterProvider = sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(reader),
	)
	otel.SetMeterProvider(mp.meterProvider)
	mp.meter = mp.meterProvider.Meter("hellbingo")

	if err := mp.createInstruments(); err != nil {
		return fmt.Errorf("failed to create instruments: %w", err)
	}

	mp.initialized = true
	log.Info("Metrics provider initialized successfully")
	return nil
}

// newExporter returns nil without error for the "none" exporter
func (mp *MetricsProvider) newExporter(ctx context.Context) (sdkmetric.Exporter, error) {
	switch mp.config.OTelExporterType {
	case "console":
		exporter, err := stdoutmetric.New()
		if err != nil {
			return nil, fmt.Errorf("failed to create console exporter: %w", err)
		}
		log.Info("Using console metric exporter")
		return exporter, nil

	case "otlp":
		ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()

		exporter, err := otlpmetricgrpc.New(ctx,
			otlpmetricgrpc.WithEndpoint(mp.config.OTelOTLPEndpoint),
			otlpmetricgrpc.WithInsecure(),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create OTLP exporter: %w", err)
		}
		log.WithField("endpoint", mp.config.OTelOTLPEndpoint).Info("Using OTLP metric exporter")
		return exporter, nil

	case "none":
		log.Info("Metrics export disabled (exporter_type='none')")
		return nil, nil

	default:
		return nil, fmt.Errorf("unknown exporter type: %s", mp.config.OTelExporterType)
	}
}

func (mp *MetricsProvider) createInstruments() error {
	counters := []struct {
		target      *metric.Int64Counter
		name        string
		description string
	}{
		{&mp.campaignsStartedCounter, CampaignsStartedTotal, "Total number of campaigns started"},
		{&mp.campaignsEndedCounter, CampaignsEndedTotal, "Total number of campaigns ended, by result"},
		{&mp.nightsResolvedCounter, NightsResolvedTotal, "Total number of nights resolved, by outcome"},
		{&mp.numbersDrawnCounter, NumbersDrawnTotal, "Total number of numbers drawn"},
		{&mp.rowBonusesCounter, RowBonusesTotal, "Total number of row bonuses paid"},
		{&mp.powerUpsPurchasedCounter, PowerUpsPurchasedTotal, "Total number of power-ups purchased, by kind"},
		{&mp.powerUpsUsedCounter, PowerUpsUsedTotal, "Total number of power-ups used, by kind"},
		{&mp.natsMessagesPublishedCounter, NATSMessagesPublishedTotal, "Total number of NATS messages published"},
	}

	for _, c := range counters {
		counter, err := mp.meter.Int64Counter(
			c.name,
			metric.WithDescription(c.description),
			metric.WithUnit("1"),
		)
		if err != nil {
			return fmt.Errorf("failed to create counter %s: %w", c.name, err)
		}
		*c.target = counter
	}

	var err error
	mp.nightDrawsHist, err = mp.meter.Int64Histogram(
		NightDraws,
		metric.WithDescription("Numbers drawn before a night resolved"),
		metric.WithUnit("1"),
		metric.WithExplicitBucketBoundaries(10, 20, 30, 40, 50, 60, 70, 80, 90),
	)
	if err != nil {
		return fmt.Errorf("failed to create night draws histogram: %w", err)
	}
	return nil
}

// Shutdown flushes and shuts down the metrics provider
func (mp *MetricsProvider) Shutdown(ctx context.Context) error {
	mp.mu.Lock()
	defer mp.mu.Unlock()

	if mp.meterProvider != nil {
		return mp.meterProvider.Shutdown(ctx)
	}
	return nil
}

// Register records metrics for every event emitted on bus
func (mp *MetricsProvider) Register(bus interface{ SubscribeAll(events.Handler) }) {
	bus.SubscribeAll(mp.HandleEvent)
}

// HandleEvent is an events.Handler translating game events into measurements
func (mp *MetricsProvider) HandleEvent(ctx context.Context, event events.Event) {
	if !mp.isEnabled() {
		return
	}

	switch e := event.(type) {
	case events.CampaignStartedEvent:
		mp.campaignsStartedCounter.Add(ctx, 1)
	case events.NumberDrawnEvent:
		mp.numbersDrawnCounter.Add(ctx, 1)
	case events.RowCompletedEvent:
		mp.rowBonusesCounter.Add(ctx, 1)
	case events.PowerUpPurchasedEvent:
		mp.powerUpsPurchasedCounter.Add(ctx, 1,
			metric.WithAttributes(attribute.String(LabelKind, string(e.Kind))))
	case events.PowerUpUsedEvent:
		mp.powerUpsUsedCounter.Add(ctx, 1,
			metric.WithAttributes(attribute.String(LabelKind, string(e.Kind))))
	case events.NightResolvedEvent:
		attrs := metric.WithAttributes(
			attribute.String(LabelOutcome, string(e.Outcome)),
			attribute.Bool(LabelShield, e.ShieldSaved),
		)
		mp.nightsResolvedCounter.Add(ctx, 1, attrs)
		mp.nightDrawsHist.Record(ctx, int64(e.Draws))
	case events.CampaignEndedEvent:
		mp.campaignsEndedCounter.Add(ctx, 1,
			metric.WithAttributes(attribute.String(LabelResult, string(e.Result))))
	}
}

// RecordNATSMessagePublished records a NATS message being published
func (mp *MetricsProvider) RecordNATSMessagePublished(eventType string) {
	if !mp.isEnabled() {
		return
	}

	mp.natsMessagesPublishedCounter.Add(context.Background(), 1,
		metric.WithAttributes(
			attribute.String(LabelEventType, eventType),
		),
	)
}

// isEnabled reports whether instruments exist to record into
func (mp *MetricsProvider) isEnabled() bool {
	mp.mu.RLock()
	defer mp.mu.RUnlock()
	return mp.initialized && mp.meter != nil
}

// Global metrics provider instance
var (
	globalMetrics *MetricsProvider
	metricsOnce   sync.Once
)

// InitializeGlobalMetrics initializes the global metrics provider
func InitializeGlobalMetrics(ctx context.Context, cfg *config.Config) error {
	var err error
	metricsOnce.Do(func() {
		globalMetrics = NewMetricsProvider(cfg)
		err = globalMetrics.Initialize(ctx)
	})
	return err
}

// GetMetrics returns the global metrics provider
func GetMetrics() *MetricsProvider {
	return globalMetrics
}

// ShutdownGlobalMetrics shuts down the global metrics provider
func ShutdownGlobalMetrics(ctx context.Context) error {
	if globalMetrics != nil {
		return globalMetrics.Shutdown(ctx)
	}
	return nil
}
