package observability

// Metric name prefixes
const (
	MetricPrefix = "hellbingo"
)

// Metric names
const (
	// Game metrics
	CampaignsStartedTotal = MetricPrefix + ".campaigns.started_total"
	CampaignsEndedTotal   = MetricPrefix + ".campaigns.ended_total"
	NightsResolvedTotal   = MetricPrefix + ".nights.resolved_total"
	NightDraws            = MetricPrefix + ".nights.draws"
	NumbersDrawnTotal     = MetricPrefix + ".numbers.drawn_total"
	RowBonusesTotal       = MetricPrefix + ".rows.completed_total"

	// Economy metrics
	PowerUpsPurchasedTotal = MetricPrefix + ".powerups.purchased_total"
	PowerUpsUsedTotal      = MetricPrefix + ".powerups.used_total"

	// NATS metrics
	NATSMessagesPublishedTotal = MetricPrefix + ".nats.messages_published_total"
)

// Label keys
const (
	LabelEventType = "event_type"
	LabelOutcome   = "outcome"
	LabelResult    = "result"
	LabelKind      = "kind"
	LabelShield    = "shield_saved"
)
