package events

import (
	"context"
	"sync"
	"time"

	"hellbingo/models"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// EventType represents different types of events in the game
type EventType string

const (
	EventTypeCampaignStarted  EventType = "campaign_started"
	EventTypeNightStarted     EventType = "night_started"
	EventTypeNumberDrawn      EventType = "number_drawn"
	EventTypeRowCompleted     EventType = "row_completed"
	EventTypePowerUpPurchased EventType = "powerup_purchased"
	EventTypePowerUpUsed      EventType = "powerup_used"
	EventTypeNightResolved    EventType = "night_resolved"
	EventTypeCampaignEnded    EventType = "campaign_ended"
)

// AllEventTypes lists every event type the game emits
var AllEventTypes = []EventType{
	EventTypeCampaignStarted,
	EventTypeNightStarted,
	EventTypeNumberDrawn,
	EventTypeRowCompleted,
	EventTypePowerUpPurchased,
	EventTypePowerUpUsed,
	EventTypeNightResolved,
	EventTypeCampaignEnded,
}

// Event is the base interface for all events
type Event interface {
	Type() EventType
}

// CampaignStartedEvent represents a new campaign leaving the menu
type CampaignStartedEvent struct {
	CampaignID       uuid.UUID `json:"campaign_id"`
	StartingCurrency int       `json:"starting_currency"`
	Seed             int64     `json:"seed,string"`
}

func (e CampaignStartedEvent) Type() EventType {
	return EventTypeCampaignStarted
}

// NightStartedEvent represents the start of play for a night
type NightStartedEvent struct {
	CampaignID    uuid.UUID `json:"campaign_id"`
	Night         int       `json:"night"`
	RosterSize    int       `json:"roster_size"`
	Currency      int       `json:"currency"`
	RosterCreated bool      `json:"roster_created"`
}

func (e NightStartedEvent) Type() EventType {
	return EventTypeNightStarted
}

// NumberDrawnEvent represents a number revealed from the pool
type NumberDrawnEvent struct {
	CampaignID    uuid.UUID `json:"campaign_id"`
	Night         int       `json:"night"`
	Number        int       `json:"number"`
	DrawIndex     int       `json:"draw_index"`
	PlayerMatched bool      `json:"player_matched"`
	EnemiesMarked int       `json:"enemies_marked"`
	EnemyWinner   string    `json:"enemy_winner,omitempty"`
}

func (e NumberDrawnEvent) Type() EventType {
	return EventTypeNumberDrawn
}

// RowCompletedEvent represents a bonus row paying out
type RowCompletedEvent struct {
	CampaignID uuid.UUID `json:"campaign_id"`
	Night      int       `json:"night"`
	Row        int       `json:"row"`
	Reward     int       `json:"reward"`
}

func (e RowCompletedEvent) Type() EventType {
	return EventTypeRowCompleted
}

// PowerUpPurchasedEvent represents a shop purchase
type PowerUpPurchasedEvent struct {
	CampaignID    uuid.UUID          `json:"campaign_id"`
	Kind          models.PowerUpKind `json:"kind"`
	Cost          int                `json:"cost"`
	CurrencyAfter int                `json:"currency_after"`
	StockAfter    int                `json:"stock_after"`
}

func (e PowerUpPurchasedEvent) Type() EventType {
	return EventTypePowerUpPurchased
}

// PowerUpUsedEvent represents a power-up consumed during play
type PowerUpUsedEvent struct {
	CampaignID uuid.UUID          `json:"campaign_id"`
	Night      int                `json:"night"`
	Kind       models.PowerUpKind `json:"kind"`
	Target     string             `json:"target,omitempty"`
	Number     int                `json:"number,omitempty"`
	Effective  bool               `json:"effective"`
}

func (e PowerUpUsedEvent) Type() EventType {
	return EventTypePowerUpUsed
}

// NightResolvedEvent represents the end of a night
type NightResolvedEvent struct {
	CampaignID    uuid.UUID      `json:"campaign_id"`
	Night         int            `json:"night"`
	Outcome       models.Outcome `json:"outcome"`
	WinnerName    string         `json:"winner_name,omitempty"`
	LoserName     string         `json:"loser_name"`
	ShieldSaved   bool           `json:"shield_saved"`
	CurrencyDelta int            `json:"currency_delta"`
	Draws         int            `json:"draws"`
	RosterSize    int            `json:"roster_size"`
}

func (e NightResolvedEvent) Type() EventType {
	return EventTypeNightResolved
}

// CampaignEndedEvent represents a campaign leaving play for good
type CampaignEndedEvent struct {
	CampaignID       uuid.UUID                 `json:"campaign_id"`
	Result           models.CampaignResultKind `json:"result"`
	NightsReached    int                       `json:"nights_reached"`
	FinalCurrency    int                       `json:"final_currency"`
	EnemiesRemaining int                       `json:"enemies_remaining"`
	Seed             int64                     `json:"seed,string"`
	StartedAt        time.Time                 `json:"started_at"`
	EndedAt          time.Time                 `json:"ended_at"`
}

func (e CampaignEndedEvent) Type() EventType {
	return EventTypeCampaignEnded
}

// Handler is a function that handles events
type Handler func(ctx context.Context, event Event)

// Emitter dispatches events to subscribers
type Emitter interface {
	Emit(ctx context.Context, event Event)
}

// Subscriber registers handlers by event type
type Subscriber interface {
	Subscribe(eventType EventType, handler Handler)
}

// Bus manages event subscriptions and dispatching
type Bus struct {
	mu       sync.RWMutex
	handlers map[EventType][]Handler
}

// NewBus creates a new event bus
func NewBus() *Bus {
	return &Bus{
		handlers: make(map[EventType][]Handler),
	}
}

// Subscribe adds a handler for a specific event type
func (b *Bus) Subscribe(eventType EventType, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)

	log.WithFields(log.Fields{
		"eventType":    eventType,
		"handlerCount": len(b.handlers[eventType]),
	}).Debug("Subscribed handler to event type")
}

// SubscribeAll adds a handler for every game event type
func (b *Bus) SubscribeAll(handler Handler) {
	for _, t := range AllEventTypes {
		b.Subscribe(t, handler)
	}
}

// HandlerCount returns the number of handlers registered for an event type
func (b *Bus) HandlerCount(eventType EventType) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.handlers[eventType])
}

// Emit publishes an event to all registered handlers
func (b *Bus) Emit(ctx context.Context, event Event) {
	b.mu.RLock()
	handlers := make([]Handler, len(b.handlers[event.Type()]))
	copy(handlers, b.handlers[event.Type()])
	b.mu.RUnlock()

	if len(handlers) == 0 {
		return
	}

	log.WithFields(log.Fields{
		"eventType":    event.Type(),
		"handlerCount": len(handlers),
	}).Debug("Emitting event to handlers")

	// Handlers run asynchronously so the game loop never blocks on them
	for i, handler := range handlers {
		go func(h Handler, handlerIndex int) {
			defer func() {
				if r := recover(); r != nil {
					log.WithFields(log.Fields{
						"eventType":    event.Type(),
						"handlerIndex": handlerIndex,
						"panic":        r,
					}).Error("Event handler panicked")
				}
			}()
			h(ctx, event)
		}(handler, i)
	}
}

// SyncBus dispatches events to handlers on the caller's goroutine, in
// subscription order. Used by batch simulation where ordering matters.
type SyncBus struct {
	handlers map[EventType][]Handler
}

// NewSyncBus creates a new synchronous bus
func NewSyncBus() *SyncBus {
	return &SyncBus{handlers: make(map[EventType][]Handler)}
}

// Subscribe adds a handler for a specific event type
func (b *SyncBus) Subscribe(eventType EventType, handler Handler) {
	b.handlers[eventType] = append(b.handlers[eventType], handler)
}

// SubscribeAll adds a handler for every game event type
func (b *SyncBus) SubscribeAll(handler Handler) {
	for _, t := range AllEventTypes {
		b.Subscribe(t, handler)
	}
}

// Emit calls every handler for the event in order
func (b *SyncBus) Emit(ctx context.Context, event Event) {
	for _, h := range b.handlers[event.Type()] {
		h(ctx, event)
	}
}

// TransactionalBus holds the events raised by one game command until the
// command has finished mutating state. Flushes to the underlying emitter.
type TransactionalBus struct {
	real    Emitter
	pending []Event // stashed until Flush
}

func NewTransactionalBus(real Emitter) *TransactionalBus {
	return &TransactionalBus{real: real}
}

func (b *TransactionalBus) Publish(e Event) {
	b.pending = append(b.pending, e)
}

// Pending returns the number of staged events
func (b *TransactionalBus) Pending() int {
	return len(b.pending)
}

// called once the command has completed
func (b *TransactionalBus) Flush(ctx context.Context) {
	if len(b.pending) == 0 {
		return
	}
	log.WithFields(log.Fields{
		"pendingEventCount": len(b.pending),
	}).Debug("Flushing staged game events")

	for _, ev := range b.pending {
		b.real.Emit(ctx, ev)
	}
	b.pending = nil
}

// called when a command fails part way through
func (b *TransactionalBus) Discard() {
	b.pending = nil
}
