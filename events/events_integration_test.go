package events

import (
	"context"
	"sync"
	"testing"
	"time"

	"hellbingo/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestEventDeliveryIntegration tests the flow from TransactionalBus to the main Bus
func TestEventDeliveryIntegration(t *testing.T) {
	mainBus := NewBus()
	transactionalBus := NewTransactionalBus(mainBus)

	eventReceived := make(chan NightResolvedEvent, 1)
	var wg sync.WaitGroup
	wg.Add(1)

	mainBus.Subscribe(EventTypeNightResolved, func(ctx context.Context, event Event) {
		defer wg.Done()
		if resolved, ok := event.(NightResolvedEvent); ok {
			eventReceived <- resolved
		} else {
			t.Errorf("Expected NightResolvedEvent, got %T", event)
		}
	})

	testEvent := NightResolvedEvent{
		CampaignID:    uuid.New(),
		Night:         3,
		Outcome:       models.OutcomeSurvived,
		WinnerName:    "Prisoner#4",
		LoserName:     "Prisoner#17",
		CurrencyDelta: models.SurvivalReward,
	}

	transactionalBus.Publish(testEvent)
	assert.Equal(t, 1, transactionalBus.Pending())

	transactionalBus.Flush(context.Background())
	assert.Equal(t, 0, transactionalBus.Pending())

	wg.Wait()

	select {
	case received := <-eventReceived:
		assert.Equal(t, testEvent, received)
	case <-time.After(2 * time.Second):
		t.Fatal("Event was not received within timeout")
	}
}

// TestTransactionalBusDiscard tests that discarded events never reach handlers
func TestTransactionalBusDiscard(t *testing.T) {
	mainBus := NewBus()
	transactionalBus := NewTransactionalBus(mainBus)

	called := make(chan struct{}, 1)
	mainBus.Subscribe(EventTypePowerUpUsed, func(ctx context.Context, event Event) {
		called <- struct{}{}
	})

	transactionalBus.Publish(PowerUpUsedEvent{Kind: models.PowerUpShield})
	transactionalBus.Discard()
	transactionalBus.Flush(context.Background())

	select {
	case <-called:
		t.Fatal("Discarded event was delivered")
	case <-time.After(100 * time.Millisecond):
	}
}

// TestHandlerPanicIsRecovered tests that a panicking handler does not affect others
func TestHandlerPanicIsRecovered(t *testing.T) {
	bus := NewBus()

	var wg sync.WaitGroup
	wg.Add(2)
	bus.Subscribe(EventTypeNumberDrawn, func(ctx context.Context, event Event) {
		defer wg.Done()
		panic("boom")
	})
	delivered := make(chan int, 1)
	bus.Subscribe(EventTypeNumberDrawn, func(ctx context.Context, event Event) {
		defer wg.Done()
		delivered <- event.(NumberDrawnEvent).Number
	})

	bus.Emit(context.Background(), NumberDrawnEvent{Number: 42})
	wg.Wait()

	assert.Equal(t, 42, <-delivered)
}

func TestSubscribeAll(t *testing.T) {
	bus := NewBus()
	bus.SubscribeAll(func(ctx context.Context, event Event) {})

	for _, et := range AllEventTypes {
		assert.Equal(t, 1, bus.HandlerCount(et), et)
	}
}

func TestSyncBus_DeliversInOrder(t *testing.T) {
	bus := NewSyncBus()

	var got []EventType
	bus.SubscribeAll(func(ctx context.Context, event Event) {
		got = append(got, event.Type())
	})

	tx := NewTransactionalBus(bus)
	tx.Publish(NumberDrawnEvent{Number: 1})
	tx.Publish(RowCompletedEvent{Row: 0})
	tx.Publish(NightResolvedEvent{Outcome: models.OutcomePlayerVictory})
	tx.Flush(context.Background())

	require.Len(t, got, 3)
	assert.Equal(t, []EventType{EventTypeNumberDrawn, EventTypeRowCompleted, EventTypeNightResolved}, got)
}
