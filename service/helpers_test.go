package service

import (
	"context"
	"math/rand"
	"sync"

	"hellbingo/events"
	"hellbingo/models"
)

// countingRandom wraps a seeded generator and counts calls
type countingRandom struct {
	rng   *rand.Rand
	calls int
}

func newCountingRandom(seed int64) *countingRandom {
	return &countingRandom{rng: rand.New(rand.NewSource(seed))}
}

func (r *countingRandom) Intn(n int) int {
	r.calls++
	return r.rng.Intn(n)
}

// scriptedRandom returns preset values modulo n, in order
type scriptedRandom struct {
	values []int
	calls  int
}

func (r *scriptedRandom) Intn(n int) int {
	if r.calls >= len(r.values) {
		panic("scriptedRandom exhausted")
	}
	v := r.values[r.calls] % n
	r.calls++
	return v
}

// numbersFrom returns CardSize consecutive numbers starting at start
func numbersFrom(start int) []int {
	nums := make([]int, models.CardSize)
	for i := range nums {
		nums[i] = start + i
	}
	return nums
}

// cardWithMatches builds a card over numbers with the first matched numbers marked
func cardWithMatches(numbers []int, matched int) *models.Card {
	card := models.NewCard(numbers)
	for i := 0; i < matched; i++ {
		card.Mark(numbers[i])
	}
	return card
}

// buildRoster creates enemies with the given match counts and a player with
// playerMatches. Every card holds 1-15, so draws of 16+ match nobody.
func buildRoster(enemyMatches []int, playerMatches int) *models.Roster {
	roster := &models.Roster{}
	for i, m := range enemyMatches {
		roster.Enemies = append(roster.Enemies, models.NewEnemy(i+1, cardWithMatches(numbersFrom(1), m)))
	}
	roster.Player = models.NewPlayer(cardWithMatches(numbersFrom(1), playerMatches))
	return roster
}

func enemyNames(roster *models.Roster) []string {
	names := make([]string, 0, len(roster.Enemies))
	for _, e := range roster.Enemies {
		names = append(names, e.Name)
	}
	return names
}

// recordingBus captures events synchronously
type recordingBus struct {
	mu     sync.Mutex
	events []events.Event
}

func (b *recordingBus) Emit(ctx context.Context, event events.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, event)
}

func (b *recordingBus) types() []events.EventType {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]events.EventType, 0, len(b.events))
	for _, e := range b.events {
		out = append(out, e.Type())
	}
	return out
}

func (b *recordingBus) ofType(t events.EventType) []events.Event {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []events.Event
	for _, e := range b.events {
		if e.Type() == t {
			out = append(out, e)
		}
	}
	return out
}
