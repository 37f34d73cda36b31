package models

import (
	"errors"
	"fmt"
)

var (
	// ErrAlreadyDrawn is returned when a number is recorded twice in one night
	ErrAlreadyDrawn = errors.New("number already drawn this night")

	// ErrNumberOutOfRange is returned for numbers outside the pool
	ErrNumberOutOfRange = errors.New("number outside the drawable range")
)

// NightState holds the per-night draw history and flags
type NightState struct {
	Drawn        []int
	MatchOver    bool
	ShieldActive bool
	drawnSet     map[int]struct{}
}

// NewNightState creates an empty night
func NewNightState() *NightState {
	return &NightState{
		Drawn:    make([]int, 0, PoolSize),
		drawnSet: make(map[int]struct{}, PoolSize),
	}
}

// HasDrawn checks if the number was already drawn this night
func (n *NightState) HasDrawn(number int) bool {
	_, ok := n.drawnSet[number]
	return ok
}

// RecordDraw appends a number to the draw history
func (n *NightState) RecordDraw(number int) error {
	if number < MinNumber || number > MaxNumber {
		return fmt.Errorf("record %d: %w", number, ErrNumberOutOfRange)
	}
	if n.HasDrawn(number) {
		return fmt.Errorf("record %d: %w", number, ErrAlreadyDrawn)
	}
	if n.drawnSet == nil {
		n.drawnSet = make(map[int]struct{}, PoolSize)
	}
	n.drawnSet[number] = struct{}{}
	n.Drawn = append(n.Drawn, number)
	return nil
}

// DrawCount returns how many numbers have been drawn
func (n *NightState) DrawCount() int {
	return len(n.Drawn)
}

// Exhausted returns true once every number in the pool has been drawn
func (n *NightState) Exhausted() bool {
	return len(n.Drawn) >= PoolSize
}

// LastDrawn returns the most recent number, or 0 when nothing was drawn
func (n *NightState) LastDrawn() int {
	if len(n.Drawn) == 0 {
		return 0
	}
	return n.Drawn[len(n.Drawn)-1]
}

// History returns a copy of the ordered draw history
func (n *NightState) History() []int {
	out := make([]int, len(n.Drawn))
	copy(out, n.Drawn)
	return out
}

// Reset clears the history and all per-night flags
func (n *NightState) Reset() {
	n.Drawn = make([]int, 0, PoolSize)
	n.drawnSet = make(map[int]struct{}, PoolSize)
	n.MatchOver = false
	n.ShieldActive = false
}
