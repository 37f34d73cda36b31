package models

import (
	"github.com/google/uuid"
)

// GameState represents the controller's top-level state
type GameState string

const (
	GameStateMenu     GameState = "menu"
	GameStateShopping GameState = "shopping"
	GameStatePlaying  GameState = "playing"
	GameStateResolved GameState = "resolved"
)

// Outcome represents how a night ended
type Outcome string

const (
	OutcomePlayerVictory    Outcome = "player_victory"
	OutcomePlayerEliminated Outcome = "player_eliminated"
	OutcomeSurvived         Outcome = "survived"
)

// Campaign tracks the multi-night run
type Campaign struct {
	ID      uuid.UUID
	Night   int
	Started bool
	Seed    int64
}

// NewCampaign creates a campaign at night 1 that has not started yet
func NewCampaign(seed int64) *Campaign {
	return &Campaign{
		ID:    uuid.New(),
		Night: 1,
		Seed:  seed,
	}
}

// AdvanceNight moves the campaign to the next night
func (c *Campaign) AdvanceNight() {
	c.Night++
}

// Resolution represents the outcome of a finished night
type Resolution struct {
	Outcome       Outcome
	Night         int
	WinnerName    string // empty when the player won
	LoserName     string
	CurrencyDelta int
	ShieldSaved   bool
}

// IsTerminal checks if the resolution ends the campaign
func (r *Resolution) IsTerminal() bool {
	return r.Outcome == OutcomePlayerVictory || r.Outcome == OutcomePlayerEliminated
}
