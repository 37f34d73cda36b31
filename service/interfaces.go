package service

import (
	"context"

	"hellbingo/models"
)

// Random is the seedable source every random decision flows through.
// Satisfied by *rand.Rand.
type Random interface {
	Intn(n int) int
}

// CampaignResultRepository defines the interface for the campaign archive
type CampaignResultRepository interface {
	// Save stores a finished campaign
	Save(ctx context.Context, result *models.CampaignResult) error

	// GetRecent returns the most recently ended campaigns, newest first
	GetRecent(ctx context.Context, limit int) ([]*models.CampaignResult, error)

	// GetStats returns aggregated statistics over all archived campaigns
	GetStats(ctx context.Context) (*models.CampaignStats, error)
}

// GameService defines the command and query surface of the game
type GameService interface {
	// StartCampaign leaves the menu and opens the shop for a new campaign
	StartCampaign(ctx context.Context) error

	// BeginNight leaves the shop and starts play, generating the roster on first use
	BeginNight(ctx context.Context) error

	// DrawNext draws one number and applies it to every card. After the night
	// has ended the draw is ignored rather than rejected.
	DrawNext(ctx context.Context) (*models.DrawResult, error)

	// ContinueAfterResolution returns to the shop after survival, or to the menu after a terminal night
	ContinueAfterResolution(ctx context.Context) error

	// Abandon discards the current campaign while playing and resets the
	// economy and night counter along with it
	Abandon(ctx context.Context) error

	// Purchase buys one power-up in the shop
	Purchase(ctx context.Context, kind models.PowerUpKind) error

	// UseSnipe force-matches a random unmatched number on the player's card
	UseSnipe(ctx context.Context) (*models.SnipeResult, error)

	// UseSabotage removes a match from the leading enemy
	UseSabotage(ctx context.Context) (*models.SabotageResult, error)

	// UseShield protects the player from elimination this night
	UseShield(ctx context.Context) error

	// ApplyCheat sets the balance to the cheat amount when cheats are enabled
	ApplyCheat(ctx context.Context) error

	// Snapshot returns a copy of the observable game state
	Snapshot() *models.Snapshot
}

// StatsService defines the interface for archive statistics
type StatsService interface {
	// GetSummary returns aggregated campaign statistics
	GetSummary(ctx context.Context) (*models.CampaignStats, error)

	// GetRecent returns the latest archived campaigns
	GetRecent(ctx context.Context, limit int) ([]*models.CampaignResult, error)
}
