package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"hellbingo/events"
	"hellbingo/models"
)

// Autopilot thresholds
const (
	snipeWhenUnmatched = 3  // snipe once this few numbers remain open
	sabotageAfterDraws = 40 // sabotage late in the night when the leader is close
	maxSabotageStock   = 2
	maxIgnoredDraws    = 3
)

// CampaignRun summarises one autopilot campaign
type CampaignRun struct {
	Outcome       models.Outcome
	Nights        int
	Draws         int
	FinalCurrency int
	PowerUpsUsed  map[models.PowerUpKind]int
	ShieldSaves   int
}

// Autopilot plays whole campaigns through the GameService command surface
type Autopilot struct {
	game GameService
}

// NewAutopilot creates an autopilot driving the given game
func NewAutopilot(game GameService) *Autopilot {
	return &Autopilot{game: game}
}

// PlayCampaign starts a campaign from the menu and plays it until it ends,
// leaving the game back in the menu
func (a *Autopilot) PlayCampaign(ctx context.Context) (*CampaignRun, error) {
	if err := a.game.StartCampaign(ctx); err != nil {
		return nil, err
	}

	run := &CampaignRun{PowerUpsUsed: make(map[models.PowerUpKind]int)}
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		a.shop(ctx)
		if err := a.game.BeginNight(ctx); err != nil {
			return nil, err
		}

		resolution, err := a.playNight(ctx, run)
		if err != nil {
			return nil, err
		}

		run.Nights = resolution.Night
		if resolution.ShieldSaved {
			run.ShieldSaves++
		}
		if resolution.IsTerminal() {
			run.Outcome = resolution.Outcome
			run.FinalCurrency = a.game.Snapshot().Currency
			return run, a.game.ContinueAfterResolution(ctx)
		}
		if err := a.game.ContinueAfterResolution(ctx); err != nil {
			return nil, err
		}
	}
}

// shop buys a shield first, then a snipe, then sabotages while affordable
func (a *Autopilot) shop(ctx context.Context) {
	snap := a.game.Snapshot()
	if snap.Stock[models.PowerUpShield] == 0 && snap.Currency >= models.CostShield {
		_ = a.game.Purchase(ctx, models.PowerUpShield)
		snap = a.game.Snapshot()
	}
	if snap.Stock[models.PowerUpSnipe] == 0 && snap.Currency >= models.CostSnipe {
		_ = a.game.Purchase(ctx, models.PowerUpSnipe)
		snap = a.game.Snapshot()
	}
	for snap.Stock[models.PowerUpSabotage] < maxSabotageStock && snap.Currency >= models.CostSabotage {
		if err := a.game.Purchase(ctx, models.PowerUpSabotage); err != nil {
			return
		}
		snap = a.game.Snapshot()
	}
}

func (a *Autopilot) playNight(ctx context.Context, run *CampaignRun) (*models.Resolution, error) {
	if a.game.Snapshot().Stock[models.PowerUpShield] > 0 {
		if err := a.game.UseShield(ctx); err == nil {
			run.PowerUpsUsed[models.PowerUpShield]++
		}
	}

	ignored := 0
	for {
		result, err := a.game.DrawNext(ctx)
		if err != nil {
			return nil, err
		}
		if result.Ignored {
			ignored++
			if ignored >= maxIgnoredDraws {
				return nil, fmt.Errorf("autopilot: draws ignored without a resolution")
			}
			continue
		}
		run.Draws++
		if result.Resolution != nil {
			return result.Resolution, nil
		}

		snap := a.game.Snapshot()
		if countOpen(snap.CardMatched) <= snipeWhenUnmatched && snap.Stock[models.PowerUpSnipe] > 0 {
			snipe, err := a.game.UseSnipe(ctx)
			if err == nil {
				run.PowerUpsUsed[models.PowerUpSnipe]++
				if snipe.Resolution != nil {
					return snipe.Resolution, nil
				}
			} else if !errors.Is(err, ErrCardFull) {
				return nil, err
			}
		}
		if len(snap.DrawHistory) >= sabotageAfterDraws && snap.Stock[models.PowerUpSabotage] > 0 {
			if _, err := a.game.UseSabotage(ctx); err == nil {
				run.PowerUpsUsed[models.PowerUpSabotage]++
			}
		}
	}
}

func countOpen(matched []bool) int {
	open := 0
	for _, m := range matched {
		if !m {
			open++
		}
	}
	return open
}

// SimulationOptions configures a batch of autopilot campaigns
type SimulationOptions struct {
	Runs             int
	Seed             int64
	EnemyCount       int
	StartingCurrency int
}

// RunSimulation plays Runs campaigns, each with its own generator seeded
// from Seed+i, and aggregates the results. Every campaign's events go to
// emitter, which may be nil.
func RunSimulation(ctx context.Context, opts SimulationOptions, emitter events.Emitter) (*models.SimulationStats, error) {
	if emitter == nil {
		emitter = events.NewSyncBus()
	}

	stats := &models.SimulationStats{
		NightHistogram: make(map[int]int),
		PowerUpsUsed:   make(map[models.PowerUpKind]int),
	}
	totalNights, totalDraws, totalCurrency := 0, 0, 0

	for i := 0; i < opts.Runs; i++ {
		seed := opts.Seed + int64(i)
		game := NewGameService(GameOptions{
			EnemyCount:       opts.EnemyCount,
			StartingCurrency: opts.StartingCurrency,
			Seed:             seed,
		}, rand.New(rand.NewSource(seed)), emitter)

		run, err := NewAutopilot(game).PlayCampaign(ctx)
		if err != nil {
			return nil, fmt.Errorf("simulation run %d: %w", i, err)
		}

		stats.Runs++
		switch run.Outcome {
		case models.OutcomePlayerVictory:
			stats.Victories++
		case models.OutcomePlayerEliminated:
			stats.Eliminations++
		}
		stats.NightHistogram[run.Nights]++
		if run.Nights > stats.MaxNights {
			stats.MaxNights = run.Nights
		}
		for k, v := range run.PowerUpsUsed {
			stats.PowerUpsUsed[k] += v
		}
		stats.ShieldSaves += run.ShieldSaves
		totalNights += run.Nights
		totalDraws += run.Draws
		totalCurrency += run.FinalCurrency
	}

	if stats.Runs > 0 {
		stats.WinPercentage = float64(stats.Victories) / float64(stats.Runs) * 100
		stats.AverageNights = float64(totalNights) / float64(stats.Runs)
		stats.AverageCurrency = float64(totalCurrency) / float64(stats.Runs)
	}
	if totalNights > 0 {
		stats.AverageDraws = float64(totalDraws) / float64(totalNights)
	}
	return stats, nil
}
