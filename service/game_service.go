package service

import (
	"context"
	"fmt"
	"time"

	"hellbingo/config"
	"hellbingo/events"
	"hellbingo/models"

	log "github.com/sirupsen/logrus"
)

// GameOptions holds the tunables of a game session
type GameOptions struct {
	EnemyCount       int
	StartingCurrency int
	CheatsEnabled    bool
	Seed             int64 // recorded on archived campaigns
}

// GameOptionsFromConfig builds game options from application config
func GameOptionsFromConfig(cfg *config.Config, seed int64) GameOptions {
	return GameOptions{
		EnemyCount:       cfg.EnemyCount,
		StartingCurrency: cfg.StartingCurrency,
		CheatsEnabled:    cfg.CheatsEnabled,
		Seed:             seed,
	}
}

type gameService struct {
	opts   GameOptions
	rng    Random
	events *events.TransactionalBus
	now    func() time.Time

	state          models.GameState
	campaign       *models.Campaign
	roster         *models.Roster
	night          *models.NightState
	economy        *models.Economy
	lastResolution *models.Resolution
	startedAt      time.Time
}

// NewGameService creates a new game service in the menu state
func NewGameService(opts GameOptions, rng Random, emitter events.Emitter) GameService {
	if opts.EnemyCount < 1 {
		opts.EnemyCount = models.DefaultEnemyCount
	}
	return &gameService{
		opts:    opts,
		rng:     rng,
		events:  events.NewTransactionalBus(emitter),
		now:     time.Now,
		state:   models.GameStateMenu,
		night:   models.NewNightState(),
		economy: models.NewEconomy(opts.StartingCurrency),
	}
}

func (s *gameService) StartCampaign(ctx context.Context) error {
	if err := s.requireState("start campaign", models.GameStateMenu); err != nil {
		return err
	}

	s.campaign = models.NewCampaign(s.opts.Seed)
	s.roster = nil
	s.lastResolution = nil
	s.night.Reset()
	s.state = models.GameStateShopping

	log.WithFields(log.Fields{
		"campaignID": s.campaign.ID,
		"currency":   s.economy.Currency,
	}).Info("Campaign started")

	s.events.Publish(events.CampaignStartedEvent{
		CampaignID:       s.campaign.ID,
		StartingCurrency: s.economy.Currency,
		Seed:             s.opts.Seed,
	})
	s.events.Flush(ctx)
	return nil
}

func (s *gameService) BeginNight(ctx context.Context) error {
	if err := s.requireState("begin night", models.GameStateShopping); err != nil {
		return err
	}

	rosterCreated := false
	if !s.campaign.Started {
		s.roster = GenerateRoster(s.rng, s.opts.EnemyCount)
		s.campaign.Started = true
		s.startedAt = s.now()
		rosterCreated = true
	}

	s.roster.ResetForNight()
	s.night.Reset()
	s.state = models.GameStatePlaying

	log.WithFields(log.Fields{
		"campaignID": s.campaign.ID,
		"night":      s.campaign.Night,
		"rosterSize": s.roster.Size(),
	}).Info("Night started")

	s.events.Publish(events.NightStartedEvent{
		CampaignID:    s.campaign.ID,
		Night:         s.campaign.Night,
		RosterSize:    s.roster.Size(),
		Currency:      s.economy.Currency,
		RosterCreated: rosterCreated,
	})
	s.events.Flush(ctx)
	return nil
}

func (s *gameService) DrawNext(ctx context.Context) (*models.DrawResult, error) {
	if err := s.requireState("draw", models.GameStatePlaying, models.GameStateResolved); err != nil {
		return nil, err
	}
	if s.night.MatchOver {
		log.WithField("night", s.campaign.Night).Debug("Draw ignored after the night ended")
		return &models.DrawResult{Ignored: true}, nil
	}

	number, ok := DrawNumber(s.rng, s.night)
	if !ok {
		log.WithField("night", s.campaign.Night).Warn("Draw requested with the pool exhausted")
		return &models.DrawResult{Ignored: true}, nil
	}
	if err := s.night.RecordDraw(number); err != nil {
		panic(fmt.Sprintf("draw engine returned a drawn number: %v", err))
	}

	match := ApplyNumber(s.roster, s.economy, number)
	result := &models.DrawResult{Number: number, Match: match}

	drawn := events.NumberDrawnEvent{
		CampaignID:    s.campaign.ID,
		Night:         s.campaign.Night,
		Number:        number,
		DrawIndex:     s.night.DrawCount(),
		PlayerMatched: match.PlayerMatched,
		EnemiesMarked: match.EnemiesMarked,
	}
	if match.EnemyWinner != nil {
		drawn.EnemyWinner = match.EnemyWinner.Name
	}
	s.events.Publish(drawn)
	s.publishRows(match.RowsCompleted)

	log.WithFields(log.Fields{
		"number":        number,
		"drawIndex":     s.night.DrawCount(),
		"playerMatched": match.PlayerMatched,
		"enemiesMarked": match.EnemiesMarked,
	}).Debug("Number drawn")

	if match.EnemyWinner != nil || match.PlayerComplete {
		result.Resolution = s.resolve(match.EnemyWinner, match.PlayerComplete)
	}

	s.events.Flush(ctx)
	return result, nil
}

func (s *gameService) ContinueAfterResolution(ctx context.Context) error {
	if err := s.requireState("continue", models.GameStateResolved); err != nil {
		return err
	}

	if s.lastResolution != nil && s.lastResolution.IsTerminal() {
		log.WithFields(log.Fields{
			"campaignID": s.campaign.ID,
			"outcome":    s.lastResolution.Outcome,
		}).Info("Campaign over, returning to menu")
		s.resetCampaign()
		return nil
	}

	s.state = models.GameStateShopping
	return nil
}

// Abandon gives up the running campaign. The campaign is archived as
// abandoned and the whole game resets to the menu, economy and night counter
// included.
func (s *gameService) Abandon(ctx context.Context) error {
	if err := s.requireState("abandon", models.GameStatePlaying); err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"campaignID": s.campaign.ID,
		"night":      s.campaign.Night,
	}).Info("Campaign abandoned")

	s.events.Publish(s.endedEvent(models.CampaignResultAbandoned))
	s.resetCampaign()
	s.events.Flush(ctx)
	return nil
}

func (s *gameService) Purchase(ctx context.Context, kind models.PowerUpKind) error {
	if err := s.requireState("purchase", models.GameStateShopping); err != nil {
		return err
	}
	if err := s.economy.Purchase(kind); err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"kind":     kind,
		"currency": s.economy.Currency,
		"stock":    s.economy.StockOf(kind),
	}).Info("Power-up purchased")

	s.events.Publish(events.PowerUpPurchasedEvent{
		CampaignID:    s.campaign.ID,
		Kind:          kind,
		Cost:          kind.Cost(),
		CurrencyAfter: s.economy.Currency,
		StockAfter:    s.economy.StockOf(kind),
	})
	s.events.Flush(ctx)
	return nil
}

func (s *gameService) UseSnipe(ctx context.Context) (*models.SnipeResult, error) {
	if err := s.requirePlayable("snipe"); err != nil {
		return nil, err
	}

	result, err := Snipe(s.rng, s.roster.Player, s.economy)
	if err != nil {
		return nil, err
	}

	s.events.Publish(events.PowerUpUsedEvent{
		CampaignID: s.campaign.ID,
		Night:      s.campaign.Night,
		Kind:       models.PowerUpSnipe,
		Target:     models.PlayerName,
		Number:     result.Number,
		Effective:  true,
	})
	s.publishRows(result.RowsCompleted)

	if result.PlayerComplete {
		result.Resolution = s.resolve(nil, true)
	}

	s.events.Flush(ctx)
	return result, nil
}

func (s *gameService) UseSabotage(ctx context.Context) (*models.SabotageResult, error) {
	if err := s.requirePlayable("sabotage"); err != nil {
		return nil, err
	}

	result, err := Sabotage(s.roster, s.economy)
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"target":  result.TargetName,
		"removed": result.RemovedNumber,
		"nothing": result.NothingRemoved,
	}).Info("Sabotage used")

	s.events.Publish(events.PowerUpUsedEvent{
		CampaignID: s.campaign.ID,
		Night:      s.campaign.Night,
		Kind:       models.PowerUpSabotage,
		Target:     result.TargetName,
		Number:     result.RemovedNumber,
		Effective:  !result.NothingRemoved,
	})
	s.events.Flush(ctx)
	return result, nil
}

func (s *gameService) UseShield(ctx context.Context) error {
	if err := s.requirePlayable("shield"); err != nil {
		return err
	}
	if err := ActivateShield(s.night, s.economy); err != nil {
		return err
	}

	log.WithField("night", s.campaign.Night).Info("Shield activated")

	s.events.Publish(events.PowerUpUsedEvent{
		CampaignID: s.campaign.ID,
		Night:      s.campaign.Night,
		Kind:       models.PowerUpShield,
		Target:     models.PlayerName,
		Effective:  true,
	})
	s.events.Flush(ctx)
	return nil
}

func (s *gameService) ApplyCheat(ctx context.Context) error {
	if !s.opts.CheatsEnabled {
		return ErrCheatsDisabled
	}
	if err := s.requireState("cheat", models.GameStateMenu, models.GameStateShopping); err != nil {
		return err
	}

	s.economy.Currency = models.CheatCurrency
	log.WithField("currency", s.economy.Currency).Warn("Cheat applied")
	return nil
}

func (s *gameService) Snapshot() *models.Snapshot {
	snap := &models.Snapshot{
		State:          s.state,
		Night:          1,
		Currency:       s.economy.Currency,
		Stock:          s.economy.StockSnapshot(),
		ShieldActive:   s.night.ShieldActive,
		DrawHistory:    s.night.History(),
		LastDrawn:      s.night.LastDrawn(),
		LastResolution: s.lastResolution,
		CheatsEnabled:  s.opts.CheatsEnabled,
	}
	if s.campaign != nil {
		snap.CampaignID = s.campaign.ID
		snap.Started = s.campaign.Started
		snap.Night = s.campaign.Night
	}
	if s.roster != nil {
		snap.RosterSize = s.roster.Size()
		snap.EnemyCount = s.roster.EnemyCount()
		card := s.roster.Player.Card
		snap.CardNumbers = append([]int(nil), card.Numbers...)
		snap.CardMatched = card.MatchedFlags()
		snap.RowsCompleted = s.roster.Player.Rows.Completed
	}
	return snap
}

// resolve ends the night and stages the resolution events
func (s *gameService) resolve(enemyWinner *models.Participant, playerWon bool) *models.Resolution {
	draws := s.night.DrawCount()
	resolution := ResolveNight(s.roster, s.night, s.economy, s.campaign, enemyWinner, playerWon)
	s.lastResolution = resolution
	s.state = models.GameStateResolved

	log.WithFields(log.Fields{
		"campaignID":  s.campaign.ID,
		"night":       resolution.Night,
		"outcome":     resolution.Outcome,
		"winner":      resolution.WinnerName,
		"loser":       resolution.LoserName,
		"shieldSaved": resolution.ShieldSaved,
		"rosterSize":  s.roster.Size(),
	}).Info("Night resolved")

	s.events.Publish(events.NightResolvedEvent{
		CampaignID:    s.campaign.ID,
		Night:         resolution.Night,
		Outcome:       resolution.Outcome,
		WinnerName:    resolution.WinnerName,
		LoserName:     resolution.LoserName,
		ShieldSaved:   resolution.ShieldSaved,
		CurrencyDelta: resolution.CurrencyDelta,
		Draws:         draws,
		RosterSize:    s.roster.Size(),
	})
	if resolution.IsTerminal() {
		s.events.Publish(s.endedEvent(models.ResultKindForOutcome(resolution.Outcome)))
	}
	return resolution
}

func (s *gameService) endedEvent(result models.CampaignResultKind) events.CampaignEndedEvent {
	ev := events.CampaignEndedEvent{
		CampaignID:    s.campaign.ID,
		Result:        result,
		NightsReached: s.campaign.Night,
		FinalCurrency: s.economy.Currency,
		Seed:          s.campaign.Seed,
		StartedAt:     s.startedAt,
		EndedAt:       s.now(),
	}
	if s.roster != nil {
		ev.EnemiesRemaining = s.roster.EnemyCount()
	}
	return ev
}

func (s *gameService) publishRows(rows []int) {
	for _, row := range rows {
		s.events.Publish(events.RowCompletedEvent{
			CampaignID: s.campaign.ID,
			Night:      s.campaign.Night,
			Row:        row,
			Reward:     models.RowBonusReward,
		})
	}
}

// resetCampaign restores every campaign value to its initial state
func (s *gameService) resetCampaign() {
	s.campaign = nil
	s.roster = nil
	s.lastResolution = nil
	s.startedAt = time.Time{}
	s.night.Reset()
	s.economy.Reset(s.opts.StartingCurrency)
	s.state = models.GameStateMenu
}

func (s *gameService) requireState(command string, allowed ...models.GameState) error {
	for _, st := range allowed {
		if s.state == st {
			return nil
		}
	}
	return fmt.Errorf("%s in %s: %w", command, s.state, ErrInvalidState)
}

func (s *gameService) requirePlayable(command string) error {
	if err := s.requireState(command, models.GameStatePlaying); err != nil {
		return err
	}
	if s.night.MatchOver {
		return fmt.Errorf("%s after the night ended: %w", command, ErrInvalidState)
	}
	return nil
}
