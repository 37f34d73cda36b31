package service

import (
	"context"
	"math/rand"
	"testing"

	"hellbingo/events"
	"hellbingo/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestGame(t *testing.T, seed int64, opts GameOptions) (*gameService, *recordingBus) {
	t.Helper()
	if opts.StartingCurrency == 0 {
		opts.StartingCurrency = models.DefaultStartingCurrency
	}
	bus := &recordingBus{}
	game := NewGameService(opts, rand.New(rand.NewSource(seed)), bus).(*gameService)
	return game, bus
}

// startNight takes a fresh game from the menu into play
func startNight(t *testing.T, game GameService) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, game.StartCampaign(ctx))
	require.NoError(t, game.BeginNight(ctx))
}

// drawUntilResolved draws until the night ends and checks per-draw invariants
func drawUntilResolved(t *testing.T, game GameService) *models.Resolution {
	t.Helper()
	ctx := context.Background()
	lastMatched := 0
	for i := 0; i < models.PoolSize; i++ {
		result, err := game.DrawNext(ctx)
		require.NoError(t, err)
		require.False(t, result.Ignored)

		matched := countMatched(game.Snapshot().CardMatched)
		require.GreaterOrEqual(t, matched, lastMatched, "matches never drop during a night")
		lastMatched = matched

		if result.Resolution != nil {
			return result.Resolution
		}
	}
	t.Fatal("night did not resolve after draining the pool")
	return nil
}

func countMatched(flags []bool) int {
	n := 0
	for _, f := range flags {
		if f {
			n++
		}
	}
	return n
}

func TestGameService_StateGuards(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	commands := map[string]func(GameService) error{
		"begin night": func(g GameService) error { return g.BeginNight(ctx) },
		"draw":        func(g GameService) error { _, err := g.DrawNext(ctx); return err },
		"continue":    func(g GameService) error { return g.ContinueAfterResolution(ctx) },
		"abandon":     func(g GameService) error { return g.Abandon(ctx) },
		"purchase":    func(g GameService) error { return g.Purchase(ctx, models.PowerUpSnipe) },
		"snipe":       func(g GameService) error { _, err := g.UseSnipe(ctx); return err },
		"sabotage":    func(g GameService) error { _, err := g.UseSabotage(ctx); return err },
		"shield":      func(g GameService) error { return g.UseShield(ctx) },
	}

	for name, cmd := range commands {
		name, cmd := name, cmd
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			game, bus := newTestGame(t, 1, GameOptions{EnemyCount: 5})

			err := cmd(game)

			assert.ErrorIs(t, err, ErrInvalidState)
			assert.Equal(t, models.GameStateMenu, game.Snapshot().State)
			assert.Empty(t, bus.types())
		})
	}
}

func TestGameService_ShoppingGuards(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	game, _ := newTestGame(t, 1, GameOptions{EnemyCount: 5})
	require.NoError(t, game.StartCampaign(ctx))

	_, err := game.DrawNext(ctx)
	assert.ErrorIs(t, err, ErrInvalidState)
	assert.ErrorIs(t, game.UseShield(ctx), ErrInvalidState)
	assert.ErrorIs(t, game.StartCampaign(ctx), ErrInvalidState)

	require.NoError(t, game.BeginNight(ctx))
	assert.ErrorIs(t, game.Purchase(ctx, models.PowerUpSabotage), ErrInvalidState)
}

func TestGameService_BeginNightGeneratesRosterOnce(t *testing.T) {
	t.Parallel()

	game, bus := newTestGame(t, 5, GameOptions{EnemyCount: 49})
	startNight(t, game)

	snap := game.Snapshot()
	assert.Equal(t, models.GameStatePlaying, snap.State)
	assert.True(t, snap.Started)
	assert.Equal(t, 50, snap.RosterSize)
	assert.Equal(t, 1, snap.Night)
	assert.Len(t, snap.CardNumbers, models.CardSize)
	assert.Equal(t, 0, countMatched(snap.CardMatched))
	assert.Empty(t, snap.DrawHistory)
	assert.Equal(t, []events.EventType{events.EventTypeCampaignStarted, events.EventTypeNightStarted}, bus.types())

	started := bus.ofType(events.EventTypeNightStarted)[0].(events.NightStartedEvent)
	assert.True(t, started.RosterCreated)
	assert.Equal(t, 50, started.RosterSize)
}

func TestGameService_PurchaseRequiresFunds(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	game, bus := newTestGame(t, 1, GameOptions{EnemyCount: 5})
	require.NoError(t, game.StartCampaign(ctx))

	err := game.Purchase(ctx, models.PowerUpShield)
	assert.ErrorIs(t, err, ErrCannotAfford)
	assert.Equal(t, 15, game.Snapshot().Currency)

	require.NoError(t, game.Purchase(ctx, models.PowerUpSnipe))
	snap := game.Snapshot()
	assert.Equal(t, 0, snap.Currency)
	assert.Equal(t, 1, snap.Stock[models.PowerUpSnipe])

	purchased := bus.ofType(events.EventTypePowerUpPurchased)
	require.Len(t, purchased, 1)
	assert.Equal(t, models.PowerUpSnipe, purchased[0].(events.PowerUpPurchasedEvent).Kind)
}

func TestGameService_NightPlaysToResolution(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	game, bus := newTestGame(t, 11, GameOptions{EnemyCount: 49})
	startNight(t, game)

	res := drawUntilResolved(t, game)
	snap := game.Snapshot()

	assert.Equal(t, models.GameStateResolved, snap.State)
	assert.Equal(t, res, snap.LastResolution)

	seen := make(map[int]bool)
	for _, n := range snap.DrawHistory {
		assert.False(t, seen[n], "draw history repeats %d", n)
		seen[n] = true
	}
	assert.Equal(t, snap.DrawHistory[len(snap.DrawHistory)-1], snap.LastDrawn)
	assert.Len(t, bus.ofType(events.EventTypeNumberDrawn), len(snap.DrawHistory))
	assert.Len(t, bus.ofType(events.EventTypeNightResolved), 1)

	after, err := game.DrawNext(ctx)
	require.NoError(t, err)
	assert.True(t, after.Ignored)
}

func TestGameService_SurvivalAdvancesNight(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	for seed := int64(1); seed <= 50; seed++ {
		game, _ := newTestGame(t, seed, GameOptions{EnemyCount: 49})
		startNight(t, game)
		firstCard := game.Snapshot().CardNumbers

		res := drawUntilResolved(t, game)
		if res.Outcome != models.OutcomeSurvived {
			continue
		}

		snap := game.Snapshot()
		rowBonus := 0
		for _, done := range snap.RowsCompleted {
			if done {
				rowBonus += models.RowBonusReward
			}
		}
		assert.Equal(t, 2, snap.Night)
		assert.Equal(t, 15+models.SurvivalReward+rowBonus, snap.Currency)
		assert.Equal(t, 48, snap.RosterSize, "winner escaped and loser executed")

		require.NoError(t, game.ContinueAfterResolution(ctx))
		assert.Equal(t, models.GameStateShopping, game.Snapshot().State)

		require.NoError(t, game.BeginNight(ctx))
		snap = game.Snapshot()
		assert.Equal(t, firstCard, snap.CardNumbers, "roster is not regenerated")
		assert.Equal(t, 0, countMatched(snap.CardMatched))
		assert.Equal(t, [models.RowCount]bool{}, snap.RowsCompleted)
		assert.Empty(t, snap.DrawHistory)
		assert.False(t, snap.ShieldActive)
		return
	}
	t.Fatal("no surviving night found in 50 seeds")
}

// A snipe on the last open number wins the night
func TestGameService_SnipeWinsAndContinueResets(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	game, bus := newTestGame(t, 3, GameOptions{EnemyCount: 10})
	startNight(t, game)

	player := game.roster.Player
	for _, n := range player.Card.Numbers[:models.CardSize-1] {
		player.Card.Mark(n)
	}
	last := player.Card.Numbers[models.CardSize-1]
	game.economy.Stock[models.PowerUpSnipe] = 1

	result, err := game.UseSnipe(ctx)

	require.NoError(t, err)
	assert.Equal(t, last, result.Number)
	assert.True(t, result.PlayerComplete)
	require.NotNil(t, result.Resolution)
	assert.Equal(t, models.OutcomePlayerVictory, result.Resolution.Outcome)

	snap := game.Snapshot()
	assert.Equal(t, models.GameStateResolved, snap.State)
	assert.Equal(t, 0, snap.Stock[models.PowerUpSnipe])
	assert.Empty(t, snap.DrawHistory, "snipe does not draw")

	ended := bus.ofType(events.EventTypeCampaignEnded)
	require.Len(t, ended, 1)
	assert.Equal(t, models.CampaignResultVictory, ended[0].(events.CampaignEndedEvent).Result)
	assert.Equal(t, 10, ended[0].(events.CampaignEndedEvent).EnemiesRemaining)

	require.NoError(t, game.ContinueAfterResolution(ctx))
	snap = game.Snapshot()
	assert.Equal(t, models.GameStateMenu, snap.State)
	assert.Equal(t, models.DefaultStartingCurrency, snap.Currency)
	assert.Equal(t, 1, snap.Night)
	assert.False(t, snap.Started)
	assert.Equal(t, 0, snap.RosterSize)
	assert.Nil(t, snap.LastResolution)
	for _, k := range models.AllPowerUps {
		assert.Equal(t, 0, snap.Stock[k])
	}
}

func TestGameService_EliminationEndsCampaign(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	game, bus := newTestGame(t, 3, GameOptions{EnemyCount: 2})
	startNight(t, game)

	// Enemy 1 completes its card, enemy 2 is ahead of the player
	enemy1, enemy2 := game.roster.Enemies[0], game.roster.Enemies[1]
	for _, n := range enemy1.Card.Numbers {
		enemy1.Card.Mark(n)
	}
	for _, n := range enemy2.Card.Numbers[:5] {
		enemy2.Card.Mark(n)
	}
	res := game.resolve(enemy1, false)
	game.events.Flush(ctx)

	assert.Equal(t, models.OutcomePlayerEliminated, res.Outcome)
	require.Len(t, bus.ofType(events.EventTypeCampaignEnded), 1)
	ended := bus.ofType(events.EventTypeCampaignEnded)[0].(events.CampaignEndedEvent)
	assert.Equal(t, models.CampaignResultEliminated, ended.Result)

	require.NoError(t, game.ContinueAfterResolution(ctx))
	assert.Equal(t, models.GameStateMenu, game.Snapshot().State)
}

func TestGameService_DrawIgnoredWhenMatchOverOrExhausted(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("match over", func(t *testing.T) {
		t.Parallel()
		game, _ := newTestGame(t, 1, GameOptions{EnemyCount: 3})
		startNight(t, game)
		game.night.MatchOver = true

		result, err := game.DrawNext(ctx)

		require.NoError(t, err)
		assert.True(t, result.Ignored)
		assert.Empty(t, game.Snapshot().DrawHistory)
	})

	t.Run("after the night resolves", func(t *testing.T) {
		t.Parallel()
		game, bus := newTestGame(t, 11, GameOptions{EnemyCount: 49})
		startNight(t, game)
		drawUntilResolved(t, game)
		before := game.Snapshot()
		eventCount := len(bus.types())

		result, err := game.DrawNext(ctx)

		require.NoError(t, err)
		require.NotNil(t, result)
		assert.True(t, result.Ignored)
		after := game.Snapshot()
		assert.Equal(t, before.DrawHistory, after.DrawHistory)
		assert.Equal(t, models.GameStateResolved, after.State)
		assert.Len(t, bus.types(), eventCount)
	})

	t.Run("pool exhausted", func(t *testing.T) {
		t.Parallel()
		game, _ := newTestGame(t, 1, GameOptions{EnemyCount: 3})
		startNight(t, game)
		for n := models.MinNumber; n <= models.MaxNumber; n++ {
			require.NoError(t, game.night.RecordDraw(n))
		}

		result, err := game.DrawNext(ctx)

		require.NoError(t, err)
		assert.True(t, result.Ignored)
		assert.Len(t, game.Snapshot().DrawHistory, models.PoolSize)
	})
}

func TestGameService_ShieldTwiceKeepsStock(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	game, bus := newTestGame(t, 1, GameOptions{EnemyCount: 3})
	startNight(t, game)
	game.economy.Stock[models.PowerUpShield] = 2

	require.NoError(t, game.UseShield(ctx))
	err := game.UseShield(ctx)

	assert.ErrorIs(t, err, ErrShieldAlreadyActive)
	snap := game.Snapshot()
	assert.True(t, snap.ShieldActive)
	assert.Equal(t, 1, snap.Stock[models.PowerUpShield])
	assert.Len(t, bus.ofType(events.EventTypePowerUpUsed), 1)
}

func TestGameService_SabotageThroughController(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	game, _ := newTestGame(t, 1, GameOptions{EnemyCount: 3})
	startNight(t, game)

	_, err := game.UseSabotage(ctx)
	assert.ErrorIs(t, err, ErrNoneAvailable)

	leader := game.roster.Enemies[2]
	for _, n := range leader.Card.Numbers[:4] {
		leader.Card.Mark(n)
	}
	game.economy.Stock[models.PowerUpSabotage] = 1

	result, err := game.UseSabotage(ctx)

	require.NoError(t, err)
	assert.Equal(t, leader.Name, result.TargetName)
	assert.Equal(t, 3, leader.MatchedCount())
}

func TestGameService_Abandon(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	game, bus := newTestGame(t, 1, GameOptions{EnemyCount: 4})
	startNight(t, game)
	_, err := game.DrawNext(ctx)
	require.NoError(t, err)
	game.economy.Currency = 80
	game.economy.Stock[models.PowerUpShield] = 2
	game.campaign.Night = 3

	require.NoError(t, game.Abandon(ctx))

	snap := game.Snapshot()
	assert.Equal(t, models.GameStateMenu, snap.State)
	assert.False(t, snap.Started)
	assert.Empty(t, snap.DrawHistory)
	assert.Equal(t, models.DefaultStartingCurrency, snap.Currency)
	assert.Equal(t, 0, snap.Stock[models.PowerUpShield])
	assert.Equal(t, 1, snap.Night)

	ended := bus.ofType(events.EventTypeCampaignEnded)
	require.Len(t, ended, 1)
	ev := ended[0].(events.CampaignEndedEvent)
	assert.Equal(t, models.CampaignResultAbandoned, ev.Result)
	assert.Equal(t, 3, ev.NightsReached)
	assert.Equal(t, 4, ev.EnemiesRemaining)

	require.NoError(t, game.StartCampaign(ctx))
	require.NoError(t, game.BeginNight(ctx))
	assert.Equal(t, 5, game.Snapshot().RosterSize, "a new roster is generated")
}

func TestGameService_Cheat(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	disabled, _ := newTestGame(t, 1, GameOptions{EnemyCount: 3})
	assert.ErrorIs(t, disabled.ApplyCheat(ctx), ErrCheatsDisabled)
	assert.Equal(t, 15, disabled.Snapshot().Currency)

	game, _ := newTestGame(t, 1, GameOptions{EnemyCount: 3, CheatsEnabled: true})
	require.NoError(t, game.ApplyCheat(ctx))
	require.NoError(t, game.StartCampaign(ctx))
	assert.Equal(t, models.CheatCurrency, game.Snapshot().Currency)

	require.NoError(t, game.Purchase(ctx, models.PowerUpShield))
	assert.Equal(t, models.CheatCurrency-models.CostShield, game.Snapshot().Currency)

	require.NoError(t, game.BeginNight(ctx))
	assert.ErrorIs(t, game.ApplyCheat(ctx), ErrInvalidState)
}

func TestGameService_EmitsThroughEmitter(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	emitter := new(MockEmitter)
	emitter.On("Emit", ctx, mock.MatchedBy(func(e events.Event) bool {
		started, ok := e.(events.CampaignStartedEvent)
		return ok && started.StartingCurrency == 15 && started.Seed == 77
	})).Return().Once()

	game := NewGameService(GameOptions{EnemyCount: 3, StartingCurrency: 15, Seed: 77}, rand.New(rand.NewSource(1)), emitter)
	require.NoError(t, game.StartCampaign(ctx))

	emitter.AssertExpectations(t)
}
