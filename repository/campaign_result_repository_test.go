package repository

import (
	"context"
	"testing"
	"time"

	"hellbingo/models"
	"hellbingo/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCampaignResultRepository(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	repo := NewCampaignResultRepository(testDB.DB)
	ctx := context.Background()
	base := time.Date(2024, 6, 10, 18, 0, 0, 0, time.UTC)

	t.Run("empty stats", func(t *testing.T) {
		stats, err := repo.GetStats(ctx)
		require.NoError(t, err)
		assert.Equal(t, 0, stats.TotalCampaigns)
		assert.Equal(t, 0.0, stats.AverageNights)
	})

	victory := testutil.CreateTestCampaignResultAt(models.CampaignResultVictory, 8, base)
	victory.FinalCurrency = 120
	eliminated := testutil.CreateTestCampaignResultAt(models.CampaignResultEliminated, 2, base.Add(time.Hour))
	abandoned := testutil.CreateTestCampaignResultAt(models.CampaignResultAbandoned, 5, base.Add(2*time.Hour))

	t.Run("save", func(t *testing.T) {
		for _, r := range []*models.CampaignResult{victory, eliminated, abandoned} {
			require.NoError(t, repo.Save(ctx, r))
			assert.NotZero(t, r.ID)
		}
	})

	t.Run("duplicate save is ignored", func(t *testing.T) {
		dup := *victory
		dup.ID = 0
		require.NoError(t, repo.Save(ctx, &dup))
		assert.Zero(t, dup.ID)
	})

	t.Run("recent newest first", func(t *testing.T) {
		recent, err := repo.GetRecent(ctx, 2)
		require.NoError(t, err)
		require.Len(t, recent, 2)
		assert.Equal(t, abandoned.CampaignID, recent[0].CampaignID)
		assert.Equal(t, eliminated.CampaignID, recent[1].CampaignID)
		assert.Equal(t, models.CampaignResultEliminated, recent[1].Result)
		assert.Equal(t, 2, recent[1].NightsReached)
		assert.True(t, eliminated.EndedAt.Equal(recent[1].EndedAt))
		assert.Equal(t, eliminated.Seed, recent[1].Seed)
	})

	t.Run("stats", func(t *testing.T) {
		stats, err := repo.GetStats(ctx)
		require.NoError(t, err)
		assert.Equal(t, 3, stats.TotalCampaigns)
		assert.Equal(t, 1, stats.Victories)
		assert.Equal(t, 1, stats.Eliminations)
		assert.Equal(t, 1, stats.Abandoned)
		assert.Equal(t, 8, stats.BestNight)
		assert.InDelta(t, 5.0, stats.AverageNights, 0.001)
		assert.InDelta(t, 100.0/3, stats.WinPercentage, 0.001)
		assert.Equal(t, 120, stats.RichestFinish)
	})
}
