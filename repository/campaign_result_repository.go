package repository

import (
	"context"
	"fmt"

	"hellbingo/database"
	"hellbingo/models"

	"github.com/jackc/pgx/v5"
)

// CampaignResultRepository stores finished campaigns in PostgreSQL
type CampaignResultRepository struct {
	db *database.DB
}

// NewCampaignResultRepository creates a new campaign result repository
func NewCampaignResultRepository(db *database.DB) *CampaignResultRepository {
	return &CampaignResultRepository{db: db}
}

// Save inserts a campaign result and fills in its ID. Saving the same
// campaign twice is a no-op.
func (r *CampaignResultRepository) Save(ctx context.Context, result *models.CampaignResult) error {
	query := `
		INSERT INTO campaign_results
		(campaign_id, result, nights_reached, final_currency, enemies_remaining, seed, started_at, ended_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (campaign_id) DO NOTHING
		RETURNING id
	`

	return r.db.WithTransaction(ctx, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, query,
			result.CampaignID,
			string(result.Result),
			result.NightsReached,
			result.FinalCurrency,
			result.EnemiesRemaining,
			result.Seed,
			result.StartedAt,
			result.EndedAt,
		).Scan(&result.ID)

		if err == pgx.ErrNoRows {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to save campaign result %s: %w", result.CampaignID, err)
		}
		return nil
	})
}

// GetRecent returns the most recently ended campaigns, newest first
func (r *CampaignResultRepository) GetRecent(ctx context.Context, limit int) ([]*models.CampaignResult, error) {
	query := `
		SELECT id, campaign_id, result, nights_reached, final_currency,
		       enemies_remaining, seed, started_at, ended_at
		FROM campaign_results
		ORDER BY ended_at DESC, id DESC
		LIMIT $1
	`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent campaigns: %w", err)
	}

	results, err := pgx.CollectRows(rows, pgx.RowToAddrOfStructByName[models.CampaignResult])
	if err != nil {
		return nil, fmt.Errorf("failed to scan campaign results: %w", err)
	}
	return results, nil
}

// GetStats aggregates every archived campaign
func (r *CampaignResultRepository) GetStats(ctx context.Context) (*models.CampaignStats, error) {
	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE result = 'victory'),
			COUNT(*) FILTER (WHERE result = 'eliminated'),
			COUNT(*) FILTER (WHERE result = 'abandoned'),
			COALESCE(MAX(nights_reached), 0),
			COALESCE(AVG(nights_reached), 0)::float8,
			COALESCE(MAX(final_currency), 0)
		FROM campaign_results
	`

	var stats models.CampaignStats
	err := r.db.QueryRow(ctx, query).Scan(
		&stats.TotalCampaigns,
		&stats.Victories,
		&stats.Eliminations,
		&stats.Abandoned,
		&stats.BestNight,
		&stats.AverageNights,
		&stats.RichestFinish,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get campaign stats: %w", err)
	}

	if stats.TotalCampaigns > 0 {
		stats.WinPercentage = float64(stats.Victories) / float64(stats.TotalCampaigns) * 100
	}
	return &stats, nil
}
