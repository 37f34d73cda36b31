package service

import (
	"context"
	"fmt"

	"hellbingo/models"
)

const defaultRecentLimit = 10

// statsService implements the StatsService interface
type statsService struct {
	repo CampaignResultRepository
}

// NewStatsService creates a new stats service
func NewStatsService(repo CampaignResultRepository) StatsService {
	return &statsService{
		repo: repo,
	}
}

// GetSummary returns aggregated statistics over archived campaigns
func (s *statsService) GetSummary(ctx context.Context) (*models.CampaignStats, error) {
	stats, err := s.repo.GetStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get campaign stats: %w", err)
	}
	return stats, nil
}

// GetRecent returns the latest archived campaigns, newest first
func (s *statsService) GetRecent(ctx context.Context, limit int) ([]*models.CampaignResult, error) {
	if limit <= 0 {
		limit = defaultRecentLimit
	}
	results, err := s.repo.GetRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent campaigns: %w", err)
	}
	return results, nil
}
