package repository

import (
	"context"
	"sort"
	"sync"

	"hellbingo/models"
)

// MemoryCampaignResultRepository keeps campaign results in process memory.
// Used when no database is configured.
type MemoryCampaignResultRepository struct {
	mu      sync.RWMutex
	results []*models.CampaignResult
	seen    map[string]bool
	nextID  int64
}

// NewMemoryCampaignResultRepository creates an empty in-memory archive
func NewMemoryCampaignResultRepository() *MemoryCampaignResultRepository {
	return &MemoryCampaignResultRepository{
		seen:   make(map[string]bool),
		nextID: 1,
	}
}

// Save stores a copy of result and fills in its ID. Saving the same
// campaign twice is a no-op.
func (r *MemoryCampaignResultRepository) Save(ctx context.Context, result *models.CampaignResult) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := result.CampaignID.String()
	if r.seen[key] {
		return nil
	}
	r.seen[key] = true

	result.ID = r.nextID
	r.nextID++
	stored := *result
	r.results = append(r.results, &stored)
	return nil
}

// GetRecent returns up to limit results, newest first
func (r *MemoryCampaignResultRepository) GetRecent(ctx context.Context, limit int) ([]*models.CampaignResult, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sorted := make([]*models.CampaignResult, len(r.results))
	copy(sorted, r.results)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].EndedAt.Equal(sorted[j].EndedAt) {
			return sorted[i].ID > sorted[j].ID
		}
		return sorted[i].EndedAt.After(sorted[j].EndedAt)
	})

	if limit >= 0 && len(sorted) > limit {
		sorted = sorted[:limit]
	}

	out := make([]*models.CampaignResult, len(sorted))
	for i, res := range sorted {
		c := *res
		out[i] = &c
	}
	return out, nil
}

// GetStats aggregates every stored result
func (r *MemoryCampaignResultRepository) GetStats(ctx context.Context) (*models.CampaignStats, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return models.SummarizeCampaigns(r.results), nil
}
