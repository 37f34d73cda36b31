package testutil

import (
	"time"

	"hellbingo/models"

	"github.com/google/uuid"
)

// CreateTestCampaignResult creates a campaign result with default values
func CreateTestCampaignResult(result models.CampaignResultKind, nights int) *models.CampaignResult {
	ended := time.Now().UTC().Truncate(time.Microsecond)
	return &models.CampaignResult{
		CampaignID:       uuid.New(),
		Result:           result,
		NightsReached:    nights,
		FinalCurrency:    25,
		EnemiesRemaining: 10,
		Seed:             42,
		StartedAt:        ended.Add(-10 * time.Minute),
		EndedAt:          ended,
	}
}

// CreateTestCampaignResultAt creates a campaign result that ended at a specific time
func CreateTestCampaignResultAt(result models.CampaignResultKind, nights int, endedAt time.Time) *models.CampaignResult {
	r := CreateTestCampaignResult(result, nights)
	r.EndedAt = endedAt.UTC().Truncate(time.Microsecond)
	r.StartedAt = r.EndedAt.Add(-10 * time.Minute)
	return r
}
