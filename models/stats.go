package models

import (
	"time"

	"github.com/google/uuid"
)

// CampaignResultKind represents how an archived campaign ended
type CampaignResultKind string

const (
	CampaignResultVictory    CampaignResultKind = "victory"
	CampaignResultEliminated CampaignResultKind = "eliminated"
	CampaignResultAbandoned  CampaignResultKind = "abandoned"
)

// CampaignResult is the archived record of a finished campaign
type CampaignResult struct {
	ID               int64              `db:"id"`
	CampaignID       uuid.UUID          `db:"campaign_id"`
	Result           CampaignResultKind `db:"result"`
	NightsReached    int                `db:"nights_reached"`
	FinalCurrency    int                `db:"final_currency"`
	EnemiesRemaining int                `db:"enemies_remaining"`
	Seed             int64              `db:"seed"`
	StartedAt        time.Time          `db:"started_at"`
	EndedAt          time.Time          `db:"ended_at"`
}

// ResultKindForOutcome maps a terminal night outcome to its archive result
func ResultKindForOutcome(o Outcome) CampaignResultKind {
	switch o {
	case OutcomePlayerVictory:
		return CampaignResultVictory
	case OutcomePlayerEliminated:
		return CampaignResultEliminated
	default:
		return CampaignResultAbandoned
	}
}

// CampaignStats represents aggregated statistics over archived campaigns
type CampaignStats struct {
	TotalCampaigns int
	Victories      int
	Eliminations   int
	Abandoned      int
	WinPercentage  float64 // 0-100
	BestNight      int
	AverageNights  float64
	RichestFinish  int
}

// SimulationStats summarises a batch of autopilot campaigns
type SimulationStats struct {
	Runs            int
	Victories       int
	Eliminations    int
	WinPercentage   float64
	AverageNights   float64
	MaxNights       int
	NightHistogram  map[int]int // nights reached -> campaigns
	AverageDraws    float64     // draws per night
	PowerUpsUsed    map[PowerUpKind]int
	ShieldSaves     int
	AverageCurrency float64
}

// SummarizeCampaigns aggregates archived campaigns into statistics
func SummarizeCampaigns(results []*CampaignResult) *CampaignStats {
	stats := &CampaignStats{}
	totalNights := 0
	for _, r := range results {
		stats.TotalCampaigns++
		switch r.Result {
		case CampaignResultVictory:
			stats.Victories++
		case CampaignResultEliminated:
			stats.Eliminations++
		case CampaignResultAbandoned:
			stats.Abandoned++
		}
		totalNights += r.NightsReached
		if r.NightsReached > stats.BestNight {
			stats.BestNight = r.NightsReached
		}
		if r.FinalCurrency > stats.RichestFinish {
			stats.RichestFinish = r.FinalCurrency
		}
	}
	if stats.TotalCampaigns > 0 {
		stats.WinPercentage = float64(stats.Victories) / float64(stats.TotalCampaigns) * 100
		stats.AverageNights = float64(totalNights) / float64(stats.TotalCampaigns)
	}
	return stats
}
