package service

import (
	"context"
	"time"

	"hellbingo/events"
	"hellbingo/models"

	log "github.com/sirupsen/logrus"
)

const archiveTimeout = 5 * time.Second

// CampaignArchive stores every finished campaign it hears about
type CampaignArchive struct {
	repo CampaignResultRepository
}

// NewCampaignArchive creates a new campaign archive
func NewCampaignArchive(repo CampaignResultRepository) *CampaignArchive {
	return &CampaignArchive{repo: repo}
}

// Register subscribes the archive to campaign endings
func (a *CampaignArchive) Register(bus events.Subscriber) {
	bus.Subscribe(events.EventTypeCampaignEnded, a.HandleCampaignEnded)
}

// HandleCampaignEnded converts the event into an archive row and saves it
func (a *CampaignArchive) HandleCampaignEnded(ctx context.Context, event events.Event) {
	ended, ok := event.(events.CampaignEndedEvent)
	if !ok {
		log.WithField("eventType", event.Type()).Warn("Campaign archive received unexpected event")
		return
	}

	// Detached from the command's context so a finished command cannot cancel the write
	saveCtx, cancel := context.WithTimeout(context.Background(), archiveTimeout)
	defer cancel()

	result := &models.CampaignResult{
		CampaignID:       ended.CampaignID,
		Result:           ended.Result,
		NightsReached:    ended.NightsReached,
		FinalCurrency:    ended.FinalCurrency,
		EnemiesRemaining: ended.EnemiesRemaining,
		Seed:             ended.Seed,
		StartedAt:        ended.StartedAt,
		EndedAt:          ended.EndedAt,
	}
	if result.StartedAt.IsZero() {
		result.StartedAt = result.EndedAt
	}

	if err := a.repo.Save(saveCtx, result); err != nil {
		log.WithFields(log.Fields{
			"campaignID": ended.CampaignID,
			"error":      err,
		}).Error("Failed to archive campaign result")
		return
	}

	log.WithFields(log.Fields{
		"campaignID": ended.CampaignID,
		"result":     ended.Result,
		"nights":     ended.NightsReached,
	}).Info("Archived campaign result")
}
