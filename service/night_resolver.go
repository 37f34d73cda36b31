package service

import (
	"fmt"
	"sort"

	"hellbingo/models"
)

// RankParticipants orders enemies then the player by ascending match count.
// Ties keep roster order, placing the player after enemies with the same count.
func RankParticipants(roster *models.Roster) []*models.Participant {
	ranking := roster.Participants()
	sort.SliceStable(ranking, func(i, j int) bool {
		return ranking[i].MatchedCount() < ranking[j].MatchedCount()
	})
	return ranking
}

// ResolveNight classifies the finished night and applies its consequences to
// the roster, economy and campaign. Removing a participant missing from the
// roster is an invariant failure and panics.
func ResolveNight(
	roster *models.Roster,
	night *models.NightState,
	economy *models.Economy,
	campaign *models.Campaign,
	enemyWinner *models.Participant,
	playerWon bool,
) *models.Resolution {
	ranking := RankParticipants(roster)
	if len(ranking) == 0 {
		panic("resolve night: empty roster")
	}

	loser := ranking[0]
	shieldSaved := false
	if loser.IsPlayer() && night.ShieldActive && len(ranking) > 1 {
		loser = ranking[1]
		shieldSaved = true
	}

	resolution := &models.Resolution{
		Night:       campaign.Night,
		LoserName:   loser.Name,
		ShieldSaved: shieldSaved,
	}
	if enemyWinner != nil {
		resolution.WinnerName = enemyWinner.Name
	}

	switch {
	case playerWon:
		resolution.Outcome = models.OutcomePlayerVictory
		resolution.WinnerName = models.PlayerName
	case loser.IsPlayer():
		resolution.Outcome = models.OutcomePlayerEliminated
	default:
		resolution.Outcome = models.OutcomeSurvived
		resolution.CurrencyDelta = models.SurvivalReward
		economy.Credit(models.SurvivalReward)

		if enemyWinner != nil {
			mustRemove(roster, enemyWinner.Name)
		}
		if enemyWinner == nil || enemyWinner.Name != loser.Name {
			mustRemove(roster, loser.Name)
		}
		campaign.AdvanceNight()
	}

	night.MatchOver = true
	return resolution
}

func mustRemove(roster *models.Roster, name string) {
	if err := roster.RemoveEnemy(name); err != nil {
		panic(fmt.Sprintf("resolve night: %v", err))
	}
}
