package service

import (
	"hellbingo/models"
)

// ApplyNumber marks a drawn number on every card that holds it. Enemies are
// scanned in roster order and the scan stops at the first enemy to complete
// its card. The player is always evaluated afterwards, including row bonuses.
func ApplyNumber(roster *models.Roster, economy *models.Economy, number int) *models.MatchResult {
	result := &models.MatchResult{Number: number}

	for _, enemy := range roster.Enemies {
		if !enemy.Card.Mark(number) {
			continue
		}
		result.EnemiesMarked++
		if enemy.Card.IsComplete() {
			result.EnemyWinner = enemy
			break
		}
	}

	player := roster.Player
	if player != nil && player.Card.Mark(number) {
		result.PlayerMatched = true
		result.RowsCompleted = CheckRowBonus(player, economy)
	}
	result.PlayerComplete = player != nil && player.Card.IsComplete()

	return result
}
