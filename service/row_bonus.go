package service

import (
	"hellbingo/models"
)

// CheckRowBonus flags newly completed rows on the player's card and pays the
// row reward for each. A row pays at most once per night.
func CheckRowBonus(player *models.Participant, economy *models.Economy) []int {
	if player == nil || player.Rows == nil {
		return nil
	}

	var completed []int
	for row := 0; row < models.RowCount; row++ {
		if player.Rows.Completed[row] {
			continue
		}
		if player.Rows.IsRowFull(player.Card, row) {
			player.Rows.Completed[row] = true
			economy.Credit(models.RowBonusReward)
			completed = append(completed, row)
		}
	}
	return completed
}
