package service

import (
	"fmt"

	"hellbingo/models"
)

// Snipe consumes one snipe and marks a random unmatched number on the
// player's card. The number is not recorded in the night's draw history.
func Snipe(rng Random, player *models.Participant, economy *models.Economy) (*models.SnipeResult, error) {
	if economy.StockOf(models.PowerUpSnipe) <= 0 {
		return nil, fmt.Errorf("snipe: %w", ErrNoneAvailable)
	}

	candidates := player.Card.UnmatchedNumbers()
	if len(candidates) == 0 {
		return nil, fmt.Errorf("snipe: %w", ErrCardFull)
	}

	if err := economy.Consume(models.PowerUpSnipe); err != nil {
		return nil, err
	}

	number := candidates[0]
	if len(candidates) > 1 {
		number = candidates[rng.Intn(len(candidates))]
	}
	player.Card.Mark(number)

	return &models.SnipeResult{
		Number:         number,
		RowsCompleted:  CheckRowBonus(player, economy),
		PlayerComplete: player.Card.IsComplete(),
	}, nil
}

// SabotageLeader returns the first enemy in roster order with the highest
// match count, or nil when no enemies remain
func SabotageLeader(roster *models.Roster) *models.Participant {
	var leader *models.Participant
	for _, enemy := range roster.Enemies {
		if leader == nil || enemy.MatchedCount() > leader.MatchedCount() {
			leader = enemy
		}
	}
	return leader
}

// Sabotage consumes one sabotage and removes a match from the leading enemy.
// A leader without matches still costs the stock unit.
func Sabotage(roster *models.Roster, economy *models.Economy) (*models.SabotageResult, error) {
	if economy.StockOf(models.PowerUpSabotage) <= 0 {
		return nil, fmt.Errorf("sabotage: %w", ErrNoneAvailable)
	}

	leader := SabotageLeader(roster)
	if leader == nil {
		return nil, fmt.Errorf("sabotage: %w", ErrNothingToSabotage)
	}

	if err := economy.Consume(models.PowerUpSabotage); err != nil {
		return nil, err
	}

	result := &models.SabotageResult{TargetName: leader.Name}
	matched := leader.Card.MatchedNumbers()
	if len(matched) == 0 {
		result.NothingRemoved = true
		return result, nil
	}

	removed := matched[len(matched)-1]
	leader.Card.Unmark(removed)
	result.RemovedNumber = removed
	result.TargetCount = leader.MatchedCount()
	return result, nil
}

// ActivateShield consumes one shield and protects the player for the rest of
// the night. An active shield is reported before stock is checked.
func ActivateShield(night *models.NightState, economy *models.Economy) error {
	if night.ShieldActive {
		return fmt.Errorf("shield: %w", ErrShieldAlreadyActive)
	}
	if err := economy.Consume(models.PowerUpShield); err != nil {
		return fmt.Errorf("shield: %w", err)
	}
	night.ShieldActive = true
	return nil
}
