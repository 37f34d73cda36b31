package service

import (
	"hellbingo/models"
)

// GenerateCard draws CardSize distinct numbers from the pool by rejection sampling
func GenerateCard(rng Random) *models.Card {
	seen := make(map[int]struct{}, models.CardSize)
	numbers := make([]int, 0, models.CardSize)
	for len(numbers) < models.CardSize {
		n := rng.Intn(models.PoolSize) + models.MinNumber
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}
		numbers = append(numbers, n)
	}
	return models.NewCard(numbers)
}

// GenerateRoster builds enemyCount enemies followed by the player. Cards are
// independent, so numbers may repeat across participants.
func GenerateRoster(rng Random, enemyCount int) *models.Roster {
	if enemyCount < 0 {
		enemyCount = 0
	}
	roster := &models.Roster{
		Enemies: make([]*models.Participant, 0, enemyCount),
	}
	for i := 1; i <= enemyCount; i++ {
		roster.Enemies = append(roster.Enemies, models.NewEnemy(i, GenerateCard(rng)))
	}
	roster.Player = models.NewPlayer(GenerateCard(rng))
	return roster
}
