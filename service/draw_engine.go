package service

import (
	"hellbingo/models"
)

// DrawNumber picks a number not yet drawn this night by rejection sampling.
// Returns false without touching rng once the pool is exhausted.
func DrawNumber(rng Random, night *models.NightState) (int, bool) {
	if night.Exhausted() {
		return 0, false
	}
	for {
		n := rng.Intn(models.PoolSize) + models.MinNumber
		if !night.HasDrawn(n) {
			return n, true
		}
	}
}
