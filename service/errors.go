package service

import (
	"errors"

	"hellbingo/models"
)

var (
	// ErrInvalidState is returned when a command is issued in the wrong game state
	ErrInvalidState = errors.New("command not allowed in current state")

	// ErrCardFull is returned when a snipe finds no unmatched numbers
	ErrCardFull = errors.New("card already full")

	// ErrNothingToSabotage is returned when no enemies remain
	ErrNothingToSabotage = errors.New("nothing to sabotage")

	// ErrShieldAlreadyActive is returned when the shield is raised twice in one night
	ErrShieldAlreadyActive = errors.New("shield already active")

	// ErrCheatsDisabled is returned when the cheat is used without CHEATS_ENABLED
	ErrCheatsDisabled = errors.New("cheats are disabled")

	// Re-exported economy conditions so callers can match on one package
	ErrCannotAfford  = models.ErrCannotAfford
	ErrNoneAvailable = models.ErrNoneAvailable
)
