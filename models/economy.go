package models

import (
	"errors"
	"fmt"
)

// PowerUpKind identifies a purchasable one-time power-up
type PowerUpKind string

const (
	PowerUpSnipe    PowerUpKind = "snipe"
	PowerUpSabotage PowerUpKind = "sabotage"
	PowerUpShield   PowerUpKind = "shield"
)

// Power-up prices in ink
const (
	CostSnipe    = 15
	CostSabotage = 10
	CostShield   = 20
)

// Rewards in ink
const (
	RowBonusReward = 10
	SurvivalReward = 10
)

const (
	// DefaultStartingCurrency is the ink a fresh campaign starts with
	DefaultStartingCurrency = 15

	// CheatCurrency is the balance granted by the menu cheat
	CheatCurrency = 9999
)

var (
	// ErrCannotAfford is returned when the balance is below the price
	ErrCannotAfford = errors.New("cannot afford")

	// ErrNoneAvailable is returned when a power-up has no stock
	ErrNoneAvailable = errors.New("none available")

	// ErrUnknownPowerUp is returned for kinds outside the catalogue
	ErrUnknownPowerUp = errors.New("unknown power-up")
)

// AllPowerUps lists the catalogue in display order
var AllPowerUps = []PowerUpKind{PowerUpSnipe, PowerUpSabotage, PowerUpShield}

// Cost returns the price of the power-up, or -1 for an unknown kind
func (k PowerUpKind) Cost() int {
	switch k {
	case PowerUpSnipe:
		return CostSnipe
	case PowerUpSabotage:
		return CostSabotage
	case PowerUpShield:
		return CostShield
	default:
		return -1
	}
}

// IsValid checks if the kind is part of the catalogue
func (k PowerUpKind) IsValid() bool {
	return k.Cost() >= 0
}

// ParsePowerUpKind converts user input into a power-up kind
func ParsePowerUpKind(s string) (PowerUpKind, error) {
	k := PowerUpKind(s)
	if !k.IsValid() {
		return "", fmt.Errorf("%q: %w", s, ErrUnknownPowerUp)
	}
	return k, nil
}

// Economy tracks the ink balance and power-up stock
type Economy struct {
	Currency int
	Stock    map[PowerUpKind]int
}

// NewEconomy creates an economy with the starting balance and empty stock
func NewEconomy(startingCurrency int) *Economy {
	e := &Economy{}
	e.Reset(startingCurrency)
	return e
}

// CanAfford checks if the balance covers the price of the kind
func (e *Economy) CanAfford(kind PowerUpKind) bool {
	return kind.IsValid() && e.Currency >= kind.Cost()
}

// Purchase deducts the price and adds one unit of stock
func (e *Economy) Purchase(kind PowerUpKind) error {
	if !kind.IsValid() {
		return fmt.Errorf("purchase %q: %w", kind, ErrUnknownPowerUp)
	}
	if !e.CanAfford(kind) {
		return fmt.Errorf("purchase %s for %d with %d: %w", kind, kind.Cost(), e.Currency, ErrCannotAfford)
	}
	e.Currency -= kind.Cost()
	e.Stock[kind]++
	return nil
}

// StockOf returns the units held of a kind
func (e *Economy) StockOf(kind PowerUpKind) int {
	return e.Stock[kind]
}

// Consume uses one unit of stock
func (e *Economy) Consume(kind PowerUpKind) error {
	if e.Stock[kind] <= 0 {
		return fmt.Errorf("use %s: %w", kind, ErrNoneAvailable)
	}
	e.Stock[kind]--
	return nil
}

// Credit adds ink to the balance
func (e *Economy) Credit(amount int) {
	if amount <= 0 {
		return
	}
	e.Currency += amount
}

// Reset restores the starting balance and clears all stock
func (e *Economy) Reset(startingCurrency int) {
	if startingCurrency < 0 {
		startingCurrency = 0
	}
	e.Currency = startingCurrency
	e.Stock = map[PowerUpKind]int{
		PowerUpSnipe:    0,
		PowerUpSabotage: 0,
		PowerUpShield:   0,
	}
}

// StockSnapshot returns a copy of the stock counts
func (e *Economy) StockSnapshot() map[PowerUpKind]int {
	out := make(map[PowerUpKind]int, len(e.Stock))
	for k, v := range e.Stock {
		out[k] = v
	}
	return out
}
