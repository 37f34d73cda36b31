package models

import (
	"fmt"
)

// ParticipantKind distinguishes the human player from computer enemies
type ParticipantKind string

const (
	ParticipantKindPlayer ParticipantKind = "player"
	ParticipantKindEnemy  ParticipantKind = "enemy"
)

// PlayerName is the fixed identity of the human player
const PlayerName = "YOU"

// RowCount is the number of bonus rows on the player's card
const RowCount = 3

// RowIndices lists the card positions forming each bonus row
var RowIndices = [RowCount][5]int{
	{0, 1, 2, 3, 4},
	{5, 6, 7, 8, 9},
	{10, 11, 12, 13, 14},
}

// RowTracker records which bonus rows have paid out this night
type RowTracker struct {
	Completed [RowCount]bool
}

// IsRowFull checks if every number of the row is matched on the card
func (r *RowTracker) IsRowFull(card *Card, row int) bool {
	for _, idx := range RowIndices[row] {
		if idx >= len(card.Numbers) || !card.IsMatched(card.Numbers[idx]) {
			return false
		}
	}
	return true
}

// Reset clears all row flags
func (r *RowTracker) Reset() {
	r.Completed = [RowCount]bool{}
}

// Participant represents the player or an enemy holding a card
type Participant struct {
	Name string
	Kind ParticipantKind
	Card *Card
	Rows *RowTracker // nil for enemies
}

// NewPlayer creates the player participant with row tracking
func NewPlayer(card *Card) *Participant {
	return &Participant{
		Name: PlayerName,
		Kind: ParticipantKindPlayer,
		Card: card,
		Rows: &RowTracker{},
	}
}

// NewEnemy creates an enemy participant named after its 1-based roster position
func NewEnemy(number int, card *Card) *Participant {
	return &Participant{
		Name: EnemyName(number),
		Kind: ParticipantKindEnemy,
		Card: card,
	}
}

// EnemyName returns the deterministic name for the n-th enemy
func EnemyName(number int) string {
	return fmt.Sprintf("Prisoner#%d", number)
}

// IsPlayer checks if this participant is the human player
func (p *Participant) IsPlayer() bool {
	return p.Kind == ParticipantKindPlayer
}

// MatchedCount returns the participant's matches this night
func (p *Participant) MatchedCount() int {
	return p.Card.MatchedCount()
}

// ResetForNight clears matches and row flags
func (p *Participant) ResetForNight() {
	p.Card.ResetForNight()
	if p.Rows != nil {
		p.Rows.Reset()
	}
}
