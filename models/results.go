package models

import (
	"github.com/google/uuid"
)

// MatchResult represents the effect of one drawn number on the roster
type MatchResult struct {
	Number         int
	EnemiesMarked  int
	EnemyWinner    *Participant // first enemy in roster order to reach a full card
	PlayerMatched  bool
	PlayerComplete bool
	RowsCompleted  []int
}

// DrawResult represents the outcome of a draw command
type DrawResult struct {
	Ignored    bool // match over or pool exhausted
	Number     int
	Match      *MatchResult
	Resolution *Resolution // set when the draw ended the night
}

// SnipeResult represents the outcome of a snipe
type SnipeResult struct {
	Number         int
	RowsCompleted  []int
	PlayerComplete bool
	Resolution     *Resolution
}

// SabotageResult represents the outcome of a sabotage
type SabotageResult struct {
	TargetName     string
	RemovedNumber  int
	NothingRemoved bool
	TargetCount    int // matches left on the target
}

// Snapshot is the read-only view of the game exposed to presentation
type Snapshot struct {
	State          GameState
	CampaignID     uuid.UUID
	Started        bool
	Night          int
	Currency       int
	Stock          map[PowerUpKind]int
	ShieldActive   bool
	RosterSize     int
	EnemyCount     int
	CardNumbers    []int
	CardMatched    []bool
	RowsCompleted  [RowCount]bool
	DrawHistory    []int
	LastDrawn      int
	LastResolution *Resolution
	CheatsEnabled  bool
}
