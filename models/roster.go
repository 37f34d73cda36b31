package models

import (
	"errors"
	"fmt"
)

// DefaultEnemyCount is the number of enemies generated for a new campaign
const DefaultEnemyCount = 49

// ErrParticipantNotFound is returned when a name is not on the roster
var ErrParticipantNotFound = errors.New("participant not found in roster")

// Roster holds the enemies in stable order plus the single player
type Roster struct {
	Enemies []*Participant
	Player  *Participant
}

// Size returns the number of participants still alive, player included
func (r *Roster) Size() int {
	return len(r.Enemies) + 1
}

// EnemyCount returns the number of enemies still alive
func (r *Roster) EnemyCount() int {
	return len(r.Enemies)
}

// Participants returns enemies in roster order followed by the player
func (r *Roster) Participants() []*Participant {
	all := make([]*Participant, 0, r.Size())
	all = append(all, r.Enemies...)
	if r.Player != nil {
		all = append(all, r.Player)
	}
	return all
}

// FindEnemy returns the enemy with the given name, or nil
func (r *Roster) FindEnemy(name string) *Participant {
	for _, e := range r.Enemies {
		if e.Name == name {
			return e
		}
	}
	return nil
}

// RemoveEnemy removes the named enemy, preserving the order of the rest
func (r *Roster) RemoveEnemy(name string) error {
	for i, e := range r.Enemies {
		if e.Name == name {
			r.Enemies = append(r.Enemies[:i], r.Enemies[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("remove %s: %w", name, ErrParticipantNotFound)
}

// ResetForNight clears every participant's matches
func (r *Roster) ResetForNight() {
	for _, p := range r.Participants() {
		p.ResetForNight()
	}
}
