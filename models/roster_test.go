package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRoster(enemies int) *Roster {
	r := &Roster{Player: NewPlayer(NewCard(sequentialNumbers(70)))}
	for i := 1; i <= enemies; i++ {
		r.Enemies = append(r.Enemies, NewEnemy(i, NewCard(sequentialNumbers(i))))
	}
	return r
}

func TestRoster_ParticipantsOrder(t *testing.T) {
	t.Parallel()

	r := newTestRoster(3)
	all := r.Participants()

	require.Len(t, all, 4)
	assert.Equal(t, "Prisoner#1", all[0].Name)
	assert.Equal(t, "Prisoner#2", all[1].Name)
	assert.Equal(t, "Prisoner#3", all[2].Name)
	assert.Equal(t, PlayerName, all[3].Name)
	assert.True(t, all[3].IsPlayer())
	assert.Equal(t, 4, r.Size())
}

func TestRoster_RemoveEnemy(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		remove    string
		wantErr   error
		wantNames []string
	}{
		{name: "middle enemy", remove: "Prisoner#2", wantNames: []string{"Prisoner#1", "Prisoner#3"}},
		{name: "first enemy", remove: "Prisoner#1", wantNames: []string{"Prisoner#2", "Prisoner#3"}},
		{name: "unknown", remove: "Prisoner#9", wantErr: ErrParticipantNotFound, wantNames: []string{"Prisoner#1", "Prisoner#2", "Prisoner#3"}},
		{name: "player is never an enemy", remove: PlayerName, wantErr: ErrParticipantNotFound, wantNames: []string{"Prisoner#1", "Prisoner#2", "Prisoner#3"}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := newTestRoster(3)
			err := r.RemoveEnemy(tt.remove)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}

			names := make([]string, 0, len(r.Enemies))
			for _, e := range r.Enemies {
				names = append(names, e.Name)
			}
			assert.Equal(t, tt.wantNames, names)
		})
	}
}

func TestRoster_ResetForNight(t *testing.T) {
	t.Parallel()

	r := newTestRoster(2)
	r.Enemies[0].Card.Mark(1)
	r.Player.Card.Mark(70)
	r.Player.Rows.Completed[1] = true

	r.ResetForNight()

	assert.Equal(t, 0, r.Enemies[0].MatchedCount())
	assert.Equal(t, 0, r.Player.MatchedCount())
	assert.Equal(t, [RowCount]bool{}, r.Player.Rows.Completed)
}

func TestRowTracker_IsRowFull(t *testing.T) {
	t.Parallel()

	card := NewCard(sequentialNumbers(1))
	rows := &RowTracker{}
	for _, n := range []int{6, 7, 8, 9} {
		card.Mark(n)
	}

	assert.False(t, rows.IsRowFull(card, 1))
	card.Mark(10)
	assert.True(t, rows.IsRowFull(card, 1))
	assert.False(t, rows.IsRowFull(card, 0))
	assert.False(t, rows.IsRowFull(card, 2))
}

func TestNewEnemy_Naming(t *testing.T) {
	t.Parallel()

	e := NewEnemy(49, NewCard(sequentialNumbers(1)))
	assert.Equal(t, "Prisoner#49", e.Name)
	assert.Nil(t, e.Rows)
	assert.False(t, e.IsPlayer())
}
