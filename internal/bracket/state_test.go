package bracket_test

import (
	"testing"

	"bracketpool/internal/bracket"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fourTeamState() *bracket.TournamentState {
	s := bracket.NewTournamentState(2026)

	cat := bracket.Team{Name: "Cat", Seed: 1, Region: bracket.South}
	dog := bracket.Team{Name: "Dog", Seed: 8, Region: bracket.South}
	fox := bracket.Team{Name: "Fox", Seed: 2, Region: bracket.East}
	owl := bracket.Team{Name: "Owl", Seed: 7, Region: bracket.East}

	final := 3
	s.AddMatchup(&bracket.Matchup{ID: 1, Round: bracket.Sweet16, Region: bracket.South, TeamA: &cat, TeamB: &dog, Position: 0, NextMatchupID: &final})
	s.AddMatchup(&bracket.Matchup{ID: 2, Round: bracket.Sweet16, Region: bracket.East, TeamA: &fox, TeamB: &owl, Position: 1, NextMatchupID: &final})
	s.AddMatchup(&bracket.Matchup{ID: 3, Round: bracket.Championship, Position: 0})

	return s
}

func TestMatchupSlotByPositionParity(t *testing.T) {
	even := &bracket.Matchup{Position: 0}
	odd := &bracket.Matchup{Position: 1}
	assert.Equal(t, bracket.SlotA, even.Slot())
	assert.Equal(t, bracket.SlotB, odd.Slot())
}

func TestMatchupCloneDoesNotAliasState(t *testing.T) {
	cat := bracket.Team{Name: "Cat", Seed: 1}
	m := &bracket.Matchup{ID: 1, TeamA: &cat}
	clone := m.Clone()
	clone.TeamA.Seed = 99
	assert.Equal(t, 1, m.TeamA.Seed, "cloning must deep-copy team pointers")
}

func TestByRoundOrdersByID(t *testing.T) {
	s := fourTeamState()
	matchups := s.ByRound(bracket.Sweet16)
	require.Len(t, matchups, 2)
	assert.Equal(t, 1, matchups[0].ID)
	assert.Equal(t, 2, matchups[1].ID)
}

func TestCloneDeepCopiesArena(t *testing.T) {
	s := fourTeamState()
	clone := s.Clone()

	m, ok := clone.Get(1)
	require.True(t, ok)
	winner := bracket.Team{Name: "Cat", Seed: 1}
	m.Winner = &winner

	original, ok := s.Get(1)
	require.True(t, ok)
	assert.Nil(t, original.Winner, "mutating a clone must never affect the source state")
}

func TestGetActiveTeamsExcludesEliminated(t *testing.T) {
	s := fourTeamState()
	s.Teams["Dog"] = &bracket.TeamStatus{Seed: 8, Eliminated: true}

	active := s.GetActiveTeams(bracket.Sweet16)
	var names []string
	for _, t := range active {
		names = append(names, t.Name)
	}
	assert.NotContains(t, names, "Dog")
	assert.Contains(t, names, "Cat")
}

func TestDetermineCurrentRoundDefaultsToSweet16(t *testing.T) {
	s := fourTeamState()
	assert.Equal(t, bracket.Sweet16, s.DetermineCurrentRound())
}

func TestDetermineCurrentRoundAdvancesOnCompletion(t *testing.T) {
	s := fourTeamState()
	s.CompletedRounds[bracket.Sweet16] = true
	assert.Equal(t, bracket.EliteEight, s.DetermineCurrentRound())
}

func TestWeightFallsBackToDefaultTable(t *testing.T) {
	s := fourTeamState()
	assert.Equal(t, bracket.DefaultScoringConfig()[bracket.Sweet16], s.Weight(bracket.Sweet16))

	s.ScoringConfig[bracket.Sweet16] = 999
	assert.Equal(t, 999, s.Weight(bracket.Sweet16))
}
