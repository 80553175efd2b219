package propagator_test

import (
	"testing"

	"bracketpool/internal/bracket"
	"bracketpool/internal/propagator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoMatchupState() (*bracket.TournamentState, bracket.Team, bracket.Team) {
	s := bracket.NewTournamentState(2026)
	cat := bracket.Team{Name: "Cat", Seed: 1, Region: bracket.South}
	dog := bracket.Team{Name: "Dog", Seed: 8, Region: bracket.South}

	final := 2
	s.AddMatchup(&bracket.Matchup{ID: 1, Round: bracket.Sweet16, TeamA: &cat, TeamB: &dog, Position: 0, NextMatchupID: &final})
	s.AddMatchup(&bracket.Matchup{ID: 2, Round: bracket.EliteEight, Position: 0})
	return s, cat, dog
}

func TestApplyResultRecordsWinnerAndPropagates(t *testing.T) {
	s, cat, _ := twoMatchupState()

	_, err := propagator.ApplyResult(s, 1, cat, &bracket.MatchScore{A: 70, B: 60}, true)
	require.NoError(t, err)

	m, _ := s.Get(1)
	require.NotNil(t, m.Winner)
	assert.True(t, m.Winner.Equal(cat))
	assert.NotNil(t, m.PlayedAt)

	next, _ := s.Get(2)
	require.NotNil(t, next.TeamA)
	assert.True(t, next.TeamA.Equal(cat), "winner must propagate into the successor's slot")
}

func TestApplyResultRejectsNonParticipant(t *testing.T) {
	s, _, _ := twoMatchupState()
	intruder := bracket.Team{Name: "Fox", Seed: 2}

	_, err := propagator.ApplyResult(s, 1, intruder, nil, true)
	require.Error(t, err)
	var verr *bracket.ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestApplyResultUnknownMatchupReturnsNotFound(t *testing.T) {
	s, cat, _ := twoMatchupState()
	_, err := propagator.ApplyResult(s, 999, cat, nil, true)
	require.Error(t, err)
	var nferr *bracket.NotFoundError
	assert.ErrorAs(t, err, &nferr)
}

func TestApplyResultMarksLoserEliminated(t *testing.T) {
	s, cat, dog := twoMatchupState()
	_, err := propagator.ApplyResult(s, 1, cat, nil, true)
	require.NoError(t, err)

	assert.True(t, s.Teams[dog.Name].Eliminated)
	assert.Equal(t, bracket.Sweet16, s.Teams[dog.Name].EliminationRound)
	assert.False(t, s.Teams[cat.Name].Eliminated)
}

func TestApplyResultAmendmentClearsWinnerElimination(t *testing.T) {
	s, cat, dog := twoMatchupState()
	_, err := propagator.ApplyResult(s, 1, cat, nil, true)
	require.NoError(t, err)
	require.True(t, s.Teams[dog.Name].Eliminated)

	// Overturn the call: Dog actually won.
	_, err = propagator.ApplyResult(s, 1, dog, nil, true)
	require.NoError(t, err)

	assert.False(t, s.Teams[dog.Name].Eliminated)
	assert.True(t, s.Teams[cat.Name].Eliminated)

	next, _ := s.Get(2)
	assert.True(t, next.TeamA.Equal(dog), "the successor slot must reflect the amended winner")
}

func TestApplyResultRecomputesCompletedRounds(t *testing.T) {
	s, cat, _ := twoMatchupState()
	assert.False(t, s.CompletedRounds[bracket.Sweet16])

	_, err := propagator.ApplyResult(s, 1, cat, nil, true)
	require.NoError(t, err)
	assert.True(t, s.CompletedRounds[bracket.Sweet16], "the only round-3 matchup now has a winner")
	assert.False(t, s.CompletedRounds[bracket.EliteEight], "round 4's matchup still has no winner")
}
