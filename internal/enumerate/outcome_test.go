package enumerate_test

import (
	"testing"

	"bracketpool/internal/bracket"
	"bracketpool/internal/enumerate"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// miniTournament builds a 4-team residual bracket: two Sweet16 matchups
// feeding a single Championship matchup, so Enumerate has a small, fully
// coverable outcome space to validate against.
func miniTournament() (*bracket.TournamentState, [4]bracket.Team) {
	s := bracket.NewTournamentState(2026)
	cat := bracket.Team{Name: "Cat", Seed: 1, Region: bracket.South}
	dog := bracket.Team{Name: "Dog", Seed: 8, Region: bracket.South}
	fox := bracket.Team{Name: "Fox", Seed: 2, Region: bracket.East}
	owl := bracket.Team{Name: "Owl", Seed: 7, Region: bracket.East}

	final := 3
	s.AddMatchup(&bracket.Matchup{ID: 1, Round: bracket.Sweet16, TeamA: &cat, TeamB: &dog, Position: 0, NextMatchupID: &final})
	s.AddMatchup(&bracket.Matchup{ID: 2, Round: bracket.Sweet16, TeamA: &fox, TeamB: &owl, Position: 1, NextMatchupID: &final})
	s.AddMatchup(&bracket.Matchup{ID: 3, Round: bracket.Championship, Position: 0})

	return s, [4]bracket.Team{cat, dog, fox, owl}
}

func TestEnumerateProducesFullOutcomeSpace(t *testing.T) {
	s, _ := miniTournament()

	outcomes, err := enumerate.Enumerate(s)
	require.NoError(t, err)
	// 2 Sweet16 matchups x 2 Championship matchup = 2^3 = 8 outcomes.
	assert.Len(t, outcomes, 8)
}

func TestEnumerateEveryActiveTeamIsChampionSomewhere(t *testing.T) {
	s, teams := miniTournament()

	outcomes, err := enumerate.Enumerate(s)
	require.NoError(t, err)

	champions := make(map[string]bool)
	for _, o := range outcomes {
		for _, r := range o.MatchupResults {
			if r.Round == bracket.Championship {
				champions[r.Winner.Name] = true
			}
		}
	}
	for _, team := range teams {
		assert.True(t, champions[team.Name], "%s must be champion in at least one outcome", team.Name)
	}
}

func TestEnumerateRefusesMoreThanSixteenActiveTeams(t *testing.T) {
	s := bracket.NewTournamentState(2026)
	for i := 0; i < 17; i++ {
		a := bracket.Team{Name: "A" + string(rune('a'+i)), Seed: 1}
		b := bracket.Team{Name: "B" + string(rune('a'+i)), Seed: 2}
		s.AddMatchup(&bracket.Matchup{ID: i + 1, Round: bracket.Sweet16, TeamA: &a, TeamB: &b, Position: i})
	}

	_, err := enumerate.Enumerate(s)
	require.Error(t, err)
	var needSweet16 *enumerate.NeedsSweet16Error
	require.ErrorAs(t, err, &needSweet16)
	assert.Equal(t, 34, needSweet16.ActiveTeams)
}

func TestEnumerateRespectsAlreadyDecidedMatchup(t *testing.T) {
	s, teams := miniTournament()
	m, _ := s.Get(1)
	winner := teams[0]
	m.Winner = &winner
	m3, _ := s.Get(3)
	m3.TeamA = &winner
	s.Teams["Dog"] = &bracket.TeamStatus{Seed: 8, Eliminated: true, EliminationRound: bracket.Sweet16, EliminationMatchupID: 1}

	outcomes, err := enumerate.Enumerate(s)
	require.NoError(t, err)

	for _, o := range outcomes {
		result, ok := o.MatchupResults[1]
		require.True(t, ok)
		assert.True(t, result.Winner.Equal(teams[0]), "a decided matchup's winner must be carried into every outcome unchanged")
	}
	// Only matchup 2 (2 choices) and the championship (2 choices) remain live.
	assert.Len(t, outcomes, 4)
}
