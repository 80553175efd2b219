package core_test

import (
	"testing"

	"bracketpool/internal/bracket"
	"bracketpool/internal/core"
	"bracketpool/internal/enumerate"
	"bracketpool/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoTeamChampionshipState() *bracket.TournamentState {
	s := bracket.NewTournamentState(2026)
	cat := bracket.Team{Name: "Cat", Seed: 1}
	dog := bracket.Team{Name: "Dog", Seed: 8}
	s.AddMatchup(&bracket.Matchup{ID: 1, Round: bracket.Championship, Position: 0, TeamA: &cat, TeamB: &dog})
	return s
}

func TestApplyResultReturnsUpdatedState(t *testing.T) {
	s := twoTeamChampionshipState()
	a := core.NewAnalyzer(nil)

	next, err := a.ApplyResult(s, 1, bracket.Team{Name: "Cat", Seed: 1}, &bracket.MatchScore{A: 80, B: 70}, true)
	require.NoError(t, err)

	m, ok := next.Get(1)
	require.True(t, ok)
	require.NotNil(t, m.Winner)
	assert.Equal(t, "Cat", m.Winner.Name)
}

func TestApplyResultPropagatesPropagatorError(t *testing.T) {
	s := twoTeamChampionshipState()
	a := core.NewAnalyzer(nil)

	_, err := a.ApplyResult(s, 1, bracket.Team{Name: "Intruder", Seed: 99}, nil, true)
	require.Error(t, err)
	var verr *bracket.ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestAnalyzeReturnsPreconditionErrorAboveSixteenActiveTeams(t *testing.T) {
	s := bracket.NewTournamentState(2026)
	for i := 0; i < 17; i++ {
		a := bracket.Team{Name: string(rune('a' + i)), Seed: 1}
		b := bracket.Team{Name: string(rune('A' + i)), Seed: 2}
		s.AddMatchup(&bracket.Matchup{ID: i + 1, Round: bracket.Sweet16, TeamA: &a, TeamB: &b, Position: i})
	}

	analyzer := core.NewAnalyzer(nil)
	_, err := analyzer.Analyze(s, nil, core.AnalyzeOptions{})

	require.Error(t, err)
	var precondition *core.PreconditionError
	require.ErrorAs(t, err, &precondition)
	assert.Equal(t, 34, precondition.ActiveTeams)
}

func TestAnalyzeReportsCancellation(t *testing.T) {
	s := twoTeamChampionshipState()
	analyzer := core.NewAnalyzer(nil)

	cancel := make(chan struct{})
	close(cancel)

	b := &models.Bracket{
		ID:              "alice",
		ParticipantName: "alice",
		Picks: map[int][]models.MatchupPick{
			bracket.Championship: {{MatchupID: 1, Round: bracket.Championship, Winner: bracket.Team{Name: "Cat", Seed: 1}}},
		},
	}

	_, err := analyzer.Analyze(s, []*models.Bracket{b}, core.AnalyzeOptions{Cancel: cancel})
	require.Error(t, err)
	var cancelled *core.CancelledError
	assert.ErrorAs(t, err, &cancelled)
}

func TestAnalyzeOmitsChampionshipScenariosWhenDisabled(t *testing.T) {
	s := twoTeamChampionshipState()
	analyzer := core.NewAnalyzer(nil)

	report, err := analyzer.Analyze(s, nil, core.AnalyzeOptions{EnableChampionshipScenarios: false})
	require.NoError(t, err)
	assert.Nil(t, report.PathAnalysis.ChampionshipScenarios)
}

func TestRecalculateAllScoresReportsOnlyChangedBrackets(t *testing.T) {
	s := twoTeamChampionshipState()
	_, err := enumerate.Enumerate(s) // sanity: state is valid for the pipeline
	require.NoError(t, err)

	propagated, err := core.NewAnalyzer(nil).ApplyResult(s, 1, bracket.Team{Name: "Cat", Seed: 1}, nil, true)
	require.NoError(t, err)

	stale := &models.Bracket{
		ID:              "alice",
		ParticipantName: "alice",
		Score:           0,
		Picks: map[int][]models.MatchupPick{
			bracket.Championship: {{MatchupID: 1, Round: bracket.Championship, Winner: bracket.Team{Name: "Cat", Seed: 1}}},
		},
	}
	upToDate := &models.Bracket{
		ID:              "bob",
		ParticipantName: "bob",
		Score:           propagated.Weight(bracket.Championship),
		Picks: map[int][]models.MatchupPick{
			bracket.Championship: {{MatchupID: 1, Round: bracket.Championship, Winner: bracket.Team{Name: "Cat", Seed: 1}}},
		},
	}

	changes := core.NewAnalyzer(nil).RecalculateAllScores(propagated, []*models.Bracket{stale, upToDate})
	require.Len(t, changes, 1)
	assert.Equal(t, "alice", changes[0].BracketID)
	assert.Equal(t, propagated.Weight(bracket.Championship), changes[0].NewScore)
}
