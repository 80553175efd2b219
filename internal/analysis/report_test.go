package analysis

import (
	"testing"
	"time"

	"bracketpool/internal/bracket"
	"bracketpool/internal/enumerate"
	"bracketpool/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildReportMarksCompleteWhenChampionshipDecided(t *testing.T) {
	s := bracket.NewTournamentState(2026)
	cat := bracket.Team{Name: "Cat", Seed: 1}
	dog := bracket.Team{Name: "Dog", Seed: 8}
	s.AddMatchup(&bracket.Matchup{ID: 1, Round: bracket.Championship, TeamA: &cat, TeamB: &dog, Winner: &cat})
	s.Teams["Dog"] = &bracket.TeamStatus{Seed: 8, Eliminated: true, EliminationRound: bracket.Championship, EliminationMatchupID: 1}
	s.CompletedRounds[bracket.FinalFourRound] = true

	outcomes, err := enumerate.Enumerate(s)
	require.NoError(t, err)
	result := Analyze(s, nil, outcomes, make(chan struct{}))

	report := BuildReport(s, nil, result, time.Now())
	assert.Equal(t, "championship", report.Stage)
	assert.Equal(t, bracket.Championship, report.CurrentRound)
	assert.Equal(t, "1/1 games complete", report.RoundProgress)
}

func TestBuildReportOmitsChampionshipScenariosBeforeFinalFour(t *testing.T) {
	s := bracket.NewTournamentState(2026)
	cat := bracket.Team{Name: "Cat", Seed: 1}
	dog := bracket.Team{Name: "Dog", Seed: 8}
	fox := bracket.Team{Name: "Fox", Seed: 2}
	owl := bracket.Team{Name: "Owl", Seed: 7}

	champ := 3
	s.AddMatchup(&bracket.Matchup{ID: 1, Round: bracket.Sweet16, Position: 0, TeamA: &cat, TeamB: &dog, NextMatchupID: &champ})
	s.AddMatchup(&bracket.Matchup{ID: 2, Round: bracket.Sweet16, Position: 1, TeamA: &fox, TeamB: &owl, NextMatchupID: &champ})
	s.AddMatchup(&bracket.Matchup{ID: 3, Round: bracket.Championship, Position: 0})

	outcomes, err := enumerate.Enumerate(s)
	require.NoError(t, err)
	result := Analyze(s, nil, outcomes, make(chan struct{}))

	report := BuildReport(s, nil, result, time.Now())
	assert.Equal(t, bracket.Sweet16, report.CurrentRound)
	assert.Nil(t, report.PathAnalysis.ChampionshipScenarios)
}

func TestBuildReportIncludesChampionshipScenariosAtFinalFour(t *testing.T) {
	s := bracket.NewTournamentState(2026)
	cat := bracket.Team{Name: "Cat", Seed: 1}
	dog := bracket.Team{Name: "Dog", Seed: 8}
	fox := bracket.Team{Name: "Fox", Seed: 2}
	owl := bracket.Team{Name: "Owl", Seed: 7}

	champ := 3
	s.AddMatchup(&bracket.Matchup{ID: 1, Round: bracket.FinalFourRound, Position: 0, TeamA: &cat, TeamB: &dog, NextMatchupID: &champ})
	s.AddMatchup(&bracket.Matchup{ID: 2, Round: bracket.FinalFourRound, Position: 1, TeamA: &fox, TeamB: &owl, NextMatchupID: &champ})
	s.AddMatchup(&bracket.Matchup{ID: 3, Round: bracket.Championship, Position: 0})
	s.CompletedRounds[bracket.EliteEight] = true

	b := &models.Bracket{ID: "alice", ParticipantName: "alice", Picks: map[int][]models.MatchupPick{
		bracket.Championship: {{MatchupID: 3, Round: bracket.Championship, Winner: cat}},
	}}

	outcomes, err := enumerate.Enumerate(s)
	require.NoError(t, err)
	result := Analyze(s, []*models.Bracket{b}, outcomes, make(chan struct{}))

	report := BuildReport(s, []*models.Bracket{b}, result, time.Now())
	scenarios := report.PathAnalysis.ChampionshipScenarios
	require.NotEmpty(t, scenarios, "Final Four has started, scenarios must populate")

	pairs := make(map[string]bool)
	for _, scenario := range scenarios {
		key := scenario.Matchup.TeamA + "," + scenario.Matchup.TeamB
		assert.False(t, pairs[key], "each legal pairing should appear exactly once")
		pairs[key] = true

		for _, outcome := range scenario.Outcomes {
			assert.Contains(t, []string{scenario.Matchup.TeamA, scenario.Matchup.TeamB}, outcome.Winner)
			assert.NotEmpty(t, outcome.BracketImpacts, "each winner scenario ranks at least one bracket")
		}
	}
	assert.Len(t, pairs, 4, "two independent Final Four games produce four legal pairings")
}
