package scoring_test

import (
	"testing"

	"bracketpool/internal/bracket"
	"bracketpool/internal/models"
	"bracketpool/internal/scoring"

	"github.com/stretchr/testify/assert"
)

func decidedState() (*bracket.TournamentState, bracket.Team, bracket.Team) {
	s := bracket.NewTournamentState(2026)
	cat := bracket.Team{Name: "Cat", Seed: 1, Region: bracket.South}
	dog := bracket.Team{Name: "Dog", Seed: 8, Region: bracket.South}

	s.AddMatchup(&bracket.Matchup{ID: 1, Round: bracket.Sweet16, Region: bracket.South, TeamA: &cat, TeamB: &dog, Winner: &cat})
	return s, cat, dog
}

func bracketPicking(matchupID, round int, winner bracket.Team) *models.Bracket {
	return &models.Bracket{
		ID:              "b1",
		ParticipantName: "Alice",
		Picks: map[int][]models.MatchupPick{
			round: {{MatchupID: matchupID, Round: round, Winner: winner}},
		},
	}
}

func TestScoreBracketAwardsRoundWeightOnCorrectPick(t *testing.T) {
	s, cat, _ := decidedState()
	b := bracketPicking(1, bracket.Sweet16, cat)

	assert.Equal(t, s.Weight(bracket.Sweet16), scoring.ScoreBracket(b, s))
}

func TestScoreBracketAwardsNothingOnWrongPick(t *testing.T) {
	s, _, dog := decidedState()
	b := bracketPicking(1, bracket.Sweet16, dog)

	assert.Equal(t, 0, scoring.ScoreBracket(b, s))
}

func TestScoreBracketSkipsMissingPickWithoutError(t *testing.T) {
	s, _, _ := decidedState()
	b := &models.Bracket{ID: "b1", ParticipantName: "Alice"}

	assert.Equal(t, 0, scoring.ScoreBracket(b, s))
}

func TestScoreBracketSkipsUndecidedMatchup(t *testing.T) {
	s := bracket.NewTournamentState(2026)
	cat := bracket.Team{Name: "Cat", Seed: 1}
	dog := bracket.Team{Name: "Dog", Seed: 8}
	s.AddMatchup(&bracket.Matchup{ID: 1, Round: bracket.Sweet16, TeamA: &cat, TeamB: &dog})
	b := bracketPicking(1, bracket.Sweet16, cat)

	assert.Equal(t, 0, scoring.ScoreBracket(b, s))
}

func TestScoreDetailedAttributesToRoundAndRegion(t *testing.T) {
	s, cat, _ := decidedState()
	b := bracketPicking(1, bracket.Sweet16, cat)

	d := scoring.ScoreDetailed(b, s)
	assert.Equal(t, s.Weight(bracket.Sweet16), d.RoundScores[bracket.Sweet16])
	assert.Equal(t, s.Weight(bracket.Sweet16), d.RegionScores[bracket.South])
}

func TestScoreDetailedAttributesFinalFourToFinalFourBucket(t *testing.T) {
	s := bracket.NewTournamentState(2026)
	cat := bracket.Team{Name: "Cat", Seed: 1, Region: bracket.South}
	fox := bracket.Team{Name: "Fox", Seed: 2, Region: bracket.East}
	s.AddMatchup(&bracket.Matchup{ID: 1, Round: bracket.FinalFourRound, TeamA: &cat, TeamB: &fox, Winner: &cat})
	b := bracketPicking(1, bracket.FinalFourRound, cat)

	d := scoring.ScoreDetailed(b, s)
	assert.Equal(t, s.Weight(bracket.FinalFourRound), d.RegionScores[bracket.FinalFour])
	assert.Zero(t, d.RegionScores[bracket.South])
}

func TestPossibleScoreCountsUnfinishedPicksOnActiveTeam(t *testing.T) {
	s := bracket.NewTournamentState(2026)
	cat := bracket.Team{Name: "Cat", Seed: 1}
	dog := bracket.Team{Name: "Dog", Seed: 8}
	s.AddMatchup(&bracket.Matchup{ID: 1, Round: bracket.Sweet16, TeamA: &cat, TeamB: &dog})
	b := bracketPicking(1, bracket.Sweet16, cat)

	assert.Equal(t, s.Weight(bracket.Sweet16), scoring.PossibleScore(b, s))
}

func TestPossibleScoreExcludesEliminatedTeamPicks(t *testing.T) {
	s := bracket.NewTournamentState(2026)
	cat := bracket.Team{Name: "Cat", Seed: 1}
	dog := bracket.Team{Name: "Dog", Seed: 8}
	s.AddMatchup(&bracket.Matchup{ID: 1, Round: bracket.Sweet16, TeamA: &cat, TeamB: &dog})
	s.Teams["Cat"] = &bracket.TeamStatus{Seed: 1, Eliminated: true}
	b := bracketPicking(1, bracket.Sweet16, cat)

	assert.Equal(t, 0, scoring.PossibleScore(b, s))
}
