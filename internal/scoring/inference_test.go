package scoring

import (
	"testing"

	"bracketpool/internal/bracket"

	"github.com/stretchr/testify/assert"
)

func TestInferRegionAlwaysUsesFinalFourBucketForLateRounds(t *testing.T) {
	m := &bracket.Matchup{Round: bracket.FinalFourRound, Region: bracket.South}
	assert.Equal(t, bracket.FinalFour, InferRegion(m, nil, bracket.NewTournamentState(2026)))
}

func TestInferRegionPrefersMatchupsOwnRegion(t *testing.T) {
	m := &bracket.Matchup{Round: bracket.Sweet16, Region: bracket.West}
	assert.Equal(t, bracket.West, InferRegion(m, nil, bracket.NewTournamentState(2026)))
}

func TestInferRegionFallsBackToGamesView(t *testing.T) {
	m := &bracket.Matchup{ID: 1, Round: bracket.Sweet16}
	games := []*bracket.Matchup{{ID: 1, Region: bracket.Midwest}}
	assert.Equal(t, bracket.Midwest, InferRegion(m, games, bracket.NewTournamentState(2026)))
}

func TestInferRegionFallsBackToSeedBandViaWinner(t *testing.T) {
	winner := bracket.Team{Name: "Cat", Seed: 3, Region: bracket.East}
	m := &bracket.Matchup{ID: 1, Round: bracket.Sweet16, Winner: &winner}
	assert.Equal(t, bracket.SeedRegionFallback(overallSeedPosition(winner)), InferRegion(m, nil, bracket.NewTournamentState(2026)))
}
