package analysis

import (
	"testing"

	"bracketpool/internal/bracket"
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

func pickTeam(bracketID, teamName string, seed int) *models.Bracket {
	return &models.Bracket{
		ID:              bracketID,
		ParticipantName: bracketID,
		Picks: map[int][]models.MatchupPick{
			bracket.Championship: {{MatchupID: 1, Round: bracket.Championship, Winner: bracket.Team{Name: teamName, Seed: seed}}},
		},
	}
}

func pickCat(bracketID string) *models.Bracket {
	return pickTeam(bracketID, "Cat", 1)
}

func TestAnalyzeComputesWinPercentageAcrossOutcomes(t *testing.T) {
	s := twoTeamChampionshipState()
	outcomes, err := enumerate.Enumerate(s)
	require.NoError(t, err)
	require.Len(t, outcomes, 2)

	// Alice picks Cat, Bob picks Dog: each wins the pool in exactly the
	// outcome where their pick takes the championship.
	brackets := []*models.Bracket{pickCat("alice"), pickTeam("bob", "Dog", 8)}
	result := Analyze(s, brackets, outcomes, make(chan struct{}))

	require.Len(t, result.BracketResults, 2)
	for _, br := range result.BracketResults {
		assert.Equal(t, 50.0, br.WinPercentage, "each picker wins the single outcome where their champion comes in")
		assert.Equal(t, 100.0, br.PlacePercentages.Podium)
	}
}

func TestAnalyzeAppliesOlympicTiePlacement(t *testing.T) {
	s := twoTeamChampionshipState()
	outcomes, err := enumerate.Enumerate(s)
	require.NoError(t, err)

	// Both brackets pick the same team, so they tie in every outcome: both
	// place 1st, nobody places 2nd.
	brackets := []*models.Bracket{pickCat("alice"), pickCat("bob")}
	result := Analyze(s, brackets, outcomes, make(chan struct{}))

	for _, br := range result.BracketResults {
		assert.Equal(t, 1, br.MinPlace)
		assert.Equal(t, 1, br.MaxPlace)
	}
}

func TestAnalyzeDropsMalformedBracketsWithWarning(t *testing.T) {
	s := twoTeamChampionshipState()
	outcomes, err := enumerate.Enumerate(s)
	require.NoError(t, err)

	malformed := &models.Bracket{ID: "broken"}
	brackets := []*models.Bracket{pickCat("alice"), malformed}
	result := Analyze(s, brackets, outcomes, make(chan struct{}))

	assert.Len(t, result.BracketResults, 1)
	require.Len(t, result.Warnings, 1)
	assert.Equal(t, "broken", result.Warnings[0].BracketID)
}

func TestAnalyzeHonorsCancellation(t *testing.T) {
	s := twoTeamChampionshipState()
	outcomes, err := enumerate.Enumerate(s)
	require.NoError(t, err)

	cancel := make(chan struct{})
	close(cancel)

	result := Analyze(s, []*models.Bracket{pickCat("alice")}, outcomes, cancel)
	assert.True(t, result.Cancelled)
}

func TestApplyOlympicPlacementSkipsPlacesForTiedGroup(t *testing.T) {
	accs := []*accumulator{newAccumulator(), newAccumulator(), newAccumulator()}
	// Two brackets tie for 1st -> the next bracket must be placed 3rd, not
	// 2nd.
	applyOlympicPlacement(accs, []int{10, 10, 5})

	assert.Equal(t, 1, accs[0].minPlace)
	assert.Equal(t, 1, accs[1].minPlace)
	assert.Equal(t, 3, accs[2].minPlace)
}
