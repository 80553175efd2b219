package analysis

import (
	"testing"

	"bracketpool/internal/bracket"
	"bracketpool/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPodiumContendersExcludesZeroPercentAndSortsDescending(t *testing.T) {
	results := []BracketResult{
		{Bracket: &models.Bracket{ID: "a", ParticipantName: "Alice"}, PlacePercentages: PlacePercentages{Podium: 40}},
		{Bracket: &models.Bracket{ID: "b", ParticipantName: "Bob"}, PlacePercentages: PlacePercentages{Podium: 0}},
		{Bracket: &models.Bracket{ID: "c", ParticipantName: "Cara"}, PlacePercentages: PlacePercentages{Podium: 90}},
	}

	out := PodiumContenders(results)
	require.Len(t, out, 2)
	assert.Equal(t, "c", out[0].BracketID)
	assert.Equal(t, "a", out[1].BracketID)
}

func TestPodiumContendersBreaksTiesByParticipantName(t *testing.T) {
	results := []BracketResult{
		{Bracket: &models.Bracket{ID: "z", ParticipantName: "Zed"}, PlacePercentages: PlacePercentages{Podium: 50}},
		{Bracket: &models.Bracket{ID: "a", ParticipantName: "Amy"}, PlacePercentages: PlacePercentages{Podium: 50}},
	}

	out := PodiumContenders(results)
	require.Len(t, out, 2)
	assert.Equal(t, "Amy", out[0].ParticipantName)
}

func TestPlayersWithNoPodiumChanceCountsOnlyZero(t *testing.T) {
	results := []BracketResult{
		{PlacePercentages: PlacePercentages{Podium: 0}},
		{PlacePercentages: PlacePercentages{Podium: 1}},
		{PlacePercentages: PlacePercentages{Podium: 0}},
	}
	assert.Equal(t, 2, PlayersWithNoPodiumChance(results))
}

func TestChampionshipPicksHistogramsAndSortsByCount(t *testing.T) {
	catPick := func(id string) *models.Bracket {
		return &models.Bracket{ID: id, Picks: map[int][]models.MatchupPick{
			bracket.Championship: {{Winner: bracket.Team{Name: "Cat", Seed: 1}}},
		}}
	}
	foxPick := &models.Bracket{ID: "fox-picker", Picks: map[int][]models.MatchupPick{
		bracket.Championship: {{Winner: bracket.Team{Name: "Fox", Seed: 2}}},
	}}
	noPick := &models.Bracket{ID: "no-pick"}

	out := ChampionshipPicks([]*models.Bracket{catPick("a"), catPick("b"), foxPick, noPick})
	require.Len(t, out, 2)
	assert.Equal(t, "Cat (1)", out[0].Team)
	assert.Equal(t, 2, out[0].Count)
	assert.InDelta(t, 66.67, out[0].Percentage, 0.01)
	assert.Equal(t, "Fox (2)", out[1].Team)
}

func TestRareCorrectPicksFindsOnlyLowPercentageCorrectCalls(t *testing.T) {
	s := bracket.NewTournamentState(2026)
	cat := bracket.Team{Name: "Cat", Seed: 1}
	dog := bracket.Team{Name: "Dog", Seed: 16}
	s.AddMatchup(&bracket.Matchup{ID: 1, Round: bracket.RoundOf64, TeamA: &cat, TeamB: &dog, Winner: &dog})

	brackets := make([]*models.Bracket, 0, 20)
	for i := 0; i < 19; i++ {
		brackets = append(brackets, &models.Bracket{
			ID:              "wrong" + string(rune('a'+i)),
			ParticipantName: "wrong" + string(rune('a'+i)),
			Picks: map[int][]models.MatchupPick{
				bracket.RoundOf64: {{MatchupID: 1, Round: bracket.RoundOf64, Winner: cat}},
			},
		})
	}
	brackets = append(brackets, &models.Bracket{
		ID:              "upset-caller",
		ParticipantName: "upset-caller",
		Picks: map[int][]models.MatchupPick{
			bracket.RoundOf64: {{MatchupID: 1, Round: bracket.RoundOf64, Winner: dog}},
		},
	})

	out := RareCorrectPicks(s, brackets)
	require.Len(t, out, 1)
	assert.Equal(t, 1, out[0].CorrectPicks)
	assert.Equal(t, 20, out[0].TotalPicks)
	assert.Equal(t, []string{"upset-caller"}, out[0].CorrectPicksByUser)
}

func TestRareCorrectPicksExcludesUnanimousOrZeroPercentCalls(t *testing.T) {
	s := bracket.NewTournamentState(2026)
	cat := bracket.Team{Name: "Cat", Seed: 1}
	dog := bracket.Team{Name: "Dog", Seed: 16}
	s.AddMatchup(&bracket.Matchup{ID: 1, Round: bracket.RoundOf64, TeamA: &cat, TeamB: &dog, Winner: &cat})

	brackets := []*models.Bracket{
		{ID: "a", ParticipantName: "a", Picks: map[int][]models.MatchupPick{
			bracket.RoundOf64: {{MatchupID: 1, Round: bracket.RoundOf64, Winner: cat}},
		}},
	}

	assert.Empty(t, RareCorrectPicks(s, brackets), "a unanimous correct call is not rare")

	m, _ := s.Get(1)
	m.Winner = &dog
	assert.Empty(t, RareCorrectPicks(s, brackets), "a call nobody got right is not rare")
}
