package models_test

import (
	"testing"

	"bracketpool/internal/bracket"
	"bracketpool/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestPickForFindsMatchByRoundAndMatchupID(t *testing.T) {
	cat := bracket.Team{Name: "Cat", Seed: 1}
	b := &models.Bracket{Picks: map[int][]models.MatchupPick{
		bracket.Sweet16: {{MatchupID: 5, Round: bracket.Sweet16, Winner: cat}},
	}}

	pick, ok := b.PickFor(bracket.Sweet16, 5)
	assert.True(t, ok)
	assert.True(t, pick.Winner.Equal(cat))

	_, ok = b.PickFor(bracket.Sweet16, 999)
	assert.False(t, ok)
}

func TestChampionPickReturnsRoundSixWinner(t *testing.T) {
	cat := bracket.Team{Name: "Cat", Seed: 1}
	b := &models.Bracket{Picks: map[int][]models.MatchupPick{
		bracket.Championship: {{MatchupID: 1, Round: bracket.Championship, Winner: cat}},
	}}

	champ, ok := b.ChampionPick()
	assert.True(t, ok)
	assert.True(t, champ.Equal(cat))
}

func TestChampionPickMissingWhenNoChampionshipPick(t *testing.T) {
	b := &models.Bracket{Picks: map[int][]models.MatchupPick{}}
	_, ok := b.ChampionPick()
	assert.False(t, ok)
}
