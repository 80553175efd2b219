// Package scoring computes a bracket's score against a tournament state:
// the total score, a round/region-decomposed breakdown, a from-scratch
// projected score against a hypothetical outcome, and an upper-bound
// "possible" score used by standings.
package scoring

import (
	"bracketpool/internal/bracket"
	"bracketpool/internal/models"
)

// ScoreBracket computes the bracket's total score against state: for every
// completed matchup, if the bracket's pick for that matchup matches the
// recorded winner by name and seed, its round weight is added. Missing
// picks and missing matchups are skipped, never an error (§7).
func ScoreBracket(b *models.Bracket, state *bracket.TournamentState) int {
	total := 0
	for round, matchups := range state.Results() {
		for _, m := range matchups {
			if m.Winner == nil {
				continue
			}
			pick, ok := b.PickFor(round, m.ID)
			if !ok {
				continue
			}
			if pick.Winner.Equal(*m.Winner) {
				total += state.Weight(round)
			}
		}
	}
	return total
}

// Detail is the round- and region-decomposed score breakdown produced by
// ScoreDetailed.
type Detail struct {
	RoundScores  map[int]int            `json:"roundScores"`
	RegionScores map[bracket.Region]int `json:"regionScores"`
}

// ScoreDetailed mirrors ScoreBracket's correctness logic but attributes
// each awarded point to its round and to the matchup's region. Rounds 5-6
// always attribute to FinalFour. When a round 1-4 matchup lacks an
// explicit region, the region is inferred per the layered fallback in
// inference.go so points are never double-counted.
func ScoreDetailed(b *models.Bracket, state *bracket.TournamentState) Detail {
	d := Detail{
		RoundScores:  make(map[int]int),
		RegionScores: make(map[bracket.Region]int),
	}
	games := state.Games()
	for round, matchups := range state.Results() {
		for _, m := range matchups {
			if m.Winner == nil {
				continue
			}
			pick, ok := b.PickFor(round, m.ID)
			if !ok || !pick.Winner.Equal(*m.Winner) {
				continue
			}
			weight := state.Weight(round)
			d.RoundScores[round] += weight

			region := InferRegion(m, games, state)
			d.RegionScores[region] += weight
		}
	}
	return d
}

// ScoreProjected computes a bracket's score from scratch across all six
// rounds against a hypothetical (outcome-projected) state. It never reads
// or adds to bracket.Score: the legacy code base contained two competing
// implementations of this calculation, one of which added the bracket's
// stored score as a base. That variant is a latent double-count bug
// whenever Score already reflects completed rounds; this implementation
// always recomputes from scratch.
func ScoreProjected(b *models.Bracket, projected *bracket.TournamentState) int {
	return ScoreBracket(b, projected)
}

// PossibleScore computes the standings upper bound: for every unfinished
// matchup in the bracket's picks, if the picked winner's team is still
// active, the matchup's weight contributes to the bound. This is not used
// by the Analyzer, which instead enumerates the full outcome space.
func PossibleScore(b *models.Bracket, state *bracket.TournamentState) int {
	total := ScoreBracket(b, state)
	currentRound := state.DetermineCurrentRound()
	active := make(map[string]bool)
	for _, t := range state.GetActiveTeams(currentRound) {
		active[t.Name] = true
	}
	for round, picks := range b.Picks {
		for _, pick := range picks {
			m, ok := state.Get(pick.MatchupID)
			if !ok || m.Winner != nil {
				continue
			}
			if active[pick.Winner.Name] {
				total += state.Weight(round)
			}
		}
	}
	return total
}
