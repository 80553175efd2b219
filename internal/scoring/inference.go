package scoring

import "bracketpool/internal/bracket"

// InferRegion resolves a matchup's scoring-bucket region. Rounds 5-6
// always go to FinalFour. For rounds 1-4, the layered fallback is: the
// matchup's own region field, then the flattened games view, then the
// seed-band convention applied to the winner (state.Teams is not
// consulted: its entries carry a seed but no region); a matchup with
// neither a region nor a winner goes to South. The fallback order keeps detailed
// scoring totals reconcilable with round totals: exactly one bucket wins,
// so no region-level double counting is possible.
func InferRegion(m *bracket.Matchup, games []*bracket.Matchup, state *bracket.TournamentState) bracket.Region {
	if m.Round >= bracket.FinalFourRound {
		return bracket.FinalFour
	}
	if m.Region != "" {
		return m.Region
	}
	for _, g := range games {
		if g.ID == m.ID && g.Region != "" {
			return g.Region
		}
	}
	if m.Winner != nil {
		return bracket.SeedRegionFallback(overallSeedPosition(*m.Winner))
	}
	return bracket.SeedRegionFallback(1)
}

// overallSeedPosition maps a team's in-region seed to its 1-64 overall
// bracket position using the team's own Region field, falling back to the
// South quadrant's numbering when the region is unset.
func overallSeedPosition(t bracket.Team) int {
	offset := 0
	switch t.Region {
	case bracket.East:
		offset = 16
	case bracket.West:
		offset = 32
	case bracket.Midwest:
		offset = 48
	}
	return offset + t.Seed
}
