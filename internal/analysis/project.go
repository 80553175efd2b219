package analysis

import (
	"bracketpool/internal/bracket"
	"bracketpool/internal/enumerate"
)

// projectOutcome overlays an outcome's matchupResults and projectedMatchups
// onto a deep copy of base, producing the hypothetical completed-tournament
// state the Scorer runs against. The returned state is owned by the
// caller; base is never mutated (§4.5 step 1, §5 shared-resource policy).
func projectOutcome(base *bracket.TournamentState, o *enumerate.Outcome) *bracket.TournamentState {
	projected := base.Clone()

	for id, result := range o.MatchupResults {
		m, ok := projected.Get(id)
		if !ok {
			continue
		}
		if m.Winner != nil {
			continue // already recorded in base; nothing to overlay
		}
		w := result.Winner
		m.Winner = &w
	}

	for id, proj := range o.ProjectedMatchups {
		m, ok := projected.Get(id)
		if !ok {
			continue
		}
		if proj.TeamA != nil && m.TeamA == nil {
			a := *proj.TeamA
			m.TeamA = &a
		}
		if proj.TeamB != nil && m.TeamB == nil {
			b := *proj.TeamB
			m.TeamB = &b
		}
	}

	return projected
}
