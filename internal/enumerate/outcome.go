// Package enumerate expands a tournament state's residual, undecided
// matchups into every consistent completion of the bracket — the outcome
// space the analyzer scores every bracket against.
package enumerate

import "bracketpool/internal/bracket"

// MatchupResult is a committed winner assignment inside an Outcome: either
// copied from an already-decided matchup in the state, or assigned during
// expansion.
type MatchupResult struct {
	Winner bracket.Team
	Round  int
}

// ProjectedMatchup is a future-round matchup whose team slots are filled
// by an outcome's assumed propagation rather than by the current state.
type ProjectedMatchup struct {
	TeamA *bracket.Team
	TeamB *bracket.Team
	Round int
}

// Outcome is one complete, consistent assignment of winners to every
// remaining live matchup, with propagation implied.
type Outcome struct {
	MatchupResults    map[int]MatchupResult
	ProjectedMatchups map[int]ProjectedMatchup
}

func newOutcome() *Outcome {
	return &Outcome{
		MatchupResults:    make(map[int]MatchupResult),
		ProjectedMatchups: make(map[int]ProjectedMatchup),
	}
}

// clone deep-copies an outcome so expansion never aliases a projection map
// across successors (§4.4 step 2c, §9 "Projected matchups").
func (o *Outcome) clone() *Outcome {
	c := newOutcome()
	for id, r := range o.MatchupResults {
		c.MatchupResults[id] = r
	}
	for id, p := range o.ProjectedMatchups {
		pc := p
		if p.TeamA != nil {
			a := *p.TeamA
			pc.TeamA = &a
		}
		if p.TeamB != nil {
			b := *p.TeamB
			pc.TeamB = &b
		}
		c.ProjectedMatchups[id] = pc
	}
	return c
}

// NeedsSweet16Error is returned when Enumerate is asked to run with more
// than 16 active teams remaining — i.e. before the Sweet 16 round has
// started. This keeps the 2^k outcome blow-up bounded.
type NeedsSweet16Error struct {
	ActiveTeams int
}

func (e *NeedsSweet16Error) Error() string {
	return "enumerate: refusing to run with more than 16 active teams remaining"
}

// Enumerate produces every consistent completion of the residual bracket
// tree from state's current round forward, per spec.md §4.4.
func Enumerate(state *bracket.TournamentState) ([]*Outcome, error) {
	currentRound := state.DetermineCurrentRound()

	active := state.GetActiveTeams(currentRound)
	if len(active) > 16 {
		return nil, &NeedsSweet16Error{ActiveTeams: len(active)}
	}

	seed := newOutcome()
	for _, m := range state.Games() {
		if m.Winner != nil {
			seed.MatchupResults[m.ID] = MatchupResult{Winner: *m.Winner, Round: m.Round}
			continue
		}
		if m.TeamA != nil || m.TeamB != nil {
			seed.ProjectedMatchups[m.ID] = ProjectedMatchup{TeamA: m.TeamA, TeamB: m.TeamB, Round: m.Round}
		}
	}

	outcomes := []*Outcome{seed}
	for round := currentRound; round <= bracket.Championship; round++ {
		outcomes = processRound(state, outcomes, round)
	}

	if err := validateChampionCoverage(state, outcomes); err != nil {
		return nil, err
	}

	return outcomes, nil
}

// liveMatchup is a round-r matchup with both teams resolved (directly in
// state or via an outcome's projection) but no winner yet.
type liveMatchup struct {
	id            int
	round         int
	teamA, teamB  bracket.Team
	nextMatchupID *int
}

// processRound expands every input outcome into 2^k successors, where k is
// the number of round-r matchups that have both teams but no winner.
func processRound(state *bracket.TournamentState, outcomes []*Outcome, round int) []*Outcome {
	stateMatchups := state.ByRound(round)

	var out []*Outcome
	for _, o := range outcomes {
		live := liveMatchupsForOutcome(stateMatchups, o, round)
		k := len(live)
		if k == 0 {
			out = append(out, o)
			continue
		}
		for bits := 0; bits < (1 << uint(k)); bits++ {
			successor := o.clone()
			for i, lm := range live {
				var winner bracket.Team
				if (bits>>uint(i))&1 == 0 {
					winner = lm.teamA
				} else {
					winner = lm.teamB
				}
				successor.MatchupResults[lm.id] = MatchupResult{Winner: winner, Round: lm.round}
				delete(successor.ProjectedMatchups, lm.id)

				if lm.nextMatchupID != nil {
					propagateIntoSuccessor(state, successor, lm.id, *lm.nextMatchupID, winner)
				}
			}
			out = append(out, successor)
		}
	}
	return out
}

// liveMatchupsForOutcome collects round-r matchups with both teams set,
// resolved either directly from the state or via the outcome's own
// projectedMatchups map, and not yet decided in this outcome.
func liveMatchupsForOutcome(stateMatchups []*bracket.Matchup, o *Outcome, round int) []liveMatchup {
	var live []liveMatchup
	seen := make(map[int]bool)

	for _, m := range stateMatchups {
		if _, decided := o.MatchupResults[m.ID]; decided {
			continue
		}
		if m.TeamA != nil && m.TeamB != nil {
			live = append(live, liveMatchup{id: m.ID, round: round, teamA: *m.TeamA, teamB: *m.TeamB, nextMatchupID: m.NextMatchupID})
			seen[m.ID] = true
		}
	}

	for id, p := range o.ProjectedMatchups {
		if seen[id] || p.Round != round {
			continue
		}
		if _, decided := o.MatchupResults[id]; decided {
			continue
		}
		if p.TeamA != nil && p.TeamB != nil {
			var nextID *int
			if m, ok := findMatchup(stateMatchups, id); ok {
				nextID = m.NextMatchupID
			}
			live = append(live, liveMatchup{id: id, round: round, teamA: *p.TeamA, teamB: *p.TeamB, nextMatchupID: nextID})
		}
	}
	return live
}

func findMatchup(matchups []*bracket.Matchup, id int) (*bracket.Matchup, bool) {
	for _, m := range matchups {
		if m.ID == id {
			return m, true
		}
	}
	return nil, false
}

// propagateIntoSuccessor records a newly-decided matchup's winner into its
// successor's A/B projected slot, using the successor matchup's own
// position parity (looked up from state, since position is static graph
// structure shared by every outcome).
func propagateIntoSuccessor(state *bracket.TournamentState, o *Outcome, decidedID, nextID int, winner bracket.Team) {
	decided, ok := state.Get(decidedID)
	if !ok {
		return
	}
	next, ok := state.Get(nextID)
	if !ok {
		return
	}

	proj := o.ProjectedMatchups[nextID]
	proj.Round = next.Round
	w := winner
	switch decided.Slot() {
	case bracket.SlotA:
		proj.TeamA = &w
	case bracket.SlotB:
		proj.TeamB = &w
	}
	o.ProjectedMatchups[nextID] = proj
}

// validateChampionCoverage asserts every currently-active team appears as
// champion in at least one outcome (§4.4 Validation, §8 property 2).
func validateChampionCoverage(state *bracket.TournamentState, outcomes []*Outcome) error {
	currentRound := state.DetermineCurrentRound()
	champion := func(o *Outcome) (bracket.Team, bool) {
		for id, r := range o.MatchupResults {
			if r.Round == bracket.Championship {
				_ = id
				return r.Winner, true
			}
		}
		return bracket.Team{}, false
	}

	covered := make(map[string]bool)
	for _, o := range outcomes {
		if t, ok := champion(o); ok {
			covered[t.Name] = true
		}
	}

	for _, t := range state.GetActiveTeams(currentRound) {
		if !covered[t.Name] {
			return &bracket.InternalError{Message: "active team " + t.Name + " is champion in zero outcomes"}
		}
	}
	return nil
}
