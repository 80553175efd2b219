// Package propagator applies completed game results to a TournamentState:
// it records the winner, flips elimination flags, forward-propagates the
// winner into the next matchup's A or B slot, and recomputes which rounds
// are complete. It is the sole owner of TournamentState mutation (§3
// Ownership).
package propagator

import (
	"strconv"
	"strings"
	"time"

	"bracketpool/internal/bracket"
)

// ApplyResult records a completed (or amended) result for matchupID and
// forward-propagates the winner, per spec.md §4.2. It mutates state in
// place and also returns it for convenient chaining.
func ApplyResult(state *bracket.TournamentState, matchupID int, winner bracket.Team, score *bracket.MatchScore, completed bool) (*bracket.TournamentState, error) {
	m, ok := state.Get(matchupID)
	if !ok {
		return nil, &bracket.NotFoundError{Kind: "matchup", ID: strconv.Itoa(matchupID)}
	}

	if completed {
		if !isParticipant(m, winner) {
			return nil, &bracket.ValidationError{
				Field:   "winner",
				Message: "winner is not one of the matchup's participants",
			}
		}
	}

	// Step 1: record winner/completed/playedAt/score. Since ByRound/Games
	// are views over the same arena pointer, this single write is visible
	// from both.
	now := time.Now()
	w := winner
	m.Winner = &w
	m.Score = score
	m.PlayedAt = &now

	// Step 2: elimination bookkeeping, including the amendment case where a
	// previously recorded winner is overturned (S5): the new winner's
	// elimination fields are cleared, the new loser is marked eliminated,
	// and the matchup's other slot (now the loser) is computed fresh each
	// call rather than assumed from history.
	var loser *bracket.Team
	if m.TeamA != nil && !sameTeam(*m.TeamA, winner) {
		loser = m.TeamA
	} else if m.TeamB != nil && !sameTeam(*m.TeamB, winner) {
		loser = m.TeamB
	}

	ensureTeamStatus(state, winner)
	winnerStatus := state.Teams[winner.Name]
	winnerStatus.Eliminated = false
	winnerStatus.EliminationRound = 0
	winnerStatus.EliminationMatchupID = 0

	if loser != nil {
		ensureTeamStatus(state, *loser)
		loserStatus := state.Teams[loser.Name]
		loserStatus.Eliminated = true
		loserStatus.EliminationRound = m.Round
		loserStatus.EliminationMatchupID = m.ID
	}

	// Step 3: forward-propagate into the successor's A/B slot. A previous
	// occupant of that slot is displaced, not unwound: its own downstream
	// propagation (if it had already advanced further) is left in place
	// per §4.2/§9 — the caller is expected to re-apply successor results.
	if m.NextMatchupID != nil {
		next, ok := state.Get(*m.NextMatchupID)
		if !ok {
			return nil, &bracket.InternalError{Message: "nextMatchupId references a missing matchup"}
		}
		slotWinner := winner
		switch bracket.SlotOfChild(m) {
		case bracket.SlotA:
			next.TeamA = &slotWinner
		case bracket.SlotB:
			next.TeamB = &slotWinner
		}
	}

	// Step 4: recompute completedRounds.
	recomputeCompletedRounds(state)

	state.LastUpdated = now
	return state, nil
}

func recomputeCompletedRounds(state *bracket.TournamentState) {
	results := state.Results()
	for round, matchups := range results {
		complete := len(matchups) > 0
		for _, m := range matchups {
			if m.Winner == nil {
				complete = false
				break
			}
		}
		state.CompletedRounds[round] = complete
	}
}

func ensureTeamStatus(state *bracket.TournamentState, t bracket.Team) {
	if state.Teams == nil {
		state.Teams = make(map[string]*bracket.TeamStatus)
	}
	if _, ok := state.Teams[t.Name]; !ok {
		state.Teams[t.Name] = &bracket.TeamStatus{Seed: t.Seed}
	}
}

// isParticipant reports whether winner matches teamA or teamB of m, by
// name-and-seed equality after trim/lowercase on name.
func isParticipant(m *bracket.Matchup, winner bracket.Team) bool {
	return (m.TeamA != nil && sameTeam(*m.TeamA, winner)) ||
		(m.TeamB != nil && sameTeam(*m.TeamB, winner))
}

func sameTeam(a, b bracket.Team) bool {
	return normalizeName(a.Name) == normalizeName(b.Name) && a.Seed == b.Seed
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
