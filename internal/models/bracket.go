// internal/models/bracket.go
// Submission-facing models: a participant's predicted bracket and its
// per-matchup picks.

package models

import (
	"bracketpool/internal/bracket"
)

// MatchupPick mirrors a bracket.Matchup but Winner is the submitter's
// prediction rather than a recorded result.
type MatchupPick struct {
	MatchupID int           `json:"matchupId" bson:"matchupId"`
	Round     int           `json:"round" bson:"round"`
	Region    bracket.Region `json:"region" bson:"region"`
	Winner    bracket.Team  `json:"winner" bson:"winner"`
}

// Bracket is one participant's full prediction tree, submitted before
// play begins and locked atomically at tournament start.
type Bracket struct {
	ID              string                   `json:"id" bson:"_id"`
	ParticipantName string                   `json:"participantName" bson:"participantName"`
	EntryNumber     int                      `json:"entryNumber" bson:"entryNumber"`
	UserEmail       string                   `json:"userEmail" bson:"userEmail"`
	Picks           map[int][]MatchupPick    `json:"picks" bson:"picks"`
	IsLocked        bool                     `json:"isLocked" bson:"isLocked"`
	Score           int                      `json:"score" bson:"score"`
	EditTokenHash   string                   `json:"-" bson:"editTokenHash"`
}

// PickFor returns the submitter's predicted winner for a given matchup id
// at the given round, and whether a pick exists at all. The Scorer treats
// a missing pick as zero points rather than an error (§7).
func (b *Bracket) PickFor(round, matchupID int) (MatchupPick, bool) {
	for _, p := range b.Picks[round] {
		if p.MatchupID == matchupID {
			return p, true
		}
	}
	return MatchupPick{}, false
}

// ChampionPick returns the submitter's predicted champion (round 6 pick),
// used by the championship-picks histogram and the path analysis.
func (b *Bracket) ChampionPick() (bracket.Team, bool) {
	picks := b.Picks[bracket.Championship]
	if len(picks) == 0 {
		return bracket.Team{}, false
	}
	return picks[0].Winner, true
}
