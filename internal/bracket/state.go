package bracket

import "time"

// TournamentState is the full bracket graph plus elimination bookkeeping
// for one tournament year. Matchups are stored once, in a flat arena keyed
// by id; ByRound and Games are derived views over the same pointers so a
// winner written through one view is visible through the other.
type TournamentState struct {
	Year            int               `json:"year" bson:"year"`
	arena           map[int]*Matchup  // id -> matchup, single source of truth
	Teams           map[string]*TeamStatus `json:"teams" bson:"teams"`
	CompletedRounds map[int]bool      `json:"completedRounds" bson:"completedRounds"`
	ScoringConfig   map[int]int       `json:"scoringConfig" bson:"scoringConfig"`
	LastUpdated     time.Time         `json:"lastUpdated" bson:"lastUpdated"`
}

// NewTournamentState creates an empty state for a given year with default
// scoring weights.
func NewTournamentState(year int) *TournamentState {
	return &TournamentState{
		Year:            year,
		arena:           make(map[int]*Matchup),
		Teams:           make(map[string]*TeamStatus),
		CompletedRounds: make(map[int]bool),
		ScoringConfig:   DefaultScoringConfig(),
		LastUpdated:     time.Now(),
	}
}

// AddMatchup inserts or replaces a matchup in the arena, keyed by its ID.
// Used at seed time and when reconstituting state from a persisted
// document.
func (s *TournamentState) AddMatchup(m *Matchup) {
	if s.arena == nil {
		s.arena = make(map[int]*Matchup)
	}
	s.arena[m.ID] = m
}

// Get looks up a matchup by id alone.
func (s *TournamentState) Get(id int) (*Matchup, bool) {
	m, ok := s.arena[id]
	return m, ok
}

// MustGet panics if the matchup is missing; reserved for call sites that
// have already validated existence (e.g. following a NextMatchupID link
// the propagator just wrote).
func (s *TournamentState) MustGet(id int) *Matchup {
	m, ok := s.arena[id]
	if !ok {
		panic("bracket: matchup not found in arena: invariant violation")
	}
	return m
}

// ByRound returns every matchup at the given round. Order is by id,
// ascending, for deterministic iteration.
func (s *TournamentState) ByRound(round int) []*Matchup {
	var out []*Matchup
	for _, m := range s.arena {
		if m.Round == round {
			out = append(out, m)
		}
	}
	sortMatchupsByID(out)
	return out
}

// Results mirrors the data model's `results: map<round, list<Matchup>>`
// view, grouping the arena by round.
func (s *TournamentState) Results() map[int][]*Matchup {
	out := make(map[int][]*Matchup)
	for _, m := range s.arena {
		out[m.Round] = append(out[m.Round], m)
	}
	for round := range out {
		sortMatchupsByID(out[round])
	}
	return out
}

// Games mirrors the data model's flattened `games` view: every matchup
// across all rounds, ordered by id.
func (s *TournamentState) Games() []*Matchup {
	out := make([]*Matchup, 0, len(s.arena))
	for _, m := range s.arena {
		out = append(out, m)
	}
	sortMatchupsByID(out)
	return out
}

func sortMatchupsByID(ms []*Matchup) {
	for i := 1; i < len(ms); i++ {
		for j := i; j > 0 && ms[j-1].ID > ms[j].ID; j-- {
			ms[j-1], ms[j] = ms[j], ms[j-1]
		}
	}
}

// IsLive reports whether a matchup has both teams set but no winner yet.
func IsLive(m *Matchup) bool {
	return m.TeamA != nil && m.TeamB != nil && m.Winner == nil
}

// SlotOfChild is an alias for Matchup.Slot kept at package level to match
// the §4.1 interface name (slotOfChild(parent) -> A|B).
func SlotOfChild(parent *Matchup) Slot {
	return parent.Slot()
}

// GetActiveTeams returns the de-duplicated set of teams still alive: teams
// appearing in some matchup at round >= currentRound that are not flagged
// eliminated.
func (s *TournamentState) GetActiveTeams(currentRound int) []Team {
	seen := make(map[string]bool)
	var out []Team
	for _, m := range s.arena {
		if m.Round < currentRound {
			continue
		}
		for _, t := range [2]*Team{m.TeamA, m.TeamB} {
			if t == nil || seen[t.Name] {
				continue
			}
			if status, ok := s.Teams[t.Name]; ok && status.Eliminated {
				continue
			}
			seen[t.Name] = true
			out = append(out, *t)
		}
	}
	return out
}

// DetermineCurrentRound returns the largest round r such that round r-1 is
// complete, defaulting to Sweet16 (the minimum round in analysis scope).
func (s *TournamentState) DetermineCurrentRound() int {
	current := Sweet16
	for r := Sweet16; r <= Championship; r++ {
		if s.CompletedRounds[r-1] {
			current = r
		}
	}
	return current
}

// Clone deep-copies the entire state so analyzer projections never mutate
// the shared, canonical TournamentState.
func (s *TournamentState) Clone() *TournamentState {
	out := &TournamentState{
		Year:            s.Year,
		arena:           make(map[int]*Matchup, len(s.arena)),
		Teams:           make(map[string]*TeamStatus, len(s.Teams)),
		CompletedRounds: make(map[int]bool, len(s.CompletedRounds)),
		ScoringConfig:   make(map[int]int, len(s.ScoringConfig)),
		LastUpdated:     s.LastUpdated,
	}
	for id, m := range s.arena {
		out.arena[id] = m.Clone()
	}
	for name, status := range s.Teams {
		st := *status
		out.Teams[name] = &st
	}
	for r, v := range s.CompletedRounds {
		out.CompletedRounds[r] = v
	}
	for r, w := range s.ScoringConfig {
		out.ScoringConfig[r] = w
	}
	return out
}

// Weight returns the point value for a round, falling back to the default
// scoring table if the state's ScoringConfig doesn't override it.
func (s *TournamentState) Weight(round int) int {
	if w, ok := s.ScoringConfig[round]; ok {
		return w
	}
	return DefaultScoringConfig()[round]
}
