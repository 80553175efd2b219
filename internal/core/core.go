package core

import (
	"log"
	"time"

	"bracketpool/internal/analysis"
	"bracketpool/internal/bracket"
	"bracketpool/internal/enumerate"
	"bracketpool/internal/models"
	"bracketpool/internal/propagator"
	"bracketpool/internal/scoring"
)

// Analyzer is the façade a collaborator (HTTP handler, batch job) calls.
// It holds no state of its own beyond a logger.
type Analyzer struct {
	logger *log.Logger
}

// NewAnalyzer builds an Analyzer. A nil logger falls back to log.Default.
func NewAnalyzer(logger *log.Logger) *Analyzer {
	if logger == nil {
		logger = log.Default()
	}
	return &Analyzer{logger: logger}
}

// ApplyResult records a completed (or amended) matchup result and
// propagates it forward, per §4.2 and the outbound `applyResult` operation
// of §6. The state is updated in place, and that same state is returned.
func (a *Analyzer) ApplyResult(state *bracket.TournamentState, matchupID int, winner bracket.Team, score *bracket.MatchScore, completed bool) (*bracket.TournamentState, error) {
	next, err := propagator.ApplyResult(state, matchupID, winner, score, completed)
	if err != nil {
		a.logger.Printf("applyResult failed for matchup %d: %v", matchupID, err)
		return nil, err
	}
	a.logger.Printf("applyResult: matchup %d winner=%s completed=%v", matchupID, winner.Name, completed)
	return next, nil
}

// AnalyzeOptions configures a single Analyze call.
type AnalyzeOptions struct {
	Cancel                        <-chan struct{}
	EnableChampionshipScenarios   bool
	Now                           time.Time
}

// Analyze runs the full pipeline — enumerate, score, reduce, assemble —
// producing the AnalysisReport described in §6. A NeedsSweet16Error from
// the enumerator is translated into a PreconditionError so callers have a
// single error-kind vocabulary to switch on (§7).
func (a *Analyzer) Analyze(state *bracket.TournamentState, brackets []*models.Bracket, opts AnalyzeOptions) (analysis.AnalysisReport, error) {
	outcomes, err := enumerate.Enumerate(state)
	if err != nil {
		if needsSweet16, ok := err.(*enumerate.NeedsSweet16Error); ok {
			a.logger.Printf("analyze precondition failed: %d active teams", needsSweet16.ActiveTeams)
			return analysis.AnalysisReport{}, &PreconditionError{
				Reason:      "enumeration requires 16 or fewer active teams",
				ActiveTeams: needsSweet16.ActiveTeams,
			}
		}
		return analysis.AnalysisReport{}, err
	}

	cancel := opts.Cancel
	if cancel == nil {
		cancel = make(chan struct{})
	}
	result := analysis.Analyze(state, brackets, outcomes, cancel)

	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}
	report := analysis.BuildReport(state, brackets, result, now)
	if !opts.EnableChampionshipScenarios {
		report.PathAnalysis.ChampionshipScenarios = nil
	}

	if result.Cancelled {
		a.logger.Printf("analyze cancelled: %d/%d outcomes scored before signal", len(result.Outcomes), len(outcomes))
		return report, &CancelledError{Stage: "outcome scoring"}
	}

	a.logger.Printf("analyze complete: %d brackets, %d outcomes", len(result.Brackets), len(outcomes))
	return report, nil
}

// ScoreChange is one bracket whose stored score differs from its
// recomputed score.
type ScoreChange struct {
	BracketID string
	OldScore  int
	NewScore  int
}

// RecalculateAllScores recomputes every bracket's score from scratch
// against state and returns only the brackets whose score changed (§6,
// S6). Callers are responsible for persisting the new scores; this
// function has no side effect on the brackets passed in.
func (a *Analyzer) RecalculateAllScores(state *bracket.TournamentState, brackets []*models.Bracket) []ScoreChange {
	var changes []ScoreChange
	for _, b := range brackets {
		newScore := scoring.ScoreBracket(b, state)
		if newScore != b.Score {
			changes = append(changes, ScoreChange{
				BracketID: b.ID,
				OldScore:  b.Score,
				NewScore:  newScore,
			})
		}
	}
	a.logger.Printf("recalculateAllScores: %d of %d brackets changed", len(changes), len(brackets))
	return changes
}
