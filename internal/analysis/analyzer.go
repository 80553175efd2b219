// Package analysis implements the Outcome Analyzer (§4.5), Statistics &
// Path Analysis (§4.6), and the AnalysisReport assembler (§4.7). The
// analyzer scores every bracket against every outcome, fanning the
// per-outcome work out across a worker pool and reducing into per-bracket
// accumulators (§5 Scheduling model, §9 Parallelism).
package analysis

import (
	"encoding/json"
	"runtime"
	"sort"
	"sync"
	"sync/atomic"

	"bracketpool/internal/bracket"
	"bracketpool/internal/enumerate"
	"bracketpool/internal/models"
	"bracketpool/internal/scoring"
)

// Warning records a per-bracket failure isolated by the analyzer; the
// bracket is dropped from accumulation but other brackets proceed (§7).
type Warning struct {
	BracketID string `json:"bracketId"`
	Message   string `json:"message"`
}

// accumulator tracks one bracket's statistics across every outcome.
type accumulator struct {
	totalScore int64
	minScore   int
	maxScore   int
	minPlace   int
	maxPlace   int
	wins       int
	places     [3]int // index 0 = 1st, 1 = 2nd, 2 = 3rd
	seen       bool
}

func newAccumulator() *accumulator {
	return &accumulator{minScore: 1 << 30, minPlace: 1 << 30}
}

func (a *accumulator) merge(other *accumulator) {
	if !other.seen {
		return
	}
	if !a.seen {
		*a = *other
		return
	}
	a.totalScore += other.totalScore
	if other.minScore < a.minScore {
		a.minScore = other.minScore
	}
	if other.maxScore > a.maxScore {
		a.maxScore = other.maxScore
	}
	if other.minPlace < a.minPlace {
		a.minPlace = other.minPlace
	}
	if other.maxPlace > a.maxPlace {
		a.maxPlace = other.maxPlace
	}
	a.wins += other.wins
	for i := range a.places {
		a.places[i] += other.places[i]
	}
}

// BracketResult is one bracket's aggregate statistics across the full
// outcome space, matching the AnalysisReport's bracketResults entries. It
// marshals without the Bracket field: bracketResults is a map keyed by
// bracket id, so the id itself is carried by the map key rather than
// repeated in the value (§6).
type BracketResult struct {
	Bracket          *models.Bracket
	CurrentScore     int
	MinScore         int
	MaxScore         int
	AvgScore         float64
	WinPercentage    float64
	PlacePercentages PlacePercentages
	MinPlace         int
	MaxPlace         int
}

// MarshalJSON renders a BracketResult as the bracketResults entry shape
// from §6, pulling participantName/entryNumber off the embedded bracket.
func (r BracketResult) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ParticipantName  string           `json:"participantName"`
		EntryNumber      int              `json:"entryNumber"`
		CurrentScore     int              `json:"currentScore"`
		MinScore         int              `json:"minScore"`
		MaxScore         int              `json:"maxScore"`
		AvgScore         float64          `json:"avgScore"`
		WinPercentage    float64          `json:"winPercentage"`
		PlacePercentages PlacePercentages `json:"placePercentages"`
		MinPlace         int              `json:"minPlace"`
		MaxPlace         int              `json:"maxPlace"`
	}{
		ParticipantName:  r.Bracket.ParticipantName,
		EntryNumber:      r.Bracket.EntryNumber,
		CurrentScore:     r.CurrentScore,
		MinScore:         r.MinScore,
		MaxScore:         r.MaxScore,
		AvgScore:         r.AvgScore,
		WinPercentage:    r.WinPercentage,
		PlacePercentages: r.PlacePercentages,
		MinPlace:         r.MinPlace,
		MaxPlace:         r.MaxPlace,
	})
}

// PlacePercentages is the 1st/2nd/3rd/podium percentage breakdown.
type PlacePercentages struct {
	First  float64 `json:"1"`
	Second float64 `json:"2"`
	Third  float64 `json:"3"`
	Podium float64 `json:"podium"`
}

// OutcomeScore is one outcome's full score vector, kept around for
// statistics passes that need per-outcome detail (championship-matchup
// scenarios, team-wins-championship paths) rather than just the reduced
// aggregates.
type OutcomeScore struct {
	Outcome *enumerate.Outcome
	Scores  []int // aligned with the brackets slice passed to Analyze
}

// Result is the full output of Analyze: per-bracket aggregates plus the
// raw per-outcome score matrix statistics needs for conditional analyses.
type Result struct {
	Brackets       []*models.Bracket
	BracketResults []BracketResult
	Outcomes       []OutcomeScore
	Warnings       []Warning
	Cancelled      bool
}

// Analyze scores every bracket against every outcome and reduces into
// per-bracket min/max/avg score, win count, and Olympic-tie place counts.
// cancel is checked before each outcome is scored; on signal the partial result is
// returned with Cancelled set (§5 Cancellation & timeouts).
func Analyze(state *bracket.TournamentState, brackets []*models.Bracket, outcomes []*enumerate.Outcome, cancel <-chan struct{}) Result {
	valid, warnings := validateBrackets(brackets)

	workers := runtime.NumCPU()
	if workers > len(outcomes) {
		workers = len(outcomes)
	}
	if workers < 1 {
		workers = 1
	}

	chunks := chunkOutcomes(outcomes, workers)

	type workerOutput struct {
		accs      []*accumulator
		perOutcome []OutcomeScore
	}

	results := make([]workerOutput, len(chunks))
	var wg sync.WaitGroup
	var cancelled atomic.Bool

	for w, chunk := range chunks {
		wg.Add(1)
		go func(w int, chunk []*enumerate.Outcome) {
			defer wg.Done()
			accs := make([]*accumulator, len(valid))
			for i := range accs {
				accs[i] = newAccumulator()
			}
			perOutcome := make([]OutcomeScore, 0, len(chunk))

			for _, o := range chunk {
				select {
				case <-cancel:
					cancelled.Store(true)
					results[w] = workerOutput{accs: accs, perOutcome: perOutcome}
					return
				default:
				}

				projected := projectOutcome(state, o)
				scores := make([]int, len(valid))
				for i, b := range valid {
					scores[i] = scoring.ScoreProjected(b, projected)
				}
				applyOlympicPlacement(accs, scores)
				perOutcome = append(perOutcome, OutcomeScore{Outcome: o, Scores: scores})
			}
			results[w] = workerOutput{accs: accs, perOutcome: perOutcome}
		}(w, chunk)
	}
	wg.Wait()

	merged := make([]*accumulator, len(valid))
	for i := range merged {
		merged[i] = newAccumulator()
	}
	var allOutcomes []OutcomeScore
	for _, r := range results {
		for i, acc := range r.accs {
			merged[i].merge(acc)
		}
		allOutcomes = append(allOutcomes, r.perOutcome...)
	}

	n := len(allOutcomes)
	bracketResults := make([]BracketResult, len(valid))
	for i, b := range valid {
		acc := merged[i]
		br := BracketResult{Bracket: b, CurrentScore: b.Score}
		if acc.seen && n > 0 {
			br.MinScore = acc.minScore
			br.MaxScore = acc.maxScore
			br.AvgScore = float64(acc.totalScore) / float64(n)
			br.WinPercentage = float64(acc.wins) / float64(n) * 100
			br.MinPlace = acc.minPlace
			br.MaxPlace = acc.maxPlace
			br.PlacePercentages = PlacePercentages{
				First:  float64(acc.places[0]) / float64(n) * 100,
				Second: float64(acc.places[1]) / float64(n) * 100,
				Third:  float64(acc.places[2]) / float64(n) * 100,
				Podium: float64(acc.places[0]+acc.places[1]+acc.places[2]) / float64(n) * 100,
			}
		}
		bracketResults[i] = br
	}

	return Result{
		Brackets:       valid,
		BracketResults: bracketResults,
		Outcomes:       allOutcomes,
		Warnings:       warnings,
		Cancelled:      cancelled.Load(),
	}
}

// placementsForScores returns each bracket's Olympic finishing position for
// a single outcome's score vector, without touching any accumulator. Used
// by the statistics pass to recompute per-outcome standings for
// conditional analyses (team-wins-championship paths, championship-matchup
// scenarios).
func placementsForScores(scores []int) []int {
	order := make([]int, len(scores))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(i, j int) bool {
		return scores[order[i]] > scores[order[j]]
	})

	placements := make([]int, len(scores))
	position := 1
	i := 0
	for i < len(order) {
		j := i
		for j < len(order) && scores[order[j]] == scores[order[i]] {
			j++
		}
		for _, idx := range order[i:j] {
			placements[idx] = position
		}
		position += j - i
		i = j
	}
	return placements
}

// applyOlympicPlacement sorts one outcome's score vector descending,
// groups equal scores, and applies Olympic tie semantics: the next
// group's position is 1 + the size of every group before it, never a
// plain increment-by-one (§4.5 step 4, §8 property 6).
func applyOlympicPlacement(accs []*accumulator, scores []int) {
	order := make([]int, len(scores))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(i, j int) bool {
		return scores[order[i]] > scores[order[j]]
	})

	position := 1
	i := 0
	for i < len(order) {
		j := i
		for j < len(order) && scores[order[j]] == scores[order[i]] {
			j++
		}
		groupSize := j - i
		for _, idx := range order[i:j] {
			acc := accs[idx]
			acc.seen = true
			acc.totalScore += int64(scores[idx])
			if scores[idx] < acc.minScore {
				acc.minScore = scores[idx]
			}
			if scores[idx] > acc.maxScore {
				acc.maxScore = scores[idx]
			}
			if position < acc.minPlace {
				acc.minPlace = position
			}
			if position > acc.maxPlace {
				acc.maxPlace = position
			}
			if position == 1 {
				acc.wins++
			}
			if position >= 1 && position <= 3 {
				acc.places[position-1]++
			}
		}
		position += groupSize
		i = j
	}
}

func chunkOutcomes(outcomes []*enumerate.Outcome, workers int) [][]*enumerate.Outcome {
	if workers < 1 {
		workers = 1
	}
	chunks := make([][]*enumerate.Outcome, 0, workers)
	n := len(outcomes)
	base := n / workers
	rem := n % workers
	start := 0
	for w := 0; w < workers && start < n; w++ {
		size := base
		if w < rem {
			size++
		}
		if size == 0 {
			continue
		}
		chunks = append(chunks, outcomes[start:start+size])
		start += size
	}
	return chunks
}

// validateBrackets drops malformed brackets (missing a prediction tree or
// participant identity) and returns a warning per drop, per §7's
// per-bracket isolation policy.
func validateBrackets(brackets []*models.Bracket) ([]*models.Bracket, []Warning) {
	var valid []*models.Bracket
	var warnings []Warning
	for _, b := range brackets {
		if b == nil || b.ParticipantName == "" || len(b.Picks) == 0 {
			id := "unknown"
			if b != nil {
				id = b.ID
			}
			warnings = append(warnings, Warning{BracketID: id, Message: "malformed bracket dropped: missing participant identity or empty prediction tree"})
			continue
		}
		valid = append(valid, b)
	}
	return valid, warnings
}
