package analysis

import (
	"sort"
	"strconv"
	"strings"

	"bracketpool/internal/bracket"
	"bracketpool/internal/enumerate"
	"bracketpool/internal/models"
)

// PodiumContender is one bracket's podium-chance summary, used for the
// podiumContenders report section.
type PodiumContender struct {
	BracketID        string           `json:"id"`
	ParticipantName  string           `json:"participantName"`
	EntryNumber      int              `json:"entryNumber"`
	CurrentScore     int              `json:"currentScore"`
	PlacePercentages PlacePercentages `json:"placePercentages"`
	MinPlace         int              `json:"minPlace"`
	MaxPlace         int              `json:"maxPlace"`
}

// ChampionshipPick is one histogram bucket over brackets' round-6 winner
// predictions.
type ChampionshipPick struct {
	Team       string  `json:"team"` // "Name (seed)"
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// RareCorrectPick is a completed matchup that few brackets predicted
// correctly (§4.6, §8 property 7: 0 < percentage < 10).
type RareCorrectPick struct {
	MatchupID          int            `json:"matchupId"`
	Round              int            `json:"round"`
	Winner             bracket.Team   `json:"winner"`
	Region             bracket.Region `json:"region"`
	Teams              [2]string      `json:"teams"`
	CorrectPicks       int            `json:"correctPicks"`
	TotalPicks         int            `json:"totalPicks"`
	Percentage         float64        `json:"percentage"`
	CorrectPicksByUser []string       `json:"correctPicksByUsers"`
}

// BracketOutcomeCount is one entry in the top-N most common bracket picks
// for a stage (Sweet 16 upset/survivor pick, Final Four set, championship
// pairing).
type BracketOutcomeCount struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// PodiumContenders returns every bracket with podium% > 0, sorted
// descending by podium percentage, participant name breaking ties (§5
// ordering rule).
func PodiumContenders(results []BracketResult) []PodiumContender {
	var out []PodiumContender
	for _, r := range results {
		if r.PlacePercentages.Podium <= 0 {
			continue
		}
		out = append(out, PodiumContender{
			BracketID:        r.Bracket.ID,
			ParticipantName:  r.Bracket.ParticipantName,
			EntryNumber:      r.Bracket.EntryNumber,
			CurrentScore:     r.CurrentScore,
			PlacePercentages: r.PlacePercentages,
			MinPlace:         r.MinPlace,
			MaxPlace:         r.MaxPlace,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].PlacePercentages.Podium != out[j].PlacePercentages.Podium {
			return out[i].PlacePercentages.Podium > out[j].PlacePercentages.Podium
		}
		return out[i].ParticipantName < out[j].ParticipantName
	})
	return out
}

// PlayersWithNoPodiumChance counts brackets whose podium percentage is
// exactly zero.
func PlayersWithNoPodiumChance(results []BracketResult) int {
	n := 0
	for _, r := range results {
		if r.PlacePercentages.Podium == 0 {
			n++
		}
	}
	return n
}

// PlayersWithWinChance counts brackets with a nonzero win percentage.
func PlayersWithWinChance(results []BracketResult) int {
	n := 0
	for _, r := range results {
		if r.WinPercentage > 0 {
			n++
		}
	}
	return n
}

// ChampionshipPicks histograms brackets' round-6 winner predictions.
func ChampionshipPicks(brackets []*models.Bracket) []ChampionshipPick {
	type bucket struct {
		team  bracket.Team
		count int
	}
	buckets := make(map[string]*bucket)
	var order []string
	total := 0
	for _, b := range brackets {
		champ, ok := b.ChampionPick()
		if !ok {
			continue
		}
		total++
		key := champ.Name
		if buckets[key] == nil {
			buckets[key] = &bucket{team: champ}
			order = append(order, key)
		}
		buckets[key].count++
	}

	out := make([]ChampionshipPick, 0, len(order))
	for _, key := range order {
		b := buckets[key]
		pct := 0.0
		if total > 0 {
			pct = float64(b.count) / float64(total) * 100
		}
		out = append(out, ChampionshipPick{
			Team:       formatTeam(b.team),
			Count:      b.count,
			Percentage: pct,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Team < out[j].Team
	})
	return out
}

func formatTeam(t bracket.Team) string {
	return t.Name + " (" + strconv.Itoa(t.Seed) + ")"
}

// BracketOutcomes computes the top-10 most common Sweet 16 picks (keyed by
// matchupId+winner name), Final Four four-team sets (sorted names), and
// championship two-team pairings (sorted names).
type BracketOutcomes struct {
	Sweet16      []BracketOutcomeCount `json:"sweet16"`
	FinalFour    []BracketOutcomeCount `json:"finalFour"`
	Championship []BracketOutcomeCount `json:"championship"`
}

func BuildBracketOutcomes(brackets []*models.Bracket) BracketOutcomes {
	sweet16 := make(map[string]int)
	finalFour := make(map[string]int)
	championship := make(map[string]int)

	for _, b := range brackets {
		for _, pick := range b.Picks[bracket.Sweet16] {
			key := strconv.Itoa(pick.MatchupID) + ":" + pick.Winner.Name
			sweet16[key]++
		}

		ffNames := make([]string, 0, 4)
		for _, pick := range b.Picks[bracket.EliteEight] {
			ffNames = append(ffNames, pick.Winner.Name)
		}
		if len(ffNames) > 0 {
			sort.Strings(ffNames)
			finalFour[strings.Join(ffNames, ",")]++
		}

		// The championship pairing is the two Final Four winners, not the
		// single champion pick: a bracket's round-6 pick only names the
		// winner, while the pair that actually reaches the title game is
		// fully determined by its two round-5 picks.
		champNames := make([]string, 0, 2)
		for _, pick := range b.Picks[bracket.FinalFourRound] {
			champNames = append(champNames, pick.Winner.Name)
		}
		if len(champNames) == 2 {
			sort.Strings(champNames)
			championship[strings.Join(champNames, ",")]++
		}
	}

	return BracketOutcomes{
		Sweet16:      topN(sweet16, 10),
		FinalFour:    topN(finalFour, 10),
		Championship: topN(championship, 10),
	}
}

func topN(counts map[string]int, n int) []BracketOutcomeCount {
	out := make([]BracketOutcomeCount, 0, len(counts))
	for k, v := range counts {
		out = append(out, BracketOutcomeCount{Key: k, Count: v})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Key < out[j].Key
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// RareCorrectPicks finds every completed matchup where between 0% and 10%
// (exclusive on both ends) of brackets picked the actual winner.
func RareCorrectPicks(state *bracket.TournamentState, brackets []*models.Bracket) []RareCorrectPick {
	var out []RareCorrectPick
	games := state.Games()

	for _, m := range games {
		if m.Winner == nil {
			continue
		}
		total := 0
		correct := 0
		var correctUsers []string
		for _, b := range brackets {
			pick, ok := b.PickFor(m.Round, m.ID)
			if !ok {
				continue
			}
			total++
			if pick.Winner.Equal(*m.Winner) {
				correct++
				correctUsers = append(correctUsers, b.ParticipantName)
			}
		}
		if total == 0 {
			continue
		}
		pct := float64(correct) / float64(total) * 100
		if pct > 0 && pct < 10 {
			var teams [2]string
			if m.TeamA != nil {
				teams[0] = m.TeamA.Name
			}
			if m.TeamB != nil {
				teams[1] = m.TeamB.Name
			}
			out = append(out, RareCorrectPick{
				MatchupID:          m.ID,
				Round:              m.Round,
				Winner:             *m.Winner,
				Region:             m.Region,
				Teams:              teams,
				CorrectPicks:       correct,
				TotalPicks:         total,
				Percentage:         pct,
				CorrectPicksByUser: correctUsers,
			})
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Percentage != out[j].Percentage {
			return out[i].Percentage < out[j].Percentage
		}
		return out[i].MatchupID < out[j].MatchupID
	})
	return out
}

// PodiumChange is the podium-chance shift a single bracket experiences
// conditional on a given active team winning the championship.
type PodiumChange struct {
	BracketID    string  `json:"bracketId"`
	PodiumChange float64 `json:"podiumChange"` // conditional podium% minus unconditional podium%
}

// TeamWinsChampionship wraps the per-bracket podium swings conditional on
// one team winning it all.
type TeamWinsChampionship struct {
	PodiumChanges []PodiumChange `json:"podiumChanges"`
}

// TeamChampionshipPath is one active team's entry in the teamPaths section:
// its bracket location plus the podium-chance shift it causes if it wins
// the championship (§4.6 "Team-wins-championship path").
type TeamChampionshipPath struct {
	Seed             int                  `json:"seed"`
	Region           bracket.Region       `json:"region"`
	WinsChampionship TeamWinsChampionship `json:"winsChampionship"`
}

// TeamWinsChampionshipPaths groups outcomes by champion and, for each
// active team, recomputes every bracket's conditional podium percentage
// given that team wins it all (§4.6 "Team-wins-championship path").
func TeamWinsChampionshipPaths(state *bracket.TournamentState, result Result) map[string]TeamChampionshipPath {
	currentRound := state.DetermineCurrentRound()
	active := state.GetActiveTeams(currentRound)

	byChampion := make(map[string][]OutcomeScore)
	for _, os := range result.Outcomes {
		champ, ok := championOf(os.Outcome)
		if !ok {
			continue
		}
		byChampion[champ.Name] = append(byChampion[champ.Name], os)
	}

	unconditionalPodium := make([]float64, len(result.BracketResults))
	for i, br := range result.BracketResults {
		unconditionalPodium[i] = br.PlacePercentages.Podium
	}

	out := make(map[string]TeamChampionshipPath)
	for _, team := range active {
		group := byChampion[team.Name]
		if len(group) == 0 {
			continue
		}
		podiumCount := make([]int, len(result.Brackets))
		for _, os := range group {
			placements := placementsForScores(os.Scores)
			for i, p := range placements {
				if p >= 1 && p <= 3 {
					podiumCount[i]++
				}
			}
		}
		var changes []PodiumChange
		for i, b := range result.Brackets {
			conditional := float64(podiumCount[i]) / float64(len(group)) * 100
			changes = append(changes, PodiumChange{
				BracketID:    b.ID,
				PodiumChange: conditional - unconditionalPodium[i],
			})
		}
		out[team.Name] = TeamChampionshipPath{
			Seed:             team.Seed,
			Region:           team.Region,
			WinsChampionship: TeamWinsChampionship{PodiumChanges: changes},
		}
	}
	return out
}

func championOf(o *enumerate.Outcome) (bracket.Team, bool) {
	for _, r := range o.MatchupResults {
		if r.Round == bracket.Championship {
			return r.Winner, true
		}
	}
	return bracket.Team{}, false
}

// ChampionshipMatchupScenarios groups outcomes by their actual championship
// pairing and, for each legal pairing, splits the outcomes again by which of
// the two teams actually wins the championship game, ranking the top 5
// brackets by average finishing position within each winner's outcomes
// (§4.6 "Championship matchup scenarios", S4). Only meaningful once the
// Final Four has been reached, since earlier the championship pairing isn't
// yet narrowed to two sides.
func ChampionshipMatchupScenarios(state *bracket.TournamentState, result Result) []ChampionshipScenario {
	champMatchups := state.ByRound(bracket.Championship)
	if len(champMatchups) == 0 {
		return nil
	}
	champID := champMatchups[0].ID

	var feeders []int
	for _, m := range state.ByRound(bracket.FinalFourRound) {
		if m.NextMatchupID != nil && *m.NextMatchupID == champID {
			feeders = append(feeders, m.ID)
		}
	}
	if len(feeders) != 2 {
		return nil
	}

	type group struct {
		teamA, teamB bracket.Team
		byWinner     map[string][]int
	}
	groups := make(map[string]*group)
	var order []string

	for idx, os := range result.Outcomes {
		rA, okA := os.Outcome.MatchupResults[feeders[0]]
		rB, okB := os.Outcome.MatchupResults[feeders[1]]
		if !okA || !okB {
			continue
		}
		names := []string{rA.Winner.Name, rB.Winner.Name}
		sort.Strings(names)
		key := names[0] + "," + names[1]
		g, ok := groups[key]
		if !ok {
			a, b := rA.Winner, rB.Winner
			if a.Name > b.Name {
				a, b = b, a
			}
			g = &group{teamA: a, teamB: b, byWinner: make(map[string][]int)}
			groups[key] = g
			order = append(order, key)
		}
		champ, ok := championOf(os.Outcome)
		if !ok {
			continue
		}
		g.byWinner[champ.Name] = append(g.byWinner[champ.Name], idx)
	}

	type ranked struct {
		scenario     ChampionshipScenario
		totalOutcomes int
	}
	rankedScenarios := make([]ranked, 0, len(order))
	for _, key := range order {
		g := groups[key]

		winners := make([]string, 0, len(g.byWinner))
		for w := range g.byWinner {
			winners = append(winners, w)
		}
		sort.Strings(winners)

		total := 0
		outcomes := make([]ChampionshipScenarioOutcome, 0, len(winners))
		for _, winner := range winners {
			indices := g.byWinner[winner]
			total += len(indices)

			sumPlace := make([]float64, len(result.Brackets))
			for _, idx := range indices {
				placements := placementsForScores(result.Outcomes[idx].Scores)
				for i, p := range placements {
					sumPlace[i] += float64(p)
				}
			}
			impacts := make([]ScenarioBracketRank, len(result.Brackets))
			for i, b := range result.Brackets {
				impacts[i] = ScenarioBracketRank{
					BracketID:       b.ID,
					ParticipantName: b.ParticipantName,
					AvgPlace:        sumPlace[i] / float64(len(indices)),
				}
			}
			sort.Slice(impacts, func(i, j int) bool {
				if impacts[i].AvgPlace != impacts[j].AvgPlace {
					return impacts[i].AvgPlace < impacts[j].AvgPlace
				}
				return impacts[i].ParticipantName < impacts[j].ParticipantName
			})
			if len(impacts) > 5 {
				impacts = impacts[:5]
			}
			outcomes = append(outcomes, ChampionshipScenarioOutcome{
				Winner:         winner,
				BracketImpacts: impacts,
			})
		}

		rankedScenarios = append(rankedScenarios, ranked{
			scenario: ChampionshipScenario{
				Matchup:  ChampionshipMatchup{TeamA: g.teamA.Name, TeamB: g.teamB.Name},
				Outcomes: outcomes,
			},
			totalOutcomes: total,
		})
	}

	sort.Slice(rankedScenarios, func(i, j int) bool {
		return rankedScenarios[i].totalOutcomes > rankedScenarios[j].totalOutcomes
	})

	out := make([]ChampionshipScenario, len(rankedScenarios))
	for i, r := range rankedScenarios {
		out[i] = r.scenario
	}
	return out
}
