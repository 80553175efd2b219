package analysis

import (
	"fmt"
	"time"

	"bracketpool/internal/bracket"
	"bracketpool/internal/models"
)

// ChampionshipMatchup is the legal pairing a ChampionshipScenario covers.
type ChampionshipMatchup struct {
	TeamA string `json:"teamA"`
	TeamB string `json:"teamB"`
}

// ChampionshipScenarioOutcome is one conditional ranking within a
// ChampionshipScenario: the bracket impacts given that Winner specifically
// takes the championship game, as opposed to its pairing opponent.
type ChampionshipScenarioOutcome struct {
	Winner         string                `json:"winner"`
	BracketImpacts []ScenarioBracketRank `json:"bracketImpacts"`
}

// ChampionshipScenario is one legal championship-game pairing, split into
// the two conditional rankings of which brackets benefit if TeamA wins vs.
// if TeamB wins (§4.6 "Championship-matchup scenarios"). Gated on the
// current round reaching the Final Four.
type ChampionshipScenario struct {
	Matchup  ChampionshipMatchup           `json:"matchup"`
	Outcomes []ChampionshipScenarioOutcome `json:"outcomes"`
}

// ScenarioBracketRank is one bracket's average finishing position across
// the outcomes consistent with a single championship-scenario winner.
type ScenarioBracketRank struct {
	BracketID       string  `json:"bracketId"`
	ParticipantName string  `json:"participantName"`
	AvgPlace        float64 `json:"avgPlace"`
}

// PathAnalysis bundles the two conditional-analysis sections of the report:
// per-team championship paths and per-matchup championship scenarios.
type PathAnalysis struct {
	TeamPaths             map[string]TeamChampionshipPath `json:"teamPaths"`
	ChampionshipScenarios []ChampionshipScenario          `json:"championshipScenarios"`
}

var reportStages = []string{"sweet16", "elite8", "final4", "championship"}

// reportStage maps a current round (3..6) to the stage enum required by §6.
func reportStage(currentRound int) string {
	idx := currentRound - bracket.Sweet16
	if idx < 0 {
		idx = 0
	}
	if idx >= len(reportStages) {
		idx = len(reportStages) - 1
	}
	return reportStages[idx]
}

// AnalysisReport is the full assembled output of a round of analysis,
// covering current state, the outcome-space statistics, and every
// conditional and path-analysis section (§6).
type AnalysisReport struct {
	Timestamp             time.Time `json:"timestamp"`
	Stage                 string    `json:"stage"`
	CurrentRound          int       `json:"currentRound"`
	RoundName             string    `json:"roundName"`
	RoundProgress         string    `json:"roundProgress"`
	TotalBrackets         int       `json:"totalBrackets"`
	TotalPossibleOutcomes int       `json:"totalPossibleOutcomes"`

	PodiumContenders          []PodiumContender  `json:"podiumContenders"`
	PlayersWithNoPodiumChance int                `json:"playersWithNoPodiumChance"`
	PlayersWithWinChance      int                `json:"playersWithWinChance"`
	ChampionshipPicks         []ChampionshipPick `json:"championshipPicks"`
	BracketOutcomes           BracketOutcomes    `json:"bracketOutcomes"`
	RareCorrectPicks          []RareCorrectPick  `json:"rareCorrectPicks"`
	PathAnalysis              PathAnalysis       `json:"pathAnalysis"`

	BracketResults map[string]BracketResult `json:"bracketResults"`
	Warnings       []Warning                `json:"warnings"`
	Cancelled      bool                     `json:"cancelled"`
}

// BuildReport assembles an AnalysisReport from a completed Analyze pass.
// now is injected by the caller so the assembler stays deterministic and
// testable (§5 Reentrancy).
func BuildReport(state *bracket.TournamentState, brackets []*models.Bracket, result Result, now time.Time) AnalysisReport {
	currentRound := state.DetermineCurrentRound()

	totalMatchupsThisRound := len(state.ByRound(currentRound))
	playedThisRound := 0
	for _, m := range state.ByRound(currentRound) {
		if m.Winner != nil {
			playedThisRound++
		}
	}

	bracketResults := make(map[string]BracketResult, len(result.BracketResults))
	for _, br := range result.BracketResults {
		bracketResults[br.Bracket.ID] = br
	}

	report := AnalysisReport{
		Timestamp:                 now,
		Stage:                     reportStage(currentRound),
		CurrentRound:              currentRound,
		RoundName:                 bracket.RoundName(currentRound),
		RoundProgress:             fmt.Sprintf("%d/%d games complete", playedThisRound, totalMatchupsThisRound),
		TotalBrackets:             len(result.Brackets),
		TotalPossibleOutcomes:     len(result.Outcomes),
		PodiumContenders:          PodiumContenders(result.BracketResults),
		PlayersWithNoPodiumChance: PlayersWithNoPodiumChance(result.BracketResults),
		PlayersWithWinChance:      PlayersWithWinChance(result.BracketResults),
		ChampionshipPicks:         ChampionshipPicks(brackets),
		BracketOutcomes:           BuildBracketOutcomes(brackets),
		RareCorrectPicks:          RareCorrectPicks(state, brackets),
		PathAnalysis: PathAnalysis{
			TeamPaths: TeamWinsChampionshipPaths(state, result),
		},
		BracketResults: bracketResults,
		Warnings:       result.Warnings,
		Cancelled:      result.Cancelled,
	}

	if currentRound >= bracket.FinalFourRound {
		report.PathAnalysis.ChampionshipScenarios = ChampionshipMatchupScenarios(state, result)
	}

	return report
}
