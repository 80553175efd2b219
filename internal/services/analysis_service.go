// internal/services/analysis_service.go
// AnalysisService is the HTTP-facing collaborator for the outbound
// applyResult, analyze, and recalculateAllScores operations: it loads
// state and brackets from their repositories, calls internal/core.Analyzer,
// persists the result, and fires notifications.

package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"bracketpool/internal/analysis"
	"bracketpool/internal/bracket"
	"bracketpool/internal/config"
	"bracketpool/internal/core"
	"bracketpool/internal/models"
	"bracketpool/internal/repositories"
)

// AnalysisService wires internal/core.Analyzer to persistence and
// notifications for a single tournament year.
type AnalysisService struct {
	analyzer                    *core.Analyzer
	stateRepo                   *repositories.StateRepository
	bracketRepo                 *repositories.BracketRepository
	auditRepo                   *repositories.AuditRepository
	preferencesRepo             *repositories.NotificationPreferencesRepository
	notification                *NotificationService
	cache                       *CacheService
	logger                      *log.Logger
	enableChampionshipScenarios bool
}

// NewAnalysisService creates a new analysis service.
func NewAnalysisService(
	stateRepo *repositories.StateRepository,
	bracketRepo *repositories.BracketRepository,
	auditRepo *repositories.AuditRepository,
	preferencesRepo *repositories.NotificationPreferencesRepository,
	notification *NotificationService,
	cache *CacheService,
	logger *log.Logger,
	cfg *config.Config,
) *AnalysisService {
	return &AnalysisService{
		analyzer:                    core.NewAnalyzer(logger),
		stateRepo:                   stateRepo,
		bracketRepo:                 bracketRepo,
		auditRepo:                   auditRepo,
		preferencesRepo:             preferencesRepo,
		notification:                notification,
		cache:                       cache,
		logger:                      logger,
		enableChampionshipScenarios: cfg.Features.EnableChampionshipScenarios,
	}
}

func reportCacheKey(year int) string {
	return fmt.Sprintf("analysis_report_%d", year)
}

// ApplyResult records a completed or amended matchup result, persists the
// new state, and invalidates the cached report for the year so the next
// Analyze call recomputes from fresh state.
func (s *AnalysisService) ApplyResult(ctx context.Context, year, matchupID int, winner bracket.Team, score *bracket.MatchScore, completed bool) (*bracket.TournamentState, error) {
	state, err := s.stateRepo.Get(ctx, year)
	if err != nil {
		return nil, fmt.Errorf("failed to load tournament state: %w", err)
	}
	if state == nil {
		return nil, ErrNotFound
	}

	existing, hadResult := state.Get(matchupID)
	amendment := hadResult && existing.Winner != nil

	next, err := s.analyzer.ApplyResult(state, matchupID, winner, score, completed)
	if err != nil {
		return nil, err
	}

	if err := s.stateRepo.Save(ctx, next); err != nil {
		return nil, fmt.Errorf("failed to save tournament state: %w", err)
	}

	if err := s.auditRepo.Record(ctx, fmt.Sprintf("%d-%d-%d", year, matchupID, time.Now().UnixNano()), year, matchupID, winner, score, amendment); err != nil {
		s.logger.Printf("failed to record audit entry for matchup %d: %v", matchupID, err)
	}

	s.cache.Delete(reportCacheKey(year))

	return next, nil
}

// Analyze runs the full enumerate/score/reduce pipeline for a tournament
// year against every currently submitted bracket, preferring the cached
// report within its TTL window.
func (s *AnalysisService) Analyze(ctx context.Context, year int, cancel <-chan struct{}) (analysis.AnalysisReport, error) {
	var cached analysis.AnalysisReport
	if cancel == nil {
		if err := s.cache.Get(reportCacheKey(year), &cached); err == nil {
			return cached, nil
		}
	}

	state, err := s.stateRepo.Get(ctx, year)
	if err != nil {
		return analysis.AnalysisReport{}, fmt.Errorf("failed to load tournament state: %w", err)
	}
	if state == nil {
		return analysis.AnalysisReport{}, ErrNotFound
	}

	brackets, err := s.bracketRepo.ListAll(ctx)
	if err != nil {
		return analysis.AnalysisReport{}, fmt.Errorf("failed to load brackets: %w", err)
	}

	report, err := s.analyzer.Analyze(state, brackets, core.AnalyzeOptions{
		Cancel:                      cancel,
		EnableChampionshipScenarios: s.enableChampionshipScenarios,
		Now:                         time.Now(),
	})
	if err != nil {
		if _, cancelled := err.(*core.CancelledError); cancelled {
			return report, err
		}
		return analysis.AnalysisReport{}, err
	}

	if err := s.cache.Set(reportCacheKey(year), report, 2*time.Minute); err != nil {
		s.logger.Printf("failed to cache analysis report for year %d: %v", year, err)
	}

	go s.notifyRareCorrectPicks(context.Background(), brackets, report)

	return report, nil
}

// RecalculateAllScores recomputes and persists every bracket's score for a
// tournament year, returning only the brackets whose score changed (§6, S6).
func (s *AnalysisService) RecalculateAllScores(ctx context.Context, year int) ([]core.ScoreChange, error) {
	state, err := s.stateRepo.Get(ctx, year)
	if err != nil {
		return nil, fmt.Errorf("failed to load tournament state: %w", err)
	}
	if state == nil {
		return nil, ErrNotFound
	}

	brackets, err := s.bracketRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load brackets: %w", err)
	}

	changes := s.analyzer.RecalculateAllScores(state, brackets)
	for _, c := range changes {
		if err := s.bracketRepo.UpdateScore(ctx, c.BracketID, c.NewScore); err != nil {
			s.logger.Printf("failed to persist score change for bracket %s: %v", c.BracketID, err)
		}
	}

	return changes, nil
}

// notifyRareCorrectPicks emails each affected bracket owner once per rare
// correct pick surfaced in a fresh report, skipping participants who have
// opted out via their NotificationPreferences. Best-effort: a failed send
// for one pick does not block the others.
func (s *AnalysisService) notifyRareCorrectPicks(ctx context.Context, brackets []*models.Bracket, report analysis.AnalysisReport) {
	emailByName := make(map[string]string, len(brackets))
	for _, b := range brackets {
		emailByName[b.ParticipantName] = b.UserEmail
	}

	for _, pick := range report.RareCorrectPicks {
		var recipients []string
		for _, name := range pick.CorrectPicksByUser {
			email, ok := emailByName[name]
			if !ok || email == "" {
				continue
			}
			prefs, err := s.preferencesRepo.Get(ctx, email)
			if err != nil || !prefs.RareCorrectPicks {
				continue
			}
			recipients = append(recipients, email)
		}
		if err := s.notification.NotifyRareCorrectPick(ctx, recipients, pick); err != nil {
			s.logger.Printf("failed to notify rare correct pick for matchup %d: %v", pick.MatchupID, err)
		}
	}
}
