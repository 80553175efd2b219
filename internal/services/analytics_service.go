// internal/services/analytics_service.go
// Lightweight Mongo-backed event log for analysis runs.

package services

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// AnalyticsService records a low-volume event log of analysis runs, used
// for an operator dashboard rather than the analysis pipeline itself.
type AnalyticsService struct {
	db     *mongo.Database
	cache  *CacheService
	logger *log.Logger
}

// NewAnalyticsService creates a new analytics service.
func NewAnalyticsService(db *mongo.Database, cache *CacheService, logger *log.Logger) *AnalyticsService {
	return &AnalyticsService{db: db, cache: cache, logger: logger}
}

// LogAnalysisRun records that an analysis completed for a tournament year,
// how many outcomes were enumerated, and whether it was cancelled.
func (s *AnalyticsService) LogAnalysisRun(ctx context.Context, year, totalOutcomes, totalBrackets int, cancelled bool) {
	event := bson.M{
		"year":          year,
		"totalOutcomes": totalOutcomes,
		"totalBrackets": totalBrackets,
		"cancelled":     cancelled,
		"recordedAt":    time.Now(),
	}
	if _, err := s.db.Collection("analysis_runs").InsertOne(ctx, event); err != nil {
		s.logger.Printf("failed to log analysis run: %v", err)
	}
}

// PlatformStats summarizes recent activity for an operator dashboard.
type PlatformStats struct {
	TotalAnalysisRuns int `bson:"totalAnalysisRuns"`
	CancelledRuns     int `bson:"cancelledRuns"`
}

// GetPlatformStats retrieves platform-wide statistics, preferring the
// cache within its TTL window.
func (s *AnalyticsService) GetPlatformStats(ctx context.Context) (PlatformStats, error) {
	var stats PlatformStats
	if err := s.cache.Get("platform_stats", &stats); err == nil {
		return stats, nil
	}

	total, err := s.db.Collection("analysis_runs").CountDocuments(ctx, bson.M{})
	if err != nil {
		return PlatformStats{}, err
	}
	cancelled, err := s.db.Collection("analysis_runs").CountDocuments(ctx, bson.M{"cancelled": true})
	if err != nil {
		return PlatformStats{}, err
	}
	stats = PlatformStats{TotalAnalysisRuns: int(total), CancelledRuns: int(cancelled)}

	s.cache.Set("platform_stats", stats, 5*time.Minute)
	return stats, nil
}
