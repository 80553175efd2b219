// internal/services/container.go
// Service container provides dependency injection for all business logic services.
// This pattern makes testing easier and keeps services loosely coupled.

package services

import (
	"errors"
	"log"

	"bracketpool/internal/config"
	"bracketpool/internal/database"
	"bracketpool/internal/repositories"
)

// Container holds all service instances and provides them to handlers
type Container struct {
	Auth         *AuthService
	User         *UserService
	Bracket      *BracketService
	Analysis     *AnalysisService
	Notification *NotificationService
	Cache        *CacheService
	Analytics    *AnalyticsService
}

// NewContainer creates a new service container with all dependencies
func NewContainer(db *database.Connections, cfg *config.Config, logger *log.Logger) *Container {
	// Initialize repositories
	repos := repositories.NewContainer(db)

	// Initialize cache service
	cache := NewCacheService(db.Redis, logger)

	// Initialize notification service
	notification := NewNotificationService(cfg, logger)

	// Initialize services with their dependencies
	auth := NewAuthService(repos.User, cfg.Auth, cache, logger)
	user := NewUserService(repos.User, repos.NotificationPreferences, logger)
	bracketSvc := NewBracketService(repos.Bracket, logger)
	analysis := NewAnalysisService(repos.State, repos.Bracket, repos.Audit, repos.NotificationPreferences, notification, cache, logger, cfg)
	analytics := NewAnalyticsService(db.MongoDB, cache, logger)

	return &Container{
		Auth:         auth,
		User:         user,
		Bracket:      bracketSvc,
		Analysis:     analysis,
		Notification: notification,
		Cache:        cache,
		Analytics:    analytics,
	}
}

// Common errors used across services
var (
	ErrNotFound           = errors.New("resource not found")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidInput       = errors.New("invalid input")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrBracketLocked      = errors.New("bracket is locked")
)
