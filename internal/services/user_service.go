// internal/services/user_service.go
// User profile and notification-preferences management

package services

import (
	"context"
	"fmt"
	"log"

	"bracketpool/internal/models"
	"bracketpool/internal/repositories"
)

// UserService handles user-related business logic
type UserService struct {
	userRepo        *repositories.UserRepository
	preferencesRepo *repositories.NotificationPreferencesRepository
	logger          *log.Logger
}

// NewUserService creates a new user service
func NewUserService(
	userRepo *repositories.UserRepository,
	preferencesRepo *repositories.NotificationPreferencesRepository,
	logger *log.Logger,
) *UserService {
	return &UserService{
		userRepo:        userRepo,
		preferencesRepo: preferencesRepo,
		logger:          logger,
	}
}

// GetByID retrieves a user by ID
func (s *UserService) GetByID(ctx context.Context, id string) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Don't expose password hash
	user.PasswordHash = ""

	return user, nil
}

// UpdateProfile updates user profile information
func (s *UserService) UpdateProfile(ctx context.Context, userID string, updates map[string]interface{}) (*models.User, error) {
	// Get existing user
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	// Apply updates
	if fullName, ok := updates["full_name"].(string); ok && fullName != "" {
		user.FullName = fullName
	}
	if phone, ok := updates["phone"].(string); ok {
		user.Phone = &phone
	}

	// Save updates
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	// Don't expose password hash
	user.PasswordHash = ""

	return user, nil
}

// GetNotificationPreferences retrieves a participant's notification
// preferences, defaulting to opted-in when none have been set.
func (s *UserService) GetNotificationPreferences(ctx context.Context, userEmail string) (repositories.NotificationPreferences, error) {
	return s.preferencesRepo.Get(ctx, userEmail)
}

// UpdateNotificationPreferences replaces a participant's notification
// preferences.
func (s *UserService) UpdateNotificationPreferences(ctx context.Context, prefs repositories.NotificationPreferences) error {
	return s.preferencesRepo.Set(ctx, prefs)
}

// UpgradeToOperator upgrades a participant to operator role, granting
// access to applyResult and recalculateAllScores.
func (s *UserService) UpgradeToOperator(ctx context.Context, userID string) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if user.Role != models.RoleParticipant {
		return fmt.Errorf("user is already an operator or admin")
	}

	user.Role = models.RoleOperator

	return s.userRepo.Update(ctx, user)
}
