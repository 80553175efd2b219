// internal/services/bracket_service.go
// Bracket submission, retrieval, and pre-lock editing.

package services

import (
	"context"
	"log"

	"bracketpool/internal/models"
	"bracketpool/internal/repositories"
	"bracketpool/internal/utils"

	"golang.org/x/crypto/bcrypt"
)

// BracketService manages participant-submitted brackets.
type BracketService struct {
	repo   *repositories.BracketRepository
	logger *log.Logger
}

// NewBracketService creates a new bracket service.
func NewBracketService(repo *repositories.BracketRepository, logger *log.Logger) *BracketService {
	return &BracketService{repo: repo, logger: logger}
}

// Submit creates a new bracket and returns it along with the raw edit
// token, which the caller must save; only its bcrypt hash is persisted.
func (s *BracketService) Submit(ctx context.Context, participantName string, entryNumber int, userEmail string, picks map[int][]models.MatchupPick) (*models.Bracket, string, error) {
	editToken := utils.GenerateSecureToken()
	hash, err := bcrypt.GenerateFromPassword([]byte(editToken), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	b := &models.Bracket{
		ID:              utils.GenerateUUID(),
		ParticipantName: participantName,
		EntryNumber:     entryNumber,
		UserEmail:       userEmail,
		Picks:           picks,
		IsLocked:        false,
		Score:           0,
		EditTokenHash:   string(hash),
	}

	if err := s.repo.Create(ctx, b); err != nil {
		return nil, "", err
	}
	return b, editToken, nil
}

// Get retrieves a single bracket by id.
func (s *BracketService) Get(ctx context.Context, id string) (*models.Bracket, error) {
	return s.repo.GetByID(ctx, id)
}

// List retrieves every submitted bracket.
func (s *BracketService) List(ctx context.Context) ([]*models.Bracket, error) {
	return s.repo.ListAll(ctx)
}

// Update replaces a bracket's picks, provided the caller presents the
// matching edit token and the bracket has not yet locked.
func (s *BracketService) Update(ctx context.Context, id, editToken string, picks map[int][]models.MatchupPick) (*models.Bracket, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, ErrNotFound
	}
	if b.IsLocked {
		return nil, ErrBracketLocked
	}
	if err := bcrypt.CompareHashAndPassword([]byte(b.EditTokenHash), []byte(editToken)); err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := s.repo.UpdatePicks(ctx, id, picks); err != nil {
		return nil, err
	}
	b.Picks = picks
	return b, nil
}

// Lock marks a bracket locked, preventing further edits once the
// tournament begins.
func (s *BracketService) Lock(ctx context.Context, id string) error {
	return s.repo.Lock(ctx, id)
}
