// internal/repositories/bracket_repository.go
// Submitted-bracket persistence (MongoDB).

package repositories

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"bracketpool/internal/models"
)

// BracketRepository persists participant-submitted brackets.
type BracketRepository struct {
	collection *mongo.Collection
}

// NewBracketRepository creates a new bracket repository.
func NewBracketRepository(db *mongo.Database) *BracketRepository {
	return &BracketRepository{collection: db.Collection("brackets")}
}

// Create inserts a newly submitted bracket.
func (r *BracketRepository) Create(ctx context.Context, b *models.Bracket) error {
	_, err := r.collection.InsertOne(ctx, b)
	return err
}

// GetByID retrieves a single bracket by id.
func (r *BracketRepository) GetByID(ctx context.Context, id string) (*models.Bracket, error) {
	var b models.Bracket
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&b)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	return &b, err
}

// ListAll retrieves every submitted bracket, the input RecalculateAllScores
// and Analyze operate over.
func (r *BracketRepository) ListAll(ctx context.Context) ([]*models.Bracket, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	brackets := make([]*models.Bracket, 0)
	if err := cursor.All(ctx, &brackets); err != nil {
		return nil, err
	}
	return brackets, nil
}

// UpdatePicks replaces a bracket's picks prior to lock.
func (r *BracketRepository) UpdatePicks(ctx context.Context, id string, picks map[int][]models.MatchupPick) error {
	_, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"picks": picks}},
	)
	return err
}

// UpdateScore persists a bracket's recomputed score (§6 recalculateAllScores).
func (r *BracketRepository) UpdateScore(ctx context.Context, id string, newScore int) error {
	_, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"score": newScore}},
	)
	return err
}

// Lock marks a bracket locked, preventing further edits once the
// tournament begins.
func (r *BracketRepository) Lock(ctx context.Context, id string) error {
	opts := options.Update()
	_, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"isLocked": true}},
		opts,
	)
	return err
}
