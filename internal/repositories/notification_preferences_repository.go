// internal/repositories/notification_preferences_repository.go
// Per-participant notification preferences (MongoDB).

package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// NotificationPreferences controls which email events a participant
// receives from NotificationService.
type NotificationPreferences struct {
	UserEmail          string    `bson:"userEmail"`
	RareCorrectPicks   bool      `bson:"rareCorrectPicks"`
	AnalysisReady      bool      `bson:"analysisReady"`
	UpdatedAt          time.Time `bson:"updatedAt"`
}

// NotificationPreferencesRepository handles notification opt-in state in
// MongoDB.
type NotificationPreferencesRepository struct {
	collection *mongo.Collection
}

// NewNotificationPreferencesRepository creates a new preferences repository.
func NewNotificationPreferencesRepository(db *mongo.Database) *NotificationPreferencesRepository {
	return &NotificationPreferencesRepository{
		collection: db.Collection("notification_preferences"),
	}
}

// Get retrieves a participant's notification preferences, defaulting both
// flags to true (opted in) when no document exists.
func (r *NotificationPreferencesRepository) Get(ctx context.Context, userEmail string) (NotificationPreferences, error) {
	var prefs NotificationPreferences
	err := r.collection.FindOne(ctx, bson.M{"userEmail": userEmail}).Decode(&prefs)
	if err == mongo.ErrNoDocuments {
		return NotificationPreferences{UserEmail: userEmail, RareCorrectPicks: true, AnalysisReady: true}, nil
	}
	return prefs, err
}

// Set creates or replaces a participant's notification preferences.
func (r *NotificationPreferencesRepository) Set(ctx context.Context, prefs NotificationPreferences) error {
	prefs.UpdatedAt = time.Now()
	opts := options.Replace().SetUpsert(true)
	_, err := r.collection.ReplaceOne(ctx, bson.M{"userEmail": prefs.UserEmail}, prefs, opts)
	return err
}
