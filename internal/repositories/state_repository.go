// internal/repositories/state_repository.go
// TournamentState persistence (MongoDB), one document per tournament year.

package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"bracketpool/internal/bracket"
)

// stateDocument is the Mongo-facing shape of a TournamentState: the arena
// is private to bracket.TournamentState, so the document stores the
// flattened Games view and reconstitutes the arena through AddMatchup.
type stateDocument struct {
	Year            int                          `bson:"_id"`
	Games           []*bracket.Matchup           `bson:"games"`
	Teams           map[string]*bracket.TeamStatus `bson:"teams"`
	CompletedRounds map[int]bool                 `bson:"completedRounds"`
	ScoringConfig   map[int]int                  `bson:"scoringConfig"`
	LastUpdated     time.Time                    `bson:"lastUpdated"`
}

// StateRepository persists TournamentState documents keyed by tournament
// year.
type StateRepository struct {
	collection *mongo.Collection
}

// NewStateRepository creates a new state repository.
func NewStateRepository(db *mongo.Database) *StateRepository {
	return &StateRepository{collection: db.Collection("tournament_states")}
}

// Get loads a tournament's state, rebuilding the arena from the persisted
// games list. Returns (nil, nil) if no document exists for the year.
func (r *StateRepository) Get(ctx context.Context, year int) (*bracket.TournamentState, error) {
	var doc stateDocument
	err := r.collection.FindOne(ctx, bson.M{"_id": year}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	state := bracket.NewTournamentState(doc.Year)
	for _, m := range doc.Games {
		state.AddMatchup(m)
	}
	if doc.Teams != nil {
		state.Teams = doc.Teams
	}
	if doc.CompletedRounds != nil {
		state.CompletedRounds = doc.CompletedRounds
	}
	if doc.ScoringConfig != nil {
		state.ScoringConfig = doc.ScoringConfig
	}
	state.LastUpdated = doc.LastUpdated
	return state, nil
}

// Save upserts a tournament's full state document.
func (r *StateRepository) Save(ctx context.Context, state *bracket.TournamentState) error {
	doc := stateDocument{
		Year:            state.Year,
		Games:           state.Games(),
		Teams:           state.Teams,
		CompletedRounds: state.CompletedRounds,
		ScoringConfig:   state.ScoringConfig,
		LastUpdated:     time.Now(),
	}
	opts := options.Replace().SetUpsert(true)
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": state.Year}, doc, opts)
	return err
}
