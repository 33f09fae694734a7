package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shesho2101/ProyectoIntegrador2/internal/domain/entity"
	"github.com/shesho2101/ProyectoIntegrador2/internal/domain/repository"
	"github.com/shesho2101/ProyectoIntegrador2/pkg/logger"
)

// MongoClientStateRepository implements ClientStateRepository on MongoDB
type MongoClientStateRepository struct {
	collection *mongo.Collection
	now        func() time.Time
}

// NewMongoClientStateRepository creates a new client state repository
func NewMongoClientStateRepository(db *mongo.Database, logger logger.Logger) repository.ClientStateRepository {
	collection := db.Collection("client_states")

	// Create unique index on clientId
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	indexModel := mongo.IndexModel{
		Keys:    bson.M{"clientId": 1},
		Options: options.Index().SetUnique(true),
	}
	if _, err := collection.Indexes().CreateOne(ctx, indexModel); err != nil {
		logger.Warn("Failed to create client state index", "error", err)
	}

	return &MongoClientStateRepository{
		collection: collection,
		now:        time.Now,
	}
}

// Get finds the state of one browser
func (r *MongoClientStateRepository) Get(ctx context.Context, clientID string) (*entity.ClientState, error) {
	var state entity.ClientState
	err := r.collection.FindOne(ctx, bson.M{"clientId": clientID}).Decode(&state)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get client state: %w", err)
	}
	return &state, nil
}

// Save creates or replaces the state of one browser
func (r *MongoClientStateRepository) Save(ctx context.Context, state *entity.ClientState) error {
	state.UpdatedAt = r.now()

	updateDoc := bson.M{
		"clientId":  state.ClientID,
		"token":     state.Token,
		"userId":    state.UserID,
		"theme":     state.Theme,
		"updatedAt": state.UpdatedAt,
	}

	opts := options.Update().SetUpsert(true)
	_, err := r.collection.UpdateOne(
		ctx,
		bson.M{"clientId": state.ClientID},
		bson.M{"$set": updateDoc},
		opts,
	)
	if err != nil {
		return fmt.Errorf("failed to save client state: %w", err)
	}
	return nil
}

// ClearSession drops the token and user id but keeps the theme
func (r *MongoClientStateRepository) ClearSession(ctx context.Context, clientID string) error {
	_, err := r.collection.UpdateOne(
		ctx,
		bson.M{"clientId": clientID},
		bson.M{
			"$unset": bson.M{"token": "", "userId": ""},
			"$set":   bson.M{"updatedAt": r.now()},
		},
	)
	if err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

// ListAuthenticated returns every browser currently holding a token
func (r *MongoClientStateRepository) ListAuthenticated(ctx context.Context) ([]*entity.ClientState, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"token": bson.M{"$exists": true, "$ne": ""}})
	if err != nil {
		return nil, fmt.Errorf("failed to list authenticated clients: %w", err)
	}
	defer cursor.Close(ctx)

	var states []*entity.ClientState
	if err := cursor.All(ctx, &states); err != nil {
		return nil, fmt.Errorf("failed to decode client states: %w", err)
	}
	return states, nil
}
