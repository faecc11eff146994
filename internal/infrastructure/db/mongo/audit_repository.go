package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/todoapp/todo-service/internal/core/domain"
)

const collectionAuthEvents = "auth_events"

// AuthEventRepository implements ports.AuthEventRepository using MongoDB.
type AuthEventRepository struct {
	col *mongo.Collection
}

func NewAuthEventRepository(db *mongo.Database) *AuthEventRepository {
	return &AuthEventRepository{col: db.Collection(collectionAuthEvents)}
}

// InsertAuthEvent appends an event to the auth_events audit collection.
func (r *AuthEventRepository) InsertAuthEvent(ctx context.Context, event domain.AuthEvent) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := bson.M{
		"type":         string(event.Type),
		"username":     event.Username,
		"timestamp":    event.Timestamp.UTC(),
		"processed_at": time.Now().UTC(),
	}
	if event.UserID != 0 {
		doc["user_id"] = event.UserID
	}

	_, err := r.col.InsertOne(ctx, doc)
	return err
}

// EnsureIndexes creates the per-user history index.
func (r *AuthEventRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "username", Value: 1}, {Key: "timestamp", Value: -1}},
	})
	return err
}
