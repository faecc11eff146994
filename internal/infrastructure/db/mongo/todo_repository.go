package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/todoapp/todo-service/internal/core/domain"
)

const collectionTodos = "todos"

type TodoRepository struct {
	col *mongo.Collection
	ids sequence
}

func NewTodoRepository(db *mongo.Database) *TodoRepository {
	return &TodoRepository{
		col: db.Collection(collectionTodos),
		ids: newSequence(db, collectionTodos),
	}
}

type todoDocument struct {
	ID          int64     `bson:"_id"`
	Title       string    `bson:"title"`
	Description string    `bson:"description"`
	Priority    int       `bson:"priority"`
	Complete    bool      `bson:"complete"`
	OwnerID     int64     `bson:"owner_id"`
	CreatedAt   time.Time `bson:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at"`
}

func newTodoDocument(t *domain.Todo) todoDocument {
	return todoDocument{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Priority:    t.Priority,
		Complete:    t.Complete,
		OwnerID:     t.OwnerID,
		CreatedAt:   t.CreatedAt.UTC(),
		UpdatedAt:   t.UpdatedAt.UTC(),
	}
}

func (d todoDocument) toDomain() domain.Todo {
	return domain.Todo{
		ID:          d.ID,
		Title:       d.Title,
		Description: d.Description,
		Priority:    d.Priority,
		Complete:    d.Complete,
		OwnerID:     d.OwnerID,
		CreatedAt:   d.CreatedAt.UTC(),
		UpdatedAt:   d.UpdatedAt.UTC(),
	}
}

// Create inserts a new todo under the next id.
func (r *TodoRepository) Create(ctx context.Context, todo *domain.Todo) (*domain.Todo, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := r.ids.next(ctx)
	if err != nil {
		return nil, err
	}
	doc := newTodoDocument(todo)
	doc.ID = id

	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert todo: %w", err)
	}
	created := doc.toDomain()
	return &created, nil
}

func (r *TodoRepository) FindByID(ctx context.Context, id int64) (*domain.Todo, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc todoDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTodoNotFound
		}
		return nil, fmt.Errorf("find todo: %w", err)
	}
	todo := doc.toDomain()
	return &todo, nil
}

func (r *TodoRepository) ListByOwner(ctx context.Context, ownerID int64) ([]domain.Todo, error) {
	return r.list(ctx, bson.M{"owner_id": ownerID})
}

func (r *TodoRepository) ListAll(ctx context.Context) ([]domain.Todo, error) {
	return r.list(ctx, bson.M{})
}

func (r *TodoRepository) list(ctx context.Context, filter bson.M) ([]domain.Todo, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}
	defer cur.Close(ctx)

	var docs []todoDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode todos: %w", err)
	}

	todos := make([]domain.Todo, 0, len(docs))
	for _, d := range docs {
		todos = append(todos, d.toDomain())
	}
	return todos, nil
}

// Update overwrites the mutable fields of an existing todo.
func (r *TodoRepository) Update(ctx context.Context, todo *domain.Todo) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": todo.ID}, bson.M{"$set": bson.M{
		"title":       todo.Title,
		"description": todo.Description,
		"priority":    todo.Priority,
		"complete":    todo.Complete,
		"updated_at":  todo.UpdatedAt.UTC(),
	}})
	if err != nil {
		return fmt.Errorf("update todo: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrTodoNotFound
	}
	return nil
}

func (r *TodoRepository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete todo: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrTodoNotFound
	}
	return nil
}

// EnsureIndexes creates the owner lookup index.
func (r *TodoRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "owner_id", Value: 1}, {Key: "_id", Value: 1}},
	})
	return err
}
