package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/todoapp/todo-service/internal/core/domain"
	"github.com/todoapp/todo-service/internal/core/ports"
	"github.com/todoapp/todo-service/internal/pkg/clock"
)

var errTodoNotFound = domain.ErrRecordNotFound.WithMessage("Todo not found")

type TodoService struct {
	repo   ports.TodoRepository
	cache  ports.TodoCache
	clock  clock.Clock
	logger zerolog.Logger

	// loads collapses concurrent cache misses for the same owner.
	loads singleflight.Group
}

// NewTodoService wires the repository and an optional per-owner list cache.
func NewTodoService(repo ports.TodoRepository, cache ports.TodoCache, clk clock.Clock, logger zerolog.Logger) *TodoService {
	if clk == nil {
		clk = clock.NewRealClock()
	}
	return &TodoService{repo: repo, cache: cache, clock: clk, logger: logger}
}

// List returns the actor's todos, serving from the cache when possible.
func (s *TodoService) List(ctx context.Context, actor *domain.User) ([]domain.Todo, error) {
	if s.cache != nil {
		todos, found, err := s.cache.GetList(ctx, actor.ID)
		if err != nil {
			s.logger.Warn().Err(err).Int64("owner_id", actor.ID).Msg("todo cache read failed")
		} else if found {
			return todos, nil
		}
	}

	v, err, _ := s.loads.Do(loadKey(actor.ID), func() (any, error) {
		// Coalesced callers share this load; it must outlive the first one.
		ctx := context.WithoutCancel(ctx)

		var version int64
		cacheable := s.cache != nil
		if cacheable {
			var err error
			if version, err = s.cache.Version(ctx, actor.ID); err != nil {
				s.logger.Warn().Err(err).Int64("owner_id", actor.ID).Msg("todo cache version read failed")
				cacheable = false
			}
		}

		todos, err := s.repo.ListByOwner(ctx, actor.ID)
		if err != nil {
			return nil, err
		}
		if cacheable {
			if err := s.cache.SetList(ctx, actor.ID, version, todos); err != nil {
				s.logger.Warn().Err(err).Int64("owner_id", actor.ID).Msg("todo cache write failed")
			}
		}
		return todos, nil
	})
	if err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}
	return v.([]domain.Todo), nil
}

// Get returns one of the actor's todos. A todo owned by another user is
// reported as not found.
func (s *TodoService) Get(ctx context.Context, actor *domain.User, id int64) (*domain.Todo, error) {
	todo, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, domain.ErrTodoNotFound) {
		return nil, errTodoNotFound.WithCause(err)
	}
	if err != nil {
		return nil, fmt.Errorf("get todo %d: %w", id, err)
	}
	if todo.OwnerID != actor.ID {
		return nil, errTodoNotFound
	}
	return todo, nil
}

func (s *TodoService) Create(ctx context.Context, actor *domain.User, in ports.TodoInput) (*domain.Todo, error) {
	if err := validateTodo(in); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	todo := &domain.Todo{
		Title:       in.Title,
		Description: in.Description,
		Priority:    in.Priority,
		Complete:    in.Complete,
		OwnerID:     actor.ID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.repo.Create(ctx, todo)
	if err != nil {
		return nil, fmt.Errorf("create todo: %w", err)
	}
	s.invalidate(ctx, actor.ID)

	s.logger.Info().Int64("todo_id", created.ID).Int64("owner_id", actor.ID).Msg("todo created")
	return created, nil
}

// Update replaces the writable fields of one of the actor's todos.
func (s *TodoService) Update(ctx context.Context, actor *domain.User, id int64, in ports.TodoInput) error {
	if err := validateTodo(in); err != nil {
		return err
	}

	todo, err := s.Get(ctx, actor, id)
	if err != nil {
		return err
	}

	todo.Title = in.Title
	todo.Description = in.Description
	todo.Priority = in.Priority
	todo.Complete = in.Complete
	todo.UpdatedAt = s.clock.Now()

	if err := s.repo.Update(ctx, todo); err != nil {
		if errors.Is(err, domain.ErrTodoNotFound) {
			return errTodoNotFound.WithCause(err)
		}
		return fmt.Errorf("update todo %d: %w", id, err)
	}
	s.invalidate(ctx, actor.ID)
	return nil
}

func (s *TodoService) Delete(ctx context.Context, actor *domain.User, id int64) error {
	if _, err := s.Get(ctx, actor, id); err != nil {
		return err
	}
	return s.delete(ctx, id, actor.ID)
}

// ListAll returns every todo regardless of owner. Callers must have passed
// the admin gate.
func (s *TodoService) ListAll(ctx context.Context) ([]domain.Todo, error) {
	todos, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list all todos: %w", err)
	}
	return todos, nil
}

// DeleteAny removes a todo regardless of owner. Callers must have passed the
// admin gate.
func (s *TodoService) DeleteAny(ctx context.Context, id int64) error {
	todo, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, domain.ErrTodoNotFound) {
		return errTodoNotFound.WithCause(err)
	}
	if err != nil {
		return fmt.Errorf("get todo %d: %w", id, err)
	}
	return s.delete(ctx, id, todo.OwnerID)
}

func (s *TodoService) delete(ctx context.Context, id, ownerID int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrTodoNotFound) {
			return errTodoNotFound.WithCause(err)
		}
		return fmt.Errorf("delete todo %d: %w", id, err)
	}
	s.invalidate(ctx, ownerID)
	return nil
}

func (s *TodoService) invalidate(ctx context.Context, ownerID int64) {
	// Later List calls must not join a load that started before the write.
	s.loads.Forget(loadKey(ownerID))
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, ownerID); err != nil {
		s.logger.Warn().Err(err).Int64("owner_id", ownerID).Msg("todo cache invalidation failed")
	}
}

func loadKey(ownerID int64) string {
	return strconv.FormatInt(ownerID, 10)
}

// validateTodo mirrors the request schema so the service is safe to call
// without the HTTP layer.
func validateTodo(in ports.TodoInput) error {
	switch {
	case len(in.Title) < 3:
		return domain.ErrRecordInvalid.WithMessage("title must be at least 3 characters")
	case len(in.Description) < 3 || len(in.Description) > 100:
		return domain.ErrRecordInvalid.WithMessage("description must be between 3 and 100 characters")
	case in.Priority < 1 || in.Priority > 5:
		return domain.ErrRecordInvalid.WithMessage("priority must be between 1 and 5")
	}
	return nil
}
