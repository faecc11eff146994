package handler

import (
	"time"

	"github.com/todoapp/todo-service/internal/core/domain"
	"github.com/todoapp/todo-service/internal/core/ports"
)

// --- Request → Service input ---

func toTodoInput(req todoRequest) ports.TodoInput {
	return ports.TodoInput{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		Complete:    req.Complete,
	}
}

func toRegisterInput(req registerRequest) ports.RegisterInput {
	return ports.RegisterInput{
		Username:  req.Username,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  req.Password,
		Role:      domain.Role(req.Role),
	}
}

// --- Domain → Response ---

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Role:      string(u.Role),
		IsActive:  u.IsActive,
	}
}

func toTodoResponse(t domain.Todo) todoResponse {
	return todoResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Priority:    t.Priority,
		Complete:    t.Complete,
		OwnerID:     t.OwnerID,
		CreatedAt:   t.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:   t.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func toTodoResponses(todos []domain.Todo) []todoResponse {
	out := make([]todoResponse, 0, len(todos))
	for _, t := range todos {
		out = append(out, toTodoResponse(t))
	}
	return out
}
