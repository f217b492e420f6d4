package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"whiterabbit/internal/auth"
	apperrors "whiterabbit/internal/errors"
	"whiterabbit/internal/model"
	"whiterabbit/internal/policy"
	"whiterabbit/internal/repository"
)

const (
	reasonReadTodoline   = "Seul le créateur de cette todolist peut y accéder"
	reasonEditTodoline   = "Seul le créateur de cette todolist peut la modifier."
	reasonDeleteTodoline = "Seul l'auteur de cette tâche peut la supprimer."

	todolineNotFoundMessage = "Cette tâche n'existe pas."
)

// CreateTodolineInput is the data of a new todoline.
type CreateTodolineInput struct {
	Title       string
	Description string
	Completed   *bool
}

// UpdateTodolineInput carries a partial update; nil fields are left unchanged.
type UpdateTodolineInput struct {
	Title       *string
	Description *string
	Completed   *bool
}

// TodolineService exposes personal task operations. Every call needs an
// authenticated actor.
type TodolineService interface {
	ListMine(ctx context.Context, actor *auth.Actor) ([]model.Todoline, error)
	Get(ctx context.Context, actor *auth.Actor, id uint) (*model.Todoline, error)
	Create(ctx context.Context, actor *auth.Actor, input CreateTodolineInput) (*model.Todoline, error)
	Update(ctx context.Context, actor *auth.Actor, id uint, input UpdateTodolineInput) (*model.Todoline, error)
	Delete(ctx context.Context, actor *auth.Actor, id uint) error
}

type todolineService struct {
	repo   repository.TodolineRepository
	guard  guard
	logger *zerolog.Logger
	now    func() time.Time
}

// NewTodolineService builds a TodolineService.
func NewTodolineService(repo repository.TodolineRepository, policies *policy.Registry, logger *zerolog.Logger) TodolineService {
	return &todolineService{
		repo:   repo,
		guard:  guard{policies: policies, logger: logger},
		logger: logger,
		now:    time.Now,
	}
}

// ListMine returns the actor's todolines; an empty result is not an error.
func (s *todolineService) ListMine(ctx context.Context, actor *auth.Actor) ([]model.Todoline, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	todos, err := s.repo.ListByUser(ctx, actor.ID)
	if err != nil {
		return nil, fmt.Errorf("list todolines: %w", err)
	}
	if todos == nil {
		todos = []model.Todoline{}
	}
	return todos, nil
}

func (s *todolineService) Get(ctx context.Context, actor *auth.Actor, id uint) (*model.Todoline, error) {
	todo, err := s.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if err := s.guard.authorize(policy.ActionRead, todo, actor, reasonReadTodoline); err != nil {
		return nil, err
	}
	return todo, nil
}

func (s *todolineService) Create(ctx context.Context, actor *auth.Actor, input CreateTodolineInput) (*model.Todoline, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}

	ownerID := actor.ID
	todo := &model.Todoline{
		Title:       input.Title,
		Description: input.Description,
		UserID:      &ownerID,
	}
	if input.Completed != nil {
		todo.Completed = *input.Completed
	}
	if err := s.repo.Create(ctx, todo); err != nil {
		return nil, fmt.Errorf("create todoline: %w", err)
	}
	return todo, nil
}

func (s *todolineService) Update(ctx context.Context, actor *auth.Actor, id uint, input UpdateTodolineInput) (*model.Todoline, error) {
	todo, err := s.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if err := s.guard.authorize(policy.ActionEdit, todo, actor, reasonEditTodoline); err != nil {
		return nil, err
	}

	if input.Title != nil {
		todo.Title = *input.Title
	}
	if input.Description != nil {
		todo.Description = *input.Description
	}
	if input.Completed != nil {
		todo.Completed = *input.Completed
	}
	now := s.now()
	todo.UpdatedAt = &now

	if err := s.repo.Update(ctx, todo); err != nil {
		return nil, fmt.Errorf("update todoline: %w", err)
	}
	return todo, nil
}

func (s *todolineService) Delete(ctx context.Context, actor *auth.Actor, id uint) error {
	todo, err := s.load(ctx, actor, id)
	if err != nil {
		return err
	}
	if err := s.guard.authorize(policy.ActionDelete, todo, actor, reasonDeleteTodoline); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, todo); err != nil {
		return fmt.Errorf("delete todoline: %w", err)
	}
	return nil
}

func (s *todolineService) load(ctx context.Context, actor *auth.Actor, id uint) (*model.Todoline, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	todo, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, apperrors.ErrTodolineNotFound, todolineNotFoundMessage)
	}
	return todo, nil
}
