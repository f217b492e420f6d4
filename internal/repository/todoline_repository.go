package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"whiterabbit/internal/model"
)

// TodolineRepository defines todoline persistence operations.
type TodolineRepository interface {
	Create(ctx context.Context, todo *model.Todoline) error
	Update(ctx context.Context, todo *model.Todoline) error
	Delete(ctx context.Context, todo *model.Todoline) error
	FindByID(ctx context.Context, id uint) (*model.Todoline, error)
	ListByUser(ctx context.Context, userID uint) ([]model.Todoline, error)
}

type todolineRepository struct {
	db *gorm.DB
}

// NewTodolineRepository creates a new todoline repository.
func NewTodolineRepository(db *gorm.DB) TodolineRepository {
	return &todolineRepository{db: db}
}

func (r *todolineRepository) Create(ctx context.Context, todo *model.Todoline) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(todo).Error
}

func (r *todolineRepository) Update(ctx context.Context, todo *model.Todoline) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(todo).Error
}

func (r *todolineRepository) Delete(ctx context.Context, todo *model.Todoline) error {
	return r.db.WithContext(ctx).Delete(&model.Todoline{}, todo.ID).Error
}

func (r *todolineRepository) FindByID(ctx context.Context, id uint) (*model.Todoline, error) {
	var todo model.Todoline
	if err := r.db.WithContext(ctx).First(&todo, id).Error; err != nil {
		return nil, err
	}
	return &todo, nil
}

// ListByUser returns an empty, non-nil slice when the user has no todolines.
func (r *todolineRepository) ListByUser(ctx context.Context, userID uint) ([]model.Todoline, error) {
	todos := make([]model.Todoline, 0)
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("id").Find(&todos).Error; err != nil {
		return nil, err
	}
	return todos, nil
}
