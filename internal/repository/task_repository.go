package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"fleetdesk/internal/model"
)

// TaskFilter narrows task queries. All predicates are field-equality
// conjunctions; a nil CreatedBy leaves the listing unscoped.
type TaskFilter struct {
	CreatedBy *uuid.UUID
}

// TaskRepository defines task persistence operations. Update and Delete take
// an optional owner id that is folded into the storage filter, so the
// ownership condition is enforced atomically with the write rather than as a
// separate fetch-then-check sequence. Both report the number of matched rows;
// zero means no record satisfied the combined id+owner filter.
type TaskRepository interface {
	Create(ctx context.Context, task *model.Task) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Task, error)
	List(ctx context.Context, filter TaskFilter) ([]model.Task, error)
	Update(ctx context.Context, id uuid.UUID, ownedBy *uuid.UUID, fields map[string]interface{}) (int64, error)
	Delete(ctx context.Context, id uuid.UUID, ownedBy *uuid.UUID) (int64, error)
}

type taskRepository struct {
	db *gorm.DB
}

// NewTaskRepository builds a GORM-backed task repository.
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &taskRepository{db: db}
}

func (r *taskRepository) Create(ctx context.Context, task *model.Task) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()
	return r.db.WithContext(ctx).Create(task).Error
}

func (r *taskRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Task, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()
	var task model.Task
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *taskRepository) List(ctx context.Context, filter TaskFilter) ([]model.Task, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()
	q := r.db.WithContext(ctx)
	if filter.CreatedBy != nil {
		q = q.Where("created_by = ?", *filter.CreatedBy)
	}
	var tasks []model.Task
	if err := q.Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *taskRepository) Update(ctx context.Context, id uuid.UUID, ownedBy *uuid.UUID, fields map[string]interface{}) (int64, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()
	q := r.db.WithContext(ctx).Model(&model.Task{}).Where("id = ?", id)
	if ownedBy != nil {
		q = q.Where("created_by = ?", *ownedBy)
	}
	res := q.Updates(fields)
	return res.RowsAffected, res.Error
}

func (r *taskRepository) Delete(ctx context.Context, id uuid.UUID, ownedBy *uuid.UUID) (int64, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()
	q := r.db.WithContext(ctx).Where("id = ?", id)
	if ownedBy != nil {
		q = q.Where("created_by = ?", *ownedBy)
	}
	res := q.Delete(&model.Task{})
	return res.RowsAffected, res.Error
}
