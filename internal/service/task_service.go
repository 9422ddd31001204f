package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"fleetdesk/internal/auth"
	"fleetdesk/internal/cache"
	apperrors "fleetdesk/internal/errors"
	"fleetdesk/internal/model"
	"fleetdesk/internal/queue"
	"fleetdesk/internal/repository"
)

const taskCacheTTL = time.Hour

// TaskInput carries the writable task fields. DueDate accepts RFC3339 or
// YYYY-MM-DD; empty status and priority fall back to the model defaults.
type TaskInput struct {
	Title       string
	Description string
	Status      string
	Priority    string
	Assignee    string
	DueDate     string
}

// TaskService exposes task CRUD with ownership enforcement.
type TaskService interface {
	CreateTask(ctx context.Context, p auth.Principal, in TaskInput) (*model.Task, error)
	GetTask(ctx context.Context, p auth.Principal, id string) (*model.Task, error)
	ListTasks(ctx context.Context, p auth.Principal, mineOnly bool) ([]model.Task, error)
	UpdateTask(ctx context.Context, p auth.Principal, id string, in TaskInput) (*model.Task, error)
	DeleteTask(ctx context.Context, p auth.Principal, id string) error
}

type taskService struct {
	taskRepo  repository.TaskRepository
	cache     *cache.Client
	publisher *queue.Publisher
}

// NewTaskService builds a TaskService with repository, cache and event
// publisher.
func NewTaskService(taskRepo repository.TaskRepository, cache *cache.Client, publisher *queue.Publisher) TaskService {
	return &taskService{taskRepo: taskRepo, cache: cache, publisher: publisher}
}

func taskCacheKey(id uuid.UUID) string {
	return fmt.Sprintf("task:%s", id)
}

// parseDueDate accepts RFC3339 timestamps or plain YYYY-MM-DD dates. An
// empty input yields nil; anything unparsable is a validation error.
func parseDueDate(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, nil
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return &t, nil
	}
	return nil, apperrors.Validation("invalid due date")
}

// CreateTask creates a task for the authenticated principal. CreatedBy is
// stamped here from the principal and never touched again.
func (s *taskService) CreateTask(ctx context.Context, p auth.Principal, in TaskInput) (*model.Task, error) {
	due, err := parseDueDate(in.DueDate)
	if err != nil {
		return nil, err
	}

	task := &model.Task{
		Title:       in.Title,
		Description: in.Description,
		Status:      in.Status,
		Priority:    in.Priority,
		Assignee:    in.Assignee,
		DueDate:     due,
		CreatedBy:   p.UserID,
	}
	if task.Status == "" {
		task.Status = model.TaskStatusDefault
	}
	if task.Priority == "" {
		task.Priority = model.TaskPriorityDefault
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, apperrors.Transient(err)
	}

	s.publisher.PublishTaskEvent(ctx, "created", *task)
	return task, nil
}

// GetTask returns one task. Reads require authentication only; they are not
// ownership-scoped.
func (s *taskService) GetTask(ctx context.Context, p auth.Principal, id string) (*model.Task, error) {
	tid, err := uuid.Parse(id)
	if err != nil {
		return nil, apperrors.Validation("invalid task id")
	}

	if data, _ := s.cache.Get(ctx, taskCacheKey(tid)); data != nil {
		var cached model.Task
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	task, err := s.taskRepo.FindByID(ctx, tid)
	if err != nil {
		return nil, translateStorageError(err, "task not found")
	}

	if payload, err := json.Marshal(task); err == nil {
		_ = s.cache.Set(ctx, taskCacheKey(tid), payload, taskCacheTTL)
	}
	return task, nil
}

// ListTasks returns tasks, scoped to the caller when mineOnly is set and
// unscoped otherwise.
func (s *taskService) ListTasks(ctx context.Context, p auth.Principal, mineOnly bool) ([]model.Task, error) {
	var filter repository.TaskFilter
	if mineOnly {
		owner := p.UserID
		filter.CreatedBy = &owner
	}
	tasks, err := s.taskRepo.List(ctx, filter)
	if err != nil {
		return nil, apperrors.Transient(err)
	}
	return tasks, nil
}

// UpdateTask rewrites the writable fields of a task. For non-admins the
// owner id is folded into the storage filter, so the ownership condition is
// checked atomically with the write; a filter that matches nothing reports
// not-found, whether the task is missing or belongs to someone else.
func (s *taskService) UpdateTask(ctx context.Context, p auth.Principal, id string, in TaskInput) (*model.Task, error) {
	tid, err := uuid.Parse(id)
	if err != nil {
		return nil, apperrors.Validation("invalid task id")
	}
	due, err := parseDueDate(in.DueDate)
	if err != nil {
		return nil, err
	}

	status := in.Status
	if status == "" {
		status = model.TaskStatusDefault
	}
	priority := in.Priority
	if priority == "" {
		priority = model.TaskPriorityDefault
	}

	fields := map[string]interface{}{
		"title":       in.Title,
		"description": in.Description,
		"status":      status,
		"priority":    priority,
		"assignee":    in.Assignee,
		"due_date":    due,
		"updated_at":  time.Now(),
	}

	matched, err := s.taskRepo.Update(ctx, tid, s.ownerScope(p), fields)
	if err != nil {
		return nil, apperrors.Transient(err)
	}
	if matched == 0 {
		return nil, apperrors.NotFound("task not found")
	}

	_ = s.cache.Delete(ctx, taskCacheKey(tid))

	task, err := s.taskRepo.FindByID(ctx, tid)
	if err != nil {
		return nil, translateStorageError(err, "task not found")
	}
	s.publisher.PublishTaskEvent(ctx, "updated", *task)
	return task, nil
}

// DeleteTask removes a task under the same combined id+owner filter as
// UpdateTask. Deletion is explicit and irreversible.
func (s *taskService) DeleteTask(ctx context.Context, p auth.Principal, id string) error {
	tid, err := uuid.Parse(id)
	if err != nil {
		return apperrors.Validation("invalid task id")
	}

	matched, err := s.taskRepo.Delete(ctx, tid, s.ownerScope(p))
	if err != nil {
		return apperrors.Transient(err)
	}
	if matched == 0 {
		return apperrors.NotFound("task not found")
	}

	_ = s.cache.Delete(ctx, taskCacheKey(tid))
	s.publisher.PublishTaskEvent(ctx, "deleted", model.Task{ID: tid})
	return nil
}

// ownerScope returns the owner id to fold into write filters: nil for
// admins (unscoped), the principal's id otherwise.
func (s *taskService) ownerScope(p auth.Principal) *uuid.UUID {
	if p.IsAdmin() {
		return nil
	}
	owner := p.UserID
	return &owner
}
