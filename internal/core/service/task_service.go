package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/olufemi424/cpa-automation/internal/core/domain"
	"github.com/olufemi424/cpa-automation/internal/core/ports"
)

type TaskService struct {
	tasks   ports.TaskRepository
	clients ports.ClientRepository
	users   ports.UserRepository
	logger  zerolog.Logger
}

func NewTaskService(
	tasks ports.TaskRepository,
	clients ports.ClientRepository,
	users ports.UserRepository,
	logger zerolog.Logger,
) *TaskService {
	return &TaskService{tasks: tasks, clients: clients, users: users, logger: logger}
}

// Create adds a task to a client case. The assignee must hold the CPA or
// ADMIN role; tasks are never assigned to clients.
func (s *TaskService) Create(ctx context.Context, actor domain.Actor, in ports.CreateTaskInput) (*domain.Task, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, &domain.ValidationError{Field: "title", Reason: "is required"}
	}
	if in.ClientID == "" {
		return nil, &domain.ValidationError{Field: "client_id", Reason: "is required"}
	}
	if in.AssignedToID == "" {
		return nil, &domain.ValidationError{Field: "assigned_to_id", Reason: "is required"}
	}
	if in.DueDate.IsZero() {
		return nil, &domain.ValidationError{Field: "due_date", Reason: "is required"}
	}

	access, err := s.clients.FindAccessByID(ctx, in.ClientID)
	if err != nil {
		return nil, err
	}
	if !actor.CanAccess(access.UserID, access.AssignedCPAID) {
		return nil, domain.ErrForbidden
	}

	assignee, err := s.users.FindByID(ctx, in.AssignedToID)
	if err != nil {
		return nil, err
	}
	if assignee.Role != domain.RoleCPA && assignee.Role != domain.RoleAdmin {
		return nil, &domain.ValidationError{Field: "assigned_to_id", Reason: "tasks can only be assigned to CPA or ADMIN users"}
	}

	now := time.Now().UTC()
	task := &domain.Task{
		ClientID:     in.ClientID,
		Title:        in.Title,
		Description:  in.Description,
		Status:       domain.StatusIntake,
		AssignedToID: in.AssignedToID,
		DueDate:      in.DueDate,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.tasks.Create(ctx, task)
	if err != nil {
		s.logger.Error().Err(err).Str("client_id", in.ClientID).Msg("failed to create task")
		return nil, err
	}

	s.logger.Info().
		Str("task_id", created.ID).
		Str("client_id", in.ClientID).
		Str("assigned_to_id", in.AssignedToID).
		Msg("task created")

	return created, nil
}

// List returns tasks for cases visible to the actor.
func (s *TaskService) List(ctx context.Context, actor domain.Actor, in ports.ListTasksInput) ([]*domain.Task, error) {
	if in.Status != "" && in.Status != "ALL" && !domain.ClientStatus(in.Status).Valid() {
		return nil, domain.ErrInvalidStatus
	}
	filter := ports.ListTasksFilter{
		Scope:        actor.Scope(),
		ClientID:     in.ClientID,
		AssignedToID: in.AssignedToID,
		Search:       in.Search,
	}
	if in.Status != "" && in.Status != "ALL" {
		filter.Status = in.Status
	}
	return s.tasks.List(ctx, filter)
}

// Update applies a partial edit to a task after authorizing against the
// owning case. Completion toggles the completion timestamp.
func (s *TaskService) Update(ctx context.Context, actor domain.Actor, id string, in ports.UpdateTaskInput) (*domain.Task, error) {
	task, err := s.tasks.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	access, err := s.clients.FindAccessByID(ctx, task.ClientID)
	if err != nil {
		return nil, err
	}
	if !actor.CanAccess(access.UserID, access.AssignedCPAID) {
		return nil, domain.ErrForbidden
	}

	upd := ports.TaskUpdate{
		Title:       in.Title,
		Description: in.Description,
		DueDate:     in.DueDate,
	}

	if in.Status != nil {
		status := domain.ClientStatus(*in.Status)
		if !status.Valid() {
			return nil, domain.ErrInvalidStatus
		}
		upd.Status = &status
	}

	if in.AssignedToID != nil {
		assignee, err := s.users.FindByID(ctx, *in.AssignedToID)
		if err != nil {
			return nil, err
		}
		if assignee.Role != domain.RoleCPA && assignee.Role != domain.RoleAdmin {
			return nil, &domain.ValidationError{Field: "assigned_to_id", Reason: "tasks can only be assigned to CPA or ADMIN users"}
		}
		upd.AssignedToID = in.AssignedToID
	}

	if in.IsCompleted != nil {
		upd.IsCompleted = in.IsCompleted
		if *in.IsCompleted {
			now := time.Now().UTC()
			upd.CompletedAt = &now
		}
	}

	return s.tasks.Update(ctx, id, upd)
}
