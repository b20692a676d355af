package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/olufemi424/cpa-automation/internal/core/domain"
	"github.com/olufemi424/cpa-automation/internal/core/ports"
)

// deadlineHorizon is how far ahead the deadlines report looks.
const deadlineHorizon = 7 * 24 * time.Hour

type AnalyticsService struct {
	clients  ports.ClientRepository
	tasks    ports.TaskRepository
	messages ports.MessageRepository
	users    ports.UserRepository
	logger   zerolog.Logger
}

func NewAnalyticsService(
	clients ports.ClientRepository,
	tasks ports.TaskRepository,
	messages ports.MessageRepository,
	users ports.UserRepository,
	logger zerolog.Logger,
) *AnalyticsService {
	return &AnalyticsService{clients: clients, tasks: tasks, messages: messages, users: users, logger: logger}
}

// reportScope gates analytics to ADMIN and CPA; a CPA sees only their book.
func reportScope(actor domain.Actor) (domain.AccessScope, error) {
	switch actor.Role {
	case domain.RoleAdmin:
		return domain.AccessScope{}, nil
	case domain.RoleCPA:
		return domain.AccessScope{AssignedCPAID: actor.ID}, nil
	}
	return domain.AccessScope{}, domain.ErrForbidden
}

func (s *AnalyticsService) Overview(ctx context.Context, actor domain.Actor) (*ports.OverviewReport, error) {
	scope, err := reportScope(actor)
	if err != nil {
		return nil, err
	}

	total, err := s.clients.Count(ctx, scope)
	if err != nil {
		return nil, err
	}
	byStatus, err := s.clients.CountByStatus(ctx, scope)
	if err != nil {
		return nil, err
	}
	tasksByStatus, err := s.tasks.CountByStatus(ctx, scope)
	if err != nil {
		return nil, err
	}
	completed, err := s.tasks.CountCompletedSince(ctx, scope, startOfMonth(time.Now().UTC()))
	if err != nil {
		return nil, err
	}
	unread, err := s.messages.CountUnread(ctx, scope)
	if err != nil {
		return nil, err
	}
	cpas, err := s.users.CountByRole(ctx, domain.RoleCPA)
	if err != nil {
		return nil, err
	}

	return &ports.OverviewReport{
		TotalClients:       total,
		ClientsByStatus:    byStatus,
		TasksByStatus:      tasksByStatus,
		CompletedThisMonth: completed,
		UnreadMessages:     unread,
		ActiveCPAs:         cpas,
	}, nil
}

func (s *AnalyticsService) Pipeline(ctx context.Context, actor domain.Actor) (*ports.PipelineReport, error) {
	scope, err := reportScope(actor)
	if err != nil {
		return nil, err
	}
	byStatus, err := s.clients.CountByStatus(ctx, scope)
	if err != nil {
		return nil, err
	}
	total, err := s.clients.Count(ctx, scope)
	if err != nil {
		return nil, err
	}
	return &ports.PipelineReport{ClientsByStatus: byStatus, TotalClients: total}, nil
}

func (s *AnalyticsService) Productivity(ctx context.Context, actor domain.Actor) (*ports.ProductivityReport, error) {
	scope, err := reportScope(actor)
	if err != nil {
		return nil, err
	}
	byStatus, err := s.tasks.CountByStatus(ctx, scope)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	completed, err := s.tasks.CountCompletedSince(ctx, scope, startOfMonth(now))
	if err != nil {
		return nil, err
	}
	overdue, err := s.tasks.CountOverdue(ctx, scope, now)
	if err != nil {
		return nil, err
	}
	return &ports.ProductivityReport{
		TasksByStatus:      byStatus,
		CompletedThisMonth: completed,
		Overdue:            overdue,
	}, nil
}

func (s *AnalyticsService) Deadlines(ctx context.Context, actor domain.Actor) (*ports.DeadlinesReport, error) {
	scope, err := reportScope(actor)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	overdue, err := s.tasks.CountOverdue(ctx, scope, now)
	if err != nil {
		return nil, err
	}
	dueSoon, err := s.tasks.ListDueBetween(ctx, scope, now, now.Add(deadlineHorizon))
	if err != nil {
		return nil, err
	}
	return &ports.DeadlinesReport{
		Overdue:  overdue,
		DueSoon:  dueSoon,
		DueSoonN: len(dueSoon),
	}, nil
}

func startOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}
