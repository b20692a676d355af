package ports

import (
	"context"

	"github.com/olufemi424/cpa-automation/internal/core/domain"
)

// OverviewReport summarises a practice (or one CPA's slice of it).
type OverviewReport struct {
	TotalClients       int64
	ClientsByStatus    map[domain.ClientStatus]int64
	TasksByStatus      map[domain.ClientStatus]int64
	CompletedThisMonth int64
	UnreadMessages     int64
	ActiveCPAs         int64
}

// PipelineReport breaks the client book down by workflow stage.
type PipelineReport struct {
	ClientsByStatus map[domain.ClientStatus]int64
	TotalClients    int64
}

// ProductivityReport covers task throughput.
type ProductivityReport struct {
	TasksByStatus      map[domain.ClientStatus]int64
	CompletedThisMonth int64
	Overdue            int64
}

// DeadlinesReport lists upcoming work.
type DeadlinesReport struct {
	Overdue  int64
	DueSoon  []*domain.Task
	DueSoonN int
}

// AnalyticsService serves the reporting dashboard. Access is limited to
// ADMIN and CPA; a CPA's reports cover only their assigned cases.
type AnalyticsService interface {
	Overview(ctx context.Context, actor domain.Actor) (*OverviewReport, error)
	Pipeline(ctx context.Context, actor domain.Actor) (*PipelineReport, error)
	Productivity(ctx context.Context, actor domain.Actor) (*ProductivityReport, error)
	Deadlines(ctx context.Context, actor domain.Actor) (*DeadlinesReport, error)
}
