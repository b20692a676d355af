package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/olufemi424/cpa-automation/internal/core/domain"
)

func analyticsFixture() (*AnalyticsService, *stubClientRepo, *stubTaskRepo, *stubMessageRepo) {
	clients := newStubClientRepo()
	tasks := newStubTaskRepo(clients)
	msgs := newStubMessageRepo()
	users := newStubUserRepo()
	svc := NewAnalyticsService(clients, tasks, msgs, users, discardLogger)
	return svc, clients, tasks, msgs
}

func TestAnalyticsService_ClientRoleForbidden(t *testing.T) {
	svc, _, _, _ := analyticsFixture()
	client := domain.Actor{ID: "u1", Role: domain.RoleClient}

	if _, err := svc.Overview(context.Background(), client); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("Overview: err = %v, want ErrForbidden", err)
	}
	if _, err := svc.Pipeline(context.Background(), client); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("Pipeline: err = %v, want ErrForbidden", err)
	}
	if _, err := svc.Productivity(context.Background(), client); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("Productivity: err = %v, want ErrForbidden", err)
	}
	if _, err := svc.Deadlines(context.Background(), client); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("Deadlines: err = %v, want ErrForbidden", err)
	}
}

func TestAnalyticsService_Overview_CountsPracticeAndStaff(t *testing.T) {
	clients := newStubClientRepo()
	tasks := newStubTaskRepo(clients)
	msgs := newStubMessageRepo()
	users := newStubUserRepo()
	svc := NewAnalyticsService(clients, tasks, msgs, users, discardLogger)

	clients.add(&domain.Client{UserID: "u1", AssignedCPAID: "cpa-1", Status: domain.StatusIntake, Email: "1@x.com"})
	clients.add(&domain.Client{UserID: "u2", AssignedCPAID: "cpa-2", Status: domain.StatusReview, Email: "2@x.com"})
	users.add(&domain.User{ID: "admin-1", Role: domain.RoleAdmin})
	users.add(&domain.User{ID: "cpa-1", Role: domain.RoleCPA})
	users.add(&domain.User{ID: "cpa-2", Role: domain.RoleCPA})

	report, err := svc.Overview(context.Background(), adminActor)
	if err != nil {
		t.Fatalf("Overview: %v", err)
	}
	if report.TotalClients != 2 {
		t.Errorf("total clients = %d, want 2", report.TotalClients)
	}
	if report.ActiveCPAs != 2 {
		t.Errorf("active cpas = %d, want 2", report.ActiveCPAs)
	}
	if report.ClientsByStatus[domain.StatusIntake] != 1 {
		t.Errorf("intake count = %d, want 1", report.ClientsByStatus[domain.StatusIntake])
	}
}

func TestAnalyticsService_Pipeline_ScopedToCPA(t *testing.T) {
	svc, clients, _, _ := analyticsFixture()
	clients.add(&domain.Client{UserID: "u1", AssignedCPAID: "cpa-1", Status: domain.StatusIntake, Email: "1@x.com"})
	clients.add(&domain.Client{UserID: "u2", AssignedCPAID: "cpa-1", Status: domain.StatusReview, Email: "2@x.com"})
	clients.add(&domain.Client{UserID: "u3", AssignedCPAID: "cpa-2", Status: domain.StatusReview, Email: "3@x.com"})

	cpa := domain.Actor{ID: "cpa-1", Role: domain.RoleCPA}
	report, err := svc.Pipeline(context.Background(), cpa)
	if err != nil {
		t.Fatalf("Pipeline: %v", err)
	}
	if report.TotalClients != 2 {
		t.Errorf("total = %d, want 2", report.TotalClients)
	}
	if report.ClientsByStatus[domain.StatusReview] != 1 {
		t.Errorf("review count = %d, want 1", report.ClientsByStatus[domain.StatusReview])
	}

	full, err := svc.Pipeline(context.Background(), adminActor)
	if err != nil {
		t.Fatalf("Pipeline (admin): %v", err)
	}
	if full.TotalClients != 3 {
		t.Errorf("admin total = %d, want 3", full.TotalClients)
	}
}

func TestAnalyticsService_Productivity(t *testing.T) {
	svc, clients, tasks, _ := analyticsFixture()
	clients.add(&domain.Client{ID: "client-x", UserID: "u1", AssignedCPAID: "cpa-1", Email: "1@x.com"})

	now := time.Now().UTC()
	past := now.Add(-48 * time.Hour)
	completedAt := now.Add(-time.Hour)
	tasks.Create(context.Background(), &domain.Task{ClientID: "client-x", Title: "late", DueDate: past})
	tasks.Create(context.Background(), &domain.Task{ClientID: "client-x", Title: "done", DueDate: now.Add(time.Hour), IsCompleted: true, CompletedAt: &completedAt})

	cpa := domain.Actor{ID: "cpa-1", Role: domain.RoleCPA}
	report, err := svc.Productivity(context.Background(), cpa)
	if err != nil {
		t.Fatalf("Productivity: %v", err)
	}
	if report.Overdue != 1 {
		t.Errorf("overdue = %d, want 1", report.Overdue)
	}
	// Only meaningful when the completion fell inside the current month;
	// the fixture completed one hour ago, which always does unless it is the
	// first hour of the month — accept both.
	if report.CompletedThisMonth != 1 && completedAt.Month() == now.Month() {
		t.Errorf("completed this month = %d, want 1", report.CompletedThisMonth)
	}
}

func TestAnalyticsService_Deadlines(t *testing.T) {
	svc, clients, tasks, _ := analyticsFixture()
	clients.add(&domain.Client{ID: "client-x", UserID: "u1", AssignedCPAID: "cpa-1", Email: "1@x.com"})

	now := time.Now().UTC()
	tasks.Create(context.Background(), &domain.Task{ClientID: "client-x", Title: "overdue", DueDate: now.Add(-24 * time.Hour)})
	tasks.Create(context.Background(), &domain.Task{ClientID: "client-x", Title: "this week", DueDate: now.Add(3 * 24 * time.Hour)})
	tasks.Create(context.Background(), &domain.Task{ClientID: "client-x", Title: "next month", DueDate: now.Add(30 * 24 * time.Hour)})

	report, err := svc.Deadlines(context.Background(), adminActor)
	if err != nil {
		t.Fatalf("Deadlines: %v", err)
	}
	if report.Overdue != 1 {
		t.Errorf("overdue = %d, want 1", report.Overdue)
	}
	if report.DueSoonN != 1 || len(report.DueSoon) != 1 {
		t.Fatalf("due soon = %d, want 1", report.DueSoonN)
	}
	if report.DueSoon[0].Title != "this week" {
		t.Errorf("due soon task = %s", report.DueSoon[0].Title)
	}
}
