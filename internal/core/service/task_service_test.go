package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/olufemi424/cpa-automation/internal/core/domain"
	"github.com/olufemi424/cpa-automation/internal/core/ports"
)

func taskFixture(t *testing.T) (*TaskService, *stubClientRepo, *stubUserRepo, *stubTaskRepo) {
	t.Helper()
	clients := newStubClientRepo()
	users := newStubUserRepo()
	tasks := newStubTaskRepo(clients)
	clients.add(&domain.Client{ID: "client-x", UserID: "owner-1", AssignedCPAID: "cpa-1", Email: "x@x.com"})
	users.add(&domain.User{ID: "cpa-1", Role: domain.RoleCPA})
	users.add(&domain.User{ID: "admin-1", Role: domain.RoleAdmin})
	users.add(&domain.User{ID: "owner-1", Role: domain.RoleClient})
	return NewTaskService(tasks, clients, users, discardLogger), clients, users, tasks
}

func validTaskInput() ports.CreateTaskInput {
	return ports.CreateTaskInput{
		ClientID:     "client-x",
		Title:        "Collect W2s",
		AssignedToID: "cpa-1",
		DueDate:      time.Now().UTC().Add(72 * time.Hour),
	}
}

func TestTaskService_Create_Success(t *testing.T) {
	svc, _, _, _ := taskFixture(t)

	task, err := svc.Create(context.Background(), adminActor, validTaskInput())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if task.IsCompleted {
		t.Error("new task should not be completed")
	}
	if task.Status != domain.StatusIntake {
		t.Errorf("status = %s, want INTAKE", task.Status)
	}
}

func TestTaskService_Create_RequiredFields(t *testing.T) {
	svc, _, _, _ := taskFixture(t)

	tests := []struct {
		name   string
		mutate func(*ports.CreateTaskInput)
		field  string
	}{
		{"missing title", func(in *ports.CreateTaskInput) { in.Title = "  " }, "title"},
		{"missing client", func(in *ports.CreateTaskInput) { in.ClientID = "" }, "client_id"},
		{"missing assignee", func(in *ports.CreateTaskInput) { in.AssignedToID = "" }, "assigned_to_id"},
		{"missing due date", func(in *ports.CreateTaskInput) { in.DueDate = time.Time{} }, "due_date"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validTaskInput()
			tt.mutate(&in)
			_, err := svc.Create(context.Background(), adminActor, in)
			var ve *domain.ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("err = %v, want ValidationError", err)
			}
			if ve.Field != tt.field {
				t.Errorf("field = %s, want %s", ve.Field, tt.field)
			}
		})
	}
}

func TestTaskService_Create_RejectsClientAssignee(t *testing.T) {
	svc, _, _, _ := taskFixture(t)

	in := validTaskInput()
	in.AssignedToID = "owner-1"
	_, err := svc.Create(context.Background(), adminActor, in)
	var ve *domain.ValidationError
	if !errors.As(err, &ve) || ve.Field != "assigned_to_id" {
		t.Fatalf("err = %v, want assigned_to_id ValidationError", err)
	}
}

func TestTaskService_Create_AccessChecked(t *testing.T) {
	svc, _, _, _ := taskFixture(t)

	foreign := domain.Actor{ID: "cpa-9", Role: domain.RoleCPA}
	_, err := svc.Create(context.Background(), foreign, validTaskInput())
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("err = %v, want ErrForbidden", err)
	}
}

func TestTaskService_Update_CompletionSetsTimestamp(t *testing.T) {
	svc, _, _, tasks := taskFixture(t)

	created, err := svc.Create(context.Background(), adminActor, validTaskInput())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	done := true
	updated, err := svc.Update(context.Background(), adminActor, created.ID, ports.UpdateTaskInput{IsCompleted: &done})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if !updated.IsCompleted || updated.CompletedAt == nil {
		t.Fatalf("completion: IsCompleted=%v CompletedAt=%v", updated.IsCompleted, updated.CompletedAt)
	}

	undone := false
	updated, err = svc.Update(context.Background(), adminActor, created.ID, ports.UpdateTaskInput{IsCompleted: &undone})
	if err != nil {
		t.Fatalf("Update (uncomplete): %v", err)
	}
	if updated.IsCompleted || updated.CompletedAt != nil {
		t.Fatalf("un-completion should clear the timestamp, got %v", updated.CompletedAt)
	}

	if _, err := tasks.FindByID(context.Background(), created.ID); err != nil {
		t.Fatalf("task lost: %v", err)
	}
}

func TestTaskService_Update_AuthorizedViaOwningCase(t *testing.T) {
	svc, _, _, _ := taskFixture(t)

	created, err := svc.Create(context.Background(), adminActor, validTaskInput())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	title := "Renamed"
	foreign := domain.Actor{ID: "owner-9", Role: domain.RoleClient}
	if _, err := svc.Update(context.Background(), foreign, created.ID, ports.UpdateTaskInput{Title: &title}); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("err = %v, want ErrForbidden", err)
	}

	owner := domain.Actor{ID: "owner-1", Role: domain.RoleClient}
	if _, err := svc.Update(context.Background(), owner, created.ID, ports.UpdateTaskInput{Title: &title}); err != nil {
		t.Fatalf("owner update: %v", err)
	}
}

func TestTaskService_List_ScopedToVisibleCases(t *testing.T) {
	svc, clients, _, tasks := taskFixture(t)
	clients.add(&domain.Client{ID: "client-y", UserID: "owner-2", AssignedCPAID: "cpa-2", Email: "y@x.com"})

	if _, err := svc.Create(context.Background(), adminActor, validTaskInput()); err != nil {
		t.Fatalf("Create: %v", err)
	}
	in := validTaskInput()
	in.ClientID = "client-y"
	if _, err := svc.Create(context.Background(), adminActor, in); err != nil {
		t.Fatalf("Create second: %v", err)
	}
	if len(tasks.byID) != 2 {
		t.Fatalf("fixture: %d tasks", len(tasks.byID))
	}

	cpa := domain.Actor{ID: "cpa-1", Role: domain.RoleCPA}
	got, err := svc.List(context.Background(), cpa, ports.ListTasksInput{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 1 || got[0].ClientID != "client-x" {
		t.Fatalf("cpa-1 should see only client-x tasks, got %d", len(got))
	}
}

// The client_id filter narrows the caller's scope; it must never widen it to
// cases the caller could not otherwise see.
func TestTaskService_List_ClientFilterCannotEscapeScope(t *testing.T) {
	svc, clients, _, _ := taskFixture(t)
	clients.add(&domain.Client{ID: "client-y", UserID: "owner-2", AssignedCPAID: "cpa-2", Email: "y@x.com"})

	for _, target := range []string{"client-x", "client-y"} {
		in := validTaskInput()
		in.ClientID = target
		if _, err := svc.Create(context.Background(), adminActor, in); err != nil {
			t.Fatalf("Create for %s: %v", target, err)
		}
	}

	actors := []domain.Actor{
		{ID: "owner-1", Role: domain.RoleClient},
		{ID: "cpa-1", Role: domain.RoleCPA},
	}
	for _, actor := range actors {
		got, err := svc.List(context.Background(), actor, ports.ListTasksInput{ClientID: "client-y"})
		if err != nil {
			t.Fatalf("%s List: %v", actor.Role, err)
		}
		if len(got) != 0 {
			t.Fatalf("%s requested a foreign case and got %d tasks", actor.Role, len(got))
		}
	}

	// The same request from an actor inside the scope still works.
	cpa2 := domain.Actor{ID: "cpa-2", Role: domain.RoleCPA}
	got, err := svc.List(context.Background(), cpa2, ports.ListTasksInput{ClientID: "client-y"})
	if err != nil {
		t.Fatalf("cpa-2 List: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("cpa-2 should see 1 task, got %d", len(got))
	}
}

func TestTaskService_List_InvalidStatus(t *testing.T) {
	svc, _, _, _ := taskFixture(t)
	if _, err := svc.List(context.Background(), adminActor, ports.ListTasksInput{Status: "NOPE"}); !errors.Is(err, domain.ErrInvalidStatus) {
		t.Fatalf("err = %v, want ErrInvalidStatus", err)
	}
}
