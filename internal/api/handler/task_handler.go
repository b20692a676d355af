package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/olufemi424/cpa-automation/internal/core/ports"
)

// TaskHandler handles HTTP requests for task operations.
type TaskHandler struct {
	service ports.TaskService
}

func NewTaskHandler(service ports.TaskService) *TaskHandler {
	return &TaskHandler{service: service}
}

type createTaskRequest struct {
	ClientID     string    `json:"client_id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	AssignedToID string    `json:"assigned_to_id"`
	DueDate      time.Time `json:"due_date"`
}

type updateTaskRequest struct {
	Title        *string    `json:"title"`
	Description  *string    `json:"description"`
	Status       *string    `json:"status"`
	AssignedToID *string    `json:"assigned_to_id"`
	DueDate      *time.Time `json:"due_date"`
	IsCompleted  *bool      `json:"is_completed"`
}

// Create handles POST /api/tasks.
//
// @Summary      Create a task on a client case
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createTaskRequest  true  "Task details"
// @Success      201   {object}  domain.Task
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/tasks [post]
func (h *TaskHandler) Create(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req createTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	task, err := h.service.Create(c.Request().Context(), actor, ports.CreateTaskInput{
		ClientID:     req.ClientID,
		Title:        req.Title,
		Description:  req.Description,
		AssignedToID: req.AssignedToID,
		DueDate:      req.DueDate,
	})
	if err != nil {
		return err
	}

	return respond(c, http.StatusCreated, task)
}

// List handles GET /api/tasks with optional filters.
//
// @Summary      List tasks visible to the caller
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        status          query     string  false  "Filter by task status"
// @Param        client_id       query     string  false  "Filter by client case"
// @Param        assigned_to_id  query     string  false  "Filter by assignee"
// @Param        search          query     string  false  "Partial match on title or description"
// @Success      200             {array}   domain.Task
// @Failure      401             {object}  map[string]string
// @Router       /api/tasks [get]
func (h *TaskHandler) List(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	tasks, err := h.service.List(c.Request().Context(), actor, ports.ListTasksInput{
		Status:       c.QueryParam("status"),
		ClientID:     c.QueryParam("client_id"),
		AssignedToID: c.QueryParam("assigned_to_id"),
		Search:       c.QueryParam("search"),
	})
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, tasks)
}

// Update handles PUT /api/tasks/:id.
//
// @Summary      Update a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Task id"
// @Param        body  body      updateTaskRequest  true  "Fields to update"
// @Success      200   {object}  domain.Task
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/tasks/{id} [put]
func (h *TaskHandler) Update(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req updateTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	task, err := h.service.Update(c.Request().Context(), actor, c.Param("id"), ports.UpdateTaskInput{
		Title:        req.Title,
		Description:  req.Description,
		Status:       req.Status,
		AssignedToID: req.AssignedToID,
		DueDate:      req.DueDate,
		IsCompleted:  req.IsCompleted,
	})
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, task)
}
