package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/olufemi424/cpa-automation/internal/api/metrics"
	"github.com/olufemi424/cpa-automation/internal/core/domain"
	"github.com/olufemi424/cpa-automation/internal/core/ports"
)

// ClientHandler handles HTTP requests for client case operations.
type ClientHandler struct {
	service ports.ClientService
}

func NewClientHandler(service ports.ClientService) *ClientHandler {
	return &ClientHandler{service: service}
}

// --- Request / Response types ---

type createClientRequest struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	BusinessName string `json:"business_name"`
	EntityType   string `json:"entity_type"`
	TaxYear      int    `json:"tax_year"`
}

type updateClientRequest struct {
	Name         *string `json:"name"`
	Email        *string `json:"email"`
	Phone        *string `json:"phone"`
	BusinessName *string `json:"business_name"`
	Status       *string `json:"status"`
}

type createClientResponse struct {
	Client            *domain.Client `json:"client"`
	TemporaryPassword string         `json:"temporary_password"`
}

type clientDetailResponse struct {
	Client      *domain.Client     `json:"client"`
	AssignedCPA *domain.User       `json:"assigned_cpa,omitempty"`
	Documents   []*domain.Document `json:"documents"`
	Tasks       []*domain.Task     `json:"tasks"`
}

// Create handles POST /api/clients — client intake.
//
// @Summary      Create a client case
// @Tags         clients
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createClientRequest  true  "Intake details"
// @Success      201   {object}  createClientResponse
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /api/clients [post]
func (h *ClientHandler) Create(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req createClientRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	result, err := h.service.Create(c.Request().Context(), actor, ports.CreateClientInput{
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		BusinessName: req.BusinessName,
		EntityType:   req.EntityType,
		TaxYear:      req.TaxYear,
	})
	if err != nil {
		return err
	}

	metrics.ClientsCreatedTotal.WithLabelValues(string(result.Client.EntityType)).Inc()

	return respond(c, http.StatusCreated, createClientResponse{
		Client:            result.Client,
		TemporaryPassword: result.TemporaryPassword,
	})
}

// List handles GET /api/clients with optional status and search filters.
//
// @Summary      List client cases visible to the caller
// @Tags         clients
// @Produce      json
// @Security     BearerAuth
// @Param        status  query     string  false  "Filter by case status"
// @Param        search  query     string  false  "Partial match on name, email or business name"
// @Success      200     {array}   domain.Client
// @Failure      401     {object}  map[string]string
// @Router       /api/clients [get]
func (h *ClientHandler) List(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	clients, err := h.service.List(c.Request().Context(), actor, ports.ListClientsInput{
		Status: c.QueryParam("status"),
		Search: c.QueryParam("search"),
	})
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, clients)
}

// Get handles GET /api/clients/:id — the full case view.
//
// @Summary      Get a client case by id
// @Tags         clients
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Client id"
// @Success      200  {object}  clientDetailResponse
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/clients/{id} [get]
func (h *ClientHandler) Get(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	detail, err := h.service.Get(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, clientDetailResponse{
		Client:      detail.Client,
		AssignedCPA: detail.AssignedCPA,
		Documents:   detail.Documents,
		Tasks:       detail.Tasks,
	})
}

// Update handles PUT /api/clients/:id — partial edits and stage transitions.
//
// @Summary      Update a client case
// @Tags         clients
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string               true  "Client id"
// @Param        body  body      updateClientRequest  true  "Fields to update"
// @Success      200   {object}  domain.Client
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/clients/{id} [put]
func (h *ClientHandler) Update(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req updateClientRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	client, err := h.service.Update(c.Request().Context(), actor, c.Param("id"), ports.UpdateClientInput{
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		BusinessName: req.BusinessName,
		Status:       req.Status,
	})
	if err != nil {
		return err
	}

	if req.Status != nil {
		metrics.StatusTransitionsTotal.WithLabelValues(string(client.Status)).Inc()
	}

	return respond(c, http.StatusOK, client)
}
