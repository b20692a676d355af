package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/olufemi424/cpa-automation/internal/core/ports"
)

// AnalyticsHandler serves the reporting dashboard endpoints. ADMIN sees the
// whole practice; a CPA sees only their assigned slice.
type AnalyticsHandler struct {
	service ports.AnalyticsService
}

func NewAnalyticsHandler(service ports.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{service: service}
}

// Overview handles GET /api/analytics/overview.
//
// @Summary      Practice overview metrics
// @Tags         analytics
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ports.OverviewReport
// @Failure      403  {object}  map[string]string
// @Router       /api/analytics/overview [get]
func (h *AnalyticsHandler) Overview(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	report, err := h.service.Overview(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, report)
}

// Pipeline handles GET /api/analytics/pipeline.
//
// @Summary      Client pipeline by workflow stage
// @Tags         analytics
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ports.PipelineReport
// @Failure      403  {object}  map[string]string
// @Router       /api/analytics/pipeline [get]
func (h *AnalyticsHandler) Pipeline(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	report, err := h.service.Pipeline(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, report)
}

// Productivity handles GET /api/analytics/productivity.
//
// @Summary      Task throughput metrics
// @Tags         analytics
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ports.ProductivityReport
// @Failure      403  {object}  map[string]string
// @Router       /api/analytics/productivity [get]
func (h *AnalyticsHandler) Productivity(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	report, err := h.service.Productivity(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, report)
}

// Deadlines handles GET /api/analytics/deadlines.
//
// @Summary      Overdue and upcoming task deadlines
// @Tags         analytics
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ports.DeadlinesReport
// @Failure      403  {object}  map[string]string
// @Router       /api/analytics/deadlines [get]
func (h *AnalyticsHandler) Deadlines(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	report, err := h.service.Deadlines(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, report)
}
