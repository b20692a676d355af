package handler

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/olufemi424/cpa-automation/internal/api/metrics"
	"github.com/olufemi424/cpa-automation/internal/core/domain"
	"github.com/olufemi424/cpa-automation/internal/core/ports"
)

// DocumentHandler handles HTTP requests for document operations.
type DocumentHandler struct {
	service ports.DocumentService
}

func NewDocumentHandler(service ports.DocumentService) *DocumentHandler {
	return &DocumentHandler{service: service}
}

type verifyDocumentRequest struct {
	IsVerified bool `json:"is_verified"`
}

// Upload handles POST /api/documents — multipart file upload.
//
// @Summary      Upload a document to a client case
// @Tags         documents
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        client_id  formData  string  true  "Client id"
// @Param        file       formData  file    true  "Document file (PDF, JPG, PNG, DOC; max 10MB)"
// @Success      201        {object}  domain.Document
// @Failure      400        {object}  map[string]string
// @Failure      403        {object}  map[string]string
// @Failure      404        {object}  map[string]string
// @Router       /api/documents [post]
func (h *DocumentHandler) Upload(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "file is required")
	}
	if fh.Size > domain.MaxUploadSize {
		return domain.ErrFileTooLarge
	}

	f, err := fh.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unable to read uploaded file")
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, domain.MaxUploadSize+1))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unable to read uploaded file")
	}

	doc, err := h.service.Upload(c.Request().Context(), actor, ports.UploadDocumentInput{
		ClientID:    c.FormValue("client_id"),
		FileName:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Data:        data,
	})
	if err != nil {
		return err
	}

	metrics.DocumentsClassifiedTotal.WithLabelValues(string(doc.DocumentType)).Inc()

	return respond(c, http.StatusCreated, doc)
}

// ListByClient handles GET /api/documents/client/:clientId.
//
// @Summary      List a client case's documents
// @Tags         documents
// @Produce      json
// @Security     BearerAuth
// @Param        clientId  path      string  true  "Client id"
// @Success      200       {array}   domain.Document
// @Failure      403       {object}  map[string]string
// @Failure      404       {object}  map[string]string
// @Router       /api/documents/client/{clientId} [get]
func (h *DocumentHandler) ListByClient(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	docs, err := h.service.ListByClient(c.Request().Context(), actor, c.Param("clientId"))
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, docs)
}

// Verify handles PUT /api/documents/:id/verify — CPA/ADMIN review of the
// automatic classification.
//
// @Summary      Mark a document's classification as verified
// @Tags         documents
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                 true  "Document id"
// @Param        body  body      verifyDocumentRequest  true  "Verification flag"
// @Success      200   {object}  domain.Document
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/documents/{id}/verify [put]
func (h *DocumentHandler) Verify(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req verifyDocumentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	doc, err := h.service.SetVerified(c.Request().Context(), actor, c.Param("id"), req.IsVerified)
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, doc)
}
