package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/olufemi424/cpa-automation/internal/core/ports"
)

// MessageHandler handles HTTP requests for case messaging.
type MessageHandler struct {
	service ports.MessageService
}

func NewMessageHandler(service ports.MessageService) *MessageHandler {
	return &MessageHandler{service: service}
}

type sendMessageRequest struct {
	ClientID        string `json:"client_id"`
	Content         string `json:"content"`
	ParentMessageID string `json:"parent_message_id"`
}

// ListByClient handles GET /api/messages/client/:clientId. Reading the
// thread marks the other parties' messages as read for the caller.
//
// @Summary      List a client case's message thread
// @Tags         messages
// @Produce      json
// @Security     BearerAuth
// @Param        clientId  path      string  true  "Client id"
// @Success      200       {array}   domain.Message
// @Failure      403       {object}  map[string]string
// @Failure      404       {object}  map[string]string
// @Router       /api/messages/client/{clientId} [get]
func (h *MessageHandler) ListByClient(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	msgs, err := h.service.ListByClient(c.Request().Context(), actor, c.Param("clientId"))
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, msgs)
}

// Send handles POST /api/messages.
//
// @Summary      Send a message on a client case
// @Tags         messages
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      sendMessageRequest  true  "Message details"
// @Success      201   {object}  domain.Message
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/messages [post]
func (h *MessageHandler) Send(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req sendMessageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	msg, err := h.service.Send(c.Request().Context(), actor, ports.SendMessageInput{
		ClientID:        req.ClientID,
		Content:         req.Content,
		ParentMessageID: req.ParentMessageID,
	})
	if err != nil {
		return err
	}

	return respond(c, http.StatusCreated, msg)
}
