package handler

import (
	"time"

	"github.com/labstack/echo/v4"
)

// envelope is the canonical success response shape:
// {"success": true, "data": ..., "timestamp": "..."}.
// Failures never go through here; the central error handler renders them.
type envelope struct {
	Success   bool   `json:"success"`
	Data      any    `json:"data,omitempty"`
	Timestamp string `json:"timestamp"`
}

func respond(c echo.Context, status int, data any) error {
	return c.JSON(status, envelope{
		Success:   true,
		Data:      data,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}
