package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	Status string `json:"status"`
}

// HealthGet reports that the process is serving.
func HealthGet(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{Status: "ok"})
}
