package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nfrund/authflow/internal/rendering"
	"github.com/nfrund/authflow/internal/view"
	"github.com/nfrund/authflow/web/src/templates/layouts"
	"github.com/nfrund/authflow/web/src/templates/pages"
)

// DashboardHandler handles requests for the user dashboard.
type DashboardHandler struct {
	renderer rendering.Renderer
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(renderer rendering.Renderer) *DashboardHandler {
	return &DashboardHandler{renderer: renderer}
}

// DashboardGet shows the dashboard. RequireToken has already run.
func (h *DashboardHandler) DashboardGet(c echo.Context) error {
	pageContent := view.AdaptGomponentToTempl(pages.Dashboard())
	return h.renderer.RenderPage(c, http.StatusOK, layouts.Base("Dashboard", view.GetFlashData(c), pageContent))
}
