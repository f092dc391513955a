package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nfrund/authflow/internal/rendering"
	"github.com/nfrund/authflow/internal/session"
	"github.com/nfrund/authflow/internal/view"
	"github.com/nfrund/authflow/web/src/templates/layouts"
	"github.com/nfrund/authflow/web/src/templates/pages"
)

// HomeHandler handles requests for the home page.
type HomeHandler struct {
	stores   session.Factory
	renderer rendering.Renderer
}

// NewHomeHandler creates a new HomeHandler.
func NewHomeHandler(stores session.Factory, renderer rendering.Renderer) *HomeHandler {
	return &HomeHandler{stores: stores, renderer: renderer}
}

// HomeGet handles the GET request for the home page.
func (h *HomeHandler) HomeGet(c echo.Context) error {
	signedIn := false
	if store, err := h.stores(c); err == nil {
		token, err := store.Token(c.Request().Context())
		signedIn = err == nil && token != ""
	}
	pageContent := view.AdaptGomponentToTempl(pages.Home(signedIn))
	return h.renderer.RenderPage(c, http.StatusOK, layouts.Base("Home", view.GetFlashData(c), pageContent))
}
