package handlers

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	hxhttp "maragu.dev/gomponents-htmx/http"

	"github.com/nfrund/authflow/internal/auth"
)

// pendingNavigation records where a workflow asked to send the user. The
// handler turns it into a response once the workflow has returned.
type pendingNavigation struct {
	path string
	mode auth.NavigationMode
}

func (p *pendingNavigation) Navigate(_ context.Context, path string, mode auth.NavigationMode) {
	p.path = path
	p.mode = mode
}

func (p *pendingNavigation) requested() bool { return p.path != "" }

// isHTMX reports whether the request was issued by htmx.
func isHTMX(c echo.Context) bool {
	return hxhttp.IsRequest(c.Request().Header)
}

// respondNavigation answers an htmx request with HX-Location (client-side
// route) or HX-Redirect (full reload), and a plain request with a 303.
func respondNavigation(c echo.Context, p *pendingNavigation) error {
	if !isHTMX(c) {
		return c.Redirect(http.StatusSeeOther, p.path)
	}
	if p.mode == auth.NavigateReload {
		hxhttp.SetRedirect(c.Response().Header(), p.path)
	} else {
		hxhttp.SetLocation(c.Response().Header(), p.path)
	}
	return c.NoContent(http.StatusOK)
}
