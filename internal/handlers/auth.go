package handlers

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	cmp "maragu.dev/gomponents"

	"github.com/nfrund/authflow/internal/auth"
	"github.com/nfrund/authflow/internal/authapi"
	"github.com/nfrund/authflow/internal/middleware"
	"github.com/nfrund/authflow/internal/rendering"
	"github.com/nfrund/authflow/internal/session"
	"github.com/nfrund/authflow/internal/view"
	dto "github.com/nfrund/authflow/internal/view/dto/auth"
	"github.com/nfrund/authflow/web/src/templates/layouts"
	"github.com/nfrund/authflow/web/src/templates/pages"
)

// MsgSignedOut is flashed after logout.
const MsgSignedOut = "You have been signed out."

// AuthHandler serves the sign-in and sign-up forms and drives the auth
// workflows for each submission.
type AuthHandler struct {
	api      authapi.Service
	stores   session.Factory
	renderer rendering.Renderer
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(api authapi.Service, stores session.Factory, renderer rendering.Renderer) *AuthHandler {
	return &AuthHandler{
		api:      api,
		stores:   stores,
		renderer: renderer,
	}
}

// LoginGet renders the sign-in page (GET /login).
func (h *AuthHandler) LoginGet(c echo.Context) error {
	pageContent := view.AdaptGomponentToTempl(pages.Login(dto.LoginData{}))
	return h.renderer.RenderPage(c, http.StatusOK, layouts.Base("Sign In", view.GetFlashData(c), pageContent))
}

// LoginPost handles the sign-in form submission (POST /login).
func (h *AuthHandler) LoginPost(c echo.Context) error {
	var req LoginFormRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid form submission")
	}

	ctx := c.Request().Context()
	store, err := h.stores(c)
	if err != nil {
		return fmt.Errorf("failed to resolve token store: %w", err)
	}

	nav := &pendingNavigation{}
	initiator := auth.NewInitiator(h.api, store, nav, auth.WithLogger(middleware.FromContext(ctx)))
	result, err := initiator.Login(ctx, req.Credentials())
	if err != nil {
		return err
	}
	if nav.requested() {
		return respondNavigation(c, nav)
	}

	data := dto.LoginData{
		Username: req.Username,
		Errors:   result.Fields,
		Message:  result.Message,
	}
	return h.renderForm(c, "Sign In", pages.LoginForm(data), pages.Login(data))
}

// RegisterGet renders the sign-up page (GET /register).
func (h *AuthHandler) RegisterGet(c echo.Context) error {
	pageContent := view.AdaptGomponentToTempl(pages.Register(dto.RegisterData{}))
	return h.renderer.RenderPage(c, http.StatusOK, layouts.Base("Sign Up", view.GetFlashData(c), pageContent))
}

// RegisterPost handles the sign-up form submission (POST /register).
func (h *AuthHandler) RegisterPost(c echo.Context) error {
	var req RegisterFormRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid form submission")
	}

	ctx := c.Request().Context()
	store, err := h.stores(c)
	if err != nil {
		return fmt.Errorf("failed to resolve token store: %w", err)
	}

	nav := &pendingNavigation{}
	composer := auth.NewComposer(h.api, store, nav, auth.WithLogger(middleware.FromContext(ctx)))
	result, err := composer.Register(ctx, req.Registration())
	if err != nil {
		return err
	}
	if nav.requested() {
		return respondNavigation(c, nav)
	}

	data := dto.RegisterData{
		Username: req.Username,
		Email:    req.Email,
		Errors:   result.Fields,
		Message:  result.Message,
		Success:  result.Success,
	}
	if result.ClearForm {
		data.Username, data.Email = "", ""
	}
	return h.renderForm(c, "Sign Up", pages.RegisterForm(data), pages.Register(data))
}

// Logout clears the stored token and sends the user back to sign-in
// (POST /logout).
func (h *AuthHandler) Logout(c echo.Context) error {
	store, err := h.stores(c)
	if err != nil {
		return fmt.Errorf("failed to resolve token store: %w", err)
	}
	if err := store.ClearToken(c.Request().Context()); err != nil {
		return fmt.Errorf("failed to clear session token: %w", err)
	}
	view.SetFlashSuccess(c, MsgSignedOut)
	return c.Redirect(http.StatusSeeOther, "/login")
}

// renderForm answers htmx with the bare form so it can be swapped in place,
// and everything else with the whole page.
func (h *AuthHandler) renderForm(c echo.Context, title string, fragment, page cmp.Node) error {
	if isHTMX(c) {
		return h.renderer.RenderPage(c, http.StatusOK, fragment)
	}
	pageContent := view.AdaptGomponentToTempl(page)
	return h.renderer.RenderPage(c, http.StatusOK, layouts.Base(title, view.FlashData{}, pageContent))
}
