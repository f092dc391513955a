package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	hxhttp "maragu.dev/gomponents-htmx/http"

	"github.com/nfrund/authflow/internal/session"
	"github.com/nfrund/authflow/internal/view"
)

// LoginPath is where unauthenticated requests are sent.
const LoginPath = "/login"

// MsgSignInRequired is flashed when a protected page is requested without a
// token.
const MsgSignInRequired = "Please sign in to continue."

// RequireToken protects routes that need a stored session token. It only
// checks that a token exists; the token itself is opaque to this service.
func RequireToken(stores session.Factory) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			store, err := stores(c)
			if err != nil {
				return err
			}
			token, err := store.Token(c.Request().Context())
			if err != nil && !errors.Is(err, session.ErrNoToken) {
				FromContext(c.Request().Context()).Error("Failed to read session token", "error", err)
				return err
			}
			if token == "" {
				view.SetFlashError(c, MsgSignInRequired)
				if hxhttp.IsRequest(c.Request().Header) {
					hxhttp.SetRedirect(c.Response().Header(), LoginPath)
					return c.NoContent(http.StatusOK)
				}
				return c.Redirect(http.StatusSeeOther, LoginPath)
			}

			return next(c)
		}
	}
}
