package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authsession "github.com/nfrund/authflow/internal/session"
)

const testSessionSecret = "a-very-secret-key-for-testing-!"

func newProtectedEcho(stores authsession.Factory) *echo.Echo {
	e := echo.New()
	e.Use(session.Middleware(sessions.NewCookieStore([]byte(testSessionSecret))))
	e.GET("/dashboard", func(c echo.Context) error {
		return c.String(http.StatusOK, "Dashboard")
	}, RequireToken(stores))
	return e
}

func fixedStore(store authsession.TokenStore) authsession.Factory {
	return func(echo.Context) (authsession.TokenStore, error) { return store, nil }
}

func TestRequireToken(t *testing.T) {
	t.Run("redirects to login without a token", func(t *testing.T) {
		e := newProtectedEcho(fixedStore(authsession.NewMemoryStore()))

		req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, LoginPath, rec.Header().Get(echo.HeaderLocation))
		assert.NotEmpty(t, rec.Header().Get("Set-Cookie"), "flash should be saved")
	})

	t.Run("htmx requests get HX-Redirect", func(t *testing.T) {
		e := newProtectedEcho(fixedStore(authsession.NewMemoryStore()))

		req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
		req.Header.Set("HX-Request", "true")
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, LoginPath, rec.Header().Get("HX-Redirect"))
	})

	t.Run("lets requests with a token through", func(t *testing.T) {
		store := authsession.NewMemoryStore()
		require.NoError(t, store.SetToken(context.Background(), "tok"))
		e := newProtectedEcho(fixedStore(store))

		req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "Dashboard", rec.Body.String())
	})

	t.Run("cookie factory round trip", func(t *testing.T) {
		e := newProtectedEcho(authsession.CookieFactory())
		e.POST("/seed", func(c echo.Context) error {
			return authsession.NewCookieStore(c).SetToken(c.Request().Context(), "tok")
		})

		seed := httptest.NewRecorder()
		e.ServeHTTP(seed, httptest.NewRequest(http.MethodPost, "/seed", nil))
		cookies := seed.Result().Cookies()
		require.NotEmpty(t, cookies)

		req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
		for _, ck := range cookies {
			req.AddCookie(ck)
		}
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})
}
