package session

import (
	"context"
	"fmt"

	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
)

// CookieSessionName is the gorilla session that carries the token in the
// user's signed cookie.
const CookieSessionName = "authflow-session"

// CookieMaxAge is the session cookie lifetime in seconds. Browsers cap
// persistent cookies at 400 days, so this is as close to "never" as they go.
const CookieMaxAge = 400 * 24 * 60 * 60

// CookieStore reads and writes the token in the cookie session of a single
// echo request. Build one per request; the session middleware must be
// installed on the router.
type CookieStore struct {
	c echo.Context
}

// NewCookieStore binds a CookieStore to the request behind c.
func NewCookieStore(c echo.Context) *CookieStore {
	return &CookieStore{c: c}
}

// Token returns the token carried by the request's session cookie.
func (s *CookieStore) Token(ctx context.Context) (string, error) {
	sess, err := session.Get(CookieSessionName, s.c)
	if err != nil {
		return "", fmt.Errorf("failed to load session: %w", err)
	}
	token, ok := sess.Values[TokenKey].(string)
	if !ok || token == "" {
		return "", ErrNoToken
	}
	return token, nil
}

// SetToken stores token in the session and writes the cookie to the response.
func (s *CookieStore) SetToken(ctx context.Context, token string) error {
	sess, err := session.Get(CookieSessionName, s.c)
	if err != nil {
		return fmt.Errorf("failed to load session: %w", err)
	}
	sess.Values[TokenKey] = token
	if err := sess.Save(s.c.Request(), s.c.Response()); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// ClearToken removes the token from the session.
func (s *CookieStore) ClearToken(ctx context.Context) error {
	sess, err := session.Get(CookieSessionName, s.c)
	if err != nil {
		return fmt.Errorf("failed to load session: %w", err)
	}
	delete(sess.Values, TokenKey)
	if err := sess.Save(s.c.Request(), s.c.Response()); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}
