package session

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

// sessionIDKey holds the per-browser id used by the redis-backed factory.
const sessionIDKey = "sid"

// Factory resolves the token store that belongs to the browser behind c.
type Factory func(c echo.Context) (TokenStore, error)

// CookieFactory keeps the token itself in the signed cookie.
func CookieFactory() Factory {
	return func(c echo.Context) (TokenStore, error) {
		return NewCookieStore(c), nil
	}
}

// RedisFactory keeps only a random browser id in the cookie and the token in
// redis under "<prefix>:<id>:token".
func RedisFactory(client redis.UniversalClient, prefix string) Factory {
	return func(c echo.Context) (TokenStore, error) {
		sess, err := session.Get(CookieSessionName, c)
		if err != nil {
			return nil, fmt.Errorf("failed to load session: %w", err)
		}
		id, _ := sess.Values[sessionIDKey].(string)
		if id == "" {
			id = uuid.NewString()
			sess.Values[sessionIDKey] = id
			if err := sess.Save(c.Request(), c.Response()); err != nil {
				return nil, fmt.Errorf("failed to save session: %w", err)
			}
		}
		return NewRedisStore(client, prefix+":"+id), nil
	}
}
