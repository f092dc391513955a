// Package app wires the services of both front ends with a samber/do
// injector so the server and the CLI build them the same way.
package app

import (
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/samber/do/v2"

	"github.com/nfrund/authflow/internal/authapi"
	"github.com/nfrund/authflow/internal/config"
	"github.com/nfrund/authflow/internal/rendering"
	"github.com/nfrund/authflow/internal/server"
	"github.com/nfrund/authflow/internal/session"
)

// WebSessionPrefix namespaces the per-browser token keys in redis.
const WebSessionPrefix = "authflow:web"

// RedisConn is the shared redis client. The injector closes it on shutdown.
type RedisConn struct {
	*redis.Client
}

// Shutdown implements do.ShutdownerWithError.
func (r *RedisConn) Shutdown() error {
	return r.Close()
}

// New builds the injector for cfg. Services are created lazily on first
// invoke, so the CLI never builds the HTTP server and the cookie-backed
// server never dials redis.
func New(cfg config.Provider) *do.RootScope {
	i := do.New()
	do.ProvideValue(i, cfg)
	do.Provide(i, provideAPI)
	do.Provide(i, provideRedis)
	do.Provide(i, provideStores)
	do.Provide(i, provideRenderer)
	do.Provide(i, provideServer)
	return i
}

func provideAPI(i do.Injector) (authapi.Service, error) {
	cfg := do.MustInvoke[config.Provider](i)
	if cfg.GetAPIBaseURL() == "" {
		return nil, fmt.Errorf("auth api base url is not configured")
	}
	var opts []authapi.Option
	if d := cfg.GetAPITimeout(); d > 0 {
		opts = append(opts, authapi.WithTimeout(d))
	}
	return authapi.NewClient(cfg.GetAPIBaseURL(), opts...), nil
}

func provideRedis(i do.Injector) (*RedisConn, error) {
	cfg := do.MustInvoke[config.Provider](i)
	client, err := session.NewRedisClient(cfg.GetRedisURL())
	if err != nil {
		return nil, err
	}
	return &RedisConn{Client: client}, nil
}

func provideStores(i do.Injector) (session.Factory, error) {
	cfg := do.MustInvoke[config.Provider](i)
	switch cfg.GetTokenStore() {
	case "redis":
		conn, err := do.Invoke[*RedisConn](i)
		if err != nil {
			return nil, err
		}
		return session.RedisFactory(conn.Client, WebSessionPrefix), nil
	default:
		return session.CookieFactory(), nil
	}
}

func provideRenderer(do.Injector) (rendering.Renderer, error) {
	return rendering.NewUniversalRenderer(), nil
}

func provideServer(i do.Injector) (*server.Server, error) {
	api, err := do.Invoke[authapi.Service](i)
	if err != nil {
		return nil, err
	}
	stores, err := do.Invoke[session.Factory](i)
	if err != nil {
		return nil, err
	}
	s := server.New(server.Dependencies{
		Config:   do.MustInvoke[config.Provider](i),
		API:      api,
		Stores:   stores,
		Renderer: do.MustInvoke[rendering.Renderer](i),
	})
	s.RegisterRoutes()
	return s, nil
}
