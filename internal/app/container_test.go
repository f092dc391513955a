package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/samber/do/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nfrund/authflow/internal/authapi"
	"github.com/nfrund/authflow/internal/config"
	"github.com/nfrund/authflow/internal/server"
	"github.com/nfrund/authflow/internal/session"
)

func testConfig(env map[string]string) *config.Config {
	return config.FromEnv(func(key string) string { return env[key] })
}

func TestNew_CookieServer(t *testing.T) {
	cfg := testConfig(map[string]string{
		"AUTH_API_BASE_URL": "http://auth.invalid",
		"SESSION_SECRET":    "secret-secret-secret-secret",
	})
	injector := New(cfg)
	defer injector.Shutdown()

	s, err := do.Invoke[*server.Server](injector)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	s.E.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	_, err = do.Invoke[authapi.Service](injector)
	require.NoError(t, err)
}

func TestNew_MissingBaseURL(t *testing.T) {
	injector := New(testConfig(map[string]string{"SESSION_SECRET": "s"}))
	defer injector.Shutdown()

	_, err := do.Invoke[authapi.Service](injector)
	assert.Error(t, err)
}

func TestNew_RedisStores(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := testConfig(map[string]string{
		"AUTH_API_BASE_URL": "http://auth.invalid",
		"SESSION_SECRET":    "secret-secret-secret-secret",
		"TOKEN_STORE":       "redis",
		"REDIS_URL":         "redis://" + mr.Addr(),
	})
	injector := New(cfg)

	conn, err := do.Invoke[*RedisConn](injector)
	require.NoError(t, err)
	require.NoError(t, conn.Ping(context.Background()).Err())

	stores, err := do.Invoke[session.Factory](injector)
	require.NoError(t, err)
	require.NotNil(t, stores)

	injector.Shutdown()
	assert.Error(t, conn.Ping(context.Background()).Err(), "client should be closed on shutdown")
}
