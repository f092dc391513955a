package authapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordedRequest captures what the fake service received.
type recordedRequest struct {
	Method  string
	Path    string
	Headers http.Header
	Body    map[string]any
}

type requestLog struct {
	mu   sync.Mutex
	reqs []recordedRequest
}

func (l *requestLog) add(r recordedRequest) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.reqs = append(l.reqs, r)
}

func (l *requestLog) all() []recordedRequest {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]recordedRequest(nil), l.reqs...)
}

func newFakeService(t *testing.T, status int, reply string) (*httptest.Server, *requestLog) {
	t.Helper()
	seen := &requestLog{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		seen.add(recordedRequest{Method: r.Method, Path: r.URL.Path, Headers: r.Header.Clone(), Body: body})
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(reply))
	}))
	t.Cleanup(srv.Close)
	return srv, seen
}

func TestClientLogin(t *testing.T) {
	t.Run("decodes a token", func(t *testing.T) {
		srv, seen := newFakeService(t, http.StatusOK, `{"token":"abc"}`)
		client := NewClient(srv.URL + "/")

		resp, err := client.Login(context.Background(), LoginRequest{Username: "alice", Password: "pw"})
		require.NoError(t, err)
		assert.True(t, resp.OK)
		assert.True(t, resp.Authenticated())
		assert.Equal(t, "abc", resp.Token)

		reqs := seen.all()
		require.Len(t, reqs, 1)
		got := reqs[0]
		assert.Equal(t, http.MethodPost, got.Method)
		assert.Equal(t, LoginPath, got.Path)
		assert.Equal(t, "application/json", got.Headers.Get("Content-Type"))
		assert.NotEmpty(t, got.Headers.Get("X-Request-ID"))
		assert.Equal(t, map[string]any{"username": "alice", "password": "pw"}, got.Body)
	})

	t.Run("non-2xx is a response, not an error", func(t *testing.T) {
		srv, _ := newFakeService(t, http.StatusUnauthorized, `{"message":"Invalid username"}`)
		resp, err := NewClient(srv.URL).Login(context.Background(), LoginRequest{Username: "a", Password: "b"})
		require.NoError(t, err)
		assert.False(t, resp.OK)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, "Invalid username", resp.Message)
		assert.False(t, resp.Authenticated())
	})

	t.Run("ok without token is not authenticated", func(t *testing.T) {
		srv, _ := newFakeService(t, http.StatusOK, `{"message":"welcome"}`)
		resp, err := NewClient(srv.URL).Login(context.Background(), LoginRequest{})
		require.NoError(t, err)
		assert.True(t, resp.OK)
		assert.False(t, resp.Authenticated())
	})

	t.Run("malformed body is a transport error", func(t *testing.T) {
		srv, _ := newFakeService(t, http.StatusBadGateway, `<html>bad gateway</html>`)
		_, err := NewClient(srv.URL).Login(context.Background(), LoginRequest{})
		assert.ErrorIs(t, err, ErrTransport)
	})

	t.Run("null body is a transport error", func(t *testing.T) {
		srv, _ := newFakeService(t, http.StatusOK, `null`)
		_, err := NewClient(srv.URL).Login(context.Background(), LoginRequest{})
		assert.ErrorIs(t, err, ErrTransport)
	})

	t.Run("connection failure is a transport error", func(t *testing.T) {
		srv, _ := newFakeService(t, http.StatusOK, `{}`)
		url := srv.URL
		srv.Close()
		_, err := NewClient(url).Login(context.Background(), LoginRequest{})
		assert.ErrorIs(t, err, ErrTransport)
	})
}

func TestClientRegister(t *testing.T) {
	t.Run("decodes an id", func(t *testing.T) {
		srv, seen := newFakeService(t, http.StatusCreated, `{"id":"u1"}`)
		resp, err := NewClient(srv.URL).Register(context.Background(), RegisterRequest{
			Username: "alice", Email: "alice@example.com", Password: "Passw0rd!",
		})
		require.NoError(t, err)
		assert.True(t, resp.Created())
		assert.Equal(t, "u1", resp.AccountID())

		reqs := seen.all()
		require.Len(t, reqs, 1)
		assert.Equal(t, RegisterPath, reqs[0].Path)
		assert.Equal(t, map[string]any{
			"username": "alice", "email": "alice@example.com", "password": "Passw0rd!",
		}, reqs[0].Body)
	})

	t.Run("duplicate user", func(t *testing.T) {
		srv, _ := newFakeService(t, http.StatusConflict, `{"message":"Username already taken"}`)
		resp, err := NewClient(srv.URL).Register(context.Background(), RegisterRequest{})
		require.NoError(t, err)
		assert.False(t, resp.Created())
		assert.Equal(t, "Username already taken", resp.Message)
	})

	t.Run("numeric id", func(t *testing.T) {
		srv, _ := newFakeService(t, http.StatusCreated, `{"id":42}`)
		resp, err := NewClient(srv.URL).Register(context.Background(), RegisterRequest{})
		require.NoError(t, err)
		assert.True(t, resp.Created())
		assert.Equal(t, "42", resp.AccountID())
	})
}

func TestRegisterResponseCreated(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		created bool
	}{
		{name: "string", id: `"u1"`, created: true},
		{name: "empty string", id: `""`, created: false},
		{name: "number", id: `42`, created: true},
		{name: "zero", id: `0`, created: false},
		{name: "true", id: `true`, created: true},
		{name: "false", id: `false`, created: false},
		{name: "null", id: `null`, created: false},
		{name: "object", id: `{"uuid":"x"}`, created: true},
		{name: "empty array", id: `[]`, created: true},
		{name: "missing", id: ``, created: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := `{}`
			if tt.id != "" {
				body = `{"id":` + tt.id + `}`
			}
			srv, _ := newFakeService(t, http.StatusCreated, body)
			resp, err := NewClient(srv.URL).Register(context.Background(), RegisterRequest{})
			require.NoError(t, err)
			assert.Equal(t, tt.created, resp.Created())
		})
	}
}

func TestClientTimeout(t *testing.T) {
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-block
	}))
	defer srv.Close()
	defer close(block)

	client := NewClient(srv.URL, WithTimeout(50*time.Millisecond))
	_, err := client.Login(context.Background(), LoginRequest{})
	assert.ErrorIs(t, err, ErrTransport)
}

func TestWithTimeoutLeavesSharedClientAlone(t *testing.T) {
	shared := &http.Client{}

	for _, opts := range [][]Option{
		{WithHTTPClient(shared), WithTimeout(time.Second)},
		{WithTimeout(time.Second), WithHTTPClient(shared)},
	} {
		c := NewClient("http://auth.test", opts...)
		assert.Equal(t, time.Second, c.httpClient.Timeout)
		assert.NotSame(t, shared, c.httpClient)
	}
	assert.Zero(t, shared.Timeout)

	c := NewClient("http://auth.test", WithHTTPClient(shared))
	assert.Same(t, shared, c.httpClient)
}
