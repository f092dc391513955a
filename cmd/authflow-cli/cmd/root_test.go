package cmd

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nfrund/authflow/internal/authapi"
	"github.com/nfrund/authflow/internal/session"
)

const tokenDir = "/home/test/.authflow"

// newAuthServer answers login with a token for "alice" and rejects everyone
// else; registration succeeds for any username but "taken".
func newAuthServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case authapi.LoginPath:
			if body["username"] == "alice" || body["username"] == "new_user" {
				_ = json.NewEncoder(w).Encode(map[string]string{"token": "tok-" + body["username"]})
				return
			}
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"message": "Username not found"})
		case authapi.RegisterPath:
			if body["username"] == "taken" {
				w.WriteHeader(http.StatusConflict)
				_ = json.NewEncoder(w).Encode(map[string]string{"message": "Username already taken"})
				return
			}
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(map[string]string{"id": "acct-" + body["username"]})
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

type cliResult struct {
	err    error
	stdout string
	stderr string
}

func run(fs afero.Fs, stdin string, args ...string) cliResult {
	root := NewRootCmd(fs, func(string) string { return "" })
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.Execute()
	return cliResult{err: err, stdout: out.String(), stderr: errOut.String()}
}

func storedToken(t *testing.T, fs afero.Fs) string {
	t.Helper()
	tok, err := session.NewFileStore(fs, tokenDir).Token(context.Background())
	if err != nil {
		return ""
	}
	return tok
}

func TestLoginCommand(t *testing.T) {
	srv := newAuthServer(t)

	t.Run("stores the token and prints the destination", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		res := run(fs, "", "login", "--api-base", srv.URL, "--token-dir", tokenDir,
			"--username", "alice", "--password", "pw")

		require.NoError(t, res.err)
		assert.Contains(t, res.stdout, "Continue at /dashboard (route)")
		assert.Contains(t, res.stdout, "Signed in.")
		assert.Contains(t, res.stderr, "Signing in...")
		assert.Equal(t, "tok-alice", storedToken(t, fs))
	})

	t.Run("password is prompted when omitted", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		res := run(fs, "pw\n", "login", "--api-base", srv.URL, "--token-dir", tokenDir, "--username", "alice")

		require.NoError(t, res.err)
		assert.Contains(t, res.stderr, "Password: ")
		assert.Equal(t, "tok-alice", storedToken(t, fs))
	})

	t.Run("rejection prints the routed field and exits non-zero", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		res := run(fs, "", "login", "--api-base", srv.URL, "--token-dir", tokenDir,
			"--username", "bob", "--password", "pw")

		assert.ErrorIs(t, res.err, errNotAuthenticated)
		assert.Contains(t, res.stderr, "username: Username not found")
		assert.Empty(t, storedToken(t, fs))
	})

	t.Run("missing base url is an error", func(t *testing.T) {
		res := run(afero.NewMemMapFs(), "", "login", "--token-dir", tokenDir, "--username", "alice", "--password", "pw")
		require.Error(t, res.err)
		assert.Contains(t, res.err.Error(), "--api-base")
	})
}

func TestRegisterCommand(t *testing.T) {
	srv := newAuthServer(t)
	const pw = "Str0ng!pass"

	t.Run("creates the account and signs in", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		res := run(fs, "", "register", "--api-base", srv.URL, "--token-dir", tokenDir,
			"--username", "new_user", "--email", "new@example.com", "--password", pw, "--confirm-password", pw)

		require.NoError(t, res.err)
		assert.Contains(t, res.stdout, "Continue at /dashboard (reload)")
		assert.Contains(t, res.stdout, "Account acct-new_user created and signed in.")
		assert.Equal(t, "tok-new_user", storedToken(t, fs))
	})

	t.Run("account created without a session still exits zero", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		res := run(fs, "", "register", "--api-base", srv.URL, "--token-dir", tokenDir,
			"--username", "someone", "--email", "s@example.com", "--password", pw, "--confirm-password", pw)

		require.NoError(t, res.err)
		assert.Contains(t, res.stdout, "Account acct-someone created. Run")
		assert.Empty(t, storedToken(t, fs))
	})

	t.Run("validation errors are listed", func(t *testing.T) {
		res := run(afero.NewMemMapFs(), "", "register", "--api-base", srv.URL, "--token-dir", tokenDir,
			"--username", "ab", "--email", "bad", "--password", "weak", "--confirm-password", "other")

		assert.ErrorIs(t, res.err, errNotAuthenticated)
		assert.Contains(t, res.stderr, "username: ")
		assert.Contains(t, res.stderr, "confirmPassword: Passwords do not match")
	})

	t.Run("server rejection is generic", func(t *testing.T) {
		res := run(afero.NewMemMapFs(), "", "register", "--api-base", srv.URL, "--token-dir", tokenDir,
			"--username", "taken", "--email", "t@example.com", "--password", pw, "--confirm-password", pw)

		assert.ErrorIs(t, res.err, errNotAuthenticated)
		assert.Contains(t, res.stderr, "Username already taken")
		assert.NotContains(t, res.stderr, "username: ")
	})
}

func TestTokenAndLogoutCommands(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, session.NewFileStore(fs, tokenDir).SetToken(context.Background(), "tok-1"))

	res := run(fs, "", "token", "--token-dir", tokenDir)
	require.NoError(t, res.err)
	assert.Equal(t, "tok-1\n", res.stdout)

	res = run(fs, "", "logout", "--token-dir", tokenDir)
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "Signed out.")

	res = run(fs, "", "token", "--token-dir", tokenDir)
	assert.ErrorIs(t, res.err, errNotAuthenticated)
	assert.Contains(t, res.stderr, "Not signed in.")
}

func TestRedisTokenSlot(t *testing.T) {
	srv := newAuthServer(t)
	mr := miniredis.RunT(t)
	redisURL := "redis://" + mr.Addr()

	res := run(afero.NewMemMapFs(), "", "login", "--api-base", srv.URL, "--redis-url", redisURL,
		"--username", "alice", "--password", "pw")
	require.NoError(t, res.err)

	got, err := mr.Get(CLISessionPrefix + ":" + session.TokenKey)
	require.NoError(t, err)
	assert.Equal(t, "tok-alice", got)

	res = run(afero.NewMemMapFs(), "", "token", "--redis-url", redisURL)
	require.NoError(t, res.err)
	assert.Equal(t, "tok-alice\n", res.stdout)
}

func TestVersionCommand(t *testing.T) {
	res := run(afero.NewMemMapFs(), "", "version")
	require.NoError(t, res.err)
	assert.Equal(t, "authflow-cli v"+version+"\n", res.stdout)
}

func TestPrompterSecret(t *testing.T) {
	t.Run("terminal input is read without echo", func(t *testing.T) {
		r, w, err := os.Pipe()
		require.NoError(t, err)
		defer r.Close()
		defer w.Close()

		var stderr bytes.Buffer
		var readFrom int
		p := &prompter{
			in:           bufio.NewReader(r),
			src:          r,
			out:          &stderr,
			isTerminal:   func(int) bool { return true },
			readPassword: func(fd int) ([]byte, error) { readFrom = fd; return []byte("s3cret"), nil },
		}

		got, err := p.Secret("Password", "")
		require.NoError(t, err)
		assert.Equal(t, "s3cret", got)
		assert.Equal(t, int(r.Fd()), readFrom)
		assert.Equal(t, "Password: \n", stderr.String())
	})

	t.Run("piped input falls back to a plain line", func(t *testing.T) {
		var stderr bytes.Buffer
		src := strings.NewReader("pw\n")
		p := &prompter{
			in:           bufio.NewReader(src),
			src:          src,
			out:          &stderr,
			isTerminal:   func(int) bool { t.Fatal("not a file"); return false },
			readPassword: func(int) ([]byte, error) { t.Fatal("not a terminal"); return nil, nil },
		}

		got, err := p.Secret("Password", "")
		require.NoError(t, err)
		assert.Equal(t, "pw", got)
		assert.Equal(t, "Password: ", stderr.String())
	})

	t.Run("flag value skips the prompt", func(t *testing.T) {
		var stderr bytes.Buffer
		p := &prompter{in: bufio.NewReader(strings.NewReader("")), src: strings.NewReader(""), out: &stderr}

		got, err := p.Secret("Password", "from-flag")
		require.NoError(t, err)
		assert.Equal(t, "from-flag", got)
		assert.Empty(t, stderr.String())
	})
}
