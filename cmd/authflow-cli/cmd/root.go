package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/samber/do/v2"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/nfrund/authflow/internal/app"
	"github.com/nfrund/authflow/internal/auth"
	"github.com/nfrund/authflow/internal/authapi"
	"github.com/nfrund/authflow/internal/config"
	"github.com/nfrund/authflow/internal/logging"
	"github.com/nfrund/authflow/internal/session"
)

// CLISessionPrefix namespaces the shared token slot in redis.
const CLISessionPrefix = "authflow:cli"

// errNotAuthenticated makes the process exit non-zero after the outcome has
// already been printed.
var errNotAuthenticated = errors.New("not authenticated")

// cliOptions carries the persistent flags and the injected filesystem.
type cliOptions struct {
	fs       afero.Fs
	env      func(string) string
	apiBase  string
	tokenDir string
	redisURL string
	logLevel string
}

// runtime is what a subcommand needs once flags are parsed.
type runtime struct {
	api      authapi.Service
	store    session.TokenStore
	logger   *slog.Logger
	shutdown func()
}

// NewRootCmd builds the command tree. fs backs the token file and env looks
// up configuration.
func NewRootCmd(fs afero.Fs, env func(string) string) *cobra.Command {
	opts := &cliOptions{fs: fs, env: env}

	rootCmd := &cobra.Command{
		Use:   "authflow-cli",
		Short: "Sign in and sign up against the auth service from a terminal",
		Long: `authflow-cli drives the same sign-in and sign-up workflows as the web forms.

The session token is kept in a file under --token-dir, or in redis when
--redis-url is set so several front ends can share it.

Use "authflow-cli [command] --help" for more information about a command.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.apiBase, "api-base", "", "auth service base URL (default $AUTH_API_BASE_URL)")
	flags.StringVar(&opts.tokenDir, "token-dir", "", "directory holding the token file (default ~/.authflow)")
	flags.StringVar(&opts.redisURL, "redis-url", "", "store the token in redis instead of a file")
	flags.StringVar(&opts.logLevel, "log-level", "warn", "log level written to stderr")

	rootCmd.AddCommand(
		newLoginCmd(opts),
		newRegisterCmd(opts),
		newTokenCmd(opts),
		newLogoutCmd(opts),
		newVersionCmd(),
	)
	return rootCmd
}

// Execute runs the CLI against the real filesystem and environment.
func Execute() {
	config.New() // loads .env when present
	if err := NewRootCmd(afero.NewOsFs(), os.Getenv).Execute(); err != nil {
		if !errors.Is(err, errNotAuthenticated) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}

// setup resolves configuration, flags overriding the environment, and builds
// the services through the shared injector.
func (o *cliOptions) setup(cmd *cobra.Command, needAPI bool) (*runtime, error) {
	cfg := config.FromEnv(o.env)
	if o.apiBase != "" {
		cfg.APIBaseURL = strings.TrimRight(o.apiBase, "/")
	}
	cfg.RedisURL = o.redisURL

	logger := logging.NewWithWriter(cmd.ErrOrStderr(), cfg.GetLogFormat(), o.logLevel)
	injector := app.New(cfg)
	rt := &runtime{logger: logger, shutdown: func() { injector.Shutdown() }}

	if needAPI {
		api, err := do.Invoke[authapi.Service](injector)
		if err != nil {
			rt.shutdown()
			return nil, fmt.Errorf("%w (set --api-base or AUTH_API_BASE_URL)", err)
		}
		rt.api = api
	}

	if o.redisURL != "" {
		conn, err := do.Invoke[*app.RedisConn](injector)
		if err != nil {
			rt.shutdown()
			return nil, err
		}
		rt.store = session.NewRedisStore(conn.Client, CLISessionPrefix)
		return rt, nil
	}

	dir, err := o.resolveTokenDir()
	if err != nil {
		rt.shutdown()
		return nil, err
	}
	rt.store = session.NewFileStore(o.fs, dir)
	return rt, nil
}

func (o *cliOptions) resolveTokenDir() (string, error) {
	if o.tokenDir != "" {
		return o.tokenDir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate home directory: %w", err)
	}
	return filepath.Join(home, ".authflow"), nil
}

// printNavigator reports where the user would be taken next.
type printNavigator struct {
	w io.Writer
}

func (p printNavigator) Navigate(_ context.Context, path string, mode auth.NavigationMode) {
	fmt.Fprintf(p.w, "Continue at %s (%s)\n", path, mode)
}

// busyLabel prints label when a submission starts.
func busyLabel(w io.Writer, label string) auth.LoadingFunc {
	return func(loading bool) {
		if loading {
			fmt.Fprintln(w, label)
		}
	}
}

// printFeedback writes field errors in form order, then the banner.
func printFeedback(w io.Writer, fb auth.Feedback) {
	for _, field := range fb.Fields.Fields() {
		fmt.Fprintf(w, "  %s: %s\n", field, fb.Fields.Get(field))
	}
	if fb.Message != "" {
		fmt.Fprintf(w, "  %s\n", fb.Message)
	}
}

// prompter reads missing flag values from the command's stdin.
type prompter struct {
	in  *bufio.Reader
	src io.Reader
	out io.Writer

	isTerminal   func(fd int) bool
	readPassword func(fd int) ([]byte, error)
}

func newPrompter(cmd *cobra.Command) *prompter {
	src := cmd.InOrStdin()
	return &prompter{
		in:           bufio.NewReader(src),
		src:          src,
		out:          cmd.ErrOrStderr(),
		isTerminal:   term.IsTerminal,
		readPassword: term.ReadPassword,
	}
}

// Value returns current, or reads one line when it is empty.
func (p *prompter) Value(label, current string) (string, error) {
	if current != "" {
		return current, nil
	}
	fmt.Fprintf(p.out, "%s: ", label)
	line, err := p.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read %s: %w", strings.ToLower(label), err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// Secret is Value without echo when stdin is a terminal.
func (p *prompter) Secret(label, current string) (string, error) {
	if current != "" {
		return current, nil
	}
	f, ok := p.src.(*os.File)
	if !ok || !p.isTerminal(int(f.Fd())) {
		return p.Value(label, current)
	}
	fmt.Fprintf(p.out, "%s: ", label)
	secret, err := p.readPassword(int(f.Fd()))
	fmt.Fprintln(p.out)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", strings.ToLower(label), err)
	}
	return string(secret), nil
}
