// Package auth holds the sign-in and sign-up workflows: validate locally, make
// the network call, classify the answer, and on success store the token and
// move the user to the dashboard.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/nfrund/authflow/internal/authapi"
	"github.com/nfrund/authflow/internal/session"
	"github.com/nfrund/authflow/internal/validation"
)

// ErrSessionStore is wrapped when the token could not be persisted.
var ErrSessionStore = errors.New("failed to store session token")

// Option configures an Initiator or a Composer.
type Option func(*options)

type options struct {
	onLoading LoadingFunc
	logger    *slog.Logger
}

// WithLoading observes the loading indicator of the form.
func WithLoading(fn LoadingFunc) Option {
	return func(o *options) { o.onLoading = fn }
}

// WithLogger replaces the default slog logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

func buildOptions(opts []Option) options {
	o := options{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Initiator runs the sign-in workflow for one form instance.
type Initiator struct {
	api    authapi.Service
	store  session.TokenStore
	nav    Navigator
	sub    *Submission
	logger *slog.Logger
}

// NewInitiator creates an Initiator.
func NewInitiator(api authapi.Service, store session.TokenStore, nav Navigator, opts ...Option) *Initiator {
	o := buildOptions(opts)
	return &Initiator{
		api:    api,
		store:  store,
		nav:    nav,
		sub:    NewSubmission(o.onLoading),
		logger: o.logger,
	}
}

// Submission exposes the form state.
func (i *Initiator) Submission() *Submission { return i.sub }

// Login validates creds, calls the login endpoint once, and on success stores
// the token and routes to the dashboard. The returned error is reserved for
// a concurrent submission or a token store failure; every user-facing outcome
// is in the result.
func (i *Initiator) Login(ctx context.Context, creds validation.Credentials) (LoginResult, error) {
	if errs := validation.ValidateLogin(creds); !errs.Empty() {
		return LoginResult{Outcome: OutcomeInvalid, Feedback: validationFeedback(errs)}, nil
	}

	if err := i.sub.Begin(); err != nil {
		return LoginResult{}, err
	}
	final := Failed
	defer func() { i.sub.Settle(final) }()

	resp, err := i.api.Login(ctx, authapi.LoginRequest{
		Username: creds.Username,
		Password: creds.Password,
	})
	if err != nil {
		i.logger.Warn("Login request failed", "username", creds.Username, "error", err)
		return LoginResult{Outcome: OutcomeTransportError, Feedback: TransportFeedback()}, nil
	}

	if !resp.Authenticated() {
		fb := CredentialFeedback(resp.Message)
		i.logger.Info("Login rejected",
			"username", creds.Username,
			"status", resp.StatusCode,
			"routed_to", Classify(resp.Message).String(),
		)
		return LoginResult{Outcome: OutcomeRejected, Feedback: fb}, nil
	}

	if err := i.store.SetToken(ctx, resp.Token); err != nil {
		i.logger.Error("Failed to store session token", "username", creds.Username, "error", err)
		return LoginResult{}, fmt.Errorf("%w: %v", ErrSessionStore, err)
	}

	final = Success
	i.logger.Info("Login succeeded", "username", creds.Username)
	i.nav.Navigate(ctx, DashboardPath, NavigateRoute)
	return LoginResult{Outcome: OutcomeAuthenticated}, nil
}
