package auth

import (
	"context"
	"log/slog"

	"github.com/nfrund/authflow/internal/authapi"
	"github.com/nfrund/authflow/internal/session"
	"github.com/nfrund/authflow/internal/validation"
)

// Composer runs the sign-up workflow for one form instance: register, then
// log in with the same credentials.
type Composer struct {
	api    authapi.Service
	store  session.TokenStore
	nav    Navigator
	sub    *Submission
	logger *slog.Logger
}

// NewComposer creates a Composer.
func NewComposer(api authapi.Service, store session.TokenStore, nav Navigator, opts ...Option) *Composer {
	o := buildOptions(opts)
	return &Composer{
		api:    api,
		store:  store,
		nav:    nav,
		sub:    NewSubmission(o.onLoading),
		logger: o.logger,
	}
}

// Submission exposes the form state.
func (c *Composer) Submission() *Submission { return c.sub }

// Register validates form, creates the account, then logs in.
//
// Registration failures are always generic, unlike sign-in where the server
// message is routed to a field. Once the account exists the result is a
// success even if the follow-up login fails; that case is reported as
// OutcomeRegistered with no token stored and no navigation.
func (c *Composer) Register(ctx context.Context, form validation.Registration) (RegisterResult, error) {
	if errs := validation.ValidateRegistration(form); !errs.Empty() {
		return RegisterResult{Outcome: OutcomeInvalid, Feedback: validationFeedback(errs)}, nil
	}

	if err := c.sub.Begin(); err != nil {
		return RegisterResult{}, err
	}
	final := Failed
	defer func() { c.sub.Settle(final) }()

	reg, err := c.api.Register(ctx, authapi.RegisterRequest{
		Username: form.Username,
		Email:    form.Email,
		Password: form.Password,
	})
	if err != nil {
		c.logger.Warn("Registration request failed", "username", form.Username, "error", err)
		return RegisterResult{Outcome: OutcomeTransportError, Feedback: TransportFeedback()}, nil
	}
	if !reg.Created() {
		c.logger.Info("Registration rejected", "username", form.Username, "status", reg.StatusCode)
		return RegisterResult{Outcome: OutcomeRejected, Feedback: RegistrationFeedback(reg.Message)}, nil
	}

	// The account exists from here on.
	final = Success
	result := RegisterResult{
		Outcome:   OutcomeRegistered,
		Success:   true,
		ClearForm: true,
		AccountID: reg.AccountID(),
	}

	// Validity was just confirmed by the registration, so no second check.
	creds := form.Credentials()
	login, err := c.api.Login(ctx, authapi.LoginRequest{Username: creds.Username, Password: creds.Password})
	switch {
	case err != nil:
		c.logger.Warn("Login after registration failed", "username", form.Username, "error", err)
		return result, nil
	case !login.Authenticated():
		c.logger.Warn("Login after registration rejected", "username", form.Username, "status", login.StatusCode)
		return result, nil
	}

	if err := c.store.SetToken(ctx, login.Token); err != nil {
		c.logger.Error("Failed to store session token after registration", "username", form.Username, "error", err)
		return result, nil
	}

	c.logger.Info("Registration succeeded with session", "username", form.Username, "account_id", reg.AccountID())
	c.nav.Navigate(ctx, DashboardPath, NavigateReload)
	result.Outcome = OutcomeAuthenticated
	return result, nil
}
