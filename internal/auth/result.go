package auth

import "github.com/nfrund/authflow/internal/validation"

// Fixed user-facing messages.
const (
	MsgNetworkError       = "Network error"
	MsgLoginFailed        = "Login failed"
	MsgRegistrationFailed = "Registration failed"
)

// Outcome is how a submission ended.
type Outcome int

const (
	// OutcomeInvalid means local validation failed; nothing was sent.
	OutcomeInvalid Outcome = iota
	// OutcomeRejected means the auth service answered with a failure.
	OutcomeRejected
	// OutcomeTransportError means no usable answer arrived.
	OutcomeTransportError
	// OutcomeAuthenticated means a token was stored and the user was navigated.
	OutcomeAuthenticated
	// OutcomeRegistered means the account was created but the follow-up login
	// did not establish a session.
	OutcomeRegistered
)

func (o Outcome) String() string {
	switch o {
	case OutcomeInvalid:
		return "invalid"
	case OutcomeRejected:
		return "rejected"
	case OutcomeTransportError:
		return "transport_error"
	case OutcomeAuthenticated:
		return "authenticated"
	case OutcomeRegistered:
		return "registered"
	default:
		return "unknown"
	}
}

// ErrorKind is the class of error shown to the user.
type ErrorKind int

const (
	KindNone ErrorKind = iota
	// KindValidation is a local, pre-submission field violation.
	KindValidation
	// KindCredential is a server-reported login failure.
	KindCredential
	// KindRegistration is a server-reported registration failure.
	KindRegistration
	// KindTransport is a connectivity failure or a malformed response.
	KindTransport
)

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindCredential:
		return "credential"
	case KindRegistration:
		return "registration"
	case KindTransport:
		return "transport"
	default:
		return "none"
	}
}

// Feedback is what the form displays after a submission: field errors under
// the inputs and an optional form-level banner.
type Feedback struct {
	Kind    ErrorKind
	Fields  validation.FieldErrors
	Message string
}

// HasErrors reports whether anything should be shown as an error.
func (f Feedback) HasErrors() bool {
	return len(f.Fields) > 0 || f.Message != ""
}

// LoginResult is the outcome of a sign-in submission.
type LoginResult struct {
	Outcome Outcome
	Feedback
}

// RegisterResult is the outcome of a sign-up submission.
type RegisterResult struct {
	Outcome Outcome
	Feedback
	// Success is the flag shown to the user; it is set for both
	// OutcomeAuthenticated and OutcomeRegistered.
	Success bool
	// ClearForm tells the front end to reset every input.
	ClearForm bool
	// AccountID is the id issued by the registration endpoint.
	AccountID string
}

// SessionEstablished reports whether the user now holds a token.
func (r RegisterResult) SessionEstablished() bool {
	return r.Outcome == OutcomeAuthenticated
}

// CredentialFeedback turns a server-reported login message into form
// feedback using Classify. An empty message becomes the generic
// "Login failed".
func CredentialFeedback(message string) Feedback {
	fb := Feedback{Kind: KindCredential}
	if field := Classify(message).Field(); field != "" {
		fb.Fields = validation.FieldErrors{field: message}
		return fb
	}
	fb.Message = message
	if fb.Message == "" {
		fb.Message = MsgLoginFailed
	}
	return fb
}

// RegistrationFeedback wraps a server-reported registration failure. It is
// never routed to a field, even when the message names one.
func RegistrationFeedback(message string) Feedback {
	if message == "" {
		message = MsgRegistrationFailed
	}
	return Feedback{Kind: KindRegistration, Message: message}
}

// TransportFeedback is the fixed feedback for connectivity failures.
func TransportFeedback() Feedback {
	return Feedback{Kind: KindTransport, Message: MsgNetworkError}
}

func validationFeedback(errs validation.FieldErrors) Feedback {
	return Feedback{Kind: KindValidation, Fields: errs}
}
