package auth

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/nfrund/authflow/internal/validation"
)

// Classification is where a server-reported login message is shown.
type Classification int

const (
	// Generic messages render as a form-level banner.
	Generic Classification = iota
	// UsernameField messages render under the username input.
	UsernameField
	// PasswordField messages render under the password input.
	PasswordField
)

func (c Classification) String() string {
	switch c {
	case UsernameField:
		return "username"
	case PasswordField:
		return "password"
	default:
		return "generic"
	}
}

// Field returns the form field key for c, or "" for Generic.
func (c Classification) Field() string {
	switch c {
	case UsernameField:
		return validation.FieldUsername
	case PasswordField:
		return validation.FieldPassword
	default:
		return ""
	}
}

// Classify routes a free-text login failure message by case-insensitive
// substring match. The auth service has no structured error codes, so this
// heuristic is the whole protocol: "username" wins over "password" when a
// message mentions both, and anything else is generic.
func Classify(message string) Classification {
	// A Caser is stateful, so each call gets its own.
	lower := cases.Lower(language.Und).String(message)
	switch {
	case strings.Contains(lower, "username"):
		return UsernameField
	case strings.Contains(lower, "password"):
		return PasswordField
	default:
		return Generic
	}
}
