// Package validation holds the client-side rules for the sign-in and sign-up
// forms. Everything here is pure: no I/O, no panics, and every violated field
// is reported at once.
//
// Sign-in only checks presence because the auth service is authoritative for
// existing accounts. Sign-up checks the full grammar of every field before
// anything is sent.
package validation

import (
	"errors"
	"reflect"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

// Field keys used in FieldErrors. They match the JSON names of the form fields.
const (
	FieldUsername        = "username"
	FieldEmail           = "email"
	FieldPassword        = "password"
	FieldConfirmPassword = "confirmPassword"
)

// User-facing messages.
const (
	MsgUsernameRequired = "Username is required"
	MsgPasswordRequired = "Password is required"
	MsgUsernameFormat   = "Username must be 4-20 characters, no special characters except _"
	MsgEmailFormat      = "Invalid email address"
	MsgPasswordFormat   = "Password must be 8-32 chars, 1 special, 1 number, 1 uppercase"
	MsgPasswordMismatch = "Passwords do not match"
)

// PasswordSymbols is the punctuation set a registration password must draw from.
const PasswordSymbols = `!@#$%^&*()_+-=[]{};':"\|,.<>/?`

const (
	minPasswordLen = 8
	maxPasswordLen = 32
)

var (
	usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_]{4,20}$`)
	emailPattern    = regexp.MustCompile(`^[^\s\v\p{Z}\x{FEFF}@]+@[^\s\v\p{Z}\x{FEFF}@]+\.[^\s\v\p{Z}\x{FEFF}@]+$`)
)

// Credentials is the sign-in form.
type Credentials struct {
	Username string `json:"username" form:"username" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

// Registration is the sign-up form. ConfirmPassword is only compared locally
// and never leaves the client.
type Registration struct {
	Username        string `json:"username" form:"username" validate:"username"`
	Email           string `json:"email" form:"email" validate:"simpleemail"`
	Password        string `json:"password" form:"password" validate:"strongpassword"`
	ConfirmPassword string `json:"confirmPassword" form:"confirmPassword" validate:"eqfield=Password"`
}

// Credentials returns the username/password pair used for the follow-up login.
func (r Registration) Credentials() Credentials {
	return Credentials{Username: r.Username, Password: r.Password}
}

var validate = newValidate()

func newValidate() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	mustRegister(v, "username", func(fl validator.FieldLevel) bool { return ValidUsername(fl.Field().String()) })
	mustRegister(v, "simpleemail", func(fl validator.FieldLevel) bool { return ValidEmail(fl.Field().String()) })
	mustRegister(v, "strongpassword", func(fl validator.FieldLevel) bool { return ValidPassword(fl.Field().String()) })
	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(err)
	}
}

// ValidUsername reports whether s is 4-20 letters, digits or underscores.
func ValidUsername(s string) bool {
	return usernamePattern.MatchString(s)
}

// ValidEmail reports whether s has the local@domain.tld shape: one @, no
// whitespace, and a dot somewhere after the @.
func ValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// ValidPassword reports whether s is 8-32 characters on a single line and
// contains an uppercase letter, a digit and a symbol from PasswordSymbols.
func ValidPassword(s string) bool {
	if n := utf8.RuneCountInString(s); n < minPasswordLen || n > maxPasswordLen {
		return false
	}
	var upper, digit, symbol bool
	for _, r := range s {
		switch {
		case r == '\n' || r == '\r' || r == '\u2028' || r == '\u2029':
			return false
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		case strings.ContainsRune(PasswordSymbols, r):
			symbol = true
		}
	}
	return upper && digit && symbol
}

// ValidateLogin checks that both sign-in fields are present.
func ValidateLogin(c Credentials) FieldErrors {
	return collect(c, map[string]string{
		FieldUsername: MsgUsernameRequired,
		FieldPassword: MsgPasswordRequired,
	})
}

// ValidateRegistration checks every sign-up field against its grammar.
func ValidateRegistration(r Registration) FieldErrors {
	return collect(r, map[string]string{
		FieldUsername:        MsgUsernameFormat,
		FieldEmail:           MsgEmailFormat,
		FieldPassword:        MsgPasswordFormat,
		FieldConfirmPassword: MsgPasswordMismatch,
	})
}

func collect(form any, messages map[string]string) FieldErrors {
	errs := FieldErrors{}
	err := validate.Struct(form)
	if err == nil {
		return errs
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		// Only reachable with a non-struct argument; report it against the form.
		errs[FieldForm] = err.Error()
		return errs
	}
	for _, fe := range verrs {
		if msg, ok := messages[fe.Field()]; ok {
			errs[fe.Field()] = msg
		}
	}
	return errs
}
