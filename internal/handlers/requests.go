package handlers

import (
	"github.com/nfrund/authflow/internal/validation"
)

// LoginFormRequest is the sign-in form as posted by the browser. Length and
// grammar are left to the workflows so they can answer per field.
type LoginFormRequest struct {
	Username string `form:"username"`
	Password string `form:"password"`
}

// Credentials converts the form into the workflow input.
func (r LoginFormRequest) Credentials() validation.Credentials {
	return validation.Credentials{Username: r.Username, Password: r.Password}
}

// RegisterFormRequest is the sign-up form as posted by the browser.
type RegisterFormRequest struct {
	Username        string `form:"username"`
	Email           string `form:"email"`
	Password        string `form:"password"`
	ConfirmPassword string `form:"confirmPassword"`
}

// Registration converts the form into the workflow input.
func (r RegisterFormRequest) Registration() validation.Registration {
	return validation.Registration{
		Username:        r.Username,
		Email:           r.Email,
		Password:        r.Password,
		ConfirmPassword: r.ConfirmPassword,
	}
}
