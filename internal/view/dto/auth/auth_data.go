package auth

import "github.com/nfrund/authflow/internal/validation"

// LoginData is a View Model (DTO) used specifically for the login template.
// It carries the previously submitted username and whatever the last
// submission reported.
type LoginData struct {
	Username string
	Errors   validation.FieldErrors
	// Message is the form-level banner.
	Message string
}

// RegisterData is used to transfer form values and feedback to the
// registration template. Passwords are never echoed back.
type RegisterData struct {
	Username string
	Email    string
	Errors   validation.FieldErrors
	Message  string
	// Success is set once the account exists, whether or not a session was
	// established.
	Success bool
}
