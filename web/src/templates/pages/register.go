package pages

import (
	cmp "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	g "maragu.dev/gomponents/html"

	"github.com/nfrund/authflow/internal/validation"
	"github.com/nfrund/authflow/internal/view/dto/auth"
)

// RegisterFormID is the element htmx swaps when the sign-up form re-renders.
const RegisterFormID = "register-form"

// MsgAccountCreated is shown when the account exists but no session was
// established.
const MsgAccountCreated = "Account created. Please sign in."

// Register renders the full sign-up page content.
func Register(data auth.RegisterData) cmp.Node {
	return g.Div(
		g.Class("min-h-screen flex items-center justify-center"),
		RegisterForm(data),
	)
}

// RegisterForm renders just the form, which is also the htmx swap target.
func RegisterForm(data auth.RegisterData) cmp.Node {
	return g.Form(
		g.ID(RegisterFormID),
		g.Method("post"),
		g.Action("/register"),
		hx.Post("/register"),
		hx.Target("this"),
		hx.Swap("outerHTML"),
		cmp.Attr("hx-disabled-elt", "find button[type='submit']"),
		g.Class("bg-white p-8 rounded-lg shadow-lg w-full max-w-md"),
		g.H2(g.Class("text-3xl font-extrabold mb-8 text-center text-gray-900"), cmp.Text("Sign Up")),
		cmp.If(data.Success, g.Div(
			g.Class("form-success text-green-700 text-sm mb-4"),
			g.Role("status"),
			cmp.Text(MsgAccountCreated),
		)),
		formField(field{
			Name:         validation.FieldUsername,
			Label:        "Username",
			Value:        data.Username,
			Placeholder:  "Enter your username",
			AutoComplete: "username",
		}, data.Errors),
		formField(field{
			Name:         validation.FieldEmail,
			Label:        "Email",
			Type:         "email",
			Value:        data.Email,
			Placeholder:  "Enter your email",
			AutoComplete: "email",
		}, data.Errors),
		formField(field{
			Name:         validation.FieldPassword,
			Label:        "Password",
			Type:         "password",
			Placeholder:  "Enter your password",
			AutoComplete: "new-password",
		}, data.Errors),
		formField(field{
			Name:         validation.FieldConfirmPassword,
			Label:        "Confirm Password",
			Type:         "password",
			Placeholder:  "Confirm your password",
			AutoComplete: "new-password",
		}, data.Errors),
		formBanner(data.Message),
		submitButton("Sign Up", "Registering..."),
		g.Div(
			g.Class("flex items-center my-4"),
			g.Div(g.Class("flex-grow h-px bg-gray-300")),
			g.Span(g.Class("mx-3 text-gray-500 text-sm font-medium"), cmp.Text("or")),
			g.Div(g.Class("flex-grow h-px bg-gray-300")),
		),
		g.Div(
			g.Class("flex flex-row gap-2 mb-4"),
			placeholderButton("Sign up with Google"),
			placeholderButton("Sign up with Apple"),
		),
		footerLink("Already have an account?", "/login", "Sign In"),
		footerLink("", "/", "Back to Home"),
	)
}
