package pages

import (
	cmp "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	g "maragu.dev/gomponents/html"

	"github.com/nfrund/authflow/internal/validation"
	"github.com/nfrund/authflow/internal/view/dto/auth"
)

// LoginFormID is the element htmx swaps when the sign-in form re-renders.
const LoginFormID = "login-form"

// Login renders the full sign-in page content.
func Login(data auth.LoginData) cmp.Node {
	return g.Div(
		g.Class("min-h-screen flex items-center justify-center"),
		LoginForm(data),
	)
}

// LoginForm renders just the form, which is also the htmx swap target.
func LoginForm(data auth.LoginData) cmp.Node {
	return g.Form(
		g.ID(LoginFormID),
		g.Method("post"),
		g.Action("/login"),
		hx.Post("/login"),
		hx.Target("this"),
		hx.Swap("outerHTML"),
		cmp.Attr("hx-disabled-elt", "find button[type='submit']"),
		g.Class("bg-white p-8 rounded-lg shadow-lg w-full max-w-md"),
		g.H2(g.Class("text-3xl font-extrabold mb-8 text-center text-gray-900"), cmp.Text("Sign In")),
		formField(field{
			Name:         validation.FieldUsername,
			Label:        "Username",
			Value:        data.Username,
			Placeholder:  "Enter your username",
			AutoComplete: "username",
			ClearOnInput: true,
		}, data.Errors),
		formField(field{
			Name:         validation.FieldPassword,
			Label:        "Password",
			Type:         "password",
			Placeholder:  "Enter your password",
			AutoComplete: "current-password",
			ClearOnInput: true,
		}, data.Errors),
		formBanner(data.Message),
		g.Div(
			g.Class("flex items-center justify-between mb-4"),
			g.Div(
				g.Class("flex items-center"),
				g.Input(g.Type("checkbox"), g.ID("remember"), g.Class("h-4 w-4 text-blue-600 border-gray-300 rounded")),
				g.Label(g.For("remember"), g.Class("ml-2 block text-sm text-gray-700"), cmp.Text("Remember me")),
			),
			g.A(g.Href("#"), g.Class("text-sm text-blue-600 hover:underline"), cmp.Text("Forgot password?")),
		),
		submitButton("Sign In", "Signing in..."),
		g.Div(
			g.Class("flex flex-col gap-2 mb-4"),
			placeholderButton("Sign in with Google"),
			placeholderButton("Sign in with Apple"),
		),
		footerLink("Don't have an account?", "/register", "Sign Up"),
		footerLink("", "/", "Back to Home"),
	)
}
