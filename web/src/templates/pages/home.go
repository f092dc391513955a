package pages

import (
	cmp "maragu.dev/gomponents"
	g "maragu.dev/gomponents/html"
)

// Home renders the public landing page.
func Home(signedIn bool) cmp.Node {
	return g.Div(
		g.Class("container mx-auto p-8 text-center"),
		g.H1(g.Class("text-4xl font-extrabold text-gray-900 mb-6"), cmp.Text("Welcome to Authflow")),
		cmp.If(signedIn,
			g.A(g.Href("/dashboard"), g.Class("text-blue-600 hover:underline font-medium"), cmp.Text("Go to your dashboard")),
		),
		cmp.If(!signedIn,
			g.Div(
				g.Class("flex justify-center gap-6"),
				g.A(g.Href("/login"), g.Class("text-blue-600 hover:underline font-medium"), cmp.Text("Sign In")),
				g.A(g.Href("/register"), g.Class("text-blue-600 hover:underline font-medium"), cmp.Text("Sign Up")),
			),
		),
	)
}
