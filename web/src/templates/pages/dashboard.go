package pages

import (
	cmp "maragu.dev/gomponents"
	g "maragu.dev/gomponents/html"
)

// Dashboard renders the landing view for an authenticated user.
func Dashboard() cmp.Node {
	return g.Div(
		g.Class("container mx-auto p-8"),
		g.Div(
			g.Class("bg-white shadow-lg rounded-xl p-10 max-w-2xl mx-auto"),
			g.H1(g.Class("text-3xl font-extrabold text-gray-900 mb-4"), cmp.Text("Dashboard")),
			g.P(g.Class("text-gray-700"), cmp.Text("You are signed in.")),
			g.Form(
				g.Method("post"),
				g.Action("/logout"),
				g.Class("mt-8"),
				g.Button(
					g.Type("submit"),
					g.Class("bg-gray-800 hover:bg-gray-900 text-white py-2 px-4 rounded-md font-semibold"),
					cmp.Text("Sign Out"),
				),
			),
		),
	)
}
