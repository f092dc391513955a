package pages

import (
	cmp "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	g "maragu.dev/gomponents/html"

	"github.com/nfrund/authflow/internal/validation"
)

const inputBase = "form-input block w-full px-3 py-2 border rounded-md shadow-sm focus:outline-none focus:ring-blue-500 focus:border-blue-500"

// field describes one labelled input of an auth form.
type field struct {
	Name         string
	Label        string
	Type         string
	Value        string
	Placeholder  string
	AutoComplete string
	// ClearOnInput drops the field's error in the browser as soon as it is
	// edited.
	ClearOnInput bool
}

// clearErrorScript undoes the error styling of the input it runs on and
// removes the message node below it.
func clearErrorScript(name string) string {
	return "this.classList.replace('border-red-500','border-gray-300');" +
		"this.removeAttribute('aria-invalid');" +
		"document.getElementById('" + name + "-error')?.remove()"
}

// formField renders a labelled input with its error (if any) beneath it.
func formField(f field, errs validation.FieldErrors) cmp.Node {
	msg := errs.Get(f.Name)
	border := "border-gray-300"
	if msg != "" {
		border = "border-red-500"
	}
	inputType := f.Type
	if inputType == "" {
		inputType = "text"
	}

	return g.Div(
		g.Class("mb-4"),
		g.Label(g.For(f.Name), g.Class("block text-sm font-medium text-gray-700 mb-1"), cmp.Text(f.Label)),
		g.Input(
			g.ID(f.Name),
			g.Name(f.Name),
			g.Type(inputType),
			cmp.If(f.Value != "", g.Value(f.Value)),
			g.Placeholder(f.Placeholder),
			g.AutoComplete(f.AutoComplete),
			g.Class(inputBase+" "+border),
			cmp.If(msg != "", g.Aria("invalid", "true")),
			cmp.If(msg != "" && f.ClearOnInput, hx.On("input", clearErrorScript(f.Name))),
		),
		cmp.If(msg != "", g.Div(
			g.ID(f.Name+"-error"),
			g.Class("field-error mt-1 text-xs text-red-600 flex items-center"),
			g.Span(g.Class("font-bold mr-1"), cmp.Text("*")),
			cmp.Text(msg),
		)),
	)
}

// formBanner renders the form-level error.
func formBanner(message string) cmp.Node {
	if message == "" {
		return nil
	}
	return g.Div(g.Class("form-error text-red-500 text-sm mb-2"), g.Role("alert"), cmp.Text(message))
}

// submitButton shows label normally and busyLabel while the request is in
// flight; htmx disables the button for the duration.
func submitButton(label, busyLabel string) cmp.Node {
	return g.Button(
		g.Type("submit"),
		g.Class("w-full flex justify-center items-center bg-blue-600 hover:bg-blue-700 text-white py-2 px-4 rounded-md font-semibold mb-4 disabled:opacity-50 cursor-pointer"),
		g.Span(g.Class("label-idle"), cmp.Text(label)),
		g.Span(g.Class("htmx-indicator label-busy"), cmp.Text(busyLabel)),
	)
}

// placeholderButton is an inert third-party sign-in button.
func placeholderButton(label string) cmp.Node {
	return g.Button(
		g.Type("button"),
		g.Class("w-full flex items-center justify-center gap-2 border border-gray-300 bg-white text-gray-700 py-2 px-4 rounded-md font-medium"),
		cmp.Text(label),
	)
}

func footerLink(prompt, href, label string) cmp.Node {
	return g.Div(
		g.Class("text-center text-sm text-gray-600 mb-2"),
		cmp.If(prompt != "", cmp.Text(prompt+" ")),
		g.A(g.Href(href), g.Class("text-blue-600 hover:underline font-medium"), cmp.Text(label)),
	)
}
