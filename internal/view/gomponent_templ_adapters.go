package view

import (
	"context"
	"io"

	"github.com/a-h/templ"
	"maragu.dev/gomponents"
)

// gomponentComponent lets a gomponents node sit inside a templ layout.
type gomponentComponent struct {
	node gomponents.Node
}

func (a gomponentComponent) Render(_ context.Context, w io.Writer) error {
	return a.node.Render(w)
}

// AdaptGomponentToTempl wraps node as a templ.Component.
func AdaptGomponentToTempl(node gomponents.Node) templ.Component {
	return gomponentComponent{node: node}
}
