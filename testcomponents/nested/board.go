package nested

import (
	"github.com/vcrobe/nojs-html/runtime"
	"github.com/vcrobe/nojs-html/vdom"
)

const boardTemplate = `
<section>
    <h2>Badges</h2>
    <do loop="{Labels}" value="label">
        <Badge label="{label}"></Badge>
    </do>
</section>`

// Board renders one Badge per label and counts their lifecycle events.
type Board struct {
	runtime.HTMLComponent
	Labels []string

	Inits     int
	Destroyed int
}

func NewBoard(labels ...string) *Board {
	b := &Board{Labels: labels}
	b.Components = map[string]any{
		"Badge": runtime.ComponentFunc(func(props map[string]any, _ []*vdom.VNode) runtime.Component {
			return newBadge(b, props)
		}),
	}
	return b
}

func (b *Board) RenderHTML() string {
	return boardTemplate
}

func (b *Board) Render(r runtime.Renderer) *vdom.VNode {
	return b.RenderMarkup(b, r)
}

func (b *Board) SetLabels(labels ...string) {
	b.Labels = labels
	b.StateHasChanged()
}
