package nested

import (
	"github.com/vcrobe/nojs-html/runtime"
	"github.com/vcrobe/nojs-html/vdom"
)

// Badge is a child component mounted by Board for every label.
type Badge struct {
	runtime.HTMLComponent
	Label string

	board *Board
}

func newBadge(board *Board, props map[string]any) *Badge {
	label, _ := props["label"].(string)
	b := &Badge{Label: label, board: board}
	b.Interpolate = true
	return b
}

func (b *Badge) RenderHTML() string {
	return `<span class="badge">${Label}</span>`
}

func (b *Badge) Render(r runtime.Renderer) *vdom.VNode {
	return b.RenderMarkup(b, r)
}

func (b *Badge) OnInit() {
	b.board.Inits++
}

func (b *Badge) OnDestroy() {
	b.board.Destroyed++
}

// ApplyProps copies the label of a freshly created badge into the mounted one.
func (b *Badge) ApplyProps(fresh runtime.Component) {
	if next, ok := fresh.(*Badge); ok {
		b.Label = next.Label
	}
}
