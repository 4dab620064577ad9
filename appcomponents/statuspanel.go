package appcomponents

import (
	"github.com/vcrobe/nojs-html/expr"
	"github.com/vcrobe/nojs-html/runtime"
	"github.com/vcrobe/nojs-html/vdom"
)

const statusPanelTemplate = `
<div class="status">
    <p if="{Total == 0}" class="hint">Nothing to do yet</p>
    <do if="{Total > 0}">
        <p class="progress-text">${Done} of ${Total} done</p>
        <progress max="{Total}" value="{Done}"></progress>
    </do>
    <p if="{Total > 0 && Done == Total}" class="done">All done!</p>
</div>`

// StatusPanel summarizes how many items are done.
type StatusPanel struct {
	runtime.HTMLComponent
	Total int
	Done  int
}

// NewStatusPanel creates a panel from the total and done props.
func NewStatusPanel(props map[string]any, _ []*vdom.VNode) runtime.Component {
	p := &StatusPanel{}
	p.Interpolate = true
	p.Total, _ = expr.ToInt(props["total"])
	p.Done, _ = expr.ToInt(props["done"])
	return p
}

func (p *StatusPanel) RenderHTML() string {
	return statusPanelTemplate
}

func (p *StatusPanel) Render(r runtime.Renderer) *vdom.VNode {
	return p.RenderMarkup(p, r)
}

// ApplyProps keeps the mounted panel in sync with the latest props.
func (p *StatusPanel) ApplyProps(fresh runtime.Component) {
	if next, ok := fresh.(*StatusPanel); ok {
		p.Total, p.Done = next.Total, next.Done
	}
}
