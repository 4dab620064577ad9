package databinding

import (
	_ "embed"

	"github.com/vcrobe/nojs-html/runtime"
	"github.com/vcrobe/nojs-html/vdom"
)

//go:embed counter.gt.html
var counterTemplate string

// Counter binds its fields into the markup with ${...}.
type Counter struct {
	runtime.HTMLComponent
	Count int
	Label string
}

// NewCounter returns a Counter with interpolation enabled.
func NewCounter(count int, label string) *Counter {
	c := &Counter{Count: count, Label: label}
	c.Interpolate = true
	return c
}

func (c *Counter) RenderHTML() string {
	return counterTemplate
}

func (c *Counter) Render(r runtime.Renderer) *vdom.VNode {
	return c.RenderMarkup(c, r)
}

func (c *Counter) Increment() {
	c.Count++
	c.StateHasChanged()
}

func (c *Counter) SetLabel(label string) {
	c.Label = label
	c.StateHasChanged()
}
