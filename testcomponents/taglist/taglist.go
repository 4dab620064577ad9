package taglist

import (
	_ "embed"

	"github.com/vcrobe/nojs-html/runtime"
	"github.com/vcrobe/nojs-html/vdom"
)

//go:embed taglist.gt.html
var tagListTemplate string

// TagList renders a slice of strings with a loop directive.
type TagList struct {
	runtime.HTMLComponent
	Tags []string
}

func (t *TagList) OnInit() {
	if t.Tags == nil {
		t.Tags = []string{"golang", "wasm", "component", "framework"}
	}
}

func (t *TagList) RenderHTML() string {
	return tagListTemplate
}

func (t *TagList) Render(r runtime.Renderer) *vdom.VNode {
	return t.RenderMarkup(t, r)
}

func (t *TagList) AddTag(newTag string) {
	t.Tags = append(t.Tags, newTag)
	t.StateHasChanged()
}

func (t *TagList) ClearTags() {
	t.Tags = []string{}
	t.StateHasChanged()
}
