//go:build !dev && !wasm

package runtime

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/vcrobe/nojs-html/console"
	"github.com/vcrobe/nojs-html/vdom"
)

type panicky struct {
	ComponentBase
}

func (p *panicky) Render(Renderer) *vdom.VNode { return vdom.Div(nil) }
func (p *panicky) OnInit()                     { panic("boom") }

func TestCallHook_RecoversInProduction(t *testing.T) {
	var buf bytes.Buffer
	console.SetOutput(&buf)
	defer console.SetOutput(os.Stderr)

	r := newRecordingRenderer()
	r.instances.Begin()
	r.instances.Resolve("bad", &panicky{}, r)
	r.instances.End()

	if !strings.Contains(buf.String(), "OnInit panic in component bad: boom") {
		t.Errorf("Expected recovered panic to be logged, got %q", buf.String())
	}
	if r.instances.Len() != 1 {
		t.Errorf("Expected the instance to stay mounted, got %d", r.instances.Len())
	}
}
