package appcomponents

import (
	"fmt"
	"slices"

	"github.com/vcrobe/nojs-html/runtime"
	"github.com/vcrobe/nojs-html/signals"
	"github.com/vcrobe/nojs-html/vdom"
)

const homePageTemplate = `
<main>
    <h1>${Title}</h1>
    <Status total="{len(Labels())}" done="{DoneCount()}"></Status>
    <ul loop="{Labels()}" index="n" value="label">
        <li class="item-{n}">{label}</li>
    </ul>
    <button onclick="{Add}">Add</button>
    <button if="{DoneCount() < len(Labels())}" onclick="{CompleteNext}">Complete next</button>
    <button if="{DoneCount() > 0}" onclick="{ClearDone}">Clear done</button>
</main>`

// Item is one entry of the list.
type Item struct {
	Text string
	Done bool
}

// HomePage is a small todo list. Items live in a signal, so any change to
// them re-renders the page.
type HomePage struct {
	runtime.HTMLComponent
	Title string
	Items *signals.Signal[[]Item]

	// Ask reads the text of a new item; ok is false when cancelled. A nil
	// Ask names items by position.
	Ask func(message string) (text string, ok bool)

	// Confirm guards ClearDone; nil clears without asking.
	Confirm func(message string) bool

	// Notify is told when the last open item is completed.
	Notify func(message string)

	unsubscribe func()
}

func NewHomePage(title string, items ...Item) *HomePage {
	h := &HomePage{
		Title: title,
		Items: signals.NewSignal(items),
	}
	h.Interpolate = true
	h.Components = map[string]any{
		"Status": runtime.ComponentFunc(NewStatusPanel),
	}
	return h
}

func (h *HomePage) OnInit() {
	h.unsubscribe = h.Items.Subscribe(h.StateHasChanged)
}

func (h *HomePage) OnDestroy() {
	if h.unsubscribe != nil {
		h.unsubscribe()
	}
}

func (h *HomePage) RenderHTML() string {
	return homePageTemplate
}

func (h *HomePage) Render(r runtime.Renderer) *vdom.VNode {
	return h.RenderMarkup(h, r)
}

// Labels returns the item texts, done items struck through.
func (h *HomePage) Labels() []string {
	items := h.Items.Get()
	labels := make([]string, len(items))
	for i, it := range items {
		labels[i] = it.Text
		if it.Done {
			labels[i] = "<s>" + it.Text + "</s>"
		}
	}
	return labels
}

func (h *HomePage) DoneCount() int {
	n := 0
	for _, it := range h.Items.Get() {
		if it.Done {
			n++
		}
	}
	return n
}

func (h *HomePage) Add() {
	text := fmt.Sprintf("Item %d", len(h.Items.Get())+1)
	if h.Ask != nil {
		answer, ok := h.Ask("What needs doing?")
		if !ok || answer == "" {
			return
		}
		text = answer
	}
	h.Items.Update(func(items []Item) []Item {
		return append(slices.Clip(items), Item{Text: text})
	})
}

// CompleteNext marks the first open item as done.
func (h *HomePage) CompleteNext() {
	completed := false
	h.Items.Update(func(items []Item) []Item {
		i := slices.IndexFunc(items, func(it Item) bool { return !it.Done })
		if i < 0 {
			return items
		}
		out := slices.Clone(items)
		out[i].Done = true
		completed = true
		return out
	})
	if completed && h.Notify != nil && h.DoneCount() == len(h.Items.Get()) {
		h.Notify("Everything is done!")
	}
}

// ClearDone drops the completed items once Confirm agrees.
func (h *HomePage) ClearDone() {
	done := h.DoneCount()
	if done == 0 {
		return
	}
	if h.Confirm != nil && !h.Confirm(fmt.Sprintf("Remove %d completed item(s)?", done)) {
		return
	}
	h.Items.Update(func(items []Item) []Item {
		return slices.DeleteFunc(slices.Clone(items), func(it Item) bool { return it.Done })
	})
}
