//go:build js || wasm

package main

import (
	"github.com/vcrobe/nojs-html/appcomponents"
	"github.com/vcrobe/nojs-html/console"
	"github.com/vcrobe/nojs-html/dialogs"
	"github.com/vcrobe/nojs-html/runtime"
)

func main() {
	// 1. Create the root component with a couple of starting items
	home := appcomponents.NewHomePage("Things to do",
		appcomponents.Item{Text: "Write the template"},
		appcomponents.Item{Text: "Render it", Done: true},
	)
	home.Ask = dialogs.Prompt
	home.Confirm = dialogs.Confirm
	home.Notify = dialogs.Alert

	// 2. Mount it under #app
	renderer := runtime.NewRenderer("#app")
	renderer.SetCurrentComponent(home)
	renderer.RenderRoot()
	console.Log("nojs-html demo mounted")

	// Keep the Go program running
	select {}
}
