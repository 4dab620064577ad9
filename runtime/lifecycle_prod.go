//go:build !dev

package runtime

import (
	"fmt"

	"github.com/vcrobe/nojs-html/console"
)

// callHook runs a lifecycle hook in production mode. A panic is recovered
// and logged so one faulty component does not take the application down.
func callHook(hook, key string, fn func()) {
	defer func() {
		if rec := recover(); rec != nil {
			console.Error(fmt.Sprintf("%s panic in component %s: %v", hook, key, rec))
		}
	}()
	fn()
}
