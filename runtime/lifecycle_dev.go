//go:build dev

package runtime

// callHook runs a lifecycle hook in development mode. Panics propagate to
// aid debugging.
func callHook(hook, key string, fn func()) {
	fn()
}
