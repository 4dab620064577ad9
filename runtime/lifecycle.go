package runtime

// Initializer is implemented by components that set up state once,
// before their first render.
type Initializer interface {
	OnInit()
}

// ParameterReceiver is implemented by components that react to their
// props before every render, the first one included.
type ParameterReceiver interface {
	OnParametersSet()
}

// Cleaner is implemented by components that release resources when they
// leave the tree.
type Cleaner interface {
	OnDestroy()
}

// PropUpdater is implemented by components that copy fresh props from a
// newly created instance into the instance kept alive across renders.
type PropUpdater interface {
	ApplyProps(fresh Component)
}
