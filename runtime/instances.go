package runtime

// Instances keeps child component instances alive across renders, keyed by
// their position, and drives their lifecycle hooks. Renderers call Begin
// before a render cycle, Resolve for every child and End afterwards.
type Instances struct {
	instances map[string]Component
	active    map[string]bool // keys seen in the current cycle
}

// NewInstances returns an empty instance table.
func NewInstances() *Instances {
	return &Instances{
		instances: make(map[string]Component),
		active:    make(map[string]bool),
	}
}

// Begin starts a render cycle.
func (s *Instances) Begin() {
	s.active = make(map[string]bool)
}

// Resolve returns the instance to render for key. The first time a key is
// seen fresh is stored and initialized; afterwards the stored instance is
// kept and receives fresh's props through PropUpdater. OnParametersSet runs
// on every render.
func (s *Instances) Resolve(key string, fresh Component, r Renderer) Component {
	s.active[key] = true

	instance, exists := s.instances[key]
	if !exists {
		instance = fresh
		s.instances[key] = instance
	} else if updater, ok := instance.(PropUpdater); ok {
		updater.ApplyProps(fresh)
	}

	instance.SetRenderer(r)

	if !exists {
		if initializer, ok := instance.(Initializer); ok {
			callHook("OnInit", key, initializer.OnInit)
		}
	}
	if receiver, ok := instance.(ParameterReceiver); ok {
		callHook("OnParametersSet", key, receiver.OnParametersSet)
	}
	return instance
}

// End finishes a render cycle, destroying instances that were not rendered.
func (s *Instances) End() {
	for key, instance := range s.instances {
		if s.active[key] {
			continue
		}
		if cleaner, ok := instance.(Cleaner); ok {
			callHook("OnDestroy", key, cleaner.OnDestroy)
		}
		delete(s.instances, key)
	}
}

// Len reports how many instances are alive.
func (s *Instances) Len() int {
	return len(s.instances)
}
