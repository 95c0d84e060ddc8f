package vdom

// Component is anything that can render to a VNode.
type Component interface {
	Render() *VNode
}

// Handle is the runtime side of a component instance, handed to the
// component's constructor. The engine implements it.
type Handle interface {
	// ID returns the instance's unique identifier.
	ID() string

	// Props returns the current props.
	Props() Props

	// State returns the current state.
	State() State

	// SetState merges partial over the current state and synchronously
	// re-renders the instance.
	SetState(partial State)
}

// Initializer is implemented by components that start with non-empty state.
type Initializer interface {
	InitialState() State
}

// Constructor creates a component for a new instance.
type Constructor func(h Handle) Component

// ComponentType identifies a kind of component. Two component nodes have
// the same tag only when they carry the same *ComponentType.
type ComponentType struct {
	name      string
	construct Constructor
}

// Define declares a component type.
func Define(name string, construct Constructor) *ComponentType {
	return &ComponentType{name: name, construct: construct}
}

// Name returns the component type's name.
func (t *ComponentType) Name() string {
	if t == nil {
		return "<nil>"
	}
	return t.name
}

// New constructs a component for the instance behind h.
func (t *ComponentType) New(h Handle) Component {
	if t == nil || t.construct == nil {
		return nil
	}
	return t.construct(h)
}

// FuncComponent wraps a render function.
type FuncComponent struct {
	render func() *VNode
}

// Render implements Component.
func (f *FuncComponent) Render() *VNode {
	return f.render()
}

// Func creates a component from a render function.
func Func(render func() *VNode) Component {
	return &FuncComponent{render: render}
}

// StatefulFunc is a FuncComponent with an initial state.
type StatefulFunc struct {
	FuncComponent
	initial State
}

// InitialState implements Initializer.
func (f *StatefulFunc) InitialState() State {
	return f.initial
}

// FuncWithState creates a component from a render function that starts with
// the given state.
func FuncWithState(initial State, render func() *VNode) Component {
	return &StatefulFunc{FuncComponent: FuncComponent{render: render}, initial: initial}
}
