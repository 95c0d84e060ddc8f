package engine

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/vango-dev/vtree/pkg/host"
	"github.com/vango-dev/vtree/pkg/vdom"
)

// Status is the lifecycle state of an Instance.
type Status int32

const (
	StatusConstructing Status = iota // created, first render not finished
	StatusMounted                    // idle, current element reflects props and state
	StatusUpdating                   // inside a render and reconcile cycle
)

// String returns the string representation of the Status.
func (s Status) String() string {
	switch s {
	case StatusConstructing:
		return "constructing"
	case StatusMounted:
		return "mounted"
	case StatusUpdating:
		return "updating"
	default:
		return "unknown"
	}
}

// Instance is the persistent runtime object behind a component node. It is
// created when the node is first mounted and is carried forward onto every
// later node for the same mount point.
//
// Instance implements vdom.Handle.
type Instance struct {
	id     string
	engine *Engine
	typ    *vdom.ComponentType
	comp   vdom.Component

	mu      sync.RWMutex
	props   vdom.Props
	state   vdom.State
	pending vdom.State // non-nil only inside SetState

	// Guarded by the engine lock.
	current *vdom.VNode
	parent  host.Node
	dom     host.Node

	status  atomic.Int32
	renders atomic.Int64
}

var _ vdom.Handle = (*Instance)(nil)

func newInstance(e *Engine, typ *vdom.ComponentType, props vdom.Props) *Instance {
	return &Instance{
		id:     uuid.NewString(),
		engine: e,
		typ:    typ,
		props:  props,
		state:  vdom.State{},
	}
}

// ID implements vdom.Handle.
func (i *Instance) ID() string {
	return i.id
}

// Type returns the component type.
func (i *Instance) Type() *vdom.ComponentType {
	return i.typ
}

// Props implements vdom.Handle.
func (i *Instance) Props() vdom.Props {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.props
}

// State implements vdom.Handle.
func (i *Instance) State() vdom.State {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.state
}

// Pending returns the pending state buffer. It is nil at every point
// outside an update cycle.
func (i *Instance) Pending() vdom.State {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.pending
}

// Status returns the lifecycle state.
func (i *Instance) Status() Status {
	return Status(i.status.Load())
}

// Renders returns how many times the component has rendered.
func (i *Instance) Renders() int64 {
	return i.renders.Load()
}

// Current returns the most recently rendered subtree. Use Engine.View when
// reading it from a goroutine that may race a cycle.
func (i *Instance) Current() *vdom.VNode {
	return i.current
}

// Parent returns the host node the instance renders into.
func (i *Instance) Parent() host.Node {
	return i.parent
}

// DOM returns the host node of the rendered subtree.
func (i *Instance) DOM() host.Node {
	return i.dom
}

// SetState implements vdom.Handle. Failures are logged; use SetStateErr to
// observe them.
func (i *Instance) SetState(partial vdom.State) {
	if err := i.SetStateErr(partial); err != nil {
		i.engine.logger.Error("set state failed", "type", i.typ.Name(), "instance", i.id, "error", err)
	}
}

// SetStateErr merges partial over the current state and runs a full render
// and reconcile cycle before returning.
func (i *Instance) SetStateErr(partial vdom.State) error {
	return i.SetStateContext(context.Background(), partial)
}

// SetStateContext is SetStateErr with a context for tracing.
func (i *Instance) SetStateContext(ctx context.Context, partial vdom.State) error {
	if i.Status() == StatusConstructing {
		return newError(codeNotMounted, ErrNotMounted, "%s is still constructing", i.typ.Name())
	}
	unlock, err := i.engine.acquire()
	if err != nil {
		return err
	}
	defer unlock()

	i.mu.Lock()
	i.pending = i.state.Merge(partial)
	i.mu.Unlock()

	return i.engine.runSetState(ctx, i)
}

func (i *Instance) initState(s vdom.State) {
	if s == nil {
		return
	}
	i.mu.Lock()
	i.state = s
	i.mu.Unlock()
}

func (i *Instance) setProps(p vdom.Props) {
	i.mu.Lock()
	i.props = p
	i.mu.Unlock()
}

// commitPending moves pending state into current state and clears the buffer.
func (i *Instance) commitPending() {
	i.mu.Lock()
	if i.pending != nil {
		i.state = i.pending
	}
	i.pending = nil
	i.mu.Unlock()
}
