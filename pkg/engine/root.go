package engine

import (
	"context"

	"github.com/vango-dev/vtree/pkg/host"
	"github.com/vango-dev/vtree/pkg/vdom"
)

// Root binds an Engine to a host container. The first Render mounts; every
// later Render reconciles against the previously rendered tree.
type Root struct {
	engine    *Engine
	container host.Node
	current   *vdom.VNode
}

// NewRoot creates a Root rendering into container.
func NewRoot(e *Engine, container host.Node) *Root {
	return &Root{engine: e, container: container}
}

// Engine returns the root's engine.
func (r *Root) Engine() *Engine {
	return r.engine
}

// Container returns the host container.
func (r *Root) Container() host.Node {
	return r.container
}

// Render mounts node on the first call and updates the previous tree into
// node on later calls.
func (r *Root) Render(ctx context.Context, node *vdom.VNode) error {
	unlock, err := r.engine.acquire()
	if err != nil {
		return err
	}
	defer unlock()

	if r.current == nil {
		if _, err := r.engine.runMount(ctx, node, r.container); err != nil {
			return err
		}
	} else if err := r.engine.runUpdate(ctx, r.current, node, r.container); err != nil {
		return err
	}
	r.current = node
	return nil
}

// Current returns the last tree passed to a successful Render.
func (r *Root) Current() *vdom.VNode {
	var cur *vdom.VNode
	r.engine.View(func() { cur = r.current })
	return cur
}

// Instance returns the component instance at the top of the tree, or nil
// when the tree is not rooted at a component.
func (r *Root) Instance() *Instance {
	cur := r.Current()
	if cur == nil {
		return nil
	}
	inst, _ := cur.Inst.(*Instance)
	return inst
}
