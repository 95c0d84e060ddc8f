package engine

import (
	"github.com/vango-dev/vtree/pkg/host"
	"github.com/vango-dev/vtree/pkg/vdom"
)

// mount dispatches on the node kind. Must hold mu.
func (e *Engine) mount(node *vdom.VNode, parent host.Node) (host.Node, error) {
	if node == nil {
		return nil, newError(codeUnclassifiable, ErrUnclassifiableNode, "nil node")
	}
	switch node.Kind {
	case vdom.KindText:
		return e.mountText(node, parent), nil
	case vdom.KindElement:
		return e.mountElement(node, parent)
	case vdom.KindComponent:
		return e.mountComponent(node, parent)
	default:
		return nil, newError(codeUnclassifiable, ErrUnclassifiableNode, "node of kind %s", node.Kind)
	}
}

// mountText writes the value into the parent's text content. There is no
// distinct text host node: the parent is returned as the host reference.
func (e *Engine) mountText(node *vdom.VNode, parent host.Node) host.Node {
	e.adapter.SetText(parent, node.Text)
	node.DOM = parent
	e.metrics.mounted(vdom.KindText)
	return parent
}

// mountElement creates the host node, mounts children into it in order,
// applies class and style, then appends it to parent.
func (e *Engine) mountElement(node *vdom.VNode, parent host.Node) (host.Node, error) {
	dom := e.adapter.CreateNode(node.Tag)
	node.DOM = dom

	for _, child := range node.Children {
		if _, err := e.mount(child, dom); err != nil {
			return nil, err
		}
	}

	if node.ClassName != "" {
		e.adapter.SetClass(dom, node.ClassName)
	}
	node.Style.Each(func(name, value string) {
		e.adapter.SetStyle(dom, name, value)
	})

	e.adapter.AppendChild(parent, dom)
	e.metrics.mounted(vdom.KindElement)
	return dom, nil
}

// mountComponent creates the instance, renders it once and mounts the
// rendered subtree into the same parent.
func (e *Engine) mountComponent(node *vdom.VNode, parent host.Node) (host.Node, error) {
	inst := newInstance(e, node.Type, node.Props)
	comp := node.Type.New(inst)
	if comp == nil {
		return nil, newError(codeNilRender, ErrNilRender, "%s constructed no component", node.Type.Name())
	}
	inst.comp = comp
	if init, ok := comp.(vdom.Initializer); ok {
		inst.initState(init.InitialState())
	}
	e.metrics.instanceCreated()

	rendered, err := e.render(inst)
	if err != nil {
		return nil, err
	}
	inst.current = rendered
	inst.parent = parent

	dom, err := e.mount(rendered, parent)
	if err != nil {
		return nil, err
	}
	inst.dom = dom
	node.DOM = dom
	node.Inst = inst
	inst.status.Store(int32(StatusMounted))

	e.metrics.mounted(vdom.KindComponent)
	e.logger.Debug("component mounted", "type", inst.typ.Name(), "instance", inst.id)
	return dom, nil
}
