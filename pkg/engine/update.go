package engine

import (
	"github.com/vango-dev/vtree/pkg/host"
	"github.com/vango-dev/vtree/pkg/vdom"
)

// update reconciles prev into next at parent. Must hold mu.
func (e *Engine) update(prev, next *vdom.VNode, parent host.Node) error {
	if prev == nil || next == nil {
		return newError(codeUnclassifiable, ErrUnclassifiableNode, "nil node in update")
	}
	if prev.Kind == vdom.KindInvalid || next.Kind == vdom.KindInvalid {
		return newError(codeUnclassifiable, ErrUnclassifiableNode, "update %s -> %s", prev.TagName(), next.TagName())
	}

	if !vdom.SameTag(prev, next) {
		// Different tags are not reconciled: no mutation, no recursion.
		e.metrics.tagMismatch()
		if e.strictTags {
			return newError(codeTagMismatch, ErrTagMismatch, "prev <%s>, next <%s>", prev.TagName(), next.TagName())
		}
		e.logger.Warn("tag mismatch, update skipped", "prev", prev.TagName(), "next", next.TagName())
		return nil
	}

	switch prev.Kind {
	case vdom.KindText:
		e.updateText(prev, next, parent)
		return nil
	case vdom.KindElement:
		return e.updateElement(prev, next)
	default:
		return e.updateComponent(prev, next)
	}
}

// updateText rewrites the parent's text content only when the value changed.
func (e *Engine) updateText(prev, next *vdom.VNode, parent host.Node) {
	next.DOM = parent
	if prev.Text != next.Text {
		e.adapter.SetText(parent, next.Text)
	}
	e.metrics.updated(vdom.KindText)
}

// updateElement keeps the previous host node, re-applies style when the
// Style reference changed and recurses into children by position.
//
// Class changes are not applied, and style keys missing from the next Style
// are not cleared.
func (e *Engine) updateElement(prev, next *vdom.VNode) error {
	next.DOM = prev.DOM

	if prev.Style != next.Style {
		next.Style.Each(func(name, value string) {
			e.adapter.SetStyle(next.DOM, name, value)
		})
	}
	e.metrics.updated(vdom.KindElement)

	return e.updateChildren(prev, next)
}

func (e *Engine) updateChildren(prevEl, nextEl *vdom.VNode) error {
	prev, next := prevEl.Children, nextEl.Children
	parent := nextEl.DOM

	for i, child := range next {
		if i >= len(prev) {
			if e.children != ChildrenLengthAware {
				return newError(codeChildCount, ErrChildCountMismatch,
					"<%s> had %d children, next has %d", nextEl.Tag, len(prev), len(next))
			}
			if _, err := e.mount(child, parent); err != nil {
				return err
			}
			continue
		}
		if err := e.update(prev[i], child, parent); err != nil {
			return err
		}
	}

	if e.children == ChildrenLengthAware && len(prev) > len(next) {
		staleText := false
		for _, child := range prev[len(next):] {
			if _, ok := slotText(child); ok {
				staleText = true
			}
			e.removeHost(child, parent)
		}
		if staleText {
			// The text slot still holds a removed child's value. It must
			// show the last text child that remains, or nothing.
			text := ""
			for _, child := range next {
				if t, ok := slotText(child); ok {
					text = t
				}
			}
			e.adapter.SetText(parent, text)
		}
	}
	return nil
}

// slotText reports the value node writes into its parent's text slot. A
// component writes one when it rendered a text node.
func slotText(node *vdom.VNode) (string, bool) {
	for node != nil {
		switch node.Kind {
		case vdom.KindText:
			return node.Text, true
		case vdom.KindComponent:
			inst, ok := node.Inst.(*Instance)
			if !ok || inst == nil {
				return "", false
			}
			node = inst.current
		default:
			return "", false
		}
	}
	return "", false
}

// removeHost detaches the host node a surplus child was mounted as. Text
// children have no host node of their own; updateChildren resets the text
// slot for them.
func (e *Engine) removeHost(node *vdom.VNode, parent host.Node) {
	if node == nil {
		return
	}
	switch node.Kind {
	case vdom.KindElement:
		if node.DOM != nil {
			e.adapter.RemoveChild(parent, node.DOM)
		}
	case vdom.KindComponent:
		if inst, ok := node.Inst.(*Instance); ok && inst.current != nil {
			e.removeHost(inst.current, parent)
		}
	}
}

// updateComponent moves the instance onto the next node, hands it the next
// props and re-renders it. Render is never skipped.
func (e *Engine) updateComponent(prev, next *vdom.VNode) error {
	inst, ok := prev.Inst.(*Instance)
	if !ok || inst == nil {
		return newError(codeNotMounted, ErrNotMounted, "%s was never mounted", prev.TagName())
	}
	next.DOM = prev.DOM
	next.Inst = inst
	inst.setProps(next.Props)

	if err := e.rerender(inst); err != nil {
		return err
	}
	next.DOM = inst.dom
	e.metrics.updated(vdom.KindComponent)
	return nil
}

// rerender commits pending state, renders the instance and reconciles its
// previous rendered subtree against the new one at the render target.
func (e *Engine) rerender(inst *Instance) error {
	inst.status.Store(int32(StatusUpdating))
	defer inst.status.Store(int32(StatusMounted))

	prevRendered := inst.current
	inst.commitPending()

	nextRendered, err := e.render(inst)
	if err != nil {
		return err
	}
	inst.current = nextRendered

	if err := e.update(prevRendered, nextRendered, inst.parent); err != nil {
		return err
	}
	if nextRendered.DOM != nil {
		inst.dom = nextRendered.DOM
	}
	return nil
}

func (e *Engine) render(inst *Instance) (*vdom.VNode, error) {
	out := inst.comp.Render()
	inst.renders.Add(1)
	e.metrics.rendered(inst.typ.Name())
	if out == nil {
		return nil, newError(codeNilRender, ErrNilRender, "%s rendered nil", inst.typ.Name())
	}
	return out, nil
}
