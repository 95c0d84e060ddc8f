// Package vdom provides the virtual node model for vtree.
//
// A virtual tree is plain data describing what the UI should look like.
// It is created fresh on every render and handed to the engine, which
// mounts it into a host tree the first time and reconciles it against the
// previous tree afterwards.
//
// # Core Types
//
// VNode is a tagged union over three kinds:
//
//   - KindText: a text or number value, no children
//   - KindElement: a host tag with an optional class, an optional ordered
//     Style and positional children
//   - KindComponent: a *ComponentType plus Props; the engine instantiates
//     the type once per mount point and keeps the instance across renders
//
// DOM and Inst are back-references written by the engine during mount and
// update. Everything else is set at construction and never changed.
//
// # Building Trees
//
//	vdom.H("div", vdom.Config{Style: vdom.NewStyle("height", "10px")},
//	    vdom.Text("the counter is 1"),
//	    vdom.H1(vdom.Config{}, vdom.Text("BOOM! ")),
//	    vdom.C(Nested, vdom.Props{"counter": 1}),
//	)
//
// CreateElement accepts any tag value and classifies it: a *ComponentType
// yields a component node, a string yields an element node, anything else
// yields a KindInvalid node that the engine rejects with an
// unclassifiable-node error when it reaches it.
//
// # Components
//
// A component type is declared once with Define. Its constructor receives
// a Handle supplied by the engine, which gives access to props, state and
// SetState:
//
//	var Counter = vdom.Define("Counter", func(h vdom.Handle) vdom.Component {
//	    return vdom.Func(func() *vdom.VNode {
//	        return vdom.Textf("count: %d", h.State().Int("count"))
//	    })
//	})
package vdom
