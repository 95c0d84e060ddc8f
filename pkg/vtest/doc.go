// Package vtest provides testing helpers for vtree components.
//
// A Harness wires an engine to an in-memory host through a call recorder,
// so tests can render a tree, drive state changes and assert on both the
// resulting host tree and the host operations it took to get there.
//
// # Quick Start
//
//	func TestCounter(t *testing.T) {
//	    h := vtest.New(t)
//	    h.Render(vdom.C(Counter, nil))
//	    vtest.ExpectContains(t, h, "the counter is 1")
//
//	    h.ResetCalls()
//	    h.Instance().SetState(vdom.State{"counter": 2})
//	    vtest.ExpectContains(t, h, "the counter is 2")
//	    vtest.ExpectCalls(t, h, host.OpCreateNode, 0)
//	}
//
// # One-Liner Rendering
//
// RenderToString mounts a tree into a fresh host and returns its HTML:
//
//	html := vtest.RenderToString(vdom.Div(vdom.Config{}, vdom.Text("hi")))
package vtest
