// Package host defines the boundary between the reconciliation engine and
// a real display tree.
//
// The engine never touches a display tree directly. Every mutation goes
// through an Adapter: create a node for a tag, set a node's text content,
// set its class, set one style property, append a child, remove a child.
// Nodes are opaque to the engine; only the Adapter that created a node
// knows what it is.
//
// # Memory
//
// Memory is the reference Adapter: an in-process tree of *Element values
// rooted at a "body" element. It is what the CLI, the preview server and
// the tests render into.
//
//	mem := host.NewMemory()
//	eng := engine.New(mem)
//	eng.Mount(ctx, vdom.H("div", vdom.Config{}, vdom.Text("hi")), mem.Root())
//
// # Recorder
//
// Recorder wraps another Adapter and records each call, which makes
// "how many host mutations did this update cost" a directly testable
// property.
package host
