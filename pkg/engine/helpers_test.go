package engine

import (
	"bytes"
	"io"
	"log/slog"
	"testing"

	"github.com/vango-dev/vtree/pkg/host"
	"github.com/vango-dev/vtree/pkg/vdom"
)

// newTestEngine returns an engine writing to an in-memory host through a
// recorder.
func newTestEngine(t *testing.T, opts ...Option) (*Engine, *host.Memory, *host.Recorder) {
	t.Helper()
	mem := host.NewMemory()
	rec := host.NewRecorder(mem)
	opts = append([]Option{WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))}, opts...)
	return New(rec, opts...), mem, rec
}

// capturingLogger returns a logger writing text records into buf.
func capturingLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// defineStateful declares a component type with initial state and a render
// function that sees the handle.
func defineStateful(name string, initial vdom.State, render func(h vdom.Handle) *vdom.VNode) *vdom.ComponentType {
	return vdom.Define(name, func(h vdom.Handle) vdom.Component {
		return vdom.FuncWithState(initial, func() *vdom.VNode { return render(h) })
	})
}

// element returns the memory element behind a host node, failing the test
// when it is something else.
func element(t *testing.T, n host.Node) *host.Element {
	t.Helper()
	el, ok := n.(*host.Element)
	if !ok {
		t.Fatalf("host node is %T, want *host.Element", n)
	}
	return el
}
