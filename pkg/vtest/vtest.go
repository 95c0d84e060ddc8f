package vtest

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/vango-dev/vtree/pkg/engine"
	"github.com/vango-dev/vtree/pkg/host"
	"github.com/vango-dev/vtree/pkg/render"
	"github.com/vango-dev/vtree/pkg/vdom"
)

// TB is the subset of testing.TB the helpers use.
type TB interface {
	Helper()
	Errorf(format string, args ...any)
	Fatalf(format string, args ...any)
}

// Harness is an engine rendering into a recorded in-memory host.
type Harness struct {
	t        TB
	Engine   *engine.Engine
	Memory   *host.Memory
	Recorder *host.Recorder
	Root     *engine.Root
}

// New creates a harness. Engine logs are discarded unless opts set a
// logger.
func New(t TB, opts ...engine.Option) *Harness {
	mem := host.NewMemory()
	rec := host.NewRecorder(mem)
	opts = append([]engine.Option{engine.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))}, opts...)
	eng := engine.New(rec, opts...)
	return &Harness{
		t:        t,
		Engine:   eng,
		Memory:   mem,
		Recorder: rec,
		Root:     engine.NewRoot(eng, mem.Root()),
	}
}

// Render mounts node on the first call and updates into it afterwards,
// failing the test on error.
func (h *Harness) Render(node *vdom.VNode) *Harness {
	h.t.Helper()
	if err := h.Root.Render(context.Background(), node); err != nil {
		h.t.Fatalf("render: %v", err)
	}
	return h
}

// Instance returns the component instance at the top of the rendered tree,
// failing the test when there is none.
func (h *Harness) Instance() *engine.Instance {
	h.t.Helper()
	inst := h.Root.Instance()
	if inst == nil {
		h.t.Fatalf("rendered tree is not rooted at a component")
	}
	return inst
}

// HTML returns the host tree as HTML, without the container element.
func (h *Harness) HTML() string {
	var out string
	h.Engine.View(func() { out = render.RenderHTML(h.Memory.Root()) })
	return out
}

// Text returns the concatenated text content of the host tree.
func (h *Harness) Text() string {
	var out string
	h.Engine.View(func() { out = h.Memory.Root().TextContent() })
	return out
}

// Find returns every host element with the tag.
func (h *Harness) Find(tag string) []*host.Element {
	var out []*host.Element
	h.Engine.View(func() { out = h.Memory.Root().Find(tag) })
	return out
}

// ResetCalls forgets the host calls recorded so far.
func (h *Harness) ResetCalls() {
	h.Recorder.Reset()
}

// RenderToString mounts node into a fresh host and returns its HTML, or ""
// when mounting fails.
func RenderToString(node *vdom.VNode) string {
	mem := host.NewMemory()
	eng := engine.New(mem, engine.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	if _, err := eng.Mount(context.Background(), node, mem.Root()); err != nil {
		return ""
	}
	return render.RenderHTML(mem.Root())
}

// ExpectContains asserts that the harness HTML contains expected.
//
// Example:
//
//	vtest.ExpectContains(t, h, "the counter is 2")
func ExpectContains(t TB, h *Harness, expected string) {
	t.Helper()
	html := h.HTML()
	if !strings.Contains(html, expected) {
		t.Errorf("expected rendered output to contain %q, got:\n%s", expected, truncate(html, 500))
	}
}

// ExpectNotContains asserts that the harness HTML does not contain
// unexpected.
func ExpectNotContains(t TB, h *Harness, unexpected string) {
	t.Helper()
	html := h.HTML()
	if strings.Contains(html, unexpected) {
		t.Errorf("expected rendered output to NOT contain %q, got:\n%s", unexpected, truncate(html, 500))
	}
}

// ExpectElement asserts that the host tree holds count elements with tag.
//
// Example:
//
//	vtest.ExpectElement(t, h, "h1", 2)
func ExpectElement(t TB, h *Harness, tag string, count int) {
	t.Helper()
	if got := len(h.Find(tag)); got != count {
		t.Errorf("expected %d <%s> elements, got %d:\n%s", count, tag, got, truncate(h.HTML(), 500))
	}
}

// ExpectStyle asserts that the first element with tag has the style value.
//
// Example:
//
//	vtest.ExpectStyle(t, h, "div", "height", "20px")
func ExpectStyle(t TB, h *Harness, tag, name, value string) {
	t.Helper()
	els := h.Find(tag)
	if len(els) == 0 {
		t.Errorf("no <%s> element in:\n%s", tag, truncate(h.HTML(), 500))
		return
	}
	if got, ok := els[0].StyleValue(name); !ok || got != value {
		t.Errorf("<%s> style %s = %q (set: %v), want %q", tag, name, got, ok, value)
	}
}

// ExpectCalls asserts how many host calls of op were recorded since the
// last ResetCalls. An op of 0 counts every call.
//
// Example:
//
//	vtest.ExpectCalls(t, h, host.OpSetText, 1)
func ExpectCalls(t TB, h *Harness, op host.Op, count int) {
	t.Helper()
	if got := h.Recorder.Count(op); got != count {
		name := "host"
		if op != 0 {
			name = op.String()
		}
		t.Errorf("expected %d %s calls, got %d: %+v", count, name, got, h.Recorder.Calls())
	}
}

// truncate truncates a string to max length with ellipsis.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
