package engine

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	vterrors "github.com/vango-dev/vtree/internal/errors"
	"github.com/vango-dev/vtree/pkg/host"
	"github.com/vango-dev/vtree/pkg/vdom"
)

// mountInstance mounts a component of typ under parent and returns its
// instance.
func mountInstance(t *testing.T, eng *Engine, parent host.Node, typ *vdom.ComponentType, props vdom.Props) *Instance {
	t.Helper()
	node := vdom.C(typ, props)
	if _, err := eng.Mount(context.Background(), node, parent); err != nil {
		t.Fatalf("Mount() error = %v", err)
	}
	inst, ok := node.Inst.(*Instance)
	if !ok {
		t.Fatalf("node.Inst = %T, want *Instance", node.Inst)
	}
	return inst
}

func TestSetStateMergesSynchronously(t *testing.T) {
	eng, mem, _ := newTestEngine(t)
	typ := defineStateful("Pair", vdom.State{"a": 0, "b": 0}, func(h vdom.Handle) *vdom.VNode {
		s := h.State()
		return vdom.Div(vdom.Config{}, vdom.Textf("%d-%d", s.Int("a"), s.Int("b")))
	})
	inst := mountInstance(t, eng, mem.Root(), typ, nil)

	var commits []Commit
	cancel := eng.Observe(func(c Commit) { commits = append(commits, c) })
	defer cancel()

	inst.SetState(vdom.State{"a": 1})
	if got := element(t, inst.DOM()).Text; got != "1-0" {
		t.Errorf("after first SetState text = %q, want 1-0", got)
	}
	inst.SetState(vdom.State{"b": 2})

	if diff := cmp.Diff(vdom.State{"a": 1, "b": 2}, inst.State()); diff != "" {
		t.Errorf("state mismatch (-want +got):\n%s", diff)
	}
	if got := element(t, inst.DOM()).Text; got != "1-2" {
		t.Errorf("text = %q, want 1-2", got)
	}
	if len(commits) != 2 {
		t.Fatalf("commits = %d, want 2", len(commits))
	}
	for _, c := range commits {
		if c.Kind != CommitSetState || c.Instance != inst.ID() || c.Component != "Pair" {
			t.Errorf("commit = %+v", c)
		}
	}
	if inst.Renders() != 3 {
		t.Errorf("Renders() = %d, want 3", inst.Renders())
	}
	if inst.Pending() != nil {
		t.Error("pending must be nil outside a cycle")
	}
	if inst.Status() != StatusMounted {
		t.Errorf("Status() = %v, want mounted", inst.Status())
	}
}

func TestSetStateDoesNotMutatePreviousState(t *testing.T) {
	eng, mem, _ := newTestEngine(t)
	typ := defineStateful("Counter", vdom.State{"counter": 1}, func(h vdom.Handle) *vdom.VNode {
		return vdom.Textf("%d", h.State().Int("counter"))
	})
	inst := mountInstance(t, eng, mem.Root(), typ, nil)

	before := inst.State()
	inst.SetState(vdom.State{"counter": 2})
	if before.Int("counter") != 1 {
		t.Error("SetState must replace the state map, not write into it")
	}
	if mem.Root().Text != "2" {
		t.Errorf("text = %q, want 2", mem.Root().Text)
	}
}

func TestPendingIsClearedBeforeRender(t *testing.T) {
	eng, mem, _ := newTestEngine(t)
	var seen []vdom.State
	var self *Instance
	typ := defineStateful("Probe", vdom.State{"n": 0}, func(h vdom.Handle) *vdom.VNode {
		if self != nil {
			seen = append(seen, self.Pending())
		}
		return vdom.Textf("%d", h.State().Int("n"))
	})
	self = mountInstance(t, eng, mem.Root(), typ, nil)

	self.SetState(vdom.State{"n": 5})
	if len(seen) != 1 || seen[0] != nil {
		t.Errorf("pending during render = %v, want nil", seen)
	}
	if self.State().Int("n") != 5 {
		t.Errorf("state = %v", self.State())
	}
}

func TestSetStateFromRenderIsReentrant(t *testing.T) {
	eng, mem, _ := newTestEngine(t)
	var reentrant bool
	var inner error
	typ := defineStateful("Loop", vdom.State{"n": 0}, func(h vdom.Handle) *vdom.VNode {
		if reentrant {
			inner = h.(*Instance).SetStateErr(vdom.State{"n": 99})
		}
		return vdom.Textf("%d", h.State().Int("n"))
	})
	inst := mountInstance(t, eng, mem.Root(), typ, nil)

	reentrant = true
	if err := inst.SetStateErr(vdom.State{"n": 1}); err != nil {
		t.Fatalf("outer SetStateErr() error = %v", err)
	}
	if !errors.Is(inner, ErrReentrantUpdate) {
		t.Errorf("inner err = %v, want ErrReentrantUpdate", inner)
	}
	if vterrors.CodeOf(inner) != "VT005" {
		t.Errorf("code = %q, want VT005", vterrors.CodeOf(inner))
	}
	if inst.State().Int("n") != 1 {
		t.Errorf("state = %v, want n=1", inst.State())
	}
}

func TestSetStateWhileConstructing(t *testing.T) {
	eng, mem, _ := newTestEngine(t)
	var early error
	typ := vdom.Define("Eager", func(h vdom.Handle) vdom.Component {
		early = h.(*Instance).SetStateErr(vdom.State{"x": 1})
		return vdom.Func(func() *vdom.VNode { return vdom.Text("ok") })
	})
	mountInstance(t, eng, mem.Root(), typ, nil)

	if !errors.Is(early, ErrNotMounted) {
		t.Errorf("err = %v, want ErrNotMounted", early)
	}
}

func TestSetStateLogsFailures(t *testing.T) {
	var logs bytes.Buffer
	eng, mem, _ := newTestEngine(t, WithLogger(capturingLogger(&logs)))
	var fail bool
	typ := defineStateful("Flaky", vdom.State{}, func(h vdom.Handle) *vdom.VNode {
		if fail {
			return nil
		}
		return vdom.Text("fine")
	})
	inst := mountInstance(t, eng, mem.Root(), typ, nil)

	fail = true
	inst.SetState(vdom.State{"x": 1})
	if !strings.Contains(logs.String(), "set state failed") {
		t.Errorf("expected failure to be logged, logs:\n%s", logs.String())
	}
	if inst.Status() != StatusMounted {
		t.Errorf("Status() = %v after failed cycle, want mounted", inst.Status())
	}
}

func TestSetStateNilRender(t *testing.T) {
	eng, mem, _ := newTestEngine(t)
	var fail bool
	typ := defineStateful("Vanish", vdom.State{}, func(h vdom.Handle) *vdom.VNode {
		if fail {
			return nil
		}
		return vdom.Text("here")
	})
	inst := mountInstance(t, eng, mem.Root(), typ, nil)

	fail = true
	err := inst.SetStateErr(vdom.State{"gone": true})
	if !errors.Is(err, ErrNilRender) {
		t.Fatalf("err = %v, want ErrNilRender", err)
	}
	if vterrors.CodeOf(err) != "VT004" {
		t.Errorf("code = %q, want VT004", vterrors.CodeOf(err))
	}
	if mem.Root().Text != "here" {
		t.Errorf("host text = %q, failed render must not touch the host", mem.Root().Text)
	}
}

func TestSetStateFromGoroutinesIsSerialized(t *testing.T) {
	eng, mem, _ := newTestEngine(t)
	typ := defineStateful("Many", vdom.State{}, func(h vdom.Handle) *vdom.VNode {
		return vdom.Div(vdom.Config{}, vdom.Textf("%d", len(h.State())))
	})
	inst := mountInstance(t, eng, mem.Root(), typ, nil)

	const n = 16
	var wg sync.WaitGroup
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := inst.SetStateErr(vdom.State{fmt.Sprintf("k%d", i): i}); err != nil {
				t.Errorf("SetStateErr() error = %v", err)
			}
		}()
	}
	wg.Wait()

	if got := len(inst.State()); got != n {
		t.Errorf("state keys = %d, want %d", got, n)
	}
	if inst.Renders() != n+1 {
		t.Errorf("Renders() = %d, want %d", inst.Renders(), n+1)
	}
	var text string
	eng.View(func() { text = element(t, inst.DOM()).Text })
	if text != fmt.Sprint(n) {
		t.Errorf("text = %q, want %d", text, n)
	}
}

func TestNestedComponentReceivesParentState(t *testing.T) {
	eng, mem, _ := newTestEngine(t)
	nested := vdom.Define("Nested", func(h vdom.Handle) vdom.Component {
		return vdom.Func(func() *vdom.VNode {
			return vdom.H1(vdom.Config{}, vdom.Textf("The count from parent is: %d", h.Props().Int("counter")))
		})
	})
	app := defineStateful("App", vdom.State{"counter": 1}, func(h vdom.Handle) *vdom.VNode {
		return vdom.Div(vdom.Config{}, vdom.C(nested, vdom.Props{"counter": h.State().Int("counter")}))
	})
	inst := mountInstance(t, eng, mem.Root(), app, nil)

	child := inst.Current().Children[0].Inst.(*Instance)
	inst.SetState(vdom.State{"counter": 2})

	h1 := mem.Root().Find("h1")
	if len(h1) != 1 || h1[0].Text != "The count from parent is: 2" {
		t.Fatalf("h1 = %+v", h1)
	}
	if got := inst.Current().Children[0].Inst; got != vdom.Handle(child) {
		t.Error("nested instance must survive the parent's re-render")
	}
	if child.Renders() != 2 {
		t.Errorf("nested Renders() = %d, want 2", child.Renders())
	}
}

func TestStatusString(t *testing.T) {
	tests := map[Status]string{
		StatusConstructing: "constructing",
		StatusMounted:      "mounted",
		StatusUpdating:     "updating",
		Status(42):         "unknown",
	}
	for s, want := range tests {
		if got := s.String(); got != want {
			t.Errorf("Status(%d).String() = %q, want %q", s, got, want)
		}
	}
}
