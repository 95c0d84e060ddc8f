package snapshot

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/vango-dev/vtree/pkg/engine"
	"github.com/vango-dev/vtree/pkg/host"
	"github.com/vango-dev/vtree/pkg/vdom"
)

func TestRecorderStoresEachCommit(t *testing.T) {
	store := openTestBolt(t)
	mem := host.NewMemory()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	eng := engine.New(mem, engine.WithLogger(logger))
	stamp := time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)
	rec := NewRecorder(eng, mem, store, WithLogger(logger), WithClock(func() time.Time { return stamp }))

	var handle vdom.Handle
	app := vdom.Define("App", func(h vdom.Handle) vdom.Component {
		handle = h
		return vdom.FuncWithState(vdom.State{"counter": 1}, func() *vdom.VNode {
			return vdom.Div(vdom.Config{}, vdom.Textf("the counter is %d", h.State().Int("counter")))
		})
	})
	root := engine.NewRoot(eng, mem.Root())
	if err := root.Render(context.Background(), vdom.C(app, nil)); err != nil {
		t.Fatal(err)
	}
	handle.SetState(vdom.State{"counter": 2})

	if err := rec.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	written, dropped, _ := rec.Stats()
	if written != 2 || dropped != 0 {
		t.Errorf("Stats() = %d written, %d dropped", written, dropped)
	}

	ctx := context.Background()
	first, err := store.Get(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	if first.Kind != "mount" || first.HTML != "<div>the counter is 1</div>" || !first.Time.Equal(stamp) {
		t.Errorf("first = %+v", first)
	}
	latest, err := store.Latest(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if latest.Seq != 2 || latest.Kind != "set_state" || latest.Component != "App" {
		t.Errorf("latest = %+v", latest)
	}
	if latest.HTML != "<div>the counter is 2</div>" {
		t.Errorf("latest HTML = %q", latest.HTML)
	}

	// Commits after Close are not recorded.
	handle.SetState(vdom.State{"counter": 3})
	if _, err := store.Get(ctx, 3); err == nil {
		t.Error("commit after Close was recorded")
	}
}

func TestRecorderSkipsFailedCommits(t *testing.T) {
	fake := newFakeS3()
	store := NewS3Store(fake, "b", "")
	mem := host.NewMemory()
	eng := engine.New(mem, engine.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	rec := NewRecorder(eng, mem, store)

	if _, err := eng.Mount(context.Background(), nil, mem.Root()); err == nil {
		t.Fatal("expected mount error")
	}
	if err := rec.Close(); err != nil {
		t.Fatal(err)
	}
	if written, _, _ := rec.Stats(); written != 0 {
		t.Errorf("written = %d, want 0", written)
	}
}
