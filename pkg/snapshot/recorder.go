package snapshot

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/vango-dev/vtree/pkg/engine"
	"github.com/vango-dev/vtree/pkg/host"
	"github.com/vango-dev/vtree/pkg/render"
)

// RecorderOption configures a Recorder.
type RecorderOption func(*Recorder)

// WithLogger sets the recorder's logger. Default: slog.Default().
func WithLogger(logger *slog.Logger) RecorderOption {
	return func(r *Recorder) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithBacklog sets how many snapshots may wait for the store before new
// ones are dropped. Default: 256.
func WithBacklog(n int) RecorderOption {
	return func(r *Recorder) {
		if n > 0 {
			r.backlog = n
		}
	}
}

// WithClock overrides the time source stamped on snapshots.
func WithClock(now func() time.Time) RecorderOption {
	return func(r *Recorder) {
		r.now = now
	}
}

// Recorder stores a snapshot of the host tree after every successful
// commit. Rendering happens inside the commit; writes happen on a background
// goroutine in commit order.
type Recorder struct {
	engine   *engine.Engine
	store    Store
	mem      *host.Memory
	renderer *render.Renderer
	logger   *slog.Logger
	backlog  int
	now      func() time.Time

	queue  chan Snapshot
	detach func()
	done   chan struct{}
	once   sync.Once

	mu      sync.Mutex
	written uint64
	dropped uint64
	lastErr error
}

// NewRecorder starts recording commits of eng, rendered from mem, into
// store. Call Close to flush and stop.
func NewRecorder(eng *engine.Engine, mem *host.Memory, store Store, opts ...RecorderOption) *Recorder {
	r := &Recorder{
		engine:   eng,
		store:    store,
		mem:      mem,
		renderer: render.NewRenderer(render.RendererConfig{SkipRoot: true}),
		logger:   slog.Default(),
		backlog:  256,
		now:      time.Now,
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = r.logger.With("component", "snapshot")
	r.queue = make(chan Snapshot, r.backlog)

	go r.loop()
	r.detach = eng.Observe(r.observe)
	return r
}

func (r *Recorder) observe(c engine.Commit) {
	if c.Err != nil {
		return
	}
	html, err := r.renderer.RenderToString(r.mem.Root())
	if err != nil {
		r.logger.Error("render snapshot", "seq", c.Seq, "error", err)
		return
	}
	snap := Snapshot{
		Seq:       c.Seq,
		Kind:      c.Kind.String(),
		Component: c.Component,
		HTML:      html,
		Time:      r.now().UTC(),
	}
	select {
	case r.queue <- snap:
	default:
		r.mu.Lock()
		r.dropped++
		r.mu.Unlock()
		r.logger.Warn("snapshot backlog full, snapshot dropped", "seq", c.Seq)
	}
}

func (r *Recorder) loop() {
	defer close(r.done)
	for snap := range r.queue {
		err := r.store.Put(context.Background(), snap)
		r.mu.Lock()
		if err != nil {
			r.lastErr = err
		} else {
			r.written++
		}
		r.mu.Unlock()
		if err != nil {
			r.logger.Error("store snapshot", "seq", snap.Seq, "error", err)
		}
	}
}

// Stats returns how many snapshots were written and dropped, and the last
// store error.
func (r *Recorder) Stats() (written, dropped uint64, lastErr error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.written, r.dropped, r.lastErr
}

// Close stops observing, writes every queued snapshot and returns. It does
// not close the store.
func (r *Recorder) Close() error {
	r.once.Do(func() {
		// Observers run under the engine lock; detaching under it too means
		// no observer is still sending once the queue closes.
		r.engine.View(r.detach)
		close(r.queue)
	})
	<-r.done
	_, _, err := r.Stats()
	return err
}
