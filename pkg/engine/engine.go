package engine

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/outrigdev/goid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/vtree/pkg/host"
	"github.com/vango-dev/vtree/pkg/vdom"
)

// Default tracer name for engine spans.
const defaultTracerName = "vtree"

// ChildrenMode selects how element children are reconciled.
type ChildrenMode uint8

const (
	// ChildrenPositional compares children strictly by index. Next children
	// beyond the previous length fail with ErrChildCountMismatch; surplus
	// previous children stay in the host tree.
	ChildrenPositional ChildrenMode = iota

	// ChildrenLengthAware compares by index like ChildrenPositional, but
	// mounts extra next children and removes the host nodes of surplus
	// previous children.
	ChildrenLengthAware
)

// String returns the string representation of the ChildrenMode.
func (m ChildrenMode) String() string {
	switch m {
	case ChildrenPositional:
		return "positional"
	case ChildrenLengthAware:
		return "length-aware"
	default:
		return "unknown"
	}
}

// ParseChildrenMode parses "positional" or "length-aware".
func ParseChildrenMode(s string) (ChildrenMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "positional":
		return ChildrenPositional, nil
	case "length-aware", "lengthaware":
		return ChildrenLengthAware, nil
	default:
		return 0, fmt.Errorf("unknown children mode %q", s)
	}
}

// CommitKind identifies what kind of cycle produced a Commit.
type CommitKind uint8

const (
	CommitMount CommitKind = iota + 1
	CommitUpdate
	CommitSetState
)

// String returns the string representation of the CommitKind.
func (k CommitKind) String() string {
	switch k {
	case CommitMount:
		return "mount"
	case CommitUpdate:
		return "update"
	case CommitSetState:
		return "set_state"
	default:
		return "unknown"
	}
}

// Commit describes a finished engine cycle.
type Commit struct {
	Kind      CommitKind
	Seq       uint64 // 1-based, increases with every cycle
	Component string // component type name, for set-state cycles
	Instance  string // instance ID, for set-state cycles
	Duration  time.Duration
	Err       error
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger. Default: slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithMetrics records engine metrics into m.
func WithMetrics(m *Metrics) Option {
	return func(e *Engine) {
		e.metrics = m
	}
}

// WithTracer sets the tracer. Default: the global provider's "vtree" tracer.
func WithTracer(tracer trace.Tracer) Option {
	return func(e *Engine) {
		if tracer != nil {
			e.tracer = tracer
		}
	}
}

// WithStrictTags makes tag mismatches fail with ErrTagMismatch instead of
// being skipped.
func WithStrictTags(strict bool) Option {
	return func(e *Engine) {
		e.strictTags = strict
	}
}

// WithChildrenMode sets how element children are reconciled.
func WithChildrenMode(mode ChildrenMode) Option {
	return func(e *Engine) {
		e.children = mode
	}
}

// Engine mounts and reconciles virtual trees into a host tree.
type Engine struct {
	adapter    host.Adapter
	logger     *slog.Logger
	metrics    *Metrics
	tracer     trace.Tracer
	strictTags bool
	children   ChildrenMode

	mu    sync.Mutex
	owner atomic.Uint64 // goroutine holding mu, 0 if none
	seq   uint64

	obsMu     sync.RWMutex
	observers []observer
	nextObs   int
}

type observer struct {
	id int
	fn func(Commit)
}

// New creates an Engine that mutates the host tree through adapter.
func New(adapter host.Adapter, opts ...Option) *Engine {
	e := &Engine{
		logger: slog.Default(),
		tracer: otel.Tracer(defaultTracerName),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.logger = e.logger.With("component", "engine")
	e.adapter = adapter
	if e.metrics != nil {
		e.adapter = &countingAdapter{next: adapter, metrics: e.metrics}
	}
	return e
}

// Logger returns the engine's logger.
func (e *Engine) Logger() *slog.Logger {
	return e.logger
}

// ChildrenMode returns the configured children mode.
func (e *Engine) ChildrenMode() ChildrenMode {
	return e.children
}

// Observe registers fn to be called after every cycle. fn runs on the
// goroutine that ran the cycle, while the engine lock is still held, so it
// sees a consistent host tree; it must not start another cycle. The returned
// function unregisters fn.
func (e *Engine) Observe(fn func(Commit)) (cancel func()) {
	e.obsMu.Lock()
	id := e.nextObs
	e.nextObs++
	e.observers = append(e.observers, observer{id: id, fn: fn})
	e.obsMu.Unlock()
	return func() {
		e.obsMu.Lock()
		defer e.obsMu.Unlock()
		for i, o := range e.observers {
			if o.id == id {
				e.observers = append(e.observers[:i:i], e.observers[i+1:]...)
				return
			}
		}
	}
}

// View runs fn while holding the engine lock, so fn can read the host tree
// without racing a cycle. Called from inside a cycle (for example from an
// observer), fn runs directly.
func (e *Engine) View(fn func()) {
	if e.owner.Load() == goid.Get() {
		fn()
		return
	}
	unlock, _ := e.acquire()
	defer unlock()
	fn()
}

// acquire takes the engine lock for the calling goroutine.
func (e *Engine) acquire() (func(), error) {
	gid := goid.Get()
	if e.owner.Load() == gid {
		return nil, newError(codeReentrant, ErrReentrantUpdate, "a cycle is already running on this goroutine")
	}
	e.mu.Lock()
	e.owner.Store(gid)
	return func() {
		e.owner.Store(0)
		e.mu.Unlock()
	}, nil
}

// Mount materializes node under parent and returns the host node that now
// corresponds to it.
func (e *Engine) Mount(ctx context.Context, node *vdom.VNode, parent host.Node) (host.Node, error) {
	unlock, err := e.acquire()
	if err != nil {
		return nil, err
	}
	defer unlock()
	return e.runMount(ctx, node, parent)
}

// Update reconciles prev into next at parent, mutating the host tree in
// place.
func (e *Engine) Update(ctx context.Context, prev, next *vdom.VNode, parent host.Node) error {
	unlock, err := e.acquire()
	if err != nil {
		return err
	}
	defer unlock()
	return e.runUpdate(ctx, prev, next, parent)
}

func (e *Engine) runMount(ctx context.Context, node *vdom.VNode, parent host.Node) (host.Node, error) {
	_, span := e.tracer.Start(ctx, "vtree.mount", trace.WithAttributes(
		attribute.String("vtree.tag", node.TagName()),
	))
	defer span.End()

	start := time.Now()
	dom, err := e.mount(node, parent)
	e.finish(span, Commit{Kind: CommitMount, Duration: time.Since(start), Err: err})
	return dom, err
}

func (e *Engine) runUpdate(ctx context.Context, prev, next *vdom.VNode, parent host.Node) error {
	_, span := e.tracer.Start(ctx, "vtree.update", trace.WithAttributes(
		attribute.String("vtree.prev_tag", prev.TagName()),
		attribute.String("vtree.next_tag", next.TagName()),
	))
	defer span.End()

	start := time.Now()
	err := e.update(prev, next, parent)
	e.finish(span, Commit{Kind: CommitUpdate, Duration: time.Since(start), Err: err})
	return err
}

func (e *Engine) runSetState(ctx context.Context, inst *Instance) error {
	_, span := e.tracer.Start(ctx, "vtree.set_state", trace.WithAttributes(
		attribute.String("vtree.component", inst.typ.Name()),
		attribute.String("vtree.instance", inst.id),
	))
	defer span.End()

	start := time.Now()
	err := e.rerender(inst)
	e.finish(span, Commit{
		Kind:      CommitSetState,
		Component: inst.typ.Name(),
		Instance:  inst.id,
		Duration:  time.Since(start),
		Err:       err,
	})
	return err
}

// finish records a completed cycle and notifies observers. Must hold mu.
func (e *Engine) finish(span trace.Span, c Commit) {
	e.seq++
	c.Seq = e.seq
	span.SetAttributes(attribute.Int64("vtree.seq", int64(c.Seq)))
	if c.Err != nil {
		span.RecordError(c.Err)
		span.SetStatus(codes.Error, c.Err.Error())
		e.logger.Error("cycle failed", "kind", c.Kind.String(), "seq", c.Seq, "error", c.Err)
	} else {
		e.logger.Debug("cycle committed", "kind", c.Kind.String(), "seq", c.Seq, "duration", c.Duration)
	}
	e.metrics.cycle(c.Kind, c.Duration, c.Err)

	e.obsMu.RLock()
	observers := e.observers
	e.obsMu.RUnlock()
	for _, o := range observers {
		o.fn(c)
	}
}
