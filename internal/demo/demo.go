package demo

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/vango-dev/vtree/pkg/engine"
	"github.com/vango-dev/vtree/pkg/vdom"
)

const (
	// DefaultInterval is the time between counter increments.
	DefaultInterval = 500 * time.Millisecond

	// DefaultMaxCounter is the last counter value that still increments.
	DefaultMaxCounter = 10
)

// ColorFunc returns a CSS color.
type ColorFunc func() string

// RandomColor returns "#" followed by a random hex number below 0xffffff.
// The number is not zero padded, so short forms like "#3fa" can appear.
func RandomColor() string {
	return fmt.Sprintf("#%x", rand.IntN(16777215))
}

// Cycle returns a ColorFunc that walks colors in order and wraps around.
func Cycle(colors ...string) ColorFunc {
	if len(colors) == 0 {
		return RandomColor
	}
	next := 0
	return func() string {
		c := colors[next%len(colors)]
		next++
		return c
	}
}

// Options configures a Demo.
type Options struct {
	Interval   time.Duration
	MaxCounter int
	Color      ColorFunc
	Logger     *slog.Logger
}

// Demo owns the App and NestedApp component types.
type Demo struct {
	App       *vdom.ComponentType
	NestedApp *vdom.ComponentType

	interval time.Duration
	max      int
	color    ColorFunc
	logger   *slog.Logger
}

// New creates a Demo. Zero options take their defaults.
func New(opts Options) *Demo {
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}
	if opts.MaxCounter <= 0 {
		opts.MaxCounter = DefaultMaxCounter
	}
	if opts.Color == nil {
		opts.Color = RandomColor
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	d := &Demo{
		interval: opts.Interval,
		max:      opts.MaxCounter,
		color:    opts.Color,
		logger:   opts.Logger.With("component", "demo"),
	}
	d.NestedApp = vdom.Define("NestedApp", func(h vdom.Handle) vdom.Component {
		return &nestedApp{h: h, demo: d}
	})
	d.App = vdom.Define("App", func(h vdom.Handle) vdom.Component {
		return &app{h: h, demo: d}
	})
	return d
}

// Interval returns the tick interval.
func (d *Demo) Interval() time.Duration {
	return d.interval
}

// MaxCounter returns the last counter value that still increments.
func (d *Demo) MaxCounter() int {
	return d.max
}

// Node returns the root vnode of the application.
func (d *Demo) Node() *vdom.VNode {
	return vdom.C(d.App, nil)
}

// Mount renders the application into root.
func (d *Demo) Mount(ctx context.Context, root *engine.Root) (*engine.Instance, error) {
	if err := root.Render(ctx, d.Node()); err != nil {
		return nil, err
	}
	inst := root.Instance()
	if inst == nil {
		return nil, fmt.Errorf("demo: root has no component instance")
	}
	return inst, nil
}

// Run mounts the application and ticks until the counter passes the
// maximum or ctx is done. It returns ctx.Err() on cancellation.
func (d *Demo) Run(ctx context.Context, root *engine.Root) error {
	inst, err := d.Mount(ctx, root)
	if err != nil {
		return err
	}
	return d.Tick(ctx, inst)
}

// Tick drives an already mounted App instance.
func (d *Demo) Tick(ctx context.Context, inst *engine.Instance) error {
	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}

		counter := inst.State().Int("counter")
		if counter > d.max {
			d.logger.Info("demo finished", "counter", counter)
			return nil
		}
		if err := inst.SetStateContext(ctx, vdom.State{"counter": counter + 1}); err != nil {
			return err
		}
		d.logger.Debug("tick", "counter", counter+1)
	}
}

type app struct {
	h    vdom.Handle
	demo *Demo
}

func (a *app) InitialState() vdom.State {
	return vdom.State{"counter": 1}
}

func (a *app) Render() *vdom.VNode {
	counter := a.h.State().Int("counter")
	style := vdom.NewStyle(
		"height", fmt.Sprintf("%dpx", 10*counter),
		"background", a.demo.color(),
	)
	return vdom.Div(vdom.Config{Style: style},
		vdom.Textf("the counter is %d", counter),
		vdom.H1(vdom.Config{Style: vdom.NewStyle("color", a.demo.color())},
			vdom.Text(strings.Repeat("BOOM! ", counter)),
		),
		vdom.C(a.demo.NestedApp, vdom.Props{"counter": counter}),
	)
}

type nestedApp struct {
	h    vdom.Handle
	demo *Demo
}

func (n *nestedApp) Render() *vdom.VNode {
	return vdom.H1(vdom.Config{Style: vdom.NewStyle("color", n.demo.color())},
		vdom.Textf("The count from parent is: %d", n.h.Props().Int("counter")),
	)
}
