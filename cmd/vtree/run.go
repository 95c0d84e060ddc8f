package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	vterrors "github.com/vango-dev/vtree/internal/errors"
	"github.com/vango-dev/vtree/pkg/engine"
	"github.com/vango-dev/vtree/pkg/render"
)

type runOptions struct {
	interval time.Duration
	max      int
	tui      bool
	snapshot string
}

func runCmd(global *globalOptions) *cobra.Command {
	opts := &runOptions{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the counter demo",
		Long: `Run the counter demo against an in-memory host.

Every commit prints the host tree as an outline. With --tui the tree is
shown in a live terminal view instead.

Examples:
  vtree run
  vtree run --interval=100ms --max=20
  vtree run --tui
  vtree run --snapshot=bolt`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := global.loadConfig()
			if err != nil {
				return err
			}
			if opts.interval > 0 {
				cfg.Demo.Interval = opts.interval.String()
			}
			if opts.max > 0 {
				cfg.Demo.MaxCounter = opts.max
			}
			if opts.snapshot != "" {
				cfg.Snapshot.Driver = opts.snapshot
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if opts.tui {
				return runTUI(ctx, cfg)
			}

			a, err := newApp(cfg, os.Stderr)
			if err != nil {
				return err
			}
			return runPlain(ctx, a, cmd.OutOrStdout())
		},
	}

	cmd.Flags().DurationVarP(&opts.interval, "interval", "i", 0, "Tick interval (default from config)")
	cmd.Flags().IntVarP(&opts.max, "max", "m", 0, "Last counter value that still increments (default from config)")
	cmd.Flags().BoolVar(&opts.tui, "tui", false, "Show the tree in a live terminal view")
	cmd.Flags().StringVar(&opts.snapshot, "snapshot", "", "Snapshot driver: none, bolt or s3 (default from config)")

	return cmd
}

// runPlain drives the demo and writes an outline of the host tree to out
// after every commit.
func runPlain(ctx context.Context, a *app, out io.Writer) error {
	stopRecorder, err := a.startRecorder(ctx)
	if err != nil {
		return err
	}

	term := render.NewTerminal(render.TerminalConfig{ShowStyle: true})
	commits := 0
	detach := a.engine.Observe(func(c engine.Commit) {
		commits++
		if c.Err != nil {
			fmt.Fprintf(out, "#%d %s failed: %s\n\n", c.Seq, c.Kind, vterrors.Compact(c.Err))
			return
		}
		fmt.Fprintf(out, "#%d %s %s\n%s\n\n", c.Seq, c.Kind, c.Duration.Round(time.Microsecond), term.Render(a.mem.Root()))
	})

	runErr := a.demo.Run(ctx, a.root)
	a.engine.View(detach)

	if err := stopRecorder(); err != nil && runErr == nil {
		runErr = err
	}
	if errors.Is(runErr, context.Canceled) {
		warn("interrupted after %d commits", commits)
		return nil
	}
	if runErr != nil {
		return runErr
	}
	success("finished after %d commits", commits)
	return nil
}
