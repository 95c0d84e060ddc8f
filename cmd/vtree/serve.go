package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/exec"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	vterrors "github.com/vango-dev/vtree/internal/errors"
	"github.com/vango-dev/vtree/pkg/preview"
)

type serveOptions struct {
	port        int
	host        string
	openBrowser bool
	interval    time.Duration
	max         int
}

func serveCmd(global *globalOptions) *cobra.Command {
	opts := &serveOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the counter demo with a browser preview",
		Long: `Run the counter demo and stream every commit to connected browsers.

The preview server renders the host tree to HTML after each commit and
pushes it over a WebSocket. It keeps serving after the demo finishes
until interrupted.

Routes:
  /          live page
  /snapshot  current HTML
  /ws        commit stream
  /metrics   Prometheus metrics
  /healthz   liveness

Examples:
  vtree serve
  vtree serve --port=8080
  vtree serve --host=0.0.0.0 --open`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := global.loadConfig()
			if err != nil {
				return err
			}
			if opts.port > 0 {
				cfg.Preview.Port = opts.port
			}
			if opts.host != "" {
				cfg.Preview.Host = opts.host
			}
			if opts.interval > 0 {
				cfg.Demo.Interval = opts.interval.String()
			}
			if opts.max > 0 {
				cfg.Demo.MaxCounter = opts.max
			}

			a, err := newApp(cfg, os.Stderr)
			if err != nil {
				return err
			}
			return runServe(cmd.Context(), a, opts.openBrowser)
		},
	}

	cmd.Flags().IntVarP(&opts.port, "port", "p", 0, "Port to run on (default from config)")
	cmd.Flags().StringVarP(&opts.host, "host", "H", "", "Host to bind to (default from config)")
	cmd.Flags().BoolVarP(&opts.openBrowser, "open", "o", false, "Open browser on start")
	cmd.Flags().DurationVarP(&opts.interval, "interval", "i", 0, "Tick interval (default from config)")
	cmd.Flags().IntVarP(&opts.max, "max", "m", 0, "Last counter value that still increments (default from config)")

	return cmd
}

func runServe(ctx context.Context, a *app, openBrowser bool) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := preview.New(a.engine, a.mem, preview.Config{
		Addr:     a.cfg.Preview.Address(),
		Logger:   a.logger,
		Gatherer: a.registry,
	})

	ln, err := net.Listen("tcp", a.cfg.Preview.Address())
	if err != nil {
		return vterrors.New("VT060").WithDetail(err.Error()).Wrap(err)
	}
	url := "http://" + ln.Addr().String()

	stopRecorder, err := a.startRecorder(ctx)
	if err != nil {
		ln.Close()
		return err
	}

	detach := srv.Attach(ctx)

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- srv.Serve(ctx, ln)
		stop()
	}()

	printBanner()
	fmt.Println("  serve")
	fmt.Println()
	success("Preview at %s", url)
	info("Metrics at %s/metrics", url)
	fmt.Println()

	if openBrowser {
		go openURL(url)
	}

	if err := a.demo.Run(ctx, a.root); err != nil && !errors.Is(err, context.Canceled) {
		warn("demo stopped: %v", err)
	} else if err == nil {
		success("Demo finished at counter %d, still serving (Ctrl+C to stop)", a.root.Instance().State().Int("counter"))
	}

	err = <-serveErr
	a.engine.View(detach)
	fmt.Println("\n  Shutting down...")

	if recErr := stopRecorder(); recErr != nil && err == nil {
		err = recErr
	}
	return err
}

// openURL opens a URL in the default browser.
func openURL(url string) {
	var cmd *exec.Cmd

	switch {
	case commandExists("xdg-open"):
		cmd = exec.Command("xdg-open", url)
	case commandExists("open"):
		cmd = exec.Command("open", url)
	case commandExists("start"):
		cmd = exec.Command("cmd", "/c", "start", url)
	default:
		return
	}

	cmd.Start()
}

// commandExists checks if a command exists in PATH.
func commandExists(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}
