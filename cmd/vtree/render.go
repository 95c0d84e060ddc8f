package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vango-dev/vtree/internal/demo"
	vterrors "github.com/vango-dev/vtree/internal/errors"
	"github.com/vango-dev/vtree/pkg/render"
	"github.com/vango-dev/vtree/pkg/vdom"
)

type renderOptions struct {
	counter int
	format  string
	colors  []string
}

func renderCmd(global *globalOptions) *cobra.Command {
	opts := &renderOptions{}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Print one render of the counter demo",
		Long: `Mount the counter demo, optionally set its counter, and print the host
tree once.

Formats:
  html      compact HTML
  pretty    indented HTML
  terminal  outline of the tree

Examples:
  vtree render
  vtree render --counter=3 --format=pretty
  vtree render --color=red --color=blue`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := global.loadConfig()
			if err != nil {
				return err
			}
			a, err := newApp(cfg, os.Stderr)
			if err != nil {
				return err
			}
			if len(opts.colors) > 0 {
				a.demo = demo.New(demo.Options{Color: demo.Cycle(opts.colors...), Logger: a.logger})
			}

			out, err := renderOnce(cmd, a, opts)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().IntVarP(&opts.counter, "counter", "n", 1, "Counter value to render")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "html", "Output format: html, pretty or terminal")
	cmd.Flags().StringArrayVar(&opts.colors, "color", nil, "Fixed colors to cycle through instead of random ones")

	return cmd
}

func renderOnce(cmd *cobra.Command, a *app, opts *renderOptions) (string, error) {
	var format func() (string, error)
	switch opts.format {
	case "html":
		format = func() (string, error) { return render.RenderHTML(a.mem.Root()), nil }
	case "pretty":
		r := render.NewRenderer(render.RendererConfig{Pretty: true, SkipRoot: true})
		format = func() (string, error) { return r.RenderToString(a.mem.Root()) }
	case "terminal":
		t := render.NewTerminal(render.TerminalConfig{ShowStyle: true})
		format = func() (string, error) { return t.Render(a.mem.Root()), nil }
	default:
		return "", vterrors.New("VT021").WithDetailf("unknown format %q: must be html, pretty or terminal", opts.format)
	}

	inst, err := a.demo.Mount(cmd.Context(), a.root)
	if err != nil {
		return "", err
	}
	if opts.counter != 1 {
		if err := inst.SetStateContext(cmd.Context(), vdom.State{"counter": opts.counter}); err != nil {
			return "", err
		}
	}

	var (
		out string
		ferr error
	)
	a.engine.View(func() { out, ferr = format() })
	return out, ferr
}
