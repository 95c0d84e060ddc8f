package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	vterrors "github.com/vango-dev/vtree/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const banner = `
  ┬  ┬┌┬┐┬─┐┌─┐┌─┐
  └┐┌┘ │ ├┬┘├┤ ├┤
   └┘  ┴ ┴└─└─┘└─┘
`

func main() {
	opts := &globalOptions{}
	if err := newRootCmd(opts).Execute(); err != nil {
		printError(os.Stderr, err, opts.logFormat)
		os.Exit(1)
	}
}

// printError writes err as a formatted block, or as one JSON line when
// --log-format=json.
func printError(w io.Writer, err error, logFormat string) {
	if logFormat == "json" {
		vterrors.FprintJSON(w, err)
		return
	}
	vterrors.Fprint(w, err)
}

func newRootCmd(opts *globalOptions) *cobra.Command {

	rootCmd := &cobra.Command{
		Use:   "vtree",
		Short: "A minimal virtual tree renderer",
		Long: `vtree mounts and reconciles virtual trees into a host tree.

The bundled demo is a counter component that re-renders itself on a
timer. Commands:

  • run      drive the demo and print every commit
  • serve    drive the demo and stream it to a browser
  • render   print a single render of the demo
  • snapshot read recorded snapshots back
  • errors   explain error codes`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "Config file or directory (default: working directory)")
	flags.StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn, error (default from config)")
	flags.StringVar(&opts.logFormat, "log-format", "", "Log format: text or json (default from config)")

	rootCmd.AddCommand(
		runCmd(opts),
		serveCmd(opts),
		renderCmd(opts),
		snapshotCmd(opts),
		errorsCmd(),
		versionCmd(),
	)
	return rootCmd
}

// printBanner prints the vtree ASCII art banner.
func printBanner() {
	fmt.Print(banner)
}

// success prints a success message.
func success(format string, args ...any) {
	fmt.Printf("\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(format string, args ...any) {
	fmt.Printf("  %s\n", fmt.Sprintf(format, args...))
}

// warn prints a warning message.
func warn(format string, args ...any) {
	fmt.Printf("\033[33m⚠\033[0m %s\n", fmt.Sprintf(format, args...))
}
