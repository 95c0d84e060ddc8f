package main

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	vterrors "github.com/vango-dev/vtree/internal/errors"
	"github.com/vango-dev/vtree/pkg/snapshot"
)

type snapshotOptions struct {
	driver string
	list   bool
	asJSON bool
}

func snapshotCmd(global *globalOptions) *cobra.Command {
	opts := &snapshotOptions{}

	cmd := &cobra.Command{
		Use:   "snapshot [seq]",
		Short: "Read recorded snapshots",
		Long: `Print a snapshot recorded by "vtree run" or "vtree serve".

Without a sequence number the latest snapshot is printed. --list prints
one line per snapshot and needs the bolt driver.

Examples:
  vtree snapshot
  vtree snapshot 3 --json
  vtree snapshot --list --driver=bolt`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := global.loadConfig()
			if err != nil {
				return err
			}
			if opts.driver != "" {
				cfg.Snapshot.Driver = opts.driver
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			var seq uint64
			if len(args) == 1 {
				seq, err = strconv.ParseUint(args[0], 10, 64)
				if err != nil || seq == 0 {
					return vterrors.New("VT042").WithDetailf("%q is not a sequence number", args[0])
				}
			}

			store, err := openStore(cmd.Context(), cfg.Snapshot)
			if err != nil {
				return err
			}
			if store == nil {
				return vterrors.New("VT040").
					WithDetail("snapshot driver is none").
					WithSuggestion("Set snapshot.driver in vtree.json or pass --driver=bolt")
			}
			defer store.Close()

			out := cmd.OutOrStdout()
			if opts.list {
				return listSnapshots(out, store, cfg.Snapshot.Driver)
			}

			var snap snapshot.Snapshot
			if seq == 0 {
				snap, err = store.Latest(cmd.Context())
			} else {
				snap, err = store.Get(cmd.Context(), seq)
			}
			if err != nil {
				return err
			}
			return printSnapshot(out, snap, opts.asJSON)
		},
	}

	cmd.Flags().StringVar(&opts.driver, "driver", "", "Snapshot driver: bolt or s3 (default from config)")
	cmd.Flags().BoolVarP(&opts.list, "list", "l", false, "List every snapshot (bolt only)")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "Print the snapshot as JSON")

	return cmd
}

func listSnapshots(out io.Writer, store snapshot.Store, driver string) error {
	bolt, ok := store.(*snapshot.BoltStore)
	if !ok {
		return vterrors.New("VT040").WithDetailf("--list is not supported by the %s driver", driver)
	}
	return bolt.Range(1, math.MaxUint64, func(s snapshot.Snapshot) error {
		_, err := fmt.Fprintf(out, "%6d  %-9s  %-10s  %s  %d bytes\n",
			s.Seq, s.Kind, s.Component, s.Time.Format(time.RFC3339), len(s.HTML))
		return err
	})
}

func printSnapshot(out io.Writer, snap snapshot.Snapshot, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(snap)
	}
	_, err := fmt.Fprintln(out, snap.HTML)
	return err
}
