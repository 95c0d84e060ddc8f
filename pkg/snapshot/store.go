package snapshot

import (
	"context"
	"errors"
	"fmt"
	"time"

	vterrors "github.com/vango-dev/vtree/internal/errors"
)

// ErrNotFound is returned when no snapshot matches.
var ErrNotFound = errors.New("snapshot not found")

// Snapshot is the host tree after one commit.
type Snapshot struct {
	Seq       uint64    `json:"seq"`
	Kind      string    `json:"kind"`
	Component string    `json:"component,omitempty"`
	HTML      string    `json:"html"`
	Time      time.Time `json:"time"`
}

// Store persists snapshots.
type Store interface {
	// Put stores s, replacing any snapshot with the same Seq.
	Put(ctx context.Context, s Snapshot) error

	// Get returns the snapshot with the sequence number.
	Get(ctx context.Context, seq uint64) (Snapshot, error)

	// Latest returns the snapshot with the highest sequence number.
	Latest(ctx context.Context) (Snapshot, error)

	// Close releases the store.
	Close() error
}

func notFound(format string, args ...any) error {
	return vterrors.New("VT042").WithDetailf(format, args...).Wrap(ErrNotFound)
}

func writeFailed(seq uint64, err error) error {
	return vterrors.New("VT041").WithDetail(fmt.Sprintf("snapshot %d: %v", seq, err)).Wrap(err)
}
