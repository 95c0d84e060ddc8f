package engine

import (
	"errors"

	vterrors "github.com/vango-dev/vtree/internal/errors"
)

// Sentinel errors. Errors returned by the engine are *vterrors.Error values
// wrapping one of these, so errors.Is works on them.
var (
	// ErrUnclassifiableNode is returned for a nil node or a node whose tag is
	// neither text, a host tag nor a component type.
	ErrUnclassifiableNode = errors.New("unclassifiable node")

	// ErrTagMismatch is returned by an update of two nodes with different tags
	// when strict tags are enabled.
	ErrTagMismatch = errors.New("tag mismatch")

	// ErrChildCountMismatch is returned when the next children outnumber the
	// previous children in positional mode.
	ErrChildCountMismatch = errors.New("child count mismatch")

	// ErrNilRender is returned when a component renders, or constructs, nil.
	ErrNilRender = errors.New("component rendered nil")

	// ErrReentrantUpdate is returned when the goroutine already running an
	// engine cycle tries to start another one.
	ErrReentrantUpdate = errors.New("re-entrant update")

	// ErrNotMounted is returned by SetState on an instance that has not
	// finished mounting.
	ErrNotMounted = errors.New("instance not mounted")
)

const (
	codeUnclassifiable = "VT001"
	codeTagMismatch    = "VT002"
	codeChildCount     = "VT003"
	codeNilRender      = "VT004"
	codeReentrant      = "VT005"
	codeNotMounted     = "VT006"
)

func newError(code string, sentinel error, format string, args ...any) error {
	return vterrors.New(code).WithDetailf(format, args...).Wrap(sentinel)
}
