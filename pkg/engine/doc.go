// Package engine is the vtree reconciliation engine.
//
// It materializes virtual trees (package vdom) into a host tree (package
// host) and keeps the host tree in sync as new virtual trees are produced.
//
// # Mount
//
// Mount walks a virtual tree once, depth-first, and creates host nodes
// through the Adapter. Component nodes are instantiated exactly once per
// mount point; the Instance persists across renders.
//
// # Update
//
// Update compares a previous and a next virtual tree occupying the same host
// location. Nodes with the same tag are updated in place and keep their host
// node. Children are compared strictly by position; there are no keys.
// Nodes whose tags differ are left untouched: the mismatch is logged and
// counted, or returned as ErrTagMismatch when strict tags are enabled.
//
// # State
//
// Instance.SetState merges a partial state over the current state and runs
// a full render and reconcile cycle before returning. There is no batching:
// N calls produce N cycles.
//
// # Concurrency
//
// An Engine has a single writer. Every Mount, Update and SetState holds the
// engine lock for the duration of its cycle, so timers on other goroutines
// serialize. Calling SetState from inside Render returns ErrReentrantUpdate
// instead of deadlocking.
package engine
