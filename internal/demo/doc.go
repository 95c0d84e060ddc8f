// Package demo is the counter application the CLI runs.
//
// App holds a counter that starts at 1. Run mounts it and bumps the counter
// once per interval until it passes the configured maximum. Each render
// draws a div whose height grows with the counter, a headline that repeats
// "BOOM! " once per count, and a NestedApp child that echoes the counter it
// receives as a prop. Colors are random hex strings unless Options.Color is
// set.
package demo
