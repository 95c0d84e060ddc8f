// Package errors provides structured, coded errors for vtree.
//
// Every failure the engine can surface (an unclassifiable node, a tag
// mismatch in strict mode, a positional child count mismatch, a nil render)
// is registered here under a stable code so callers can match on the code
// and the CLI can print an explanation with a hint.
//
// # Error Categories
//
//   - mount: first materialization of a virtual tree failed
//   - update: reconciliation of two virtual trees failed
//   - runtime: component instance lifecycle misuse (re-entrant updates)
//   - config: configuration file errors
//   - snapshot: snapshot store errors
//   - cli: command line errors
//
// # Usage
//
//	err := errors.New("VT002").
//	    WithDetail("prev <div>, next <span> at child 3").
//	    Wrap(engine.ErrTagMismatch)
//
//	fmt.Println(err.Format())
//	// Output:
//	// ERROR VT002: Tag mismatch during update
//	//
//	//   prev <div>, next <span> at child 3
//	//
//	//   Hint: Keep the node kind stable at each position, or wrap it in a component.
package errors
