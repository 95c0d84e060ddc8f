package vdom

import (
	"fmt"
	"maps"
)

// Props holds component properties.
type Props map[string]any

// Get returns the raw value for key.
func (p Props) Get(key string) any {
	return p[key]
}

// Int returns the value for key as an int, or 0.
func (p Props) Int(key string) int {
	return toInt(p[key])
}

// Str returns the value for key formatted as a string, or "".
func (p Props) Str(key string) string {
	return toString(p[key])
}

// State holds component state. A State value is never mutated after it has
// been handed to the engine; Merge returns a new map.
type State map[string]any

// Merge returns a shallow copy of s with every key of partial written over it.
func (s State) Merge(partial State) State {
	out := make(State, len(s)+len(partial))
	maps.Copy(out, s)
	maps.Copy(out, partial)
	return out
}

// Get returns the raw value for key.
func (s State) Get(key string) any {
	return s[key]
}

// Int returns the value for key as an int, or 0.
func (s State) Int(key string) int {
	return toInt(s[key])
}

// Str returns the value for key formatted as a string, or "".
func (s State) Str(key string) string {
	return toString(s[key])
}

func toInt(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case int32:
		return int(n)
	case float64:
		return int(n)
	case float32:
		return int(n)
	case uint:
		return int(n)
	default:
		return 0
	}
}

func toString(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	default:
		return fmt.Sprint(s)
	}
}
