package errors

import "slices"

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category   Category
	Message    string
	Suggestion string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Engine Errors (VT001-VT019)
	// ============================================

	"VT001": {
		Category:   CategoryMount,
		Message:    "Unclassifiable node",
		Suggestion: "Build nodes with vdom.CreateElement, vdom.H, vdom.C or vdom.Text.",
	},
	"VT002": {
		Category:   CategoryUpdate,
		Message:    "Tag mismatch during update",
		Suggestion: "Keep the node kind stable at each position, or wrap it in a component.",
	},
	"VT003": {
		Category:   CategoryUpdate,
		Message:    "Child count mismatch",
		Suggestion: "Render a stable number of children, or enable the length-aware children mode.",
	},
	"VT004": {
		Category:   CategoryRuntime,
		Message:    "Component rendered nothing",
		Suggestion: "Render must return a node; return an empty element instead of nil.",
	},
	"VT005": {
		Category:   CategoryRuntime,
		Message:    "Re-entrant update",
		Suggestion: "Call SetState from a timer or goroutine, never from Render.",
	},
	"VT006": {
		Category:   CategoryRuntime,
		Message:    "Component instance not mounted",
		Suggestion: "Provide initial state through InitialState instead of calling SetState while constructing.",
	},

	// ============================================
	// Config Errors (VT020-VT039)
	// ============================================

	"VT020": {
		Category:   CategoryConfig,
		Message:    "Invalid configuration file",
		Suggestion: "Check vtree.json or vtree.yaml for syntax errors.",
	},
	"VT021": {
		Category:   CategoryConfig,
		Message:    "Invalid configuration value",
		Suggestion: "Run `vtree run --help` to see accepted values.",
	},

	// ============================================
	// Snapshot Errors (VT040-VT059)
	// ============================================

	"VT040": {
		Category:   CategorySnapshot,
		Message:    "Snapshot store unavailable",
		Suggestion: "Check the snapshot driver settings in the configuration.",
	},
	"VT041": {
		Category:   CategorySnapshot,
		Message:    "Snapshot write failed",
		Suggestion: "Check permissions on the snapshot path or bucket.",
	},
	"VT042": {
		Category: CategorySnapshot,
		Message:  "Snapshot not found",
	},

	// ============================================
	// CLI Errors (VT060-VT079)
	// ============================================

	"VT060": {
		Category:   CategoryCLI,
		Message:    "Preview server failed",
		Suggestion: "Is another process listening on the preview port?",
	},
}

// GetAllCodes returns all registered error codes in order.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	slices.Sort(codes)
	return codes
}

// GetTemplate returns the template for an error code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}
