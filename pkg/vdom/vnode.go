package vdom

import "github.com/vango-dev/vtree/pkg/host"

// VKind is the node type discriminator.
type VKind uint8

const (
	KindInvalid   VKind = iota // Unclassifiable tag
	KindText                   // Text or number value
	KindElement                // <div>, <h1>, etc.
	KindComponent              // Component type with props
)

// String returns the string representation of the VKind.
func (k VKind) String() string {
	switch k {
	case KindText:
		return "Text"
	case KindElement:
		return "Element"
	case KindComponent:
		return "Component"
	default:
		return "Invalid"
	}
}

// VNode is a virtual tree node.
type VNode struct {
	Kind      VKind          // Node type
	Tag       string         // Element tag name (e.g., "div")
	Type      *ComponentType // For KindComponent
	Text      string         // For KindText
	ClassName string         // Element class; empty means absent
	Style     *Style         // Element style; nil means absent
	Children  []*VNode       // Element children, positional
	Props     Props          // Component props

	// Written by the engine.
	DOM  host.Node // Host node this vnode currently corresponds to
	Inst Handle    // Live component instance, for KindComponent
}

// TagName returns a printable name for the node's tag.
func (v *VNode) TagName() string {
	if v == nil {
		return "<nil>"
	}
	switch v.Kind {
	case KindText:
		return "#text"
	case KindElement:
		return v.Tag
	case KindComponent:
		return v.Type.Name()
	default:
		return "#invalid"
	}
}

// SameTag reports whether a and b carry the same tag: both text, both
// elements with equal tag names, or both components of the identical type.
func SameTag(a, b *VNode) bool {
	if a == nil || b == nil || a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case KindText:
		return true
	case KindElement:
		return a.Tag == b.Tag
	case KindComponent:
		return a.Type != nil && a.Type == b.Type
	default:
		return false
	}
}
