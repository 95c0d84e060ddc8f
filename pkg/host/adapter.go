package host

// Node is an opaque handle to a host display node.
// Only the Adapter that created a Node may interpret it.
type Node any

// Adapter applies primitive mutations to a host display tree.
//
// Adapters are called by a single writer at a time; implementations do not
// need to be safe for concurrent mutation.
type Adapter interface {
	// CreateNode creates a detached host node for the tag.
	CreateNode(tag string) Node

	// SetText sets the text content carried by parent.
	SetText(parent Node, text string)

	// SetClass sets the class attribute of n.
	SetClass(n Node, class string)

	// SetStyle sets a single style property of n.
	SetStyle(n Node, prop, value string)

	// AppendChild appends child as the last child of parent.
	AppendChild(parent, child Node)

	// RemoveChild detaches child from parent. Removing a node that is not a
	// child of parent is a no-op.
	RemoveChild(parent, child Node)
}

// Op names an Adapter primitive.
type Op uint8

const (
	OpCreateNode Op = iota + 1
	OpSetText
	OpSetClass
	OpSetStyle
	OpAppendChild
	OpRemoveChild
)

// String returns the string representation of the Op.
func (op Op) String() string {
	switch op {
	case OpCreateNode:
		return "CreateNode"
	case OpSetText:
		return "SetText"
	case OpSetClass:
		return "SetClass"
	case OpSetStyle:
		return "SetStyle"
	case OpAppendChild:
		return "AppendChild"
	case OpRemoveChild:
		return "RemoveChild"
	default:
		return "Unknown"
	}
}
