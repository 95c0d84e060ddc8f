package render

// layout says how a host tag is written.
type layout uint8

const (
	// layoutBlock puts element children on their own lines in pretty mode.
	layoutBlock layout = iota

	// layoutInline keeps children on the tag's line.
	layoutInline

	// layoutVoid has no closing tag. Text and children are not written.
	layoutVoid
)

// layoutOf classifies tag. Tags the renderer does not know are blocks.
func layoutOf(tag string) layout {
	switch tag {
	case "br", "hr", "img", "input":
		return layoutVoid
	case "span", "a", "b", "i", "em", "strong", "code", "small", "label":
		return layoutInline
	default:
		return layoutBlock
	}
}
