package vdom

import (
	"fmt"
	"maps"
	"strconv"
)

// Config carries the configuration half of CreateElement.
type Config struct {
	ClassName string
	Style     *Style
	Props     Props // component props
}

// CreateElement classifies tag and builds a node.
//
// A *ComponentType tag yields a component node whose props are cfg.Props,
// with "className" and "style" added when set. A string tag yields an
// element node with cfg's class and style and the given children. Any other
// tag yields a KindInvalid node. Children of a component node are ignored.
func CreateElement(tag any, cfg Config, children ...*VNode) *VNode {
	switch t := tag.(type) {
	case *ComponentType:
		return createComponent(t, cfg)
	case string:
		return createElement(t, cfg, children)
	default:
		return &VNode{Kind: KindInvalid}
	}
}

func createElement(tag string, cfg Config, children []*VNode) *VNode {
	return &VNode{
		Kind:      KindElement,
		Tag:       tag,
		ClassName: cfg.ClassName,
		Style:     cfg.Style,
		Children:  children,
	}
}

func createComponent(t *ComponentType, cfg Config) *VNode {
	props := make(Props, len(cfg.Props)+2)
	maps.Copy(props, cfg.Props)
	if cfg.ClassName != "" {
		props["className"] = cfg.ClassName
	}
	if cfg.Style != nil {
		props["style"] = cfg.Style
	}
	return &VNode{
		Kind:  KindComponent,
		Type:  t,
		Props: props,
	}
}

// H creates an element node.
func H(tag string, cfg Config, children ...*VNode) *VNode {
	return createElement(tag, cfg, children)
}

// C creates a component node.
func C(t *ComponentType, props Props) *VNode {
	return createComponent(t, Config{Props: props})
}

// Text creates a text node.
func Text(content string) *VNode {
	return &VNode{
		Kind: KindText,
		Text: content,
	}
}

// Textf creates a formatted text node.
func Textf(format string, args ...any) *VNode {
	return Text(fmt.Sprintf(format, args...))
}

// Number creates a text node holding a number.
func Number(n float64) *VNode {
	return Text(strconv.FormatFloat(n, 'f', -1, 64))
}

// Element factories for common tags.

func Div(cfg Config, children ...*VNode) *VNode  { return createElement("div", cfg, children) }
func Span(cfg Config, children ...*VNode) *VNode { return createElement("span", cfg, children) }
func P(cfg Config, children ...*VNode) *VNode    { return createElement("p", cfg, children) }
func H1(cfg Config, children ...*VNode) *VNode   { return createElement("h1", cfg, children) }
func H2(cfg Config, children ...*VNode) *VNode   { return createElement("h2", cfg, children) }
func Ul(cfg Config, children ...*VNode) *VNode   { return createElement("ul", cfg, children) }
func Li(cfg Config, children ...*VNode) *VNode   { return createElement("li", cfg, children) }
