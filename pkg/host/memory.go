package host

import (
	"strings"
	"sync/atomic"
)

// RootTag is the tag of the container element created by NewMemory.
const RootTag = "body"

// StyleProp is a single style property of an Element.
type StyleProp struct {
	Name  string
	Value string
}

// Element is a node of the in-memory host tree.
type Element struct {
	ID       uint64
	Tag      string
	Class    string
	Style    []StyleProp // insertion order
	Text     string      // text content slot, written by SetText
	Children []*Element
	Parent   *Element
}

// StyleValue returns the value of a style property.
func (e *Element) StyleValue(name string) (string, bool) {
	for _, p := range e.Style {
		if p.Name == name {
			return p.Value, true
		}
	}
	return "", false
}

// TextContent returns the concatenated text of e and all its descendants in
// document order.
func (e *Element) TextContent() string {
	var b strings.Builder
	e.writeText(&b)
	return b.String()
}

func (e *Element) writeText(b *strings.Builder) {
	b.WriteString(e.Text)
	for _, c := range e.Children {
		c.writeText(b)
	}
}

// Find returns every descendant of e (excluding e) with the tag, in document
// order.
func (e *Element) Find(tag string) []*Element {
	var out []*Element
	e.walk(func(n *Element) {
		if n != e && n.Tag == tag {
			out = append(out, n)
		}
	})
	return out
}

// Count returns the number of elements in the subtree rooted at e, e included.
func (e *Element) Count() int {
	n := 0
	e.walk(func(*Element) { n++ })
	return n
}

func (e *Element) walk(fn func(*Element)) {
	fn(e)
	for _, c := range e.Children {
		c.walk(fn)
	}
}

// Clone returns a deep copy of the subtree rooted at e. The copy has no parent.
func (e *Element) Clone() *Element {
	c := &Element{
		ID:    e.ID,
		Tag:   e.Tag,
		Class: e.Class,
		Text:  e.Text,
	}
	if len(e.Style) > 0 {
		c.Style = append([]StyleProp(nil), e.Style...)
	}
	for _, child := range e.Children {
		cc := child.Clone()
		cc.Parent = c
		c.Children = append(c.Children, cc)
	}
	return c
}

// Memory is an Adapter backed by an in-process tree of *Element.
type Memory struct {
	root   *Element
	nextID atomic.Uint64
}

var _ Adapter = (*Memory)(nil)

// NewMemory creates an in-memory host tree with an empty root container.
func NewMemory() *Memory {
	m := &Memory{}
	m.root = m.newElement(RootTag)
	return m
}

// Root returns the root container.
func (m *Memory) Root() *Element {
	return m.root
}

func (m *Memory) newElement(tag string) *Element {
	return &Element{ID: m.nextID.Add(1), Tag: tag}
}

// CreateNode implements Adapter.
func (m *Memory) CreateNode(tag string) Node {
	return m.newElement(tag)
}

// SetText implements Adapter. Only the text slot is written; element
// children of parent are kept.
func (m *Memory) SetText(parent Node, text string) {
	if el := asElement(parent); el != nil {
		el.Text = text
	}
}

// SetClass implements Adapter.
func (m *Memory) SetClass(n Node, class string) {
	if el := asElement(n); el != nil {
		el.Class = class
	}
}

// SetStyle implements Adapter. An existing property keeps its position.
func (m *Memory) SetStyle(n Node, prop, value string) {
	el := asElement(n)
	if el == nil {
		return
	}
	for i := range el.Style {
		if el.Style[i].Name == prop {
			el.Style[i].Value = value
			return
		}
	}
	el.Style = append(el.Style, StyleProp{Name: prop, Value: value})
}

// AppendChild implements Adapter. A child that already has a parent is moved.
func (m *Memory) AppendChild(parent, child Node) {
	p, c := asElement(parent), asElement(child)
	if p == nil || c == nil {
		return
	}
	if c.Parent != nil {
		c.Parent.removeChild(c)
	}
	c.Parent = p
	p.Children = append(p.Children, c)
}

// RemoveChild implements Adapter.
func (m *Memory) RemoveChild(parent, child Node) {
	p, c := asElement(parent), asElement(child)
	if p == nil || c == nil || c.Parent != p {
		return
	}
	p.removeChild(c)
	c.Parent = nil
}

func (e *Element) removeChild(c *Element) {
	for i, child := range e.Children {
		if child == c {
			e.Children = append(e.Children[:i], e.Children[i+1:]...)
			return
		}
	}
}

func asElement(n Node) *Element {
	el, _ := n.(*Element)
	return el
}
