package host

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestMemoryRoot(t *testing.T) {
	m := NewMemory()
	if m.Root() == nil || m.Root().Tag != RootTag {
		t.Fatalf("Root() = %+v, want <%s>", m.Root(), RootTag)
	}
	if m.Root().Count() != 1 {
		t.Errorf("Count() = %d, want 1", m.Root().Count())
	}
}

func TestMemoryBuildsTree(t *testing.T) {
	m := NewMemory()
	div := m.CreateNode("div")
	h1 := m.CreateNode("h1")
	m.SetText(div, "the counter is 1")
	m.SetText(h1, "BOOM! ")
	m.AppendChild(div, h1)
	m.SetClass(div, "card")
	m.SetStyle(div, "height", "10px")
	m.SetStyle(div, "background", "#fff")
	m.AppendChild(m.Root(), div)

	got := m.Root().Clone()
	want := &Element{
		Tag: "body",
		Children: []*Element{{
			Tag:   "div",
			Class: "card",
			Style: []StyleProp{{"height", "10px"}, {"background", "#fff"}},
			Text:  "the counter is 1",
			Children: []*Element{{
				Tag:  "h1",
				Text: "BOOM! ",
			}},
		}},
	}

	opts := cmp.Options{
		cmpopts.IgnoreFields(Element{}, "ID", "Parent"),
	}
	if diff := cmp.Diff(want, got, opts); diff != "" {
		t.Errorf("tree mismatch (-want +got):\n%s", diff)
	}

	if text := m.Root().TextContent(); text != "the counter is 1BOOM! " {
		t.Errorf("TextContent() = %q", text)
	}
}

func TestMemorySetTextKeepsChildren(t *testing.T) {
	m := NewMemory()
	div := m.CreateNode("div")
	m.AppendChild(div, m.CreateNode("span"))
	m.SetText(div, "a")
	m.SetText(div, "b")

	el := div.(*Element)
	if el.Text != "b" {
		t.Errorf("Text = %q, want b", el.Text)
	}
	if len(el.Children) != 1 {
		t.Errorf("children = %d, want 1", len(el.Children))
	}
}

func TestMemorySetStyleOverwritesInPlace(t *testing.T) {
	m := NewMemory()
	n := m.CreateNode("div")
	m.SetStyle(n, "color", "red")
	m.SetStyle(n, "height", "1px")
	m.SetStyle(n, "color", "blue")

	want := []StyleProp{{"color", "blue"}, {"height", "1px"}}
	if diff := cmp.Diff(want, n.(*Element).Style); diff != "" {
		t.Errorf("style mismatch (-want +got):\n%s", diff)
	}
	if v, ok := n.(*Element).StyleValue("height"); !ok || v != "1px" {
		t.Errorf("StyleValue(height) = %q, %v", v, ok)
	}
	if _, ok := n.(*Element).StyleValue("width"); ok {
		t.Error("StyleValue(width) should be absent")
	}
}

func TestMemoryRemoveChild(t *testing.T) {
	m := NewMemory()
	a, b := m.CreateNode("a"), m.CreateNode("b")
	m.AppendChild(m.Root(), a)
	m.AppendChild(m.Root(), b)

	m.RemoveChild(m.Root(), a)
	if len(m.Root().Children) != 1 || m.Root().Children[0] != b {
		t.Fatalf("children after remove = %v", m.Root().Children)
	}
	if a.(*Element).Parent != nil {
		t.Error("removed node should have no parent")
	}

	// Not a child: no-op.
	m.RemoveChild(m.Root(), a)
	if len(m.Root().Children) != 1 {
		t.Error("removing a non-child changed the tree")
	}
}

func TestMemoryAppendMovesNode(t *testing.T) {
	m := NewMemory()
	a, b, c := m.CreateNode("a"), m.CreateNode("b"), m.CreateNode("c")
	m.AppendChild(a, c)
	m.AppendChild(b, c)

	if len(a.(*Element).Children) != 0 {
		t.Error("node should have moved out of its old parent")
	}
	if c.(*Element).Parent != b.(*Element) {
		t.Error("node should be parented to b")
	}
}

func TestMemoryIgnoresForeignNodes(t *testing.T) {
	m := NewMemory()
	m.SetText("not a node", "x")
	m.SetClass(42, "x")
	m.SetStyle(nil, "color", "red")
	m.AppendChild(m.Root(), "text")
	if m.Root().Count() != 1 {
		t.Error("foreign nodes must not be appended")
	}
}

func TestElementFind(t *testing.T) {
	m := NewMemory()
	div := m.CreateNode("div")
	m.AppendChild(div, m.CreateNode("h1"))
	m.AppendChild(m.Root(), div)
	m.AppendChild(m.Root(), m.CreateNode("h1"))

	if got := len(m.Root().Find("h1")); got != 2 {
		t.Errorf("Find(h1) = %d, want 2", got)
	}
	if got := len(m.Root().Find("body")); got != 0 {
		t.Errorf("Find should exclude the receiver, got %d", got)
	}
}

func TestElementIDsAreUnique(t *testing.T) {
	m := NewMemory()
	seen := map[uint64]bool{m.Root().ID: true}
	for i := 0; i < 10; i++ {
		id := m.CreateNode("p").(*Element).ID
		if seen[id] {
			t.Fatalf("duplicate ID %d", id)
		}
		seen[id] = true
	}
}
