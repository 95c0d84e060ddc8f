package vdom

import "testing"

func TestVKindString(t *testing.T) {
	tests := []struct {
		kind VKind
		want string
	}{
		{KindInvalid, "Invalid"},
		{KindText, "Text"},
		{KindElement, "Element"},
		{KindComponent, "Component"},
		{VKind(99), "Invalid"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("VKind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestSameTag(t *testing.T) {
	typeA := Define("A", nil)
	typeB := Define("B", nil)

	tests := []struct {
		name string
		a, b *VNode
		want bool
	}{
		{"text vs text", Text("x"), Text("y"), true},
		{"same element tag", H("div", Config{}), H("div", Config{}), true},
		{"different element tag", H("div", Config{}), H("span", Config{}), false},
		{"text vs element", Text("x"), H("div", Config{}), false},
		{"same component type", C(typeA, nil), C(typeA, Props{"n": 1}), true},
		{"different component type", C(typeA, nil), C(typeB, nil), false},
		{"element vs component", H("A", Config{}), C(typeA, nil), false},
		{"invalid vs invalid", CreateElement(42, Config{}), CreateElement(42, Config{}), false},
		{"nil prev", nil, Text("x"), false},
		{"nil next", Text("x"), nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SameTag(tt.a, tt.b); got != tt.want {
				t.Errorf("SameTag() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTagName(t *testing.T) {
	counter := Define("Counter", nil)
	tests := []struct {
		node *VNode
		want string
	}{
		{nil, "<nil>"},
		{Text("x"), "#text"},
		{H("h1", Config{}), "h1"},
		{C(counter, nil), "Counter"},
		{CreateElement(3.5, Config{}), "#invalid"},
	}
	for _, tt := range tests {
		if got := tt.node.TagName(); got != tt.want {
			t.Errorf("TagName() = %q, want %q", got, tt.want)
		}
	}
}
