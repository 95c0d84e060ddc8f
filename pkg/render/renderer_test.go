package render

import (
	"context"
	"strings"
	"testing"

	"github.com/vango-dev/vtree/pkg/engine"
	"github.com/vango-dev/vtree/pkg/host"
	"github.com/vango-dev/vtree/pkg/vdom"
)

// buildTree mounts node into a fresh memory host and returns its root.
func buildTree(t *testing.T, node *vdom.VNode) *host.Element {
	t.Helper()
	mem := host.NewMemory()
	if _, err := engine.New(mem).Mount(context.Background(), node, mem.Root()); err != nil {
		t.Fatalf("Mount() error = %v", err)
	}
	return mem.Root()
}

func TestRenderElement(t *testing.T) {
	root := buildTree(t, vdom.Div(vdom.Config{ClassName: "container"},
		vdom.H1(vdom.Config{}, vdom.Text("Title")),
		vdom.P(vdom.Config{}, vdom.Text("Content")),
	))

	html, err := NewRenderer(RendererConfig{}).RenderToString(root)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := `<body><div class="container"><h1>Title</h1><p>Content</p></div></body>`
	if html != want {
		t.Errorf("got %q, want %q", html, want)
	}
}

func TestRenderHTMLSkipsContainer(t *testing.T) {
	root := buildTree(t, vdom.Span(vdom.Config{}, vdom.Text("x")))
	if got := RenderHTML(root); got != "<span>x</span>" {
		t.Errorf("RenderHTML() = %q", got)
	}
}

func TestRenderTextSlotBeforeChildren(t *testing.T) {
	root := buildTree(t, vdom.Div(vdom.Config{},
		vdom.Text("the counter is 2"),
		vdom.H1(vdom.Config{}, vdom.Text("BOOM! BOOM! ")),
	))
	want := "<div>the counter is 2<h1>BOOM! BOOM! </h1></div>"
	if got := RenderHTML(root); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRenderTextEscaping(t *testing.T) {
	root := buildTree(t, vdom.P(vdom.Config{}, vdom.Text("<script>alert('xss')</script>")))
	html := RenderHTML(root)
	if strings.Contains(html, "<script>") {
		t.Errorf("HTML should be escaped, got %q", html)
	}
	if !strings.Contains(html, "&lt;script&gt;") {
		t.Errorf("should contain escaped script tag, got %q", html)
	}
}

func TestRenderStyleKeepsOrder(t *testing.T) {
	root := buildTree(t, vdom.Div(vdom.Config{
		Style: vdom.NewStyle("height", "30px", "background", "#a1b2c3"),
	}))
	html := RenderHTML(root)
	if got := attrValue(t, html, "style"); got != "height: 30px; background: #a1b2c3;" {
		t.Errorf("style = %q", got)
	}
}

func TestRenderAttributeEscaping(t *testing.T) {
	mem := host.NewMemory()
	div := mem.CreateNode("div")
	mem.SetClass(div, `a"b`)
	mem.AppendChild(mem.Root(), div)

	html := RenderHTML(mem.Root())
	if got := attrValue(t, html, "class"); got != "a&quot;b" {
		t.Errorf("class = %q", got)
	}
}

func TestRenderVoidElements(t *testing.T) {
	for _, tag := range []string{"br", "hr", "img", "input"} {
		t.Run(tag, func(t *testing.T) {
			root := buildTree(t, vdom.H(tag, vdom.Config{}))
			html := RenderHTML(root)
			if html != "<"+tag+">" {
				t.Errorf("got %q, want <%s>", html, tag)
			}
		})
	}
}

func TestRenderPretty(t *testing.T) {
	root := buildTree(t, vdom.Div(vdom.Config{},
		vdom.H1(vdom.Config{}, vdom.Text("a")),
		vdom.Span(vdom.Config{}, vdom.Text("b")),
	))
	html, err := NewRenderer(RendererConfig{Pretty: true, SkipRoot: true}).RenderToString(root)
	if err != nil {
		t.Fatal(err)
	}
	want := "<div>\n  <h1>a</h1>\n  <span>b</span>\n</div>\n"
	if html != want {
		t.Errorf("got:\n%s\nwant:\n%s", html, want)
	}
}

func TestRenderNil(t *testing.T) {
	html, err := NewRenderer(RendererConfig{}).RenderToString(nil)
	if err != nil || html != "" {
		t.Errorf("RenderToString(nil) = %q, %v", html, err)
	}
}

func TestRenderFollowsUpdates(t *testing.T) {
	mem := host.NewMemory()
	eng := engine.New(mem)
	root := engine.NewRoot(eng, mem.Root())
	ctx := context.Background()

	style := vdom.NewStyle("color", "red")
	if err := root.Render(ctx, vdom.Div(vdom.Config{Style: style}, vdom.Text("1"))); err != nil {
		t.Fatal(err)
	}
	if err := root.Render(ctx, vdom.Div(vdom.Config{Style: vdom.NewStyle("color", "blue")}, vdom.Text("2"))); err != nil {
		t.Fatal(err)
	}
	want := `<div style="color: blue;">2</div>`
	if got := RenderHTML(mem.Root()); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestLayoutOf(t *testing.T) {
	tests := []struct {
		tag  string
		want layout
	}{
		{"br", layoutVoid},
		{"img", layoutVoid},
		{"span", layoutInline},
		{"strong", layoutInline},
		{"div", layoutBlock},
		{"h1", layoutBlock},
		{"custom-widget", layoutBlock},
	}
	for _, tt := range tests {
		if got := layoutOf(tt.tag); got != tt.want {
			t.Errorf("layoutOf(%q) = %d, want %d", tt.tag, got, tt.want)
		}
	}
}

func TestRenderPrettyInlineChildren(t *testing.T) {
	root := buildTree(t, vdom.Span(vdom.Config{}, vdom.Span(vdom.Config{}, vdom.Text("x"))))
	r := NewRenderer(RendererConfig{Pretty: true, SkipRoot: true})
	got, err := r.RenderToString(root)
	if err != nil {
		t.Fatal(err)
	}
	if got != "<span>  <span>x</span>\n</span>\n" {
		t.Errorf("got %q", got)
	}
}
