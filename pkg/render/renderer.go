package render

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/vango-dev/vtree/pkg/host"
)

// RendererConfig configures the HTML renderer.
type RendererConfig struct {
	// Pretty enables pretty-printed HTML output with indentation.
	Pretty bool

	// Indent is the string used for each indentation level in pretty mode.
	// Defaults to two spaces if not specified.
	Indent string

	// SkipRoot renders only the children of the element passed in, so the
	// host container (for example the memory host's body) is left out.
	SkipRoot bool
}

// Renderer writes host trees as HTML.
type Renderer struct {
	config RendererConfig
}

// NewRenderer creates a new Renderer with the given configuration.
func NewRenderer(config RendererConfig) *Renderer {
	if config.Indent == "" {
		config.Indent = "  "
	}
	return &Renderer{config: config}
}

// RenderToString renders the tree rooted at el to an HTML string.
func (r *Renderer) RenderToString(el *host.Element) (string, error) {
	var buf bytes.Buffer
	if err := r.RenderToWriter(&buf, el); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// RenderToWriter streams the tree rooted at el to w.
func (r *Renderer) RenderToWriter(w io.Writer, el *host.Element) error {
	if el == nil {
		return nil
	}
	if r.config.SkipRoot {
		for _, child := range el.Children {
			if err := r.renderElement(w, child, 0); err != nil {
				return err
			}
		}
		return nil
	}
	return r.renderElement(w, el, 0)
}

// RenderHTML renders el compactly, without the container element itself.
func RenderHTML(el *host.Element) string {
	out, _ := NewRenderer(RendererConfig{SkipRoot: true}).RenderToString(el)
	return out
}

func (r *Renderer) renderElement(w io.Writer, el *host.Element, depth int) error {
	tag := el.Tag

	if r.config.Pretty && depth > 0 {
		r.writeIndent(w, depth)
	}

	if _, err := fmt.Fprintf(w, "<%s", tag); err != nil {
		return err
	}
	if err := r.renderAttributes(w, el); err != nil {
		return err
	}
	if _, err := w.Write([]byte{'>'}); err != nil {
		return err
	}

	kind := layoutOf(tag)
	if kind == layoutVoid {
		if r.config.Pretty {
			w.Write([]byte{'\n'})
		}
		return nil
	}

	// The text slot precedes element children.
	if el.Text != "" {
		if _, err := io.WriteString(w, escapeHTML(el.Text)); err != nil {
			return err
		}
	}

	hasBlockChildren := len(el.Children) > 0 && kind == layoutBlock
	if r.config.Pretty && hasBlockChildren {
		w.Write([]byte{'\n'})
	}
	for _, child := range el.Children {
		if err := r.renderElement(w, child, depth+1); err != nil {
			return err
		}
	}
	if r.config.Pretty && hasBlockChildren {
		r.writeIndent(w, depth)
	}

	if _, err := fmt.Fprintf(w, "</%s>", tag); err != nil {
		return err
	}
	if r.config.Pretty {
		w.Write([]byte{'\n'})
	}
	return nil
}

// renderAttributes writes class and style. Style properties keep the order
// they were first set in.
func (r *Renderer) renderAttributes(w io.Writer, el *host.Element) error {
	if el.Class != "" {
		if _, err := fmt.Fprintf(w, ` class="%s"`, escapeAttr(el.Class)); err != nil {
			return err
		}
	}
	if len(el.Style) > 0 {
		if _, err := fmt.Fprintf(w, ` style="%s"`, escapeAttr(styleString(el.Style))); err != nil {
			return err
		}
	}
	return nil
}

// styleString formats properties as a CSS declaration list.
func styleString(props []host.StyleProp) string {
	var b strings.Builder
	for i, p := range props {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(p.Name)
		b.WriteString(": ")
		b.WriteString(p.Value)
		b.WriteByte(';')
	}
	return b.String()
}

func (r *Renderer) writeIndent(w io.Writer, depth int) {
	for i := 0; i < depth; i++ {
		io.WriteString(w, r.config.Indent)
	}
}
