// Package render serializes a committed host tree.
//
// Two serializers are provided. Renderer writes a *host.Element tree as
// HTML, escaping text and attribute values and handling void elements:
//
//	r := render.NewRenderer(render.RendererConfig{Pretty: true})
//	html, err := r.RenderToString(mem.Root())
//
// Terminal draws the same tree as an indented outline for a terminal,
// colouring each element with its own color and background styles:
//
//	fmt.Println(render.NewTerminal(render.TerminalConfig{}).Render(mem.Root()))
//
// Both only read the tree. Callers that render while an engine may be
// committing should do so from a commit observer or inside engine.View.
package render
