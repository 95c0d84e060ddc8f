package render

import (
	"strings"
	"testing"
)

// attrValue returns the raw value of the first attr="..." in html. The
// renderer always double-quotes attribute values.
func attrValue(t *testing.T, html, attr string) string {
	t.Helper()
	_, rest, ok := strings.Cut(html, " "+attr+`="`)
	if !ok {
		t.Fatalf("no %s attribute in %q", attr, html)
	}
	value, _, ok := strings.Cut(rest, `"`)
	if !ok {
		t.Fatalf("unterminated %s attribute in %q", attr, html)
	}
	return value
}
