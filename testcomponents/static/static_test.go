package static

import (
	"os"
	"testing"

	"github.com/vcrobe/mltemplate/vdom"
)

// TestStatic_RoundTrip verifies that a template without directives or
// placeholders renders to the tree it was parsed from.
func TestStatic_RoundTrip(t *testing.T) {
	// Arrange: parse the template source
	src, err := os.ReadFile("static.ml.html")
	if err != nil {
		t.Fatalf("Failed to read template: %v", err)
	}
	parsed, err := vdom.ParseBytes(src)
	if err != nil {
		t.Fatalf("Failed to parse template: %v", err)
	}

	// Act: render an empty state
	rendered := NewStatic().Render()

	// Assert: both trees are structurally equal
	if !vdom.Equal(parsed, rendered) {
		want, _ := vdom.RenderString(parsed)
		got, _ := vdom.RenderString(rendered)
		t.Fatalf("Expected rendered tree to equal the parsed template\nexpected: %q\ngot:      %q", want, got)
	}
}

func TestStatic_RenderTwice(t *testing.T) {
	s := NewStatic()
	first, _ := vdom.RenderString(s.Render())
	second, _ := vdom.RenderString(s.Render())
	if first != second {
		t.Errorf("Expected identical renders, got %q and %q", first, second)
	}
}
