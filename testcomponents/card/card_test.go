package card

import (
	"strings"
	"testing"

	"golang.org/x/net/html"

	"github.com/vcrobe/mltemplate/vdom"
)

func render(t *testing.T, c *Card) string {
	t.Helper()
	out, err := vdom.RenderString(c.Render())
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	return out
}

func TestCard_EmptyState(t *testing.T) {
	// Arrange & Act
	got := render(t, NewCard())

	// Assert: content holes are empty and the ifempty footer is dropped
	expected := "<article class=\"card\">\n  <h2></h2>\n  <div class=\"body\"></div>\n  \n  <a href=\"\"></a>\n</article>\n"
	if got != expected {
		t.Fatalf("Expected %q, got %q", expected, got)
	}
}

func TestCard_ZeroValue(t *testing.T) {
	var c Card
	if got, want := render(t, &c), render(t, NewCard()); got != want {
		t.Fatalf("Expected the zero value to render like NewCard, got %q and %q", got, want)
	}
}

func TestCard_SetHoles(t *testing.T) {
	c := NewCard()
	c.SetTitle(vdom.Text("hi"))
	c.SetBody(vdom.Element("p", nil, vdom.Text("text")))
	c.SetFooter(vdom.Text("bye"))
	c.SetUrl("/a?b=1&c=2")
	c.SetLabel("<more>")

	expected := "<article class=\"card\">\n  <h2>hi</h2>\n  <div class=\"body\"><p>text</p></div>\n  <footer>bye</footer>\n  <a href=\"/a?b=1&amp;c=2\">&lt;more&gt;</a>\n</article>\n"
	if got := render(t, c); got != expected {
		t.Fatalf("Expected %q, got %q", expected, got)
	}
}

func TestCard_HoleValueIsNotAttached(t *testing.T) {
	body := vdom.Element("p", nil, vdom.Text("shared"))
	c := NewCard()
	c.SetBody(body)

	first := render(t, c)
	second := render(t, c)
	if first != second {
		t.Fatalf("Expected identical renders, got %q and %q", first, second)
	}
	if body[0].Parent != nil {
		t.Fatalf("Expected the bound nodes to stay detached")
	}
}

// TestCard_UpdateSeesPreviousValue verifies that a transformation reading
// its own hole sees the value it replaces instead of recursing.
func TestCard_UpdateSeesPreviousValue(t *testing.T) {
	c := NewCard()
	c.SetLabel("Hello")
	c.UpdateLabel(func(prev *Card) string { return prev.GetLabel() + "!" })
	c.UpdateLabel(func(prev *Card) string { return prev.GetLabel() + "?" })

	if got := c.GetLabel(); got != "Hello!?" {
		t.Fatalf("Expected 'Hello!?', got %q", got)
	}

	c.UpdateTitle(func(prev *Card) []*html.Node {
		return vdom.Concat(prev.GetTitle(), vdom.Text(prev.GetLabel()))
	})
	c.SetTitle(vdom.Text("replaced "))
	c.UpdateTitle(func(prev *Card) []*html.Node {
		return vdom.Concat(prev.GetTitle(), vdom.Text(prev.GetLabel()))
	})
	got, _ := vdom.RenderString(c.GetTitle())
	if got != "replaced Hello!?" {
		t.Fatalf("Expected a set to discard earlier updates, got %q", got)
	}
}

// TestCard_TransformRunsOncePerPass verifies that a pending transformation
// runs at most once per render pass, however many times it is forced.
func TestCard_TransformRunsOncePerPass(t *testing.T) {
	calls := 0
	c := NewCard()
	c.SetLabel("x")
	c.UpdateLabel(func(prev *Card) string {
		calls++
		return prev.GetLabel() + "y"
	})
	// The body forces the label too, so the label is read twice per pass.
	c.UpdateBody(func(s *Card) []*html.Node {
		return vdom.Text(s.GetLabel())
	})

	out := render(t, c)
	if calls != 1 {
		t.Fatalf("Expected one evaluation in the first pass, got %d", calls)
	}
	if want := "<div class=\"body\">xy</div>"; !strings.Contains(out, want) {
		t.Fatalf("Expected %q in %q", want, out)
	}

	render(t, c)
	if calls != 2 {
		t.Fatalf("Expected one more evaluation in the second pass, got %d", calls)
	}

	c.GetLabel()
	c.GetLabel()
	if calls != 4 {
		t.Fatalf("Expected each direct read to be a pass of its own, got %d calls", calls)
	}
}

// TestCard_GetSeesLaterChanges verifies that a direct read outside a render
// pass reflects holes changed since the previous read.
func TestCard_GetSeesLaterChanges(t *testing.T) {
	c := NewCard()
	c.SetUrl("a")
	c.UpdateLabel(func(s *Card) string { return "url=" + s.GetUrl() })

	if got := c.GetLabel(); got != "url=a" {
		t.Fatalf("Expected 'url=a', got %q", got)
	}
	c.SetUrl("b")
	if got := c.GetLabel(); got != "url=b" {
		t.Fatalf("Expected 'url=b' after SetUrl, got %q", got)
	}
	if want := `<a href="b">url=b</a>`; !strings.Contains(render(t, c), want) {
		t.Fatalf("Expected the render to agree with GetLabel")
	}
}

func TestCard_IfEmptyFooter(t *testing.T) {
	testCases := []struct {
		name     string
		footer   []*html.Node
		expected bool
	}{
		{"nil fragment", nil, false},
		{"empty text", vdom.Text(""), false},
		{"content", vdom.Text("(c)"), true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c := NewCard()
			c.SetFooter(tc.footer)
			if got := strings.Contains(render(t, c), "<footer>"); got != tc.expected {
				t.Errorf("Expected footer present = %v, got %v", tc.expected, got)
			}
		})
	}
}

var _ CardAdvanced = NewCard()
