package compiler

import (
	"strings"
	"testing"
)

func TestGenerateStringExpression(t *testing.T) {
	testCases := []struct {
		name     string
		input    Substitutable
		expected string
	}{
		{"empty", nil, `""`},
		{"literal", Substitutable{Literal{"a \"b\""}}, `"a \"b\""`},
		{"variable", Substitutable{Literal{"Hi "}, Variable{"name"}}, `"Hi " + s.GetName()`},
		{"call", Substitutable{Call{"link", []string{"home", "Home page"}}}, `runtime.CallString(s.GetLink(), "home", "Home page")`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := generateStringExpression(tc.input); got != tc.expected {
				t.Errorf("Expected %s, got %s", tc.expected, got)
			}
		})
	}
}

func newTestGenerator(holes map[string]HoleType) *generator {
	st := NewSymbolTable()
	for name, typ := range holes {
		st.Register(name, typ)
	}
	return &generator{source: "page.html", pkg: "pages", typeName: "Page", symbols: st, hidden: map[string]bool{}}
}

func TestGenerateContentHoleCode(t *testing.T) {
	g := newTestGenerator(map[string]HoleType{
		"body":  HTMLFragment,
		"title": StringValue,
		"menu":  HTMLFunction,
	})

	testCases := []struct {
		name     string
		node     *ContentHole
		contains []string
		absent   []string
	}{
		{
			name:     "wrapped fragment",
			node:     &ContentHole{Tag: "div", Name: "body"},
			contains: []string{`vdom.Element("div", nil,`, `vdom.CloneAll(s.GetBody())`},
		},
		{
			name:     "stripped string",
			node:     &ContentHole{Tag: "span", Name: "title", Strip: StripAlways},
			contains: []string{`vdom.Text(s.GetTitle())`},
			absent:   []string{`"span"`},
		},
		{
			name:     "ifempty forces once",
			node:     &ContentHole{Tag: "nav", Name: "menu", Args: []string{"main"}, Strip: StripIfEmpty},
			contains: []string{`v := vdom.CloneAll(runtime.CallHTML(s.GetMenu(), "main"))`, `if len(v) == 0 {`, `vdom.Element("nav", nil,`},
		},
		{
			name:     "ifempty string",
			node:     &ContentHole{Tag: "h1", Name: "title", Strip: StripIfEmpty},
			contains: []string{`if v == "" {`, `vdom.Text(v)`},
		},
		{
			name:     "namespaced with attributes",
			node:     &ContentHole{Tag: "g", Namespace: "svg", Name: "body", Attrs: []Attr{{Key: "id", Value: Substitutable{Variable{"title"}}}}},
			contains: []string{`vdom.ElementNS("svg", "g", []html.Attribute{{Key: "id", Val: s.GetTitle()}},`},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			code := g.generateNodeCode(tc.node)
			for _, want := range tc.contains {
				if !strings.Contains(code, want) {
					t.Errorf("Expected generated code to contain %q, got:\n%s", want, code)
				}
			}
			for _, unwanted := range tc.absent {
				if strings.Contains(code, unwanted) {
					t.Errorf("Expected generated code not to contain %q, got:\n%s", unwanted, code)
				}
			}
			if n := strings.Count(code, getter(tc.node.Name)); n != 1 {
				t.Errorf("Expected the %s hole to be forced exactly once, forced %d times in:\n%s", tc.node.Name, n, code)
			}
		})
	}
}

func TestGenerateElementStripModes(t *testing.T) {
	g := newTestGenerator(nil)
	children := []Node{&Data{Text: Substitutable{Literal{"x"}}}}

	always := g.generateNodeCode(&Element{Tag: "div", Children: children, Strip: StripAlways})
	if always != `vdom.Text("x")` {
		t.Errorf("Expected the child alone, got %s", always)
	}
	ifEmpty := g.generateNodeCode(&Element{Tag: "div", Children: children, Strip: StripIfEmpty})
	if !strings.Contains(ifEmpty, "if len(children) == 0 {") {
		t.Errorf("Expected an emptiness check, got %s", ifEmpty)
	}
	none := g.generateNodeCode(&Element{Tag: "div", Children: children})
	if !strings.HasPrefix(none, `vdom.Element("div", nil,`) {
		t.Errorf("Expected an element constructor, got %s", none)
	}
}
