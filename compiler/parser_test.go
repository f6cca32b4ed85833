package compiler

import (
	"errors"
	"reflect"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/vcrobe/mltemplate/vdom"
)

func mapFS(files map[string]string) fstest.MapFS {
	fsys := fstest.MapFS{}
	for name, content := range files {
		fsys[name] = &fstest.MapFile{Data: []byte(content)}
	}
	return fsys
}

func mustParse(t *testing.T, fsys fstest.MapFS, name string) *Document {
	t.Helper()
	doc, err := Parse(fsys, name)
	if err != nil {
		t.Fatalf("Parse(%s) failed: %v", name, err)
	}
	return doc
}

func TestParseContentHole(t *testing.T) {
	fsys := mapFS(map[string]string{
		"page.html": `<div class="box" ml:content="x">ignored</div>`,
	})
	doc := mustParse(t, fsys, "page.html")

	if len(doc.Tree) != 1 {
		t.Fatalf("Expected 1 node, got %d", len(doc.Tree))
	}
	hole, ok := doc.Tree[0].(*ContentHole)
	if !ok {
		t.Fatalf("Expected a *ContentHole, got %T", doc.Tree[0])
	}
	if hole.Tag != "div" || hole.Name != "x" || hole.Strip != StripNone || len(hole.Args) != 0 {
		t.Errorf("Unexpected content hole: %+v", hole)
	}
	if len(hole.Attrs) != 1 || hole.Attrs[0].Key != "class" {
		t.Errorf("Expected only the class attribute, got %+v", hole.Attrs)
	}
	if len(hole.Original) != 1 || hole.Original[0].Data != "ignored" {
		t.Errorf("Expected the original children to be kept, got %v", hole.Original)
	}
	if typ, _ := doc.Symbols.Lookup("x"); typ != HTMLFragment {
		t.Errorf("Expected x to be an HTML fragment, got %s", typ)
	}
}

func TestParseHoleTypes(t *testing.T) {
	fsys := mapFS(map[string]string{
		"page.html": `<title>${title}</title>
<h1 ml:content="title"></h1>
<nav ml:replace="menu main"></nav>
<a href="${url}">${link home}</a>
<ul ml:content="link about"></ul>`,
	})
	doc := mustParse(t, fsys, "page.html")

	expected := map[string]HoleType{
		"title": StringValue,
		"menu":  HTMLFunction,
		"url":   StringValue,
		"link":  StringFunction,
	}
	if !reflect.DeepEqual(doc.Symbols.Map(), expected) {
		t.Errorf("Expected %v, got %v", expected, doc.Symbols.Map())
	}
}

func TestParseConflictReportsLocation(t *testing.T) {
	fsys := mapFS(map[string]string{
		"page.html": "<p>\n${x}\n</p>\n<div ml:content=\"x arg\"></div>",
	})
	_, err := Parse(fsys, "page.html")
	var conflict *IncompatibleHoleUsage
	if !errors.As(err, &conflict) {
		t.Fatalf("Expected *IncompatibleHoleUsage, got %v", err)
	}
	if conflict.Path != "page.html" || conflict.Line != 2 {
		t.Errorf("Expected page.html:2, got %s:%d", conflict.Path, conflict.Line)
	}
	if !strings.Contains(err.Error(), "> ") {
		t.Errorf("Expected a source excerpt in %q", err.Error())
	}
}

func TestParseSyntaxErrorReportsLocation(t *testing.T) {
	fsys := mapFS(map[string]string{
		"page.html": "<p>ok</p>\n<p>${broken</p>",
	})
	_, err := Parse(fsys, "page.html")
	var syntaxErr *SyntaxError
	if !errors.As(err, &syntaxErr) {
		t.Fatalf("Expected *SyntaxError, got %v", err)
	}
	if !errors.Is(err, ErrUnterminatedPlaceholder) {
		t.Errorf("Expected ErrUnterminatedPlaceholder, got %v", syntaxErr.Err)
	}
	if syntaxErr.Path != "page.html" || syntaxErr.Line != 2 {
		t.Errorf("Expected page.html:2, got %s:%d", syntaxErr.Path, syntaxErr.Line)
	}
}

func TestParseIncludes(t *testing.T) {
	testCases := []struct {
		name     string
		files    map[string]string
		expected string
		holes    []string
	}{
		{
			name: "html include wrapped",
			files: map[string]string{
				"page.html":   `<header ml:content="include header.html" class="h"></header>`,
				"header.html": `<h1>${title}</h1>`,
			},
			expected: `<header class="h"><h1>${title}</h1></header>`,
			holes:    []string{"title"},
		},
		{
			name: "include stripped",
			files: map[string]string{
				"page.html": `<div ml:replace="include a.html b.html"></div>`,
				"a.html":    `<p>a</p>`,
				"b.html":    `<p>b</p>`,
			},
			expected: `<p>a</p><p>b</p>`,
		},
		{
			name: "empty include with ifempty",
			files: map[string]string{
				"page.html":  `<aside ml:content="include empty.html" ml:strip="ifempty"></aside><p>after</p>`,
				"empty.html": ``,
			},
			expected: `<p>after</p>`,
		},
		{
			name: "text include is literal",
			files: map[string]string{
				"page.html": `<pre ml:content="include code.txt"></pre>`,
				"code.txt":  `if a < b { return "${not a hole}" }`,
			},
			expected: `<pre>if a &lt; b { return &#34;${not a hole}&#34; }</pre>`,
		},
		{
			name: "nested relative includes",
			files: map[string]string{
				"pages/page.html":         `<main ml:replace="include parts/body.html"></main>`,
				"pages/parts/body.html":   `<section ml:replace="include footer.html"></section>`,
				"pages/parts/footer.html": `<footer>${year}</footer>`,
			},
			expected: `<footer>${year}</footer>`,
			holes:    []string{"year"},
		},
		{
			name: "root relative include",
			files: map[string]string{
				"pages/page.html": `<div ml:replace="include /shared/nav.html"></div>`,
				"shared/nav.html": `<nav></nav>`,
			},
			expected: `<nav></nav>`,
		},
		{
			name: "markdown include",
			files: map[string]string{
				"page.html": `<article ml:content="include post.md"></article>`,
				"post.md":   "# Hello ${name}\n",
			},
			expected: "<article><h1>Hello ${name}</h1>\n</article>",
			holes:    []string{"name"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			fsys := mapFS(tc.files)
			name := "page.html"
			if _, ok := tc.files["pages/page.html"]; ok {
				name = "pages/page.html"
			}
			doc := mustParse(t, fsys, name)
			got, err := vdom.RenderString(doc.Page)
			if err != nil {
				t.Fatalf("Render failed: %v", err)
			}
			if got != tc.expected {
				t.Errorf("Expected page %q, got %q", tc.expected, got)
			}
			if holes := doc.Symbols.Names(); len(holes) != len(tc.holes) || (len(holes) > 0 && !reflect.DeepEqual(holes, tc.holes)) {
				t.Errorf("Expected holes %v, got %v", tc.holes, holes)
			}
			if len(doc.Files) < 2 && len(tc.files) > 1 {
				t.Errorf("Expected included files to be recorded, got %v", doc.Files)
			}
		})
	}
}

func TestParseIncludeErrors(t *testing.T) {
	testCases := []struct {
		name  string
		files map[string]string
	}{
		{
			name:  "missing file",
			files: map[string]string{"page.html": `<div ml:content="include missing.html"></div>`},
		},
		{
			name:  "escaping the root",
			files: map[string]string{"page.html": `<div ml:content="include ../secret.html"></div>`},
		},
		{
			name: "cycle",
			files: map[string]string{
				"page.html": `<div ml:content="include a.html"></div>`,
				"a.html":    `<div ml:content="include b.html"></div>`,
				"b.html":    `<div ml:content="include a.html"></div>`,
			},
		},
		{
			name:  "self include",
			files: map[string]string{"page.html": `<div ml:content="include page.html"></div>`},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(mapFS(tc.files), "page.html")
			var target *InvalidIncludeTarget
			if !errors.As(err, &target) {
				t.Fatalf("Expected *InvalidIncludeTarget, got %v", err)
			}
		})
	}
}

func TestParseIncludeWithoutFiles(t *testing.T) {
	_, err := Parse(mapFS(map[string]string{"page.html": `<div ml:content="include"></div>`}), "page.html")
	if !errors.Is(err, ErrMalformedDirective) {
		t.Fatalf("Expected ErrMalformedDirective, got %v", err)
	}
}

func TestParseErrorInIncludedFile(t *testing.T) {
	fsys := mapFS(map[string]string{
		"page.html": "<div ml:content=\"include part.html\"></div>",
		"part.html": "<p>fine</p>\n<p>${oops</p>",
	})
	_, err := Parse(fsys, "page.html")
	var syntaxErr *SyntaxError
	if !errors.As(err, &syntaxErr) {
		t.Fatalf("Expected *SyntaxError, got %v", err)
	}
	if syntaxErr.Path != "part.html" || syntaxErr.Line != 2 {
		t.Errorf("Expected the error at part.html:2, got %s:%d", syntaxErr.Path, syntaxErr.Line)
	}
}

func TestParseStripOnPlainElement(t *testing.T) {
	doc := mustParse(t, mapFS(map[string]string{
		"page.html": `<div ml:strip="ifempty" class="c"><p>x</p></div>`,
	}), "page.html")
	el, ok := doc.Tree[0].(*Element)
	if !ok {
		t.Fatalf("Expected an *Element, got %T", doc.Tree[0])
	}
	if el.Strip != StripIfEmpty || len(el.Attrs) != 1 {
		t.Errorf("Unexpected element: %+v", el)
	}
}

func TestParseNodesWithoutFilesystem(t *testing.T) {
	nodes, err := vdom.ParseString(`<p ml:content="include x.html"></p>`)
	if err != nil {
		t.Fatal(err)
	}
	_, err = ParseNodes(nil, ".", nodes)
	var target *InvalidIncludeTarget
	if !errors.As(err, &target) {
		t.Fatalf("Expected *InvalidIncludeTarget, got %v", err)
	}
}

func TestParseDoesNotModifyInput(t *testing.T) {
	nodes, err := vdom.ParseString(`<div ml:content="x">old</div>`)
	if err != nil {
		t.Fatal(err)
	}
	before, _ := vdom.RenderString(nodes)
	if _, err := ParseNodes(nil, ".", nodes); err != nil {
		t.Fatal(err)
	}
	after, _ := vdom.RenderString(nodes)
	if before != after {
		t.Errorf("Expected input to be unchanged, got %q then %q", before, after)
	}
}
