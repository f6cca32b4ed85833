package compiler

import (
	"fmt"
	"io/fs"
	"path"

	"golang.org/x/net/html"

	"github.com/vcrobe/mltemplate/vdom"
)

// Document is a parsed template.
type Document struct {
	// Path is the template file, empty for trees parsed with ParseNodes.
	Path string
	// Page is the source tree after include resolution.
	Page []*html.Node
	// Tree is the annotated tree built from Page.
	Tree    []Node
	Symbols *SymbolTable
	// Files lists the template and every file it includes, in the order
	// they were first read.
	Files []string
}

// Parse reads the template name from fsys, resolves its includes and builds
// the annotated tree and the symbol table in one pass. Includes are read
// relative to the directory of the file that names them.
func Parse(fsys fs.FS, name string) (*Document, error) {
	src, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("failed to read template %s: %w", name, err)
	}
	nodes, err := vdom.ParseBytes(src)
	if err != nil {
		return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
	}
	in := newIncluder(fsys)
	in.record(name, src)
	in.active = []string{name}
	doc, err := parseTree(in, path.Dir(name), name, nodes)
	if err != nil {
		return nil, err
	}
	doc.Path = name
	return doc, nil
}

// ParseNodes is Parse for a tree that is already in memory. Includes are
// resolved against dir in fsys; fsys may be nil when the tree has none.
func ParseNodes(fsys fs.FS, dir string, nodes []*html.Node) (*Document, error) {
	if dir == "" {
		dir = "."
	}
	return parseTree(newIncluder(fsys), dir, "", nodes)
}

func parseTree(in *includer, dir, name string, nodes []*html.Node) (*Document, error) {
	page, err := in.expand(nodes, dir, name)
	if err != nil {
		return nil, err
	}
	a := &annotator{in: in, symbols: NewSymbolTable()}
	tree, err := a.annotate(page, name)
	if err != nil {
		return nil, err
	}
	return &Document{
		Page:    page,
		Tree:    tree,
		Symbols: a.symbols,
		Files:   in.files,
	}, nil
}

type annotator struct {
	in      *includer
	symbols *SymbolTable
}

// annotate converts a sibling list. file is the source the nodes come from
// unless a node was recorded as the top of an included file.
func (a *annotator) annotate(nodes []*html.Node, file string) ([]Node, error) {
	var out []Node
	for _, n := range nodes {
		from := file
		if origin, ok := a.in.origin[n]; ok {
			from = origin
		}
		converted, err := a.convert(n, from)
		if err != nil {
			return nil, locate(err, from, a.in.sources[from])
		}
		out = append(out, converted...)
	}
	return out, nil
}

func (a *annotator) convert(n *html.Node, file string) ([]Node, error) {
	switch n.Type {
	case html.TextNode:
		if a.in.literal[n] {
			return []Node{&Data{Text: Substitutable{Literal{Text: n.Data}}}}, nil
		}
		text, err := Scan(n.Data, a.symbols)
		if err != nil {
			return nil, err
		}
		return []Node{&Data{Text: text}}, nil
	case html.CommentNode:
		return []Node{&Comment{Text: n.Data}}, nil
	case html.DoctypeNode:
		return []Node{&Doctype{Name: n.Data, Attrs: n.Attr}}, nil
	case html.DocumentNode:
		return a.annotate(vdom.Children(n), file)
	case html.ElementNode:
	default:
		return nil, nil
	}

	d, ordinary, err := readDirective(n.Attr)
	if err != nil {
		return nil, err
	}
	attrs, err := scanAttributes(ordinary, a.symbols)
	if err != nil {
		return nil, err
	}
	if d.hole == "" {
		children, err := a.annotate(vdom.Children(n), file)
		if err != nil {
			return nil, err
		}
		return []Node{&Element{
			Tag:       n.Data,
			Namespace: n.Namespace,
			Attrs:     attrs,
			Children:  children,
			Strip:     d.strip,
		}}, nil
	}

	holeType := HTMLFragment
	if len(d.args) > 0 {
		holeType = HTMLFunction
	}
	if err := a.symbols.Register(d.hole, holeType); err != nil {
		return nil, err
	}
	return []Node{&ContentHole{
		Tag:       n.Data,
		Namespace: n.Namespace,
		Attrs:     attrs,
		Strip:     d.strip,
		Name:      d.hole,
		Args:      d.args,
		Original:  vdom.Children(n),
	}}, nil
}
