package compiler

import (
	"bytes"
	"io/fs"
	"path"
	"slices"
	"strings"

	"github.com/yuin/goldmark"
	goldmarkhtml "github.com/yuin/goldmark/renderer/html"
	"golang.org/x/net/html"

	"github.com/vcrobe/mltemplate/vdom"
)

// defaultMarkdown renders included Markdown files. Raw HTML inside the
// Markdown is kept so that it can carry directives and placeholders.
var defaultMarkdown = goldmark.New(
	goldmark.WithRendererOptions(goldmarkhtml.WithUnsafe()),
)

// includer expands include directives. Every file it reads is recorded so
// that callers can report errors against the right source and invalidate
// caches when a dependency changes.
type includer struct {
	fsys     fs.FS
	markdown goldmark.Markdown
	// literal holds the text nodes that come from non-HTML includes. Their
	// content is data, never scanned for placeholders.
	literal map[*html.Node]bool
	// origin maps the top-level nodes of every file to that file.
	origin  map[*html.Node]string
	sources map[string][]byte
	files   []string
	active  []string
}

func newIncluder(fsys fs.FS) *includer {
	return &includer{
		fsys:     fsys,
		markdown: defaultMarkdown,
		literal:  make(map[*html.Node]bool),
		origin:   make(map[*html.Node]string),
		sources:  make(map[string][]byte),
	}
}

func (in *includer) record(name string, src []byte) {
	if _, ok := in.sources[name]; !ok {
		in.files = append(in.files, name)
	}
	in.sources[name] = src
}

// expand returns a copy of nodes in which every include directive is
// replaced by the content of the named files. dir is the directory of the
// file being processed, which is where relative include paths start.
func (in *includer) expand(nodes []*html.Node, dir, from string) ([]*html.Node, error) {
	var out []*html.Node
	for _, n := range nodes {
		expanded, err := in.expandNode(n, dir, from)
		if err != nil {
			return nil, err
		}
		out = append(out, expanded...)
	}
	return out, nil
}

func (in *includer) expandNode(n *html.Node, dir, from string) ([]*html.Node, error) {
	if n.Type == html.DocumentNode {
		return in.expand(vdom.Children(n), dir, from)
	}
	if n.Type != html.ElementNode {
		c := shallowClone(n)
		if in.literal[n] {
			in.literal[c] = true
		}
		return []*html.Node{c}, nil
	}
	d, ordinary, err := readDirective(n.Attr)
	if err != nil {
		return nil, locate(err, from, in.sources[from])
	}
	if d.hole != IncludeHole {
		c := shallowClone(n)
		children, err := in.expand(vdom.Children(n), dir, from)
		if err != nil {
			return nil, err
		}
		for _, child := range children {
			c.AppendChild(child)
		}
		return []*html.Node{c}, nil
	}

	included, err := in.includeFiles(d.args, dir, from)
	if err != nil {
		return nil, err
	}
	switch d.strip {
	case StripAlways:
		return included, nil
	case StripIfEmpty:
		if len(included) == 0 {
			return nil, nil
		}
	}
	wrapper := shallowClone(n)
	wrapper.Attr = ordinary
	for _, child := range included {
		wrapper.AppendChild(child)
	}
	return []*html.Node{wrapper}, nil
}

// includeFiles reads, parses and expands the files named by an include
// directive, left to right.
func (in *includer) includeFiles(args []string, dir, from string) ([]*html.Node, error) {
	if len(args) == 0 {
		return nil, locate(&SyntaxError{
			Err:      ErrMalformedDirective,
			Fragment: DirectivePrefix + "content=\"" + IncludeHole + "\"",
			Detail:   "include needs at least one file name",
		}, from, in.sources[from])
	}
	var out []*html.Node
	for _, arg := range args {
		nodes, err := in.includeFile(arg, dir, from)
		if err != nil {
			return nil, err
		}
		out = append(out, nodes...)
	}
	return out, nil
}

func (in *includer) includeFile(arg, dir, from string) ([]*html.Node, error) {
	if in.fsys == nil {
		return nil, &InvalidIncludeTarget{Target: arg, From: from, Reason: "no filesystem to read includes from"}
	}
	target := path.Clean(path.Join(dir, arg))
	if path.IsAbs(arg) {
		target = strings.TrimPrefix(path.Clean(arg), "/")
	}
	if !fs.ValidPath(target) {
		return nil, &InvalidIncludeTarget{Target: arg, From: from, Reason: "path leaves the template root"}
	}
	if slices.Contains(in.active, target) {
		return nil, &InvalidIncludeTarget{Target: arg, From: from, Reason: "include cycle through " + strings.Join(append(in.active, target), " -> ")}
	}
	src, err := fs.ReadFile(in.fsys, target)
	if err != nil {
		return nil, &InvalidIncludeTarget{Target: arg, From: from, Err: err}
	}
	in.record(target, src)

	var nodes []*html.Node
	switch strings.ToLower(path.Ext(target)) {
	case ".html", ".htm":
		nodes, err = vdom.ParseBytes(src)
	case ".md", ".markdown":
		var buf bytes.Buffer
		if err = in.markdown.Convert(src, &buf); err == nil {
			nodes, err = vdom.ParseBytes(buf.Bytes())
		}
	default:
		if len(src) == 0 {
			return nil, nil
		}
		text := &html.Node{Type: html.TextNode, Data: string(src)}
		in.literal[text] = true
		in.origin[text] = target
		return []*html.Node{text}, nil
	}
	if err != nil {
		return nil, &InvalidIncludeTarget{Target: arg, From: from, Reason: "cannot parse", Err: err}
	}

	in.active = append(in.active, target)
	defer func() { in.active = in.active[:len(in.active)-1] }()
	expanded, err := in.expand(nodes, path.Dir(target), target)
	if err != nil {
		return nil, err
	}
	for _, n := range expanded {
		if _, ok := in.origin[n]; !ok {
			in.origin[n] = target
		}
	}
	return expanded, nil
}

// shallowClone copies n without its children or tree links.
func shallowClone(n *html.Node) *html.Node {
	c := &html.Node{
		Type:      n.Type,
		DataAtom:  n.DataAtom,
		Data:      n.Data,
		Namespace: n.Namespace,
	}
	if len(n.Attr) > 0 {
		c.Attr = slices.Clone(n.Attr)
	}
	return c
}
