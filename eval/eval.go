package eval

import (
	"fmt"
	"io/fs"
	"log/slog"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/vcrobe/mltemplate/compiler"
	"github.com/vcrobe/mltemplate/vdom"
)

// ErrorClass is the class of the element that replaces a failed HTML hole.
const ErrorClass = "ml-error"

// Options configures direct substitution.
type Options struct {
	// FS is where includes are read from. Without it, includes fail.
	FS fs.FS
	// BaseDir is the directory of FS that relative includes start from.
	BaseDir string
	// ErrorSink receives every failed callback, once per occurrence. By
	// default failures are logged.
	ErrorSink func(*CallbackError)
	Logger    *slog.Logger
}

func (o Options) sink() func(*CallbackError) {
	if o.ErrorSink != nil {
		return o.ErrorSink
	}
	logger := o.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return func(err *CallbackError) {
		logger.Error("template callback failed", slog.String("hole", err.Hole), slog.Any("error", err.Err))
	}
}

// ReadTree reads and parses the HTML file name from fsys.
func ReadTree(fsys fs.FS, name string) ([]*html.Node, error) {
	src, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	nodes, err := vdom.ParseBytes(src)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", name, err)
	}
	return nodes, nil
}

// Substitute resolves the includes of nodes against opts.BaseDir and fills
// every hole from b. The input nodes are not modified.
func Substitute(nodes []*html.Node, b Bindings, opts Options) ([]*html.Node, error) {
	doc, err := compiler.ParseNodes(opts.FS, opts.BaseDir, nodes)
	if err != nil {
		return nil, err
	}
	return render(doc, b, opts)
}

// ReadAndSubstitute reads the template name from fsys and substitutes b
// into it. Includes are relative to the template's directory.
func ReadAndSubstitute(fsys fs.FS, name string, b Bindings, opts Options) ([]*html.Node, error) {
	doc, err := compiler.Parse(fsys, name)
	if err != nil {
		return nil, err
	}
	return render(doc, b, opts)
}

// render checks every hole against its binding before any callback runs,
// so that a fatal error never follows side effects of a partial render.
func render(doc *compiler.Document, b Bindings, opts Options) ([]*html.Node, error) {
	for _, name := range doc.Symbols.Names() {
		binding, ok := b[name]
		if !ok || binding == nil {
			return nil, &UnboundHole{Name: name}
		}
		used, _ := doc.Symbols.Lookup(name)
		if bound := Kind(binding); !satisfies(bound, used) {
			return nil, &compiler.IncompatibleHoleUsage{Name: name, Existing: used, Proposed: bound, Path: doc.Path}
		}
	}
	e := &evaluator{page: doc.Page, bindings: b, sink: opts.sink()}
	return e.nodes(doc.Tree), nil
}

type evaluator struct {
	page     []*html.Node
	bindings Bindings
	sink     func(*CallbackError)
}

func (e *evaluator) nodes(tree []compiler.Node) []*html.Node {
	var out []*html.Node
	for _, n := range tree {
		out = append(out, e.node(n)...)
	}
	return out
}

func (e *evaluator) node(n compiler.Node) []*html.Node {
	switch n := n.(type) {
	case *compiler.Data:
		return vdom.Text(e.text(n.Text))
	case *compiler.Comment:
		return vdom.Comment(n.Text)
	case *compiler.Doctype:
		return vdom.Doctype(n.Name, n.Attrs)
	case *compiler.Element:
		children := e.nodes(n.Children)
		switch n.Strip {
		case compiler.StripAlways:
			return children
		case compiler.StripIfEmpty:
			if len(children) == 0 {
				return nil
			}
		}
		return vdom.ElementNS(n.Namespace, n.Tag, e.attrs(n.Attrs), children)
	case *compiler.ContentHole:
		cv := &contentVisitor{e: e, ctx: &Context{Page: e.page, Children: n.Original, Hole: n.Name}, args: n.Args}
		e.bindings[n.Name].Accept(cv)
		switch n.Strip {
		case compiler.StripAlways:
			return cv.nodes
		case compiler.StripIfEmpty:
			if cv.empty {
				return nil
			}
		}
		return vdom.ElementNS(n.Namespace, n.Tag, e.attrs(n.Attrs), cv.nodes)
	}
	panic(fmt.Sprintf("eval: unexpected node type %T", n))
}

func (e *evaluator) attrs(attrs []compiler.Attr) []html.Attribute {
	if len(attrs) == 0 {
		return nil
	}
	out := make([]html.Attribute, len(attrs))
	for i, a := range attrs {
		out[i] = html.Attribute{Namespace: a.Namespace, Key: a.Key, Val: e.text(a.Value)}
	}
	return out
}

// text evaluates a string with placeholders.
func (e *evaluator) text(s compiler.Substitutable) string {
	var out strings.Builder
	for _, seg := range s {
		switch seg := seg.(type) {
		case compiler.Literal:
			out.WriteString(seg.Text)
		case compiler.Variable:
			tv := &textVisitor{e: e, ctx: &Context{Page: e.page, Hole: seg.Name}}
			e.bindings[seg.Name].Accept(tv)
			out.WriteString(tv.text)
		case compiler.Call:
			tv := &textVisitor{e: e, ctx: &Context{Page: e.page, Hole: seg.Name}, args: seg.Args}
			e.bindings[seg.Name].Accept(tv)
			out.WriteString(tv.text)
		}
	}
	return out.String()
}

// invoke runs a callback, turning a panic into an error.
func invoke[T any](f func() (T, error)) (v T, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return f()
}

// fail reports a callback failure to the sink and returns its description.
func (e *evaluator) fail(ctx *Context, args []string, err error) *CallbackError {
	cbErr := &CallbackError{Hole: ctx.Hole, Args: args, Err: err}
	e.sink(cbErr)
	return cbErr
}

// errorMarker is the fragment shown in place of a failed HTML hole.
func errorMarker(err *CallbackError) []*html.Node {
	return vdom.Element(atom.Code.String(), []html.Attribute{{Key: "class", Val: ErrorClass}}, vdom.Text(err.Error()))
}

// contentVisitor computes the content of a content hole.
type contentVisitor struct {
	e     *evaluator
	ctx   *Context
	args  []string
	nodes []*html.Node
	empty bool
}

func (v *contentVisitor) VisitHTML(b HTML) {
	v.nodes = vdom.CloneAll(b)
	v.empty = len(b) == 0
}

func (v *contentVisitor) VisitString(b String) {
	v.nodes = vdom.Text(string(b))
	v.empty = b == ""
}

func (v *contentVisitor) VisitHTMLFunc(b HTMLFunc) {
	nodes, err := invoke(func() ([]*html.Node, error) { return b(v.ctx, v.args) })
	if err != nil {
		v.nodes = errorMarker(v.e.fail(v.ctx, v.args, err))
		return
	}
	v.nodes = vdom.CloneAll(nodes)
	v.empty = len(nodes) == 0
}

func (v *contentVisitor) VisitStringFunc(b StringFunc) {
	s, err := invoke(func() (string, error) { return b(v.ctx, v.args) })
	if err != nil {
		v.nodes = errorMarker(v.e.fail(v.ctx, v.args, err))
		return
	}
	v.nodes = vdom.Text(s)
	v.empty = s == ""
}

// textVisitor computes the value of a placeholder. Only string bindings
// reach it: render rejects HTML bindings of string holes up front.
type textVisitor struct {
	e    *evaluator
	ctx  *Context
	args []string
	text string
}

func (v *textVisitor) VisitHTML(HTML)         {}
func (v *textVisitor) VisitHTMLFunc(HTMLFunc) {}

func (v *textVisitor) VisitString(b String) { v.text = string(b) }

func (v *textVisitor) VisitStringFunc(b StringFunc) {
	s, err := invoke(func() (string, error) { return b(v.ctx, v.args) })
	if err != nil {
		v.text = "[" + v.e.fail(v.ctx, v.args, err).Error() + "]"
		return
	}
	v.text = s
}
