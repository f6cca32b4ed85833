// Package eval renders templates directly against a table of bindings,
// without generating code.
package eval

import (
	"golang.org/x/net/html"

	"github.com/vcrobe/mltemplate/compiler"
)

// Binding is the value bound to a hole. It is one of HTML, String, HTMLFunc
// and StringFunc.
type Binding interface {
	Accept(v Visitor)
}

// Visitor handles every kind of Binding. Each consumer of bindings is a
// Visitor, so a new kind of binding does not compile until every consumer
// handles it.
type Visitor interface {
	VisitHTML(HTML)
	VisitString(String)
	VisitHTMLFunc(HTMLFunc)
	VisitStringFunc(StringFunc)
}

// HTML binds a hole to a fragment. The nodes are copied into the output,
// never attached.
type HTML []*html.Node

// String binds a hole to text. It is escaped when rendered.
type String string

// HTMLFunc binds a function hole that returns a fragment.
type HTMLFunc func(ctx *Context, args []string) ([]*html.Node, error)

// StringFunc binds a function hole that returns text.
type StringFunc func(ctx *Context, args []string) (string, error)

func (b HTML) Accept(v Visitor)       { v.VisitHTML(b) }
func (b String) Accept(v Visitor)     { v.VisitString(b) }
func (b HTMLFunc) Accept(v Visitor)   { v.VisitHTMLFunc(b) }
func (b StringFunc) Accept(v Visitor) { v.VisitStringFunc(b) }

// Bindings maps hole names to their bindings.
type Bindings map[string]Binding

// Context is what a function binding sees of the template being rendered.
type Context struct {
	// Page is the whole template after include resolution. Callbacks must
	// not modify it.
	Page []*html.Node
	// Children holds the original children of the element whose content
	// the hole replaces. It is nil for placeholders in text and attributes.
	Children []*html.Node
	// Hole is the name of the hole being evaluated.
	Hole string
}

// Kind returns the hole type a binding provides.
func Kind(b Binding) compiler.HoleType {
	var k kindVisitor
	b.Accept(&k)
	return k.kind
}

type kindVisitor struct {
	kind compiler.HoleType
}

func (k *kindVisitor) VisitHTML(HTML)             { k.kind = compiler.HTMLFragment }
func (k *kindVisitor) VisitString(String)         { k.kind = compiler.StringValue }
func (k *kindVisitor) VisitHTMLFunc(HTMLFunc)     { k.kind = compiler.HTMLFunction }
func (k *kindVisitor) VisitStringFunc(StringFunc) { k.kind = compiler.StringFunction }

// satisfies reports whether a binding of type bound can serve every usage
// of a hole whose usages unify to used: a string serves an HTML slot, an
// HTML fragment cannot serve a string slot.
func satisfies(bound, used compiler.HoleType) bool {
	unified, ok := compiler.Unify(used, bound)
	return ok && unified == bound
}
