package compiler

import (
	"fmt"
	"strconv"
	"strings"
)

// generateNodeList returns the expression of a sibling list: the
// concatenation of the node expressions in order.
func (g *generator) generateNodeList(nodes []Node) []string {
	exprs := make([]string, 0, len(nodes))
	for _, n := range nodes {
		exprs = append(exprs, g.generateNodeCode(n))
	}
	return exprs
}

// generateNodeCode returns a Go expression of type []*html.Node that
// rebuilds n against the render state s.
func (g *generator) generateNodeCode(n Node) string {
	switch n := n.(type) {
	case *Data:
		return "vdom.Text(" + generateStringExpression(n.Text) + ")"
	case *Comment:
		return "vdom.Comment(" + strconv.Quote(n.Text) + ")"
	case *Doctype:
		return fmt.Sprintf("vdom.Doctype(%q, %s)", n.Name, generateRawAttributes(n.Attrs))
	case *Element:
		return g.generateElementCode(n)
	case *ContentHole:
		return g.generateContentHoleCode(n)
	}
	panic(fmt.Sprintf("compiler: unexpected node type %T", n))
}

// generateConstructor returns the vdom constructor call for an element.
func generateConstructor(tag, namespace string, attrs []Attr, children ...string) string {
	var b strings.Builder
	if namespace != "" {
		fmt.Fprintf(&b, "vdom.ElementNS(%q, %q, %s", namespace, tag, generateAttributes(attrs))
	} else {
		fmt.Fprintf(&b, "vdom.Element(%q, %s", tag, generateAttributes(attrs))
	}
	for _, c := range children {
		b.WriteString(",\n")
		b.WriteString(c)
	}
	if len(children) > 0 {
		b.WriteString(",\n")
	}
	b.WriteString(")")
	return b.String()
}

// generateConcat returns vdom.Concat over exprs, one per line.
func generateConcat(exprs []string) string {
	if len(exprs) == 0 {
		return "nil"
	}
	if len(exprs) == 1 {
		return exprs[0]
	}
	return "vdom.Concat(\n" + strings.Join(exprs, ",\n") + ",\n)"
}

func (g *generator) generateElementCode(n *Element) string {
	children := g.generateNodeList(n.Children)
	switch n.Strip {
	case StripAlways:
		return generateConcat(children)
	case StripIfEmpty:
		var b strings.Builder
		b.WriteString("func() []*html.Node {\n")
		b.WriteString("children := " + generateConcat(children) + "\n")
		b.WriteString("if len(children) == 0 {\nreturn nil\n}\n")
		b.WriteString("return " + generateConstructor(n.Tag, n.Namespace, n.Attrs, "children") + "\n")
		b.WriteString("}()")
		return b.String()
	}
	return generateConstructor(n.Tag, n.Namespace, n.Attrs, children...)
}

// generateContentHoleCode forces the hole once per occurrence. In IfEmpty
// mode the value is bound to a local so it is not forced twice.
func (g *generator) generateContentHoleCode(n *ContentHole) string {
	value, t := g.generateHoleValue(n.Name, n.Args)
	switch n.Strip {
	case StripAlways:
		return asNodes(value, t)
	case StripIfEmpty:
		var b strings.Builder
		b.WriteString("func() []*html.Node {\n")
		b.WriteString("v := " + value + "\n")
		b.WriteString("if " + emptyCheck("v", t) + " {\nreturn nil\n}\n")
		b.WriteString("return " + generateConstructor(n.Tag, n.Namespace, n.Attrs, asNodes("v", t)) + "\n")
		b.WriteString("}()")
		return b.String()
	}
	return generateConstructor(n.Tag, n.Namespace, n.Attrs, asNodes(value, t))
}
