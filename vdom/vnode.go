package vdom

import (
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Element creates an HTML element node with the given attributes and children.
// Every argument in children is a sibling list; the lists are concatenated in
// order. Nodes that already belong to another tree are cloned before being
// attached, so the same hole value can be spliced into several places.
func Element(tag string, attrs []html.Attribute, children ...[]*html.Node) []*html.Node {
	return ElementNS("", tag, attrs, children...)
}

// ElementNS is like Element for foreign content (e.g. "svg" or "math").
func ElementNS(namespace, tag string, attrs []html.Attribute, children ...[]*html.Node) []*html.Node {
	n := &html.Node{
		Type:      html.ElementNode,
		Data:      tag,
		Namespace: namespace,
		Attr:      attrs,
	}
	if namespace == "" {
		n.DataAtom = atom.Lookup([]byte(tag))
	}
	for _, list := range children {
		for _, c := range list {
			appendChild(n, c)
		}
	}
	return []*html.Node{n}
}

// Text creates a text node. The empty string yields no node at all, which
// keeps emptiness checks on rendered fragments meaningful.
func Text(s string) []*html.Node {
	if s == "" {
		return nil
	}
	return []*html.Node{{Type: html.TextNode, Data: s}}
}

// Comment creates a comment node.
func Comment(s string) []*html.Node {
	return []*html.Node{{Type: html.CommentNode, Data: s}}
}

// Doctype creates a doctype node. attrs carries the optional "public" and
// "system" identifiers the way the html parser stores them.
func Doctype(name string, attrs []html.Attribute) []*html.Node {
	return []*html.Node{{Type: html.DoctypeNode, Data: name, Attr: attrs}}
}

// Concat joins sibling lists into one list.
func Concat(parts ...[]*html.Node) []*html.Node {
	size := 0
	for _, p := range parts {
		size += len(p)
	}
	if size == 0 {
		return nil
	}
	out := make([]*html.Node, 0, size)
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

// Clone returns a deep copy of n that is not attached to any tree.
func Clone(n *html.Node) *html.Node {
	if n == nil {
		return nil
	}
	c := &html.Node{
		Type:      n.Type,
		DataAtom:  n.DataAtom,
		Data:      n.Data,
		Namespace: n.Namespace,
	}
	if len(n.Attr) > 0 {
		c.Attr = make([]html.Attribute, len(n.Attr))
		copy(c.Attr, n.Attr)
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		c.AppendChild(Clone(child))
	}
	return c
}

// CloneAll deep-copies every node of a sibling list.
func CloneAll(nodes []*html.Node) []*html.Node {
	if len(nodes) == 0 {
		return nil
	}
	out := make([]*html.Node, len(nodes))
	for i, n := range nodes {
		out[i] = Clone(n)
	}
	return out
}

// Children returns the child nodes of n as a slice. The nodes stay attached.
func Children(n *html.Node) []*html.Node {
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		out = append(out, c)
	}
	return out
}

func appendChild(parent, child *html.Node) {
	if child == nil {
		return
	}
	// html.Node.AppendChild panics on attached nodes.
	if child.Parent != nil || child.PrevSibling != nil || child.NextSibling != nil {
		child = Clone(child)
	}
	parent.AppendChild(child)
}
