package vdom

import (
	"bytes"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Parse reads an HTML template. A source that starts with a doctype or an
// <html> element is parsed as a whole document and the document's children
// are returned. Anything else is parsed as the content of a <body> element,
// which keeps partials free of the implied html/head/body wrappers.
func Parse(r io.Reader) ([]*html.Node, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return ParseBytes(src)
}

// ParseBytes is Parse for an in-memory source.
func ParseBytes(src []byte) ([]*html.Node, error) {
	if isDocument(src) {
		doc, err := html.Parse(bytes.NewReader(src))
		if err != nil {
			return nil, err
		}
		var nodes []*html.Node
		for c := doc.FirstChild; c != nil; {
			next := c.NextSibling
			doc.RemoveChild(c)
			nodes = append(nodes, c)
			c = next
		}
		return nodes, nil
	}
	context := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	return html.ParseFragment(bytes.NewReader(src), context)
}

// ParseString is Parse for a string source.
func ParseString(src string) ([]*html.Node, error) {
	return ParseBytes([]byte(src))
}

func isDocument(src []byte) bool {
	head := bytes.TrimLeft(src, " \t\r\n\f")
	if len(head) > 16 {
		head = head[:16]
	}
	lower := strings.ToLower(string(head))
	return strings.HasPrefix(lower, "<!doctype") || strings.HasPrefix(lower, "<html")
}

// Render writes the HTML serialization of every node in order.
func Render(w io.Writer, nodes []*html.Node) error {
	for _, n := range nodes {
		if err := html.Render(w, n); err != nil {
			return err
		}
	}
	return nil
}

// RenderString is Render into a string.
func RenderString(nodes []*html.Node) (string, error) {
	var b strings.Builder
	if err := Render(&b, nodes); err != nil {
		return "", err
	}
	return b.String(), nil
}

// Equal reports whether two sibling lists are structurally equal: same node
// types, tag or text data, namespaces, attributes (in order) and children.
func Equal(a, b []*html.Node) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !equalNode(a[i], b[i]) {
			return false
		}
	}
	return true
}

func equalNode(a, b *html.Node) bool {
	if a.Type != b.Type || a.Data != b.Data || a.Namespace != b.Namespace {
		return false
	}
	if len(a.Attr) != len(b.Attr) {
		return false
	}
	for i := range a.Attr {
		if a.Attr[i] != b.Attr[i] {
			return false
		}
	}
	ca, cb := a.FirstChild, b.FirstChild
	for ca != nil && cb != nil {
		if !equalNode(ca, cb) {
			return false
		}
		ca, cb = ca.NextSibling, cb.NextSibling
	}
	return ca == nil && cb == nil
}
