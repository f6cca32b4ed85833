package compiler

import "golang.org/x/net/html"

// StripMode says whether the element carrying a directive is kept around its
// content.
type StripMode uint8

// Strip modes.
const (
	StripNone    StripMode = iota // keep the element
	StripAlways                   // splice the content in place of the element
	StripIfEmpty                  // drop the element when its content is empty
)

func (m StripMode) String() string {
	switch m {
	case StripNone:
		return "none"
	case StripAlways:
		return "always"
	case StripIfEmpty:
		return "ifempty"
	}
	return "invalid strip mode"
}

// Node is a node of an annotated template tree: *Element, *Data,
// *ContentHole, *Comment or *Doctype.
type Node interface {
	node()
}

// Attr is an ordinary attribute whose value may contain placeholders.
type Attr struct {
	Namespace string
	Key       string
	Value     Substitutable
}

// Element is an element kept in the output with its children.
type Element struct {
	Tag       string
	Namespace string
	Attrs     []Attr
	Children  []Node
	Strip     StripMode
}

// Data is a text node.
type Data struct {
	Text Substitutable
}

// ContentHole is an element whose children are replaced by the value of a
// hole at render time. It has no children of its own; Original keeps the
// source children, which are never rendered but are shown to callbacks
// during direct substitution.
type ContentHole struct {
	Tag       string
	Namespace string
	Attrs     []Attr
	Strip     StripMode
	Name      string
	Args      []string
	Original  []*html.Node
}

// Comment is an HTML comment, kept verbatim.
type Comment struct {
	Text string
}

// Doctype is a document type declaration, kept verbatim.
type Doctype struct {
	Name  string
	Attrs []html.Attribute
}

func (*Element) node()     {}
func (*Data) node()        {}
func (*ContentHole) node() {}
func (*Comment) node()     {}
func (*Doctype) node()     {}
