package compiler

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// DirectivePrefix marks attributes that are directives rather than
// ordinary attributes.
const DirectivePrefix = "ml:"

// IncludeHole is the reserved hole name that splices files in at compile
// time instead of deferring to a generated hole.
const IncludeHole = "include"

// directive accumulates the directive attributes of one element.
type directive struct {
	hole  string // empty when the element has no content directive
	args  []string
	strip StripMode
}

// readDirective separates the directive attributes of an element from its
// ordinary attributes. A later content or replace directive overwrites an
// earlier one; a later strip overwrites the strip mode set by replace.
func readDirective(attrs []html.Attribute) (directive, []html.Attribute, error) {
	var d directive
	var ordinary []html.Attribute
	for _, a := range attrs {
		name, ok := strings.CutPrefix(a.Key, DirectivePrefix)
		if a.Namespace != "" || !ok {
			ordinary = append(ordinary, a)
			continue
		}
		fragment := fmt.Sprintf("%s=%q", a.Key, a.Val)
		switch name {
		case "content", "replace":
			tokens, err := SplitOnSpaces(a.Val)
			if err != nil {
				return d, nil, &SyntaxError{Err: ErrUnterminatedQuote, Fragment: fragment}
			}
			if len(tokens) == 0 {
				return d, nil, &SyntaxError{Err: ErrMalformedDirective, Fragment: fragment, Detail: "missing hole name"}
			}
			if !ValidIdentifier(tokens[0]) {
				return d, nil, &SyntaxError{Err: ErrInvalidIdentifier, Fragment: fragment, Detail: fmt.Sprintf("%q is not a valid hole name", tokens[0])}
			}
			d.hole, d.args = tokens[0], tokens[1:]
			if name == "replace" {
				d.strip = StripAlways
			}
		case "strip":
			if fields := strings.Fields(a.Val); len(fields) > 0 && fields[0] == "ifempty" {
				d.strip = StripIfEmpty
			} else {
				d.strip = StripAlways
			}
		default:
			return d, nil, &SyntaxError{Err: ErrMalformedDirective, Fragment: fragment, Detail: fmt.Sprintf("unknown directive %q", a.Key) + didYouMean(name, directiveNames, DirectivePrefix)}
		}
	}
	return d, ordinary, nil
}

// scanAttributes runs the placeholder scanner over ordinary attribute
// values. Holes used in attributes are always string shaped.
func scanAttributes(attrs []html.Attribute, symbols *SymbolTable) ([]Attr, error) {
	if len(attrs) == 0 {
		return nil, nil
	}
	out := make([]Attr, 0, len(attrs))
	for _, a := range attrs {
		value, err := Scan(a.Val, symbols)
		if err != nil {
			return nil, err
		}
		out = append(out, Attr{Namespace: a.Namespace, Key: a.Key, Value: value})
	}
	return out, nil
}
