package compiler

import (
	"fmt"
	"strings"
)

// Segment is one piece of a Substitutable: a Literal, a Variable or a Call.
type Segment interface {
	segment()
}

// Literal is text copied as is.
type Literal struct {
	Text string
}

// Variable is a ${name} placeholder.
type Variable struct {
	Name string
}

// Call is a ${name arg...} placeholder.
type Call struct {
	Name string
	Args []string
}

func (Literal) segment()  {}
func (Variable) segment() {}
func (Call) segment()     {}

// Substitutable is text with placeholders, as an ordered list of segments.
type Substitutable []Segment

// IsLiteral reports whether s has no placeholders.
func (s Substitutable) IsLiteral() bool {
	for _, seg := range s {
		if _, ok := seg.(Literal); !ok {
			return false
		}
	}
	return true
}

// Scan splits text into literal and placeholder segments and registers every
// placeholder with symbols: ${name} as a StringValue, ${name arg...} as a
// StringFunction. A placeholder starts at "${" and ends at the first "}"
// after it; braces do not nest.
func Scan(text string, symbols *SymbolTable) (Substitutable, error) {
	var segs Substitutable
	rest := text
	for {
		start := strings.Index(rest, "${")
		if start < 0 {
			return appendLiteral(segs, rest), nil
		}
		segs = appendLiteral(segs, rest[:start])
		end := strings.IndexByte(rest[start+2:], '}')
		if end < 0 {
			return nil, &SyntaxError{Err: ErrUnterminatedPlaceholder, Fragment: rest[start:]}
		}
		inner := rest[start+2 : start+2+end]
		seg, err := scanPlaceholder(inner, symbols)
		if err != nil {
			return nil, err
		}
		segs = append(segs, seg)
		rest = rest[start+2+end+1:]
	}
}

func scanPlaceholder(inner string, symbols *SymbolTable) (Segment, error) {
	fragment := "${" + inner + "}"
	tokens, err := SplitOnSpaces(inner)
	if err != nil {
		return nil, &SyntaxError{Err: ErrUnterminatedQuote, Fragment: fragment}
	}
	if len(tokens) == 0 {
		return nil, &SyntaxError{Err: ErrInvalidIdentifier, Fragment: fragment, Detail: "empty placeholder"}
	}
	name := tokens[0]
	if !ValidIdentifier(name) {
		return nil, &SyntaxError{Err: ErrInvalidIdentifier, Fragment: fragment, Detail: fmt.Sprintf("%q is not a valid hole name", name)}
	}
	if len(tokens) == 1 {
		if err := symbols.Register(name, StringValue); err != nil {
			return nil, err
		}
		return Variable{Name: name}, nil
	}
	if err := symbols.Register(name, StringFunction); err != nil {
		return nil, err
	}
	return Call{Name: name, Args: tokens[1:]}, nil
}

func appendLiteral(segs Substitutable, text string) Substitutable {
	if text == "" {
		return segs
	}
	if n := len(segs); n > 0 {
		if lit, ok := segs[n-1].(Literal); ok {
			segs[n-1] = Literal{Text: lit.Text + text}
			return segs
		}
	}
	return append(segs, Literal{Text: text})
}
