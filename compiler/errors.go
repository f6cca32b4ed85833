package compiler

import (
	"errors"
	"fmt"
	"strings"
)

// Kinds of syntax errors. A *SyntaxError unwraps to one of them.
var (
	ErrUnterminatedQuote       = errors.New("unterminated quote")
	ErrUnterminatedPlaceholder = errors.New("unterminated placeholder")
	ErrInvalidIdentifier       = errors.New("invalid identifier")
	ErrMalformedDirective      = errors.New("malformed directive")
)

// SyntaxError reports malformed template source. It is always fatal to the
// current parse.
type SyntaxError struct {
	Path     string // template or included file, empty when unknown
	Line     int    // estimated 1-based line, 0 when unknown
	Fragment string // offending source text
	Detail   string
	Err      error // one of the Err* kinds above
	context  string
}

func (e *SyntaxError) Error() string {
	var b strings.Builder
	b.WriteString("syntax error")
	if e.Path != "" {
		fmt.Fprintf(&b, " in %s", e.Path)
		if e.Line > 0 {
			fmt.Fprintf(&b, ":%d", e.Line)
		}
	}
	fmt.Fprintf(&b, ": %v", e.Err)
	if e.Detail != "" {
		fmt.Fprintf(&b, ": %s", e.Detail)
	}
	if e.Fragment != "" {
		fmt.Fprintf(&b, " in %q", e.Fragment)
	}
	b.WriteString(e.context)
	return b.String()
}

func (e *SyntaxError) Unwrap() error { return e.Err }

// IncompatibleHoleUsage reports a hole used both as a value and as a
// function. It is fatal to the current parse.
type IncompatibleHoleUsage struct {
	Name     string
	Existing HoleType
	Proposed HoleType
	Path     string
	Line     int
	context  string
}

func (e *IncompatibleHoleUsage) Error() string {
	var b strings.Builder
	b.WriteString("type conflict")
	if e.Path != "" {
		fmt.Fprintf(&b, " in %s", e.Path)
		if e.Line > 0 {
			fmt.Fprintf(&b, ":%d", e.Line)
		}
	}
	fmt.Fprintf(&b, ": hole %q is used as %s and as %s", e.Name, e.Existing, e.Proposed)
	b.WriteString(e.context)
	return b.String()
}

// InvalidIncludeTarget reports an include argument that cannot be read as a
// file relative to the including file's directory.
type InvalidIncludeTarget struct {
	Target string // argument as written in the directive
	From   string // including file
	Reason string
	Err    error
}

func (e *InvalidIncludeTarget) Error() string {
	msg := fmt.Sprintf("cannot include %q", e.Target)
	if e.From != "" {
		msg += " from " + e.From
	}
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *InvalidIncludeTarget) Unwrap() error { return e.Err }

// locate attaches a file path, an estimated line and a source excerpt to
// errors raised while scanning a fragment of that file.
func locate(err error, path string, source []byte) error {
	var syntaxErr *SyntaxError
	if errors.As(err, &syntaxErr) && syntaxErr.Path == "" {
		syntaxErr.Path = path
		if source != nil && syntaxErr.Fragment != "" {
			syntaxErr.Line = estimateLineNumber(string(source), syntaxErr.Fragment)
			syntaxErr.context = getContextLines(string(source), syntaxErr.Line, 2)
		}
		return syntaxErr
	}
	var conflict *IncompatibleHoleUsage
	if errors.As(err, &conflict) && conflict.Path == "" {
		conflict.Path = path
		if source != nil {
			if line := findHoleLine(string(source), conflict.Name); line > 0 {
				conflict.Line = line
				conflict.context = getContextLines(string(source), line, 2)
			}
		}
		return conflict
	}
	return err
}
