package compiler

import (
	"strconv"
	"strings"
)

// holeName is the suffix of the generated field and methods of a hole:
// "title" gives holeTitle, SetTitle, UpdateTitle and GetTitle.
func holeName(name string) string {
	return strings.ToUpper(name[:1]) + name[1:]
}

// getter returns the expression that forces a hole on the render state.
func getter(name string) string {
	return "s.Get" + holeName(name) + "()"
}

// quoteArgs renders function arguments as Go string literals.
func quoteArgs(args []string) string {
	quoted := make([]string, len(args))
	for i, a := range args {
		quoted[i] = strconv.Quote(a)
	}
	return strings.Join(quoted, ", ")
}

// generateStringExpression returns a Go string expression concatenating the
// segments of text in order. Variables force their hole; calls pass their
// arguments as string literals.
func generateStringExpression(text Substitutable) string {
	if len(text) == 0 {
		return `""`
	}
	parts := make([]string, 0, len(text))
	for _, seg := range text {
		switch seg := seg.(type) {
		case Literal:
			parts = append(parts, strconv.Quote(seg.Text))
		case Variable:
			parts = append(parts, getter(seg.Name))
		case Call:
			parts = append(parts, "runtime.CallString("+getter(seg.Name)+", "+quoteArgs(seg.Args)+")")
		}
	}
	return strings.Join(parts, " + ")
}

// generateHoleValue returns the expression producing the value of a content
// hole, and the hole's final type. HTML values are cloned so that a state
// can be rendered more than once without sharing nodes between trees.
func (g *generator) generateHoleValue(name string, args []string) (string, HoleType) {
	t, _ := g.symbols.Lookup(name)
	switch t {
	case HTMLFragment:
		return "vdom.CloneAll(" + getter(name) + ")", t
	case HTMLFunction:
		return "vdom.CloneAll(runtime.CallHTML(" + getter(name) + ", " + quoteArgs(args) + "))", t
	case StringFunction:
		return "runtime.CallString(" + getter(name) + ", " + quoteArgs(args) + ")", t
	}
	return getter(name), StringValue
}

// asNodes converts a hole value expression into a node list expression.
func asNodes(expr string, t HoleType) string {
	if t.IsString() {
		return "vdom.Text(" + expr + ")"
	}
	return expr
}

// emptyCheck returns the condition under which a hole value is empty.
func emptyCheck(v string, t HoleType) string {
	if t.IsString() {
		return v + ` == ""`
	}
	return "len(" + v + ") == 0"
}
