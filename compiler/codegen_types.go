package compiler

import (
	"fmt"
	"strings"
)

// generator emits the Go source of one compiled template.
type generator struct {
	source   string // template path, for the header comment
	pkg      string
	typeName string
	symbols  *SymbolTable
	tree     []Node
	hidden   map[string]bool
}

// goType returns the Go type of a hole of type t.
func goType(t HoleType) string {
	switch t {
	case HTMLFragment:
		return "[]*html.Node"
	case HTMLFunction:
		return "runtime.HTMLFunc"
	case StringFunction:
		return "runtime.StringFunc"
	}
	return "string"
}

// zeroValue returns the value a hole of type t has in a new state.
func zeroValue(t HoleType) string {
	switch t {
	case HTMLFragment:
		return "nil"
	case HTMLFunction:
		return "runtime.EmptyHTML"
	case StringFunction:
		return "runtime.EmptyString"
	}
	return `""`
}

func (g *generator) delayedType(t HoleType) string {
	return fmt.Sprintf("*runtime.Delayed[%s, *%s]", goType(t), g.typeName)
}

// setterName returns the name of the direct setter of a hole. Hidden
// setters stay unexported so that a trailer can wrap them.
func (g *generator) setterName(name string) string {
	if g.hidden[name] {
		return "set" + holeName(name)
	}
	return "Set" + holeName(name)
}

func (g *generator) header(b *strings.Builder, imports []string) {
	fmt.Fprintf(b, "// Code generated by mltemplate from %s. DO NOT EDIT.\n\n", g.source)
	fmt.Fprintf(b, "package %s\n\n", g.pkg)
	switch len(imports) {
	case 0:
	case 1:
		fmt.Fprintf(b, "import %s\n\n", imports[0])
	default:
		b.WriteString("import (\n")
		for _, imp := range imports {
			b.WriteString(imp + "\n")
		}
		b.WriteString(")\n\n")
	}
}

// implementationImports is the import set the implementation unit may
// need. Only the entries the unit refers to are written.
var implementationImports = []string{
	`"golang.org/x/net/html"`,
	`"github.com/vcrobe/mltemplate/runtime"`,
	`"github.com/vcrobe/mltemplate/vdom"`,
}

// generateImplementation returns the implementation unit: the state type,
// its constructor, the accessors of every hole and the render method.
func (g *generator) generateImplementation(imports []string) []byte {
	var b strings.Builder
	g.header(&b, imports)
	names := g.symbols.Names()
	typ := g.typeName

	fmt.Fprintf(&b, "// %s is the state of the %s template. The zero value has every hole\n", typ, g.source)
	b.WriteString("// empty; so does the value returned by New" + typ + ".\n")
	if len(names) == 0 {
		fmt.Fprintf(&b, "type %s struct{}\n\n", typ)
	} else {
		fmt.Fprintf(&b, "type %s struct {\n", typ)
		for _, name := range names {
			t, _ := g.symbols.Lookup(name)
			fmt.Fprintf(&b, "hole%s %s\n", holeName(name), g.delayedType(t))
		}
		b.WriteString("inPass bool\n")
		b.WriteString("}\n\n")
	}

	fmt.Fprintf(&b, "// New%[1]s returns a %[1]s with every hole set to its empty value.\n", typ)
	fmt.Fprintf(&b, "func New%[1]s() *%[1]s {\n", typ)
	if len(names) == 0 {
		fmt.Fprintf(&b, "return &%s{}\n}\n\n", typ)
	} else {
		fmt.Fprintf(&b, "return &%s{\n", typ)
		for _, name := range names {
			t, _ := g.symbols.Lookup(name)
			fmt.Fprintf(&b, "hole%s: runtime.Value[%s, *%s](%s),\n", holeName(name), goType(t), typ, zeroValue(t))
		}
		b.WriteString("}\n}\n\n")
	}

	for _, name := range names {
		g.generateAccessors(&b, name)
	}

	b.WriteString("// pass returns the state a render pass works on: pending transformations\n")
	b.WriteString("// are copied so that each of them runs at most once per pass.\n")
	fmt.Fprintf(&b, "func (s *%[1]s) pass() *%[1]s {\n", typ)
	b.WriteString("c := *s\n")
	if len(names) > 0 {
		b.WriteString("c.inPass = true\n")
	}
	for _, name := range names {
		fmt.Fprintf(&b, "c.hole%[1]s = c.hole%[1]s.Fresh()\n", holeName(name))
	}
	b.WriteString("return &c\n}\n\n")

	b.WriteString("// Render builds the document tree of the template.\n")
	fmt.Fprintf(&b, "func (s *%s) Render() []*html.Node {\n", typ)
	if len(names) > 0 {
		b.WriteString("s = s.pass()\n")
	}
	b.WriteString("return " + generateConcat(g.generateNodeList(g.tree)) + "\n")
	b.WriteString("}\n")
	return []byte(b.String())
}

func (g *generator) generateAccessors(b *strings.Builder, name string) {
	t, _ := g.symbols.Lookup(name)
	typ, hole, gt := g.typeName, holeName(name), goType(t)
	setter := g.setterName(name)

	fmt.Fprintf(b, "// %s sets the %s hole (%s).\n", setter, name, t)
	fmt.Fprintf(b, "func (s *%s) %s(v %s) {\n", typ, setter, gt)
	fmt.Fprintf(b, "s.hole%s = runtime.Value[%s, *%s](v)\n}\n\n", hole, gt, typ)

	fmt.Fprintf(b, "// Update%s sets the %s hole to the result of f. f runs lazily, at most\n", hole, name)
	fmt.Fprintf(b, "// once per render pass, and sees the %s hole as it was before this call.\n", name)
	fmt.Fprintf(b, "func (s *%s) Update%s(f func(*%s) %s) {\n", typ, hole, typ, gt)
	fmt.Fprintf(b, "s.hole%[1]s = runtime.Pending(f, s.hole%[1]s)\n}\n\n", hole)

	fmt.Fprintf(b, "// Get%s returns the current value of the %s hole. Outside a render pass,\n", hole, name)
	b.WriteString("// each call is a pass of its own.\n")
	fmt.Fprintf(b, "func (s *%s) Get%s() %s {\n", typ, hole, gt)
	b.WriteString("if !s.inPass {\ns = s.pass()\n}\n")
	fmt.Fprintf(b, "return s.hole%s.Force(func(prev %s) *%s {\n", hole, g.delayedType(t), typ)
	fmt.Fprintf(b, "c := *s\nc.hole%s = prev\nreturn &c\n})\n}\n\n", hole)
}
