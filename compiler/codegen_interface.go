package compiler

import (
	"fmt"
	"strings"
)

var interfaceImports = []string{
	`"golang.org/x/net/html"`,
	`"github.com/vcrobe/mltemplate/runtime"`,
}

// generateInterface returns the public interface unit: <Type>Template with
// Render and the direct setters in alphabetical order, <Type>Advanced
// adding the Update and Get operations, and assertions that the state type
// implements both.
func (g *generator) generateInterface(imports []string) []byte {
	var b strings.Builder
	g.header(&b, imports)
	names := g.symbols.Names()
	typ := g.typeName

	fmt.Fprintf(&b, "// %sTemplate is the public interface of the %s template.\n", typ, g.source)
	fmt.Fprintf(&b, "type %sTemplate interface {\n", typ)
	b.WriteString("Render() []*html.Node\n")
	for _, name := range names {
		if g.hidden[name] {
			continue
		}
		t, _ := g.symbols.Lookup(name)
		fmt.Fprintf(&b, "Set%s(%s)\n", holeName(name), goType(t))
	}
	b.WriteString("}\n\n")

	fmt.Fprintf(&b, "// %[1]sAdvanced extends %[1]sTemplate with lazy updates and forced reads.\n", typ)
	fmt.Fprintf(&b, "type %sAdvanced interface {\n", typ)
	fmt.Fprintf(&b, "%sTemplate\n", typ)
	for _, name := range names {
		t, _ := g.symbols.Lookup(name)
		fmt.Fprintf(&b, "Update%s(func(*%s) %s)\n", holeName(name), typ, goType(t))
		fmt.Fprintf(&b, "Get%s() %s\n", holeName(name), goType(t))
	}
	b.WriteString("}\n\n")

	fmt.Fprintf(&b, "var (\n_ %[1]sTemplate = (*%[1]s)(nil)\n_ %[1]sAdvanced = (*%[1]s)(nil)\n)\n", typ)
	return []byte(b.String())
}
