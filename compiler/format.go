package compiler

import (
	"bytes"
	"fmt"
	"go/ast"
	"go/format"
	"go/parser"
	"go/token"
	"path"
	"slices"
	"strconv"

	"golang.org/x/tools/imports"
)

// formatUnit gofmts a generated unit. build renders the unit with a given
// import list; only the candidates the unit refers to are passed to it.
//
// A trailer is appended verbatim after a //line directive, so compiler
// messages about trailer code point at the trailer file. Only the generated
// part is reformatted; the import block is settled first from the whole
// unit so that packages used only by the trailer are imported too.
func formatUnit(filename string, build func(imports []string) []byte, candidates []string, tr *trailer) ([]byte, error) {
	needed, err := neededImports(filename, build(nil), candidates)
	if err != nil {
		return nil, err
	}
	head := build(needed)
	if tr == nil || len(bytes.TrimSpace(tr.text)) == 0 {
		out, err := imports.Process(filename, head, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to format %s: %w", filename, err)
		}
		return out, nil
	}

	probe := joinTrailer(head, tr, false)
	processed, err := imports.Process(filename, probe, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to format %s with trailer %s: %w", filename, tr.path, err)
	}
	used, err := importList(filename, processed)
	if err != nil {
		return nil, err
	}
	out, err := format.Source(build(used))
	if err != nil {
		return nil, fmt.Errorf("failed to format %s: %w", filename, err)
	}
	return joinTrailer(out, tr, true), nil
}

func joinTrailer(head []byte, tr *trailer, lineDirective bool) []byte {
	var b bytes.Buffer
	b.Write(head)
	if !bytes.HasSuffix(head, []byte("\n")) {
		b.WriteByte('\n')
	}
	b.WriteByte('\n')
	if lineDirective {
		fmt.Fprintf(&b, "//line %s:1\n", path.Base(tr.path))
	}
	b.Write(tr.text)
	if !bytes.HasSuffix(tr.text, []byte("\n")) {
		b.WriteByte('\n')
	}
	return b.Bytes()
}

// importList returns the import specs of src, one per entry, in the form
// they are written inside an import block.
func importList(filename string, src []byte) ([]string, error) {
	f, err := parser.ParseFile(token.NewFileSet(), filename, src, parser.ImportsOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to read imports of %s: %w", filename, err)
	}
	specs := make([]string, 0, len(f.Imports))
	for _, imp := range f.Imports {
		if imp.Name != nil {
			specs = append(specs, imp.Name.Name+" "+imp.Path.Value)
			continue
		}
		specs = append(specs, imp.Path.Value)
	}
	return specs, nil
}

// neededImports returns, sorted, the candidate import paths whose package
// name src refers to. src is the unit rendered without imports.
func neededImports(filename string, src []byte, candidates []string) ([]string, error) {
	f, err := parser.ParseFile(token.NewFileSet(), filename, src, parser.SkipObjectResolution)
	if err != nil {
		return nil, fmt.Errorf("failed to parse generated %s: %w", filename, err)
	}
	refs := make(map[string]bool)
	ast.Inspect(f, func(n ast.Node) bool {
		if sel, ok := n.(*ast.SelectorExpr); ok {
			if id, ok := sel.X.(*ast.Ident); ok {
				refs[id.Name] = true
			}
		}
		return true
	})
	var needed []string
	for _, c := range candidates {
		p, err := strconv.Unquote(c)
		if err != nil {
			return nil, fmt.Errorf("invalid import %s: %w", c, err)
		}
		if refs[path.Base(p)] {
			needed = append(needed, c)
		}
	}
	slices.Sort(needed)
	return needed, nil
}
