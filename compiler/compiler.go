package compiler

import (
	"fmt"
	"go/token"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// Extensions of generated units and of their trailers. For module "page"
// the units are page.ml.go and page.mli.go; the trailers page.ml.ext and
// page.mli.ext are read from the template's directory.
const (
	ImplementationSuffix  = ".ml.go"
	InterfaceSuffix       = ".mli.go"
	ImplementationTrailer = ".ml.ext"
	InterfaceTrailer      = ".mli.ext"
)

var trailerSuffixes = [...]string{ImplementationTrailer, InterfaceTrailer}

// Options configures CompileTemplate.
type Options struct {
	// Module names the generated units and the state type. It defaults to
	// the template's base name without its extensions.
	Module string
	// Package is the package clause of the generated units. It defaults to
	// the name of the template's directory, or to the module name for a
	// template at the root of the filesystem.
	Package string
	Logger  *slog.Logger
}

// Unit is one generated source file.
type Unit struct {
	Name   string
	Source []byte
}

// Result is the output of a successful compilation.
type Result struct {
	Module         string
	TypeName       string
	Package        string
	Implementation Unit
	Interface      Unit
	Symbols        *SymbolTable
	// Files lists every file the output depends on: the template, its
	// includes and the trailers that exist.
	Files []string
	// Absent lists the trailers that were looked up and not found. The
	// output changes when one of them is created.
	Absent []string
}

// ModuleName returns the default module name of a template:
// "pages/index.ml.html" gives "index".
func ModuleName(templatePath string) string {
	base := path.Base(filepath.ToSlash(templatePath))
	for _, ext := range []string{".html", ".htm", ".ml"} {
		base = strings.TrimSuffix(base, ext)
	}
	return base
}

// CompileTemplate compiles the template name in fsys into an
// implementation unit and an interface unit. Nothing is written: on error
// there is no partial output, and Result.Write stores both units.
func CompileTemplate(fsys fs.FS, name string, opts Options) (*Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	module := opts.Module
	if module == "" {
		module = ModuleName(name)
	}
	pkg := opts.Package
	if pkg == "" {
		pkg = PackageName(path.Dir(name), module)
	}

	doc, err := Parse(fsys, name)
	if err != nil {
		return nil, err
	}
	logger.Debug("parsed template", slog.String("template", name), slog.Int("holes", doc.Symbols.Len()), slog.Int("files", len(doc.Files)))

	dir := path.Dir(name)
	implTrailer, err := readTrailer(fsys, path.Join(dir, module+ImplementationTrailer))
	if err != nil {
		return nil, err
	}
	ifaceTrailer, err := readTrailer(fsys, path.Join(dir, module+InterfaceTrailer))
	if err != nil {
		return nil, err
	}

	g := &generator{
		source:   path.Base(name),
		pkg:      pkg,
		typeName: exportName(module),
		symbols:  doc.Symbols,
		tree:     doc.Tree,
		hidden:   make(map[string]bool),
	}
	files := doc.Files
	var absent []string
	for i, tr := range []*trailer{implTrailer, ifaceTrailer} {
		if tr == nil {
			absent = append(absent, path.Join(dir, module+trailerSuffixes[i]))
			continue
		}
		files = append(files, tr.path)
		for _, hole := range tr.hidden {
			if _, ok := doc.Symbols.Lookup(hole); !ok {
				logger.Warn("trailer hides an unknown hole", slog.String("trailer", tr.path), slog.String("hole", hole),
					slog.Any("suggestions", suggest(hole, doc.Symbols.Names())))
				continue
			}
			g.hidden[hole] = true
		}
	}

	implName := module + ImplementationSuffix
	impl, err := formatUnit(implName, g.generateImplementation, implementationImports, implTrailer)
	if err != nil {
		return nil, err
	}
	ifaceName := module + InterfaceSuffix
	iface, err := formatUnit(ifaceName, g.generateInterface, interfaceImports, ifaceTrailer)
	if err != nil {
		return nil, err
	}

	return &Result{
		Module:         module,
		TypeName:       g.typeName,
		Package:        pkg,
		Implementation: Unit{Name: implName, Source: impl},
		Interface:      Unit{Name: ifaceName, Source: iface},
		Symbols:        doc.Symbols,
		Files:          files,
		Absent:         absent,
	}, nil
}

// PackageName derives a package clause from the slash-separated path of a
// directory. A root directory falls back to the module name. A name that is
// a Go keyword gets a "pkg" suffix.
func PackageName(dir, module string) string {
	base := path.Base(dir)
	if dir == "." || dir == "/" || base == "" {
		base = module
	}
	name := strings.ToLower(exportName(base))
	if token.IsKeyword(name) {
		name += "pkg"
	}
	return name
}

// Write stores both units in dir. Each unit goes to a temporary file that is
// renamed into place once both are written, so a failure leaves the
// previous output untouched.
func (r *Result) Write(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}
	units := []Unit{r.Implementation, r.Interface}
	temps := make([]string, 0, len(units))
	cleanup := func() {
		for _, tmp := range temps {
			os.Remove(tmp)
		}
	}
	for _, u := range units {
		f, err := os.CreateTemp(dir, "."+u.Name+".*")
		if err != nil {
			cleanup()
			return fmt.Errorf("failed to write %s: %w", u.Name, err)
		}
		temps = append(temps, f.Name())
		_, err = f.Write(u.Source)
		if err == nil {
			err = f.Chmod(0o644)
		}
		if closeErr := f.Close(); err == nil {
			err = closeErr
		}
		if err != nil {
			cleanup()
			return fmt.Errorf("failed to write %s: %w", u.Name, err)
		}
	}
	for i, u := range units {
		if err := os.Rename(temps[i], filepath.Join(dir, u.Name)); err != nil {
			cleanup()
			return fmt.Errorf("failed to write %s: %w", u.Name, err)
		}
	}
	return nil
}
