package compiler

import (
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"

	"golang.org/x/tools/go/packages"
)

// TemplateSuffix marks the files compiled in directory mode. Other HTML
// files are partials that templates include.
const TemplateSuffix = ".ml.html"

// Template is a template found by Discover.
type Template struct {
	// Path is relative to the discovery root, with forward slashes, so it
	// can be opened in os.DirFS(root).
	Path string
	// Dir is the absolute directory holding the template.
	Dir string
	// Package is the name of the Go package in Dir, empty when Dir holds
	// no Go package yet.
	Package string
}

// Discover finds every template under root. Vendor, node_modules and
// hidden directories are skipped, as are templates whose name starts
// with an underscore.
func Discover(root string, logger *slog.Logger) ([]Template, error) {
	if logger == nil {
		logger = slog.Default()
	}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve absolute path for %s: %w", root, err)
	}

	var templates []Template
	err = filepath.WalkDir(absRoot, func(p string, de fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		name := de.Name()
		if de.IsDir() {
			if p != absRoot && (name == "vendor" || name == "node_modules" || strings.HasPrefix(name, ".")) {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(name, TemplateSuffix) || strings.HasPrefix(name, "_") {
			return nil
		}
		rel, err := filepath.Rel(absRoot, p)
		if err != nil {
			return err
		}
		templates = append(templates, Template{Path: filepath.ToSlash(rel), Dir: filepath.Dir(p)})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to discover templates under %s: %w", root, err)
	}
	if len(templates) == 0 {
		logger.Warn("no templates found", slog.String("root", root), slog.String("suffix", TemplateSuffix))
		return nil, nil
	}

	names, err := packageNames(absRoot)
	if err != nil {
		// Not fatal: package clauses then fall back to directory names.
		logger.Warn("could not load Go packages", slog.String("root", root), slog.Any("error", err))
	}
	for i := range templates {
		templates[i].Package = names[templates[i].Dir]
	}
	return templates, nil
}

// packageNames maps the directory of every Go package under root to the
// package's name.
func packageNames(root string) (map[string]string, error) {
	cfg := &packages.Config{
		Mode: packages.NeedName | packages.NeedFiles,
		Dir:  root,
	}
	pkgs, err := packages.Load(cfg, "./...")
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}
	names := make(map[string]string)
	for _, pkg := range pkgs {
		if len(pkg.GoFiles) == 0 {
			continue
		}
		// All files in a package share the same directory.
		names[filepath.Dir(pkg.GoFiles[0])] = pkg.Name
	}
	return names, nil
}

// DetectPackage returns the name of the Go package in dir, or the empty
// string when dir holds no Go files.
func DetectPackage(dir string) (string, error) {
	cfg := &packages.Config{
		Mode: packages.NeedName | packages.NeedFiles,
		Dir:  dir,
	}
	pkgs, err := packages.Load(cfg, ".")
	if err != nil {
		return "", fmt.Errorf("failed to load package in %s: %w", dir, err)
	}
	for _, pkg := range pkgs {
		if len(pkg.GoFiles) > 0 {
			return pkg.Name, nil
		}
	}
	return "", nil
}
