package compiler

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestDiscover(t *testing.T) {
	root := t.TempDir()
	files := []string{
		"index.ml.html",
		"pages/about.ml.html",
		"pages/_partial.ml.html",
		"pages/header.html",
		"vendor/x/skip.ml.html",
		"node_modules/y/skip.ml.html",
		".hidden/skip.ml.html",
	}
	for _, f := range files {
		p := filepath.Join(root, filepath.FromSlash(f))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte("<p></p>"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	templates, err := Discover(root, logger)
	if err != nil {
		t.Fatalf("Discover failed: %v", err)
	}

	var paths []string
	for _, tmpl := range templates {
		paths = append(paths, tmpl.Path)
		if !filepath.IsAbs(tmpl.Dir) {
			t.Errorf("Expected an absolute directory for %s, got %s", tmpl.Path, tmpl.Dir)
		}
	}
	expected := []string{"index.ml.html", "pages/about.ml.html"}
	if !reflect.DeepEqual(paths, expected) {
		t.Errorf("Expected %v, got %v", expected, paths)
	}
}

func TestDiscoverEmpty(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	templates, err := Discover(t.TempDir(), logger)
	if err != nil || templates != nil {
		t.Fatalf("Expected no templates and no error, got %v, %v", templates, err)
	}
}

func TestPackageName(t *testing.T) {
	testCases := []struct {
		dir, module, expected string
	}{
		{"views/pages", "index", "pages"},
		{".", "index", "index"},
		{"/", "home_page", "homepage"},
		{"my-views", "x", "myviews"},
		{"views/type", "x", "typepkg"},
		{".", "func", "funcpkg"},
	}
	for _, tc := range testCases {
		if got := PackageName(tc.dir, tc.module); got != tc.expected {
			t.Errorf("PackageName(%q, %q) = %q, expected %q", tc.dir, tc.module, got, tc.expected)
		}
	}
}
