package compiler

import (
	"os"
	"path"
	"path/filepath"
	"testing"
)

// TestCheckedInUnitsAreCurrent compiles the templates under testcomponents
// and compares the result with the units checked in next to them.
func TestCheckedInUnitsAreCurrent(t *testing.T) {
	testCases := []struct {
		dir      string
		template string
	}{
		{"../testcomponents/card", "card.ml.html"},
		{"../testcomponents/static", "static.ml.html"},
	}

	for _, tc := range testCases {
		t.Run(tc.template, func(t *testing.T) {
			result, err := CompileTemplate(os.DirFS(tc.dir), tc.template, Options{Package: path.Base(tc.dir)})
			if err != nil {
				t.Fatalf("CompileTemplate failed: %v", err)
			}
			for _, u := range []Unit{result.Implementation, result.Interface} {
				want, err := os.ReadFile(filepath.Join(tc.dir, u.Name))
				if err != nil {
					t.Fatalf("Failed to read %s: %v", u.Name, err)
				}
				if string(u.Source) != string(want) {
					t.Errorf("%s is out of date; run go generate ./testcomponents/...\ngot:\n%s", u.Name, u.Source)
				}
			}
		})
	}
}

func TestNeededImports(t *testing.T) {
	src := []byte("package p\n\nfunc f() []*html.Node { return vdom.Text(s.x) }\n")
	candidates := []string{`"golang.org/x/net/html"`, `"github.com/vcrobe/mltemplate/runtime"`, `"github.com/vcrobe/mltemplate/vdom"`}
	got, err := neededImports("p.go", src, candidates)
	if err != nil {
		t.Fatalf("neededImports failed: %v", err)
	}
	expected := []string{`"github.com/vcrobe/mltemplate/vdom"`, `"golang.org/x/net/html"`}
	if len(got) != len(expected) || got[0] != expected[0] || got[1] != expected[1] {
		t.Errorf("Expected %v, got %v", expected, got)
	}
}
