package compiler

import (
	"errors"
	"fmt"
	"io/fs"
	"regexp"
)

// hideMarker matches a trailer line that hides the public setter of a hole.
var hideMarker = regexp.MustCompile(`(?m)^[ \t]*//mltemplate:hide[ \t]+([a-z][a-zA-Z0-9_]*)[ \t]*$`)

// trailer is hand-written Go source appended to a generated unit.
type trailer struct {
	path   string
	text   []byte
	hidden []string
}

// readTrailer reads the trailer name from fsys. A missing trailer is not an
// error: it returns nil.
func readTrailer(fsys fs.FS, name string) (*trailer, error) {
	src, err := fs.ReadFile(fsys, name)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read trailer %s: %w", name, err)
	}
	text, hidden := stripHideMarkers(src)
	return &trailer{path: name, text: text, hidden: hidden}, nil
}

// stripHideMarkers blanks every hide marker in src and returns the hidden
// names in order. Each marker becomes an empty line, so line numbers in
// the trailer are unchanged.
func stripHideMarkers(src []byte) ([]byte, []string) {
	var hidden []string
	for _, m := range hideMarker.FindAllSubmatch(src, -1) {
		hidden = append(hidden, string(m[1]))
	}
	if hidden == nil {
		return src, nil
	}
	return hideMarker.ReplaceAll(src, nil), hidden
}
