package console

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestErrorPlainOutput(t *testing.T) {
	var buf bytes.Buffer
	Error(&buf, errors.New("syntax error in page.html:2: unterminated placeholder\n     1 | <p>\n>    2 | ${title\n"))

	out := buf.String()
	if strings.Contains(out, "\x1b[") {
		t.Fatalf("Expected no color codes when not writing to a terminal, got %q", out)
	}
	if !strings.Contains(out, ">    2 | ${title") {
		t.Fatalf("Expected the excerpt in the output, got %q", out)
	}
}

func TestNewLoggerLevels(t *testing.T) {
	testCases := []struct {
		name      string
		verbose   bool
		json      bool
		wantDebug bool
		wantJSON  bool
	}{
		{"text", false, false, false, false},
		{"verbose text", true, false, true, false},
		{"json", false, true, false, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := NewLogger(&buf, tc.verbose, tc.json)
			logger.Debug("debug message")
			logger.Info("info message")

			out := buf.String()
			if got := strings.Contains(out, "debug message"); got != tc.wantDebug {
				t.Errorf("Expected debug output %v, got %q", tc.wantDebug, out)
			}
			if got := strings.HasPrefix(out, "{"); got != tc.wantJSON {
				t.Errorf("Expected JSON output %v, got %q", tc.wantJSON, out)
			}
		})
	}
}
