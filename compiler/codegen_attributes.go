package compiler

import (
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

// generateAttributes returns a []html.Attribute literal for attrs, or nil.
func generateAttributes(attrs []Attr) string {
	if len(attrs) == 0 {
		return "nil"
	}
	var b strings.Builder
	b.WriteString("[]html.Attribute{")
	for i, a := range attrs {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString("{")
		if a.Namespace != "" {
			b.WriteString("Namespace: " + strconv.Quote(a.Namespace) + ", ")
		}
		b.WriteString("Key: " + strconv.Quote(a.Key) + ", Val: " + generateStringExpression(a.Value) + "}")
	}
	b.WriteString("}")
	return b.String()
}

// generateRawAttributes is generateAttributes for attributes that are never
// scanned for placeholders, such as doctype identifiers.
func generateRawAttributes(attrs []html.Attribute) string {
	if len(attrs) == 0 {
		return "nil"
	}
	converted := make([]Attr, len(attrs))
	for i, a := range attrs {
		converted[i] = Attr{Namespace: a.Namespace, Key: a.Key, Value: Substitutable{Literal{Text: a.Val}}}
	}
	return generateAttributes(converted)
}
