package runtime

import "golang.org/x/net/html"

// HTMLFunc is the Go type of a hole used as a function returning HTML, as in
// <div ml:content="menu main">.
type HTMLFunc func(args []string) []*html.Node

// StringFunc is the Go type of a hole used as a function returning a string,
// as in ${link home "Home page"}.
type StringFunc func(args []string) string

// EmptyHTML is the default value of HTML function holes.
func EmptyHTML([]string) []*html.Node { return nil }

// EmptyString is the default value of string function holes.
func EmptyString([]string) string { return "" }

// CallHTML invokes f with args. A nil f renders nothing.
func CallHTML(f HTMLFunc, args ...string) []*html.Node {
	if f == nil {
		return nil
	}
	return f(args)
}

// CallString invokes f with args. A nil f yields the empty string.
func CallString(f StringFunc, args ...string) string {
	if f == nil {
		return ""
	}
	return f(args)
}
