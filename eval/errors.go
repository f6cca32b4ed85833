package eval

import (
	"fmt"
	"strings"
)

// UnboundHole reports a hole that the template uses and the bindings do not
// provide. It is fatal to the render.
type UnboundHole struct {
	Name string
}

func (e *UnboundHole) Error() string {
	return fmt.Sprintf("hole %q is not bound", e.Name)
}

// CallbackError reports a function binding that failed or panicked. It is
// not fatal: the render goes on with an inline marker in place of the value.
type CallbackError struct {
	Hole string
	Args []string
	Err  error
}

func (e *CallbackError) Error() string {
	if len(e.Args) == 0 {
		return fmt.Sprintf("hole %q: %v", e.Hole, e.Err)
	}
	return fmt.Sprintf("hole %q (%s): %v", e.Hole, strings.Join(e.Args, " "), e.Err)
}

func (e *CallbackError) Unwrap() error { return e.Err }
