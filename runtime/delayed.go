// Package runtime holds the support code imported by generated templates.
package runtime

// Delayed is the stored state of one hole: either a concrete value or a
// pending transformation paired with the delayed value it overrides.
//
// T is the hole's Go type and S is the generated state type the
// transformation reads from.
type Delayed[T, S any] struct {
	value     T
	transform func(S) T
	prev      *Delayed[T, S]
	done      bool
}

// Value returns a concrete delayed value.
func Value[T, S any](v T) *Delayed[T, S] {
	return &Delayed[T, S]{value: v, done: true}
}

// Pending returns a delayed value that computes f against a state in which
// the hole still holds prev.
func Pending[T, S any](f func(S) T, prev *Delayed[T, S]) *Delayed[T, S] {
	return &Delayed[T, S]{transform: f, prev: prev}
}

// IsPending reports whether d has a transformation that has not run yet.
func (d *Delayed[T, S]) IsPending() bool {
	return d != nil && !d.done
}

// Previous returns the delayed value d overrides, or nil for a concrete value.
func (d *Delayed[T, S]) Previous() *Delayed[T, S] {
	if d == nil {
		return nil
	}
	return d.prev
}

// Force returns the value of d. For a pending value, rebind must return a
// snapshot of the state in which the hole is bound to the given previous
// delayed value; the transformation runs against that snapshot, so a
// transformation that reads its own hole sees the value it overrides instead
// of recursing forever. The result is memoized in d: the transformation runs
// at most once per Delayed.
//
// A nil Delayed forces to the zero value of T.
func (d *Delayed[T, S]) Force(rebind func(prev *Delayed[T, S]) S) T {
	if d == nil {
		var zero T
		return zero
	}
	if !d.done {
		d.value = d.transform(rebind(d.prev))
		d.done = true
	}
	return d.value
}

// Fresh returns a copy of the chain ending in d in which no transformation
// has run yet. Render passes force fresh copies, which scopes memoization to
// a single pass. Concrete values are immutable and shared.
func (d *Delayed[T, S]) Fresh() *Delayed[T, S] {
	if d == nil || d.transform == nil {
		return d
	}
	return &Delayed[T, S]{transform: d.transform, prev: d.prev.Fresh()}
}
