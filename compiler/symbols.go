package compiler

import (
	"maps"
	"slices"
)

// HoleType is the inferred type of a hole.
type HoleType uint8

// Hole types. The zero HoleType is invalid.
const (
	HTMLFragment   HoleType = iota + 1 // a sequence of document nodes
	StringValue                        // a plain string, escaped on render
	HTMLFunction                       // string arguments to an HTML fragment
	StringFunction                     // string arguments to a string
)

func (t HoleType) String() string {
	switch t {
	case HTMLFragment:
		return "HTML fragment"
	case StringValue:
		return "string"
	case HTMLFunction:
		return "HTML function"
	case StringFunction:
		return "string function"
	}
	return "invalid hole type"
}

// IsFunction reports whether t takes arguments.
func (t HoleType) IsFunction() bool { return t == HTMLFunction || t == StringFunction }

// IsString reports whether t produces a string rather than HTML.
func (t HoleType) IsString() bool { return t == StringValue || t == StringFunction }

// Unify returns the type a hole has when it is used both as a and as b.
// A string can stand in for an HTML fragment, so mixed value usages unify
// to StringValue and mixed function usages to StringFunction. Value and
// function usages never unify.
func Unify(a, b HoleType) (HoleType, bool) {
	if a.IsFunction() != b.IsFunction() {
		return 0, false
	}
	if a == b {
		return a, true
	}
	if a.IsFunction() {
		return StringFunction, true
	}
	return StringValue, true
}

// SymbolTable maps hole names to their inferred types.
type SymbolTable struct {
	types map[string]HoleType
}

// NewSymbolTable returns an empty table.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{types: make(map[string]HoleType)}
}

// Register records one usage of name. The first usage inserts the type;
// later usages unify with it. A value/function clash is an
// *IncompatibleHoleUsage naming both usages.
func (st *SymbolTable) Register(name string, t HoleType) error {
	existing, ok := st.types[name]
	if !ok {
		st.types[name] = t
		return nil
	}
	unified, ok := Unify(existing, t)
	if !ok {
		return &IncompatibleHoleUsage{Name: name, Existing: existing, Proposed: t}
	}
	st.types[name] = unified
	return nil
}

// Lookup returns the type of name.
func (st *SymbolTable) Lookup(name string) (HoleType, bool) {
	t, ok := st.types[name]
	return t, ok
}

// Names returns the hole names in alphabetical order.
func (st *SymbolTable) Names() []string {
	names := make([]string, 0, len(st.types))
	for name := range st.types {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Len returns the number of holes.
func (st *SymbolTable) Len() int { return len(st.types) }

// Map returns a copy of the table as a map.
func (st *SymbolTable) Map() map[string]HoleType {
	return maps.Clone(st.types)
}
