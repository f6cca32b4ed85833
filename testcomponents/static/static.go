// Package static holds a component compiled from a template without holes.
package static

//go:generate go run github.com/vcrobe/mltemplate/cmd/mltemplate -in static.ml.html
