// Package card holds a component compiled from card.ml.html.
package card

//go:generate go run github.com/vcrobe/mltemplate/cmd/mltemplate -in card.ml.html
