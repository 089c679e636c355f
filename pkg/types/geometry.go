// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "fmt"

// Size is the width and height of a page or drawing surface. Units are
// PDF points for pages read from a PDF and CSS pixels for SVG documents;
// the surfaces treat one unit of either as one unit of output.
type Size struct {
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

// IsZero reports whether the size has no area.
func (s Size) IsZero() bool {
	return s.Width <= 0 || s.Height <= 0
}

func (s Size) String() string {
	return fmt.Sprintf("%gx%g", s.Width, s.Height)
}

// Rect is a drawing viewport with its origin at (X, Y).
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// RectOf returns the viewport spanning (0,0) to (s.Width, s.Height).
func RectOf(s Size) Rect {
	return Rect{Width: s.Width, Height: s.Height}
}

// Size returns the width and height of the viewport.
func (r Rect) Size() Size {
	return Size{Width: r.Width, Height: r.Height}
}
