// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package rsvg

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// DefaultDPI is the resolution librsvg assumes for physical units.
const DefaultDPI = 96.0

// Font-relative units resolve against the CSS medium font size.
const (
	emPixels = 16.0
	exPixels = emPixels / 2
)

// length is an SVG length such as "210mm" or "640".
type length struct {
	value float64
	unit  string
}

// parseLength parses an SVG <length>. An empty unit means user units
// (pixels).
func parseLength(s string) (length, error) {
	s = strings.TrimSpace(s)
	end := len(s)
	for end > 0 {
		r := rune(s[end-1])
		if !unicode.IsLetter(r) && r != '%' {
			break
		}
		end--
	}
	num, unit := s[:end], strings.ToLower(s[end:])
	v, err := strconv.ParseFloat(strings.TrimSpace(num), 64)
	if err != nil {
		return length{}, fmt.Errorf("invalid length %q", s)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return length{}, fmt.Errorf("invalid length %q", s)
	}
	return length{value: v, unit: unit}, nil
}

// pixels converts l to pixels at dpi. ok is false for percentages, which
// depend on a viewport the document does not define by itself.
func (l length) pixels(dpi float64) (px float64, ok bool) {
	switch l.unit {
	case "", "px":
		return l.value, true
	case "in":
		return l.value * dpi, true
	case "cm":
		return l.value * dpi / 2.54, true
	case "mm":
		return l.value * dpi / 25.4, true
	case "q":
		return l.value * dpi / 101.6, true
	case "pt":
		return l.value * dpi / 72, true
	case "pc":
		return l.value * dpi / 6, true
	case "em":
		return l.value * emPixels, true
	case "ex":
		return l.value * exPixels, true
	default:
		return 0, false
	}
}
