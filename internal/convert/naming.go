// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"fmt"
	"strconv"
)

// LabelWidth returns the number of decimal digits in pageCount, which is
// floor(log10(pageCount))+1. Counts below one yield 1.
func LabelWidth(pageCount int) int {
	if pageCount < 1 {
		return 1
	}
	return len(strconv.Itoa(pageCount))
}

// PageName returns the SVG filename for the zero-based page index of a
// document with pageCount pages: prefix, a dash, the 1-based page number
// zero-padded to LabelWidth(pageCount), and ".svg".
func PageName(prefix string, index, pageCount int) string {
	return pageName(prefix, index, LabelWidth(pageCount))
}

func pageName(prefix string, index, width int) string {
	return fmt.Sprintf("%s-%0*d.svg", prefix, width, index+1)
}
