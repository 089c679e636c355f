// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// PageInfo describes one page of a PDF document.
type PageInfo struct {
	// Number is the 1-based page number.
	Number int `json:"number" yaml:"number"`

	Size `yaml:",inline"`
}

// DocumentInfo is the page inventory of a PDF document.
type DocumentInfo struct {
	// Path is the canonical path the document was read from.
	Path string `json:"path" yaml:"path"`

	// PageCount is the number of pages in the document.
	PageCount int `json:"page_count" yaml:"page_count"`

	Pages []PageInfo `json:"pages" yaml:"pages"`
}
