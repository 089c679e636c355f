// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert drives PDF-to-SVG extraction and SVG-to-PDF merging.
//
// The rendering itself is delegated to four collaborator roles defined
// here as interfaces: a DocumentReader that opens PDFs, a
// VectorSurfaceWriter that produces one SVG file per page, an SVGLoader
// that reads and renders SVG documents, and a PDFSurfaceWriter that
// assembles pages into a PDF. The poppler and rsvg packages provide the
// production implementations.
package convert

import (
	"context"
	"fmt"
	"io"

	"github.com/gw31415/sxp/pkg/types"
)

// DocumentReader opens PDF documents.
type DocumentReader interface {
	// Open reads the PDF at path, which is already absolute.
	Open(ctx context.Context, path string) (Document, error)
}

// Document is an open PDF document.
type Document interface {
	// PageCount returns the number of pages.
	PageCount() int

	// Page returns the page at the zero-based index.
	Page(index int) (Page, error)

	Close() error
}

// Page is a single page of a Document.
type Page interface {
	// Size returns the page's intrinsic width and height in points.
	Size() types.Size

	// RenderForPrinting draws the page onto s using print rather than
	// screen-preview semantics for optional content.
	RenderForPrinting(ctx context.Context, s VectorSurface) error
}

// VectorSurfaceWriter creates single-page SVG surfaces.
type VectorSurfaceWriter interface {
	// Create returns a surface of the given size that writes to name once
	// its page is shown.
	Create(name string, size types.Size) (VectorSurface, error)
}

// VectorSurface is an SVG drawing surface holding exactly one page.
type VectorSurface interface {
	// Target returns the file the renderer draws into. It is not the
	// final name; ShowPage moves it there.
	Target() string

	Size() types.Size

	// ShowPage finalizes the page and commits the SVG file to disk.
	ShowPage() error

	// Discard drops the surface without committing anything. It is a
	// no-op after ShowPage.
	Discard() error
}

// SVGLoader reads SVG documents.
type SVGLoader interface {
	Load(ctx context.Context, path string) (SVGDocument, error)
}

// SVGDocument is a parsed SVG ready to be rendered.
type SVGDocument interface {
	// IntrinsicSize returns the document size in CSS pixels. ok is false
	// when the size cannot be determined (e.g. percentage lengths without
	// a viewBox).
	IntrinsicSize() (size types.Size, ok bool)

	// Render draws the whole document onto the current page of s, fitted
	// into viewport.
	Render(ctx context.Context, s PDFSurface, viewport types.Rect) error
}

// PDFSurfaceWriter creates multi-page PDF surfaces.
type PDFSurfaceWriter interface {
	// Create returns a surface that writes the finished document to path.
	Create(path string, size types.Size) (PDFSurface, error)
}

// PDFSurface is a PDF drawing surface whose page size may change between
// pages.
type PDFSurface interface {
	Size() types.Size

	// SetSize changes the size of the current and following pages.
	SetSize(size types.Size) error

	// Target returns the file the current page is drawn into.
	Target() string

	// ShowPage commits the current page at the current size and starts a
	// new one.
	ShowPage() error

	// Finish writes the document. A surface finished before any page was
	// shown holds one blank page of the current size.
	Finish() error
}

// flusher is implemented by buffered writers such as *bufio.Writer.
type flusher interface {
	Flush() error
}

// writeLine writes line followed by a newline to w and flushes w when it
// is buffered, so callers see progress as each file completes.
func writeLine(w io.Writer, line string) error {
	if _, err := fmt.Fprintln(w, line); err != nil {
		return fmt.Errorf("writing progress: %w", err)
	}
	if f, ok := w.(flusher); ok {
		if err := f.Flush(); err != nil {
			return fmt.Errorf("flushing progress: %w", err)
		}
	}
	return nil
}
