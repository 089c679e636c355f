// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// Extractor writes every page of a PDF to its own SVG file.
type Extractor struct {
	Reader   DocumentReader
	Surfaces VectorSurfaceWriter
	Log      logrus.FieldLogger
}

// Canonicalize returns the absolute, symlink-free form of path. It fails
// if path does not exist.
func Canonicalize(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", path, err)
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", path, err)
	}
	return resolved, nil
}

// Extract renders each page of the PDF at path into "{prefix}-{n}.svg",
// in page order. Each filename is written to w as a line once its file is
// on disk. The first failure stops the run; files written before it are
// kept and returned alongside the error.
func (e *Extractor) Extract(ctx context.Context, path, prefix string, w io.Writer) ([]string, error) {
	log := e.logger()

	abs, err := Canonicalize(path)
	if err != nil {
		return nil, err
	}

	doc, err := e.Reader.Open(ctx, abs)
	if err != nil {
		return nil, fmt.Errorf("opening document %s: %w", abs, err)
	}
	defer doc.Close()

	count := doc.PageCount()
	width := LabelWidth(count)
	log.WithFields(logrus.Fields{"file": abs, "pages": count}).Debug("opened document")

	names := make([]string, 0, count)
	for i := 0; i < count; i++ {
		if err := ctx.Err(); err != nil {
			return names, err
		}

		name, err := e.extractPage(ctx, doc, i, pageName(prefix, i, width))
		if err != nil {
			return names, err
		}
		if err := writeLine(w, name); err != nil {
			return names, err
		}
		names = append(names, name)
	}
	return names, nil
}

func (e *Extractor) extractPage(ctx context.Context, doc Document, index int, name string) (string, error) {
	page, err := doc.Page(index)
	if err != nil {
		return "", fmt.Errorf("reading page %d: %w", index+1, err)
	}
	size := page.Size()

	e.logger().WithFields(logrus.Fields{
		"page":   index + 1,
		"width":  size.Width,
		"height": size.Height,
		"file":   name,
	}).Debug("rendering page")

	surface, err := e.Surfaces.Create(name, size)
	if err != nil {
		return "", fmt.Errorf("creating SVG surface %s: %w", name, err)
	}
	if err := page.RenderForPrinting(ctx, surface); err != nil {
		_ = surface.Discard()
		return "", fmt.Errorf("rendering page %d: %w", index+1, err)
	}
	if err := surface.ShowPage(); err != nil {
		_ = surface.Discard()
		return "", fmt.Errorf("writing %s: %w", name, err)
	}
	return name, nil
}

func (e *Extractor) logger() logrus.FieldLogger {
	if e.Log == nil {
		return discardLogger
	}
	return e.Log
}
