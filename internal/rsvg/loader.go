// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package rsvg implements the SVG side of merging: an SVGLoader that reads
// each document's intrinsic size, renders with librsvg's rsvg-convert, and
// a PDFSurfaceWriter that collects the rendered pages into one PDF.
package rsvg

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/antchfx/xmlquery"
	"github.com/sirupsen/logrus"

	"github.com/gw31415/sxp/internal/convert"
	"github.com/gw31415/sxp/internal/toolchain"
	"github.com/gw31415/sxp/pkg/types"
)

// ToolName is the librsvg renderer's binary name.
const ToolName = "rsvg-convert"

// Loader implements convert.SVGLoader.
type Loader struct {
	tool toolchain.Tool
	dpi  float64
	log  logrus.FieldLogger
}

// NewLoader returns a Loader that renders with t and resolves physical
// units at dpi. A dpi of zero or less uses DefaultDPI.
func NewLoader(t toolchain.Tool, dpi float64, log logrus.FieldLogger) *Loader {
	if dpi <= 0 {
		dpi = DefaultDPI
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Loader{tool: t, dpi: dpi, log: log}
}

// Load parses the SVG at path. The whole file must be well-formed XML with
// an <svg> root element.
func (l *Loader) Load(_ context.Context, path string) (convert.SVGDocument, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	doc, err := xmlquery.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parsing XML: %w", err)
	}
	root := rootElement(doc)
	if root == nil {
		return nil, fmt.Errorf("no root element")
	}
	if root.Data != "svg" {
		return nil, fmt.Errorf("root element is <%s>, not <svg>", root.Data)
	}

	d := &Document{path: path, loader: l}
	d.size, d.sized = l.intrinsicSize(root)
	return d, nil
}

// intrinsicSize resolves the root's width and height to pixels. Missing
// attributes default to 100%, so either one missing or given as a
// percentage leaves the size undetermined.
func (l *Loader) intrinsicSize(root *xmlquery.Node) (types.Size, bool) {
	w, ok := l.attrPixels(root, "width")
	if !ok {
		return types.Size{}, false
	}
	h, ok := l.attrPixels(root, "height")
	if !ok {
		return types.Size{}, false
	}
	return types.Size{Width: w, Height: h}, true
}

func (l *Loader) attrPixels(n *xmlquery.Node, name string) (float64, bool) {
	raw := n.SelectAttr(name)
	if raw == "" {
		return 0, false
	}
	ln, err := parseLength(raw)
	if err != nil {
		l.log.WithField("attr", name).WithError(err).Debug("ignoring unparsable SVG length")
		return 0, false
	}
	px, ok := ln.pixels(l.dpi)
	if !ok || px < 0 {
		return 0, false
	}
	return px, true
}

func rootElement(doc *xmlquery.Node) *xmlquery.Node {
	for n := doc.FirstChild; n != nil; n = n.NextSibling {
		if n.Type == xmlquery.ElementNode {
			return n
		}
	}
	return nil
}

// Document implements convert.SVGDocument.
type Document struct {
	path   string
	size   types.Size
	sized  bool
	loader *Loader
}

func (d *Document) IntrinsicSize() (types.Size, bool) {
	return d.size, d.sized
}

// Render runs rsvg-convert to draw the document into the surface's current
// page, scaled to the viewport. Pages must start at the origin; an empty
// viewport draws nothing and leaves a blank page.
func (d *Document) Render(ctx context.Context, s convert.PDFSurface, viewport types.Rect) error {
	if viewport.X != 0 || viewport.Y != 0 {
		return fmt.Errorf("viewport must start at the origin, got (%g,%g)", viewport.X, viewport.Y)
	}
	if viewport.Size().IsZero() {
		return nil
	}
	return d.loader.tool.Run(ctx, d.renderArgs(viewport.Size(), s.Target())...)
}

// renderArgs asks for a page of exactly size points. Lengths carry units so
// the page and the drawing agree whatever DPI is used for the content.
func (d *Document) renderArgs(size types.Size, out string) []string {
	w := points(size.Width)
	h := points(size.Height)
	dpi := strconv.FormatFloat(d.loader.dpi, 'f', -1, 64)
	return []string{
		"--format=pdf",
		"--dpi-x=" + dpi,
		"--dpi-y=" + dpi,
		"--width=" + w,
		"--height=" + h,
		"--page-width=" + w,
		"--page-height=" + h,
		"--output=" + out,
		d.path,
	}
}

func points(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "pt"
}
