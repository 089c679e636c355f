// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package poppler implements the PDF side of extraction: a DocumentReader
// whose pages are rendered to SVG by poppler's cairo backend, and a
// VectorSurfaceWriter that commits each page's SVG file atomically.
//
// Page geometry is read in-process with pdfcpu. Rendering runs one of the
// poppler command line renderers, both of which draw through poppler's
// printing path:
//
//	pdftocairo -svg -origpagesizes -f N -l N in.pdf out.svg
//	pdf2svg in.pdf out.svg N
package poppler

import (
	"context"
	"fmt"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/gw31415/sxp/internal/convert"
	"github.com/gw31415/sxp/internal/pdfio"
	"github.com/gw31415/sxp/internal/toolchain"
	"github.com/gw31415/sxp/pkg/types"
)

// argsFunc builds a renderer's argument list for one 1-based page.
type argsFunc func(pdfPath, svgPath string, page int) []string

var rendererArgs = map[types.PageRenderer]argsFunc{
	types.RendererPdftocairo: func(pdfPath, svgPath string, page int) []string {
		n := strconv.Itoa(page)
		return []string{"-svg", "-origpagesizes", "-f", n, "-l", n, pdfPath, svgPath}
	},
	types.RendererPdf2svg: func(pdfPath, svgPath string, page int) []string {
		return []string{pdfPath, svgPath, strconv.Itoa(page)}
	},
}

// Reader implements convert.DocumentReader.
type Reader struct {
	tool toolchain.Tool
	args argsFunc
	log  logrus.FieldLogger
}

// NewReader returns a Reader that renders pages with t. The tool's name
// selects the argument convention, so it must be "pdftocairo" or
// "pdf2svg".
func NewReader(t toolchain.Tool, log logrus.FieldLogger) (*Reader, error) {
	args, ok := rendererArgs[types.PageRenderer(t.Name())]
	if !ok {
		return nil, fmt.Errorf("unsupported page renderer %q", t.Name())
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Reader{tool: t, args: args, log: log}, nil
}

// Tools returns the page renderer tools built from cfg, in preference
// order.
func Tools(cfg types.ToolsConfig, log logrus.FieldLogger) []toolchain.Tool {
	return []toolchain.Tool{
		toolchain.New(string(types.RendererPdftocairo), cfg.Pdftocairo, log),
		toolchain.New(string(types.RendererPdf2svg), cfg.Pdf2svg, log),
	}
}

// SelectTool picks the renderer named by choice from candidates, or the
// first installed one when choice is empty.
func SelectTool(candidates []toolchain.Tool, choice types.PageRenderer) (toolchain.Tool, error) {
	if choice == "" {
		return toolchain.Detect(candidates...)
	}
	for _, c := range candidates {
		if c.Name() == string(choice) {
			return toolchain.Require(c)
		}
	}
	return nil, fmt.Errorf("unknown page renderer %q (want %s or %s)",
		choice, types.RendererPdftocairo, types.RendererPdf2svg)
}

// Open reads the page sizes of the PDF at path.
func (r *Reader) Open(_ context.Context, path string) (convert.Document, error) {
	sizes, err := pdfio.PageSizesFile(path)
	if err != nil {
		return nil, err
	}
	r.log.WithFields(logrus.Fields{
		"file":     path,
		"pages":    len(sizes),
		"renderer": r.tool.Name(),
	}).Debug("read page geometry")
	return &Document{path: path, sizes: sizes, reader: r}, nil
}

// Document implements convert.Document.
type Document struct {
	path   string
	sizes  []types.Size
	reader *Reader
}

func (d *Document) PageCount() int { return len(d.sizes) }

func (d *Document) Page(index int) (convert.Page, error) {
	if index < 0 || index >= len(d.sizes) {
		return nil, fmt.Errorf("page index %d out of range [0,%d)", index, len(d.sizes))
	}
	return &Page{doc: d, index: index}, nil
}

// Inspect returns the page inventory of the PDF at path without
// requiring a renderer.
func Inspect(path string) (types.DocumentInfo, error) {
	sizes, err := pdfio.PageSizesFile(path)
	if err != nil {
		return types.DocumentInfo{}, err
	}
	return newInfo(path, sizes), nil
}

func newInfo(path string, sizes []types.Size) types.DocumentInfo {
	info := types.DocumentInfo{
		Path:      path,
		PageCount: len(sizes),
		Pages:     make([]types.PageInfo, len(sizes)),
	}
	for i, s := range sizes {
		info.Pages[i] = types.PageInfo{Number: i + 1, Size: s}
	}
	return info
}

// Close releases the document. Nothing is held open between calls.
func (d *Document) Close() error { return nil }

// Page implements convert.Page.
type Page struct {
	doc   *Document
	index int
}

func (p *Page) Size() types.Size { return p.doc.sizes[p.index] }

// RenderForPrinting runs the page renderer with the surface's target as
// the output file.
func (p *Page) RenderForPrinting(ctx context.Context, s convert.VectorSurface) error {
	r := p.doc.reader
	args := r.args(p.doc.path, s.Target(), p.index+1)
	return r.tool.Run(ctx, args...)
}
