// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/gw31415/sxp/pkg/types"
)

// fakeReader implements DocumentReader over an in-memory list of page
// sizes. Rendering writes a tiny SVG carrying the page size so tests can
// inspect what reached disk.
type fakeReader struct {
	pages     []types.Size
	openErr   error
	renderErr map[int]error // zero-based page index -> error
	opened    []string
	closed    bool
}

func (f *fakeReader) Open(_ context.Context, path string) (Document, error) {
	f.opened = append(f.opened, path)
	if f.openErr != nil {
		return nil, f.openErr
	}
	return &fakeDocument{reader: f}, nil
}

type fakeDocument struct {
	reader *fakeReader
}

func (d *fakeDocument) PageCount() int { return len(d.reader.pages) }

func (d *fakeDocument) Page(index int) (Page, error) {
	if index < 0 || index >= len(d.reader.pages) {
		return nil, fmt.Errorf("page %d out of range", index)
	}
	return &fakePage{reader: d.reader, index: index}, nil
}

func (d *fakeDocument) Close() error {
	d.reader.closed = true
	return nil
}

type fakePage struct {
	reader *fakeReader
	index  int
}

func (p *fakePage) Size() types.Size { return p.reader.pages[p.index] }

func (p *fakePage) RenderForPrinting(_ context.Context, s VectorSurface) error {
	// Leave something behind in the target so Discard has work to do.
	svg := fmt.Sprintf(`<svg width="%g" height="%g"/>`, s.Size().Width, s.Size().Height)
	if err := os.WriteFile(s.Target(), []byte(svg), 0o644); err != nil {
		return err
	}
	if err, ok := p.reader.renderErr[p.index]; ok {
		return err
	}
	return nil
}

// fakeSVGSurfaces implements VectorSurfaceWriter with temp-then-rename
// semantics like the production writer.
type fakeSVGSurfaces struct {
	created   []string
	createErr error
}

func (f *fakeSVGSurfaces) Create(name string, size types.Size) (VectorSurface, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = append(f.created, name)
	return &fakeSVGSurface{name: name, size: size}, nil
}

type fakeSVGSurface struct {
	name string
	size types.Size
	done bool
}

func (s *fakeSVGSurface) Target() string   { return s.name + ".part" }
func (s *fakeSVGSurface) Size() types.Size { return s.size }

func (s *fakeSVGSurface) ShowPage() error {
	s.done = true
	return os.Rename(s.Target(), s.name)
}

func (s *fakeSVGSurface) Discard() error {
	if s.done {
		return nil
	}
	err := os.Remove(s.Target())
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// fakeSVG is one entry of fakeLoader.
type fakeSVG struct {
	size      types.Size
	sized     bool
	loadErr   error
	renderErr error
}

// fakeLoader implements SVGLoader from a fixed table. Paths missing from
// the table are read from disk and their width/height parsed, which lets a
// round-trip test feed extract output back into merge.
type fakeLoader struct {
	docs   map[string]fakeSVG
	loaded []string
}

func (f *fakeLoader) Load(_ context.Context, path string) (SVGDocument, error) {
	f.loaded = append(f.loaded, path)
	if d, ok := f.docs[path]; ok {
		if d.loadErr != nil {
			return nil, d.loadErr
		}
		return &fakeSVGDocument{svg: d}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var w, h float64
	if _, err := fmt.Sscanf(strings.TrimSpace(string(data)), `<svg width="%g" height="%g"/>`, &w, &h); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &fakeSVGDocument{svg: fakeSVG{size: types.Size{Width: w, Height: h}, sized: true}}, nil
}

type fakeSVGDocument struct {
	svg fakeSVG
}

func (d *fakeSVGDocument) IntrinsicSize() (types.Size, bool) {
	return d.svg.size, d.svg.sized
}

func (d *fakeSVGDocument) Render(_ context.Context, s PDFSurface, viewport types.Rect) error {
	if d.svg.renderErr != nil {
		return d.svg.renderErr
	}
	fs := s.(*fakePDFSurface)
	fs.drawn = append(fs.drawn, viewport)
	return nil
}

// fakePDFSurfaces implements PDFSurfaceWriter and keeps every surface it
// creates for inspection.
type fakePDFSurfaces struct {
	surfaces  []*fakePDFSurface
	createErr error
}

func (f *fakePDFSurfaces) Create(path string, size types.Size) (PDFSurface, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	s := &fakePDFSurface{path: path, size: size}
	f.surfaces = append(f.surfaces, s)
	return s, nil
}

type fakePDFSurface struct {
	path     string
	size     types.Size
	drawn    []types.Rect
	pages    []types.Size
	finished bool
}

func (s *fakePDFSurface) Size() types.Size { return s.size }

func (s *fakePDFSurface) SetSize(size types.Size) error {
	s.size = size
	return nil
}

func (s *fakePDFSurface) Target() string { return s.path + ".page" }

func (s *fakePDFSurface) ShowPage() error {
	s.pages = append(s.pages, s.size)
	return nil
}

func (s *fakePDFSurface) Finish() error {
	s.finished = true
	if len(s.pages) == 0 {
		s.pages = append(s.pages, s.size)
	}
	var b strings.Builder
	for _, p := range s.pages {
		fmt.Fprintf(&b, "%s\n", p)
	}
	return os.WriteFile(s.path, []byte(b.String()), 0o644)
}
