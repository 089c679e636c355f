// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gw31415/sxp/pkg/types"
)

func TestMerge_TwoSources(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	loader := &fakeLoader{docs: map[string]fakeSVG{
		"a.svg": {size: types.Size{Width: 100, Height: 50}, sized: true},
		"b.svg": {size: types.Size{Width: 640, Height: 480}, sized: true},
	}}
	surfaces := &fakePDFSurfaces{}
	m := &Merger{Loader: loader, Surfaces: surfaces}

	var out bytes.Buffer
	pages, err := m.Merge(context.Background(), []string{"a.svg", "b.svg", "c.pdf"}, &out)
	require.NoError(t, err)

	assert.Equal(t, 2, pages)
	assert.Equal(t, "a.svg\nb.svg\n", out.String())
	assert.Equal(t, []string{"a.svg", "b.svg"}, loader.loaded)

	require.Len(t, surfaces.surfaces, 1)
	s := surfaces.surfaces[0]
	assert.Equal(t, "c.pdf", s.path)
	assert.True(t, s.finished)
	assert.Equal(t, []types.Size{{Width: 100, Height: 50}, {Width: 640, Height: 480}}, s.pages)
	assert.Equal(t, []types.Rect{{Width: 100, Height: 50}, {Width: 640, Height: 480}}, s.drawn,
		"each SVG is rendered into a viewport at the origin spanning its size")
	assert.FileExists(t, filepath.Join(dir, "c.pdf"))
}

func TestMerge_SurfaceStartsEmpty(t *testing.T) {
	surfaces := &fakePDFSurfaces{}
	m := &Merger{Loader: &fakeLoader{}, Surfaces: surfaces}

	_, err := m.Merge(context.Background(), []string{filepath.Join(t.TempDir(), "out.pdf")}, &bytes.Buffer{})
	require.NoError(t, err)

	require.Len(t, surfaces.surfaces, 1)
	assert.Equal(t, types.Size{}, surfaces.surfaces[0].size)
}

func TestMerge_DestinationOnly(t *testing.T) {
	target := filepath.Join(t.TempDir(), "empty.pdf")
	surfaces := &fakePDFSurfaces{}
	m := &Merger{Loader: &fakeLoader{}, Surfaces: surfaces}

	var out bytes.Buffer
	pages, err := m.Merge(context.Background(), []string{target}, &out)
	require.NoError(t, err)

	assert.Equal(t, 0, pages)
	assert.Empty(t, out.String())
	require.Len(t, surfaces.surfaces, 1)
	assert.True(t, surfaces.surfaces[0].finished)
	assert.FileExists(t, target)
}

func TestMerge_NoArguments(t *testing.T) {
	surfaces := &fakePDFSurfaces{}
	m := &Merger{Loader: &fakeLoader{}, Surfaces: surfaces}

	var out bytes.Buffer
	_, err := m.Merge(context.Background(), nil, &out)
	require.ErrorIs(t, err, ErrNoDestination)
	assert.Empty(t, surfaces.surfaces, "no surface may be created")
	assert.Empty(t, out.String())
}

func TestMerge_UnsizedSVG(t *testing.T) {
	loader := &fakeLoader{docs: map[string]fakeSVG{
		"pct.svg": {sized: false},
	}}
	surfaces := &fakePDFSurfaces{}
	m := &Merger{Loader: loader, Surfaces: surfaces}

	pages, err := m.Merge(context.Background(), []string{"pct.svg", filepath.Join(t.TempDir(), "o.pdf")}, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, 1, pages)
	assert.Equal(t, []types.Size{{}}, surfaces.surfaces[0].pages)
}

func TestMerge_LoadErrorKeepsCommittedPages(t *testing.T) {
	loader := &fakeLoader{docs: map[string]fakeSVG{
		"a.svg":   {size: types.Size{Width: 10, Height: 10}, sized: true},
		"bad.svg": {loadErr: errors.New("XML parse error")},
		"c.svg":   {size: types.Size{Width: 20, Height: 20}, sized: true},
	}}
	surfaces := &fakePDFSurfaces{}
	m := &Merger{Loader: loader, Surfaces: surfaces}

	var out bytes.Buffer
	target := filepath.Join(t.TempDir(), "out.pdf")
	pages, err := m.Merge(context.Background(), []string{"a.svg", "bad.svg", "c.svg", target}, &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading bad.svg")
	assert.Contains(t, err.Error(), "XML parse error")

	assert.Equal(t, 1, pages)
	assert.Equal(t, "a.svg\n", out.String())
	assert.Equal(t, []string{"a.svg", "bad.svg"}, loader.loaded, "processing stops at the failing file")

	s := surfaces.surfaces[0]
	assert.True(t, s.finished, "surface is finished even on error")
	assert.Equal(t, []types.Size{{Width: 10, Height: 10}}, s.pages)
	assert.FileExists(t, target)
}

func TestMerge_RenderError(t *testing.T) {
	loader := &fakeLoader{docs: map[string]fakeSVG{
		"a.svg": {size: types.Size{Width: 10, Height: 10}, sized: true, renderErr: errors.New("rsvg failed")},
	}}
	m := &Merger{Loader: loader, Surfaces: &fakePDFSurfaces{}}

	_, err := m.Merge(context.Background(), []string{"a.svg", filepath.Join(t.TempDir(), "o.pdf")}, &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rendering a.svg")
}

func TestMerge_CreateError(t *testing.T) {
	m := &Merger{Loader: &fakeLoader{}, Surfaces: &fakePDFSurfaces{createErr: errors.New("read-only")}}

	_, err := m.Merge(context.Background(), []string{"a.svg", "o.pdf"}, &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "creating PDF surface o.pdf")
}

func TestMerge_FinishErrorReported(t *testing.T) {
	// A destination inside a missing directory makes Finish fail.
	target := filepath.Join(t.TempDir(), "missing", "o.pdf")
	m := &Merger{Loader: &fakeLoader{}, Surfaces: &fakePDFSurfaces{}}

	_, err := m.Merge(context.Background(), []string{target}, &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "writing "+target)
}

func TestRoundTrip_PreservesPageSizes(t *testing.T) {
	pdfPath, dir := setupPDF(t)
	original := []types.Size{letter, {Width: 842, Height: 595}, {Width: 283.46, Height: 425.2}}

	e := &Extractor{Reader: &fakeReader{pages: original}, Surfaces: &fakeSVGSurfaces{}}
	names, err := e.Extract(context.Background(), pdfPath, filepath.Join(dir, "rt"), &bytes.Buffer{})
	require.NoError(t, err)

	surfaces := &fakePDFSurfaces{}
	m := &Merger{Loader: &fakeLoader{}, Surfaces: surfaces}
	pages, err := m.Merge(context.Background(), append(names, filepath.Join(dir, "rt.pdf")), &bytes.Buffer{})
	require.NoError(t, err)

	assert.Equal(t, len(original), pages)
	assert.Equal(t, original, surfaces.surfaces[0].pages)

	_, err = os.Stat(filepath.Join(dir, "rt.pdf"))
	assert.NoError(t, err)
}
