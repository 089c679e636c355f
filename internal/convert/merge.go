// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/gw31415/sxp/pkg/types"
)

// ErrNoDestination is returned by Merge when it is given no paths at all.
var ErrNoDestination = errors.New("no output PDF given: merge needs at least one path")

// Merger assembles SVG files into a multi-page PDF.
type Merger struct {
	Loader   SVGLoader
	Surfaces PDFSurfaceWriter
	Log      logrus.FieldLogger
}

// Merge treats the last element of paths as the output PDF and every
// element before it as an SVG source. Each source becomes one page sized
// to the SVG's intrinsic size, and its path is written to w as a line once
// the page is committed. It returns the number of pages committed.
//
// A single path yields a PDF with one blank page. On error the surface is
// still finished, so pages committed before the failing source are kept.
func (m *Merger) Merge(ctx context.Context, paths []string, w io.Writer) (pages int, err error) {
	if len(paths) == 0 {
		return 0, ErrNoDestination
	}
	target := paths[len(paths)-1]
	sources := paths[:len(paths)-1]
	log := m.logger()

	surface, err := m.Surfaces.Create(target, types.Size{})
	if err != nil {
		return 0, fmt.Errorf("creating PDF surface %s: %w", target, err)
	}
	defer func() {
		if ferr := surface.Finish(); ferr != nil && err == nil {
			err = fmt.Errorf("writing %s: %w", target, ferr)
		}
	}()

	for _, src := range sources {
		if err := ctx.Err(); err != nil {
			return pages, err
		}
		if err := m.mergeFile(ctx, surface, src); err != nil {
			return pages, err
		}
		pages++
		if err := writeLine(w, src); err != nil {
			return pages, err
		}
	}

	log.WithFields(logrus.Fields{"file": target, "pages": pages}).Debug("finishing PDF")
	return pages, nil
}

func (m *Merger) mergeFile(ctx context.Context, surface PDFSurface, src string) error {
	doc, err := m.Loader.Load(ctx, src)
	if err != nil {
		return fmt.Errorf("loading %s: %w", src, err)
	}

	size, ok := doc.IntrinsicSize()
	if !ok {
		m.logger().WithField("file", src).Warn("SVG has no intrinsic size, using an empty page")
		size = types.Size{}
	}
	m.logger().WithFields(logrus.Fields{
		"file":   src,
		"width":  size.Width,
		"height": size.Height,
	}).Debug("rendering SVG")

	if err := surface.SetSize(size); err != nil {
		return fmt.Errorf("resizing page for %s: %w", src, err)
	}
	if err := doc.Render(ctx, surface, types.RectOf(size)); err != nil {
		return fmt.Errorf("rendering %s: %w", src, err)
	}
	if err := surface.ShowPage(); err != nil {
		return fmt.Errorf("committing page for %s: %w", src, err)
	}
	return nil
}

func (m *Merger) logger() logrus.FieldLogger {
	if m.Log == nil {
		return discardLogger
	}
	return m.Log
}

var discardLogger = func() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}()
