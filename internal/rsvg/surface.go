// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package rsvg

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/gw31415/sxp/internal/convert"
	"github.com/gw31415/sxp/internal/pdfio"
	"github.com/gw31415/sxp/pkg/types"
)

// SurfaceWriter implements convert.PDFSurfaceWriter. Pages are rendered to
// single-page PDFs in a scratch directory and concatenated on Finish.
type SurfaceWriter struct {
	// ScratchDir is the parent of the per-surface scratch directory. Empty
	// means os.TempDir().
	ScratchDir string

	Log logrus.FieldLogger
}

// Create starts a surface that will write to path. Nothing is written to
// path until Finish.
func (w SurfaceWriter) Create(path string, size types.Size) (convert.PDFSurface, error) {
	if err := validSize(size); err != nil {
		return nil, err
	}
	scratch, err := os.MkdirTemp(w.ScratchDir, "sxp-merge-*")
	if err != nil {
		return nil, fmt.Errorf("creating scratch directory: %w", err)
	}
	log := w.Log
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Surface{path: path, scratch: scratch, size: size, log: log}, nil
}

// Surface implements convert.PDFSurface.
type Surface struct {
	path     string
	scratch  string
	size     types.Size
	pages    []string
	finished bool
	log      logrus.FieldLogger
}

func (s *Surface) Size() types.Size { return s.size }

// SetSize changes the size of the current page.
func (s *Surface) SetSize(size types.Size) error {
	if s.finished {
		return errFinished
	}
	if err := validSize(size); err != nil {
		return err
	}
	s.size = size
	return nil
}

// Target returns the scratch file for the current page.
func (s *Surface) Target() string {
	return filepath.Join(s.scratch, fmt.Sprintf("page-%06d.pdf", len(s.pages)+1))
}

// ShowPage commits the current page. A page nothing was rendered into
// becomes a blank page of the current size.
func (s *Surface) ShowPage() error {
	if s.finished {
		return errFinished
	}
	target := s.Target()
	if _, err := os.Stat(target); errors.Is(err, os.ErrNotExist) {
		if err := pdfio.WriteBlankFile(target, []types.Size{s.size}); err != nil {
			return err
		}
	} else if err != nil {
		return err
	}
	s.pages = append(s.pages, target)
	return nil
}

// Finish writes every committed page to the destination and removes the
// scratch directory. With no committed pages the destination gets one
// blank page of the current size.
func (s *Surface) Finish() error {
	if s.finished {
		return errFinished
	}
	defer func() {
		s.finished = true
		if err := os.RemoveAll(s.scratch); err != nil {
			s.log.WithError(err).WithField("dir", s.scratch).Warn("could not remove scratch directory")
		}
	}()

	if len(s.pages) == 0 {
		// Drop whatever a failed render left behind for the first page.
		if err := os.Remove(s.Target()); err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}
		if err := s.ShowPage(); err != nil {
			return err
		}
	}

	s.log.WithFields(logrus.Fields{"file": s.path, "pages": len(s.pages)}).Debug("assembling PDF")
	return pdfio.MergeFiles(s.pages, s.path)
}

var errFinished = errors.New("PDF surface already finished")

func validSize(size types.Size) error {
	for _, v := range []float64{size.Width, size.Height} {
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("invalid page size %s", size)
		}
	}
	return nil
}
