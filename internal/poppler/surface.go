// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package poppler

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/gw31415/sxp/internal/convert"
	"github.com/gw31415/sxp/pkg/types"
)

// SurfaceWriter implements convert.VectorSurfaceWriter. Each surface is a
// hidden temporary file in the destination's directory, renamed over the
// destination when the page is shown.
type SurfaceWriter struct {
	// Log receives debug output. Nil means the logrus standard logger.
	Log logrus.FieldLogger
}

// Create reserves a temporary file next to name. The renderer sets the
// SVG page size from the PDF page itself, so size is only recorded and
// logged.
func (w SurfaceWriter) Create(name string, size types.Size) (convert.VectorSurface, error) {
	dir, base := filepath.Split(name)
	if dir == "" {
		dir = "."
	}
	f, err := os.CreateTemp(dir, "."+base+".*.tmp")
	if err != nil {
		return nil, err
	}
	tmp := f.Name()
	if err := f.Chmod(0o644); err != nil {
		f.Close()
		os.Remove(tmp)
		return nil, err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return nil, err
	}
	log := w.Log
	if log == nil {
		log = logrus.StandardLogger()
	}
	log.WithFields(logrus.Fields{
		"file":   name,
		"width":  size.Width,
		"height": size.Height,
	}).Debug("creating SVG surface")
	return &Surface{name: name, tmp: tmp, size: size}, nil
}

// Surface implements convert.VectorSurface.
type Surface struct {
	name  string
	tmp   string
	size  types.Size
	shown bool
}

func (s *Surface) Target() string   { return s.tmp }
func (s *Surface) Size() types.Size { return s.size }

// ShowPage moves the rendered file to its final name. It fails if the
// renderer left the target empty.
func (s *Surface) ShowPage() error {
	if s.shown {
		return fmt.Errorf("page %s already shown", s.name)
	}
	info, err := os.Stat(s.tmp)
	if err != nil {
		return err
	}
	if info.Size() == 0 {
		return fmt.Errorf("renderer produced an empty file for %s", s.name)
	}
	if err := os.Rename(s.tmp, s.name); err != nil {
		return err
	}
	s.shown = true
	return nil
}

// Discard removes the temporary file if the page was never shown.
func (s *Surface) Discard() error {
	if s.shown {
		return nil
	}
	if err := os.Remove(s.tmp); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
