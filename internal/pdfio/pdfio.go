// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pdfio reads page geometry from PDF files and assembles
// single-page PDFs into one document. PDF parsing and writing is done by
// pdfcpu; this package only adapts it to sxp's types.
package pdfio

import (
	"fmt"
	"io"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/gw31415/sxp/pkg/types"
)

func init() {
	// pdfcpu otherwise installs a config directory under the user's home
	// on first use.
	api.DisableConfigDir()
}

// Configuration returns the pdfcpu configuration used for all reads and
// writes. Validation is relaxed so PDFs from real-world producers that
// stray from ISO 32000 still open.
func Configuration() *model.Configuration {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return conf
}

// PageSizes returns the MediaBox size of every page in the PDF read from
// rs, in page order.
func PageSizes(rs io.ReadSeeker) ([]types.Size, error) {
	dims, err := api.PageDims(rs, Configuration())
	if err != nil {
		return nil, err
	}
	sizes := make([]types.Size, len(dims))
	for i, d := range dims {
		sizes[i] = types.Size{Width: d.Width, Height: d.Height}
	}
	return sizes, nil
}

// PageSizesFile is PageSizes for the PDF at path.
func PageSizesFile(path string) ([]types.Size, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return PageSizes(f)
}

// MergeFiles concatenates the pages of inFiles, in order, into a new
// document at outFile.
func MergeFiles(inFiles []string, outFile string) error {
	if len(inFiles) == 0 {
		return fmt.Errorf("merging into %s: no input files", outFile)
	}
	if len(inFiles) == 1 {
		// A single page needs no merge.
		return copyFile(inFiles[0], outFile)
	}
	if err := api.MergeCreateFile(inFiles, outFile, false, Configuration()); err != nil {
		return fmt.Errorf("merging into %s: %w", outFile, err)
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("copying %s to %s: %w", src, dst, err)
	}
	return out.Close()
}
