// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pdfio

import (
	"fmt"
	"io"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	pdftypes "github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"github.com/gw31415/sxp/pkg/types"
)

// WriteBlank writes a PDF with one empty page per size to w. An empty
// sizes slice is an error; a PDF must have at least one page. Negative
// dimensions are clamped to zero.
func WriteBlank(w io.Writer, sizes []types.Size) error {
	if len(sizes) == 0 {
		return fmt.Errorf("blank PDF needs at least one page")
	}

	first := clamp(sizes[0])
	ctx, err := pdfcpu.CreateContextWithXRefTable(Configuration(), &pdftypes.Dim{Width: first.Width, Height: first.Height})
	if err != nil {
		return fmt.Errorf("creating PDF context: %w", err)
	}

	root, err := ctx.Pages()
	if err != nil {
		return fmt.Errorf("locating page tree: %w", err)
	}
	tree, err := ctx.DereferenceDict(*root)
	if err != nil {
		return fmt.Errorf("locating page tree: %w", err)
	}

	kids := make(pdftypes.Array, 0, len(sizes))
	for i, s := range sizes {
		s = clamp(s)
		page, err := ctx.EmptyPage(root, pdftypes.RectForDim(s.Width, s.Height))
		if err != nil {
			return fmt.Errorf("adding page %d: %w", i+1, err)
		}
		kids = append(kids, *page)
	}
	tree.Update("Kids", kids)
	tree.Update("Count", pdftypes.Integer(len(sizes)))
	ctx.PageCount = len(sizes)

	return api.WriteContext(ctx, w)
}

// WriteBlankFile writes a blank PDF to path, replacing any existing file.
func WriteBlankFile(path string, sizes []types.Size) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := WriteBlank(f, sizes); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}

func clamp(s types.Size) types.Size {
	return types.Size{Width: max(s.Width, 0), Height: max(s.Height, 0)}
}
