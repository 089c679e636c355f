package main

import (
	"bufio"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gw31415/sxp/internal/convert"
	"github.com/gw31415/sxp/internal/rsvg"
	"github.com/gw31415/sxp/internal/toolchain"
)

var mergeCmd = &cobra.Command{
	Use:   "merge <files...> <output.pdf>",
	Short: "Merge SVG files into a single PDF",
	Long: `Merge renders each SVG file onto its own page of a new PDF, in the
order given. The last argument is the output PDF. Each page takes the
intrinsic size of its SVG; an SVG without one (percentage or missing
width/height) becomes an empty page. Each source path is printed once its
page is committed.

With only the output argument, the PDF gets a single blank page.`,
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return convert.ErrNoDestination
		}
		return nil
	},
	ValidArgsFunction: completeFiles("svg", "pdf"),
	RunE:              runMerge,
}

func init() {
	mergeCmd.Flags().Float64("dpi", 0, "resolution for physical SVG units such as mm and in (default 96)")
	_ = viper.BindPFlag("merge.dpi", mergeCmd.Flags().Lookup("dpi"))

	rootCmd.AddCommand(mergeCmd)
}

func runMerge(cmd *cobra.Command, args []string) error {
	tool := toolchain.New(rsvg.ToolName, cfg.Tools.RsvgConvert, log)
	if len(args) > 1 {
		// Only the blank-page case can do without the renderer.
		if _, err := toolchain.Require(tool); err != nil {
			return err
		}
	}

	m := &convert.Merger{
		Loader:   rsvg.NewLoader(tool, cfg.Merge.DPI, log),
		Surfaces: rsvg.SurfaceWriter{Log: log},
		Log:      log,
	}

	out := bufio.NewWriter(cmd.OutOrStdout())
	defer out.Flush()

	_, err := m.Merge(cmd.Context(), args, out)
	return err
}
