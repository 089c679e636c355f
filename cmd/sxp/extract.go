package main

import (
	"bufio"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gw31415/sxp/internal/convert"
	"github.com/gw31415/sxp/internal/poppler"
)

var extractCmd = &cobra.Command{
	Use:   "extract <path>",
	Short: "Extract a single PDF file to SVG files",
	Long: `Extract renders every page of a PDF to its own SVG file named
{prefix}-{n}.svg, where n is the 1-based page number zero-padded to the
width of the page count. Each filename is printed as soon as it is
written. Pages are rendered in print mode.`,
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeFiles("pdf"),
	RunE:              runExtract,
}

func init() {
	extractCmd.Flags().String("prefix", "output", "the prefix string of the output files")
	extractCmd.Flags().String("renderer", "", "page renderer: pdftocairo or pdf2svg (default: first one installed)")
	_ = viper.BindPFlag("extract.prefix", extractCmd.Flags().Lookup("prefix"))
	_ = viper.BindPFlag("extract.renderer", extractCmd.Flags().Lookup("renderer"))
	_ = extractCmd.RegisterFlagCompletionFunc("renderer", cobra.FixedCompletions(
		[]string{"pdftocairo", "pdf2svg"}, cobra.ShellCompDirectiveNoFileComp))

	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	// Report a bad path before a missing renderer.
	if _, err := convert.Canonicalize(args[0]); err != nil {
		return err
	}
	tool, err := poppler.SelectTool(poppler.Tools(cfg.Tools, log), cfg.Extract.Renderer)
	if err != nil {
		return err
	}
	reader, err := poppler.NewReader(tool, log)
	if err != nil {
		return err
	}

	e := &convert.Extractor{
		Reader:   reader,
		Surfaces: poppler.SurfaceWriter{Log: log},
		Log:      log,
	}

	out := bufio.NewWriter(cmd.OutOrStdout())
	defer out.Flush()

	_, err = e.Extract(cmd.Context(), args[0], cfg.Extract.Prefix, out)
	return err
}

// completeFiles completes positional arguments with files of the given
// extensions.
func completeFiles(exts ...string) cobra.CompletionFunc {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]cobra.Completion, cobra.ShellCompDirective) {
		return exts, cobra.ShellCompDirectiveFilterFileExt
	}
}
