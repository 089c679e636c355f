package types

// PageRenderer identifies the command line tool that renders PDF pages.
type PageRenderer string

const (
	RendererPdftocairo PageRenderer = "pdftocairo"
	RendererPdf2svg    PageRenderer = "pdf2svg"
)

// ToolsConfig holds the executables used for rendering. Each value is a
// bare name looked up on PATH or an absolute path.
type ToolsConfig struct {
	// Pdftocairo is the poppler-utils renderer (default "pdftocairo").
	Pdftocairo string `json:"pdftocairo" yaml:"pdftocairo" mapstructure:"pdftocairo"`

	// Pdf2svg is the standalone poppler/cairo renderer (default "pdf2svg").
	Pdf2svg string `json:"pdf2svg" yaml:"pdf2svg" mapstructure:"pdf2svg"`

	// RsvgConvert is the librsvg command line renderer (default "rsvg-convert").
	RsvgConvert string `json:"rsvg_convert" yaml:"rsvg_convert" mapstructure:"rsvg_convert"`
}

// ExtractConfig holds settings for the extract command.
type ExtractConfig struct {
	// Prefix is the output filename prefix (default "output").
	Prefix string `json:"prefix" yaml:"prefix" mapstructure:"prefix"`

	// Renderer selects the page renderer. Empty means pdftocairo with a
	// fallback to pdf2svg when pdftocairo is not installed.
	Renderer PageRenderer `json:"renderer,omitempty" yaml:"renderer,omitempty" mapstructure:"renderer"`
}

// MergeConfig holds settings for the merge command.
type MergeConfig struct {
	// DPI is the resolution used to resolve physical SVG units (in, mm,
	// pt) to pixels (default 96).
	DPI float64 `json:"dpi" yaml:"dpi" mapstructure:"dpi"`
}

// Config groups all settings read from sxp.yaml, SXP_* environment
// variables and flags.
type Config struct {
	// LogLevel is a logrus level name (default "warn").
	LogLevel string `json:"log_level" yaml:"log_level" mapstructure:"log_level"`

	Tools   ToolsConfig   `json:"tools" yaml:"tools" mapstructure:"tools"`
	Extract ExtractConfig `json:"extract" yaml:"extract" mapstructure:"extract"`
	Merge   MergeConfig   `json:"merge" yaml:"merge" mapstructure:"merge"`
}
