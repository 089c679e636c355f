// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the sxp CLI, which converts a PDF
// to per-page SVG files and merges SVG files back into a PDF.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gw31415/sxp/internal/rsvg"
	"github.com/gw31415/sxp/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	// cfg holds the merged configuration, loaded before each command runs.
	cfg types.Config

	// log writes diagnostics to stderr; stdout is reserved for command
	// output.
	log = logrus.New()
)

// rootCmd is the base command for the sxp CLI.
var rootCmd = &cobra.Command{
	Use:   "sxp",
	Short: "Convert a PDF from/to SVG files using Cairo/Poppler",
	Long: `sxp converts between PDF and SVG. extract writes every page of a PDF to
its own SVG file; merge assembles SVG files into one multi-page PDF, one
page per file, each sized to its SVG.

Rendering is done by poppler (pdftocairo or pdf2svg) and librsvg
(rsvg-convert), which must be installed on PATH.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return loadConfig()
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./sxp.yaml or ~/.config/sxp/sxp.yaml)")
	rootCmd.PersistentFlags().String("log-level", "warn", "diagnostic log level: debug, info, warn, error")
	_ = viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))

	// complete replaces cobra's completion command.
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	log.SetOutput(os.Stderr)
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("sxp")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "sxp"))
		}
	}

	viper.SetDefault("log_level", "warn")
	viper.SetDefault("tools.pdftocairo", string(types.RendererPdftocairo))
	viper.SetDefault("tools.pdf2svg", string(types.RendererPdf2svg))
	viper.SetDefault("tools.rsvg_convert", rsvg.ToolName)
	viper.SetDefault("extract.prefix", "output")
	viper.SetDefault("extract.renderer", "")
	viper.SetDefault("merge.dpi", rsvg.DefaultDPI)

	viper.SetEnvPrefix("SXP")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Fprintf(os.Stderr, "warning: reading config: %v\n", err)
		}
	}
}

// loadConfig decodes viper's merged settings into cfg and applies the log
// level.
func loadConfig() error {
	if err := viper.Unmarshal(&cfg); err != nil {
		return fmt.Errorf("decoding configuration: %w", err)
	}
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}
	log.SetLevel(level)
	if used := viper.ConfigFileUsed(); used != "" {
		log.WithField("file", used).Info("using config file")
	}
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
