package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/chriserin/gherk/internal/config"
	"github.com/chriserin/gherk/internal/discover"
	"github.com/chriserin/gherk/internal/parser"
	"github.com/chriserin/gherk/internal/ui"
)

var formatFlag string

var parseCmd = &cobra.Command{
	Use:   "parse [path...]",
	Short: "Parse .feature files and print their scenarios",
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunParse(cmd.Context(), cmd.OutOrStdout(), cfg, formatFlag, args)
	},
}

func init() {
	parseCmd.Flags().StringVar(&formatFlag, "format", "text", "Output format: text, json or yaml")
	rootCmd.AddCommand(parseCmd)
}

type parsedFile struct {
	Path    string          `json:"path" yaml:"path"`
	Feature *parser.Feature `json:"feature" yaml:"feature"`
}

func RunParse(ctx context.Context, w io.Writer, c *config.Config, format string, paths []string) error {
	if len(paths) == 0 {
		paths = []string{c.FeaturesDir}
	}
	switch format {
	case "text", "json", "yaml":
	default:
		return fmt.Errorf("unknown format %q", format)
	}

	loader, err := discover.NewLoader(c.Workers, slog.Default())
	if err != nil {
		return err
	}
	files, err := loader.Load(ctx, paths...)
	if err != nil {
		return err
	}

	out := make([]parsedFile, len(files))
	for i, f := range files {
		out[i] = parsedFile{Path: f.Path, Feature: f.Feature}
	}

	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(out); err != nil {
			return err
		}
		return enc.Close()
	}

	for i, f := range out {
		if i > 0 {
			fmt.Fprintln(w)
		}
		ui.Feature(w, f.Path, f.Feature)
	}
	return nil
}
