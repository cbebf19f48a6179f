package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/chriserin/gherk/internal/config"
	"github.com/chriserin/gherk/internal/discover"
	"github.com/chriserin/gherk/internal/lint"
	"github.com/chriserin/gherk/internal/parser"
	"github.com/chriserin/gherk/internal/ui"
)

var errLintFailed = errors.New("lint found errors")

var lintCmd = &cobra.Command{
	Use:   "lint [path...]",
	Short: "Check .feature files against the full Gherkin grammar",
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunLint(cmd.OutOrStdout(), cfg, args)
	},
}

func init() {
	rootCmd.AddCommand(lintCmd)
}

func RunLint(w io.Writer, c *config.Config, paths []string) error {
	if len(paths) == 0 {
		paths = []string{c.FeaturesDir}
	}
	files, err := discover.Collect(paths)
	if err != nil {
		return err
	}

	var total int
	failed := false
	for _, path := range files {
		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}

		problems := lint.Check(content)
		if _, err := parser.ParseBytes(content); err != nil {
			problems = append(problems, lint.Problem{Severity: lint.SeverityError, Message: err.Error()})
		}
		slog.Debug("linted file", "path", path, "problems", len(problems))

		for _, p := range problems {
			ui.ProblemLine(w, path, p)
		}
		total += len(problems)
		failed = failed || lint.HasErrors(problems)
	}

	fmt.Fprintf(w, "%d problems in %d files\n", total, len(files))
	if failed {
		return errLintFailed
	}
	return nil
}
