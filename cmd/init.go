package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/chriserin/gherk/internal/config"
	"github.com/chriserin/gherk/internal/db"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize gherk in the current directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunInit(cmd.OutOrStdout(), cfg)
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func RunInit(w io.Writer, c *config.Config) error {
	// features directory
	_, err := os.Stat(c.FeaturesDir)
	dirExists := err == nil
	if err := os.MkdirAll(c.FeaturesDir, 0o755); err != nil {
		return fmt.Errorf("creating %s directory: %w", c.FeaturesDir, err)
	}
	if dirExists {
		fmt.Fprintf(w, "%s/ already exists\n", c.FeaturesDir)
	} else {
		fmt.Fprintf(w, "%s/ created\n", c.FeaturesDir)
	}

	// database
	if err := os.MkdirAll(filepath.Dir(c.Database), 0o755); err != nil {
		return fmt.Errorf("creating database directory: %w", err)
	}
	_, err = os.Stat(c.Database)
	dbExists := err == nil
	sqlDB, err := db.Open(c.Database)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	sqlDB.Close()
	if dbExists {
		fmt.Fprintf(w, "%s already exists\n", c.Database)
	} else {
		fmt.Fprintf(w, "%s created\n", c.Database)
	}

	// gitignore
	msgs, err := ensureGitignore(filepath.ToSlash(c.Database))
	if err != nil {
		return fmt.Errorf("updating .gitignore: %w", err)
	}
	for _, msg := range msgs {
		fmt.Fprintln(w, msg)
	}

	return nil
}

func ensureGitignore(entry string) ([]string, error) {
	data, err := os.ReadFile(".gitignore")
	if os.IsNotExist(err) {
		if err := os.WriteFile(".gitignore", []byte(entry+"\n"), 0o644); err != nil {
			return nil, err
		}
		return []string{".gitignore created", entry + " added to .gitignore"}, nil
	}
	if err != nil {
		return nil, err
	}

	for _, line := range strings.Split(string(data), "\n") {
		if strings.TrimSpace(line) == entry {
			return []string{entry + " already in .gitignore"}, nil
		}
	}

	content := string(data)
	if len(content) > 0 && !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	content += entry + "\n"

	if err := os.WriteFile(".gitignore", []byte(content), 0o644); err != nil {
		return nil, err
	}
	return []string{entry + " added to .gitignore"}, nil
}
