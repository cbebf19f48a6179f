package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/chriserin/gherk/internal/config"
	"github.com/chriserin/gherk/internal/db"
	"github.com/chriserin/gherk/internal/ui"
)

var tagFlag string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all catalogued scenarios",
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunList(cmd.Context(), cmd.OutOrStdout(), cfg, tagFlag)
	},
}

func init() {
	listCmd.Flags().StringVar(&tagFlag, "tag", "", "Only show scenarios with this annotation")
	rootCmd.AddCommand(listCmd)
}

func RunList(ctx context.Context, w io.Writer, c *config.Config, tag string) error {
	if _, err := os.Stat(c.Database); os.IsNotExist(err) {
		return fmt.Errorf("run `gherk init` first")
	}

	sqlDB, err := db.Open(c.Database)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer sqlDB.Close()

	rows, err := db.NewStore(sqlDB).ListScenarios(ctx, tag)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return nil
	}

	// Compute column widths
	idWidth, fileWidth := 0, 0
	for _, r := range rows {
		if n := len(fmt.Sprintf("#%d", r.ID)); n > idWidth {
			idWidth = n
		}
		if n := len(filepath.Base(r.FilePath)); n > fileWidth {
			fileWidth = n
		}
	}

	for _, r := range rows {
		ui.ListRow(w, r.ID, filepath.Base(r.FilePath), r.Description, r.Annotations, idWidth, fileWidth)
	}
	return nil
}
