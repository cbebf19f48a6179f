package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/chriserin/gherk/internal/config"
	"github.com/chriserin/gherk/internal/db"
	"github.com/chriserin/gherk/internal/discover"
	"github.com/chriserin/gherk/internal/ui"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Parse the features directory and store its scenarios",
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunSync(cmd.Context(), cmd.OutOrStdout(), cfg)
	},
}

func init() {
	rootCmd.AddCommand(syncCmd)
}

func RunSync(ctx context.Context, w io.Writer, c *config.Config) error {
	if _, err := os.Stat(c.FeaturesDir); os.IsNotExist(err) {
		return fmt.Errorf("run `gherk init` first")
	}

	sqlDB, err := db.Open(c.Database)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer sqlDB.Close()
	store := db.NewStore(sqlDB)

	loader, err := discover.NewLoader(c.Workers, slog.Default())
	if err != nil {
		return err
	}
	files, err := loader.Load(ctx, c.FeaturesDir)
	if err != nil {
		return err
	}

	runID, err := store.StartRun(ctx)
	if err != nil {
		return err
	}
	log := slog.Default().With("run_id", runID)

	for _, f := range files {
		created, err := store.SaveFeature(ctx, runID, f.Path, f.Feature)
		if err != nil {
			return err
		}
		if created {
			ui.NewLine(w, f.Path)
		} else {
			ui.UpdLine(w, f.Path)
		}
	}

	removed, err := store.Prune(ctx, runID)
	if err != nil {
		return err
	}
	for _, path := range removed {
		ui.GoneLine(w, path)
	}

	if err := store.FinishRun(ctx, runID, len(files)); err != nil {
		return err
	}
	log.Info("sync finished", "files", len(files), "removed", len(removed))
	ui.SummaryLine(w, len(files))
	return nil
}
