package db

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chriserin/gherk/internal/parser"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	sqlDB, err := Open(filepath.Join(t.TempDir(), "gherk.db"))
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })
	return NewStore(sqlDB)
}

func loginFeature() *parser.Feature {
	return &parser.Feature{
		Annotations: []string{"auth"},
		Description: "Login",
		Background: &parser.Scenario{
			Description:  "",
			Steps:        []parser.Step{{Keyword: "Given", Text: "a registered user"}},
			IsBackground: true,
		},
		Scenarios: []parser.Scenario{
			{
				Annotations: []string{"smoke"},
				Description: "User logs in",
				Steps: []parser.Step{
					{Keyword: "When", Text: "they log in"},
					{Keyword: "Then", Text: "they see the dashboard"},
				},
				Index: 0,
			},
			{
				Description: "User fails login",
				Steps:       []parser.Step{{Keyword: "When", Text: "they use a bad password"}},
				Index:       1,
			},
		},
	}
}

func TestStore_SaveAndList(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	runID, err := s.StartRun(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, runID)

	created, err := s.SaveFeature(ctx, runID, "features/login.feature", loginFeature())
	require.NoError(t, err)
	assert.True(t, created)

	rows, err := s.ListScenarios(ctx, "")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "features/login.feature", rows[0].FilePath)
	assert.Equal(t, "Login", rows[0].Feature)
	assert.Equal(t, "User logs in", rows[0].Description)
	assert.Equal(t, []string{"smoke"}, rows[0].Annotations)
	assert.Equal(t, 2, rows[0].Steps)
	assert.Equal(t, 1, rows[1].Index)
	assert.Equal(t, 1, rows[1].Steps)

	var steps int
	require.NoError(t, s.db.QueryRow(`SELECT COUNT(*) FROM steps`).Scan(&steps))
	assert.Equal(t, 4, steps)
}

func TestStore_SaveReplacesExistingTree(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)
	runID, err := s.StartRun(ctx)
	require.NoError(t, err)

	_, err = s.SaveFeature(ctx, runID, "features/login.feature", loginFeature())
	require.NoError(t, err)

	f := loginFeature()
	f.Background = nil
	f.Scenarios = f.Scenarios[:1]
	created, err := s.SaveFeature(ctx, runID, "features/login.feature", f)
	require.NoError(t, err)
	assert.False(t, created)

	var scenarios, steps, features int
	require.NoError(t, s.db.QueryRow(`SELECT COUNT(*) FROM scenarios`).Scan(&scenarios))
	require.NoError(t, s.db.QueryRow(`SELECT COUNT(*) FROM steps`).Scan(&steps))
	require.NoError(t, s.db.QueryRow(`SELECT COUNT(*) FROM features`).Scan(&features))
	assert.Equal(t, 1, scenarios)
	assert.Equal(t, 2, steps)
	assert.Equal(t, 1, features)
}

func TestStore_ListFiltersByTag(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)
	runID, err := s.StartRun(ctx)
	require.NoError(t, err)
	_, err = s.SaveFeature(ctx, runID, "features/login.feature", loginFeature())
	require.NoError(t, err)

	rows, err := s.ListScenarios(ctx, "@smoke")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "User logs in", rows[0].Description)

	rows, err = s.ListScenarios(ctx, "auth")
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	rows, err = s.ListScenarios(ctx, "missing")
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestStore_PruneRemovesStaleFeatures(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	first, err := s.StartRun(ctx)
	require.NoError(t, err)
	_, err = s.SaveFeature(ctx, first, "features/login.feature", loginFeature())
	require.NoError(t, err)
	_, err = s.SaveFeature(ctx, first, "features/old.feature", &parser.Feature{Description: "Old"})
	require.NoError(t, err)

	second, err := s.StartRun(ctx)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
	_, err = s.SaveFeature(ctx, second, "features/login.feature", loginFeature())
	require.NoError(t, err)

	removed, err := s.Prune(ctx, second)
	require.NoError(t, err)
	assert.Equal(t, []string{"features/old.feature"}, removed)

	removed, err = s.Prune(ctx, second)
	require.NoError(t, err)
	assert.Empty(t, removed)
}

func TestStore_FinishRun(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)
	runID, err := s.StartRun(ctx)
	require.NoError(t, err)
	require.NoError(t, s.FinishRun(ctx, runID, 3))

	var count int
	var finished sql.NullString
	require.NoError(t, s.db.QueryRow(`SELECT file_count, finished_at FROM sync_runs WHERE id = ?`, runID).Scan(&count, &finished))
	assert.Equal(t, 3, count)
	assert.True(t, finished.Valid)
}
