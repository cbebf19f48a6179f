package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chriserin/gherk/internal/config"
	"github.com/chriserin/gherk/internal/db"
)

func inTempDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	orig, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(orig) })
	return dir
}

func runInit(t *testing.T) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, RunInit(&buf, config.Default()))
	return buf.String()
}

func TestInit_CreatesFeaturesDirectory(t *testing.T) {
	dir := inTempDir(t)
	out := runInit(t)

	info, err := os.Stat(filepath.Join(dir, "features"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.Contains(t, out, "features/ created")
}

func TestInit_FeaturesDirectoryAlreadyExists(t *testing.T) {
	dir := inTempDir(t)
	require.NoError(t, os.Mkdir(filepath.Join(dir, "features"), 0o755))

	out := runInit(t)

	assert.Contains(t, out, "features/ already exists")
}

func TestInit_InitializesSQLiteDatabase(t *testing.T) {
	dir := inTempDir(t)
	out := runInit(t)

	dbPath := filepath.Join(dir, "features", "gherk.db")
	_, err := os.Stat(dbPath)
	require.NoError(t, err)
	assert.Contains(t, out, "features/gherk.db created")

	sqlDB, err := db.Open(dbPath)
	require.NoError(t, err)
	defer sqlDB.Close()

	var version int
	require.NoError(t, sqlDB.QueryRow(`SELECT version FROM schema_version`).Scan(&version))
	assert.Equal(t, len(db.All), version)
}

func TestInit_IsIdempotent(t *testing.T) {
	inTempDir(t)
	runInit(t)
	out := runInit(t)

	assert.Contains(t, out, "features/ already exists")
	assert.Contains(t, out, "features/gherk.db already exists")
	assert.Contains(t, out, "features/gherk.db already in .gitignore")
}

func TestInit_CreatesGitignore(t *testing.T) {
	inTempDir(t)
	out := runInit(t)

	data, err := os.ReadFile(".gitignore")
	require.NoError(t, err)
	assert.Equal(t, "features/gherk.db\n", string(data))
	assert.Contains(t, out, ".gitignore created")
}

func TestInit_AppendsToExistingGitignore(t *testing.T) {
	inTempDir(t)
	require.NoError(t, os.WriteFile(".gitignore", []byte("node_modules"), 0o644))

	out := runInit(t)

	data, err := os.ReadFile(".gitignore")
	require.NoError(t, err)
	assert.Equal(t, "node_modules\nfeatures/gherk.db\n", string(data))
	assert.Contains(t, out, "features/gherk.db added to .gitignore")
}
