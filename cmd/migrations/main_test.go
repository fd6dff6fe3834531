package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeMigrationFiles(t *testing.T, names ...string) string {
	t.Helper()

	dir := t.TempDir()
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("SELECT 1;"), 0o644))
	}
	return dir
}

func TestMatchMigrationsByFragment(t *testing.T) {
	dir := writeMigrationFiles(t,
		"000001_init.up.sql",
		"000001_init.down.sql",
		"000002_indexes.up.sql",
		"notes.txt",
	)

	files, err := matchMigrations(dir, "init.up")
	require.NoError(t, err)
	assert.Equal(t, []string{"000001_init.up.sql"}, files)
}

func TestMatchMigrationsAllSelectsOrderedUps(t *testing.T) {
	dir := writeMigrationFiles(t,
		"000002_indexes.up.sql",
		"000001_init.up.sql",
		"000001_init.down.sql",
	)

	files, err := matchMigrations(dir, "all")
	require.NoError(t, err)
	assert.Equal(t, []string{"000001_init.up.sql", "000002_indexes.up.sql"}, files)
}

func TestMatchMigrationsNoMatch(t *testing.T) {
	dir := writeMigrationFiles(t, "000001_init.up.sql")

	_, err := matchMigrations(dir, "does-not-exist")
	assert.Error(t, err)
}
