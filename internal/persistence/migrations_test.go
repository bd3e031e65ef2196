package persistence

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListMigrationsSortsAndKeepsOnlySQL(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"002_create_lead_activity.sql", "001_create_leads.sql", "README.md"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("-- ddl"), 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "archive"), 0o755))

	files, err := listMigrations(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"001_create_leads.sql", "002_create_lead_activity.sql"}, files)
}

func TestListMigrationsMissingDir(t *testing.T) {
	_, err := listMigrations(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}
