package persistence

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationURL(t *testing.T) {
	url, err := migrationURL("postgres://u:p@db:5432/store?sslmode=disable")
	require.NoError(t, err)
	assert.Equal(t, "pgx5://u:p@db:5432/store?sslmode=disable", url)

	url, err = migrationURL("postgresql://db/store")
	require.NoError(t, err)
	assert.Equal(t, "pgx5://db/store", url)

	_, err = migrationURL("host=db dbname=store")
	assert.Error(t, err)
}

func TestEmbeddedMigrationsArePaired(t *testing.T) {
	ups, err := fs.Glob(migrationFiles, "migrations/*.up.sql")
	require.NoError(t, err)
	downs, err := fs.Glob(migrationFiles, "migrations/*.down.sql")
	require.NoError(t, err)

	assert.NotEmpty(t, ups)
	assert.Len(t, downs, len(ups))
}
