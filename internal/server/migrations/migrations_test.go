package migrations

import (
	"context"
	"database/sql"
	"errors"
	"io/fs"
	"testing"

	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stubGoose(t *testing.T, up func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error) *string {
	t.Helper()
	origDialect, origUp := gooseSetDialect, gooseUpContext
	t.Cleanup(func() { gooseSetDialect, gooseUpContext = origDialect, origUp })

	var dialect string
	gooseSetDialect = func(d string) error {
		dialect = d
		return nil
	}
	gooseUpContext = up
	return &dialect
}

func TestUp_RunsFromEmbeddedRoot(t *testing.T) {
	var gotDir string
	dialect := stubGoose(t, func(_ context.Context, _ *sql.DB, dir string, _ ...goose.OptionsFunc) error {
		gotDir = dir
		return nil
	})

	require.NoError(t, Up(context.Background(), nil))
	assert.Equal(t, ".", gotDir)
	assert.Equal(t, "postgres", *dialect)
}

func TestUp_WrapsGooseError(t *testing.T) {
	boom := errors.New("relation exists")
	stubGoose(t, func(context.Context, *sql.DB, string, ...goose.OptionsFunc) error { return boom })

	err := Up(context.Background(), nil)
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "apply migrations")
}

func TestMigrations_AreEmbedded(t *testing.T) {
	names, err := fs.Glob(Migrations, "*.sql")
	require.NoError(t, err)
	assert.Contains(t, names, "00001_create_projects.sql")
}
