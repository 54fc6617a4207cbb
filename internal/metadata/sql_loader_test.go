package metadata

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupSQLCatalogue(t *testing.T, db *sql.DB) {
	t.Helper()
	_, err := db.Exec(Schema)
	require.NoError(t, err)

	_, err = db.Exec(`INSERT INTO relations (name, tuples) VALUES ('A', 100), ('B', 150)`)
	require.NoError(t, err)
	// Inserted out of order; position decides attribute order
	_, err = db.Exec(`INSERT INTO attributes (relation, name, distinct_values, position) VALUES
		('B', 'b3', 5, 3),
		('A', 'a2', 15, 2),
		('B', 'b1', 150, 1),
		('A', 'a1', 100, 1),
		('B', 'b2', 100, 2)`)
	require.NoError(t, err)
}

func TestLoadSQL(t *testing.T) {
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	defer db.Close()
	db.SetMaxOpenConns(1)

	setupSQLCatalogue(t, db)

	cat, err := LoadSQL(context.Background(), db)
	require.NoError(t, err)

	assert.Equal(t, []string{"A", "B"}, cat.Names())
	a, err := cat.Relation("A")
	require.NoError(t, err)
	assert.Equal(t, "A (100) [a1:100, a2:15]", a.Render())
	b, err := cat.Relation("B")
	require.NoError(t, err)
	assert.Equal(t, "B (150) [b1:150, b2:100, b3:5]", b.Render())
}

func TestLoadSQL_InvalidStatistics(t *testing.T) {
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	defer db.Close()
	db.SetMaxOpenConns(1)

	setupSQLCatalogue(t, db)
	_, err = db.Exec(`INSERT INTO attributes (relation, name, distinct_values, position) VALUES ('A', 'a3', 500, 3)`)
	require.NoError(t, err)

	_, err = LoadSQL(context.Background(), db)
	assert.True(t, errors.Is(err, ErrInvalidStatistics))
}

func TestLoadSQL_MissingTables(t *testing.T) {
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	defer db.Close()
	db.SetMaxOpenConns(1)

	_, err = LoadSQL(context.Background(), db)
	assert.Error(t, err)
}

func TestOpenSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalogue.db")

	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	setupSQLCatalogue(t, db)
	require.NoError(t, db.Close())

	cat, err := OpenSQLite(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 2, cat.Len())
}
