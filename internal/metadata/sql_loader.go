package metadata

import (
	"context"
	"database/sql"

	"github.com/cockroachdb/errors"

	_ "modernc.org/sqlite"
)

// Schema creates the tables LoadSQL reads from.
const Schema = `
CREATE TABLE IF NOT EXISTS relations (
	name   TEXT PRIMARY KEY,
	tuples INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS attributes (
	relation        TEXT NOT NULL REFERENCES relations(name),
	name            TEXT NOT NULL,
	distinct_values INTEGER NOT NULL,
	position        INTEGER NOT NULL,
	PRIMARY KEY (relation, name)
);`

// LoadSQL reads a catalogue from the relations and attributes tables of db.
// Attributes keep the order given by their position column.
func LoadSQL(ctx context.Context, db *sql.DB) (*Catalogue, error) {
	cat := NewCatalogue()
	if err := loadRelations(ctx, db, cat); err != nil {
		return nil, err
	}
	if err := loadAttributes(ctx, db, cat); err != nil {
		return nil, err
	}
	return cat, nil
}

func loadRelations(ctx context.Context, db *sql.DB, cat *Catalogue) error {
	rows, err := db.QueryContext(ctx, `SELECT name, tuples FROM relations ORDER BY name`)
	if err != nil {
		return errors.Wrap(err, "query relations")
	}
	defer rows.Close()

	for rows.Next() {
		var name string
		var tuples int
		if err := rows.Scan(&name, &tuples); err != nil {
			return errors.Wrap(err, "scan relation")
		}
		if err := cat.CreateRelation(name, tuples); err != nil {
			return err
		}
	}
	return errors.Wrap(rows.Err(), "read relations")
}

func loadAttributes(ctx context.Context, db *sql.DB, cat *Catalogue) error {
	rows, err := db.QueryContext(ctx, `SELECT relation, name, distinct_values FROM attributes ORDER BY relation, position`)
	if err != nil {
		return errors.Wrap(err, "query attributes")
	}
	defer rows.Close()

	for rows.Next() {
		var rel, name string
		var distinct int
		if err := rows.Scan(&rel, &name, &distinct); err != nil {
			return errors.Wrap(err, "scan attribute")
		}
		if err := cat.CreateAttribute(rel, name, distinct); err != nil {
			return err
		}
	}
	return errors.Wrap(rows.Err(), "read attributes")
}

// OpenSQLite loads the catalogue stored in the SQLite database at path.
func OpenSQLite(ctx context.Context, path string) (*Catalogue, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrapf(err, "open sqlite %s", path)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return nil, errors.Wrapf(err, "open sqlite %s", path)
	}
	return LoadSQL(ctx, db)
}
