package metadata

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
)

const (
	DriverYAML   = "yaml"
	DriverSQLite = "sqlite"
)

// Open loads a catalogue with the named driver. An empty driver is chosen
// from the file extension: .db, .sqlite and .sqlite3 are SQLite databases,
// anything else is YAML.
func Open(ctx context.Context, driver, path string) (*Catalogue, error) {
	if driver == "" {
		driver = driverFor(path)
	}
	switch driver {
	case DriverYAML:
		return LoadFile(path)
	case DriverSQLite:
		return OpenSQLite(ctx, path)
	default:
		return nil, errors.Newf("unknown catalogue driver %q", driver)
	}
}

func driverFor(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return DriverSQLite
	default:
		return DriverYAML
	}
}
