package repository

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/mongodb"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// RunMigrations applies the command migrations to the configured database.
// The migrate driver takes its target database from the URI path, while the
// rest of the app uses the configured name; the path is rewritten so both
// always agree. Otherwise a URI naming another database would leave the
// collection validator where nothing ever writes.
func RunMigrations(mongoURI, database, migrationsPath string) error {
	uri, err := databaseURI(mongoURI, database)
	if err != nil {
		return err
	}

	m, err := migrate.New("file://"+migrationsPath, uri)
	if err != nil {
		return fmt.Errorf("init migrations: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}

// databaseURI replaces the connection string's database path with the given
// name, keeping hosts, credentials and options intact.
func databaseURI(mongoURI, database string) (string, error) {
	u, err := url.Parse(mongoURI)
	if err != nil {
		return "", fmt.Errorf("parse mongodb uri: %w", err)
	}
	u.Path = "/" + database
	return u.String(), nil
}
