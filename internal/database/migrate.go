package database

import (
	"embed"
	"fmt"

	migrate "github.com/rubenv/sql-migrate"
	"github.com/sirupsen/logrus"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// MigrationSource returns the embedded PostgreSQL migrations.
func MigrationSource() migrate.MigrationSource {
	return &migrate.EmbedFileSystemMigrationSource{
		FileSystem: migrationsFS,
		Root:       "migrations",
	}
}

// Migrate applies (direction Up) or rolls back (Down, limited to max steps,
// 0 meaning all) the embedded migrations and returns how many ran.
func (d *Database) Migrate(direction migrate.MigrationDirection, max int) (int, error) {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return 0, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	total, err := migrate.ExecMax(sqlDB, "postgres", MigrationSource(), direction, max)
	if err != nil {
		return total, fmt.Errorf("failed to execute migrations: %w", err)
	}

	logrus.WithField("total", total).Info("Applied migrations")
	return total, nil
}
