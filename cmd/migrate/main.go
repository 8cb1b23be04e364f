// Command migrate applies or rolls back the SQL migrations embedded in the binary.
//
//	migrate            # apply every pending migration
//	migrate -down -n 1 # roll back the latest migration
package main

import (
	"flag"
	"fmt"
	"os"

	"movie-catalog/internal/config"
	"movie-catalog/internal/database"
	"movie-catalog/internal/logging"

	migrate "github.com/rubenv/sql-migrate"
	"github.com/sirupsen/logrus"
)

func main() {
	down := flag.Bool("down", false, "roll back instead of applying")
	max := flag.Int("n", 0, "maximum number of migrations to run (0 = all)")
	flag.Parse()

	wd, _ := os.Getwd()
	_, envErr := config.LoadEnvFiles(wd)

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}
	log := logging.New(cfg.IsDevelopment())
	if envErr != nil {
		log.Debugf("No environment file loaded: %v", envErr)
	}

	if err := run(cfg, log, *down, *max); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}

// run owns the database connection so it is closed on every path.
func run(cfg *config.Config, log *logrus.Logger, down bool, max int) error {
	// The migrations own the schema here.
	cfg.Database.AutoMigrate = false

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Errorf("Error closing database connection: %v", err)
		}
	}()

	direction := migrate.Up
	if down {
		direction = migrate.Down
	}

	n, err := db.Migrate(direction, max)
	if err != nil {
		return fmt.Errorf("migration failed after %d step(s): %w", n, err)
	}

	log.WithFields(logrus.Fields{
		"down":  down,
		"steps": n,
	}).Info("Migrations finished")
	return nil
}
