// Command seed loads the demo catalog and, with -email, a demo API user.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"movie-catalog/internal/config"
	"movie-catalog/internal/database"
	"movie-catalog/internal/errs"
	"movie-catalog/internal/logging"
	"movie-catalog/internal/repository"
	"movie-catalog/internal/seed"
	"movie-catalog/internal/services"

	"github.com/sirupsen/logrus"
)

func main() {
	email := flag.String("email", "", "create a demo user with this email and print an API token")
	password := flag.String("password", "password", "password of the demo user")
	name := flag.String("name", "Test User", "name of the demo user")
	flag.Parse()

	wd, _ := os.Getwd()
	_, _ = config.LoadEnvFiles(wd)

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}
	log := logging.New(cfg.IsDevelopment())

	if err := run(cfg, log, *name, *email, *password); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}

// run owns the database connection so it is closed on every path.
func run(cfg *config.Config, log *logrus.Logger, name, email, password string) error {
	db, err := database.Connect(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if _, err := seed.Run(ctx, repository.NewMovieRepository(db), repository.NewGenreRepository(db), log); err != nil {
		return fmt.Errorf("seeding failed: %w", err)
	}

	if email == "" {
		return nil
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("cannot issue tokens: %w", err)
	}

	auth := services.NewAuthService(repository.NewUserRepository(db), repository.NewTokenRepository(db), cfg.Auth, log)
	user, err := auth.Register(ctx, name, email, password)
	if errs.Is(err, errs.ECONFLICT) {
		log.WithField("email", email).Info("Demo user already exists")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to create demo user: %w", err)
	}

	issued, err := auth.IssueTokenForUser(ctx, user, "seed")
	if err != nil {
		return fmt.Errorf("failed to issue token: %w", err)
	}
	fmt.Println(issued.Token)
	return nil
}
