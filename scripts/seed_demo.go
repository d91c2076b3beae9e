package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"shareit/internal/database"
	"shareit/internal/models"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// SeedConfig описывает демо-данные: пользователи и их вещи.
type SeedConfig struct {
	Users []struct {
		Name  string `yaml:"name"`
		Email string `yaml:"email"`
		Items []struct {
			Name        string `yaml:"name"`
			Description string `yaml:"description"`
			Available   bool   `yaml:"available"`
		} `yaml:"items"`
	} `yaml:"users"`
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	var (
		seedPath = flag.String("seed", "configs/seed.yaml", "path to seed.yaml")
		dbPath   = flag.String("db", "./data/shareit.db", "path to sqlite db")
	)
	flag.Parse()

	data, err := os.ReadFile(*seedPath)
	if err != nil {
		return fmt.Errorf("read seed: %w", err)
	}
	var cfg SeedConfig
	if err = yaml.Unmarshal(data, &cfg); err != nil {
		return fmt.Errorf("parse seed: %w", err)
	}
	if len(cfg.Users) == 0 {
		return fmt.Errorf("no users in yaml")
	}

	db, err := database.NewDB(*dbPath, &logger)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	usersCreated := 0
	itemsCreated := 0
	for _, u := range cfg.Users {
		if u.Name == "" || u.Email == "" {
			continue
		}
		user := models.User{Name: u.Name, Email: u.Email}
		if err = db.CreateUser(ctx, &user); err != nil {
			if errors.Is(err, database.ErrEmailConflict) {
				logger.Warn().Str("email", u.Email).Msg("user already seeded, skipping")
				continue
			}
			return fmt.Errorf("create user %s: %w", u.Email, err)
		}
		usersCreated++

		for _, it := range u.Items {
			if it.Name == "" {
				continue
			}
			item := models.Item{
				Name:        it.Name,
				Description: it.Description,
				Available:   it.Available,
				OwnerID:     user.ID,
			}
			if err = db.CreateItem(ctx, &item); err != nil {
				return fmt.Errorf("create item %s: %w", it.Name, err)
			}
			itemsCreated++
		}
	}

	fmt.Printf("done: users=%d items=%d\n", usersCreated, itemsCreated)
	return nil
}
