package main

import (
	"context"
	"flag"

	"github.com/charmbracelet/log"

	"daycounter/internal/config"
	"daycounter/internal/db"
)

// Collection schema for PocketBase
type Collection struct {
	Name    string   `json:"name"`
	Type    string   `json:"type"`
	Fields  []Field  `json:"fields"`
	Indexes []string `json:"indexes"`
}

// Field represents a schema field in PocketBase
type Field struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Required bool   `json:"required"`
	Options  any    `json:"options,omitempty"`
}

func main() {
	envFile := flag.String("env", config.DefaultEnvFile, "Path to the .env file")
	flag.Parse()

	cfg, err := config.Load(*envFile)
	if err != nil {
		log.Fatal("Failed to load configuration", "error", err)
	}

	ctx := context.Background()
	manager, err := db.InitManager(ctx, cfg.PocketBase)
	if err != nil {
		log.Fatal("Failed to initialize database manager", "error", err)
	}
	log.Info("Authentication successful")

	exists, err := manager.CollectionExists(ctx, db.SettingsCollection)
	if err != nil {
		log.Fatal("Failed to check if collection exists", "error", err)
	}
	if exists {
		log.Info("Collection already exists", "name", db.SettingsCollection)
		return
	}

	if err := manager.CreateCollection(ctx, settingsCollection()); err != nil {
		log.Fatal("Failed to create settings collection", "error", err)
	}
	log.Info("Collection created successfully", "name", db.SettingsCollection)
}

func settingsCollection() Collection {
	return Collection{
		Name: db.SettingsCollection,
		Type: "base",
		Fields: []Field{
			{Name: "key", Type: "text", Required: true},
			{Name: "value", Type: "text", Required: false},
		},
		Indexes: []string{"CREATE UNIQUE INDEX `settings_key_index` ON `settings` (`key`)"},
	}
}
