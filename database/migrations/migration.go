package migrations

import (
	"log"

	"github.com/geoplex/arcgis-exporter-extension/database"
	"github.com/geoplex/arcgis-exporter-extension/models"
)

func Migrate() {
	// Create the schema if it doesn't exist
	createSchema := `
	CREATE SCHEMA IF NOT EXISTS map_server;
	`

	err := database.DB.Exec(createSchema).Error
	if err != nil {
		log.Fatalf("Failed to create schema: %v", err)
	}
	database.DB.AutoMigrate(
		&models.ExportLayer{},
	)
}
