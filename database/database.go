package database

import (
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/geoplex/arcgis-exporter-extension/config"
)

// DB is the shared handle used by the layer and row queries. The host
// application may assign its own *gorm.DB before mounting the exporter;
// otherwise Connect opens one from configuration.
var DB *gorm.DB

func Connect() error {
	db, err := gorm.Open(postgres.Open(config.Config.DatabaseDSN), &gorm.Config{})
	if err != nil {
		return err
	}
	DB = db
	return nil
}
