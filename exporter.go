package exporter

import (
	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"

	"github.com/geoplex/arcgis-exporter-extension/config"
	"github.com/geoplex/arcgis-exporter-extension/controllers"
	"github.com/geoplex/arcgis-exporter-extension/database"
	"github.com/geoplex/arcgis-exporter-extension/database/migrations"
)

// Set mounts the exporter on the host application. The host may assign
// database.DB beforehand to share its own connection.
func Set(app *fiber.App) {
	if database.DB == nil {
		if err := database.Connect(); err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
	}

	a := app.Group("/exporter")
	a.Get("/layers", controllers.ExportLayers)
	a.Get("/layers/:layer", controllers.ExportLayerInfo)
	a.Get("/layers/:layer/columns", controllers.ExportLayerColumns)
	a.Post("/layers/:layer/export", controllers.ExportLayer)

	if config.Config.Migrate {
		migrations.Migrate()
	}
}
