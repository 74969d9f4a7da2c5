package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/geoplex/arcgis-exporter-extension/database"
	"github.com/geoplex/arcgis-exporter-extension/maplayer"
	"github.com/geoplex/arcgis-exporter-extension/models"
)

// ExportLayers lists the layers available for export.
func ExportLayers(c *fiber.Ctx) error {
	var layers []models.ExportLayer
	if err := database.DB.Where("is_active = ?", true).Find(&layers).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Error retrieving export layers",
			"error":   err.Error(),
		})
	}

	infos := make([]fiber.Map, 0, len(layers))
	for _, layer := range layers {
		infos = append(infos, fiber.Map{"id": layer.ID, "name": layer.LayerTitle})
	}
	return c.JSON(fiber.Map{"ExportLayers": infos})
}

// ExportLayerInfo returns the name and id of a single export layer.
func ExportLayerInfo(c *fiber.Ctx) error {
	layerID := c.Params("layer")
	if layerID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Layer parameter is required",
		})
	}

	layerDetails, err := maplayer.FetchLayerDetails(layerID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":  "error",
			"message": "Layer not found",
		})
	}
	return c.JSON(fiber.Map{"id": layerDetails.ID, "name": layerDetails.LayerTitle})
}

// ExportLayerColumns lists the columns of the layer's source table, for
// building field mappings.
func ExportLayerColumns(c *fiber.Ctx) error {
	layerID := c.Params("layer")

	layerDetails, err := maplayer.FetchLayerDetails(layerID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":  "error",
			"message": "Layer not found",
		})
	}

	var columns []models.TableColumn
	if err := database.DB.Raw(`SELECT column_name, data_type FROM information_schema.columns WHERE table_schema = ? AND table_name = ?`, layerDetails.DbSchema, layerDetails.DbTable).Scan(&columns).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(columns)
}
