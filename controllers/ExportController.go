package controllers

import (
	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"

	"github.com/geoplex/arcgis-exporter-extension/geojson"
	"github.com/geoplex/arcgis-exporter-extension/georss"
	"github.com/geoplex/arcgis-exporter-extension/maplayer"
	"github.com/geoplex/arcgis-exporter-extension/models"
	"github.com/geoplex/arcgis-exporter-extension/spatial"
)

const (
	formatGeoRSS  = "georss"
	formatGeoJSON = "geojson"
)

// ExportLayer runs one export: it queries the layer's rows under the
// supplied filters and renders them as a GeoRSS feed or as GeoJSON.
// Every failure produces a JSON error body; the caller always gets a
// payload.
func ExportLayer(c *fiber.Ctx) error {
	layerID := c.Params("layer")
	format := c.Query("f", formatGeoRSS)

	var input models.ExportInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Invalid input",
			"error":   err.Error(),
		})
	}

	if len(input.ExportProperties) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "exportProperties is required",
		})
	}

	if input.HasFilterGeometry() && input.GeometryType == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Cannot supply a filter geometry without a geometryType",
		})
	}

	layerDetails, err := maplayer.FetchLayerDetails(layerID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":  "error",
			"message": "Layer not found",
		})
	}

	switch format {
	case formatGeoRSS:
		return exportGeoRSS(c, layerDetails, &input)
	case formatGeoJSON:
		return exportGeoJSON(c, layerDetails, &input)
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Unsupported output format: " + format,
		})
	}
}

func exportGeoRSS(c *fiber.Ctx, layer models.ExportLayer, input *models.ExportInput) error {
	props, err := models.ParseExportProperties(input.ExportProperties)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Could not parse exportProperties",
			"error":   err.Error(),
		})
	}
	if props.GeometryField == "" {
		props.GeometryField = layer.GeometryFieldName
	}

	rows, err := queryLayerRows(layer, props.GeometryField, props.OutputSpatialReference, input)
	if err != nil {
		return exportError(c, layer.ID, "Error executing export query", err)
	}

	feed, err := georss.CreateExport(rows, props)
	if err != nil {
		return exportError(c, layer.ID, "Error generating export", err)
	}

	payload, contentType, err := feed.Serialize()
	if err != nil {
		return exportError(c, layer.ID, "Error serializing export", err)
	}

	c.Set(fiber.HeaderContentType, contentType)
	return c.Send(payload)
}

func exportGeoJSON(c *fiber.Ctx, layer models.ExportLayer, input *models.ExportInput) error {
	props, err := models.ParseGeoJSONExportProperties(input.ExportProperties)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Could not parse exportProperties",
			"error":   err.Error(),
		})
	}
	geometryField := props.GeometryField
	if geometryField == "" {
		geometryField = layer.GeometryFieldName
	}

	rows, err := queryLayerRows(layer, geometryField, props.OutputSpatialReference, input)
	if err != nil {
		return exportError(c, layer.ID, "Error executing export query", err)
	}

	payload, err := geojson.Encode(rows, geometryField)
	if err != nil {
		return exportError(c, layer.ID, "Error generating export", err)
	}

	c.Set(fiber.HeaderContentType, geojson.ContentType)
	return c.Send(payload)
}

func queryLayerRows(layer models.ExportLayer, geometryField string, outSR *models.OutputSpatialReference, input *models.ExportInput) ([]models.Row, error) {
	if outSR != nil && outSR.TransformationId != nil {
		// Datum transformations are picked by the database; the id is
		// accepted for wire compatibility and recorded only.
		log.WithFields(log.Fields{
			"layer":            layer.ID,
			"transformationId": *outSR.TransformationId,
		}).Info("transformation id supplied; relying on ST_Transform defaults")
	}

	query := spatial.BuildExportQuery(layer, geometryField, outSR, input.HasFilterGeometry(), input.Where)
	if input.HasFilterGeometry() {
		return spatial.QueryRows(query, geometryField, string(input.FilterGeometry))
	}
	return spatial.QueryRows(query, geometryField)
}

func exportError(c *fiber.Ctx, layerID, message string, err error) error {
	log.WithFields(log.Fields{
		"layer": layerID,
	}).Errorf("%s: %v", message, err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"status":  "error",
		"message": message,
		"error":   err.Error(),
	})
}
