package spatial

import (
	"fmt"

	orbjson "github.com/paulmach/orb/geojson"
	log "github.com/sirupsen/logrus"

	"github.com/geoplex/arcgis-exporter-extension/database"
	"github.com/geoplex/arcgis-exporter-extension/maplayer"
	"github.com/geoplex/arcgis-exporter-extension/models"
)

// BuildExportQuery assembles the row query for one export: selected
// attribute columns plus the GeoJSON-rendered geometry column, an
// intersects filter when a filter geometry is supplied, and the
// caller's attribute where clause.
func BuildExportQuery(layer models.ExportLayer, geometryField string, outSR *models.OutputSpatialReference, hasFilterGeometry bool, where string) string {
	query := fmt.Sprintf(`SELECT %s FROM %s.%s`,
		maplayer.ConstructExportColumns(layer, geometryField, outSR), layer.DbSchema, layer.DbTable)

	conditions := ""
	if hasFilterGeometry {
		conditions = fmt.Sprintf(`ST_Intersects("%s", ST_GeomFromGeoJSON(?))`, geometryField)
	}
	if where != "" {
		if conditions != "" {
			conditions += " AND (" + where + ")"
		} else {
			conditions = "(" + where + ")"
		}
	}
	if conditions != "" {
		query += " WHERE " + conditions
	}
	return query
}

// QueryRows executes the export query and decodes the geometry column
// of each record into an orb geometry. Row order follows the cursor.
func QueryRows(query string, geometryField string, args ...interface{}) ([]models.Row, error) {
	var results []map[string]interface{}
	if err := database.DB.Raw(query, args...).Scan(&results).Error; err != nil {
		return nil, fmt.Errorf("error executing export query: %w", err)
	}

	rows := make([]models.Row, 0, len(results))
	for _, record := range results {
		row := models.Row(record)
		if raw, ok := record[geometryField]; ok && raw != nil {
			encoded, isString := raw.(string)
			if !isString {
				return nil, fmt.Errorf("geometry column %s did not decode as GeoJSON text", geometryField)
			}
			geom, err := orbjson.UnmarshalGeometry([]byte(encoded))
			if err != nil {
				return nil, fmt.Errorf("error decoding geometry column %s: %w", geometryField, err)
			}
			row[geometryField] = geom.Geometry()
		}
		rows = append(rows, row)
	}

	log.WithField("rows", len(rows)).Debug("export query complete")
	return rows, nil
}
