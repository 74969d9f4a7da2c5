package maplayer

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/dgraph-io/ristretto"

	"github.com/geoplex/arcgis-exporter-extension/database"
	"github.com/geoplex/arcgis-exporter-extension/models"
)

func init() {
	// Initialize the cache with Ristretto
	var err error
	layerCache, err = ristretto.NewCache(&ristretto.Config{
		NumCounters: 1e7,     // number of keys to track frequency of (10M)
		MaxCost:     1 << 30, // maximum cost of cache (1GB)
		BufferItems: 64,      // number of keys per Get buffer
	})
	if err != nil {
		log.Fatalf("Failed to initialize cache: %v", err)
	}
}

var layerCache *ristretto.Cache

func FetchLayerDetails(layerID string) (models.ExportLayer, error) {
	layerID = strings.TrimSpace(layerID)

	if cachedLayer, found := layerCache.Get(layerID); found {
		layerDetails, ok := cachedLayer.(models.ExportLayer)
		if ok {
			return layerDetails, nil
		}
	}

	var layerDetails models.ExportLayer
	err := database.DB.Where("id = ?", layerID).First(&layerDetails).Error
	if err != nil {
		return layerDetails, err
	}

	layerCache.SetWithTTL(layerID, layerDetails, 1, 60*time.Minute)
	layerCache.Wait()

	return layerDetails, nil
}

// ConstructExportColumns builds the select list for an export query:
// the layer's configured attribute columns (id column always included)
// plus the geometry column rendered as GeoJSON, transformed to the
// output spatial reference when one is requested.
func ConstructExportColumns(layer models.ExportLayer, geometryField string, outSR *models.OutputSpatialReference) string {
	columnMap := make(map[string]bool)
	var ordered []string

	for _, col := range strings.Split(layer.ColumnSelects, ",") {
		col = strings.TrimSpace(col)
		if col == "" || col == geometryField || columnMap[col] {
			continue
		}
		columnMap[col] = true
		ordered = append(ordered, col)
	}

	if !columnMap[layer.IDFieldName] && layer.IDFieldName != "" {
		ordered = append([]string{layer.IDFieldName}, ordered...)
	}

	var newColumns []string
	for _, col := range ordered {
		newColumns = append(newColumns, "\""+col+"\"")
	}

	geomExpr := "\"" + geometryField + "\""
	if outSR != nil && outSR.Wkid != 0 {
		geomExpr = fmt.Sprintf("ST_Transform(%s, %d)", geomExpr, outSR.Wkid)
	}
	newColumns = append(newColumns, fmt.Sprintf("ST_AsGeoJSON(%s) AS \"%s\"", geomExpr, geometryField))

	return strings.Join(newColumns, ", ")
}
