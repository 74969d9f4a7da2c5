// Package geojson renders queried rows as a GeoJSON FeatureCollection,
// the non-feed output path of the exporter.
package geojson

import (
	"encoding/json"

	"github.com/paulmach/orb"
	orbjson "github.com/paulmach/orb/geojson"

	"github.com/geoplex/arcgis-exporter-extension/models"
)

const ContentType = "application/json"

// Feature keeps the geometry as a pointer so a shapeless row still
// serializes with "geometry": null.
type Feature struct {
	Type       string                 `json:"type"`
	Geometry   *orbjson.Geometry      `json:"geometry"`
	Properties map[string]interface{} `json:"properties"`
}

type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

// Encode turns the rows into a FeatureCollection. Coordinates follow
// GeoJSON axis order ([x, y]); every non-geometry field lands in
// properties keyed by its field name.
func Encode(rows []models.Row, geometryField string) ([]byte, error) {
	fc := FeatureCollection{
		Type:     "FeatureCollection",
		Features: make([]Feature, 0, len(rows)),
	}

	for _, row := range rows {
		feature := Feature{
			Type:       "Feature",
			Properties: make(map[string]interface{}, len(row)),
		}
		for name, value := range row {
			if name == geometryField {
				continue
			}
			feature.Properties[name] = value
		}
		if geom, ok := row[geometryField].(orb.Geometry); ok && geom != nil {
			feature.Geometry = orbjson.NewGeometry(geom)
		}
		fc.Features = append(fc.Features, feature)
	}

	return json.Marshal(fc)
}
