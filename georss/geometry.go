package georss

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/paulmach/orb"

	"github.com/geoplex/arcgis-exporter-extension/models"
)

const (
	GeoRSSNamespace = "http://www.georss.org/georss"
	GMLNamespace    = "http://www.opengis.net/gml"
)

// EncodeGeometry renders a geometry as a GeoRSS XML fragment in the
// requested dialect. Coordinates are emitted latitude first ("Y X"),
// rounded to 5 decimal places. Supported kinds are Point, LineString,
// MultiLineString (one entry per path) and Polygon.
func EncodeGeometry(geom orb.Geometry, format models.GeometryFormat) (string, error) {
	switch g := geom.(type) {
	case orb.Point:
		pos := formatPair(g)
		if format == models.GeometryGML {
			return fmt.Sprintf("<georss:where><gml:Point><gml:pos>%s</gml:pos></gml:Point></georss:where>", pos), nil
		}
		return fmt.Sprintf("<georss:point>%s</georss:point>", pos), nil
	case orb.LineString:
		coords := flattenCoords([]orb.LineString{g})
		if format == models.GeometryGML {
			return fmt.Sprintf("<georss:where><gml:LineString><gml:posList>%s</gml:posList></gml:LineString></georss:where>", strings.Join(coords, " ")), nil
		}
		return fmt.Sprintf("<georss:line>%s</georss:line>", strings.Join(coords, " ")), nil
	case orb.MultiLineString:
		coords := flattenCoords(g)
		if format == models.GeometryGML {
			return fmt.Sprintf("<georss:where><gml:LineString><gml:posList>%s</gml:posList></gml:LineString></georss:where>", strings.Join(coords, " ")), nil
		}
		return fmt.Sprintf("<georss:line>%s</georss:line>", strings.Join(coords, " ")), nil
	case orb.Polygon:
		if format == models.GeometryGML {
			// GML encodes the exterior ring only; holes are not
			// representable in this encoding.
			var exterior orb.Polygon
			if len(g) > 0 {
				exterior = orb.Polygon{g[0]}
			}
			coords := flattenCoords(ringsToLines(exterior))
			return fmt.Sprintf("<georss:where><gml:Polygon><gml:exterior><gml:LinearRing><gml:posList>%s</gml:posList></gml:LinearRing></gml:exterior></gml:Polygon></georss:where>", strings.Join(coords, " ")), nil
		}
		coords := flattenCoords(ringsToLines(g))
		return fmt.Sprintf("<georss:polygon>%s</georss:polygon>", strings.Join(coords, " ")), nil
	default:
		return "", &UnsupportedGeometryError{Format: format, Kind: geom.GeoJSONType()}
	}
}

func ringsToLines(p orb.Polygon) []orb.LineString {
	lines := make([]orb.LineString, 0, len(p))
	for _, ring := range p {
		lines = append(lines, orb.LineString(ring))
	}
	return lines
}

// flattenCoords joins all paths into one "Y X" pair list, dropping a
// pair only when it repeats the immediately preceding one. A ring that
// closes by repeating its first point keeps that repeat unless it
// happens to sit right after it.
func flattenCoords(lines []orb.LineString) []string {
	var coords []string
	for _, line := range lines {
		for _, pt := range line {
			pair := formatPair(pt)
			if n := len(coords); n > 0 && coords[n-1] == pair {
				continue
			}
			coords = append(coords, pair)
		}
	}
	return coords
}

func formatPair(pt orb.Point) string {
	return roundCoord(pt.Y()) + " " + roundCoord(pt.X())
}

// roundCoord rounds half away from zero to 5 decimal places and prints
// the shortest representation, matching the feed output existing
// consumers parse.
func roundCoord(v float64) string {
	rounded := math.Round(v*1e5) / 1e5
	return strconv.FormatFloat(rounded, 'f', -1, 64)
}
