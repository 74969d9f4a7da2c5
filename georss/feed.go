package georss

import (
	"github.com/google/uuid"

	"github.com/geoplex/arcgis-exporter-extension/models"
)

// Feed is an assembled export: feed-level metadata plus the mapped
// items in row order. Consumed once by Serialize.
type Feed struct {
	Props *models.ExportProperties
	ID    string
	Items []Item
}

// CreateExport maps the queried rows under the supplied configuration
// and assembles the feed document. The feed id is always freshly
// generated; the configured ID property is client metadata only.
func CreateExport(rows []models.Row, props *models.ExportProperties) (*Feed, error) {
	items, err := BuildItems(rows, props)
	if err != nil {
		return nil, err
	}
	return &Feed{
		Props: props,
		ID:    uuid.NewString(),
		Items: items,
	}, nil
}
