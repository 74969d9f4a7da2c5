package georss

import (
	"testing"
	"time"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geoplex/arcgis-exporter-extension/models"
)

func buildOne(t *testing.T, row models.Row, entries ...models.ExportItemEntry) Item {
	t.Helper()
	props := &models.ExportProperties{GeometryField: "shape", Items: entries}
	items, err := BuildItems([]models.Row{row}, props)
	require.NoError(t, err)
	require.Len(t, items, 1)
	return items[0]
}

func TestFixedContent(t *testing.T) {
	item := buildOne(t,
		models.Row{"shape": nil},
		models.ExportItemEntry{Key: KeyTitle, Value: models.ExportItem{FixedContent: "Californian EarthQuakes"}},
	)
	assert.Equal(t, "Californian EarthQuakes", item.Title)
}

func TestSingleMappedField(t *testing.T) {
	item := buildOne(t,
		models.Row{"shape": nil, "place": "Ridgecrest, CA"},
		models.ExportItemEntry{Key: KeyTitle, Value: models.ExportItem{MappedContent: "place"}},
	)
	assert.Equal(t, "Ridgecrest, CA", item.Title)
}

func TestMappedOverwritesFixed(t *testing.T) {
	item := buildOne(t,
		models.Row{"shape": nil, "place": "Ridgecrest, CA"},
		models.ExportItemEntry{Key: KeyTitle, Value: models.ExportItem{
			FixedContent:  "fallback",
			MappedContent: "place",
		}},
	)
	assert.Equal(t, "Ridgecrest, CA", item.Title)
}

func TestFixedSurvivesEmptyMappedResolution(t *testing.T) {
	item := buildOne(t,
		models.Row{"shape": nil, "place": nil},
		models.ExportItemEntry{Key: KeyTitle, Value: models.ExportItem{
			FixedContent:  "fallback",
			MappedContent: "place",
		}},
	)
	assert.Equal(t, "fallback", item.Title)
}

func TestMultiFieldMapping(t *testing.T) {
	item := buildOne(t,
		models.Row{"shape": nil, "magnitude": 4.5, "depth": 10},
		models.ExportItemEntry{Key: KeyContent, Value: models.ExportItem{
			MappedContent:          "magnitude,depth",
			MappedContentAlias:     "Magnitude,Depth",
			MappedContentDelimeter: "; ",
			PreConditon:            "[",
			PostCondition:          "]",
		}},
	)
	assert.Equal(t, "[Magnitude: 4.5; Depth: 10; ]", item.Content)
}

func TestMultiFieldSkipsNullValues(t *testing.T) {
	item := buildOne(t,
		models.Row{"shape": nil, "magnitude": 4.5, "depth": nil},
		models.ExportItemEntry{Key: KeyContent, Value: models.ExportItem{
			MappedContent:          "magnitude,depth",
			MappedContentAlias:     "Magnitude,Depth",
			MappedContentDelimeter: "; ",
		}},
	)
	assert.Equal(t, "Magnitude: 4.5; ", item.Content)
}

func TestAliasCountMismatchLeavesFieldUnset(t *testing.T) {
	item := buildOne(t,
		models.Row{"shape": nil, "magnitude": 4.5, "depth": 10},
		models.ExportItemEntry{Key: KeyTitle, Value: models.ExportItem{FixedContent: "quakes"}},
		models.ExportItemEntry{Key: KeyContent, Value: models.ExportItem{
			MappedContent:      "magnitude,depth",
			MappedContentAlias: "Magnitude",
		}},
	)
	// the malformed rule is skipped; the rest of the item is unaffected
	assert.Equal(t, "quakes", item.Title)
	assert.Empty(t, item.Content)
}

func TestAbsentAliasIsAMismatch(t *testing.T) {
	_, err := resolveContent(models.Row{"a": 1, "b": 2}, models.ExportItem{MappedContent: "a,b"})
	assert.ErrorIs(t, err, ErrAliasCountMismatch)
}

func TestAutoGeneratedIDsAreDistinct(t *testing.T) {
	props := &models.ExportProperties{
		GeometryField: "shape",
		Items: []models.ExportItemEntry{
			{Key: KeyID, Value: models.ExportItem{AutoGenerate: true}},
		},
	}
	rows := make([]models.Row, 20)
	for i := range rows {
		rows[i] = models.Row{"shape": nil}
	}
	items, err := BuildItems(rows, props)
	require.NoError(t, err)

	seen := make(map[string]bool)
	for _, item := range items {
		require.NotEmpty(t, item.ID)
		assert.False(t, seen[item.ID])
		seen[item.ID] = true
	}
}

func TestAutoGeneratedDates(t *testing.T) {
	before := time.Now()
	item := buildOne(t,
		models.Row{"shape": nil},
		models.ExportItemEntry{Key: KeyPublishDate, Value: models.ExportItem{AutoGenerate: true}},
		models.ExportItemEntry{Key: KeyLastUpdatedTime, Value: models.ExportItem{AutoGenerate: true}},
	)
	require.NotNil(t, item.PublishDate)
	require.NotNil(t, item.LastUpdated)
	assert.False(t, item.PublishDate.Before(before))
}

func TestDateParsing(t *testing.T) {
	item := buildOne(t,
		models.Row{"shape": nil, "event_time": "2019-07-05 03:19:53"},
		models.ExportItemEntry{Key: KeyPublishDate, Value: models.ExportItem{MappedContent: "event_time"}},
	)
	require.NotNil(t, item.PublishDate)
	assert.Equal(t, 2019, item.PublishDate.Year())
}

func TestUnparseableDateLeavesFieldUnset(t *testing.T) {
	item := buildOne(t,
		models.Row{"shape": nil, "event_time": "not a date"},
		models.ExportItemEntry{Key: KeyPublishDate, Value: models.ExportItem{MappedContent: "event_time"}},
	)
	assert.Nil(t, item.PublishDate)
}

func TestMalformedLinkLeavesFieldUnset(t *testing.T) {
	item := buildOne(t,
		models.Row{"shape": nil, "url": "not a uri"},
		models.ExportItemEntry{Key: KeyLinks, Value: models.ExportItem{MappedContent: "url"}},
	)
	assert.Empty(t, item.Link)
}

func TestLinkMapping(t *testing.T) {
	item := buildOne(t,
		models.Row{"shape": nil, "url": "https://earthquake.usgs.gov/events/1"},
		models.ExportItemEntry{Key: KeyLinks, Value: models.ExportItem{MappedContent: "url"}},
	)
	assert.Equal(t, "https://earthquake.usgs.gov/events/1", item.Link)
}

func TestUnrecognizedKeyIgnored(t *testing.T) {
	item := buildOne(t,
		models.Row{"shape": nil},
		models.ExportItemEntry{Key: "Category", Value: models.ExportItem{FixedContent: "quake"}},
	)
	assert.Equal(t, Item{}, item)
}

func TestMissingGeometryColumnAborts(t *testing.T) {
	props := &models.ExportProperties{GeometryField: "shape"}
	_, err := BuildItems([]models.Row{{"place": "Ridgecrest"}}, props)
	require.Error(t, err)
	var missing *MissingGeometryFieldError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "shape", missing.Field)
}

func TestNullGeometryProducesNoFragment(t *testing.T) {
	item := buildOne(t, models.Row{"shape": nil})
	assert.Empty(t, item.Geometry)
}

func TestGeometryFragmentFollowsConfiguredFormat(t *testing.T) {
	row := models.Row{"shape": orb.Geometry(orb.Point{142.5, -35.2})}

	props := &models.ExportProperties{GeometryField: "shape", GeometryFormat: "GML"}
	items, err := BuildItems([]models.Row{row}, props)
	require.NoError(t, err)
	assert.Contains(t, items[0].Geometry, "<gml:Point>")

	props.GeometryFormat = "gml" // case sensitive, falls back to simple
	items, err = BuildItems([]models.Row{row}, props)
	require.NoError(t, err)
	assert.Equal(t, "<georss:point>-35.2 142.5</georss:point>", items[0].Geometry)
}
