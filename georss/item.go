package georss

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
	log "github.com/sirupsen/logrus"

	"github.com/geoplex/arcgis-exporter-extension/models"
)

// Recognized feed-item field names. Rules with any other key are
// ignored.
const (
	KeyAuthor          = "Author"
	KeyContent         = "Content"
	KeyContributors    = "Contributors"
	KeyCopyright       = "Copyright"
	KeyID              = "Id"
	KeyLastUpdatedTime = "LastUpdatedTime"
	KeyLinks           = "Links"
	KeyPublishDate     = "PublishDate"
	KeySummary         = "Summary"
	KeyTitle           = "Title"
)

// Item is one mapped feed entry. Geometry holds the encoded GeoRSS
// fragment, empty when the source row carried no shape.
type Item struct {
	Title           string
	Content         string
	AuthorName      string
	ContributorName string
	Copyright       string
	ID              string
	PublishDate     *time.Time
	LastUpdated     *time.Time
	Link            string
	Summary         string
	Geometry        string
}

var dateLayouts = []string{
	time.RFC3339,
	time.RFC1123Z,
	time.RFC1123,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"01/02/2006 15:04:05",
	"01/02/2006",
}

// BuildItems maps every row to one feed item. A failure to resolve a
// single field is logged and leaves that field unset; a missing
// geometry column or an unencodable geometry aborts the export.
func BuildItems(rows []models.Row, props *models.ExportProperties) ([]Item, error) {
	format := props.GeoRSSGeometryFormat()
	items := make([]Item, 0, len(rows))

	for i, row := range rows {
		var item Item

		for _, entry := range props.Items {
			if err := setItemValue(&item, row, entry.Key, entry.Value); err != nil {
				log.WithFields(log.Fields{
					"key": entry.Key,
					"row": i,
				}).Warnf("skipping item field: %v", err)
			}
		}

		raw, ok := row[props.GeometryField]
		if !ok {
			return nil, &MissingGeometryFieldError{Field: props.GeometryField}
		}
		if raw != nil {
			geom, isGeom := raw.(orb.Geometry)
			if !isGeom {
				return nil, fmt.Errorf("geometry field %s does not hold a geometry value", props.GeometryField)
			}
			fragment, err := EncodeGeometry(geom, format)
			if err != nil {
				return nil, err
			}
			item.Geometry = fragment
		}

		items = append(items, item)
	}
	return items, nil
}

// setItemValue applies one mapping rule to one item field.
func setItemValue(item *Item, row models.Row, key string, rule models.ExportItem) error {
	switch key {
	case KeyTitle:
		content, err := resolveContent(row, rule)
		if err != nil {
			return err
		}
		item.Title = content
	case KeyContent:
		content, err := resolveContent(row, rule)
		if err != nil {
			return err
		}
		item.Content = content
	case KeyAuthor:
		// Author is a single display name; email and uri are not
		// supported on items.
		content, err := resolveContent(row, rule)
		if err != nil {
			return err
		}
		item.AuthorName = content
	case KeyContributors:
		content, err := resolveContent(row, rule)
		if err != nil {
			return err
		}
		item.ContributorName = content
	case KeyCopyright:
		content, err := resolveContent(row, rule)
		if err != nil {
			return err
		}
		item.Copyright = content
	case KeyID:
		if rule.AutoGenerate {
			item.ID = uuid.NewString()
			return nil
		}
		content, err := resolveContent(row, rule)
		if err != nil {
			return err
		}
		item.ID = content
	case KeyPublishDate:
		if rule.AutoGenerate {
			now := time.Now()
			item.PublishDate = &now
			return nil
		}
		content, err := resolveContent(row, rule)
		if err != nil {
			return err
		}
		parsed, err := parseDate(content)
		if err != nil {
			return err
		}
		item.PublishDate = parsed
	case KeyLastUpdatedTime:
		if rule.AutoGenerate {
			now := time.Now()
			item.LastUpdated = &now
			return nil
		}
		content, err := resolveContent(row, rule)
		if err != nil {
			return err
		}
		parsed, err := parseDate(content)
		if err != nil {
			return err
		}
		item.LastUpdated = parsed
	case KeyLinks:
		content, err := resolveContent(row, rule)
		if err != nil {
			return err
		}
		if _, err := url.ParseRequestURI(content); err != nil {
			return &URIParseError{Value: content, Err: err}
		}
		item.Link = content
	case KeySummary:
		// Summary carries html content in the rendered feed.
		content, err := resolveContent(row, rule)
		if err != nil {
			return err
		}
		item.Summary = content
	}
	return nil
}

// resolveContent derives one string value from a row. Fixed content
// assigns first; a non-empty mapped resolution overwrites it.
func resolveContent(row models.Row, rule models.ExportItem) (string, error) {
	content := rule.FixedContent

	if rule.MappedContent != "" {
		var b strings.Builder

		if rule.PreConditon != "" {
			b.WriteString(rule.PreConditon)
		}

		inputFields := strings.Split(rule.MappedContent, ",")
		multiContent := len(inputFields) > 1

		var aliases []string
		if multiContent {
			if rule.MappedContentAlias != "" {
				aliases = strings.Split(rule.MappedContentAlias, ",")
			}
			if len(inputFields) != len(aliases) {
				return "", ErrAliasCountMismatch
			}
		}

		for i, field := range inputFields {
			value, ok := row[field]
			if !ok || value == nil {
				continue
			}
			if multiContent {
				b.WriteString(aliases[i])
				b.WriteString(": ")
				b.WriteString(fmt.Sprintf("%v", value))
				b.WriteString(rule.MappedContentDelimeter)
			} else {
				b.WriteString(fmt.Sprintf("%v", value))
			}
		}

		if rule.PostCondition != "" {
			b.WriteString(rule.PostCondition)
		}

		if mapped := b.String(); mapped != "" {
			content = mapped
		}
	}

	return content, nil
}

func parseDate(value string) (*time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return &t, nil
		}
	}
	return nil, &DateParseError{Value: value}
}
