package models

import (
	"encoding/json"
	"fmt"
)

// GeometryFormat selects the GeoRSS geometry dialect.
type GeometryFormat int

const (
	GeometrySimple GeometryFormat = iota
	GeometryGML
)

func (f GeometryFormat) String() string {
	if f == GeometryGML {
		return "GML"
	}
	return "Simple"
}

// FeedFormat selects the syndication dialect.
type FeedFormat int

const (
	FeedRss FeedFormat = iota
	FeedAtom
)

func (f FeedFormat) String() string {
	if f == FeedAtom {
		return "Atom"
	}
	return "Rss"
}

// ExportItem controls how one feed-item field is derived from a row.
// The JSON keys mirror the wire contract existing clients send,
// including the historical misspellings "MappedContentDelimeter" and
// "PreConditon".
type ExportItem struct {
	FixedContent           string `json:"FixedContent"`
	MappedContent          string `json:"MappedContent"`
	MappedContentAlias     string `json:"MappedContentAlias"`
	MappedContentDelimeter string `json:"MappedContentDelimeter"`
	PreConditon            string `json:"PreConditon"`
	PostCondition          string `json:"PostCondition"`
	AutoGenerate           bool   `json:"AutoGenerate"`
}

// ExportItemEntry is one named mapping rule. Entries keep the order
// they arrive in; the key names a recognized feed-item field.
type ExportItemEntry struct {
	Key   string     `json:"Key"`
	Value ExportItem `json:"Value"`
}

type ExportAuthor struct {
	Name  string `json:"Name"`
	Email string `json:"Email"`
	Uri   string `json:"Uri"`
}

type ExportLink struct {
	Title string `json:"Title"`
	Uri   string `json:"Uri"`
}

// OutputSpatialReference describes the coordinate system rows should be
// delivered in.
type OutputSpatialReference struct {
	Wkid                 int    `json:"Wkid"`
	CoordinateSystemType string `json:"CoordinateSystemType"`
	TransformationId     *int64 `json:"TransformationId"`
}

// ExportProperties is the feed-level export configuration. Built once
// per export request and read-only afterwards.
type ExportProperties struct {
	Title                  string                  `json:"Title"`
	ID                     string                  `json:"ID"`
	Language               string                  `json:"Language"`
	CopyRight              string                  `json:"CopyRight"`
	Generator              string                  `json:"Generator"`
	Description            string                  `json:"Description"`
	Link                   ExportLink              `json:"Link"`
	Author                 ExportAuthor            `json:"Author"`
	GeometryFormat         string                  `json:"GeometryFormat"`
	GeometryField          string                  `json:"GeometryField"`
	FeedFormat             string                  `json:"FeedFormat"`
	OutputSpatialReference *OutputSpatialReference `json:"OutputSpatialReference"`
	Items                  []ExportItemEntry       `json:"Items"`
}

// ParseExportProperties deserializes the exportProperties payload of a
// GeoRSS export request.
func ParseExportProperties(raw []byte) (*ExportProperties, error) {
	var props ExportProperties
	if err := json.Unmarshal(raw, &props); err != nil {
		return nil, fmt.Errorf("could not parse exportProperties: %w", err)
	}
	return &props, nil
}

// GeoRSSGeometryFormat resolves the configured geometry dialect. Only
// the literal string "GML" selects GML; anything else, including an
// absent value, selects the simple encoding.
func (p *ExportProperties) GeoRSSGeometryFormat() GeometryFormat {
	if p.GeometryFormat == "GML" {
		return GeometryGML
	}
	return GeometrySimple
}

// FeedFormatValue resolves the configured feed dialect. Only the
// literal string "Atom" selects Atom.
func (p *ExportProperties) FeedFormatValue() FeedFormat {
	if p.FeedFormat == "Atom" {
		return FeedAtom
	}
	return FeedRss
}

// GeoJSONExportProperties is the configuration subset a GeoJSON export
// needs.
type GeoJSONExportProperties struct {
	GeometryField          string                  `json:"GeometryField"`
	OutputSpatialReference *OutputSpatialReference `json:"OutputSpatialReference"`
}

// ParseGeoJSONExportProperties deserializes the exportProperties
// payload of a GeoJSON export request.
func ParseGeoJSONExportProperties(raw []byte) (*GeoJSONExportProperties, error) {
	var props GeoJSONExportProperties
	if err := json.Unmarshal(raw, &props); err != nil {
		return nil, fmt.Errorf("could not parse exportProperties: %w", err)
	}
	return &props, nil
}
