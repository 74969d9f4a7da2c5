package georss

import (
	"encoding/xml"
	"strings"
	"time"

	"github.com/geoplex/arcgis-exporter-extension/models"
)

const (
	ContentTypeRss  = "application/rss+xml"
	ContentTypeAtom = "application/atom+xml"

	xmlProlog = `<?xml version="1.0" encoding="utf-8"?>`
)

type rssGUID struct {
	IsPermaLink string `xml:"isPermaLink,attr"`
	Value       string `xml:",chardata"`
}

type rssItem struct {
	XMLName xml.Name `xml:"item"`
	Title   string   `xml:"title,omitempty"`
	Link    string   `xml:"link,omitempty"`
	Desc    string   `xml:"description,omitempty"`
	Author  string   `xml:"author,omitempty"`
	GUID    *rssGUID `xml:"guid,omitempty"`
	PubDate string   `xml:"pubDate,omitempty"`
	// encoded GeoRSS fragment, written verbatim
	Geometry string `xml:",innerxml"`
}

type rssChannel struct {
	Title          string `xml:"title,omitempty"`
	Link           string `xml:"link,omitempty"`
	Description    string `xml:"description,omitempty"`
	Language       string `xml:"language,omitempty"`
	Copyright      string `xml:"copyright,omitempty"`
	ManagingEditor string `xml:"managingEditor,omitempty"`
	Generator      string `xml:"generator,omitempty"`
	Items          []rssItem
}

type rssDoc struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	GeoRSS  string     `xml:"xmlns:georss,attr"`
	GML     string     `xml:"xmlns:gml,attr,omitempty"`
	Channel rssChannel `xml:"channel"`
}

type atomText struct {
	Type  string `xml:"type,attr,omitempty"`
	Value string `xml:",chardata"`
}

type atomPerson struct {
	Name  string `xml:"name,omitempty"`
	Email string `xml:"email,omitempty"`
	URI   string `xml:"uri,omitempty"`
}

type atomLink struct {
	Href  string `xml:"href,attr"`
	Title string `xml:"title,attr,omitempty"`
}

type atomEntry struct {
	XMLName     xml.Name    `xml:"entry"`
	ID          string      `xml:"id,omitempty"`
	Title       string      `xml:"title,omitempty"`
	Author      *atomPerson `xml:"author,omitempty"`
	Contributor *atomPerson `xml:"contributor,omitempty"`
	Rights      string      `xml:"rights,omitempty"`
	Link        *atomLink   `xml:"link,omitempty"`
	Published   string      `xml:"published,omitempty"`
	Updated     string      `xml:"updated,omitempty"`
	Summary     *atomText   `xml:"summary,omitempty"`
	Content     *atomText   `xml:"content,omitempty"`
	Geometry    string      `xml:",innerxml"`
}

type atomFeed struct {
	XMLName  xml.Name    `xml:"feed"`
	NS       string      `xml:"xmlns,attr"`
	GeoRSS   string      `xml:"xmlns:georss,attr"`
	GML      string      `xml:"xmlns:gml,attr,omitempty"`
	ID       string      `xml:"id,omitempty"`
	Title    string      `xml:"title,omitempty"`
	Subtitle string      `xml:"subtitle,omitempty"`
	Rights   string      `xml:"rights,omitempty"`
	Gen      string      `xml:"generator,omitempty"`
	Updated  string      `xml:"updated"`
	Author   *atomPerson `xml:"author,omitempty"`
	Link     *atomLink   `xml:"link,omitempty"`
	Entries  []atomEntry
}

// Serialize renders the feed in its configured dialect and returns the
// payload together with its content type. The declared XML encoding is
// always utf-8.
func (f *Feed) Serialize() ([]byte, string, error) {
	switch f.Props.FeedFormatValue() {
	case models.FeedAtom:
		payload, err := marshalDocument(buildAtom(f))
		return payload, ContentTypeAtom, err
	default:
		payload, err := marshalDocument(buildRss(f))
		return payload, ContentTypeRss, err
	}
}

// ContentType reports the content type Serialize would return, without
// rendering.
func (f *Feed) ContentType() string {
	if f.Props.FeedFormatValue() == models.FeedAtom {
		return ContentTypeAtom
	}
	return ContentTypeRss
}

func marshalDocument(doc interface{}) ([]byte, error) {
	body, err := xml.Marshal(doc)
	if err != nil {
		return nil, err
	}
	rendered := xmlProlog + "\n" + string(body)
	return []byte(NormalizeEncodingDeclaration(rendered)), nil
}

// NormalizeEncodingDeclaration rewrites a utf-16 encoding name in the
// XML declaration to utf-8. Some serialization back-ends declare utf-16
// while emitting utf-8 bytes; the payload we return is always utf-8.
func NormalizeEncodingDeclaration(doc string) string {
	end := strings.Index(doc, "?>")
	if end < 0 {
		return doc
	}
	prolog := doc[:end]
	prolog = strings.ReplaceAll(prolog, "utf-16", "utf-8")
	prolog = strings.ReplaceAll(prolog, "UTF-16", "UTF-8")
	return prolog + doc[end:]
}

func buildRss(f *Feed) *rssDoc {
	p := f.Props
	doc := &rssDoc{
		Version: "2.0",
		GeoRSS:  GeoRSSNamespace,
		Channel: rssChannel{
			Title:          p.Title,
			Link:           p.Link.Uri,
			Description:    p.Description,
			Language:       p.Language,
			Copyright:      p.CopyRight,
			ManagingEditor: p.Author.Email,
			Generator:      p.Generator,
		},
	}
	if p.GeoRSSGeometryFormat() == models.GeometryGML {
		doc.GML = GMLNamespace
	}

	doc.Channel.Items = make([]rssItem, 0, len(f.Items))
	for _, item := range f.Items {
		out := rssItem{
			Title:    item.Title,
			Link:     item.Link,
			Author:   item.AuthorName,
			Geometry: item.Geometry,
		}
		// RSS has a single description; prefer the summary.
		if item.Summary != "" {
			out.Desc = item.Summary
		} else {
			out.Desc = item.Content
		}
		if item.ID != "" {
			out.GUID = &rssGUID{IsPermaLink: "false", Value: item.ID}
		}
		if item.PublishDate != nil {
			out.PubDate = item.PublishDate.Format(time.RFC1123Z)
		}
		doc.Channel.Items = append(doc.Channel.Items, out)
	}
	return doc
}

func buildAtom(f *Feed) *atomFeed {
	p := f.Props
	doc := &atomFeed{
		NS:       "http://www.w3.org/2005/Atom",
		GeoRSS:   GeoRSSNamespace,
		ID:       f.ID,
		Title:    p.Title,
		Subtitle: p.Description,
		Rights:   p.CopyRight,
		Gen:      p.Generator,
		Updated:  time.Now().UTC().Format(time.RFC3339),
	}
	if p.GeoRSSGeometryFormat() == models.GeometryGML {
		doc.GML = GMLNamespace
	}
	if p.Author.Name != "" || p.Author.Email != "" || p.Author.Uri != "" {
		doc.Author = &atomPerson{Name: p.Author.Name, Email: p.Author.Email, URI: p.Author.Uri}
	}
	if p.Link.Uri != "" {
		doc.Link = &atomLink{Href: p.Link.Uri, Title: p.Link.Title}
	}

	doc.Entries = make([]atomEntry, 0, len(f.Items))
	for _, item := range f.Items {
		out := atomEntry{
			ID:       item.ID,
			Title:    item.Title,
			Rights:   item.Copyright,
			Geometry: item.Geometry,
		}
		if item.AuthorName != "" {
			out.Author = &atomPerson{Name: item.AuthorName}
		}
		if item.ContributorName != "" {
			out.Contributor = &atomPerson{Name: item.ContributorName}
		}
		if item.Link != "" {
			out.Link = &atomLink{Href: item.Link}
		}
		if item.PublishDate != nil {
			out.Published = item.PublishDate.Format(time.RFC3339)
		}
		if item.LastUpdated != nil {
			out.Updated = item.LastUpdated.Format(time.RFC3339)
		}
		if item.Summary != "" {
			out.Summary = &atomText{Type: "html", Value: item.Summary}
		}
		if item.Content != "" {
			out.Content = &atomText{Type: "text", Value: item.Content}
		}
		doc.Entries = append(doc.Entries, out)
	}
	return doc
}
