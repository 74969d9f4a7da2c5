package georss

import (
	"errors"
	"fmt"

	"github.com/geoplex/arcgis-exporter-extension/models"
)

// ErrAliasCountMismatch is returned when a rule maps multiple fields
// but the alias list does not line up with them.
var ErrAliasCountMismatch = errors.New("mapped field count does not equal alias field count")

// MissingGeometryFieldError aborts an export: the configured geometry
// column does not exist in the queried rows.
type MissingGeometryFieldError struct {
	Field string
}

func (e *MissingGeometryFieldError) Error() string {
	return "could not locate geometry field: " + e.Field
}

// UnsupportedGeometryError is returned for geometry kinds the GeoRSS
// encodings cannot represent.
type UnsupportedGeometryError struct {
	Format models.GeometryFormat
	Kind   string
}

func (e *UnsupportedGeometryError) Error() string {
	return fmt.Sprintf("a %s GeoRSS geometry of type %s cannot be created", e.Format, e.Kind)
}

// DateParseError is a field-level failure: the resolved content could
// not be interpreted as a date-time.
type DateParseError struct {
	Value string
}

func (e *DateParseError) Error() string {
	return fmt.Sprintf("could not parse %q as a date-time", e.Value)
}

// URIParseError is a field-level failure: the resolved content is not a
// valid link target.
type URIParseError struct {
	Value string
	Err   error
}

func (e *URIParseError) Error() string {
	return fmt.Sprintf("could not parse %q as a URI: %v", e.Value, e.Err)
}

func (e *URIParseError) Unwrap() error { return e.Err }
