package models

import "encoding/json"

// ExportInput is the body of an export operation request. The
// properties payload stays raw until the requested output format
// decides which configuration shape applies.
type ExportInput struct {
	FilterGeometry   json.RawMessage `json:"filterGeometry"`
	GeometryType     string          `json:"geometryType"`
	Where            string          `json:"where"`
	ExportProperties json.RawMessage `json:"exportProperties"`
}

// HasFilterGeometry reports whether a spatial filter was supplied.
func (i *ExportInput) HasFilterGeometry() bool {
	return len(i.FilterGeometry) > 0 && string(i.FilterGeometry) != "null"
}
