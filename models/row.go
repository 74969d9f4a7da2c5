package models

// Row is one queried record: named field values plus one geometry-typed
// column (an orb.Geometry, or nil when the feature has no shape).
type Row map[string]interface{}
