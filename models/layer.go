package models

// Model for layers that are allowed to be exported as a feed
type ExportLayer struct {
	ID                string `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	LayerTitle        string `gorm:"column:layer_title" json:"layer_title"`
	DbSchema          string `gorm:"column:db_schema" json:"db_schema"`
	DbTable           string `gorm:"column:db_table" json:"db_table"`
	GeometryType      string `gorm:"column:geometry_type" json:"geometry_type"`
	GeometryFieldName string `gorm:"column:geometry_fieldname" json:"geometry_fieldname"`
	IDFieldName       string `gorm:"column:id_fieldname" json:"id_fieldname"`
	ColumnSelects     string `gorm:"column:column_selects" json:"column_selects"`
	IsActive          bool   `gorm:"column:is_active" json:"is_active"`
	IsPublic          bool   `gorm:"column:is_public" json:"is_public"`
}

func (m *ExportLayer) TableName() string {
	return "map_server.export_layers"
}

// Model for table columns
type TableColumn struct {
	ColumnName string `gorm:"column:column_name" json:"column_name"`
	DataType   string `gorm:"column:data_type" json:"data_type"`
}
