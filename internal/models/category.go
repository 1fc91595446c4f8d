package models

// Category groups products into a named section of the catalog.
type Category struct {
	ID          uint   `json:"id" gorm:"primaryKey;autoIncrement"`
	Name        string `json:"name" gorm:"type:varchar(100);uniqueIndex;not null"`
	Description string `json:"description" gorm:"type:text"`
}

// TableName overrides the default table name.
func (Category) TableName() string {
	return "categories"
}
