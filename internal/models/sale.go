package models

import "time"

// SaleItem is a single sold line referencing a product. The catalog only
// reads this table to build the top-selling report; rows are written by
// whatever order system sits next to this service.
type SaleItem struct {
	ID        uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	ProductID string    `json:"product_id" gorm:"type:varchar(50);not null;index"`
	Quantity  int       `json:"quantity" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName overrides the default table name.
func (SaleItem) TableName() string {
	return "sale_items"
}
