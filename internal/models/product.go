package models

import "github.com/shopspring/decimal"

// Product represents a single catalog entry. The primary key is a generated
// UUID string rather than an autoincrement, so identifiers can be minted
// before the row is written.
type Product struct {
	ID          string          `json:"id" gorm:"primaryKey;type:varchar(50)"`
	Name        string          `json:"name" gorm:"type:varchar(255);not null"`
	Description string          `json:"description" gorm:"type:text"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
	Stock       int             `json:"stock" gorm:"not null;default:0"`
	CategoryID  uint            `json:"category_id" gorm:"not null;index"`
	SKU         *string         `json:"sku" gorm:"column:sku;type:varchar(50);uniqueIndex"`
	ImageURL    string          `json:"image_url" gorm:"type:varchar(255)"`
}

// TableName overrides the default table name.
func (Product) TableName() string {
	return "products"
}
