package models

// TopSellingProduct is a report row: a product together with the summed
// quantity from its sale lines.
type TopSellingProduct struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	SKU       *string `json:"sku"`
	TotalSold int     `json:"total_sold"`
}

// CatalogSummary holds the aggregate counts exposed by the summary endpoint.
type CatalogSummary struct {
	TotalProducts     int64 `json:"total_products"`
	TotalCategories   int64 `json:"total_categories"`
	LowStockProducts  int64 `json:"low_stock_products"`
	LowStockThreshold int   `json:"low_stock_threshold"`
}
