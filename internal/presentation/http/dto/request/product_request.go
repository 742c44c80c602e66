package request

import "github.com/shopspring/decimal"

// CreateProductRequest represents a product creation request
type CreateProductRequest struct {
	Reference   string          `json:"reference" binding:"required"`
	Designation string          `json:"designation" binding:"required"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// UpdateProductRequest represents a partial product update
type UpdateProductRequest struct {
	Reference   *string          `json:"reference"`
	Designation *string          `json:"designation"`
	UnitPrice   *decimal.Decimal `json:"unit_price"`
}
