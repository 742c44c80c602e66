package request

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ClientSnapshotRequest is the embedded client block of an invoice write
type ClientSnapshotRequest struct {
	Name      string  `json:"name" binding:"required"`
	Address   string  `json:"address" binding:"required"`
	Email     *string `json:"email"`
	Telephone string  `json:"telephone" binding:"required"`
}

// InvoiceItemRequest is one line item of an invoice write. The total is
// taken as supplied; it is not derived from quantity and price.
type InvoiceItemRequest struct {
	Ref         string          `json:"ref" binding:"required"`
	Description string          `json:"description" binding:"required"`
	Category    *string         `json:"category"`
	Quantity    decimal.Decimal `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	Total       decimal.Decimal `json:"total"`
}

// CreateInvoiceRequest represents an invoice creation request
type CreateInvoiceRequest struct {
	ClientID *uuid.UUID            `json:"client_id"`
	Client   ClientSnapshotRequest `json:"client" binding:"required"`
	Items    []InvoiceItemRequest  `json:"items"`
	Date     *time.Time            `json:"date"`
	Type     string                `json:"type" binding:"required"`
	Status   string                `json:"status"`
	Currency string                `json:"currency"`
}

// UpdateInvoiceRequest represents a partial invoice update. A non-nil
// items array replaces the full item list.
type UpdateInvoiceRequest struct {
	ClientID *uuid.UUID             `json:"client_id"`
	Client   *ClientSnapshotRequest `json:"client"`
	Items    []InvoiceItemRequest   `json:"items"`
	Date     *time.Time             `json:"date"`
	Status   *string                `json:"status"`
	Currency *string                `json:"currency"`
}

// InvoiceFilterRequest represents invoice list filter parameters
type InvoiceFilterRequest struct {
	Status    string `form:"status"`
	Type      string `form:"type"`
	ClientID  string `form:"client_id"`
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
	Page      int    `form:"page"`
	PerPage   int    `form:"per_page"`
}
