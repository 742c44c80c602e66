package entity

import (
	"time"

	"github.com/facturis/facturis-api/internal/domain/enum"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ClientSnapshot is the client information embedded in an invoice at the
// moment it was issued. It stays frozen even if the linked client record
// changes later.
type ClientSnapshot struct {
	Name      string  `gorm:"size:255;not null" json:"name"`
	Address   string  `gorm:"type:text;not null" json:"address"`
	Email     *string `gorm:"size:255" json:"email,omitempty"`
	Telephone string  `gorm:"size:50;not null" json:"telephone"`
}

// Invoice represents an invoice or a quote. Total and Conversion are
// derived on every write: Total is the sum of item totals and Conversion
// is Total expressed in the base currency.
type Invoice struct {
	ID            uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	UserID        uuid.UUID          `gorm:"type:uuid;not null;index:idx_invoices_user_number,unique" json:"user_id"`
	ClientID      *uuid.UUID         `gorm:"type:uuid;index" json:"client_id,omitempty"`
	Client        ClientSnapshot     `gorm:"embedded;embeddedPrefix:client_" json:"client"`
	InvoiceNumber int64              `gorm:"not null;index:idx_invoices_user_number,unique" json:"invoice_number"`
	Date          time.Time          `gorm:"not null" json:"date"`
	Total         decimal.Decimal    `gorm:"type:numeric(18,4);not null" json:"total"`
	Conversion    decimal.Decimal    `gorm:"type:numeric(18,4);not null" json:"conversion"`
	Type          enum.InvoiceType   `gorm:"size:20;not null" json:"type"`
	Status        enum.InvoiceStatus `gorm:"size:20;not null;default:'pending'" json:"status"`
	Currency      enum.Currency      `gorm:"size:10;not null;default:'CFA'" json:"currency"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
	DeletedAt     gorm.DeletedAt     `gorm:"index" json:"-"`

	// Relationships
	User         User          `gorm:"foreignKey:UserID" json:"-"`
	ClientRecord *Client       `gorm:"foreignKey:ClientID" json:"client_record,omitempty"`
	Items        []InvoiceItem `gorm:"foreignKey:InvoiceID" json:"items,omitempty"`
}

// BeforeCreate generates a UUID before creating a new invoice
func (i *Invoice) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Invoice model
func (Invoice) TableName() string {
	return "invoices"
}

// InvoiceItem represents a line item embedded in an invoice. Items have
// no life of their own outside their invoice. The total is supplied by
// the caller, not derived from quantity and price.
type InvoiceItem struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	InvoiceID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"invoice_id"`
	Position    int             `gorm:"not null;default:0" json:"position"`
	Ref         string          `gorm:"size:100;not null" json:"ref"`
	Description string          `gorm:"type:text;not null" json:"description"`
	Category    *string         `gorm:"size:100" json:"category,omitempty"`
	Quantity    decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"quantity"`
	Price       decimal.Decimal `gorm:"type:numeric(18,4);not null" json:"price"`
	Total       decimal.Decimal `gorm:"type:numeric(18,4);not null" json:"total"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`

	// Relationships
	Invoice Invoice `gorm:"foreignKey:InvoiceID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new invoice item
func (it *InvoiceItem) BeforeCreate(tx *gorm.DB) error {
	if it.ID == uuid.Nil {
		it.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the InvoiceItem model
func (InvoiceItem) TableName() string {
	return "invoice_items"
}
