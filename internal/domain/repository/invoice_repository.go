package repository

import (
	"context"
	"time"

	"github.com/facturis/facturis-api/internal/domain/entity"
	"github.com/facturis/facturis-api/internal/domain/enum"
	"github.com/facturis/facturis-api/pkg/pagination"
	"github.com/google/uuid"
)

// InvoiceRepository defines the interface for invoice data operations.
// Every operation is additionally filtered by the owning user so a user
// can never reach another user's invoices; lookups that miss return
// (nil, nil) and the service layer translates that to a typed 404.
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *entity.Invoice) error
	GetByID(ctx context.Context, userID, id uuid.UUID) (*entity.Invoice, error)
	Update(ctx context.Context, invoice *entity.Invoice) error
	// UpdateWithItems replaces the invoice's item list and saves the
	// invoice row in one transaction, so the stored totals can never
	// drift from the stored items.
	UpdateWithItems(ctx context.Context, invoice *entity.Invoice, items []entity.InvoiceItem) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
	List(ctx context.Context, userID uuid.UUID, params *InvoiceFilterParams) ([]entity.Invoice, int64, error)
}

// InvoiceFilterParams contains filtering parameters for invoice queries
type InvoiceFilterParams struct {
	Pagination *pagination.PaginationParams
	Status     *enum.InvoiceStatus
	Type       *enum.InvoiceType
	ClientID   *uuid.UUID
	StartDate  *time.Time
	EndDate    *time.Time
}

// InvoiceCounterRepository issues per-user monotonic invoice numbers.
type InvoiceCounterRepository interface {
	// NextInvoiceNumber atomically increments and returns the counter for
	// the given user, creating the row on first use. The increment and
	// read are one storage-level operation; concurrent calls for the same
	// user never observe the same number.
	NextInvoiceNumber(ctx context.Context, userID uuid.UUID) (int64, error)
}
