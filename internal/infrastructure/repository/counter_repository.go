package repository

import (
	"context"

	domainRepo "github.com/facturis/facturis-api/internal/domain/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type invoiceCounterRepository struct {
	db *gorm.DB
}

// NewInvoiceCounterRepository creates a new invoice counter repository
func NewInvoiceCounterRepository(db *gorm.DB) domainRepo.InvoiceCounterRepository {
	return &invoiceCounterRepository{db: db}
}

// NextInvoiceNumber increments and returns the counter for userID in a
// single upsert statement. Doing this as a read followed by a write would
// hand out duplicate numbers under concurrent creation, which is exactly
// the failure this table exists to prevent.
func (r *invoiceCounterRepository) NextInvoiceNumber(ctx context.Context, userID uuid.UUID) (int64, error) {
	var next int64
	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO invoice_counters (id, user_id, last_invoice_number, created_at, updated_at)
		VALUES (?, ?, 1, NOW(), NOW())
		ON CONFLICT (user_id)
		DO UPDATE SET last_invoice_number = invoice_counters.last_invoice_number + 1, updated_at = NOW()
		RETURNING last_invoice_number
	`, uuid.New(), userID).Scan(&next).Error
	if err != nil {
		return 0, err
	}
	return next, nil
}
