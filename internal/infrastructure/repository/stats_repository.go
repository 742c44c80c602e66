package repository

import (
	"context"

	"github.com/facturis/facturis-api/internal/domain/enum"
	domainRepo "github.com/facturis/facturis-api/internal/domain/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type invoiceStatsRepository struct {
	db *gorm.DB
}

// NewInvoiceStatsRepository creates a new invoice stats repository
func NewInvoiceStatsRepository(db *gorm.DB) domainRepo.InvoiceStatsRepository {
	return &invoiceStatsRepository{db: db}
}

// Raw queries bypass gorm's soft-delete handling, so every WHERE clause
// repeats deleted_at IS NULL. Quotes never count toward statistics.

func (r *invoiceStatsRepository) GetStatusTotals(ctx context.Context, userID uuid.UUID, year *int) ([]domainRepo.StatusTotalRow, error) {
	var rows []domainRepo.StatusTotalRow

	query := `
		SELECT
			status,
			EXTRACT(YEAR FROM date)::int AS year,
			COALESCE(SUM(total), 0) AS total_amount,
			COUNT(*) AS count
		FROM invoices
		WHERE user_id = ? AND type = ? AND deleted_at IS NULL`
	args := []interface{}{userID, enum.InvoiceTypeInvoice}

	if year != nil {
		query += ` AND EXTRACT(YEAR FROM date)::int = ?`
		args = append(args, *year)
	}

	query += `
		GROUP BY status, EXTRACT(YEAR FROM date)
		ORDER BY year, status`

	err := r.db.WithContext(ctx).Raw(query, args...).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *invoiceStatsRepository) GetMonthlyStatusTotals(ctx context.Context, userID uuid.UUID, year int) ([]domainRepo.MonthlyStatusRow, error) {
	var rows []domainRepo.MonthlyStatusRow

	err := r.db.WithContext(ctx).Raw(`
		SELECT
			EXTRACT(MONTH FROM date)::int AS month,
			status,
			COALESCE(SUM(total), 0) AS total_amount,
			COUNT(*) AS count
		FROM invoices
		WHERE user_id = ? AND type = ? AND deleted_at IS NULL
		  AND EXTRACT(YEAR FROM date)::int = ?
		GROUP BY EXTRACT(MONTH FROM date), status
		ORDER BY month
	`, userID, enum.InvoiceTypeInvoice, year).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *invoiceStatsRepository) GetClientSummaries(ctx context.Context, userID uuid.UUID, year *int) ([]domainRepo.ClientSummaryRow, error) {
	var rows []domainRepo.ClientSummaryRow

	query := `
		SELECT
			client_name,
			COALESCE(SUM(total) FILTER (WHERE status = 'paid'), 0)      AS total_amount_paid,
			COALESCE(SUM(total) FILTER (WHERE status = 'pending'), 0)   AS total_amount_pending,
			COALESCE(SUM(total) FILTER (WHERE status = 'cancelled'), 0) AS total_amount_cancelled,
			COUNT(*) FILTER (WHERE status = 'paid')      AS count_paid,
			COUNT(*) FILTER (WHERE status = 'pending')   AS count_pending,
			COUNT(*) FILTER (WHERE status = 'cancelled') AS count_cancelled
		FROM invoices
		WHERE user_id = ? AND type = ? AND deleted_at IS NULL`
	args := []interface{}{userID, enum.InvoiceTypeInvoice}

	if year != nil {
		query += ` AND EXTRACT(YEAR FROM date)::int = ?`
		args = append(args, *year)
	}

	query += `
		GROUP BY client_name
		ORDER BY client_name`

	err := r.db.WithContext(ctx).Raw(query, args...).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *invoiceStatsRepository) GetClientMonthlyTotals(ctx context.Context, userID uuid.UUID, year int) ([]domainRepo.ClientMonthlyRow, error) {
	var rows []domainRepo.ClientMonthlyRow

	err := r.db.WithContext(ctx).Raw(`
		SELECT
			client_name,
			EXTRACT(MONTH FROM date)::int AS month,
			status,
			COALESCE(SUM(total), 0) AS total_amount,
			COUNT(*) AS count
		FROM invoices
		WHERE user_id = ? AND type = ? AND deleted_at IS NULL
		  AND EXTRACT(YEAR FROM date)::int = ?
		GROUP BY client_name, EXTRACT(MONTH FROM date), status
		ORDER BY client_name, month
	`, userID, enum.InvoiceTypeInvoice, year).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
