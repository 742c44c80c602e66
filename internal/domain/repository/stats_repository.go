package repository

import (
	"context"

	"github.com/facturis/facturis-api/internal/domain/enum"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StatusTotalRow is an aggregate of invoice totals for one (status, year)
type StatusTotalRow struct {
	Status      enum.InvoiceStatus
	Year        int
	TotalAmount decimal.Decimal
	Count       int64
}

// MonthlyStatusRow is an aggregate for one (month, status) within a year
type MonthlyStatusRow struct {
	Month       int
	Status      enum.InvoiceStatus
	TotalAmount decimal.Decimal
	Count       int64
}

// ClientSummaryRow is a per-client aggregate split by status
type ClientSummaryRow struct {
	ClientName           string
	TotalAmountPaid      decimal.Decimal
	TotalAmountPending   decimal.Decimal
	TotalAmountCancelled decimal.Decimal
	CountPaid            int64
	CountPending         int64
	CountCancelled       int64
}

// ClientMonthlyRow is an aggregate for one (client, month, status)
type ClientMonthlyRow struct {
	ClientName  string
	Month       int
	Status      enum.InvoiceStatus
	TotalAmount decimal.Decimal
	Count       int64
}

// InvoiceStatsRepository defines the aggregation queries behind the
// reports. All queries are scoped to the requesting user and only count
// documents of type invoice, never quotes. Rows come back sparse; the
// service layer scatters them into complete zero-filled shapes.
type InvoiceStatsRepository interface {
	GetStatusTotals(ctx context.Context, userID uuid.UUID, year *int) ([]StatusTotalRow, error)
	GetMonthlyStatusTotals(ctx context.Context, userID uuid.UUID, year int) ([]MonthlyStatusRow, error)
	GetClientSummaries(ctx context.Context, userID uuid.UUID, year *int) ([]ClientSummaryRow, error)
	GetClientMonthlyTotals(ctx context.Context, userID uuid.UUID, year int) ([]ClientMonthlyRow, error)
}
