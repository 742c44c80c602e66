package service

import (
	"context"

	"github.com/facturis/facturis-api/internal/domain/enum"
	"github.com/facturis/facturis-api/internal/domain/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StatsService builds the invoice reports. The grouping happens in the
// database; this layer only scatters the sparse rows into complete,
// zero-filled shapes so charting consumers always see all twelve months
// and every status label, even when the year holds no data.
type StatsService struct {
	statsRepo repository.InvoiceStatsRepository
}

// NewStatsService creates a new stats service
func NewStatsService(statsRepo repository.InvoiceStatsRepository) *StatsService {
	return &StatsService{statsRepo: statsRepo}
}

// MonthSlot is one month's aggregate for one status
type MonthSlot struct {
	TotalAmount decimal.Decimal `json:"totalAmount"`
	Count       int64           `json:"count"`
}

// StatusTotal is an aggregate of invoice totals for one (status, year)
type StatusTotal struct {
	Status      enum.InvoiceStatus `json:"status"`
	Year        int                `json:"year"`
	TotalAmount decimal.Decimal    `json:"totalAmount"`
	Count       int64              `json:"count"`
}

// ClientSummary is a per-client aggregate split by status
type ClientSummary struct {
	Client               string          `json:"client"`
	TotalAmountPaid      decimal.Decimal `json:"totalAmountPaid"`
	TotalAmountPending   decimal.Decimal `json:"totalAmountPending"`
	TotalAmountCancelled decimal.Decimal `json:"totalAmountCancelled"`
	CountPaid            int64           `json:"countPaid"`
	CountPending         int64           `json:"countPending"`
	CountCancelled       int64           `json:"countCancelled"`
}

// ClientMonthSlot holds one month's aggregates for a client, per status
type ClientMonthSlot struct {
	Paid      MonthSlot `json:"paid"`
	Pending   MonthSlot `json:"pending"`
	Cancelled MonthSlot `json:"cancelled"`
}

// GetStatusTotals returns invoice totals grouped by status and year,
// optionally restricted to one year.
func (s *StatsService) GetStatusTotals(ctx context.Context, userID uuid.UUID, year *int) ([]StatusTotal, error) {
	rows, err := s.statsRepo.GetStatusTotals(ctx, userID, year)
	if err != nil {
		return nil, err
	}

	totals := make([]StatusTotal, 0, len(rows))
	for _, row := range rows {
		totals = append(totals, StatusTotal{
			Status:      row.Status,
			Year:        row.Year,
			TotalAmount: row.TotalAmount,
			Count:       row.Count,
		})
	}
	return totals, nil
}

// GetMonthlyStatusMatrix returns, for the given year, a fixed 12-slot
// series per status. Months without invoices stay as zeroed slots.
func (s *StatsService) GetMonthlyStatusMatrix(ctx context.Context, userID uuid.UUID, year int) (map[enum.InvoiceStatus][]MonthSlot, error) {
	rows, err := s.statsRepo.GetMonthlyStatusTotals(ctx, userID, year)
	if err != nil {
		return nil, err
	}
	return scatterMonthlyRows(rows), nil
}

// GetClientSummaries returns per-client paid/pending/cancelled totals and
// counts, optionally restricted to one year.
func (s *StatsService) GetClientSummaries(ctx context.Context, userID uuid.UUID, year *int) ([]ClientSummary, error) {
	rows, err := s.statsRepo.GetClientSummaries(ctx, userID, year)
	if err != nil {
		return nil, err
	}

	summaries := make([]ClientSummary, 0, len(rows))
	for _, row := range rows {
		summaries = append(summaries, ClientSummary{
			Client:               row.ClientName,
			TotalAmountPaid:      row.TotalAmountPaid,
			TotalAmountPending:   row.TotalAmountPending,
			TotalAmountCancelled: row.TotalAmountCancelled,
			CountPaid:            row.CountPaid,
			CountPending:         row.CountPending,
			CountCancelled:       row.CountCancelled,
		})
	}
	return summaries, nil
}

// GetClientMonthlyMatrix returns, for each client seen in the given year,
// a 12-slot series of per-status aggregates keyed by client name.
func (s *StatsService) GetClientMonthlyMatrix(ctx context.Context, userID uuid.UUID, year int) (map[string][]ClientMonthSlot, error) {
	rows, err := s.statsRepo.GetClientMonthlyTotals(ctx, userID, year)
	if err != nil {
		return nil, err
	}
	return scatterClientMonthlyRows(rows), nil
}

// zeroMonthSlots pre-sizes a year of zeroed slots; decimal.Decimal's zero
// value marshals as "0", so the slots are ready for JSON as-is.
func zeroMonthSlots() []MonthSlot {
	slots := make([]MonthSlot, 12)
	for i := range slots {
		slots[i] = MonthSlot{TotalAmount: decimal.Zero}
	}
	return slots
}

func scatterMonthlyRows(rows []repository.MonthlyStatusRow) map[enum.InvoiceStatus][]MonthSlot {
	matrix := make(map[enum.InvoiceStatus][]MonthSlot, len(enum.InvoiceStatuses()))
	for _, status := range enum.InvoiceStatuses() {
		matrix[status] = zeroMonthSlots()
	}

	for _, row := range rows {
		if row.Month < 1 || row.Month > 12 {
			continue
		}
		series, ok := matrix[row.Status]
		if !ok {
			continue
		}
		series[row.Month-1] = MonthSlot{TotalAmount: row.TotalAmount, Count: row.Count}
	}
	return matrix
}

func scatterClientMonthlyRows(rows []repository.ClientMonthlyRow) map[string][]ClientMonthSlot {
	matrix := make(map[string][]ClientMonthSlot)

	for _, row := range rows {
		if row.Month < 1 || row.Month > 12 {
			continue
		}
		series, ok := matrix[row.ClientName]
		if !ok {
			series = make([]ClientMonthSlot, 12)
			for i := range series {
				series[i] = ClientMonthSlot{
					Paid:      MonthSlot{TotalAmount: decimal.Zero},
					Pending:   MonthSlot{TotalAmount: decimal.Zero},
					Cancelled: MonthSlot{TotalAmount: decimal.Zero},
				}
			}
			matrix[row.ClientName] = series
		}

		slot := MonthSlot{TotalAmount: row.TotalAmount, Count: row.Count}
		switch row.Status {
		case enum.InvoiceStatusPaid:
			series[row.Month-1].Paid = slot
		case enum.InvoiceStatusPending:
			series[row.Month-1].Pending = slot
		case enum.InvoiceStatusCancelled:
			series[row.Month-1].Cancelled = slot
		}
	}
	return matrix
}
