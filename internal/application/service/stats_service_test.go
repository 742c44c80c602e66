package service

import (
	"testing"

	"github.com/facturis/facturis-api/internal/domain/enum"
	"github.com/facturis/facturis-api/internal/domain/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScatterMonthlyRowsEmptyYear(t *testing.T) {
	matrix := scatterMonthlyRows(nil)

	require.Len(t, matrix, 3)
	for _, status := range enum.InvoiceStatuses() {
		series, ok := matrix[status]
		require.True(t, ok, "missing series for %s", status)
		require.Len(t, series, 12)
		for month, slot := range series {
			assert.True(t, slot.TotalAmount.IsZero(), "%s month %d amount", status, month+1)
			assert.Zero(t, slot.Count, "%s month %d count", status, month+1)
		}
	}
}

func TestScatterMonthlyRowsPlacesRowsByMonth(t *testing.T) {
	rows := []repository.MonthlyStatusRow{
		{Month: 3, Status: enum.InvoiceStatusPaid, TotalAmount: decimal.RequireFromString("200"), Count: 1},
		{Month: 12, Status: enum.InvoiceStatusPending, TotalAmount: decimal.RequireFromString("75.5"), Count: 2},
	}

	matrix := scatterMonthlyRows(rows)

	paid := matrix[enum.InvoiceStatusPaid]
	require.Len(t, paid, 12)
	assert.True(t, paid[2].TotalAmount.Equal(decimal.RequireFromString("200")))
	assert.Equal(t, int64(1), paid[2].Count)
	// Every other paid month stays zeroed
	for month, slot := range paid {
		if month == 2 {
			continue
		}
		assert.True(t, slot.TotalAmount.IsZero(), "paid month %d", month+1)
	}

	pending := matrix[enum.InvoiceStatusPending]
	assert.True(t, pending[11].TotalAmount.Equal(decimal.RequireFromString("75.5")))
	assert.Equal(t, int64(2), pending[11].Count)

	cancelled := matrix[enum.InvoiceStatusCancelled]
	for month, slot := range cancelled {
		assert.True(t, slot.TotalAmount.IsZero(), "cancelled month %d", month+1)
	}
}

func TestScatterMonthlyRowsIgnoresBadRows(t *testing.T) {
	rows := []repository.MonthlyStatusRow{
		{Month: 0, Status: enum.InvoiceStatusPaid, TotalAmount: decimal.RequireFromString("10"), Count: 1},
		{Month: 13, Status: enum.InvoiceStatusPaid, TotalAmount: decimal.RequireFromString("10"), Count: 1},
		{Month: 5, Status: enum.InvoiceStatus("draft"), TotalAmount: decimal.RequireFromString("10"), Count: 1},
	}

	matrix := scatterMonthlyRows(rows)

	for _, status := range enum.InvoiceStatuses() {
		for month, slot := range matrix[status] {
			assert.True(t, slot.TotalAmount.IsZero(), "%s month %d", status, month+1)
		}
	}
	_, exists := matrix[enum.InvoiceStatus("draft")]
	assert.False(t, exists)
}

func TestScatterClientMonthlyRows(t *testing.T) {
	rows := []repository.ClientMonthlyRow{
		{ClientName: "Acme", Month: 1, Status: enum.InvoiceStatusPaid, TotalAmount: decimal.RequireFromString("500"), Count: 2},
		{ClientName: "Acme", Month: 1, Status: enum.InvoiceStatusPending, TotalAmount: decimal.RequireFromString("120"), Count: 1},
		{ClientName: "Globex", Month: 6, Status: enum.InvoiceStatusCancelled, TotalAmount: decimal.RequireFromString("80"), Count: 1},
	}

	matrix := scatterClientMonthlyRows(rows)

	require.Len(t, matrix, 2)

	acme := matrix["Acme"]
	require.Len(t, acme, 12)
	assert.True(t, acme[0].Paid.TotalAmount.Equal(decimal.RequireFromString("500")))
	assert.Equal(t, int64(2), acme[0].Paid.Count)
	assert.True(t, acme[0].Pending.TotalAmount.Equal(decimal.RequireFromString("120")))
	assert.True(t, acme[0].Cancelled.TotalAmount.IsZero())
	assert.True(t, acme[5].Paid.TotalAmount.IsZero())

	globex := matrix["Globex"]
	assert.True(t, globex[5].Cancelled.TotalAmount.Equal(decimal.RequireFromString("80")))
	assert.True(t, globex[5].Paid.TotalAmount.IsZero())
}

func TestScatterClientMonthlyRowsEmpty(t *testing.T) {
	matrix := scatterClientMonthlyRows(nil)
	assert.Empty(t, matrix)
}
