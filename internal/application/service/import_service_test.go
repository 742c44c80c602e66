package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/facturis/facturis-api/internal/domain/enum"
	"github.com/facturis/facturis-api/pkg/apperror"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func invoiceHeaders() []string {
	return []string{
		"invoice_id", "client_name", "client_address", "client_telephone", "client_email",
		"date", "type", "status", "currency",
		"ref", "description", "category", "quantity", "price", "total",
	}
}

func TestGroupRowsGroupsByInvoiceID(t *testing.T) {
	headers := invoiceHeaders()
	rows := [][]string{
		{"INV-1", "Acme", "12 Rue A", "770000000", "", "2025-03-01", "invoice", "paid", "CFA", "R1", "Widget", "", "2", "50", "100"},
		{"INV-1", "Acme", "12 Rue A", "770000000", "", "2025-03-01", "invoice", "paid", "CFA", "R2", "Gadget", "", "1", "50", "50"},
		{"INV-2", "Globex", "34 Rue B", "780000000", "", "2025-04-01", "invoice", "pending", "CFA", "R3", "Bolt", "", "10", "5", "50"},
	}

	groups, err := groupRows(headers, rows)
	require.NoError(t, err)
	require.Len(t, groups, 2)

	assert.Equal(t, "INV-1", groups[0].id)
	assert.Len(t, groups[0].rows, 2)
	assert.Equal(t, "INV-2", groups[1].id)
	assert.Len(t, groups[1].rows, 1)
}

func TestGroupRowsPreservesFirstSeenOrder(t *testing.T) {
	headers := []string{"invoice_id", "ref"}
	rows := [][]string{
		{"B", "r1"},
		{"A", "r2"},
		{"B", "r3"},
	}

	groups, err := groupRows(headers, rows)
	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, "B", groups[0].id)
	assert.Len(t, groups[0].rows, 2)
	assert.Equal(t, "A", groups[1].id)
}

func TestGroupRowsRejectsMissingInvoiceID(t *testing.T) {
	headers := []string{"invoice_id", "ref"}
	rows := [][]string{
		{"INV-1", "r1"},
		{"", "r2"},
	}

	_, err := groupRows(headers, rows)
	require.Error(t, err)
	appErr := apperror.GetAppError(err)
	assert.Equal(t, 400, appErr.Code)
	assert.Contains(t, appErr.Message, "Row 3")
}

func TestBuildInvoiceInput(t *testing.T) {
	headers := invoiceHeaders()
	rows := [][]string{
		{"INV-1", "Acme", "12 Rue A", "770000000", "acme@example.com", "2025-03-01", "invoice", "paid", "EUR", "R1", "Widget", "Hardware", "2", "50", "100"},
		{"INV-1", "Acme", "12 Rue A", "770000000", "acme@example.com", "2025-03-01", "invoice", "paid", "EUR", "R2", "Gadget", "", "1", "50,5", "50,5"},
	}

	groups, err := groupRows(headers, rows)
	require.NoError(t, err)
	require.Len(t, groups, 1)

	input, err := buildInvoiceInput(groups[0])
	require.NoError(t, err)

	assert.Equal(t, "Acme", input.Client.Name)
	assert.Equal(t, "12 Rue A", input.Client.Address)
	assert.Equal(t, "770000000", input.Client.Telephone)
	require.NotNil(t, input.Client.Email)
	assert.Equal(t, "acme@example.com", *input.Client.Email)

	require.NotNil(t, input.Date)
	assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), *input.Date)
	assert.Equal(t, enum.InvoiceTypeInvoice, input.Type)
	assert.Equal(t, enum.InvoiceStatusPaid, input.Status)
	assert.Equal(t, enum.CurrencyEUR, input.Currency)

	require.Len(t, input.Items, 2)
	assert.Equal(t, "R1", input.Items[0].Ref)
	assert.Equal(t, "Widget", input.Items[0].Description)
	require.NotNil(t, input.Items[0].Category)
	assert.Equal(t, "Hardware", *input.Items[0].Category)
	assert.True(t, input.Items[0].Total.Equal(decimal.RequireFromString("100")))

	// Comma decimal separators are accepted
	assert.Nil(t, input.Items[1].Category)
	assert.True(t, input.Items[1].Price.Equal(decimal.RequireFromString("50.5")))
	assert.True(t, input.Items[1].Total.Equal(decimal.RequireFromString("50.5")))
}

func TestBuildInvoiceInputDefaultsTypeToInvoice(t *testing.T) {
	headers := []string{"invoice_id", "client_name", "client_address", "client_telephone", "ref", "description", "total"}
	rows := [][]string{
		{"INV-9", "Acme", "12 Rue A", "770000000", "R1", "Widget", "10"},
	}

	groups, err := groupRows(headers, rows)
	require.NoError(t, err)

	input, err := buildInvoiceInput(groups[0])
	require.NoError(t, err)
	assert.Equal(t, enum.InvoiceTypeInvoice, input.Type)
	assert.Nil(t, input.Date)
}

func TestBuildInvoiceInputRejectsBadAmounts(t *testing.T) {
	headers := []string{"invoice_id", "client_name", "client_address", "client_telephone", "ref", "description", "total"}
	rows := [][]string{
		{"INV-9", "Acme", "12 Rue A", "770000000", "R1", "Widget", "ten"},
	}

	groups, err := groupRows(headers, rows)
	require.NoError(t, err)

	_, err = buildInvoiceInput(groups[0])
	require.Error(t, err)
	appErr := apperror.GetAppError(err)
	assert.Equal(t, 400, appErr.Code)
}

func TestImportInvoicesCreatesOneInvoicePerGroup(t *testing.T) {
	invoiceSvc, invoiceRepo, counterRepo, _ := newTestInvoiceService()
	svc := NewImportService(invoiceSvc, nil)
	userID := uuid.New()

	rows := [][]string{
		invoiceHeaders(),
		{"INV-1", "Acme", "12 Rue A", "770000000", "", "2025-03-01", "invoice", "paid", "CFA", "R1", "Widget", "", "2", "50", "100"},
		{"INV-1", "Acme", "12 Rue A", "770000000", "", "2025-03-01", "invoice", "paid", "CFA", "R2", "Gadget", "", "1", "50", "50"},
	}

	imported, err := svc.ImportInvoices(context.Background(), userID, rows)
	require.NoError(t, err)
	assert.Equal(t, 1, imported)

	// Two rows sharing an invoice_id become one invoice with two items,
	// drawing a single number from the owner's counter.
	require.Len(t, invoiceRepo.invoices, 1)
	assert.Equal(t, int64(1), counterRepo.counters[userID])
	for _, invoice := range invoiceRepo.invoices {
		require.Len(t, invoice.Items, 2)
		assert.True(t, invoice.Total.Equal(decimal.RequireFromString("150")))
	}
}

func TestImportInvoicesRejectsHeaderOnlySheet(t *testing.T) {
	invoiceSvc, _, _, _ := newTestInvoiceService()
	svc := NewImportService(invoiceSvc, nil)

	for _, rows := range [][][]string{nil, {invoiceHeaders()}} {
		_, err := svc.ImportInvoices(context.Background(), uuid.New(), rows)
		require.Error(t, err)
		appErr := apperror.GetAppError(err)
		assert.Equal(t, 400, appErr.Code)
	}
}

func TestImportInvoicesKeepsEarlierGroupsOnFailure(t *testing.T) {
	invoiceSvc, invoiceRepo, counterRepo, _ := newTestInvoiceService()
	svc := NewImportService(invoiceSvc, nil)
	userID := uuid.New()

	rows := [][]string{
		invoiceHeaders(),
		{"INV-1", "Acme", "12 Rue A", "770000000", "", "2025-03-01", "invoice", "paid", "CFA", "R1", "Widget", "", "2", "50", "100"},
		{"INV-2", "", "34 Rue B", "780000000", "", "2025-04-01", "invoice", "pending", "CFA", "R2", "Bolt", "", "1", "50", "50"},
	}

	imported, err := svc.ImportInvoices(context.Background(), userID, rows)
	require.Error(t, err)
	appErr := apperror.GetAppError(err)
	assert.Equal(t, 400, appErr.Code)

	// The first group stays persisted; only the failing one is rejected.
	assert.Equal(t, 1, imported)
	assert.Len(t, invoiceRepo.invoices, 1)
	assert.Equal(t, int64(1), counterRepo.counters[userID])
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		in      string
		want    *time.Time
		wantErr bool
	}{
		{in: "", want: nil},
		{in: "2025-03-01", want: timePtr(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC))},
		{in: "01/03/2025", want: timePtr(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC))},
		{in: "next tuesday", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseDate(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.True(t, tt.want.Equal(*got))
		})
	}
}

func timePtr(t time.Time) *time.Time { return &t }

func TestParseWorkbookReadsFirstSheet(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]interface{}{"reference", "designation", "unit_price"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]interface{}{"P-1", "Widget", "150"}))

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	svc := NewImportService(nil, nil)
	rows, err := svc.ParseWorkbook(buf)
	require.NoError(t, err)

	require.Len(t, rows, 2)
	assert.Equal(t, []string{"reference", "designation", "unit_price"}, rows[0])
	assert.Equal(t, []string{"P-1", "Widget", "150"}, rows[1])
}

func TestParseWorkbookRejectsGarbage(t *testing.T) {
	svc := NewImportService(nil, nil)
	_, err := svc.ParseWorkbook(strings.NewReader("this is not a spreadsheet"))
	require.Error(t, err)
	appErr := apperror.GetAppError(err)
	assert.Equal(t, 400, appErr.Code)
}
