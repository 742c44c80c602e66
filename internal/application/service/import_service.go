package service

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/facturis/facturis-api/internal/domain/entity"
	"github.com/facturis/facturis-api/internal/domain/enum"
	"github.com/facturis/facturis-api/internal/domain/repository"
	"github.com/facturis/facturis-api/pkg/apperror"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// ImportService turns uploaded spreadsheets into invoices or products.
// Row 0 is the header; data rows repeat invoice-level fields per line
// item and are grouped by the source invoice_id column. Groups are
// processed one after another; a failing group aborts the rest of the
// request but already-persisted groups stay in place.
type ImportService struct {
	invoiceService *InvoiceService
	productRepo    repository.ProductRepository
}

// NewImportService creates a new import service
func NewImportService(invoiceService *InvoiceService, productRepo repository.ProductRepository) *ImportService {
	return &ImportService{
		invoiceService: invoiceService,
		productRepo:    productRepo,
	}
}

// ParseWorkbook reads the first sheet of an xlsx workbook into rows
func (s *ImportService) ParseWorkbook(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, apperror.NewBadRequestError("File is not a valid spreadsheet")
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, apperror.NewBadRequestError("Spreadsheet contains no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	return rows, nil
}

// rowMap pairs a data row with the header row, keyed by the normalized
// header names. Short rows simply omit the trailing columns.
func rowMap(headers, row []string) map[string]string {
	fields := make(map[string]string, len(headers))
	for i, header := range headers {
		key := strings.ToLower(strings.TrimSpace(header))
		if key == "" || i >= len(row) {
			continue
		}
		fields[key] = strings.TrimSpace(row[i])
	}
	return fields
}

type invoiceGroup struct {
	id   string
	rows []map[string]string
}

// groupRows buckets data rows by their invoice_id, preserving the order
// in which each id first appears.
func groupRows(headers []string, rows [][]string) ([]invoiceGroup, error) {
	groups := make([]invoiceGroup, 0)
	index := make(map[string]int)

	for n, row := range rows {
		fields := rowMap(headers, row)
		id := fields["invoice_id"]
		if id == "" {
			return nil, apperror.NewBadRequestError(fmt.Sprintf("Row %d is missing an invoice_id", n+2))
		}
		i, ok := index[id]
		if !ok {
			i = len(groups)
			index[id] = i
			groups = append(groups, invoiceGroup{id: id})
		}
		groups[i].rows = append(groups[i].rows, fields)
	}
	return groups, nil
}

func parseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	for _, layout := range []string{"2006-01-02", "02/01/2006", "01-02-06"} {
		if t, err := time.Parse(layout, s); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("unrecognized date %q", s)
}

func parseAmount(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(strings.ReplaceAll(s, ",", "."))
}

// buildInvoiceInput assembles a create input from one group: invoice
// level fields from the first row, one item per row.
func buildInvoiceInput(group invoiceGroup) (*CreateInvoiceInput, error) {
	first := group.rows[0]

	date, err := parseDate(first["date"])
	if err != nil {
		return nil, apperror.NewBadRequestError(fmt.Sprintf("Invoice %s: %v", group.id, err))
	}

	input := &CreateInvoiceInput{
		Client: ClientSnapshotInput{
			Name:      first["client_name"],
			Address:   first["client_address"],
			Telephone: first["client_telephone"],
		},
		Date:     date,
		Type:     enum.InvoiceType(first["type"]),
		Status:   enum.InvoiceStatus(first["status"]),
		Currency: enum.Currency(first["currency"]),
	}
	if email := first["client_email"]; email != "" {
		input.Client.Email = &email
	}
	if input.Type == "" {
		input.Type = enum.InvoiceTypeInvoice
	}

	for _, fields := range group.rows {
		quantity, err := parseAmount(fields["quantity"])
		if err != nil {
			return nil, apperror.NewBadRequestError(fmt.Sprintf("Invoice %s: invalid quantity %q", group.id, fields["quantity"]))
		}
		price, err := parseAmount(fields["price"])
		if err != nil {
			return nil, apperror.NewBadRequestError(fmt.Sprintf("Invoice %s: invalid price %q", group.id, fields["price"]))
		}
		total, err := parseAmount(fields["total"])
		if err != nil {
			return nil, apperror.NewBadRequestError(fmt.Sprintf("Invoice %s: invalid total %q", group.id, fields["total"]))
		}

		item := InvoiceItemInput{
			Ref:         fields["ref"],
			Description: fields["description"],
			Quantity:    quantity,
			Price:       price,
			Total:       total,
		}
		if category := fields["category"]; category != "" {
			item.Category = &category
		}
		input.Items = append(input.Items, item)
	}

	return input, nil
}

// ImportInvoices creates one invoice per invoice_id group and returns how
// many were persisted. Earlier groups are not rolled back when a later
// one fails.
func (s *ImportService) ImportInvoices(ctx context.Context, userID uuid.UUID, rows [][]string) (int, error) {
	if len(rows) < 2 {
		return 0, apperror.NewBadRequestError("Spreadsheet contains no data rows")
	}

	headers := rows[0]
	groups, err := groupRows(headers, rows[1:])
	if err != nil {
		return 0, err
	}

	imported := 0
	for _, group := range groups {
		input, err := buildInvoiceInput(group)
		if err != nil {
			return imported, err
		}
		if _, err := s.invoiceService.CreateInvoice(ctx, userID, input); err != nil {
			return imported, err
		}
		imported++
	}
	return imported, nil
}

// ImportProducts creates one product per data row. A reference already in
// the owner's catalogue is a conflict.
func (s *ImportService) ImportProducts(ctx context.Context, userID uuid.UUID, rows [][]string) (int, error) {
	if len(rows) < 2 {
		return 0, apperror.NewBadRequestError("Spreadsheet contains no data rows")
	}

	headers := rows[0]
	products := make([]entity.Product, 0, len(rows)-1)
	seen := make(map[string]bool)
	for n, row := range rows[1:] {
		fields := rowMap(headers, row)

		reference := fields["reference"]
		designation := fields["designation"]
		if reference == "" || designation == "" {
			return 0, apperror.NewBadRequestError(fmt.Sprintf("Row %d is missing a reference or designation", n+2))
		}
		if seen[reference] {
			return 0, apperror.NewConflictError(fmt.Sprintf("Duplicate reference %s in spreadsheet", reference))
		}
		seen[reference] = true

		price, err := parseAmount(fields["unit_price"])
		if err != nil {
			return 0, apperror.NewBadRequestError(fmt.Sprintf("Row %d: invalid unit_price %q", n+2, fields["unit_price"]))
		}

		existing, err := s.productRepo.GetByReference(ctx, userID, reference)
		if err != nil {
			return 0, err
		}
		if existing != nil {
			return 0, apperror.NewConflictError(fmt.Sprintf("Product with reference %s already exists", reference))
		}

		products = append(products, entity.Product{
			UserID:      userID,
			Reference:   reference,
			Designation: designation,
			UnitPrice:   price,
		})
	}

	if err := s.productRepo.CreateBatch(ctx, products); err != nil {
		return 0, err
	}
	return len(products), nil
}
