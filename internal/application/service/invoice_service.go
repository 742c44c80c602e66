package service

import (
	"context"
	"time"

	"github.com/facturis/facturis-api/internal/domain/entity"
	"github.com/facturis/facturis-api/internal/domain/enum"
	"github.com/facturis/facturis-api/internal/domain/repository"
	"github.com/facturis/facturis-api/pkg/apperror"
	"github.com/facturis/facturis-api/pkg/pagination"
	"github.com/facturis/facturis-api/pkg/utils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceService handles invoice creation, updates and retrieval. Every
// write passes through the valuator; every new invoice takes exactly one
// number from the counter.
type InvoiceService struct {
	invoiceRepo repository.InvoiceRepository
	counterRepo repository.InvoiceCounterRepository
	clientRepo  repository.ClientRepository
	valuator    *Valuator
}

// NewInvoiceService creates a new invoice service
func NewInvoiceService(
	invoiceRepo repository.InvoiceRepository,
	counterRepo repository.InvoiceCounterRepository,
	clientRepo repository.ClientRepository,
	valuator *Valuator,
) *InvoiceService {
	return &InvoiceService{
		invoiceRepo: invoiceRepo,
		counterRepo: counterRepo,
		clientRepo:  clientRepo,
		valuator:    valuator,
	}
}

// InvoiceItemInput represents one line item in an invoice write
type InvoiceItemInput struct {
	Ref         string
	Description string
	Category    *string
	Quantity    decimal.Decimal
	Price       decimal.Decimal
	Total       decimal.Decimal
}

// ClientSnapshotInput carries the client details frozen into the invoice
type ClientSnapshotInput struct {
	Name      string
	Address   string
	Email     *string
	Telephone string
}

// CreateInvoiceInput represents the create invoice input
type CreateInvoiceInput struct {
	ClientID *uuid.UUID
	Client   ClientSnapshotInput
	Items    []InvoiceItemInput
	Date     *time.Time
	Type     enum.InvoiceType
	Status   enum.InvoiceStatus
	Currency enum.Currency
}

// UpdateInvoiceInput represents a partial invoice update. Nil fields are
// left untouched; a non-nil item list replaces the previous one and
// triggers revaluation.
type UpdateInvoiceInput struct {
	ClientID *uuid.UUID
	Client   *ClientSnapshotInput
	Items    []InvoiceItemInput
	Date     *time.Time
	Status   *enum.InvoiceStatus
	Currency *enum.Currency
}

func validateSnapshot(in *ClientSnapshotInput) []apperror.FieldError {
	var fieldErrors []apperror.FieldError
	if in.Name == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "client.name", Message: "Client name is required"})
	}
	if in.Address == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "client.address", Message: "Client address is required"})
	}
	if in.Telephone == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "client.telephone", Message: "Client telephone is required"})
	}
	if in.Email != nil && *in.Email != "" && !utils.IsValidEmail(*in.Email) {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "client.email", Message: "Client email is not a valid address"})
	}
	return fieldErrors
}

func validateItems(items []InvoiceItemInput) []apperror.FieldError {
	var fieldErrors []apperror.FieldError
	for _, item := range items {
		if item.Ref == "" {
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: "items.ref", Message: "Item ref is required"})
		}
		if item.Description == "" {
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: "items.description", Message: "Item description is required"})
		}
		if item.Quantity.IsNegative() {
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: "items.quantity", Message: "Item quantity cannot be negative"})
		}
		if item.Price.IsNegative() {
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: "items.price", Message: "Item price cannot be negative"})
		}
	}
	return fieldErrors
}

func buildItems(inputs []InvoiceItemInput) []entity.InvoiceItem {
	items := make([]entity.InvoiceItem, 0, len(inputs))
	for i, in := range inputs {
		items = append(items, entity.InvoiceItem{
			Position:    i,
			Ref:         in.Ref,
			Description: in.Description,
			Category:    in.Category,
			Quantity:    in.Quantity,
			Price:       in.Price,
			Total:       in.Total,
		})
	}
	return items
}

// CreateInvoice creates an invoice for userID, assigning the next invoice
// number from the per-user counter and deriving total and conversion.
func (s *InvoiceService) CreateInvoice(ctx context.Context, userID uuid.UUID, input *CreateInvoiceInput) (*entity.Invoice, error) {
	if input.Status == "" {
		input.Status = enum.InvoiceStatusPending
	}
	if input.Currency == "" {
		input.Currency = enum.CurrencyCFA
	}

	var fieldErrors []apperror.FieldError
	if !input.Type.Valid() {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "type", Message: "Type must be quote or invoice"})
	}
	if !input.Status.Valid() {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "status", Message: "Status must be pending, paid or cancelled"})
	}
	if !input.Currency.Valid() {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "currency", Message: "Currency must be CFA, EUR or USD"})
	}
	fieldErrors = append(fieldErrors, validateSnapshot(&input.Client)...)
	fieldErrors = append(fieldErrors, validateItems(input.Items)...)
	if len(fieldErrors) > 0 {
		return nil, apperror.NewValidationError(fieldErrors)
	}

	if input.ClientID != nil {
		client, err := s.clientRepo.GetByID(ctx, userID, *input.ClientID)
		if err != nil {
			return nil, err
		}
		if client == nil {
			return nil, apperror.NewNotFoundError("Client")
		}
	}

	number, err := s.counterRepo.NextInvoiceNumber(ctx, userID)
	if err != nil {
		return nil, err
	}

	items := buildItems(input.Items)
	total, conversion := s.valuator.ComputeTotals(items, input.Currency)

	date := time.Now()
	if input.Date != nil {
		date = *input.Date
	}

	invoice := &entity.Invoice{
		UserID: userID,
		Client: entity.ClientSnapshot{
			Name:      input.Client.Name,
			Address:   input.Client.Address,
			Email:     input.Client.Email,
			Telephone: input.Client.Telephone,
		},
		ClientID:      input.ClientID,
		InvoiceNumber: number,
		Date:          date,
		Total:         total,
		Conversion:    conversion,
		Type:          input.Type,
		Status:        input.Status,
		Currency:      input.Currency,
		Items:         items,
	}

	if err := s.invoiceRepo.Create(ctx, invoice); err != nil {
		return nil, err
	}

	return invoice, nil
}

// GetInvoice returns a single invoice owned by userID
func (s *InvoiceService) GetInvoice(ctx context.Context, userID, id uuid.UUID) (*entity.Invoice, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}
	return invoice, nil
}

// ListInvoices returns a page of invoices owned by userID
func (s *InvoiceService) ListInvoices(ctx context.Context, userID uuid.UUID, params *repository.InvoiceFilterParams) (*pagination.PaginatedResult[entity.Invoice], error) {
	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}
	invoices, total, err := s.invoiceRepo.List(ctx, userID, params)
	if err != nil {
		return nil, err
	}
	return pagination.NewPaginatedResult(invoices, pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)), nil
}

// UpdateInvoice applies a partial update. When the item list is replaced
// the totals are recomputed exactly as on creation; a currency change
// alone also refreshes the conversion.
func (s *InvoiceService) UpdateInvoice(ctx context.Context, userID, id uuid.UUID, input *UpdateInvoiceInput) (*entity.Invoice, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}

	var fieldErrors []apperror.FieldError
	if input.Client != nil {
		fieldErrors = append(fieldErrors, validateSnapshot(input.Client)...)
	}
	if input.Items != nil {
		fieldErrors = append(fieldErrors, validateItems(input.Items)...)
	}
	if input.Status != nil && !input.Status.Valid() {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "status", Message: "Status must be pending, paid or cancelled"})
	}
	if input.Currency != nil && !input.Currency.Valid() {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "currency", Message: "Currency must be CFA, EUR or USD"})
	}
	if len(fieldErrors) > 0 {
		return nil, apperror.NewValidationError(fieldErrors)
	}

	if input.ClientID != nil {
		client, err := s.clientRepo.GetByID(ctx, userID, *input.ClientID)
		if err != nil {
			return nil, err
		}
		if client == nil {
			return nil, apperror.NewNotFoundError("Client")
		}
		invoice.ClientID = input.ClientID
	}

	if input.Client != nil {
		invoice.Client = entity.ClientSnapshot{
			Name:      input.Client.Name,
			Address:   input.Client.Address,
			Email:     input.Client.Email,
			Telephone: input.Client.Telephone,
		}
	}
	if input.Date != nil {
		invoice.Date = *input.Date
	}
	if input.Status != nil {
		invoice.Status = *input.Status
	}
	if input.Currency != nil {
		invoice.Currency = *input.Currency
	}

	items := invoice.Items
	if input.Items != nil {
		items = buildItems(input.Items)
	}

	invoice.Total, invoice.Conversion = s.valuator.ComputeTotals(items, invoice.Currency)

	// A replaced item list and the recomputed totals land in one
	// transaction; a failed write leaves the old items and totals.
	if input.Items != nil {
		if err := s.invoiceRepo.UpdateWithItems(ctx, invoice, items); err != nil {
			return nil, err
		}
	} else {
		if err := s.invoiceRepo.Update(ctx, invoice); err != nil {
			return nil, err
		}
	}

	invoice.Items = items
	return invoice, nil
}

// DeleteInvoice removes an invoice owned by userID
func (s *InvoiceService) DeleteInvoice(ctx context.Context, userID, id uuid.UUID) error {
	invoice, err := s.invoiceRepo.GetByID(ctx, userID, id)
	if err != nil {
		return err
	}
	if invoice == nil {
		return apperror.NewNotFoundError("Invoice")
	}
	return s.invoiceRepo.Delete(ctx, userID, id)
}
