package service

import (
	"context"
	"fmt"

	"github.com/facturis/facturis-api/internal/domain/entity"
	"github.com/facturis/facturis-api/internal/domain/repository"
	"github.com/facturis/facturis-api/pkg/apperror"
	"github.com/facturis/facturis-api/pkg/pagination"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductService handles product catalogue operations
type ProductService struct {
	productRepo repository.ProductRepository
}

// NewProductService creates a new product service
func NewProductService(productRepo repository.ProductRepository) *ProductService {
	return &ProductService{productRepo: productRepo}
}

// CreateProductInput represents the create product input
type CreateProductInput struct {
	Reference   string
	Designation string
	UnitPrice   decimal.Decimal
}

// UpdateProductInput represents a partial product update
type UpdateProductInput struct {
	Reference   *string
	Designation *string
	UnitPrice   *decimal.Decimal
}

// CreateProduct creates a product owned by userID. The reference must be
// unique within the owner's catalogue.
func (s *ProductService) CreateProduct(ctx context.Context, userID uuid.UUID, input *CreateProductInput) (*entity.Product, error) {
	var fieldErrors []apperror.FieldError
	if input.Reference == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "reference", Message: "Reference is required"})
	}
	if input.Designation == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "designation", Message: "Designation is required"})
	}
	if input.UnitPrice.IsNegative() {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "unit_price", Message: "Unit price cannot be negative"})
	}
	if len(fieldErrors) > 0 {
		return nil, apperror.NewValidationError(fieldErrors)
	}

	existing, err := s.productRepo.GetByReference(ctx, userID, input.Reference)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError(fmt.Sprintf("Product with reference %s already exists", input.Reference))
	}

	product := &entity.Product{
		UserID:      userID,
		Reference:   input.Reference,
		Designation: input.Designation,
		UnitPrice:   input.UnitPrice,
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// GetProduct returns a single product owned by userID
func (s *ProductService) GetProduct(ctx context.Context, userID, id uuid.UUID) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return product, nil
}

// ListProducts returns a page of products owned by userID
func (s *ProductService) ListProducts(ctx context.Context, userID uuid.UUID, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.Product], error) {
	if params == nil {
		params = pagination.DefaultPagination()
	}
	products, total, err := s.productRepo.List(ctx, userID, params)
	if err != nil {
		return nil, err
	}
	return pagination.NewPaginatedResult(products, pagination.NewPagination(params.Page, params.PerPage, total)), nil
}

// UpdateProduct applies a partial update to a product owned by userID
func (s *ProductService) UpdateProduct(ctx context.Context, userID, id uuid.UUID, input *UpdateProductInput) (*entity.Product, error) {
	product, err := s.GetProduct(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if input.Reference != nil && *input.Reference != product.Reference {
		existing, err := s.productRepo.GetByReference(ctx, userID, *input.Reference)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, apperror.NewConflictError(fmt.Sprintf("Product with reference %s already exists", *input.Reference))
		}
		product.Reference = *input.Reference
	}
	if input.Designation != nil {
		product.Designation = *input.Designation
	}
	if input.UnitPrice != nil {
		if input.UnitPrice.IsNegative() {
			return nil, apperror.NewBadRequestError("Unit price cannot be negative")
		}
		product.UnitPrice = *input.UnitPrice
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// DeleteProduct removes a product owned by userID
func (s *ProductService) DeleteProduct(ctx context.Context, userID, id uuid.UUID) error {
	if _, err := s.GetProduct(ctx, userID, id); err != nil {
		return err
	}
	return s.productRepo.Delete(ctx, userID, id)
}
