package repository

import (
	"context"

	"github.com/facturis/facturis-api/internal/domain/entity"
	"github.com/facturis/facturis-api/pkg/pagination"
	"github.com/google/uuid"
)

// ProductRepository defines the interface for product data operations
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	CreateBatch(ctx context.Context, products []entity.Product) error
	GetByID(ctx context.Context, userID, id uuid.UUID) (*entity.Product, error)
	GetByReference(ctx context.Context, userID uuid.UUID, reference string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
	List(ctx context.Context, userID uuid.UUID, params *pagination.PaginationParams) ([]entity.Product, int64, error)
}
