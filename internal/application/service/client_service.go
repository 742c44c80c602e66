package service

import (
	"context"

	"github.com/facturis/facturis-api/internal/domain/entity"
	"github.com/facturis/facturis-api/internal/domain/repository"
	"github.com/facturis/facturis-api/pkg/apperror"
	"github.com/facturis/facturis-api/pkg/pagination"
	"github.com/facturis/facturis-api/pkg/utils"
	"github.com/google/uuid"
)

// ClientService handles client record operations
type ClientService struct {
	clientRepo repository.ClientRepository
}

// NewClientService creates a new client service
func NewClientService(clientRepo repository.ClientRepository) *ClientService {
	return &ClientService{clientRepo: clientRepo}
}

// CreateClientInput represents the create client input
type CreateClientInput struct {
	Name      string
	Address   string
	Email     *string
	Telephone string
}

// UpdateClientInput represents a partial client update
type UpdateClientInput struct {
	Name      *string
	Address   *string
	Email     *string
	Telephone *string
}

func validateClientFields(name, address, telephone string, email *string) []apperror.FieldError {
	var fieldErrors []apperror.FieldError
	if name == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "name", Message: "Name is required"})
	}
	if address == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "address", Message: "Address is required"})
	}
	if telephone == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "telephone", Message: "Telephone is required"})
	}
	if email != nil && *email != "" && !utils.IsValidEmail(*email) {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "email", Message: "Email is not a valid address"})
	}
	return fieldErrors
}

// CreateClient creates a client owned by userID
func (s *ClientService) CreateClient(ctx context.Context, userID uuid.UUID, input *CreateClientInput) (*entity.Client, error) {
	if fieldErrors := validateClientFields(input.Name, input.Address, input.Telephone, input.Email); len(fieldErrors) > 0 {
		return nil, apperror.NewValidationError(fieldErrors)
	}

	client := &entity.Client{
		UserID:    userID,
		Name:      input.Name,
		Address:   input.Address,
		Email:     input.Email,
		Telephone: input.Telephone,
	}

	if err := s.clientRepo.Create(ctx, client); err != nil {
		return nil, err
	}
	return client, nil
}

// GetClient returns a single client owned by userID
func (s *ClientService) GetClient(ctx context.Context, userID, id uuid.UUID) (*entity.Client, error) {
	client, err := s.clientRepo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, apperror.NewNotFoundError("Client")
	}
	return client, nil
}

// ListClients returns a page of clients owned by userID
func (s *ClientService) ListClients(ctx context.Context, userID uuid.UUID, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.Client], error) {
	if params == nil {
		params = pagination.DefaultPagination()
	}
	clients, total, err := s.clientRepo.List(ctx, userID, params)
	if err != nil {
		return nil, err
	}
	return pagination.NewPaginatedResult(clients, pagination.NewPagination(params.Page, params.PerPage, total)), nil
}

// UpdateClient applies a partial update to a client owned by userID
func (s *ClientService) UpdateClient(ctx context.Context, userID, id uuid.UUID, input *UpdateClientInput) (*entity.Client, error) {
	client, err := s.GetClient(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		client.Name = *input.Name
	}
	if input.Address != nil {
		client.Address = *input.Address
	}
	if input.Email != nil {
		client.Email = input.Email
	}
	if input.Telephone != nil {
		client.Telephone = *input.Telephone
	}

	if fieldErrors := validateClientFields(client.Name, client.Address, client.Telephone, client.Email); len(fieldErrors) > 0 {
		return nil, apperror.NewValidationError(fieldErrors)
	}

	if err := s.clientRepo.Update(ctx, client); err != nil {
		return nil, err
	}
	return client, nil
}

// DeleteClient removes a client owned by userID
func (s *ClientService) DeleteClient(ctx context.Context, userID, id uuid.UUID) error {
	if _, err := s.GetClient(ctx, userID, id); err != nil {
		return err
	}
	return s.clientRepo.Delete(ctx, userID, id)
}
