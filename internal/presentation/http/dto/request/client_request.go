package request

// CreateClientRequest represents a client creation request
type CreateClientRequest struct {
	Name      string  `json:"name" binding:"required"`
	Address   string  `json:"address" binding:"required"`
	Email     *string `json:"email"`
	Telephone string  `json:"telephone" binding:"required"`
}

// UpdateClientRequest represents a partial client update
type UpdateClientRequest struct {
	Name      *string `json:"name"`
	Address   *string `json:"address"`
	Email     *string `json:"email"`
	Telephone *string `json:"telephone"`
}
