package handler

import (
	"strconv"
	"time"

	"github.com/facturis/facturis-api/internal/application/service"
	"github.com/facturis/facturis-api/internal/domain/enum"
	"github.com/facturis/facturis-api/internal/domain/repository"
	"github.com/facturis/facturis-api/internal/presentation/http/dto/request"
	"github.com/facturis/facturis-api/internal/presentation/http/dto/response"
	"github.com/facturis/facturis-api/pkg/pagination"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// InvoiceHandler handles invoice-related HTTP requests
type InvoiceHandler struct {
	invoiceService *service.InvoiceService
	statsService   *service.StatsService
	importService  *service.ImportService
}

// NewInvoiceHandler creates a new invoice handler
func NewInvoiceHandler(
	invoiceService *service.InvoiceService,
	statsService *service.StatsService,
	importService *service.ImportService,
) *InvoiceHandler {
	return &InvoiceHandler{
		invoiceService: invoiceService,
		statsService:   statsService,
		importService:  importService,
	}
}

// List handles listing the authenticated user's invoices
func (h *InvoiceHandler) List(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var filter request.InvoiceFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	params := &repository.InvoiceFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    filter.Page,
			PerPage: filter.PerPage,
		},
	}

	if filter.Status != "" {
		status := enum.InvoiceStatus(filter.Status)
		params.Status = &status
	}
	if filter.Type != "" {
		invoiceType := enum.InvoiceType(filter.Type)
		params.Type = &invoiceType
	}
	if filter.ClientID != "" {
		if clientID, err := uuid.Parse(filter.ClientID); err == nil {
			params.ClientID = &clientID
		}
	}
	if filter.StartDate != "" {
		if startDate, err := time.Parse("2006-01-02", filter.StartDate); err == nil {
			params.StartDate = &startDate
		}
	}
	if filter.EndDate != "" {
		if endDate, err := time.Parse("2006-01-02", filter.EndDate); err == nil {
			params.EndDate = &endDate
		}
	}

	result, err := h.invoiceService.ListInvoices(c.Request.Context(), *userID, params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Invoices retrieved successfully", result)
}

// Get handles retrieving a single invoice
func (h *InvoiceHandler) Get(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	invoice, err := h.invoiceService.GetInvoice(c.Request.Context(), *userID, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice retrieved successfully", invoice)
}

// Create handles creating an invoice
func (h *InvoiceHandler) Create(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	input := &service.CreateInvoiceInput{
		ClientID: req.ClientID,
		Client: service.ClientSnapshotInput{
			Name:      req.Client.Name,
			Address:   req.Client.Address,
			Email:     req.Client.Email,
			Telephone: req.Client.Telephone,
		},
		Items:    toItemInputs(req.Items),
		Date:     req.Date,
		Type:     enum.InvoiceType(req.Type),
		Status:   enum.InvoiceStatus(req.Status),
		Currency: enum.Currency(req.Currency),
	}

	invoice, err := h.invoiceService.CreateInvoice(c.Request.Context(), *userID, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Invoice created successfully", invoice)
}

// Update handles a partial invoice update
func (h *InvoiceHandler) Update(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	var req request.UpdateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	input := &service.UpdateInvoiceInput{
		ClientID: req.ClientID,
		Date:     req.Date,
	}
	if req.Client != nil {
		input.Client = &service.ClientSnapshotInput{
			Name:      req.Client.Name,
			Address:   req.Client.Address,
			Email:     req.Client.Email,
			Telephone: req.Client.Telephone,
		}
	}
	if req.Items != nil {
		input.Items = toItemInputs(req.Items)
	}
	if req.Status != nil {
		status := enum.InvoiceStatus(*req.Status)
		input.Status = &status
	}
	if req.Currency != nil {
		currency := enum.Currency(*req.Currency)
		input.Currency = &currency
	}

	invoice, err := h.invoiceService.UpdateInvoice(c.Request.Context(), *userID, id, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice updated successfully", invoice)
}

// Delete handles deleting an invoice
func (h *InvoiceHandler) Delete(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	if err := h.invoiceService.DeleteInvoice(c.Request.Context(), *userID, id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice deleted successfully", gin.H{})
}

// Stats handles the status totals report
func (h *InvoiceHandler) Stats(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	totals, err := h.statsService.GetStatusTotals(c.Request.Context(), *userID, yearParam(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice statistics retrieved successfully", totals)
}

// FilteredStats handles the monthly-by-status matrix report
func (h *InvoiceHandler) FilteredStats(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	matrix, err := h.statsService.GetMonthlyStatusMatrix(c.Request.Context(), *userID, yearOrCurrent(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Monthly invoice statistics retrieved successfully", matrix)
}

// SummaryByClient handles the per-client summary report
func (h *InvoiceHandler) SummaryByClient(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	summaries, err := h.statsService.GetClientSummaries(c.Request.Context(), *userID, yearParam(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Client summaries retrieved successfully", summaries)
}

// ClientMonthlyStats handles the per-client monthly matrix report
func (h *InvoiceHandler) ClientMonthlyStats(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	matrix, err := h.statsService.GetClientMonthlyMatrix(c.Request.Context(), *userID, yearOrCurrent(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Client monthly statistics retrieved successfully", matrix)
}

// Upload handles the bulk invoice import from an uploaded spreadsheet
func (h *InvoiceHandler) Upload(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "No file was uploaded")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.Error(c, err)
		return
	}
	defer file.Close()

	rows, err := h.importService.ParseWorkbook(file)
	if err != nil {
		response.Error(c, err)
		return
	}

	imported, err := h.importService.ImportInvoices(c.Request.Context(), *userID, rows)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithCount(c, 201, "Invoices imported successfully", gin.H{}, imported)
}

func toItemInputs(items []request.InvoiceItemRequest) []service.InvoiceItemInput {
	inputs := make([]service.InvoiceItemInput, 0, len(items))
	for _, item := range items {
		inputs = append(inputs, service.InvoiceItemInput{
			Ref:         item.Ref,
			Description: item.Description,
			Category:    item.Category,
			Quantity:    item.Quantity,
			Price:       item.Price,
			Total:       item.Total,
		})
	}
	return inputs
}

// yearParam returns the year query parameter, or nil when absent
func yearParam(c *gin.Context) *int {
	yearStr := c.Query("year")
	if yearStr == "" {
		return nil
	}
	year, err := strconv.Atoi(yearStr)
	if err != nil {
		return nil
	}
	return &year
}

// yearOrCurrent returns the year query parameter, defaulting to this year
func yearOrCurrent(c *gin.Context) int {
	if year := yearParam(c); year != nil {
		return *year
	}
	return time.Now().Year()
}
