package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/slogsolutions/Audit-Management-Platform/internal/application/usecase/invoice"
	"github.com/slogsolutions/Audit-Management-Platform/internal/application/usecase/invoicesync"
	domainerror "github.com/slogsolutions/Audit-Management-Platform/internal/domain/error"
	"github.com/slogsolutions/Audit-Management-Platform/internal/integration/entrypoint/dto"
)

// InvoiceController handles invoice endpoints.
type InvoiceController struct {
	listUseCase     *invoice.ListInvoicesUseCase
	listOpenUseCase *invoice.ListOpenInvoicesUseCase
	getUseCase      *invoice.GetInvoiceUseCase
	createUseCase   *invoice.CreateInvoiceUseCase
	updateUseCase   *invoice.UpdateInvoiceUseCase
	deleteUseCase   *invoice.DeleteInvoiceUseCase
	syncUseCase     *invoicesync.SyncInvoicesUseCase
}

// NewInvoiceController creates a new invoice controller instance.
func NewInvoiceController(
	listUseCase *invoice.ListInvoicesUseCase,
	listOpenUseCase *invoice.ListOpenInvoicesUseCase,
	getUseCase *invoice.GetInvoiceUseCase,
	createUseCase *invoice.CreateInvoiceUseCase,
	updateUseCase *invoice.UpdateInvoiceUseCase,
	deleteUseCase *invoice.DeleteInvoiceUseCase,
	syncUseCase *invoicesync.SyncInvoicesUseCase,
) *InvoiceController {
	return &InvoiceController{
		listUseCase:     listUseCase,
		listOpenUseCase: listOpenUseCase,
		getUseCase:      getUseCase,
		createUseCase:   createUseCase,
		updateUseCase:   updateUseCase,
		deleteUseCase:   deleteUseCase,
		syncUseCase:     syncUseCase,
	}
}

// List handles GET /invoices requests.
func (c *InvoiceController) List(ctx *gin.Context) {
	output, err := c.listUseCase.Execute(ctx.Request.Context())
	if err != nil {
		internalError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToInvoiceListResponse(output.Invoices))
}

// ListOpen handles GET /invoices/open requests.
func (c *InvoiceController) ListOpen(ctx *gin.Context) {
	output, err := c.listOpenUseCase.Execute(ctx.Request.Context())
	if err != nil {
		internalError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToInvoiceListResponse(output.Invoices))
}

// Get handles GET /invoices/:id requests. The response includes payments.
func (c *InvoiceController) Get(ctx *gin.Context) {
	id, ok := pathID(ctx, "invoice")
	if !ok {
		return
	}

	output, err := c.getUseCase.Execute(ctx.Request.Context(), invoice.GetInvoiceInput{InvoiceID: id})
	if err != nil {
		c.handleInvoiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToInvoiceResponse(output.Invoice, true))
}

// Create handles POST /invoices requests.
func (c *InvoiceController) Create(ctx *gin.Context) {
	var req dto.CreateInvoiceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badBody(ctx, err, string(domainerror.ErrCodeMissingInvoiceFields))
		return
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), req.ToInput())
	if err != nil {
		c.handleInvoiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToInvoiceResponse(output.Invoice, false))
}

// Update handles PATCH /invoices/:id requests.
func (c *InvoiceController) Update(ctx *gin.Context) {
	id, ok := pathID(ctx, "invoice")
	if !ok {
		return
	}

	var req dto.UpdateInvoiceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badBody(ctx, err, string(domainerror.ErrCodeMissingInvoiceFields))
		return
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), req.ToInput(id))
	if err != nil {
		c.handleInvoiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToInvoiceResponse(output.Invoice, false))
}

// Delete handles DELETE /invoices/:id requests.
func (c *InvoiceController) Delete(ctx *gin.Context) {
	id, ok := pathID(ctx, "invoice")
	if !ok {
		return
	}

	output, err := c.deleteUseCase.Execute(ctx.Request.Context(), invoice.DeleteInvoiceInput{InvoiceID: id})
	if err != nil {
		c.handleInvoiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.DeleteInvoiceResponse{PaymentsDetached: output.PaymentsDetached})
}

// Sync handles POST /invoices/sync requests.
func (c *InvoiceController) Sync(ctx *gin.Context) {
	output, err := c.syncUseCase.Execute(ctx.Request.Context())
	if err != nil {
		c.handleInvoiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSyncInvoicesResponse(output))
}

// handleInvoiceError handles invoice errors and returns appropriate HTTP responses.
func (c *InvoiceController) handleInvoiceError(ctx *gin.Context, err error) {
	var invErr *domainerror.InvoiceError
	if errors.As(err, &invErr) {
		ctx.JSON(c.getStatusCodeForInvoiceError(invErr.Code), dto.ErrorResponse{
			Error: invErr.Message,
			Code:  string(invErr.Code),
		})
		return
	}

	internalError(ctx, err)
}

// getStatusCodeForInvoiceError maps invoice error codes to HTTP status codes.
func (c *InvoiceController) getStatusCodeForInvoiceError(code domainerror.InvoiceErrorCode) int {
	switch code {
	case domainerror.ErrCodeInvoiceNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeInvoiceNumberExists:
		return http.StatusConflict
	case domainerror.ErrCodeMissingInvoiceFields,
		domainerror.ErrCodeInvalidExpectedAmount:
		return http.StatusBadRequest
	case domainerror.ErrCodeInvoiceFeedUnavailable:
		return http.StatusBadGateway
	case domainerror.ErrCodeInvoiceFeedNotConfigured:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
