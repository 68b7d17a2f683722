package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/slogsolutions/Audit-Management-Platform/internal/application/usecase/category"
	domainerror "github.com/slogsolutions/Audit-Management-Platform/internal/domain/error"
	"github.com/slogsolutions/Audit-Management-Platform/internal/integration/entrypoint/dto"
)

// CategoryController handles category endpoints.
type CategoryController struct {
	listUseCase           *category.ListCategoriesUseCase
	listSubcategoriesCase *category.ListSubcategoriesUseCase
	getUseCase            *category.GetCategoryUseCase
	createUseCase         *category.CreateCategoryUseCase
	bulkCreateUseCase     *category.BulkCreateSubcategoriesUseCase
	updateUseCase         *category.UpdateCategoryUseCase
	deleteUseCase         *category.DeleteCategoryUseCase
}

// NewCategoryController creates a new category controller instance.
func NewCategoryController(
	listUseCase *category.ListCategoriesUseCase,
	listSubcategoriesCase *category.ListSubcategoriesUseCase,
	getUseCase *category.GetCategoryUseCase,
	createUseCase *category.CreateCategoryUseCase,
	bulkCreateUseCase *category.BulkCreateSubcategoriesUseCase,
	updateUseCase *category.UpdateCategoryUseCase,
	deleteUseCase *category.DeleteCategoryUseCase,
) *CategoryController {
	return &CategoryController{
		listUseCase:           listUseCase,
		listSubcategoriesCase: listSubcategoriesCase,
		getUseCase:            getUseCase,
		createUseCase:         createUseCase,
		bulkCreateUseCase:     bulkCreateUseCase,
		updateUseCase:         updateUseCase,
		deleteUseCase:         deleteUseCase,
	}
}

// List handles GET /categories requests.
// Query: topOnly=true limits to top-level categories. Children are attached
// unless includeAll=false.
func (c *CategoryController) List(ctx *gin.Context) {
	topOnly, _ := strconv.ParseBool(ctx.Query("topOnly"))
	c.list(ctx, category.ListCategoriesInput{TopOnly: topOnly, IncludeChildren: includeChildren(ctx)})
}

// ListTop handles GET /categories/top requests.
func (c *CategoryController) ListTop(ctx *gin.Context) {
	c.list(ctx, category.ListCategoriesInput{TopOnly: true, IncludeChildren: includeChildren(ctx)})
}

// includeChildren reads includeAll, which defaults to true.
func includeChildren(ctx *gin.Context) bool {
	raw, ok := ctx.GetQuery("includeAll")
	if !ok {
		return true
	}
	include, err := strconv.ParseBool(raw)
	return err != nil || include
}

func (c *CategoryController) list(ctx *gin.Context, input category.ListCategoriesInput) {
	output, err := c.listUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		internalError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.CategoryListResponse{
		Categories: dto.ToCategoryResponses(output.Categories),
	})
}

// Get handles GET /categories/:id requests.
func (c *CategoryController) Get(ctx *gin.Context) {
	id, ok := pathID(ctx, "category")
	if !ok {
		return
	}

	output, err := c.getUseCase.Execute(ctx.Request.Context(), category.GetCategoryInput{CategoryID: id})
	if err != nil {
		c.handleCategoryError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCategoryResponse(output.Category))
}

// Create handles POST /categories requests.
func (c *CategoryController) Create(ctx *gin.Context) {
	var req dto.CreateCategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badBody(ctx, err, string(domainerror.ErrCodeMissingCategoryFields))
		return
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), category.CreateCategoryInput{
		Name:     req.Name,
		ParentID: req.ParentID,
		Meta:     req.Meta,
	})
	if err != nil {
		c.handleCategoryError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToCategoryResponse(output.Category))
}

// CreateSubcategories handles POST /categories/:id/subcategories requests.
func (c *CategoryController) CreateSubcategories(ctx *gin.Context) {
	id, ok := pathID(ctx, "category")
	if !ok {
		return
	}

	var req dto.BulkCreateSubcategoriesRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badBody(ctx, err, string(domainerror.ErrCodeEmptySubcategoryNames))
		return
	}

	output, err := c.bulkCreateUseCase.Execute(ctx.Request.Context(), category.BulkCreateSubcategoriesInput{
		ParentID: id,
		Names:    req.Names,
	})
	if err != nil {
		c.handleCategoryError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.BulkCreateSubcategoriesResponse{
		Parent:   dto.ToCategoryResponse(output.Parent),
		Children: dto.ToCategoryResponses(output.Children),
		Created:  output.Created,
	})
}

// ListSubcategories handles GET /categories/:id/subcategories requests.
func (c *CategoryController) ListSubcategories(ctx *gin.Context) {
	id, ok := pathID(ctx, "category")
	if !ok {
		return
	}

	output, err := c.listSubcategoriesCase.Execute(ctx.Request.Context(), category.ListSubcategoriesInput{ParentID: id})
	if err != nil {
		c.handleCategoryError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.CategoryListResponse{
		Categories: dto.ToCategoryResponses(output.Subcategories),
	})
}

// Update handles PATCH /categories/:id requests.
func (c *CategoryController) Update(ctx *gin.Context) {
	id, ok := pathID(ctx, "category")
	if !ok {
		return
	}

	var req dto.UpdateCategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badBody(ctx, err, string(domainerror.ErrCodeMissingCategoryFields))
		return
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), category.UpdateCategoryInput{
		CategoryID: id,
		Name:       req.Name,
		Meta:       req.Meta,
		SetParent:  req.ParentID.Set,
		ParentID:   req.ParentID.Value,
	})
	if err != nil {
		c.handleCategoryError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCategoryResponse(output.Category))
}

// Delete handles DELETE /categories/:id requests. force=true removes the
// whole subtree and every transaction referencing it.
func (c *CategoryController) Delete(ctx *gin.Context) {
	id, ok := pathID(ctx, "category")
	if !ok {
		return
	}
	force, _ := strconv.ParseBool(ctx.Query("force"))

	output, err := c.deleteUseCase.Execute(ctx.Request.Context(), category.DeleteCategoryInput{
		CategoryID: id,
		Force:      force,
	})
	if err != nil {
		c.handleCategoryError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.DeleteCategoryResponse{
		Cascaded:            output.Cascaded,
		CategoriesDeleted:   output.CategoriesDeleted,
		TransactionsDeleted: output.TransactionsDeleted,
	})
}

// handleCategoryError handles category errors and returns appropriate HTTP responses.
func (c *CategoryController) handleCategoryError(ctx *gin.Context, err error) {
	var catErr *domainerror.CategoryError
	if errors.As(err, &catErr) {
		resp := dto.ErrorResponse{
			Error: catErr.Message,
			Code:  string(catErr.Code),
		}
		if catErr.Dependents != nil {
			resp.Details = dto.CategoryDependentsDetails{
				SubcategoriesCount: catErr.Dependents.SubcategoriesCount,
				LinkedTransactions: catErr.Dependents.LinkedTransactions,
			}
		}
		ctx.JSON(c.getStatusCodeForCategoryError(catErr.Code), resp)
		return
	}

	internalError(ctx, err)
}

// getStatusCodeForCategoryError maps category error codes to HTTP status codes.
func (c *CategoryController) getStatusCodeForCategoryError(code domainerror.CategoryErrorCode) int {
	switch code {
	case domainerror.ErrCodeCategoryNotFound,
		domainerror.ErrCodeParentNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeCategoryNameExists,
		domainerror.ErrCodeCategoryHasDependents:
		return http.StatusConflict
	case domainerror.ErrCodeCategorySelfParent,
		domainerror.ErrCodeCategoryCycle:
		return http.StatusUnprocessableEntity
	case domainerror.ErrCodeMissingCategoryFields,
		domainerror.ErrCodeEmptySubcategoryNames,
		domainerror.ErrCodeInvalidParent,
		domainerror.ErrCodeCategoryNameTooLong:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
