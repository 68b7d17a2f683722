package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/slogsolutions/Audit-Management-Platform/internal/application/usecase/auth"
	"github.com/slogsolutions/Audit-Management-Platform/internal/integration/entrypoint/dto"
)

// UserController serves the user directory.
type UserController struct {
	listUseCase *auth.ListUsersUseCase
}

// NewUserController creates a new user controller instance.
func NewUserController(listUseCase *auth.ListUsersUseCase) *UserController {
	return &UserController{
		listUseCase: listUseCase,
	}
}

// List handles GET /users requests.
func (c *UserController) List(ctx *gin.Context) {
	output, err := c.listUseCase.Execute(ctx.Request.Context())
	if err != nil {
		internalError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToUserListResponse(output.Users))
}
