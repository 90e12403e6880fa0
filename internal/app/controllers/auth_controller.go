package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/madarij/center/internal/app/models"
	"github.com/madarij/center/internal/app/models/dto"
	"github.com/madarij/center/internal/middleware"
	"github.com/rs/zerolog"
)

// Authenticator logs staff in and resolves their profile
type Authenticator interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	Profile(ctx context.Context, userID uuid.UUID) (*models.User, error)
}

// AuthController handles authentication related operations
type AuthController struct {
	auth   Authenticator
	logger zerolog.Logger
}

// NewAuthController creates a new AuthController
func NewAuthController(auth Authenticator, logger zerolog.Logger) *AuthController {
	return &AuthController{auth: auth, logger: logger}
}

// Login issues an access token for valid staff credentials
// @Summary Log in
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.APIResponse{data=dto.LoginResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 401 {object} dto.ErrorResponse "Invalid credentials"
// @Failure 403 {object} dto.ErrorResponse "Account disabled"
// @Router /auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Debug().Err(err).Msg("Invalid login request payload")
		middleware.HandleBindError(ctx, err)
		return
	}

	res, err := c.auth.Login(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, res, "Login successful")
}

// Me returns the caller's own account
// @Summary Current user
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=models.User}
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /auth/me [get]
func (c *AuthController) Me(ctx *gin.Context) {
	userID, _, authed := caller(ctx)
	if !authed {
		return
	}

	user, err := c.auth.Profile(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, user, "")
}
