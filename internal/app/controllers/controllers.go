// Package controllers handles HTTP request handling
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/madarij/center/internal/app/models"
	"github.com/madarij/center/internal/app/models/dto"
	"github.com/madarij/center/internal/middleware"
)

// pathUUID parses a uuid path parameter, answering 400 when it is malformed
func pathUUID(ctx *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param(name))
	if err != nil {
		detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid "+name).WithField(name)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
		return uuid.Nil, false
	}
	return id, true
}

// caller returns the authenticated user id and role, answering 401 when absent
func caller(ctx *gin.Context) (uuid.UUID, models.Role, bool) {
	id, ok := middleware.CurrentUserID(ctx)
	role, roleOK := middleware.CurrentRole(ctx)
	if !ok || !roleOK {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "User not authenticated")))
		return uuid.Nil, "", false
	}
	return id, role, true
}

// optionalBool parses an optional boolean query parameter
func optionalBool(ctx *gin.Context, name string) *bool {
	switch ctx.Query(name) {
	case "true", "1":
		v := true
		return &v
	case "false", "0":
		v := false
		return &v
	}
	return nil
}

func respond(ctx *gin.Context, status int, data interface{}, message string) {
	ctx.JSON(status, dto.NewAPIResponse(data, message))
}
