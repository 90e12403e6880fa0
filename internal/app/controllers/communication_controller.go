package controllers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/madarij/center/internal/app/models"
	"github.com/madarij/center/internal/app/models/dto"
	"github.com/madarij/center/internal/middleware"
)

// GuardianContact records guardian contacts and builds chat links
type GuardianContact interface {
	Log(ctx context.Context, actorID uuid.UUID, req *dto.CreateCommunicationLogRequest) (*models.CommunicationLog, error)
	History(ctx context.Context, studentID uuid.UUID, limit int) ([]*models.CommunicationLog, error)
	WhatsAppLink(ctx context.Context, studentID uuid.UUID, message string) (*dto.WhatsAppLinkResponse, error)
}

// CommunicationController serves the guardian communication log
type CommunicationController struct {
	contact GuardianContact
}

// NewCommunicationController creates a new CommunicationController
func NewCommunicationController(contact GuardianContact) *CommunicationController {
	return &CommunicationController{contact: contact}
}

// Log records a contact with a student's guardian
// @Summary Log guardian contact
// @Tags communication
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateCommunicationLogRequest true "Contact"
// @Success 201 {object} dto.APIResponse{data=models.CommunicationLog}
// @Failure 400 {object} dto.ErrorResponse "Validation failed"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /communication/logs [post]
func (c *CommunicationController) Log(ctx *gin.Context) {
	actorID, _, authed := caller(ctx)
	if !authed {
		return
	}

	var req dto.CreateCommunicationLogRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}

	l, err := c.contact.Log(ctx.Request.Context(), actorID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusCreated, l, "Communication logged")
}

// History lists the latest contacts with a student's guardian
// @Summary Communication history
// @Tags communication
// @Produce json
// @Security BearerAuth
// @Param studentId path string true "Student ID"
// @Param limit query int false "Maximum entries" default(10)
// @Success 200 {object} dto.APIResponse{data=dto.CommunicationHistoryResponse}
// @Router /communication/history/{studentId} [get]
func (c *CommunicationController) History(ctx *gin.Context) {
	studentID, valid := pathUUID(ctx, "studentId")
	if !valid {
		return
	}
	limit, _ := strconv.Atoi(ctx.Query("limit"))

	history, err := c.contact.History(ctx.Request.Context(), studentID, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, dto.CommunicationHistoryResponse{Count: len(history), History: history}, "")
}

// WhatsAppLink builds a wa.me link to a student's guardian
// @Summary WhatsApp link
// @Tags communication
// @Produce json
// @Security BearerAuth
// @Param studentId path string true "Student ID"
// @Param message query string false "Prefilled message"
// @Success 200 {object} dto.APIResponse{data=dto.WhatsAppLinkResponse}
// @Failure 400 {object} dto.ErrorResponse "WhatsApp disabled for guardian"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /communication/whatsapp-link/{studentId} [get]
func (c *CommunicationController) WhatsAppLink(ctx *gin.Context) {
	studentID, valid := pathUUID(ctx, "studentId")
	if !valid {
		return
	}

	res, err := c.contact.WhatsAppLink(ctx.Request.Context(), studentID, ctx.Query("message"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, res, "")
}
