package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/madarij/center/internal/app/models"
	"github.com/madarij/center/internal/app/models/dto"
	"github.com/madarij/center/internal/middleware"
)

// HalqaManager manages classrooms and halqat
type HalqaManager interface {
	CreateClassroom(ctx context.Context, req *dto.CreateClassroomRequest) (*models.Classroom, error)
	ListClassrooms(ctx context.Context) ([]*models.Classroom, error)
	CreateHalqa(ctx context.Context, req *dto.CreateHalqaRequest) (*models.Halqa, error)
	ListHalqat(ctx context.Context, actorID uuid.UUID, role models.Role, filter dto.HalqaFilter) ([]*models.Halqa, error)
	GetHalqa(ctx context.Context, id uuid.UUID) (*models.Halqa, error)
	DeactivateHalqa(ctx context.Context, id uuid.UUID) error
}

// HalqaController serves classrooms and halqat
type HalqaController struct {
	halqat HalqaManager
}

// NewHalqaController creates a new HalqaController
func NewHalqaController(halqat HalqaManager) *HalqaController {
	return &HalqaController{halqat: halqat}
}

// CreateClassroom creates a classroom
// @Summary Create classroom
// @Tags classrooms
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateClassroomRequest true "Classroom"
// @Success 201 {object} dto.APIResponse{data=models.Classroom}
// @Failure 400 {object} dto.ErrorResponse "Validation failed"
// @Router /classrooms [post]
func (c *HalqaController) CreateClassroom(ctx *gin.Context) {
	var req dto.CreateClassroomRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}

	classroom, err := c.halqat.CreateClassroom(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusCreated, classroom, "Classroom created")
}

// ListClassrooms lists classrooms
// @Summary List classrooms
// @Tags classrooms
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Classroom}
// @Router /classrooms [get]
func (c *HalqaController) ListClassrooms(ctx *gin.Context) {
	classrooms, err := c.halqat.ListClassrooms(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, classrooms, "")
}

// CreateHalqa creates a halqa
// @Summary Create halqa
// @Description Fails with 409 when the teacher or classroom already has an active halqa on a shared day at an overlapping time.
// @Tags halqat
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateHalqaRequest true "Halqa"
// @Success 201 {object} dto.APIResponse{data=models.Halqa}
// @Failure 400 {object} dto.ErrorResponse "Validation failed"
// @Failure 409 {object} dto.ErrorResponse "Schedule conflict"
// @Router /halqat [post]
func (c *HalqaController) CreateHalqa(ctx *gin.Context) {
	var req dto.CreateHalqaRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}

	h, err := c.halqat.CreateHalqa(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusCreated, h, "Halqa created")
}

// ListHalqat lists the halqat visible to the caller
// @Summary List halqat
// @Description Supervisors only see the halqat they supervise and teachers the ones they teach.
// @Tags halqat
// @Produce json
// @Security BearerAuth
// @Param isActive query bool false "Active filter"
// @Success 200 {object} dto.APIResponse{data=dto.HalqaListResponse}
// @Router /halqat [get]
func (c *HalqaController) ListHalqat(ctx *gin.Context) {
	actorID, role, authed := caller(ctx)
	if !authed {
		return
	}

	filter := dto.HalqaFilter{IsActive: optionalBool(ctx, "isActive")}
	list, err := c.halqat.ListHalqat(ctx.Request.Context(), actorID, role, filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, dto.HalqaListResponse{Count: len(list), Halqat: list}, "")
}

// GetHalqa returns a halqa with its enrolled student count
// @Summary Get halqa
// @Tags halqat
// @Produce json
// @Security BearerAuth
// @Param id path string true "Halqa ID"
// @Success 200 {object} dto.APIResponse{data=models.Halqa}
// @Failure 404 {object} dto.ErrorResponse "Halqa not found"
// @Router /halqat/{id} [get]
func (c *HalqaController) GetHalqa(ctx *gin.Context) {
	id, valid := pathUUID(ctx, "id")
	if !valid {
		return
	}

	h, err := c.halqat.GetHalqa(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, h, "")
}

// DeactivateHalqa marks a halqa inactive
// @Summary Deactivate halqa
// @Tags halqat
// @Produce json
// @Security BearerAuth
// @Param id path string true "Halqa ID"
// @Success 200 {object} dto.APIResponse
// @Failure 404 {object} dto.ErrorResponse "Halqa not found"
// @Router /halqat/{id} [delete]
func (c *HalqaController) DeactivateHalqa(ctx *gin.Context) {
	id, valid := pathUUID(ctx, "id")
	if !valid {
		return
	}

	if err := c.halqat.DeactivateHalqa(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, nil, "Halqa deactivated")
}
