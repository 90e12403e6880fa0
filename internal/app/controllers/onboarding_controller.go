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

// OnboardingWorkflow is the onboarding use case surface
type OnboardingWorkflow interface {
	CreateApplication(ctx context.Context, req *dto.CreateApplicationRequest) (*models.Student, error)
	MarkFormGiven(ctx context.Context, id uuid.UUID) (*models.Student, error)
	SubmitForm(ctx context.Context, id uuid.UUID, req *dto.SubmitFormRequest) (*models.Student, error)
	ScheduleInterview(ctx context.Context, actorID, id uuid.UUID) (*dto.ScheduleInterviewResponse, error)
	RecordResult(ctx context.Context, actorID, id uuid.UUID, req *dto.RecordResultRequest) (*dto.InterviewResultResponse, error)
	GetApplication(ctx context.Context, id uuid.UUID) (*models.Student, error)
	ListPending(ctx context.Context) ([]*models.Student, error)
	ListUpcomingInterviews(ctx context.Context) ([]*models.Interview, error)
	NextSlot() dto.InterviewSlot
}

// OnboardingController exposes the applicant onboarding workflow
type OnboardingController struct {
	workflow OnboardingWorkflow
	logger   zerolog.Logger
}

// NewOnboardingController creates a new OnboardingController
func NewOnboardingController(workflow OnboardingWorkflow, logger zerolog.Logger) *OnboardingController {
	return &OnboardingController{workflow: workflow, logger: logger}
}

// CreateApplication registers a new applicant
// @Summary Create an application
// @Description Registers a new applicant in status New. Give either guardianId of an existing guardian or an inline guardian, not both.
// @Tags onboarding
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateApplicationRequest true "Applicant"
// @Success 201 {object} dto.APIResponse{data=models.Student} "Application created"
// @Failure 400 {object} dto.ErrorResponse "Validation failed"
// @Failure 404 {object} dto.ErrorResponse "Guardian not found"
// @Router /onboarding/applications [post]
func (c *OnboardingController) CreateApplication(ctx *gin.Context) {
	var req dto.CreateApplicationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}

	student, err := c.workflow.CreateApplication(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusCreated, student, "Application created")
}

// MarkFormGiven records that the application form was handed out
// @Summary Mark form given
// @Tags onboarding
// @Produce json
// @Security BearerAuth
// @Param id path string true "Student ID"
// @Success 200 {object} dto.APIResponse{data=models.Student}
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Failure 409 {object} dto.ErrorResponse "Student is not in status New"
// @Router /onboarding/applications/{id}/form-given [put]
func (c *OnboardingController) MarkFormGiven(ctx *gin.Context) {
	id, valid := pathUUID(ctx, "id")
	if !valid {
		return
	}

	student, err := c.workflow.MarkFormGiven(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, student, "Form marked as given")
}

// SubmitForm records the completed application form
// @Summary Submit application form
// @Tags onboarding
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Student ID"
// @Param request body dto.SubmitFormRequest true "Form data"
// @Success 200 {object} dto.APIResponse{data=models.Student}
// @Failure 400 {object} dto.ErrorResponse "Validation failed"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Failure 409 {object} dto.ErrorResponse "Student is not in status New or FormGiven"
// @Router /onboarding/applications/{id}/form-submitted [put]
func (c *OnboardingController) SubmitForm(ctx *gin.Context) {
	id, valid := pathUUID(ctx, "id")
	if !valid {
		return
	}

	var req dto.SubmitFormRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}

	student, err := c.workflow.SubmitForm(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, student, "Form submitted")
}

// ScheduleInterview books the applicant on the next interview slot
// @Summary Schedule interview
// @Description Books an interview on the next slot with the assigned interview conductor and notifies them.
// @Tags onboarding
// @Produce json
// @Security BearerAuth
// @Param id path string true "Student ID"
// @Success 201 {object} dto.APIResponse{data=dto.ScheduleInterviewResponse}
// @Failure 404 {object} dto.ErrorResponse "Student not found or no interview conductor"
// @Failure 409 {object} dto.ErrorResponse "Student is not in status FormSubmitted or already has an interview"
// @Router /onboarding/applications/{id}/schedule-interview [post]
func (c *OnboardingController) ScheduleInterview(ctx *gin.Context) {
	actorID, _, authed := caller(ctx)
	if !authed {
		return
	}
	id, valid := pathUUID(ctx, "id")
	if !valid {
		return
	}

	res, err := c.workflow.ScheduleInterview(ctx.Request.Context(), actorID, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusCreated, res, "Interview scheduled")
}

// RecordResult records the interview outcome
// @Summary Record interview result
// @Description Completes the scheduled interview. result is one of accepted, rejected or pending; accepted students may be placed in a halqa.
// @Tags onboarding
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Student ID"
// @Param request body dto.RecordResultRequest true "Result"
// @Success 200 {object} dto.APIResponse{data=dto.InterviewResultResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid result"
// @Failure 404 {object} dto.ErrorResponse "Student or interview not found"
// @Failure 409 {object} dto.ErrorResponse "Student is not in status InterviewScheduled"
// @Router /onboarding/applications/{id}/interview-result [put]
func (c *OnboardingController) RecordResult(ctx *gin.Context) {
	actorID, _, authed := caller(ctx)
	if !authed {
		return
	}
	id, valid := pathUUID(ctx, "id")
	if !valid {
		return
	}

	var req dto.RecordResultRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}

	res, err := c.workflow.RecordResult(ctx.Request.Context(), actorID, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, res, "Interview result recorded")
}

// GetApplication returns an applicant with guardian
// @Summary Get application
// @Tags onboarding
// @Produce json
// @Security BearerAuth
// @Param id path string true "Student ID"
// @Success 200 {object} dto.APIResponse{data=models.Student}
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /onboarding/applications/{id} [get]
func (c *OnboardingController) GetApplication(ctx *gin.Context) {
	id, valid := pathUUID(ctx, "id")
	if !valid {
		return
	}

	student, err := c.workflow.GetApplication(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, student, "")
}

// ListPending lists applications awaiting a decision
// @Summary List pending applications
// @Tags onboarding
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.ApplicationListResponse}
// @Router /onboarding/pending [get]
func (c *OnboardingController) ListPending(ctx *gin.Context) {
	students, err := c.workflow.ListPending(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, dto.ApplicationListResponse{Count: len(students), Students: students}, "")
}

// ListUpcomingInterviews lists scheduled interviews from today on
// @Summary List upcoming interviews
// @Tags onboarding
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.InterviewListResponse}
// @Router /onboarding/interviews [get]
func (c *OnboardingController) ListUpcomingInterviews(ctx *gin.Context) {
	interviews, err := c.workflow.ListUpcomingInterviews(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, dto.InterviewListResponse{Count: len(interviews), Interviews: interviews}, "")
}

// NextSlot previews the date the next interview would be booked on
// @Summary Preview next interview slot
// @Tags onboarding
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.InterviewSlot}
// @Router /onboarding/interviews/next-slot [get]
func (c *OnboardingController) NextSlot(ctx *gin.Context) {
	respond(ctx, http.StatusOK, c.workflow.NextSlot(), "")
}
