package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/madarij/center/internal/app/models"
	"github.com/madarij/center/internal/app/models/dto"
	"github.com/madarij/center/internal/middleware"
	"github.com/madarij/center/internal/pkg/apperrors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
	if err := middleware.RegisterValidators(); err != nil {
		panic(err)
	}
}

type MockWorkflow struct {
	mock.Mock
}

func (m *MockWorkflow) CreateApplication(ctx context.Context, req *dto.CreateApplicationRequest) (*models.Student, error) {
	args := m.Called(ctx, req)
	s, _ := args.Get(0).(*models.Student)
	return s, args.Error(1)
}

func (m *MockWorkflow) MarkFormGiven(ctx context.Context, id uuid.UUID) (*models.Student, error) {
	args := m.Called(ctx, id)
	s, _ := args.Get(0).(*models.Student)
	return s, args.Error(1)
}

func (m *MockWorkflow) SubmitForm(ctx context.Context, id uuid.UUID, req *dto.SubmitFormRequest) (*models.Student, error) {
	args := m.Called(ctx, id, req)
	s, _ := args.Get(0).(*models.Student)
	return s, args.Error(1)
}

func (m *MockWorkflow) ScheduleInterview(ctx context.Context, actorID, id uuid.UUID) (*dto.ScheduleInterviewResponse, error) {
	args := m.Called(ctx, actorID, id)
	r, _ := args.Get(0).(*dto.ScheduleInterviewResponse)
	return r, args.Error(1)
}

func (m *MockWorkflow) RecordResult(ctx context.Context, actorID, id uuid.UUID, req *dto.RecordResultRequest) (*dto.InterviewResultResponse, error) {
	args := m.Called(ctx, actorID, id, req)
	r, _ := args.Get(0).(*dto.InterviewResultResponse)
	return r, args.Error(1)
}

func (m *MockWorkflow) GetApplication(ctx context.Context, id uuid.UUID) (*models.Student, error) {
	args := m.Called(ctx, id)
	s, _ := args.Get(0).(*models.Student)
	return s, args.Error(1)
}

func (m *MockWorkflow) ListPending(ctx context.Context) ([]*models.Student, error) {
	args := m.Called(ctx)
	s, _ := args.Get(0).([]*models.Student)
	return s, args.Error(1)
}

func (m *MockWorkflow) ListUpcomingInterviews(ctx context.Context) ([]*models.Interview, error) {
	args := m.Called(ctx)
	s, _ := args.Get(0).([]*models.Interview)
	return s, args.Error(1)
}

func (m *MockWorkflow) NextSlot() dto.InterviewSlot {
	return m.Called().Get(0).(dto.InterviewSlot)
}

type MockInbox struct {
	mock.Mock
}

func (m *MockInbox) List(ctx context.Context, recipientID uuid.UUID, unreadOnly bool, page, size int) (*dto.NotificationListResponse, error) {
	args := m.Called(ctx, recipientID, unreadOnly, page, size)
	r, _ := args.Get(0).(*dto.NotificationListResponse)
	return r, args.Error(1)
}

func (m *MockInbox) UnreadCount(ctx context.Context, recipientID uuid.UUID) (int64, error) {
	args := m.Called(ctx, recipientID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockInbox) MarkRead(ctx context.Context, recipientID, id uuid.UUID) (*models.Notification, error) {
	args := m.Called(ctx, recipientID, id)
	n, _ := args.Get(0).(*models.Notification)
	return n, args.Error(1)
}

func (m *MockInbox) MarkAllRead(ctx context.Context, recipientID uuid.UUID) (int64, error) {
	args := m.Called(ctx, recipientID)
	return args.Get(0).(int64), args.Error(1)
}

// asUser stands in for JWTAuth
func asUser(id uuid.UUID, role models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ContextUserID, id)
		c.Set(middleware.ContextRole, role)
		c.Next()
	}
}

func serve(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) dto.ErrorCode {
	t.Helper()
	var res dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	require.NotNil(t, res.Error)
	return res.Error.Code
}

func onboardingRouter(wf *MockWorkflow, actor uuid.UUID) *gin.Engine {
	c := NewOnboardingController(wf, zerolog.Nop())
	r := gin.New()
	g := r.Group("/onboarding", asUser(actor, models.RoleDirector))
	g.POST("/applications", c.CreateApplication)
	g.PUT("/applications/:id/form-given", c.MarkFormGiven)
	g.POST("/applications/:id/schedule-interview", c.ScheduleInterview)
	g.PUT("/applications/:id/interview-result", c.RecordResult)
	g.GET("/interviews/next-slot", c.NextSlot)
	return r
}

func TestCreateApplicationHandler(t *testing.T) {
	wf := new(MockWorkflow)
	r := onboardingRouter(wf, uuid.New())
	student := &models.Student{ID: uuid.New(), Name: "Omar", ApplicationStatus: models.StatusNew}
	wf.On("CreateApplication", mock.Anything, mock.MatchedBy(func(req *dto.CreateApplicationRequest) bool {
		return req.Name == "Omar" && req.Guardian != nil && req.Guardian.Phone == "01012345678"
	})).Return(student, nil)

	w := serve(r, http.MethodPost, "/onboarding/applications",
		`{"name":"Omar","stage":"primary","guardian":{"name":"Khaled","phone":"01012345678"}}`)
	assert.Equal(t, http.StatusCreated, w.Code)

	var res struct {
		Success bool           `json:"success"`
		Data    models.Student `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.True(t, res.Success)
	assert.Equal(t, student.ID, res.Data.ID)

	w = serve(r, http.MethodPost, "/onboarding/applications", `{"name":"Omar","stage":"kindergarten"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, dto.ErrorCodeValidationFailed, errorCode(t, w))
	wf.AssertNumberOfCalls(t, "CreateApplication", 1)
}

func TestMarkFormGivenHandler_Errors(t *testing.T) {
	wf := new(MockWorkflow)
	r := onboardingRouter(wf, uuid.New())
	missing, wrongState := uuid.New(), uuid.New()
	wf.On("MarkFormGiven", mock.Anything, missing).Return(nil, apperrors.ErrStudentNotFound)
	wf.On("MarkFormGiven", mock.Anything, wrongState).
		Return(nil, apperrors.NewInvalidStateError("cannot move application from Accepted to FormGiven"))

	w := serve(r, http.MethodPut, "/onboarding/applications/not-a-uuid/form-given", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = serve(r, http.MethodPut, "/onboarding/applications/"+missing.String()+"/form-given", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, dto.ErrorCodeResourceNotFound, errorCode(t, w))

	w = serve(r, http.MethodPut, "/onboarding/applications/"+wrongState.String()+"/form-given", "")
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, dto.ErrorCodeInvalidState, errorCode(t, w))
}

func TestScheduleAndResultHandlers_PassCaller(t *testing.T) {
	wf := new(MockWorkflow)
	actor, id := uuid.New(), uuid.New()
	r := onboardingRouter(wf, actor)
	wf.On("ScheduleInterview", mock.Anything, actor, id).Return(&dto.ScheduleInterviewResponse{}, nil)
	wf.On("RecordResult", mock.Anything, actor, id, &dto.RecordResultRequest{Result: "accepted"}).
		Return(&dto.InterviewResultResponse{}, nil)

	w := serve(r, http.MethodPost, "/onboarding/applications/"+id.String()+"/schedule-interview", "")
	assert.Equal(t, http.StatusCreated, w.Code)

	w = serve(r, http.MethodPut, "/onboarding/applications/"+id.String()+"/interview-result", `{"result":"accepted"}`)
	assert.Equal(t, http.StatusOK, w.Code)

	w = serve(r, http.MethodPut, "/onboarding/applications/"+id.String()+"/interview-result", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	wf.AssertExpectations(t)
}

func TestNextSlotHandler(t *testing.T) {
	wf := new(MockWorkflow)
	wf.On("NextSlot").Return(dto.InterviewSlot{DayOfWeek: "saturday", TimeSlot: "after Asr", DaysAhead: 3})

	w := serve(onboardingRouter(wf, uuid.New()), http.MethodGet, "/onboarding/interviews/next-slot", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"dayOfWeek":"saturday"`)
}

func TestNotificationHandlers(t *testing.T) {
	inbox := new(MockInbox)
	actor := uuid.New()
	c := NewNotificationController(inbox)
	r := gin.New()
	g := r.Group("/notifications", asUser(actor, models.RoleDirector))
	g.GET("", c.List)
	g.PUT("/:id/read", c.MarkRead)
	g.PUT("/read-all", c.MarkAllRead)

	inbox.On("List", mock.Anything, actor, true, 2, 5).Return(&dto.NotificationListResponse{UnreadCount: 4}, nil)
	w := serve(r, http.MethodGet, "/notifications?unreadOnly=true&page=2&size=5", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"unreadCount":4`)

	other := uuid.New()
	inbox.On("MarkRead", mock.Anything, actor, other).Return(nil, apperrors.ErrNotificationNotFound)
	w = serve(r, http.MethodPut, "/notifications/"+other.String()+"/read", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	inbox.On("MarkAllRead", mock.Anything, actor).Return(int64(3), nil)
	w = serve(r, http.MethodPut, "/notifications/read-all", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"updated":3`)
}

func TestHandlersRequireCaller(t *testing.T) {
	c := NewNotificationController(new(MockInbox))
	r := gin.New()
	r.GET("/notifications", c.List)

	w := serve(r, http.MethodGet, "/notifications", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
