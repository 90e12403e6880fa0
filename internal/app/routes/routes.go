package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/madarij/center/internal/app/controllers"
	"github.com/madarij/center/internal/app/models"
	"github.com/madarij/center/internal/app/models/dto"
	"github.com/madarij/center/internal/middleware"
	"github.com/madarij/center/internal/pkg/websocket"
)

// Controllers groups the HTTP handlers mounted under /api/v1
type Controllers struct {
	Auth          *controllers.AuthController
	Users         *controllers.UserController
	Onboarding    *controllers.OnboardingController
	Notifications *controllers.NotificationController
	Halqat        *controllers.HalqaController
	Communication *controllers.CommunicationController
	Live          *websocket.Handler
}

// SetupRouter configures all application routes
func SetupRouter(router *gin.Engine, h Controllers, authMiddleware *middleware.AuthMiddleware) {
	v1 := router.Group("/api/v1")

	// --- Public routes ---
	v1.POST("/auth/login", h.Auth.Login)

	v1.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, dto.NewAPIResponse(gin.H{"status": "ok"}, ""))
	})

	// Browsers cannot set headers on a WebSocket handshake
	v1.GET("/notifications/ws",
		authMiddleware.QueryToken("access_token"),
		authMiddleware.JWTAuth(),
		authMiddleware.ActiveAccountRequired(),
		h.Live.Serve,
	)

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth(), authMiddleware.ActiveAccountRequired())

	director := authMiddleware.RolesRequired(models.RoleDirector)
	admissions := authMiddleware.RolesRequired(models.RoleStudentAffairs, models.RoleDirector)
	management := authMiddleware.RolesRequired(models.RoleDirector, models.RoleSupervisor)

	authenticated.GET("/auth/me", h.Auth.Me)

	users := authenticated.Group("/users")
	{
		users.POST("", director, h.Users.CreateUser)
		users.GET("", management, h.Users.ListUsers)
	}

	authenticated.PUT("/staff/assignments/interview-conductor", director, h.Users.AssignInterviewConductor)

	onboarding := authenticated.Group("/onboarding")
	{
		applications := onboarding.Group("/applications")
		applications.POST("", admissions, h.Onboarding.CreateApplication)
		applications.GET("/:id", admissions, h.Onboarding.GetApplication)
		applications.PUT("/:id/form-given", admissions, h.Onboarding.MarkFormGiven)
		applications.PUT("/:id/form-submitted", admissions, h.Onboarding.SubmitForm)
		applications.POST("/:id/schedule-interview", admissions, h.Onboarding.ScheduleInterview)
		applications.PUT("/:id/interview-result", director, h.Onboarding.RecordResult)

		onboarding.GET("/pending", admissions, h.Onboarding.ListPending)
		onboarding.GET("/interviews", director, h.Onboarding.ListUpcomingInterviews)
		onboarding.GET("/interviews/next-slot", admissions, h.Onboarding.NextSlot)
	}

	// Every staff member has an inbox
	notifications := authenticated.Group("/notifications")
	{
		notifications.GET("", h.Notifications.List)
		notifications.GET("/unread-count", h.Notifications.UnreadCount)
		notifications.PUT("/read-all", h.Notifications.MarkAllRead)
		notifications.PUT("/:id/read", h.Notifications.MarkRead)
	}

	classrooms := authenticated.Group("/classrooms")
	{
		classrooms.GET("", h.Halqat.ListClassrooms)
		classrooms.POST("", management, h.Halqat.CreateClassroom)
	}

	halqat := authenticated.Group("/halqat")
	{
		halqat.GET("", h.Halqat.ListHalqat)
		halqat.GET("/:id", h.Halqat.GetHalqa)
		halqat.POST("", management, h.Halqat.CreateHalqa)
		halqat.DELETE("/:id", director, h.Halqat.DeactivateHalqa)
	}

	communication := authenticated.Group("/communication", admissions)
	{
		communication.POST("/logs", h.Communication.Log)
		communication.GET("/history/:studentId", h.Communication.History)
		communication.GET("/whatsapp-link/:studentId", h.Communication.WhatsAppLink)
	}
}
