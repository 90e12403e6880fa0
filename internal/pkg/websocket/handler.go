package websocket

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/madarij/center/internal/app/models/dto"
	"github.com/madarij/center/internal/middleware"
	"github.com/rs/zerolog"
)

// Handler upgrades authenticated requests to a live notification feed
type Handler struct {
	hub    *Hub
	logger zerolog.Logger
}

// NewHandler creates a new WebSocket handler
func NewHandler(hub *Hub, logger zerolog.Logger) *Handler {
	return &Handler{hub: hub, logger: logger}
}

// Serve godoc
// @Summary Live notification feed
// @Description Upgrades to a WebSocket that receives the caller's new notifications as they are created. Browsers may pass the JWT in the access_token query parameter.
// @Tags Notifications
// @Security BearerAuth
// @Param access_token query string false "JWT when the Authorization header cannot be set"
// @Success 101 {string} string "Switching Protocols"
// @Failure 401 {object} dto.ErrorResponse
// @Router /notifications/ws [get]
func (h *Handler) Serve(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		detail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(detail))
		return
	}

	// Upgrade writes its own error response
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn().Err(err).Str("userID", userID.String()).Msg("Failed to upgrade connection to WebSocket")
		return
	}

	client := newClient(h.hub, conn, userID, h.logger)
	h.hub.register(client)

	go client.writePump()
	go client.readPump()

	h.logger.Info().
		Str("userID", userID.String()).
		Str("remoteAddr", conn.RemoteAddr().String()).
		Msg("WebSocket connection established")
}
