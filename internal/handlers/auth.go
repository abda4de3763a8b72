package handlers

import (
	"errors"
	"net/http"

	"github.com/cayogarcia/SINC---Video-Tutorial/internal/models"
	"github.com/cayogarcia/SINC---Video-Tutorial/internal/services"

	"github.com/gin-gonic/gin"
)

// LoginRequest accepts both form posts and JSON bodies.
type LoginRequest struct {
	Username string `form:"username" json:"username" binding:"required"`
	Password string `form:"password" json:"password" binding:"required"`
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := h.authService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			h.auditService.LogAction(nil, models.ActionLoginFailed, req.Username, nil, c.ClientIP())
		}
		h.respondError(c, err, "User")
		return
	}

	userID := session.User.ID
	if session.Migrated {
		h.auditService.LogAction(&userID, models.ActionPasswordMigrated, userID, nil, c.ClientIP())
	}
	h.auditService.LogAction(&userID, models.ActionLogin, session.User.Login, nil, c.ClientIP())

	c.JSON(http.StatusOK, session)
}
