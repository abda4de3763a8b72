package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cayogarcia/SINC---Video-Tutorial/internal/config"
	"github.com/cayogarcia/SINC---Video-Tutorial/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Handler struct {
	cfg             config.Config
	logger          *slog.Logger
	db              *gorm.DB
	categoryService *services.CategoryService
	userService     *services.UserService
	videoService    *services.VideoService
	authService     *services.AuthService
	auditService    *services.AuditService
}

func NewHandler(
	cfg config.Config,
	logger *slog.Logger,
	db *gorm.DB,
	categoryService *services.CategoryService,
	userService *services.UserService,
	videoService *services.VideoService,
	authService *services.AuthService,
	auditService *services.AuditService,
) *Handler {
	return &Handler{
		cfg:             cfg,
		logger:          logger,
		db:              db,
		categoryService: categoryService,
		userService:     userService,
		videoService:    videoService,
		authService:     authService,
		auditService:    auditService,
	}
}

// respondError translates a service error into a JSON response. entity names
// the resource in not-found messages.
func (h *Handler) respondError(c *gin.Context, err error, entity string) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": entity + " not found"})
	case errors.Is(err, services.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
	case errors.Is(err, services.ErrDuplicateName),
		errors.Is(err, services.ErrDuplicateEmail),
		errors.Is(err, services.ErrDuplicateLogin):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case services.IsConflict(err):
		c.JSON(http.StatusConflict, gin.H{"error": entity + " conflicts with an existing record"})
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Referenced record does not exist"})
	default:
		h.logger.Error("Request failed", "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// actorID returns the caller's user id from the X-User-ID header, if any.
// The header is informational and only feeds the audit log.
func actorID(c *gin.Context) *string {
	if id := c.GetHeader("X-User-ID"); id != "" {
		return &id
	}
	return nil
}
