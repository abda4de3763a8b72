package handlers

import (
	"net/http"

	"github.com/cayogarcia/SINC---Video-Tutorial/internal/models"
	"github.com/cayogarcia/SINC---Video-Tutorial/internal/services"
	"github.com/cayogarcia/SINC---Video-Tutorial/pkg/utils"

	"github.com/gin-gonic/gin"
)

// VideoRequest is the body of create and update. Leaving allowed_users out of
// an update keeps the current access list; sending [] clears it.
type VideoRequest struct {
	Title        string                   `json:"title" binding:"required"`
	Link         string                   `json:"link" binding:"required"`
	CategoryID   *string                  `json:"category_id"`
	AllowedUsers utils.Optional[[]string] `json:"allowed_users"`
}

func (r VideoRequest) input() services.VideoInput {
	return services.VideoInput{
		Title:          r.Title,
		Link:           r.Link,
		CategoryID:     r.CategoryID,
		AllowedUserIDs: r.AllowedUsers,
	}
}

func (h *Handler) ListVideos(c *gin.Context) {
	filter := services.VideoFilter{
		CategoryID: c.Query("category"),
		UserID:     c.Query("user"),
	}
	videos, err := h.videoService.DetailedList(c.Request.Context(), filter)
	if err != nil {
		h.respondError(c, err, "Video")
		return
	}
	c.JSON(http.StatusOK, videos)
}

func (h *Handler) GetVideo(c *gin.Context) {
	video, err := h.videoService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err, "Video")
		return
	}
	c.JSON(http.StatusOK, services.NewVideoDetail(*video))
}

func (h *Handler) CreateVideo(c *gin.Context) {
	var req VideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	video, err := h.videoService.Create(c.Request.Context(), req.input())
	if err != nil {
		h.respondError(c, err, "Video")
		return
	}

	detail := services.NewVideoDetail(*video)
	h.auditService.LogAction(actorID(c), models.ActionCreateVideo, video.ID, map[string]interface{}{
		"title":         video.Title,
		"allowed_users": detail.AllowedUsers,
	}, c.ClientIP())
	c.JSON(http.StatusCreated, detail)
}

func (h *Handler) UpdateVideo(c *gin.Context) {
	var req VideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	video, err := h.videoService.Update(c.Request.Context(), c.Param("id"), req.input())
	if err != nil {
		h.respondError(c, err, "Video")
		return
	}

	detail := services.NewVideoDetail(*video)
	details := map[string]interface{}{"title": video.Title}
	if req.AllowedUsers.Set {
		details["allowed_users"] = detail.AllowedUsers
	}
	h.auditService.LogAction(actorID(c), models.ActionUpdateVideo, video.ID, details, c.ClientIP())
	c.JSON(http.StatusOK, detail)
}

func (h *Handler) DeleteVideo(c *gin.Context) {
	id := c.Param("id")
	if err := h.videoService.Delete(c.Request.Context(), id); err != nil {
		h.respondError(c, err, "Video")
		return
	}

	h.auditService.LogAction(actorID(c), models.ActionDeleteVideo, id, nil, c.ClientIP())
	c.Status(http.StatusNoContent)
}
