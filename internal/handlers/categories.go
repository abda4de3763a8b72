package handlers

import (
	"net/http"
	"strings"

	"github.com/cayogarcia/SINC---Video-Tutorial/internal/models"

	"github.com/gin-gonic/gin"
)

type CategoryRequest struct {
	Name string `json:"name" binding:"required"`
}

func bindCategory(c *gin.Context) (CategoryRequest, bool) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return req, false
	}
	if strings.TrimSpace(req.Name) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Category name must not be blank"})
		return req, false
	}
	return req, true
}

func (h *Handler) ListCategories(c *gin.Context) {
	categories, err := h.categoryService.List(c.Request.Context())
	if err != nil {
		h.respondError(c, err, "Category")
		return
	}
	if categories == nil {
		categories = []models.Category{}
	}
	c.JSON(http.StatusOK, categories)
}

func (h *Handler) GetCategory(c *gin.Context) {
	category, err := h.categoryService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err, "Category")
		return
	}
	c.JSON(http.StatusOK, category)
}

func (h *Handler) CreateCategory(c *gin.Context) {
	req, ok := bindCategory(c)
	if !ok {
		return
	}

	category, err := h.categoryService.Create(c.Request.Context(), req.Name)
	if err != nil {
		h.respondError(c, err, "Category")
		return
	}

	h.auditService.LogAction(actorID(c), models.ActionCreateCategory, category.ID, map[string]string{"name": category.Name}, c.ClientIP())
	c.JSON(http.StatusCreated, category)
}

func (h *Handler) UpdateCategory(c *gin.Context) {
	req, ok := bindCategory(c)
	if !ok {
		return
	}

	category, err := h.categoryService.Update(c.Request.Context(), c.Param("id"), req.Name)
	if err != nil {
		h.respondError(c, err, "Category")
		return
	}

	h.auditService.LogAction(actorID(c), models.ActionUpdateCategory, category.ID, map[string]string{"name": category.Name}, c.ClientIP())
	c.JSON(http.StatusOK, category)
}

func (h *Handler) DeleteCategory(c *gin.Context) {
	id := c.Param("id")
	if err := h.categoryService.Delete(c.Request.Context(), id); err != nil {
		h.respondError(c, err, "Category")
		return
	}

	h.auditService.LogAction(actorID(c), models.ActionDeleteCategory, id, nil, c.ClientIP())
	c.Status(http.StatusNoContent)
}
