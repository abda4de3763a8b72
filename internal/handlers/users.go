package handlers

import (
	"net/http"
	"net/mail"

	"github.com/cayogarcia/SINC---Video-Tutorial/internal/models"
	"github.com/cayogarcia/SINC---Video-Tutorial/internal/services"

	"github.com/gin-gonic/gin"
)

type CreateUserRequest struct {
	Name     string      `json:"name" binding:"required"`
	Email    string      `json:"email" binding:"required,email"`
	Login    string      `json:"login" binding:"required"`
	Password string      `json:"password" binding:"required"`
	Role     models.Role `json:"role" binding:"required,oneof=admin user"`
}

func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.userService.List(c.Request.Context())
	if err != nil {
		h.respondError(c, err, "User")
		return
	}
	if users == nil {
		users = []models.User{}
	}
	c.JSON(http.StatusOK, users)
}

func (h *Handler) GetUser(c *gin.Context) {
	user, err := h.userService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err, "User")
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *Handler) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.userService.Create(c.Request.Context(), services.CreateUserDTO{
		Name:     req.Name,
		Email:    req.Email,
		Login:    req.Login,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		h.respondError(c, err, "User")
		return
	}

	h.auditService.LogAction(actorID(c), models.ActionCreateUser, user.ID, map[string]string{"login": user.Login}, c.ClientIP())
	c.JSON(http.StatusCreated, user)
}

func (h *Handler) UpdateUser(c *gin.Context) {
	var patch services.UserPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if email, ok := patch.Email.Get(); ok {
		if _, err := mail.ParseAddress(email); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid email address"})
			return
		}
	}
	if role, ok := patch.Role.Get(); ok && !role.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Role must be admin or user"})
		return
	}
	if login, ok := patch.Login.Get(); ok && login == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Login must not be blank"})
		return
	}

	user, err := h.userService.Update(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		h.respondError(c, err, "User")
		return
	}

	h.auditService.LogAction(actorID(c), models.ActionUpdateUser, user.ID, changedFields(patch), c.ClientIP())
	c.JSON(http.StatusOK, user)
}

func (h *Handler) DeleteUser(c *gin.Context) {
	id := c.Param("id")
	if err := h.userService.Delete(c.Request.Context(), id); err != nil {
		h.respondError(c, err, "User")
		return
	}

	h.auditService.LogAction(actorID(c), models.ActionDeleteUser, id, nil, c.ClientIP())
	c.Status(http.StatusNoContent)
}

// changedFields names the fields a patch touched, never their values.
func changedFields(p services.UserPatch) []string {
	fields := []string{}
	if p.Name.Set {
		fields = append(fields, "name")
	}
	if p.Email.Set {
		fields = append(fields, "email")
	}
	if p.Login.Set {
		fields = append(fields, "login")
	}
	if p.Password.Set {
		fields = append(fields, "password")
	}
	if p.Role.Set {
		fields = append(fields, "role")
	}
	return fields
}
