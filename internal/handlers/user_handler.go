package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"macrotracker/internal/middleware"
	"macrotracker/internal/services"
	"macrotracker/internal/validators"
)

type UserHandler struct {
	userService  *services.UserService
	auditService *services.AuditService
}

func NewUserHandler(userService *services.UserService, auditService *services.AuditService) *UserHandler {
	return &UserHandler{
		userService:  userService,
		auditService: auditService,
	}
}

// Pending lists users waiting for approval (admin only)
func (h *UserHandler) Pending(c *gin.Context) {
	users, err := h.userService.ListPending(c.Request.Context())
	if err != nil {
		serverError(c, err)
		return
	}
	render(c, http.StatusOK, "admin_pending", gin.H{"Title": "Pending users", "Users": users})
}

// Approve lets a pending user log in (admin only)
func (h *UserHandler) Approve(c *gin.Context) {
	admin := middleware.GetUser(c)

	id, ok := validators.ParseID(c.Param("id"))
	if !ok {
		notFound(c)
		return
	}

	user, err := h.userService.Approve(c.Request.Context(), id)
	if err != nil {
		storeError(c, err)
		return
	}

	h.auditService.LogUser(c.Request.Context(), admin.ID, services.ActionUserApprove, services.EntityUser, user.ID,
		map[string]string{"email": user.Email}, c.ClientIP())
	redirect(c, "/admin/pending", middleware.FlashSuccess, fmt.Sprintf("Approved %s.", user.Email))
}

// List shows all users, newest first (admin only)
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.userService.List(c.Request.Context())
	if err != nil {
		serverError(c, err)
		return
	}
	render(c, http.StatusOK, "admin_users", gin.H{"Title": "Users", "Users": users})
}
