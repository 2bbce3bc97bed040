package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"macrotracker/internal/services"
)

type AuditHandler struct {
	auditService *services.AuditService
}

func NewAuditHandler(auditService *services.AuditService) *AuditHandler {
	return &AuditHandler{auditService: auditService}
}

func (h *AuditHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	perPage := services.AuditPerPage

	logs, total, err := h.auditService.List(c.Request.Context(), page, perPage)
	if err != nil {
		serverError(c, err)
		return
	}

	totalPages := (total + perPage - 1) / perPage
	if totalPages < 1 {
		totalPages = 1
	}

	render(c, http.StatusOK, "admin_audit", gin.H{
		"Title":      "Audit log",
		"Logs":       logs,
		"Page":       page,
		"TotalPages": totalPages,
		"Total":      total,
	})
}
