package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"macrotracker/internal/middleware"
	"macrotracker/internal/models"
	"macrotracker/internal/services"
)

type DashboardHandler struct {
	totalsService      *services.TotalsService
	mealService        *services.MealService
	consumptionService *services.ConsumptionService
}

func NewDashboardHandler(totals *services.TotalsService, meals *services.MealService, consumptions *services.ConsumptionService) *DashboardHandler {
	return &DashboardHandler{
		totalsService:      totals,
		mealService:        meals,
		consumptionService: consumptions,
	}
}

// Dashboard shows today's totals, meals and consumptions.
func (h *DashboardHandler) Dashboard(c *gin.Context) {
	ctx := c.Request.Context()
	user := middleware.GetUser(c)
	today := models.Today()

	totals, err := h.totalsService.ForDate(ctx, user.ID, today)
	if err != nil {
		serverError(c, err)
		return
	}
	meals, err := h.mealService.ListOnDate(ctx, user.ID, today)
	if err != nil {
		serverError(c, err)
		return
	}
	consumptions, err := h.consumptionService.ListOnDate(ctx, user.ID, today)
	if err != nil {
		serverError(c, err)
		return
	}

	render(c, http.StatusOK, "dashboard", gin.H{
		"Title":        "Today",
		"Date":         today,
		"Totals":       totals,
		"Meals":        meals,
		"Consumptions": consumptions,
	})
}

func (h *DashboardHandler) History(c *gin.Context) {
	user := middleware.GetUser(c)

	history, err := h.totalsService.History(c.Request.Context(), user.ID, services.HistoryLimit)
	if err != nil {
		serverError(c, err)
		return
	}
	render(c, http.StatusOK, "history", gin.H{"Title": "History", "History": history})
}
