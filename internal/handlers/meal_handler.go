package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"macrotracker/internal/middleware"
	"macrotracker/internal/models"
	"macrotracker/internal/services"
	"macrotracker/internal/validators"
)

const MsgMealCreated = "Meal created."

type MealHandler struct {
	mealService  *services.MealService
	auditService *services.AuditService
}

func NewMealHandler(mealService *services.MealService, auditService *services.AuditService) *MealHandler {
	return &MealHandler{
		mealService:  mealService,
		auditService: auditService,
	}
}

func (h *MealHandler) List(c *gin.Context) {
	user := middleware.GetUser(c)

	meals, err := h.mealService.List(c.Request.Context(), user.ID)
	if err != nil {
		serverError(c, err)
		return
	}
	render(c, http.StatusOK, "meals", gin.H{"Title": "Meals", "Meals": meals})
}

func (h *MealHandler) New(c *gin.Context) {
	render(c, http.StatusOK, "meal_form", gin.H{"Title": "New meal", "Today": models.Today()})
}

// Create never rejects input: a bad date means today and a blank name means
// the default meal name.
func (h *MealHandler) Create(c *gin.Context) {
	user := middleware.GetUser(c)
	date := validators.ParseDate(c.PostForm("date"), models.Today())

	m, err := h.mealService.Create(c.Request.Context(), user.ID, date, c.PostForm("name"))
	if err != nil {
		serverError(c, err)
		return
	}

	h.auditService.LogUser(c.Request.Context(), user.ID, services.ActionMealCreate, services.EntityMeal, m.ID,
		map[string]string{"name": m.Name, "date": models.FormatDay(m.Date)}, c.ClientIP())
	redirect(c, "/meals", middleware.FlashSuccess, MsgMealCreated)
}
