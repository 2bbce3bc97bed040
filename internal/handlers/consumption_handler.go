package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"macrotracker/internal/middleware"
	"macrotracker/internal/services"
	"macrotracker/internal/validators"
)

const MsgConsumptionAdded = "Consumption added."

type ConsumptionHandler struct {
	consumptionService *services.ConsumptionService
	auditService       *services.AuditService
}

func NewConsumptionHandler(consumptionService *services.ConsumptionService, auditService *services.AuditService) *ConsumptionHandler {
	return &ConsumptionHandler{
		consumptionService: consumptionService,
		auditService:       auditService,
	}
}

func (h *ConsumptionHandler) New(c *gin.Context) {
	user := middleware.GetUser(c)

	meals, products, err := h.consumptionService.FormOptions(c.Request.Context(), user.ID)
	if err != nil {
		serverError(c, err)
		return
	}
	render(c, http.StatusOK, "consumption_form", gin.H{
		"Title":    "Log food",
		"Meals":    meals,
		"Products": products,
	})
}

// Create answers 404 unless both the meal and the product belong to the
// current user. Malformed ids count as missing rows.
func (h *ConsumptionHandler) Create(c *gin.Context) {
	user := middleware.GetUser(c)

	mealID, okMeal := validators.ParseID(c.PostForm("meal_id"))
	productID, okProduct := validators.ParseID(c.PostForm("product_id"))
	if !okMeal || !okProduct {
		notFound(c)
		return
	}
	quantity := validators.ParseFloat(c.PostForm("quantity_g"))

	cons, err := h.consumptionService.Create(c.Request.Context(), user.ID, mealID, productID, quantity)
	if err != nil {
		storeError(c, err)
		return
	}

	h.auditService.LogUser(c.Request.Context(), user.ID, services.ActionConsumptionCreate, services.EntityConsumption, cons.ID,
		map[string]interface{}{"meal_id": mealID, "product_id": productID, "quantity_g": quantity}, c.ClientIP())
	redirect(c, "/", middleware.FlashSuccess, MsgConsumptionAdded)
}
