package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"macrotracker/internal/middleware"
	"macrotracker/internal/models"
	"macrotracker/internal/services"
	"macrotracker/internal/validators"
)

const (
	MsgNameRequired   = "Name is required."
	MsgNameTooLong    = "Name must be at most 120 characters."
	MsgProductCreated = "Product created."
	MsgProductDeleted = "Product deleted."
	MsgProductInUse   = "Product is used by logged consumptions and cannot be deleted."
)

type ProductHandler struct {
	productService *services.ProductService
	auditService   *services.AuditService
}

func NewProductHandler(productService *services.ProductService, auditService *services.AuditService) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		auditService:   auditService,
	}
}

func (h *ProductHandler) List(c *gin.Context) {
	user := middleware.GetUser(c)

	products, err := h.productService.List(c.Request.Context(), user.ID)
	if err != nil {
		serverError(c, err)
		return
	}
	render(c, http.StatusOK, "products", gin.H{"Title": "Products", "Products": products})
}

func (h *ProductHandler) New(c *gin.Context) {
	render(c, http.StatusOK, "product_form", gin.H{"Title": "New product"})
}

func (h *ProductHandler) Create(c *gin.Context) {
	user := middleware.GetUser(c)

	per := models.Per100g{
		CaloriesPer100g: validators.ParseFloat(c.PostForm("calories")),
		ProteinPer100g:  validators.ParseFloat(c.PostForm("protein")),
		CarbsPer100g:    validators.ParseFloat(c.PostForm("carbs")),
		FatPer100g:      validators.ParseFloat(c.PostForm("fat")),
	}

	p, err := h.productService.Create(c.Request.Context(), user.ID, c.PostForm("name"), per)
	if err != nil {
		form := gin.H{
			"Title":    "New product",
			"Name":     c.PostForm("name"),
			"Calories": c.PostForm("calories"),
			"Protein":  c.PostForm("protein"),
			"Carbs":    c.PostForm("carbs"),
			"Fat":      c.PostForm("fat"),
		}
		switch {
		case errors.Is(err, services.ErrNameRequired):
			rerender(c, http.StatusBadRequest, "product_form", MsgNameRequired, form)
		case errors.Is(err, services.ErrNameTooLong):
			rerender(c, http.StatusBadRequest, "product_form", MsgNameTooLong, form)
		default:
			serverError(c, err)
		}
		return
	}

	h.auditService.LogUser(c.Request.Context(), user.ID, services.ActionProductCreate, services.EntityProduct, p.ID,
		map[string]string{"name": p.Name}, c.ClientIP())
	redirect(c, "/products", middleware.FlashSuccess, MsgProductCreated)
}

func (h *ProductHandler) Delete(c *gin.Context) {
	user := middleware.GetUser(c)

	id, ok := validators.ParseID(c.Param("id"))
	if !ok {
		notFound(c)
		return
	}

	p, err := h.productService.Delete(c.Request.Context(), user.ID, id)
	if errors.Is(err, services.ErrProductInUse) {
		redirect(c, "/products", middleware.FlashDanger, MsgProductInUse)
		return
	}
	if err != nil {
		storeError(c, err)
		return
	}

	h.auditService.LogUser(c.Request.Context(), user.ID, services.ActionProductDelete, services.EntityProduct, p.ID,
		map[string]string{"name": p.Name}, c.ClientIP())
	redirect(c, "/products", middleware.FlashSuccess, MsgProductDeleted)
}
