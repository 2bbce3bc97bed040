package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"macrotracker/internal/logging"
	"macrotracker/internal/middleware"
	"macrotracker/internal/repository"
)

// render writes a page with the values every template expects.
func render(c *gin.Context, status int, page string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["User"] = middleware.GetUser(c)
	data["CSRF"] = middleware.GetCSRFToken(c)
	data["Flashes"] = middleware.ConsumeFlashes(c)
	c.HTML(status, page, data)
}

// redirect flashes message and sends the browser to location.
func redirect(c *gin.Context, location, kind, message string) {
	if message != "" {
		middleware.AddFlash(c, kind, message)
	}
	c.Redirect(http.StatusFound, location)
}

// rerender shows a form again with an error message.
func rerender(c *gin.Context, status int, page, message string, data gin.H) {
	middleware.AddFlash(c, middleware.FlashDanger, message)
	render(c, status, page, data)
}

func notFound(c *gin.Context) {
	render(c, http.StatusNotFound, "error", gin.H{"Title": "Not found", "Message": "Not found"})
}

func serverError(c *gin.Context, err error) {
	c.Error(err)
	logging.HTTP().WithError(err).
		WithField("request_id", middleware.GetRequestID(c)).
		Error("Request failed")
	render(c, http.StatusInternalServerError, "error", gin.H{
		"Title":   "Something went wrong",
		"Message": "The request could not be completed. Please try again.",
	})
}

// storeError maps a store error onto a not-found page or a server error.
func storeError(c *gin.Context, err error) {
	if errors.Is(err, repository.ErrNotFound) {
		notFound(c)
		return
	}
	serverError(c, err)
}
