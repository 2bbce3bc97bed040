package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"macrotracker/internal/models"
	"macrotracker/internal/services"
)

const (
	UserContextKey = "user"

	LoginRequiredMessage = "Please log in to access this page."
	AdminRequiredMessage = "Admin access required."
)

// SessionValidator resolves a session cookie to its user.
type SessionValidator interface {
	ValidateSession(ctx context.Context, sessionID string) (*models.User, error)
}

// Auth requires a valid session. Anonymous requests are redirected to the
// login page with a warning.
func Auth(auth SessionValidator, secureCookie bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if user := loadUser(c, auth, secureCookie); user != nil {
			c.Set(UserContextKey, user)
			c.Next()
			return
		}
		redirectToLogin(c, LoginRequiredMessage)
	}
}

// OptionalAuth attaches the session user when there is one.
func OptionalAuth(auth SessionValidator, secureCookie bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if user := loadUser(c, auth, secureCookie); user != nil {
			c.Set(UserContextKey, user)
		}
		c.Next()
	}
}

// RequireAdmin must run after OptionalAuth or Auth. Anonymous users and
// non-admins are both sent to the login page.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := GetUser(c)
		if user == nil || !user.IsAdmin {
			redirectToLogin(c, AdminRequiredMessage)
			return
		}
		c.Next()
	}
}

func GetUser(c *gin.Context) *models.User {
	if user, exists := c.Get(UserContextKey); exists {
		return user.(*models.User)
	}
	return nil
}

func loadUser(c *gin.Context, auth SessionValidator, secureCookie bool) *models.User {
	sessionID, err := c.Cookie(services.SessionCookieKey)
	if err != nil || sessionID == "" {
		return nil
	}

	user, err := auth.ValidateSession(c.Request.Context(), sessionID)
	if err != nil {
		SetCookie(c, services.SessionCookieKey, "", -1, secureCookie)
		return nil
	}
	return user
}

func redirectToLogin(c *gin.Context, message string) {
	AddFlash(c, FlashWarning, message)
	c.Redirect(http.StatusFound, "/login")
	c.Abort()
}
