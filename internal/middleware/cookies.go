package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// IsSecureRequest reports whether the request reached us over TLS, directly
// or through a proxy that sets X-Forwarded-Proto.
func IsSecureRequest(c *gin.Context) bool {
	return c.Request.TLS != nil || c.GetHeader("X-Forwarded-Proto") == "https"
}

// SetCookie writes an HttpOnly, SameSite=Lax cookie for the whole site. A
// negative maxAge deletes it.
func SetCookie(c *gin.Context, name, value string, maxAge int, forceSecure bool) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		Secure:   forceSecure || IsSecureRequest(c),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
