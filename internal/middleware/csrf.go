package middleware

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"macrotracker/internal/logging"
	"macrotracker/internal/metrics"
)

const (
	CSRFTokenKey    = "csrf_token"
	CSRFCookieKey   = "_csrf"
	CSRFHeaderKey   = "X-CSRF-Token"
	CSRFFormKey     = "_csrf"
	CSRFTokenLength = 32

	// CSRFCookieMaxAge is one day, in seconds.
	CSRFCookieMaxAge = 86400

	csrfRejectedMessage = "invalid CSRF token"
)

// CSRF implements the double-submit cookie pattern: every form carries the
// token from the _csrf cookie, and state-changing requests must echo it back.
func CSRF(secureCookie bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(CSRFCookieKey)
		if err != nil || !wellFormedCSRFToken(token) {
			token = generateCSRFToken()
			SetCookie(c, CSRFCookieKey, token, CSRFCookieMaxAge, secureCookie)
		}

		// Templates read it through GetCSRFToken.
		c.Set(CSRFTokenKey, token)

		if isSafeMethod(c.Request.Method) {
			c.Next()
			return
		}

		submitted := submittedCSRFToken(c)
		if !validateCSRFToken(token, submitted) {
			reason := "mismatch"
			if submitted == "" {
				reason = "missing"
			}
			logging.HTTP().WithFields(logrus.Fields{
				"method":     c.Request.Method,
				"path":       c.Request.URL.Path,
				"client_ip":  c.ClientIP(),
				"reason":     reason,
				"request_id": GetRequestID(c),
			}).Warn("Rejected request with invalid CSRF token")
			metrics.AuthEvents.WithLabelValues(metrics.EventCSRFRejected).Inc()

			c.String(http.StatusForbidden, csrfRejectedMessage)
			c.Abort()
			return
		}

		c.Next()
	}
}

func GetCSRFToken(c *gin.Context) string {
	if token, exists := c.Get(CSRFTokenKey); exists {
		return token.(string)
	}
	return ""
}

func isSafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	}
	return false
}

// Forms send the token as a field; scripts may use the header instead.
func submittedCSRFToken(c *gin.Context) string {
	if token := c.PostForm(CSRFFormKey); token != "" {
		return token
	}
	return c.GetHeader(CSRFHeaderKey)
}

func wellFormedCSRFToken(token string) bool {
	if len(token) != CSRFTokenLength*2 {
		return false
	}
	_, err := hex.DecodeString(token)
	return err == nil
}

func generateCSRFToken() string {
	buf := make([]byte, CSRFTokenLength)
	if _, err := rand.Read(buf); err != nil {
		panic("csrf: reading random bytes: " + err.Error())
	}
	return hex.EncodeToString(buf)
}

func validateCSRFToken(expected, actual string) bool {
	if len(expected) != len(actual) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(expected), []byte(actual)) == 1
}
