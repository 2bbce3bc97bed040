package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	FlashSuccess = "success"
	FlashDanger  = "danger"
	FlashWarning = "warning"
	FlashInfo    = "info"

	FlashCookieKey = "flash"
	FlashLifetime  = 5 * time.Minute

	flashStateKey = "flash_state"
)

type Flash struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

type flashClaims struct {
	Flashes []Flash `json:"flashes"`
	jwt.RegisteredClaims
}

type flashState struct {
	secret       []byte
	secureCookie bool
	incoming     []Flash
	outgoing     []Flash
	hadCookie    bool
}

// Flashes carries one-shot user messages across a redirect in a signed
// cookie. Tampered or expired cookies are ignored.
func Flashes(secret string, secureCookie bool) gin.HandlerFunc {
	key := []byte(secret)
	return func(c *gin.Context) {
		state := &flashState{secret: key, secureCookie: secureCookie}
		if raw, err := c.Cookie(FlashCookieKey); err == nil && raw != "" {
			state.hadCookie = true
			state.incoming = parseFlashes(raw, key)
		}
		c.Set(flashStateKey, state)
		c.Next()
	}
}

// AddFlash queues a message for the next rendered page, which may be the
// current one.
func AddFlash(c *gin.Context, kind, message string) {
	state := getFlashState(c)
	if state == nil {
		return
	}
	state.outgoing = append(state.outgoing, Flash{Kind: kind, Message: message})

	token, err := signFlashes(state.outgoing, state.secret)
	if err != nil {
		return
	}
	dropFlashCookie(c)
	SetCookie(c, FlashCookieKey, token, int(FlashLifetime.Seconds()), state.secureCookie)
}

// ConsumeFlashes returns every pending message and clears the cookie.
func ConsumeFlashes(c *gin.Context) []Flash {
	state := getFlashState(c)
	if state == nil {
		return nil
	}
	flashes := append(state.incoming, state.outgoing...)
	if state.hadCookie || len(state.outgoing) > 0 {
		dropFlashCookie(c)
		SetCookie(c, FlashCookieKey, "", -1, state.secureCookie)
	}
	state.incoming, state.outgoing, state.hadCookie = nil, nil, false
	return flashes
}

func getFlashState(c *gin.Context) *flashState {
	if v, ok := c.Get(flashStateKey); ok {
		return v.(*flashState)
	}
	return nil
}

func signFlashes(flashes []Flash, secret []byte) (string, error) {
	now := time.Now()
	claims := flashClaims{
		Flashes: flashes,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(FlashLifetime)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

func parseFlashes(raw string, secret []byte) []Flash {
	claims := &flashClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return nil
	}
	return claims.Flashes
}

// dropFlashCookie removes a flash cookie already queued on this response so
// only the latest value is sent.
func dropFlashCookie(c *gin.Context) {
	header := c.Writer.Header()
	cookies := header.Values("Set-Cookie")
	if len(cookies) == 0 {
		return
	}
	header.Del("Set-Cookie")
	for _, v := range cookies {
		if !strings.HasPrefix(v, FlashCookieKey+"=") {
			header.Add("Set-Cookie", v)
		}
	}
}
