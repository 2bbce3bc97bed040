package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"macrotracker/internal/middleware"
	"macrotracker/internal/services"
	"macrotracker/internal/validators"
)

const (
	MsgMissingFields   = "All fields are required."
	MsgUserExists      = "Username or email already exists."
	MsgSignupSuccess   = "Signup successful! Wait for admin approval before logging in."
	MsgInvalidLogin    = "Invalid credentials."
	MsgPendingApproval = "Your account is pending approval."
	MsgLoggedIn        = "Logged in."
	MsgLoggedOut       = "Logged out."
)

type AuthHandler struct {
	authService  *services.AuthService
	auditService *services.AuditService
	secureCookie bool
}

func NewAuthHandler(authService *services.AuthService, auditService *services.AuditService, secureCookie bool) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		auditService: auditService,
		secureCookie: secureCookie,
	}
}

func (h *AuthHandler) SignupPage(c *gin.Context) {
	render(c, http.StatusOK, "signup", gin.H{"Title": "Sign up"})
}

func (h *AuthHandler) Signup(c *gin.Context) {
	username := c.PostForm("username")
	email := c.PostForm("email")
	form := gin.H{"Title": "Sign up", "Username": username, "Email": email}

	password := c.PostForm("password")

	if msg := signupProblem(username, email, password); msg != "" {
		rerender(c, http.StatusBadRequest, "signup", msg, form)
		return
	}

	user, err := h.authService.Signup(c.Request.Context(), username, email, password)
	switch {
	case errors.Is(err, services.ErrMissingFields):
		rerender(c, http.StatusBadRequest, "signup", MsgMissingFields, form)
		return
	case errors.Is(err, services.ErrUserExists):
		rerender(c, http.StatusConflict, "signup", MsgUserExists, form)
		return
	case err != nil:
		serverError(c, err)
		return
	}

	h.auditService.LogUser(c.Request.Context(), user.ID, services.ActionSignup, services.EntityUser, user.ID, nil, c.ClientIP())
	redirect(c, "/login", middleware.FlashSuccess, MsgSignupSuccess)
}

func (h *AuthHandler) LoginPage(c *gin.Context) {
	render(c, http.StatusOK, "login", gin.H{"Title": "Log in"})
}

func (h *AuthHandler) Login(c *gin.Context) {
	ctx := c.Request.Context()
	email := validators.NormalizeEmail(c.PostForm("email"))
	form := gin.H{"Title": "Log in", "Email": email}

	session, user, err := h.authService.Login(ctx, email, c.PostForm("password"))
	switch {
	case errors.Is(err, services.ErrInvalidCredentials):
		details := map[string]string{"email": email}
		if user != nil {
			h.auditService.LogUser(ctx, user.ID, services.ActionLoginFailed, services.EntityUser, user.ID, details, c.ClientIP())
		} else {
			h.auditService.LogAnonymous(ctx, services.ActionLoginFailed, services.EntityUser, details, c.ClientIP())
		}
		rerender(c, http.StatusUnauthorized, "login", MsgInvalidLogin, form)
		return
	case errors.Is(err, services.ErrUserNotApproved):
		middleware.AddFlash(c, middleware.FlashWarning, MsgPendingApproval)
		render(c, http.StatusForbidden, "login", form)
		return
	case err != nil:
		serverError(c, err)
		return
	}

	middleware.SetCookie(c, services.SessionCookieKey, session.ID,
		int(h.authService.SessionDuration().Seconds()), h.secureCookie)
	h.auditService.LogUser(ctx, user.ID, services.ActionLogin, services.EntityUser, user.ID, nil, c.ClientIP())
	redirect(c, "/", middleware.FlashSuccess, MsgLoggedIn)
}

// Logout accepts GET and POST and works without a session.
func (h *AuthHandler) Logout(c *gin.Context) {
	ctx := c.Request.Context()
	if sessionID, err := c.Cookie(services.SessionCookieKey); err == nil && sessionID != "" {
		if user, err := h.authService.ValidateSession(ctx, sessionID); err == nil {
			h.auditService.LogUser(ctx, user.ID, services.ActionLogout, services.EntityUser, user.ID, nil, c.ClientIP())
		}
		if err := h.authService.Logout(ctx, sessionID); err != nil {
			c.Error(err)
		}
	}

	middleware.SetCookie(c, services.SessionCookieKey, "", -1, h.secureCookie)
	redirect(c, "/login", middleware.FlashSuccess, MsgLoggedOut)
}

// signupProblem reports malformed input. Blank fields are left to the auth
// service so they always produce MsgMissingFields.
func signupProblem(username, email, password string) string {
	username, email = strings.TrimSpace(username), validators.NormalizeEmail(email)
	if username == "" || email == "" || strings.TrimSpace(password) == "" {
		return ""
	}
	err := validators.ValidateSignup(username, email)
	switch {
	case errors.Is(err, validators.ErrUsernameTooLong):
		return "Username must be at most 80 characters."
	case errors.Is(err, validators.ErrEmailTooLong):
		return "Email must be at most 120 characters."
	case errors.Is(err, validators.ErrInvalidEmail):
		return "Please enter a valid email address."
	}
	return ""
}
