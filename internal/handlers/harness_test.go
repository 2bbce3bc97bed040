package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"macrotracker/internal/config"
	"macrotracker/internal/middleware"
	"macrotracker/internal/models"
	"macrotracker/internal/services"
	"macrotracker/internal/testutil"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakePinger struct{ err error }

func (p *fakePinger) PingContext(context.Context) error { return p.err }

// client drives the router like a browser: it keeps cookies between requests
// and adds the CSRF token to every form it posts.
type client struct {
	t      *testing.T
	router *gin.Engine
	store  *testutil.Store
	db     *fakePinger
	jar    map[string]*http.Cookie
}

func newClient(t *testing.T) *client {
	t.Helper()
	store := testutil.New()
	return newClientWithStore(t, store)
}

func newClientWithStore(t *testing.T, store *testutil.Store) *client {
	t.Helper()
	cfg := config.Default()

	auth := services.NewAuthService(store.Users, store.Sessions, cfg.Session.Duration)
	auth.SetPasswordCost(bcrypt.MinCost)
	db := &fakePinger{}

	router, err := NewRouter(Deps{
		Config:       cfg,
		DB:           db,
		Auth:         auth,
		Users:        services.NewUserService(store.Users, auth),
		Products:     services.NewProductService(store.Products, store.Consumptions),
		Meals:        services.NewMealService(store.Meals),
		Consumptions: services.NewConsumptionService(store.Consumptions, store.Meals, store.Products),
		Totals:       services.NewTotalsService(store.Consumptions, store.Meals),
		Audit:        services.NewAuditService(store.Audit),
	})
	require.NoError(t, err)

	return &client{t: t, router: router, store: store, db: db, jar: make(map[string]*http.Cookie)}
}

// fork returns a second browser sharing the same server and store.
func (c *client) fork() *client {
	return &client{t: c.t, router: c.router, store: c.store, db: c.db, jar: make(map[string]*http.Cookie)}
}

func (c *client) do(req *http.Request) *httptest.ResponseRecorder {
	for _, cookie := range c.jar {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	c.router.ServeHTTP(w, req)

	for _, cookie := range w.Result().Cookies() {
		if cookie.MaxAge < 0 || cookie.Value == "" {
			delete(c.jar, cookie.Name)
			continue
		}
		c.jar[cookie.Name] = &http.Cookie{Name: cookie.Name, Value: cookie.Value}
	}
	return w
}

func (c *client) get(path string) *httptest.ResponseRecorder {
	return c.do(httptest.NewRequest(http.MethodGet, path, nil))
}

func (c *client) csrfToken() string {
	if cookie, ok := c.jar[middleware.CSRFCookieKey]; ok {
		return cookie.Value
	}
	c.get("/login")
	cookie, ok := c.jar[middleware.CSRFCookieKey]
	require.True(c.t, ok, "no CSRF cookie issued")
	return cookie.Value
}

func (c *client) post(path string, form url.Values) *httptest.ResponseRecorder {
	if form == nil {
		form = url.Values{}
	}
	form.Set(middleware.CSRFFormKey, c.csrfToken())
	return c.do(newFormRequest(path, form))
}

func newFormRequest(path string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

// follow requests the redirect target of w and returns the rendered page.
func (c *client) follow(w *httptest.ResponseRecorder) *httptest.ResponseRecorder {
	c.t.Helper()
	require.Equal(c.t, http.StatusFound, w.Code, w.Body.String())
	return c.get(w.Header().Get("Location"))
}

func (c *client) login(email, password string) {
	c.t.Helper()
	w := c.post("/login", url.Values{"email": {email}, "password": {password}})
	require.Equal(c.t, http.StatusFound, w.Code, w.Body.String())
	require.Equal(c.t, "/", w.Header().Get("Location"))
}

// loggedInUser creates an approved user and logs the client in as them.
func (c *client) loggedInUser(name string, admin bool) int64 {
	c.t.Helper()
	u := c.store.AddUser(name, name+"@example.com", "pw-"+name, admin, true)
	c.login(u.Email, "pw-"+name)
	return u.ID
}

var errDown = errors.New("connection refused")

func today() string {
	return models.FormatDay(models.Today())
}
