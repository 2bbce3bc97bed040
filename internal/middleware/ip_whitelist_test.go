package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestIPWhitelist(t *testing.T) {
	tests := []struct {
		name       string
		allowedIPs []string
		remoteAddr string
		wantStatus int
	}{
		{
			name:       "empty whitelist blocks all",
			allowedIPs: []string{},
			remoteAddr: "192.168.1.100:12345",
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "exact IP match",
			allowedIPs: []string{"192.168.1.100"},
			remoteAddr: "192.168.1.100:12345",
			wantStatus: http.StatusOK,
		},
		{
			name:       "IP not in whitelist",
			allowedIPs: []string{"192.168.1.100"},
			remoteAddr: "192.168.1.101:12345",
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "CIDR match",
			allowedIPs: []string{"192.168.1.0/24"},
			remoteAddr: "192.168.1.50:12345",
			wantStatus: http.StatusOK,
		},
		{
			name:       "CIDR no match",
			allowedIPs: []string{"192.168.1.0/24"},
			remoteAddr: "192.168.2.50:12345",
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "default loopback networks",
			allowedIPs: []string{"127.0.0.1/32", "::1/128"},
			remoteAddr: "127.0.0.1:12345",
			wantStatus: http.StatusOK,
		},
		{
			name:       "IPv6 loopback",
			allowedIPs: []string{"127.0.0.1/32", "::1/128"},
			remoteAddr: "[::1]:12345",
			wantStatus: http.StatusOK,
		},
		{
			name:       "non-canonical CIDR",
			allowedIPs: []string{"10.1.2.3/8"},
			remoteAddr: "10.200.0.1:12345",
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.Use(IPWhitelist(tt.allowedIPs))
			router.GET("/test", func(c *gin.Context) {
				c.Status(http.StatusOK)
			})

			w := httptest.NewRecorder()
			req := httptest.NewRequest("GET", "/test", nil)
			req.RemoteAddr = tt.remoteAddr

			router.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
		})
	}
}

func TestIPWhitelist_InvalidEntries(t *testing.T) {
	allowedIPs := []string{"not-an-ip", "192.168.1.100", "also-invalid"}

	router := gin.New()
	router.Use(IPWhitelist(allowedIPs))
	router.GET("/test", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/test", nil)
	req.RemoteAddr = "192.168.1.100:12345"

	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Valid IP should pass even with invalid entries in whitelist, got status %d", w.Code)
	}

	if got := len(ParseNetworks(allowedIPs)); got != 1 {
		t.Errorf("ParseNetworks kept %d entries, want 1", got)
	}
}
