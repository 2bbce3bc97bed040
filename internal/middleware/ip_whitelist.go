package middleware

import (
	"net/http"
	"net/netip"
	"strings"

	"github.com/gin-gonic/gin"

	"macrotracker/internal/logging"
)

// IPWhitelist restricts access to the given addresses and CIDR prefixes.
// An empty list blocks everyone. Entries that parse as neither are logged
// and skipped.
func IPWhitelist(allowed []string) gin.HandlerFunc {
	prefixes := ParseNetworks(allowed)

	return func(c *gin.Context) {
		addr, err := netip.ParseAddr(c.ClientIP())
		if err != nil || !containsAddr(prefixes, addr.Unmap()) {
			c.AbortWithStatus(http.StatusForbidden)
			return
		}
		c.Next()
	}
}

// ParseNetworks turns addresses and CIDRs into prefixes. A bare address
// becomes a single-host prefix.
func ParseNetworks(entries []string) []netip.Prefix {
	var prefixes []netip.Prefix
	for _, entry := range entries {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		if p, err := netip.ParsePrefix(entry); err == nil {
			prefixes = append(prefixes, p.Masked())
			continue
		}
		if a, err := netip.ParseAddr(entry); err == nil {
			a = a.Unmap()
			prefixes = append(prefixes, netip.PrefixFrom(a, a.BitLen()))
			continue
		}
		logging.HTTP().WithField("entry", entry).Warn("Ignoring invalid network in allow list")
	}
	return prefixes
}

func containsAddr(prefixes []netip.Prefix, addr netip.Addr) bool {
	for _, p := range prefixes {
		if p.Contains(addr) {
			return true
		}
	}
	return false
}
