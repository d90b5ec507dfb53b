package middleware

import (
	"net"
	"strings"

	"github.com/gin-gonic/gin"
)

// RealIP stores the client IP under "real_ip" for rate limiting and logs.
// Proxy headers are only honoured when trustProxy is set; otherwise anyone
// could pick their own rate-limit bucket and the socket address is used. Priority
// when trusted: CF-Connecting-IP, then the left-most X-Forwarded-For entry, then c.ClientIP().
func RealIP(trustProxy bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !trustProxy {
			c.Set("real_ip", c.RemoteIP())
			c.Next()
			return
		}
		if ip := headerIP(c); ip != "" {
			c.Set("real_ip", ip)
		} else {
			c.Set("real_ip", c.ClientIP())
		}
		c.Next()
	}
}

func headerIP(c *gin.Context) string {
	if cf := strings.TrimSpace(c.GetHeader("CF-Connecting-IP")); cf != "" {
		if ip := net.ParseIP(cf); ip != nil {
			return ip.String()
		}
	}
	if xff := c.GetHeader("X-Forwarded-For"); xff != "" {
		first := strings.TrimSpace(strings.Split(xff, ",")[0])
		if ip := net.ParseIP(first); ip != nil {
			return ip.String()
		}
	}
	return ""
}
