package middleware

import (
	"crypto/subtle"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
)

// KioskAuth guards the kiosk endpoints with the static shared secret that
// provisioned kiosk devices carry. Comparison is constant-time.
func KioskAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		secret := os.Getenv("KIOSK_TOKEN")
		if secret == "" {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{
				"success": false,
				"error":   "kiosk access is not configured",
			})
			return
		}

		supplied := c.GetHeader("X-Kiosk-Token")
		if subtle.ConstantTimeCompare([]byte(supplied), []byte(secret)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "invalid kiosk token",
			})
			return
		}

		c.Next()
	}
}
