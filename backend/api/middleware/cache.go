package middleware

import "github.com/gin-gonic/gin"

// NoCache keeps browsers from showing stale file lists and flash messages.
func NoCache() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Cache-Control", "no-cache, no-store, must-revalidate")
		c.Header("Expires", "0")
		c.Header("Pragma", "no-cache")
		c.Next()
	}
}
