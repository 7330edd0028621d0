package middleware

import "github.com/gin-gonic/gin"

// NoCache tells clients and proxies never to cache a response. Pages show
// balances that change with every trade.
func NoCache() gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("Cache-Control", "no-cache, no-store, must-revalidate")
		h.Set("Expires", "0")
		h.Set("Pragma", "no-cache")
		c.Next()
	}
}
