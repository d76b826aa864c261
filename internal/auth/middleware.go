package auth

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// SharerHeader carries the caller identity. The gateway in front of this
// service authenticates the user and forwards only the numeric ID.
const SharerHeader = "X-Sharer-User-Id"

// IdentityRequired is a Gin middleware that reads the caller's user ID from
// the X-Sharer-User-Id header and stores it into the request context.
func IdentityRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader(SharerHeader)
		if header == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"error": "missing " + SharerHeader + " header",
			})
			return
		}

		id, err := strconv.ParseInt(header, 10, 64)
		if err != nil || id <= 0 {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"error": "invalid " + SharerHeader + " header",
			})
			return
		}

		// Store caller identity into Gin context for later handlers.
		c.Set(userIDKey, id)

		c.Next()
	}
}
