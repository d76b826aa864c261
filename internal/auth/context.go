package auth

import "github.com/gin-gonic/gin"

const userIDKey = "userID"

// GetUserID returns the calling user's ID or 0 when no identity was attached.
func GetUserID(c *gin.Context) int64 {
	if v, ok := c.Get(userIDKey); ok {
		if id, ok := v.(int64); ok {
			return id
		}
	}
	return 0
}
