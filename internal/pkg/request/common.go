package request

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"lendit/internal/pkg/apperror"
)

// ParsePaging reads the from/size query parameters of a list endpoint,
// applying the defaults the routing layer guarantees (from=0, size=20).
// Range validation is left to the component that pages.
func ParsePaging(c *gin.Context) (from, size int, err error) {
	from, err = strconv.Atoi(c.DefaultQuery("from", "0"))
	if err != nil {
		return 0, 0, apperror.BadRequest("from must be an integer")
	}
	size, err = strconv.Atoi(c.DefaultQuery("size", "20"))
	if err != nil {
		return 0, 0, apperror.BadRequest("size must be an integer")
	}
	return from, size, nil
}

// ParseID reads a numeric identifier from a path parameter.
func ParseID(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperror.BadRequest("invalid %s", name)
	}
	return id, nil
}
