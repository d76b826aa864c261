package request

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testContext(target string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", target, nil)
	return c
}

func TestParsePagingDefaults(t *testing.T) {
	from, size, err := ParsePaging(testContext("/bookings"))
	require.NoError(t, err)
	assert.Equal(t, 0, from)
	assert.Equal(t, 20, size)
}

func TestParsePagingExplicit(t *testing.T) {
	from, size, err := ParsePaging(testContext("/bookings?from=7&size=3"))
	require.NoError(t, err)
	assert.Equal(t, 7, from)
	assert.Equal(t, 3, size)
}

func TestParsePagingRejectsGarbage(t *testing.T) {
	_, _, err := ParsePaging(testContext("/bookings?from=x"))
	assert.Error(t, err)

	_, _, err = ParsePaging(testContext("/bookings?size=x"))
	assert.Error(t, err)
}

func TestParseID(t *testing.T) {
	c := testContext("/items/5")
	c.Params = gin.Params{{Key: "id", Value: "5"}}
	id, err := ParseID(c, "id")
	require.NoError(t, err)
	assert.Equal(t, int64(5), id)

	for _, v := range []string{"", "abc", "0", "-3"} {
		c.Params = gin.Params{{Key: "id", Value: v}}
		_, err := ParseID(c, "id")
		assert.Error(t, err, v)
	}
}
