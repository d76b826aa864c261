package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func performRequest(header string) (*httptest.ResponseRecorder, int64) {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	var captured int64
	r.GET("/probe", IdentityRequired(), func(c *gin.Context) {
		captured = GetUserID(c)
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	if header != "" {
		req.Header.Set(SharerHeader, header)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w, captured
}

func TestIdentityRequired(t *testing.T) {
	w, id := performRequest("42")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(42), id)
}

func TestIdentityMissingHeader(t *testing.T) {
	w, _ := performRequest("")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestIdentityInvalidHeader(t *testing.T) {
	for _, h := range []string{"abc", "0", "-7", "1.5"} {
		w, _ := performRequest(h)
		assert.Equal(t, http.StatusBadRequest, w.Code, h)
	}
}
