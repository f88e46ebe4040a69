package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvelope(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cases := []struct {
		name   string
		write  func(c *gin.Context)
		status int
		code   int
	}{
		{"success", func(c *gin.Context) { Success(c, gin.H{"x": 1}) }, http.StatusOK, 0},
		{"bad request", func(c *gin.Context) { BadRequest(c, "bad") }, http.StatusBadRequest, http.StatusBadRequest},
		{"not found", func(c *gin.Context) { NotFound(c, "nope") }, http.StatusNotFound, http.StatusNotFound},
		{"internal", func(c *gin.Context) { InternalError(c, errors.New("db down")) }, http.StatusInternalServerError, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
			tc.write(c)

			assert.Equal(t, tc.status, w.Code)
			var resp Response
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tc.code, resp.Code)
			assert.NotContains(t, w.Body.String(), "db down")
		})
	}
}
