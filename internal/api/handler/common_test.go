package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"vidtube/internal/api/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePagination(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name      string
		query     string
		wantPage  int
		wantLimit int
	}{
		{"defaults", "", 1, 10},
		{"explicit", "page=3&limit=25", 3, 25},
		{"zero page floors to one", "page=0&limit=5", 1, 5},
		{"negative values fall back", "page=-2&limit=-1", 1, 10},
		{"limit capped at 100", "page=1&limit=500", 1, 100},
		{"garbage falls back", "page=abc&limit=xyz", 1, 10},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest(http.MethodGet, "/?"+tc.query, nil)

			page, limit := parsePagination(c)
			assert.Equal(t, tc.wantPage, page)
			assert.Equal(t, tc.wantLimit, limit)
		})
	}
}

func TestParseUUIDParamRejectsMalformedID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/items/:id", func(c *gin.Context) {
		id, ok := parseUUIDParam(c, "id")
		if !ok {
			return
		}
		response.OK(c, "ok", gin.H{"id": id})
	})

	// 非法 UUID 得到 400 错误信封
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/items/not-a-uuid", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var errBody response.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &errBody))
	assert.Equal(t, http.StatusBadRequest, errBody.StatusCode)
	assert.False(t, errBody.Success)
	assert.NotNil(t, errBody.Errors)

	// 合法 UUID 正常通过
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/items/"+uuid.NewString(), nil))
	assert.Equal(t, http.StatusOK, w.Code)

	var okBody response.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &okBody))
	assert.True(t, okBody.Success)
	assert.Equal(t, "ok", okBody.Message)
}
