package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuccessEnvelope(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	OK(c, "done", gin.H{"value": 42})

	assert.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, float64(200), body["statusCode"])
	assert.Equal(t, "done", body["message"])
	assert.Equal(t, true, body["success"])
	assert.NotNil(t, body["data"])
}

func TestFailureEnvelope(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	NotFound(c, "missing")

	assert.Equal(t, http.StatusNotFound, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, float64(404), body["statusCode"])
	assert.Equal(t, "missing", body["message"])
	assert.Equal(t, false, body["success"])
	assert.Nil(t, body["data"])

	// errors 字段序列化为空数组而不是 null
	errs, ok := body["errors"].([]interface{})
	require.True(t, ok)
	assert.Empty(t, errs)

	// 测试模式下不泄露堆栈
	_, hasStack := body["stack"]
	assert.False(t, hasStack)
}

func TestFailureEnvelopeWithErrors(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	BadRequest(c, "invalid", "title is required", "file too large")

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	errs, ok := body["errors"].([]interface{})
	require.True(t, ok)
	assert.Len(t, errs, 2)
}
