package utils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestSendSuccess_AddsSuccessFlag(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	SendSuccess(c, http.StatusCreated, gin.H{"count": 2})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, map[string]interface{}{"success": true, "count": 2.0}, decode(t, w))
}

func TestSendError_DetailOnlyWhenPresent(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	SendNotFound(c, "Product not found")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, map[string]interface{}{"success": false, "message": "Product not found"}, decode(t, w))
	assert.True(t, c.IsAborted())

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	SendError(c, http.StatusInternalServerError, "Internal server error", "boom")

	assert.Equal(t, "boom", decode(t, w)["errMessage"])
}
