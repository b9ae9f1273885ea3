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

func TestRespondWithError_EnvelopeAndAbort(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	reached := false
	r.GET("/stock", func(c *gin.Context) {
		RespondWithError(c, NewAPIError(http.StatusBadRequest, ErrCodeInsufficientStock, "Insufficient stock", "").
			WithData(gin.H{"available": 3, "requested": 4}))
	}, func(c *gin.Context) { reached = true })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/stock", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, reached)
	assert.JSONEq(t, `{"error":{"code":"INSUFFICIENT_STOCK","message":"Insufficient stock","data":{"available":3,"requested":4}}}`, w.Body.String())
}

func TestRespondValidationFailed(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	RespondValidationFailed(c, "No file uploaded")

	var body struct {
		Error APIError `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, ErrCodeValidationFailed, body.Error.Code)
	assert.Equal(t, "No file uploaded", body.Error.Details)
	assert.True(t, c.IsAborted())
}

func TestIsValidEmail(t *testing.T) {
	for email, want := range map[string]bool{
		"ada@example.com":   true,
		" Ada@Example.COM ": true,
		"ada.l+inv@shop.kz": true,
		"ada@":              false,
		"ada@example":       false,
		"":                  false,
		"two@@example.com":  false,
	} {
		assert.Equal(t, want, IsValidEmail(email), email)
	}
	assert.True(t, IsValidPasswordLength("secret", 6))
	assert.False(t, IsValidPasswordLength("short", 6))
}
