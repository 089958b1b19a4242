package utils

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"artisan/internal/gateway"
)

func run(t *testing.T, fn func(c *gin.Context)) (int, map[string]any) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	fn(c)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w.Code, body
}

func TestSuccessIsFlat(t *testing.T) {
	code, body := run(t, func(c *gin.Context) {
		Success(c, gin.H{"translation": "hello"})
	})
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, map[string]any{"success": true, "translation": "hello"}, body)
}

func TestFail(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{"validation", &gateway.ValidationError{Message: "No text provided"}, http.StatusBadRequest, "No text provided"},
		{"provider", &gateway.ProviderError{Provider: "p", Operation: "op", Err: errors.New("quota exceeded")}, http.StatusInternalServerError, "quota exceeded"},
		{"other", errors.New("boom"), http.StatusInternalServerError, "boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, body := run(t, func(c *gin.Context) { Fail(c, tt.err) })
			assert.Equal(t, tt.wantCode, code)
			assert.Equal(t, tt.wantMsg, body["error"])
			assert.Equal(t, false, body["success"])
		})
	}
}

func TestRespond(t *testing.T) {
	code, body := run(t, func(c *gin.Context) {
		Respond(c, gin.H{"transcript": "foo bar"}, nil)
	})
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "foo bar", body["transcript"])

	code, _ = run(t, func(c *gin.Context) {
		Respond(c, nil, &gateway.ValidationError{Message: "No audio file provided"})
	})
	assert.Equal(t, http.StatusBadRequest, code)
}
