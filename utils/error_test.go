package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestErrorHandlerRecoversPanic(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(ErrorHandler())
	r.GET("/boom", func(c *gin.Context) { panic("kaboom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"success":false,"message":"Internal Server Error","code":"internal_error"}`, w.Body.String())
}

func TestJSONErrorWritesEnvelope(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/x", nil)

	JSONError(c, http.StatusConflict, "already_submitted", "profile already submitted", map[string]string{"status": "pending_review"})

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.True(t, c.IsAborted())
	assert.JSONEq(t, `{"success":false,"message":"profile already submitted","code":"already_submitted","details":{"status":"pending_review"}}`, w.Body.String())
}

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken("acc-1", "a@example.com", "lawyer", AccessTokenTTL)
	if !assert.NoError(t, err) {
		return
	}
	claims, err := ExtractClaims(token)
	assert.NoError(t, err)
	assert.Equal(t, &TokenClaims{Subject: "acc-1", Email: "a@example.com", Role: "lawyer"}, claims)

	expired, err := GenerateToken("acc-1", "a@example.com", "lawyer", -AccessTokenTTL)
	assert.NoError(t, err)
	_, err = ExtractClaims(expired)
	assert.Error(t, err)

	assert.NotEqual(t, HashToken(token), HashToken(expired))
	assert.Len(t, HashToken(token), 64)
}
