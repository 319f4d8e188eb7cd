package middlewares

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/raynor-z/go-edumedia/internal/config"
	"github.com/raynor-z/go-edumedia/internal/pkg/utils"
	"github.com/raynor-z/go-edumedia/internal/pkg/xerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func newAuthTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{
		JWT: config.JWTConfig{SecretKey: testSecret},
	}
	router := gin.New()
	router.GET("/protected", AuthMiddleware(cfg), func(c *gin.Context) {
		userID, _ := c.Get("userID")
		c.JSON(http.StatusOK, gin.H{"user_id": userID})
	})
	return router
}

func performAuth(t *testing.T, router *gin.Engine, header string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthMiddlewareValidToken(t *testing.T) {
	router := newAuthTestRouter()
	token, err := utils.GenerateToken(42, "alice", testSecret, "go-edumedia", time.Hour)
	require.NoError(t, err)

	w := performAuth(t, router, "Bearer "+token)
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, float64(42), body["user_id"])
}

func TestAuthMiddlewareMissingHeader(t *testing.T) {
	router := newAuthTestRouter()
	w := performAuth(t, router, "")
	require.Equal(t, http.StatusUnauthorized, w.Code)

	var body xerr.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, xerr.CodeUnauthorized, body.Code)
}

func TestAuthMiddlewareMalformedHeader(t *testing.T) {
	router := newAuthTestRouter()
	w := performAuth(t, router, "Basic abc123")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareWrongSecret(t *testing.T) {
	router := newAuthTestRouter()
	token, err := utils.GenerateToken(42, "alice", "other-secret", "go-edumedia", time.Hour)
	require.NoError(t, err)

	w := performAuth(t, router, "Bearer "+token)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	var body xerr.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, xerr.CodeTokenInvalid, body.Code)
}

func TestAuthMiddlewareExpiredToken(t *testing.T) {
	router := newAuthTestRouter()
	token, err := utils.GenerateToken(42, "alice", testSecret, "go-edumedia", -time.Minute)
	require.NoError(t, err)

	w := performAuth(t, router, "Bearer "+token)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	var body xerr.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, xerr.CodeTokenInvalid, body.Code)
}
