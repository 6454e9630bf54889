package jwtplat

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func protectedRouter(t *testing.T, issuer *Issuer) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/protected", AuthRequired(issuer), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"userID": c.GetString(ContextUserID),
			"role":   c.GetString(ContextRole),
		})
	})
	return r
}

func TestAuthRequired(t *testing.T) {
	issuer := newTestIssuer(t, testConfig())
	r := protectedRouter(t, issuer)

	t.Run("valid token passes with claims in context", func(t *testing.T) {
		token, err := issuer.IssueAccessToken("u1", "admin", nil)
		require.NoError(t, err)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"userID":"u1"`)
		assert.Contains(t, w.Body.String(), `"role":"admin"`)
	})

	t.Run("missing header", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("malformed header", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Token abc")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("expired token", func(t *testing.T) {
		expiredCfg := testConfig()
		expiredCfg.AccessTTL = -time.Minute
		expired := &Issuer{cfg: expiredCfg}

		token, err := expired.IssueAccessToken("u1", "student", nil)
		require.NoError(t, err)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("refresh token rejected on access routes", func(t *testing.T) {
		token, err := issuer.IssueRefreshToken("u1", "student")
		require.NoError(t, err)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
