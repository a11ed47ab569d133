package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/Flexasaurusrex/art-claps-sub000/internal/config"
	"github.com/Flexasaurusrex/art-claps-sub000/pkg/response"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func mintToken(t *testing.T, secret string, fid int64) string {
	t.Helper()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(fid, 10),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func newEchoRouter(cfg *config.Config) *gin.Engine {
	gin.SetMode(gin.TestMode)
	m := NewAuthMiddleware(cfg)

	router := gin.New()
	router.POST("/echo", m.OptionalAuth(), func(c *gin.Context) {
		var req struct {
			UserFid int64 `json:"userFid"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"fid": response.ActingFid(c, req.UserFid)})
	})
	return router
}

func echoFid(t *testing.T, router *gin.Engine, token string) int64 {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/echo", bytes.NewBufferString(`{"userFid": 9}`))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var got map[string]int64
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	return got["fid"]
}

func TestActingFidPrefersTokenOverBody(t *testing.T) {
	cfg := &config.Config{JWTSecret: "test-secret"}
	router := newEchoRouter(cfg)

	require.EqualValues(t, 7, echoFid(t, router, mintToken(t, cfg.JWTSecret, 7)))
}

func TestActingFidFallsBackToBody(t *testing.T) {
	cfg := &config.Config{JWTSecret: "test-secret"}
	router := newEchoRouter(cfg)

	require.EqualValues(t, 9, echoFid(t, router, ""))

	// A token signed with the wrong key carries no identity but does not
	// block the request either.
	require.EqualValues(t, 9, echoFid(t, router, mintToken(t, "other-secret", 7)))
}
