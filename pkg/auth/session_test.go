package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionValidity(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	s := Issue("admin", MethodPassword, time.Hour, now)

	assert.True(t, s.Valid(now))
	assert.True(t, s.Valid(now.Add(59*time.Minute)))
	assert.False(t, s.Valid(now.Add(time.Hour)), "expired at ExpiresAt")

	s.Invalidate()
	assert.False(t, s.Valid(now))
	assert.Empty(t, s.User)

	var missing *Session
	assert.False(t, missing.Valid(now))
}

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(sessions.Sessions("test_session", cookie.NewStore([]byte("secret"))))

	r.GET("/login", func(c *gin.Context) {
		s := Issue("admin", MethodPassword, time.Hour, time.Now())
		if err := Save(c, s); err != nil {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.Status(http.StatusNoContent)
	})
	r.GET("/whoami", func(c *gin.Context) {
		s := Load(c)
		c.JSON(http.StatusOK, gin.H{"valid": s.Valid(time.Now()), "user": s.User, "method": s.Method})
	})
	r.GET("/logout", func(c *gin.Context) {
		_ = Clear(c)
		c.Status(http.StatusNoContent)
	})
	return r
}

func TestSessionCookieRoundTrip(t *testing.T) {
	r := newRouter()

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/whoami", nil))
	assert.JSONEq(t, `{"valid":false,"user":"","method":""}`, rec.Body.String())

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/login", nil))
	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.JSONEq(t, `{"valid":true,"user":"admin","method":"password"}`, rec.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/logout", nil)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	cleared := rec.Result().Cookies()
	require.NotEmpty(t, cleared)

	req = httptest.NewRequest(http.MethodGet, "/whoami", nil)
	for _, ck := range cleared {
		req.AddCookie(ck)
	}
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.JSONEq(t, `{"valid":false,"user":"","method":""}`, rec.Body.String())
}
