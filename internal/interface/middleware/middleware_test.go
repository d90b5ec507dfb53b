package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-account-service/pkg/helpers"
)

func init() { gin.SetMode(gin.TestMode) }

func TestRequestIDMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString("request_id")) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	generated := w.Body.String()
	_, err := uuid.Parse(generated)
	require.NoError(t, err)
	assert.Equal(t, generated, w.Header().Get(RequestIDHeader))

	upstream := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, upstream)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, upstream, w.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "not-a-uuid")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.NotEqual(t, "not-a-uuid", w.Body.String())
}

func TestRealIP(t *testing.T) {
	handler := func(trust bool) *gin.Engine {
		r := gin.New()
		r.Use(RealIP(trust))
		r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString("real_ip")) })
		return r
	}
	req := func() *http.Request {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.RemoteAddr = "10.0.0.5:1234"
		r.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
		return r
	}

	w := httptest.NewRecorder()
	handler(true).ServeHTTP(w, req())
	assert.Equal(t, "203.0.113.9", w.Body.String())

	w = httptest.NewRecorder()
	handler(false).ServeHTTP(w, req())
	assert.Equal(t, "10.0.0.5", w.Body.String())

	r := req()
	r.Header.Set("CF-Connecting-IP", "198.51.100.7")
	w = httptest.NewRecorder()
	handler(true).ServeHTTP(w, r)
	assert.Equal(t, "198.51.100.7", w.Body.String())
}

func ownerRouter(jwt *helpers.JWTManager) *gin.Engine {
	r := gin.New()
	g := r.Group("/users", JWTAuth(jwt), RequireOwner("id"))
	g.PUT("/:id", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	return r
}

func TestJWTAuthAndRequireOwner(t *testing.T) {
	jwt := helpers.NewJWTManager("secret", time.Minute)
	r := ownerRouter(jwt)
	token, _, err := jwt.GenerateAccessToken(5, "alice")
	require.NoError(t, err)

	cases := []struct {
		name   string
		path   string
		setup  func(*http.Request)
		status int
	}{
		{"missing token", "/users/5", func(*http.Request) {}, http.StatusUnauthorized},
		{"bad token", "/users/5", func(r *http.Request) { r.Header.Set("Authorization", "Bearer nope") }, http.StatusUnauthorized},
		{"owner via header", "/users/5", func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+token) }, http.StatusNoContent},
		{"owner via cookie", "/users/5", func(r *http.Request) {
			r.AddCookie(&http.Cookie{Name: helpers.AccessTokenCookie, Value: token})
		}, http.StatusNoContent},
		{"someone else", "/users/6", func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+token) }, http.StatusForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPut, tc.path, nil)
			tc.setup(req)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tc.status, w.Code)
		})
	}
}

func TestJWTAuth_HidesParseError(t *testing.T) {
	jwt := helpers.NewJWTManager("secret", time.Minute)
	other, _, err := helpers.NewJWTManager("other", time.Minute).GenerateAccessToken(5, "alice")
	require.NoError(t, err)

	var logged []string
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Next()
		logged = c.Errors.ByType(gin.ErrorTypePrivate).Errors()
	})
	r.PUT("/users/:id", JWTAuth(jwt), func(c *gin.Context) { c.Status(http.StatusNoContent) })

	req := httptest.NewRequest(http.MethodPut, "/users/5", nil)
	req.Header.Set("Authorization", "Bearer "+other)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "invalid access token", body["message"])
	assert.NotContains(t, body, "error")
	assert.NotContains(t, w.Body.String(), "signature")
	require.Len(t, logged, 1)
	assert.Contains(t, logged[0], "signature")
}

func TestRateLimit_NilClientPassesThrough(t *testing.T) {
	r := gin.New()
	r.POST("/login", RateLimit(nil, 1, time.Minute, KeyByIP(), nil), func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Header().Get("X-RateLimit-Limit"))
	}
}

func TestRateLimit_FailsOpen(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer rdb.Close()

	r := gin.New()
	r.POST("/login", RateLimit(rdb, 1, time.Minute, KeyByIP(), nil), func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestKeyFuncs(t *testing.T) {
	r := gin.New()
	r.Use(func(c *gin.Context) { c.Set("real_ip", "203.0.113.9") })
	var byIP, byPath string
	r.POST("/users/login", func(c *gin.Context) {
		byIP = KeyByIP()(c)
		byPath = KeyByIPAndPath()(c)
	})
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/users/login", nil))

	assert.Equal(t, "rl:ip:203.0.113.9", byIP)
	assert.Equal(t, "rl:path:/users/login:ip:203.0.113.9", byPath)
}

func TestAllowPrivateIP(t *testing.T) {
	allow := AllowPrivateIP()
	for ip, want := range map[string]bool{
		"127.0.0.1":   true,
		"10.1.2.3":    true,
		"192.168.0.9": true,
		"203.0.113.9": false,
		"garbage":     false,
	} {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
		c.Set("real_ip", ip)
		assert.Equal(t, want, allow(c), ip)
	}
}

func TestToInt(t *testing.T) {
	assert.Equal(t, 3, toInt(int64(3)))
	assert.Equal(t, 4, toInt(4))
	assert.Equal(t, 5, toInt(strconv.Itoa(5)))
	assert.Equal(t, 0, toInt(nil))
}
