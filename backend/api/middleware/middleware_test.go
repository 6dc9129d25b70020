package middleware

import (
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"pdf-voice/backend/common"
	"pdf-voice/backend/library/metrics"
	"pdf-voice/backend/service"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const testSecret = "test-jwt-secret-for-middleware-tests"

func setupTestRouter() *gin.Engine {
	router := gin.New()
	router.Use(LangMiddleware())
	return router
}

func TestJWTAuth_NoAuthorizationHeader(t *testing.T) {
	router := setupTestRouter()
	router.GET("/protected", JWTAuth(service.NewTokenService(testSecret, time.Hour, nil)), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true})
	})

	req, _ := http.NewRequest("GET", "/protected", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
	assert.Contains(t, resp.Body.String(), `"success":false`)
}

func TestJWTAuth_InvalidFormat(t *testing.T) {
	router := setupTestRouter()
	router.GET("/protected", JWTAuth(service.NewTokenService(testSecret, time.Hour, nil)), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true})
	})

	req, _ := http.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "InvalidFormat token123")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
	assert.Contains(t, resp.Body.String(), "Bearer")
}

func TestJWTAuth_InvalidToken(t *testing.T) {
	router := setupTestRouter()
	router.GET("/protected", JWTAuth(service.NewTokenService(testSecret, time.Hour, nil)), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true})
	})

	req, _ := http.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer invalid-jwt-token")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestJWTAuth_ValidToken(t *testing.T) {
	tokens := service.NewTokenService(testSecret, time.Hour, nil)
	router := setupTestRouter()
	router.GET("/protected", JWTAuth(tokens), func(c *gin.Context) {
		id, _ := CurrentUserID(c)
		c.JSON(http.StatusOK, gin.H{
			"success":  true,
			"user_id":  id,
			"username": c.GetString(KeyUsername),
		})
	})

	token, err := tokens.Issue(42, "testuser")
	require.NoError(t, err)

	req, _ := http.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "testuser")
	assert.Contains(t, resp.Body.String(), `"user_id":42`)
}

func TestUserAuth(t *testing.T) {
	router := setupTestRouter()
	router.Use(sessions.Sessions("session", cookie.NewStore([]byte("secret"))))
	router.GET("/login-as", func(c *gin.Context) {
		s := sessions.Default(c)
		s.Set(common.SessionUserID, int64(7))
		s.Set(common.SessionUsername, "alice")
		require.NoError(t, s.Save())
		c.Status(http.StatusNoContent)
	})
	router.GET("/protected", UserAuth(), func(c *gin.Context) {
		id, _ := CurrentUserID(c)
		c.String(http.StatusOK, "%d:%s", id, c.GetString(KeyUsername))
	})

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest("GET", "/protected", nil))
	assert.Equal(t, http.StatusFound, resp.Code)
	assert.Equal(t, "/init", resp.Header().Get("Location"))

	login := httptest.NewRecorder()
	router.ServeHTTP(login, httptest.NewRequest("GET", "/login-as", nil))
	require.NotEmpty(t, login.Result().Cookies())

	req := httptest.NewRequest("GET", "/protected", nil)
	for _, ck := range login.Result().Cookies() {
		req.AddCookie(ck)
	}
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "7:alice", resp.Body.String())
}

func TestNoCache(t *testing.T) {
	router := setupTestRouter()
	router.Use(NoCache())
	router.GET("/", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest("GET", "/", nil))

	assert.Equal(t, "no-cache, no-store, must-revalidate", resp.Header().Get("Cache-Control"))
	assert.Equal(t, "0", resp.Header().Get("Expires"))
	assert.Equal(t, "no-cache", resp.Header().Get("Pragma"))
}

func TestLangMiddleware(t *testing.T) {
	tests := map[string]string{
		"":                        "en",
		"zh-CN,zh;q=0.9,en;q=0.8": "zh-CN",
		"en-GB;q=0.8":             "en-GB",
	}
	for header, want := range tests {
		router := setupTestRouter()
		router.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString("lang")) })

		req := httptest.NewRequest("GET", "/", nil)
		if header != "" {
			req.Header.Set("Accept-Language", header)
		}
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		assert.Equal(t, want, resp.Body.String(), header)
	}
}

func TestRateLimit(t *testing.T) {
	router := setupTestRouter()
	router.POST("/login", rateLimitFactory(2, time.Hour), func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest("POST", "/login", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		codes = append(codes, resp.Code)
	}
	assert.Equal(t, []int{200, 200, 429}, codes)

	other := httptest.NewRequest("POST", "/login", nil)
	other.RemoteAddr = "10.0.0.2:1234"
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, other)
	assert.Equal(t, http.StatusOK, resp.Code)
}

func TestGzipEncodeMiddleware(t *testing.T) {
	router := setupTestRouter()
	router.Use(GzipEncodeMiddleware("/audio"))
	router.GET("/page", func(c *gin.Context) { c.String(http.StatusOK, "hello page") })
	router.GET("/audio/x.mp3", func(c *gin.Context) { c.String(http.StatusOK, "raw") })

	req := httptest.NewRequest("GET", "/page", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	require.Equal(t, "gzip", resp.Header().Get("Content-Encoding"))
	zr, err := gzip.NewReader(resp.Body)
	require.NoError(t, err)
	body, err := io.ReadAll(zr)
	require.NoError(t, err)
	assert.Equal(t, "hello page", string(body))

	req = httptest.NewRequest("GET", "/audio/x.mp3", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	assert.Empty(t, resp.Header().Get("Content-Encoding"))
	assert.Equal(t, "raw", resp.Body.String())
}

func TestRequestLogger_RecordsMetrics(t *testing.T) {
	m := metrics.NewNop()
	router := setupTestRouter()
	router.Use(RequestLogger(m))
	router.GET("/files/:name", func(c *gin.Context) { c.Status(http.StatusTeapot) })

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest("GET", "/files/a.pdf", nil))

	assert.NotEmpty(t, resp.Header().Get("X-Request-ID"))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequests.WithLabelValues("GET", "/files/:name", "418")))
}
