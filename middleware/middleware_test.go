package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newRouter(mw ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(mw...)
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	return r
}

func get(r *gin.Engine, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRateLimitMiddleware(t *testing.T) {
	r := newRouter(RateLimitMiddleware(2))
	a := map[string]string{"X-Forwarded-For": "10.0.0.1"}
	b := map[string]string{"X-Forwarded-For": "10.0.0.2, 172.16.0.1"}

	assert.Equal(t, http.StatusOK, get(r, a).Code)
	assert.Equal(t, http.StatusOK, get(r, a).Code)
	assert.Equal(t, http.StatusTooManyRequests, get(r, a).Code)
	assert.Equal(t, http.StatusOK, get(r, b).Code, "limits are per client")
}

func TestAdminTokenMiddleware(t *testing.T) {
	open := newRouter(AdminTokenMiddleware(""))
	assert.Equal(t, http.StatusOK, get(open, nil).Code)

	guarded := newRouter(AdminTokenMiddleware("s3cret"))
	testCases := []struct {
		name   string
		header string
		want   int
	}{
		{"missing", "", http.StatusUnauthorized},
		{"not bearer", "Basic s3cret", http.StatusUnauthorized},
		{"wrong token", "Bearer nope", http.StatusUnauthorized},
		{"valid", "Bearer s3cret", http.StatusOK},
	}
	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			h := map[string]string{}
			if tt.header != "" {
				h["Authorization"] = tt.header
			}
			assert.Equal(t, tt.want, get(guarded, h).Code)
		})
	}
}

func TestRequestLoggerSetsRequestID(t *testing.T) {
	r := newRouter(RequestLogger())

	w := get(r, nil)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	w = get(r, map[string]string{"X-Request-ID": "req-1"})
	assert.Equal(t, "req-1", w.Header().Get("X-Request-ID"))
}
