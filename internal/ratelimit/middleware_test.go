package ratelimit

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newGatedRouter(lim Limiter, keyFn KeyFunc) (*gin.Engine, *int) {
	gin.SetMode(gin.TestMode)
	calls := 0
	r := gin.New()
	r.Use(Middleware(lim, keyFn, zap.NewNop()))
	r.GET("/notes", func(c *gin.Context) {
		calls++
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r, &calls
}

func doGet(r *gin.Engine, remoteAddr string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/notes", nil)
	req.RemoteAddr = remoteAddr
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestMiddleware_AdmitsUpToBudgetThenDenies(t *testing.T) {
	lim := NewMemoryLimiter(5, 10*time.Second)
	r, calls := newGatedRouter(lim, nil)

	for i := 0; i < 5; i++ {
		w := doGet(r, "10.0.0.1:1234")
		require.Equal(t, http.StatusOK, w.Code, "request %d", i+1)
	}

	w := doGet(r, "10.0.0.1:1234")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.JSONEq(t, `{"message":"Too Many Requests"}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
	assert.Equal(t, 5, *calls, "the denied request must not reach the handler")
}

func TestMiddleware_GlobalKeySharesOneBudget(t *testing.T) {
	lim := NewMemoryLimiter(1, 10*time.Second)
	r, _ := newGatedRouter(lim, FixedKey(GlobalKey))

	w := doGet(r, "10.0.0.1:1234")
	require.Equal(t, http.StatusOK, w.Code)

	// Different caller, same fixed key: budget already spent.
	w = doGet(r, "10.0.0.2:1234")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}

func TestMiddleware_ByClientIPIsolatesCallers(t *testing.T) {
	lim := NewMemoryLimiter(1, 10*time.Second)
	r, _ := newGatedRouter(lim, ByClientIP())

	w := doGet(r, "10.0.0.1:1234")
	require.Equal(t, http.StatusOK, w.Code)

	w = doGet(r, "10.0.0.2:1234")
	assert.Equal(t, http.StatusOK, w.Code, "another IP has its own budget")

	w = doGet(r, "10.0.0.1:5678")
	assert.Equal(t, http.StatusTooManyRequests, w.Code, "same IP, budget spent")
}

type failingLimiter struct{}

func (failingLimiter) Allow(ctx context.Context, key string) (Decision, error) {
	return Decision{}, errors.New("backend unreachable")
}

func TestMiddleware_EvaluationFailureIsServerError(t *testing.T) {
	r, calls := newGatedRouter(failingLimiter{}, nil)

	w := doGet(r, "10.0.0.1:1234")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"message":"Internal Server Error"}`, w.Body.String())
	assert.Equal(t, 0, *calls, "a failed check never admits")
}
