package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRateLimiterTest(t *testing.T, limit int, period time.Duration) (echo.HandlerFunc, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	mw := RateLimiterMiddleware(RateLimiterConfig{
		RedisClient: client,
		Resource:    "otp",
		Limit:       limit,
		Period:      period,
	})
	handler := mw(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	return handler, mr
}

func doRequest(t *testing.T, handler echo.HandlerFunc) *httptest.ResponseRecorder {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.Header.Set("X-Real-Ip", "10.0.0.1")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := handler(c)
	require.NoError(t, err)
	return rec
}

func TestRateLimiter_AllowsUpToLimit(t *testing.T) {
	handler, _ := setupRateLimiterTest(t, 3, time.Minute)

	for i := 0; i < 3; i++ {
		rec := doRequest(t, handler)
		assert.Equal(t, http.StatusOK, rec.Code)
	}
}

func TestRateLimiter_BlocksOverLimit(t *testing.T) {
	handler, _ := setupRateLimiterTest(t, 2, time.Minute)

	doRequest(t, handler)
	doRequest(t, handler)
	rec := doRequest(t, handler)

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "2", rec.Header().Get("X-RateLimit-Limit"))
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
}

func TestRateLimiter_ResetsAfterPeriod(t *testing.T) {
	handler, mr := setupRateLimiterTest(t, 1, time.Minute)

	rec := doRequest(t, handler)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, handler)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)

	mr.FastForward(time.Minute + time.Second)

	rec = doRequest(t, handler)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRateLimiter_FailsOpenWhenRedisDown(t *testing.T) {
	handler, mr := setupRateLimiterTest(t, 1, time.Minute)
	mr.Close()

	rec := doRequest(t, handler)
	assert.Equal(t, http.StatusOK, rec.Code)
}
