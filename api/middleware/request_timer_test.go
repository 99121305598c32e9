// api/middleware/request_timer_test.go
package middleware

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestRequestTimerHeaders(t *testing.T) {
	gin.SetMode(gin.TestMode)
	assert := assert.New(t)

	router := gin.New()
	router.Use(RequestTimer())
	router.GET("/slow", func(c *gin.Context) {
		time.Sleep(10 * time.Millisecond)
		c.String(http.StatusOK, "done")
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/slow", nil))

	assert.Equal(http.StatusOK, w.Code)

	requestID := w.Header().Get("X-Request-ID")
	assert.NotEmpty(requestID)
	_, err := uuid.Parse(requestID)
	assert.NoError(err, "X-Request-ID should be a UUID")

	processTime := w.Header().Get("X-Process-Time")
	assert.NotEmpty(processTime)
	seconds, err := strconv.ParseFloat(processTime, 64)
	assert.NoError(err)
	assert.GreaterOrEqual(seconds, 0.01, "timing should include handler sleep")
}

func TestRequestTimerUniquePerRequest(t *testing.T) {
	gin.SetMode(gin.TestMode)
	assert := assert.New(t)

	router := gin.New()
	router.Use(RequestTimer())
	router.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	w1 := httptest.NewRecorder()
	router.ServeHTTP(w1, httptest.NewRequest(http.MethodGet, "/ping", nil))
	w2 := httptest.NewRecorder()
	router.ServeHTTP(w2, httptest.NewRequest(http.MethodGet, "/ping", nil))

	assert.NotEqual(w1.Header().Get("X-Request-ID"), w2.Header().Get("X-Request-ID"))
}
