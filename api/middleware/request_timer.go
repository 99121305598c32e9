// api/middleware/request_timer.go
package middleware

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// timingWriter injects the X-Process-Time header at the moment the status
// line goes out; headers cannot be added after the response has started.
type timingWriter struct {
	gin.ResponseWriter
	start time.Time
}

func (w *timingWriter) WriteHeader(statusCode int) {
	w.Header().Set("X-Process-Time", fmt.Sprintf("%.4f", time.Since(w.start).Seconds()))
	w.ResponseWriter.WriteHeader(statusCode)
}

// RequestTimer tags every request with a correlation ID, measures elapsed
// handler time, and reports both as response headers plus one log line.
func RequestTimer() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := uuid.New().String()
		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)

		start := time.Now()
		c.Writer = &timingWriter{ResponseWriter: c.Writer, start: start}

		c.Next()

		elapsed := time.Since(start)
		customLog.Printf("%s %s -> %d (%.4fs) [%s]",
			c.Request.Method, c.Request.URL.Path, c.Writer.Status(), elapsed.Seconds(), requestID)
	}
}
