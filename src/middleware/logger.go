package middleware

import (
	"bytes"
	"io"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	xzap "github.com/pinkyblu/bp-tracker-test/src/logger"
)

type BodyLogWrite struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *BodyLogWrite) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *BodyLogWrite) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// RLog logs one structured line per request: route, latency, bodies.
func RLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		var buf bytes.Buffer
		requestBody, _ := io.ReadAll(io.TeeReader(c.Request.Body, &buf))
		c.Request.Body = io.NopCloser(&buf)
		bodyLogWriter := &BodyLogWrite{ResponseWriter: c.Writer, body: bytes.NewBufferString("")}
		c.Writer = bodyLogWriter

		// downstream log lines correlate with the summary line via request id
		requestID := uuid.NewString()
		c.Request = c.Request.WithContext(xzap.WithFields(c.Request.Context(),
			zap.String("request_id", requestID)))

		start := time.Now()
		c.Next()

		logger := xzap.WithContext(c.Request.Context())
		if len(c.Errors) > 0 {
			for _, e := range c.Errors.Errors() {
				logger.Error(e)
			}
			return
		}

		latency := float64(time.Since(start).Microseconds()) / 1000.0
		fields := []zapcore.Field{
			zap.Int("status", c.Writer.Status()),
			zap.String("method", c.Request.Method),
			zap.String("function", c.HandlerName()),
			zap.String("path", path),
			zap.String("query", query),
			zap.String("ip", c.ClientIP()),
			zap.String("user-agent", c.Request.UserAgent()),
			zap.Float64("latency_ms", latency),
			zap.String("request", string(requestBody)),
			zap.String("response", bodyLogWriter.body.String()),
		}
		logger.Info("bp-tracker", fields...)
	}
}
