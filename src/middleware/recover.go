package middleware

import (
	"bytes"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pinkyblu/bp-tracker-test/src/errcode"
	xzap "github.com/pinkyblu/bp-tracker-test/src/logger"
	"github.com/pinkyblu/bp-tracker-test/src/xhttp"
)

// RecoverMiddleware turns panics into the uniform error envelope and logs
// the request alongside the stack.
func RecoverMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if cause := recover(); cause != nil {
				xzap.WithContext(c.Request.Context()).Error("panic recovered",
					zap.Any("cause", cause),
					zap.String("request", dumpRequest(c.Request)),
					zap.Stack("stack"))
				xhttp.Error(c, errcode.ErrUnexpected)
				c.Abort()
			}
		}()

		c.Next()
	}
}

// dumpRequest renders the request line plus body, restoring the body for
// later readers.
func dumpRequest(req *http.Request) string {
	var b bytes.Buffer
	reqURI := req.RequestURI
	if reqURI == "" {
		reqURI = req.URL.RequestURI()
	}
	b.WriteString(req.Method + " " + reqURI)
	if req.Body != nil {
		var buf bytes.Buffer
		body, _ := io.ReadAll(io.TeeReader(req.Body, &buf))
		req.Body = io.NopCloser(&buf)
		if len(body) > 0 {
			b.WriteString(" ")
			b.Write(body)
		}
	}
	return b.String()
}
