package middleware

import (
	"bytes"
	"crypto/sha512"
	"encoding/json"
	"fmt"
	"io"

	"github.com/gin-gonic/gin"
	"github.com/zeromicro/go-zero/core/stores/kv"

	"github.com/pinkyblu/bp-tracker-test/src/errcode"
	"github.com/pinkyblu/bp-tracker-test/src/xhttp"
)

const CacheApiPrefix = "apicache:"

// CacheApi shelters a read endpoint behind redis for expireSeconds. Only
// successful envelopes (code 200) are cached. With a nil store the
// middleware is a pass-through.
func CacheApi(store kv.Store, expireSeconds int) gin.HandlerFunc {
	return func(c *gin.Context) {
		if store == nil {
			c.Next()
			return
		}

		cacheKey := CreateKey(c)
		if raw, err := store.Get(cacheKey); err == nil && raw != "" {
			var envelope xhttp.Response
			if err := json.Unmarshal([]byte(raw), &envelope); err == nil &&
				envelope.Code == errcode.CodeOK {
				c.Data(200, "application/json; charset=utf-8", []byte(raw))
				c.Abort()
				return
			}
		}

		bodyLogWrite := &BodyLogWrite{ResponseWriter: c.Writer, body: bytes.NewBufferString("")}
		c.Writer = bodyLogWrite
		c.Next()

		responseBody := bodyLogWrite.body.Bytes()
		var envelope xhttp.Response
		if err := json.Unmarshal(responseBody, &envelope); err == nil &&
			envelope.Code == errcode.CodeOK {
			_, _ = store.SetnxEx(cacheKey, string(responseBody), expireSeconds)
		}
	}
}

// CreateKey derives the cache key from path, query and body, hashing when it
// would get unwieldy.
func CreateKey(c *gin.Context) string {
	var buf bytes.Buffer
	reqBody, _ := io.ReadAll(io.TeeReader(c.Request.Body, &buf))
	c.Request.Body = io.NopCloser(&buf)

	cacheKey := c.Request.URL.Path + "," + c.Request.URL.RawQuery + string(reqBody)
	if len(cacheKey) > 128 {
		cacheKey = fmt.Sprintf("%x", sha512.Sum512([]byte(cacheKey)))
	}
	return CacheApiPrefix + cacheKey
}
