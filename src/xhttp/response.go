package xhttp

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pinkyblu/bp-tracker-test/src/errcode"
)

// Response is the uniform envelope written by every handler.
// Code mirrors errcode values; 200 means success.
type Response struct {
	Code int         `json:"code"`
	Msg  string      `json:"msg"`
	Data interface{} `json:"data,omitempty"`
}

func OkJson(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code: errcode.CodeOK,
		Msg:  "successful",
		Data: data,
	})
}

func Error(c *gin.Context, err error) {
	if e, ok := err.(*errcode.Err); ok {
		c.JSON(http.StatusOK, Response{Code: e.Code(), Msg: e.Error()})
		return
	}
	c.JSON(http.StatusOK, Response{
		Code: errcode.ErrUnexpected.Code(),
		Msg:  errcode.ErrUnexpected.Error(),
	})
}
