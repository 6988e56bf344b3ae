package controller

import (
	"github.com/gin-gonic/gin"

	"github.com/pinkyblu/bp-tracker-test/src/entity"
	"github.com/pinkyblu/bp-tracker-test/src/errcode"
	"github.com/pinkyblu/bp-tracker-test/src/service"
	"github.com/pinkyblu/bp-tracker-test/src/svc"
	"github.com/pinkyblu/bp-tracker-test/src/xhttp"
)

// MintTodayHandler mints N editions of today's canvas for the connected
// wallet.
func MintTodayHandler(serverCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req entity.MintParams
		if err := c.BindJSON(&req); err != nil {
			xhttp.Error(c, errcode.ErrInvalidParams)
			return
		}
		res, err := service.MintToday(c.Request.Context(), serverCtx, req)
		if err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, entity.MintResp{Result: res})
	}
}
