package controller

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pinkyblu/bp-tracker-test/src/entity"
	"github.com/pinkyblu/bp-tracker-test/src/errcode"
	"github.com/pinkyblu/bp-tracker-test/src/service"
	"github.com/pinkyblu/bp-tracker-test/src/svc"
	"github.com/pinkyblu/bp-tracker-test/src/xhttp"
)

// FloorListingsHandler returns the cheapest active listings collection-wide.
func FloorListingsHandler(serverCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
		res, err := service.GetFloorListings(c.Request.Context(), serverCtx, limit)
		if err != nil {
			xhttp.Error(c, errcode.ErrUnexpected)
			return
		}
		xhttp.OkJson(c, entity.FloorListingsResp{Result: res, Count: len(res)})
	}
}

// TodayCanvasHandler describes the canvas currently open for minting.
func TodayCanvasHandler(serverCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		xhttp.OkJson(c, service.GetTodayCanvasWithFloor(serverCtx, time.Now()))
	}
}
