package controller

import (
	"encoding/json"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"

	"github.com/pinkyblu/bp-tracker-test/src/entity"
	"github.com/pinkyblu/bp-tracker-test/src/errcode"
	"github.com/pinkyblu/bp-tracker-test/src/service"
	"github.com/pinkyblu/bp-tracker-test/src/svc"
	"github.com/pinkyblu/bp-tracker-test/src/xhttp"
)

// UserCanvasesHandler returns the wallet's canvases with live market data.
// With ?stream=true each enrichment batch is written as one NDJSON line so
// clients can render partial results.
func UserCanvasesHandler(serverCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		address := c.Params.ByName("address")
		if !common.IsHexAddress(address) {
			xhttp.Error(c, errcode.NewCustomErr("invalid user address"))
			return
		}

		if c.Query("stream") == "true" {
			streamUserCanvases(c, serverCtx, address)
			return
		}

		res, err := service.GetUserCanvases(c.Request.Context(), serverCtx, address, nil)
		if err != nil {
			xhttp.Error(c, errcode.ErrUnexpected)
			return
		}
		xhttp.OkJson(c, entity.UserCanvasesResp{Result: res, Count: len(res)})
	}
}

func streamUserCanvases(c *gin.Context, serverCtx *svc.ServerCtx, address string) {
	c.Header("Content-Type", "application/x-ndjson")
	c.Writer.WriteHeaderNow()
	enc := json.NewEncoder(c.Writer)
	_, err := service.GetUserCanvases(c.Request.Context(), serverCtx, address,
		func(snapshot []entity.CanvasItem) {
			_ = enc.Encode(snapshot)
			c.Writer.Flush()
		})
	if err != nil {
		// headers are out; report the failure as a terminal line
		_ = enc.Encode(gin.H{"error": errcode.ErrUnexpected.Error()})
	}
}
