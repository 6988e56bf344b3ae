package controller

import (
	"github.com/gin-gonic/gin"

	"github.com/pinkyblu/bp-tracker-test/src/entity"
	"github.com/pinkyblu/bp-tracker-test/src/service"
	"github.com/pinkyblu/bp-tracker-test/src/svc"
	"github.com/pinkyblu/bp-tracker-test/src/xhttp"
)

// ConnectWalletHandler runs the connect + chain-switch flow. The session is
// returned even when connecting failed; the failure is in its error field.
func ConnectWalletHandler(serverCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := service.ConnectWallet(c.Request.Context(), serverCtx)
		xhttp.OkJson(c, entity.WalletSessionResp{Result: session})
	}
}

// DisconnectWalletHandler clears the local session only.
func DisconnectWalletHandler(serverCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := service.DisconnectWallet(serverCtx)
		xhttp.OkJson(c, entity.WalletSessionResp{Result: session})
	}
}

// WalletSessionHandler reports the current session state.
func WalletSessionHandler(serverCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		xhttp.OkJson(c, entity.WalletSessionResp{Result: service.GetWalletSession(serverCtx)})
	}
}
