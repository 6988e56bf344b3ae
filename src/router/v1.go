package router

import (
	"github.com/gin-gonic/gin"

	"github.com/pinkyblu/bp-tracker-test/src/controller"
	"github.com/pinkyblu/bp-tracker-test/src/middleware"
	"github.com/pinkyblu/bp-tracker-test/src/svc"
)

func initV1Route(router *gin.Engine, serverCtx *svc.ServerCtx) {
	apiV1 := router.Group("/api/v1")

	wallet := apiV1.Group("/wallet")
	wallet.POST("/connect", controller.ConnectWalletHandler(serverCtx))       // connect + chain switch flow
	wallet.POST("/disconnect", controller.DisconnectWalletHandler(serverCtx)) // local state only
	wallet.GET("/session", controller.WalletSessionHandler(serverCtx))

	portfolio := apiV1.Group("/portfolio")
	portfolio.GET("/:address/canvases", controller.UserCanvasesHandler(serverCtx)) // enriched, ?stream=true for NDJSON

	collection := apiV1.Group("/collection")
	collection.GET("/floor", middleware.CacheApi(serverCtx.KvStore, 30),
		controller.FloorListingsHandler(serverCtx)) // cheapest active listings
	collection.GET("/today", controller.TodayCanvasHandler(serverCtx)) // canvas open for minting

	orders := apiV1.Group("/orders")
	orders.POST("/listing", controller.CreateListingHandler(serverCtx))     // list a canvas
	orders.POST("/offer/accept", controller.AcceptOfferHandler(serverCtx))  // accept best offer
	orders.POST("/floor/fulfill", controller.BuyFloorHandler(serverCtx))    // buy a floor listing

	mint := apiV1.Group("/mint")
	mint.POST("", controller.MintTodayHandler(serverCtx))

	frame := apiV1.Group("/frame")
	frame.GET("/share", controller.ShareHandler(serverCtx))  // compose post URL
	frame.GET("/open", controller.OpenURLHandler(serverCtx)) // external URL + fallback
}
