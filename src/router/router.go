package router

import (
	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"

	"github.com/pinkyblu/bp-tracker-test/src/middleware"
	"github.com/pinkyblu/bp-tracker-test/src/svc"
)

func NewRouter(serverCtx *svc.ServerCtx) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(middleware.RecoverMiddleware())
	router.Use(middleware.RLog())
	router.Use(middleware.Cors())
	pprof.Register(router)
	initV1Route(router, serverCtx)
	return router
}
