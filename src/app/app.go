package app

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pinkyblu/bp-tracker-test/src/config"
	xzap "github.com/pinkyblu/bp-tracker-test/src/logger"
	"github.com/pinkyblu/bp-tracker-test/src/svc"
)

type Platform struct {
	config    *config.Config
	router    *gin.Engine
	serverCtx *svc.ServerCtx
}

func NewPlatform(config *config.Config, router *gin.Engine, serverCtx *svc.ServerCtx) *Platform {
	return &Platform{
		config:    config,
		router:    router,
		serverCtx: serverCtx,
	}
}

func (p *Platform) Start() {
	xzap.WithContext(context.Background()).Info("bp-tracker run",
		zap.String("port", p.config.Api.Port))
	if err := p.router.Run(p.config.Api.Port); err != nil {
		panic(err)
	}
}
