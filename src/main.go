package main

import (
	"flag"

	"github.com/pinkyblu/bp-tracker-test/src/app"
	"github.com/pinkyblu/bp-tracker-test/src/config"
	"github.com/pinkyblu/bp-tracker-test/src/router"
	"github.com/pinkyblu/bp-tracker-test/src/svc"
)

const (
	defaultConfigPath = "./config/config.toml"
)

func main() {
	conf := flag.String("conf", defaultConfigPath, "conf file path")
	flag.Parse()
	c, err := config.UnmarshalConfig(*conf)
	if err != nil {
		panic(err)
	}
	if err := c.Validate(); err != nil {
		panic(err)
	}

	serverCtx, err := svc.NewServiceContext(c)
	if err != nil {
		panic(err)
	}

	r := router.NewRouter(serverCtx)
	platform := app.NewPlatform(c, r, serverCtx)
	platform.Start()
}
