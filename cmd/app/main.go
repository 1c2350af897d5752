package main

import (
	"larisa/config"
	"larisa/di"
	"larisa/shared/logger"
	"larisa/shared/timezone"
)

func main() {
	cfg := config.Get()

	logger.InitLogger()
	logger.SetOutput(cfg)
	logger.SetLogLevel(cfg)

	timezone.Init(cfg.App.Timezone)

	http := di.InitializeService()
	http.Serve()
}
