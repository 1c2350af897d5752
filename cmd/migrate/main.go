package main

import (
	"larisa/config"
	"larisa/helper"
	"larisa/shared/logger"
	"os"

	"github.com/rs/zerolog/log"
)

const (
	argLength = 2
)

func main() {
	logger.InitLogger()

	if len(os.Args) < argLength {
		log.Fatal().Msg("Migration direction (up/down/step-up/drop) is required")
	}

	cfg := config.Get()

	logger.SetLogLevel(cfg)

	source := helper.DefaultSource
	if len(os.Args) > argLength {
		source = os.Args[2]
	}

	if err := helper.Run(source, helper.DatabaseURL(cfg), os.Args[1]); err != nil {
		log.Fatal().Err(err).Str("action", os.Args[1]).Msg("Migration failed")
	}
}
