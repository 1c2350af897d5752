package handler

import (
	"larisa/config"
	"larisa/di"
	"larisa/shared/logger"
	"larisa/shared/timezone"
	"net/http"
	"sync"
)

var (
	once    sync.Once
	handler http.Handler
)

// Handler serves the API as a single serverless function. The dependency
// graph is built on the first invocation and reused while the instance is warm.
func Handler(w http.ResponseWriter, r *http.Request) {
	once.Do(func() {
		cfg := config.Get()

		logger.InitLogger()
		logger.SetOutput(cfg)
		logger.SetLogLevel(cfg)

		timezone.Init(cfg.App.Timezone)

		handler = di.InitializeService().Handler()
	})

	r.RequestURI = r.URL.String()

	handler.ServeHTTP(w, r)
}
