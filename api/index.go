package handler

import (
	"log"
	"net/http"
	"sync"

	"github.com/gofiber/adaptor/v2"

	"github.com/shaneomac1337/komplexaci-api/internal/app"
	"github.com/shaneomac1337/komplexaci-api/internal/config"
)

var (
	once  sync.Once
	serve http.HandlerFunc
)

// Handler is the serverless entrypoint. The Fiber app is built once per
// instance and reused across invocations; the cache sweeper lives for the
// instance lifetime.
func Handler(w http.ResponseWriter, r *http.Request) {
	once.Do(func() {
		cfg, err := config.LoadFromEnv()
		if err != nil {
			log.Printf("config error: %v", err)
			serve = func(w http.ResponseWriter, _ *http.Request) {
				http.Error(w, "server misconfigured", http.StatusInternalServerError)
			}
			return
		}
		fiberApp, _ := app.New(cfg)
		serve = adaptor.FiberApp(fiberApp)
	})
	serve(w, r)
}
