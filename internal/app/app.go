// Package app assembles the Fiber application from its parts so the
// long-running server and the serverless entrypoint share one wiring.
package app

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/shaneomac1337/komplexaci-api/internal/config"
	"github.com/shaneomac1337/komplexaci-api/internal/ddragon"
	"github.com/shaneomac1337/komplexaci-api/internal/handlers"
	"github.com/shaneomac1337/komplexaci-api/internal/livegame"
	"github.com/shaneomac1337/komplexaci-api/internal/middleware"
	"github.com/shaneomac1337/komplexaci-api/internal/riot"
)

// New builds the app. The returned shutdown func stops the live-game
// cache sweeper.
func New(cfg *config.Config) (*fiber.App, func()) {
	failed := riot.NewFailedPUUIDCache(5 * time.Minute)
	client := riot.NewClient(cfg.RiotAPIKey, failed)
	champs := ddragon.NewSource()

	liveCache := livegame.NewMemoryStore(livegame.SweepInterval)
	reconciler := livegame.NewReconciler(client, champs)

	h := handlers.New(client, reconciler, liveCache, champs)

	fiberApp := fiber.New()
	fiberApp.Use(middleware.Cors(cfg.Env, cfg.AllowOrigins))
	h.Register(fiberApp)

	return fiberApp, liveCache.Close
}
