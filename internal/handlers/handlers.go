package handlers

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	gocache "github.com/patrickmn/go-cache"

	"github.com/shaneomac1337/komplexaci-api/internal/livegame"
	"github.com/shaneomac1337/komplexaci-api/internal/riot"
)

// profileCacheTTL covers the summoner proxy endpoints. Profiles move
// slowly compared to live-game state.
const profileCacheTTL = 10 * time.Minute

// RiotAPI is the slice of the Riot client the routes call. Tests plug in
// a fake.
type RiotAPI interface {
	ResolveAccount(gameName, tagLine string) (*riot.Account, error)
	AccountByPUUID(puuid string) (*riot.Account, error)
	SummonerByPUUID(puuid, region string) (*riot.Summoner, error)
	LeagueEntries(puuid, region string) ([]riot.LeagueEntry, error)
	TopMasteries(puuid, region string, count int) ([]riot.ChampionMastery, error)
	MatchIDs(puuid, region string, start, count int) ([]string, error)
	Match(matchID, region string) (map[string]any, error)
	ActiveGame(puuid, region string) (map[string]any, error)
}

// Handler owns the /api/lol routes and their caches.
type Handler struct {
	api        RiotAPI
	reconciler *livegame.Reconciler
	liveCache  livegame.Store
	champs     livegame.ChampionSource
	profiles   *gocache.Cache
}

// New wires the route handlers to their collaborators.
func New(api RiotAPI, reconciler *livegame.Reconciler, liveCache livegame.Store, champs livegame.ChampionSource) *Handler {
	return &Handler{
		api:        api,
		reconciler: reconciler,
		liveCache:  liveCache,
		champs:     champs,
		profiles:   gocache.New(profileCacheTTL, 30*time.Minute),
	}
}

// Register mounts every route on the app.
func (h *Handler) Register(app *fiber.App) {
	api := app.Group("/api/lol")

	api.Get("/live-game", h.LiveGame)
	api.Get("/live-game-optimized", h.LiveGameOptimized)
	api.Get("/live-game-immediate", h.LiveGameImmediate)

	api.Get("/summoner", h.Summoner)
	api.Get("/summoner-by-puuid", h.SummonerByPUUID)
	api.Get("/puuid-only", h.PUUIDOnly)
	api.Get("/matches", h.Matches)
	api.Get("/mastery", h.Mastery)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.SendString("Server is healthy")
	})
}

// requirePlayer validates the puuid and region query parameters shared by
// most routes, writing the 400 response itself on failure. Validation
// failures never reach upstream.
func requirePlayer(c *fiber.Ctx) (puuid, region string, ok bool) {
	puuid = strings.TrimSpace(c.Query("puuid"))
	region = strings.ToLower(strings.TrimSpace(c.Query("region")))

	if puuid == "" {
		_ = c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing puuid parameter"})
		return "", "", false
	}
	if !riot.ValidRegion(region) {
		_ = c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid region"})
		return "", "", false
	}
	return puuid, region, true
}

// upstreamError maps a classified Riot failure onto the HTTP status the
// proxy exposes. NotFound is handled per-route before this is reached.
func upstreamError(c *fiber.Ctx, err error) error {
	switch riot.KindOf(err) {
	case riot.KindRateLimited:
		return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "Rate limited by Riot API. Try again later."})
	case riot.KindAuthInvalid:
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Riot API key is invalid or expired."})
	case riot.KindServerError:
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "Riot API is temporarily unavailable. Try again later."})
	case riot.KindNotFound:
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Not found"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
}
